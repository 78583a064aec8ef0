package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sproutfi/stash/internal/domain"
)

// WithdrawalRepository implements usecase.WithdrawalRepository. The period
// aggregates count only completed withdrawals so an abandoned pending record
// never eats into a user's limits.
type WithdrawalRepository struct {
	pool *pgxpool.Pool
}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository(pool *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{pool: pool}
}

// Create inserts a withdrawal record.
func (r *WithdrawalRepository) Create(ctx context.Context, w *domain.WithdrawalRecord) error {
	query := `
		INSERT INTO withdrawals (
			id, plan_id, user_id, transaction_id, amount, net_amount, currency,
			destination, bank_account_id, status, failure_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		w.ID,
		w.PlanID,
		w.UserID,
		nullIfEmpty(w.TransactionID),
		w.Amount.Amount,
		w.NetAmount.Amount,
		string(w.Amount.Currency),
		string(w.Destination),
		w.BankAccountID,
		string(w.Status),
		nullIfEmpty(w.FailureReason),
		w.CreatedAt,
		w.UpdatedAt,
	)

	return err
}

// Update rewrites the record's settlement state.
func (r *WithdrawalRepository) Update(ctx context.Context, w *domain.WithdrawalRecord) error {
	query := `
		UPDATE withdrawals
		SET transaction_id = $1, status = $2, failure_reason = $3, updated_at = $4
		WHERE id = $5
	`

	tag, err := r.pool.Exec(ctx, query,
		nullIfEmpty(w.TransactionID),
		string(w.Status),
		nullIfEmpty(w.FailureReason),
		w.UpdatedAt,
		w.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWithdrawalNotFound
	}

	return nil
}

// HasPendingWithdrawals reports whether the plan has an in-flight withdrawal.
func (r *WithdrawalRepository) HasPendingWithdrawals(ctx context.Context, planID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM withdrawals WHERE plan_id = $1 AND status = 'pending')`

	var pending bool
	if err := r.pool.QueryRow(ctx, query, planID).Scan(&pending); err != nil {
		return false, err
	}

	return pending, nil
}

// GetWithdrawalCountSince counts the user's completed withdrawals in the
// current period window.
func (r *WithdrawalRepository) GetWithdrawalCountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM withdrawals
		WHERE user_id = $1 AND status = 'completed' AND created_at >= $2
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// GetWithdrawalAmountSince sums the user's completed withdrawal amounts in
// the current period window, per currency.
func (r *WithdrawalRepository) GetWithdrawalAmountSince(ctx context.Context, userID string, since time.Time, currency domain.Currency) (domain.Money, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM withdrawals
		WHERE user_id = $1 AND status = 'completed' AND currency = $2 AND created_at >= $3
	`

	var total int64
	if err := r.pool.QueryRow(ctx, query, userID, string(currency), since).Scan(&total); err != nil {
		return domain.Money{}, err
	}

	return domain.NewMoney(total, currency), nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
