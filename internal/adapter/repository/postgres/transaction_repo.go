package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sproutfi/stash/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `
	id, user_id, plan_id, amount, fee, penalty, currency, type, status,
	reference, description, early_withdrawal, created_at, completed_at
`

// Save inserts a transaction. The reference column carries a unique index.
func (r *TransactionRepository) Save(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		tx.PlanID,
		tx.Amount.Amount,
		tx.Fee.Amount,
		tx.Penalty.Amount,
		string(tx.Amount.Currency),
		string(tx.Type),
		string(tx.Status),
		tx.Reference,
		tx.Description,
		tx.EarlyWithdrawal,
		tx.CreatedAt,
		tx.CompletedAt,
	)

	return err
}

// Update rewrites the mutable settlement fields.
func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $1, completed_at = $2
		WHERE id = $3
	`

	tag, err := r.pool.Exec(ctx, query, string(tx.Status), tx.CompletedAt, tx.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return r.getOne(ctx, query, id)
}

// GetByReference retrieves a transaction by its unique reference.
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference = $1`

	return r.getOne(ctx, query, reference)
}

// ListByUser lists a user's transactions, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

func (r *TransactionRepository) getOne(ctx context.Context, query string, arg any) (*domain.Transaction, error) {
	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return tx, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		tx       domain.Transaction
		amount   int64
		fee      int64
		penalty  int64
		currency string
		txType   string
		status   string
	)

	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.PlanID,
		&amount,
		&fee,
		&penalty,
		&currency,
		&txType,
		&status,
		&tx.Reference,
		&tx.Description,
		&tx.EarlyWithdrawal,
		&tx.CreatedAt,
		&tx.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	cur := domain.Currency(currency)
	tx.Amount = domain.NewMoney(amount, cur)
	tx.Fee = domain.NewMoney(fee, cur)
	tx.Penalty = domain.NewMoney(penalty, cur)
	tx.Type = domain.TransactionType(txType)
	tx.Status = domain.TransactionStatus(status)

	return &tx, nil
}
