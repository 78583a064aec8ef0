package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sproutfi/stash/internal/domain"
)

// WalletRepository implements usecase.WalletRepository. Credits and debits
// are single UPDATE statements so concurrent movements never lose increments;
// transient deadlocks are retried.
type WalletRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool, retrier *Retrier) *WalletRepository {
	return &WalletRepository{pool: pool, retrier: retrier}
}

// FindByUser retrieves a user's wallet.
func (r *WalletRepository) FindByUser(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `
		SELECT user_id, balance, currency, is_active, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
	`

	var (
		wallet   domain.Wallet
		balance  int64
		currency string
	)

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&wallet.UserID,
		&balance,
		&currency,
		&wallet.IsActive,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, err
	}

	wallet.Balance = domain.NewMoney(balance, domain.Currency(currency))

	return &wallet, nil
}

// Credit atomically adds amount to the wallet and returns the new balance.
func (r *WalletRepository) Credit(ctx context.Context, userID string, amount domain.Money) (domain.Money, error) {
	return r.adjust(ctx, userID, amount, amount.Amount)
}

// Debit atomically subtracts amount from the wallet and returns the new
// balance. The balance check rides in the UPDATE predicate, so two debits
// cannot both pass it.
func (r *WalletRepository) Debit(ctx context.Context, userID string, amount domain.Money) (domain.Money, error) {
	return r.adjust(ctx, userID, amount, -amount.Amount)
}

func (r *WalletRepository) adjust(ctx context.Context, userID string, amount domain.Money, delta int64) (domain.Money, error) {
	query := `
		UPDATE wallets
		SET balance = balance + $1, updated_at = NOW()
		WHERE user_id = $2 AND currency = $3 AND is_active AND balance + $1 >= 0
		RETURNING balance
	`

	var balance int64

	run := func() error {
		return r.pool.QueryRow(ctx, query, delta, userID, string(amount.Currency)).Scan(&balance)
	}

	var err error
	if r.retrier != nil {
		err = r.retrier.Retry(ctx, run)
	} else {
		err = run()
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Money{}, r.classifyAdjustFailure(ctx, userID, amount, delta)
		}

		return domain.Money{}, err
	}

	return domain.NewMoney(balance, amount.Currency), nil
}

// classifyAdjustFailure distinguishes a missing or inactive wallet from an
// overdraw, both of which leave the guarded UPDATE matching zero rows.
func (r *WalletRepository) classifyAdjustFailure(ctx context.Context, userID string, amount domain.Money, delta int64) error {
	wallet, err := r.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	if !wallet.IsActive {
		return domain.ErrWalletInactive
	}
	if wallet.Balance.Currency != amount.Currency {
		return domain.ErrCurrencyMismatch
	}
	if delta < 0 {
		return domain.ErrInsufficientFunds
	}

	return domain.ErrWalletNotFound
}
