package usecase

import (
	"context"
	"time"

	"github.com/sproutfi/stash/internal/domain"
)

// SavingsRepository defines data access for savings plans.
type SavingsRepository interface {
	Create(ctx context.Context, plan *domain.SavingsPlan) error
	FindByID(ctx context.Context, id string) (*domain.SavingsPlan, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.SavingsPlan, error)
	// Update persists the plan with a version-guarded write: the row is
	// updated only if its stored version equals plan.Version-1, in a single
	// atomic statement. A stale version yields ConcurrentWithdrawalError.
	Update(ctx context.Context, plan *domain.SavingsPlan) error
}

// WalletRepository defines data access for wallets. Credit and Debit are
// atomic increments at the storage layer.
type WalletRepository interface {
	FindByUser(ctx context.Context, userID string) (*domain.Wallet, error)
	Credit(ctx context.Context, userID string, amount domain.Money) (domain.Money, error)
	Debit(ctx context.Context, userID string, amount domain.Money) (domain.Money, error)
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Save(ctx context.Context, tx *domain.Transaction) error
	Update(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
}

// WithdrawalRepository defines data access for withdrawal records and the
// period aggregates the rate-limit checks consume.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *domain.WithdrawalRecord) error
	Update(ctx context.Context, w *domain.WithdrawalRecord) error
	HasPendingWithdrawals(ctx context.Context, planID string) (bool, error)
	GetWithdrawalCountSince(ctx context.Context, userID string, since time.Time) (int, error)
	GetWithdrawalAmountSince(ctx context.Context, userID string, since time.Time, currency domain.Currency) (domain.Money, error)
}

// ComplianceService enforces tier-based transaction caps.
type ComplianceService interface {
	CheckCompliance(ctx context.Context, userID string, amount domain.Money) error
	// GetTaxWarning returns an advisory string for large withdrawals, or ""
	// when none applies. Failures here are non-fatal.
	GetTaxWarning(ctx context.Context, amount domain.Money) (string, error)
}

// FeeService computes the processing fee for a withdrawal.
type FeeService interface {
	CalculateFees(ctx context.Context, amount domain.Money, destination domain.WithdrawalDestination, tier domain.KYCTier) (domain.Money, error)
}

// PaymentGateway disburses bank-destination withdrawals. The protocol behind
// it is opaque to the orchestrator.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, input ProcessPaymentInput) (*PaymentResult, error)
}

// ProcessPaymentInput carries what the gateway needs to pay out.
type ProcessPaymentInput struct {
	UserID        string
	BankAccountID string
	Amount        domain.Money
	Reference     string
	Narration     string
}

// PaymentResult is the gateway's acknowledgement.
type PaymentResult struct {
	GatewayReference string
	Status           string
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// UserRepository resolves the KYC tier used by fee and compliance checks.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
