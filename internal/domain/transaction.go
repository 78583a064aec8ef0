package domain

import (
	"fmt"
	"time"
)

// TransactionType classifies money movements.
type TransactionType string

const (
	TransactionTypeContribution     TransactionType = "contribution"
	TransactionTypeWithdrawal       TransactionType = "withdrawal"
	TransactionTypeInterest         TransactionType = "interest"
	TransactionTypePenalty          TransactionType = "penalty"
	TransactionTypeWalletFunding    TransactionType = "wallet_funding"
	TransactionTypeWalletWithdrawal TransactionType = "wallet_withdrawal"
	TransactionTypeAutoSave         TransactionType = "auto_save"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is the audit record of a single money movement. Reference is
// globally unique and used for idempotency and gateway reconciliation.
type Transaction struct {
	ID              string
	UserID          string
	PlanID          *string
	Amount          Money
	Fee             Money
	Penalty         Money
	Type            TransactionType
	Status          TransactionStatus
	Reference       string
	Description     string
	EarlyWithdrawal bool
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// Validate checks structural invariants.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.Reference == "" {
		return fmt.Errorf("transaction reference is required")
	}
	return nil
}

// NewReference builds a unique transaction reference, e.g.
// WDR-1693305600-01J9ZK7M. The suffix is the tail of a ULID, so references
// stay unique even within the same second.
func NewReference(prefix string, now time.Time, uniqueID string) string {
	suffix := uniqueID
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.Unix(), suffix)
}

// WithdrawalReference builds a unique reference for a withdrawal.
func WithdrawalReference(now time.Time, uniqueID string) string {
	return NewReference("WDR", now, uniqueID)
}
