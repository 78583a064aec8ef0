package domain

import "time"

// WithdrawalDestination is where the net amount is disbursed.
type WithdrawalDestination string

const (
	DestinationWallet WithdrawalDestination = "wallet"
	DestinationBank   WithdrawalDestination = "bank"
)

// IsValid checks if the destination is supported.
func (d WithdrawalDestination) IsValid() bool {
	return d == DestinationWallet || d == DestinationBank
}

// WithdrawalStatus is the processing state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusFailed    WithdrawalStatus = "failed"
)

// WithdrawalRecord tracks one withdrawal request against a plan. A pending
// record is the fast-path guard against concurrent withdrawals on the same
// plan; the plan version check remains the authoritative defense.
type WithdrawalRecord struct {
	ID            string
	PlanID        string
	UserID        string
	TransactionID string
	Amount        Money
	NetAmount     Money
	Destination   WithdrawalDestination
	BankAccountID *string
	Status        WithdrawalStatus
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
