package domain

import "time"

// Event types
const (
	EventTypeWithdrawalCompleted   = "withdrawal.completed"
	EventTypeWithdrawalFailed      = "withdrawal.failed"
	EventTypeWithdrawalCompensated = "withdrawal.compensated"
	EventTypePlanCreated           = "plan.created"
	EventTypePlanStatusChanged     = "plan.status_changed"
	EventTypeContributionRecorded  = "contribution.recorded"
)

// Aggregate types
const (
	AggregateTypePlan       = "savings_plan"
	AggregateTypeWithdrawal = "withdrawal"
	AggregateTypeWallet     = "wallet"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// WithdrawalCompletedEvent payload
type WithdrawalCompletedEvent struct {
	WithdrawalID  string `json:"withdrawal_id"`
	PlanID        string `json:"plan_id"`
	UserID        string `json:"user_id"`
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	NetAmount     string `json:"net_amount"`
	Currency      string `json:"currency"`
	Destination   string `json:"destination"`
	Early         bool   `json:"early"`
}

// WithdrawalFailedEvent payload
type WithdrawalFailedEvent struct {
	WithdrawalID string `json:"withdrawal_id"`
	PlanID       string `json:"plan_id"`
	UserID       string `json:"user_id"`
	Reason       string `json:"reason"`
}

// PlanCreatedEvent payload
type PlanCreatedEvent struct {
	PlanID      string `json:"plan_id"`
	UserID      string `json:"user_id"`
	PlanName    string `json:"plan_name"`
	DailyAmount string `json:"daily_amount"`
	Currency    string `json:"currency"`
}

// ContributionRecordedEvent payload
type ContributionRecordedEvent struct {
	PlanID   string `json:"plan_id"`
	UserID   string `json:"user_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Streak   int    `json:"streak"`
}
