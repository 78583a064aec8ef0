package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/usecase"
)

// PlanResponse represents a savings plan in API responses.
type PlanResponse struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	PlanName           string           `json:"plan_name"`
	Currency           string           `json:"currency"`
	DailyAmount        decimal.Decimal  `json:"daily_amount"`
	CycleDurationDays  int              `json:"cycle_duration_days"`
	TargetAmount       *decimal.Decimal `json:"target_amount,omitempty"`
	CurrentAmount      decimal.Decimal  `json:"current_amount"`
	MinimumBalance     decimal.Decimal  `json:"minimum_balance"`
	Status             string           `json:"status"`
	AllowEarlyExit     bool             `json:"allow_early_exit"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	ContributionStreak int              `json:"contribution_streak"`
	TotalContributions int              `json:"total_contributions"`
	Version            int64            `json:"version"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// PlanFromDomain converts a domain plan to a response.
func PlanFromDomain(p *domain.SavingsPlan) *PlanResponse {
	resp := &PlanResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		PlanName:           p.PlanName,
		Currency:           string(p.DailyAmount.Currency),
		DailyAmount:        p.DailyAmount.Decimal(),
		CycleDurationDays:  p.CycleDurationDays,
		CurrentAmount:      p.CurrentAmount.Decimal(),
		MinimumBalance:     p.MinimumBalance.Decimal(),
		Status:             string(p.Status),
		AllowEarlyExit:     p.AllowEarlyExit,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		ContributionStreak: p.ContributionStreak,
		TotalContributions: p.TotalContributions,
		Version:            p.Version,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if p.TargetAmount != nil {
		target := p.TargetAmount.Decimal()
		resp.TargetAmount = &target
	}
	return resp
}

// PlansFromDomain converts domain plans to responses.
func PlansFromDomain(plans []*domain.SavingsPlan) []*PlanResponse {
	result := make([]*PlanResponse, len(plans))
	for i, p := range plans {
		result[i] = PlanFromDomain(p)
	}
	return result
}

// ListPlansResponse wraps a page of plans.
type ListPlansResponse struct {
	Plans []*PlanResponse `json:"plans"`
	Total int64           `json:"total"`
}

// ProgressResponse represents plan progress in API responses.
type ProgressResponse struct {
	ProgressPercentage decimal.Decimal  `json:"progress_percentage"`
	DaysRemaining      int              `json:"days_remaining"`
	ContributionStreak int              `json:"contribution_streak"`
	TargetAmount       *decimal.Decimal `json:"target_amount,omitempty"`
}

// ProgressFromDomain converts domain progress to a response.
func ProgressFromDomain(p *domain.Progress) *ProgressResponse {
	resp := &ProgressResponse{
		ProgressPercentage: p.ProgressPercentage,
		DaysRemaining:      p.DaysRemaining,
		ContributionStreak: p.ContributionStreak,
	}
	if p.TargetAmount != nil {
		target := p.TargetAmount.Decimal()
		resp.TargetAmount = &target
	}
	return resp
}

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	UserID    string          `json:"user_id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"is_active"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		UserID:    w.UserID,
		Currency:  string(w.Balance.Currency),
		Balance:   w.Balance.Decimal(),
		IsActive:  w.IsActive,
		UpdatedAt: w.UpdatedAt,
	}
}

// WithdrawResponse represents the outcome of a withdrawal.
type WithdrawResponse struct {
	TransactionID string          `json:"transaction_id"`
	WithdrawalID  string          `json:"withdrawal_id"`
	Reference     string          `json:"reference"`
	Currency      string          `json:"currency"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Fee           decimal.Decimal `json:"fee"`
	Penalty       decimal.Decimal `json:"penalty"`
	Early         bool            `json:"early"`
	Status        string          `json:"status"`
	Message       string          `json:"message"`
}

// WithdrawFromResult converts a use case result to a response.
func WithdrawFromResult(r *usecase.WithdrawResult) *WithdrawResponse {
	return &WithdrawResponse{
		TransactionID: r.TransactionID,
		WithdrawalID:  r.WithdrawalID,
		Reference:     r.Reference,
		Currency:      string(r.NetAmount.Currency),
		NetAmount:     r.NetAmount.Decimal(),
		Fee:           r.Fee.Decimal(),
		Penalty:       r.Penalty.Decimal(),
		Early:         r.Early,
		Status:        r.Status,
		Message:       r.Message,
	}
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	PlanID          *string         `json:"plan_id,omitempty"`
	Currency        string          `json:"currency"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	Penalty         decimal.Decimal `json:"penalty"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	Reference       string          `json:"reference"`
	Description     string          `json:"description,omitempty"`
	EarlyWithdrawal bool            `json:"early_withdrawal"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		PlanID:          t.PlanID,
		Currency:        string(t.Amount.Currency),
		Amount:          t.Amount.Decimal(),
		Fee:             t.Fee.Decimal(),
		Penalty:         t.Penalty.Decimal(),
		Type:            string(t.Type),
		Status:          string(t.Status),
		Reference:       t.Reference,
		Description:     t.Description,
		EarlyWithdrawal: t.EarlyWithdrawal,
		CreatedAt:       t.CreatedAt,
		CompletedAt:     t.CompletedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
