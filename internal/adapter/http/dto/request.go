package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/usecase"
)

// CreatePlanRequest represents a request to create a savings plan.
// Amounts are major units; they are converted to minor units at this
// boundary and stay integral from here on.
type CreatePlanRequest struct {
	PlanName          string           `json:"plan_name"`
	Currency          string           `json:"currency"`
	DailyAmount       decimal.Decimal  `json:"daily_amount"`
	CycleDurationDays int              `json:"cycle_duration_days"`
	TargetAmount      *decimal.Decimal `json:"target_amount,omitempty"`
	MinimumBalance    decimal.Decimal  `json:"minimum_balance"`
	AllowEarlyExit    bool             `json:"allow_early_exit"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePlanRequest) ToUseCaseInput(userID string) (usecase.CreatePlanInput, error) {
	currency := domain.Currency(r.Currency)
	if !currency.IsValid() {
		return usecase.CreatePlanInput{}, domain.ErrCurrencyMismatch
	}

	input := usecase.CreatePlanInput{
		UserID:            userID,
		PlanName:          r.PlanName,
		DailyAmount:       domain.MoneyFromDecimal(r.DailyAmount, currency),
		CycleDurationDays: r.CycleDurationDays,
		MinimumBalance:    domain.MoneyFromDecimal(r.MinimumBalance, currency),
		AllowEarlyExit:    r.AllowEarlyExit,
	}
	if r.TargetAmount != nil {
		target := domain.MoneyFromDecimal(*r.TargetAmount, currency)
		input.TargetAmount = &target
	}
	return input, nil
}

// ContributeRequest represents a request to contribute to a plan.
type ContributeRequest struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *ContributeRequest) ToUseCaseInput(planID, userID string) (usecase.ContributeInput, error) {
	currency := domain.Currency(r.Currency)
	if !currency.IsValid() {
		return usecase.ContributeInput{}, domain.ErrCurrencyMismatch
	}

	return usecase.ContributeInput{
		PlanID: planID,
		UserID: userID,
		Amount: domain.MoneyFromDecimal(r.Amount, currency),
	}, nil
}

// WithdrawRequest represents a request to withdraw from a plan.
type WithdrawRequest struct {
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	Destination   string          `json:"destination"`
	BankAccountID *string         `json:"bank_account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput(planID, userID string) (usecase.WithdrawInput, error) {
	currency := domain.Currency(r.Currency)
	if !currency.IsValid() {
		return usecase.WithdrawInput{}, domain.ErrCurrencyMismatch
	}

	return usecase.WithdrawInput{
		PlanID:        planID,
		UserID:        userID,
		Amount:        domain.MoneyFromDecimal(r.Amount, currency),
		Destination:   domain.WithdrawalDestination(r.Destination),
		BankAccountID: r.BankAccountID,
	}, nil
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
