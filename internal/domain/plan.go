package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanStatus is the lifecycle state of a savings plan.
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusPaused    PlanStatus = "paused"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCancelled PlanStatus = "cancelled"
)

// Transitions are one-directional except active<->paused.
// completed and cancelled are terminal.
var planTransitions = map[PlanStatus]map[PlanStatus]bool{
	PlanStatusActive: {
		PlanStatusPaused:    true,
		PlanStatusCompleted: true,
		PlanStatusCancelled: true,
	},
	PlanStatusPaused: {
		PlanStatusActive:    true,
		PlanStatusCancelled: true,
	},
}

// CanTransitionTo checks if the status machine allows moving to target.
func (s PlanStatus) CanTransitionTo(target PlanStatus) bool {
	return planTransitions[s][target]
}

// SavingsPlan is the aggregate contended by concurrent withdrawals.
// Version increments by exactly 1 on every successful mutation and backs
// the compare-and-swap write in the repository.
type SavingsPlan struct {
	ID                 string
	UserID             string
	PlanName           string
	DailyAmount        Money
	CycleDurationDays  int
	TargetAmount       *Money
	CurrentAmount      Money
	MinimumBalance     Money
	Status             PlanStatus
	AllowEarlyExit     bool
	StartDate          time.Time
	EndDate            time.Time
	ContributionStreak int
	TotalContributions int
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Progress summarises how far along the plan is.
type Progress struct {
	ProgressPercentage decimal.Decimal
	DaysRemaining      int
	ContributionStreak int
	TargetAmount       *Money
}

// CalculateProgress computes progress against the target. The percentage is
// not clamped above 100: over-saving past the target is meaningful to
// callers (badge logic keys off exceeding it).
func (p *SavingsPlan) CalculateProgress(now time.Time) Progress {
	progress := Progress{
		ContributionStreak: p.ContributionStreak,
		TargetAmount:       p.TargetAmount,
	}

	if remaining := int(p.EndDate.Sub(now).Hours() / 24); remaining > 0 {
		progress.DaysRemaining = remaining
	}

	if p.TargetAmount != nil && p.TargetAmount.IsPositive() {
		progress.ProgressPercentage = decimal.NewFromInt(p.CurrentAmount.Amount).
			Div(decimal.NewFromInt(p.TargetAmount.Amount)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return progress
}

// IsMatured reports whether the plan has reached its end date.
func (p *SavingsPlan) IsMatured(now time.Time) bool {
	return !now.Before(p.EndDate)
}

// CanWithdraw reports whether a penalty-free withdrawal is permitted:
// the plan is completed, or active and matured.
func (p *SavingsPlan) CanWithdraw(now time.Time) bool {
	if p.Status == PlanStatusCompleted {
		return true
	}
	return p.Status == PlanStatusActive && p.IsMatured(now)
}

// CanEarlyWithdraw reports whether an early exit with penalty is permitted:
// the plan is active, not yet matured, and allows early exit.
func (p *SavingsPlan) CanEarlyWithdraw(now time.Time) bool {
	return p.Status == PlanStatusActive && !p.IsMatured(now) && p.AllowEarlyExit
}

// CanWithdrawAmount checks that the balance left after the withdrawal stays
// at or above the plan's minimum balance.
func (p *SavingsPlan) CanWithdrawAmount(amount Money) bool {
	remaining, err := p.CurrentAmount.Sub(amount)
	if err != nil {
		return false
	}
	return remaining.Amount >= p.MinimumBalance.Amount
}

// CalculateEarlyWithdrawalPenalty computes the penalty as a fraction of the
// current balance. The rate comes from configuration, not the aggregate.
func (p *SavingsPlan) CalculateEarlyWithdrawalPenalty(rate decimal.Decimal) Money {
	return p.CurrentAmount.Percent(rate)
}

// Withdraw returns a copy of the plan with the balance reduced and the
// version incremented by 1. It rejects amounts that would drive the balance
// negative; the minimum-balance rule is enforced upstream.
func (p *SavingsPlan) Withdraw(amount Money, now time.Time) (*SavingsPlan, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	remaining, err := p.CurrentAmount.Sub(amount)
	if err != nil {
		return nil, err
	}
	if remaining.IsNegative() {
		return nil, ErrNegativeBalance
	}

	updated := *p
	updated.CurrentAmount = remaining
	updated.Version = p.Version + 1
	updated.UpdatedAt = now

	return &updated, nil
}

// ApplyContribution returns a copy with the contribution added, streak and
// totals advanced, and the version incremented by 1.
func (p *SavingsPlan) ApplyContribution(amount Money, now time.Time) (*SavingsPlan, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	balance, err := p.CurrentAmount.Add(amount)
	if err != nil {
		return nil, err
	}

	updated := *p
	updated.CurrentAmount = balance
	updated.ContributionStreak = p.ContributionStreak + 1
	updated.TotalContributions = p.TotalContributions + 1
	updated.Version = p.Version + 1
	updated.UpdatedAt = now

	return &updated, nil
}

// TransitionTo moves the plan to target, enforcing the status machine.
// The version increments like any other mutation.
func (p *SavingsPlan) TransitionTo(target PlanStatus, now time.Time) (*SavingsPlan, error) {
	if !p.Status.CanTransitionTo(target) {
		return nil, ErrInvalidPlanTransition
	}

	updated := *p
	updated.Status = target
	updated.Version = p.Version + 1
	updated.UpdatedAt = now

	return &updated, nil
}
