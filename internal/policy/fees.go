// Package policy provides the default fee and compliance implementations
// behind the usecase service interfaces. Both are pure and config-driven;
// deployments with external fee or compliance engines swap them out at the
// interface.
package policy

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sproutfi/stash/internal/domain"
)

// FeeSchedule prices withdrawals per destination. Rate is a fraction of the
// withdrawal amount, Flat a fixed charge in minor units of the amount's
// currency.
type FeeSchedule struct {
	WalletFlat int64
	WalletRate decimal.Decimal
	BankFlat   int64
	BankRate   decimal.Decimal

	// TierDiscounts maps a KYC tier to the fraction knocked off the computed
	// fee, e.g. 0.5 halves it. Missing tiers pay full price.
	TierDiscounts map[domain.KYCTier]decimal.Decimal
}

// FeeCalculator implements usecase.FeeService from a static schedule.
type FeeCalculator struct {
	schedule FeeSchedule
}

// NewFeeCalculator creates a FeeCalculator.
func NewFeeCalculator(schedule FeeSchedule) *FeeCalculator {
	return &FeeCalculator{schedule: schedule}
}

// CalculateFees returns flat + rate*amount for the destination, discounted by
// KYC tier, rounded half-up to minor units.
func (c *FeeCalculator) CalculateFees(_ context.Context, amount domain.Money, destination domain.WithdrawalDestination, tier domain.KYCTier) (domain.Money, error) {
	flat, rate := c.schedule.WalletFlat, c.schedule.WalletRate
	if destination == domain.DestinationBank {
		flat, rate = c.schedule.BankFlat, c.schedule.BankRate
	}

	fee := decimal.NewFromInt(flat).Add(decimal.NewFromInt(amount.Amount).Mul(rate))

	if discount, ok := c.schedule.TierDiscounts[tier]; ok {
		fee = fee.Mul(decimal.NewFromInt(1).Sub(discount))
	}

	return domain.NewMoney(fee.Round(0).IntPart(), amount.Currency), nil
}
