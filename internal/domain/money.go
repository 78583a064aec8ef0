package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code supported by the service.
type Currency string

const (
	NGN Currency = "NGN"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

var supportedCurrencies = map[Currency]bool{
	NGN: true,
	USD: true,
	EUR: true,
}

// IsValid checks if the currency is supported.
func (c Currency) IsValid() bool {
	return supportedCurrencies[c]
}

// minorUnitScale is the number of decimal places in a major unit.
// All supported currencies use 2.
const minorUnitScale = 2

// Money is a fixed-point amount in integer minor units (kobo, cents)
// tagged with its currency. Arithmetic between different currencies fails.
type Money struct {
	Amount   int64
	Currency Currency
}

// NewMoney creates a Money from integer minor units.
func NewMoney(minorUnits int64, currency Currency) Money {
	return Money{Amount: minorUnits, Currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency Currency) Money {
	return Money{Amount: 0, Currency: currency}
}

// MoneyFromDecimal converts a major-unit decimal value to Money,
// rounding half-up to minor units.
func MoneyFromDecimal(value decimal.Decimal, currency Currency) Money {
	minor := value.Shift(minorUnitScale).Round(0)
	return Money{Amount: minor.IntPart(), Currency: currency}
}

// Decimal exposes the amount as a major-unit decimal for boundaries
// (DTOs, logs, gateway payloads). Internal math stays on minor units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.Amount).Shift(-minorUnitScale)
}

// Add returns m + other. Fails on currency mismatch.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub returns m - other. Fails on currency mismatch. The result may be
// negative; callers decide whether that is acceptable.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// Cmp compares m against other: -1 if m < other, 0 if equal, 1 if m > other.
// Fails on currency mismatch.
func (m Money) Cmp(other Money) (int, error) {
	if m.Currency != other.Currency {
		return 0, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	switch {
	case m.Amount < other.Amount:
		return -1, nil
	case m.Amount > other.Amount:
		return 1, nil
	default:
		return 0, nil
	}
}

// Percent returns rate*m rounded half-up to minor units.
// rate is a fraction, e.g. 0.05 for five percent.
func (m Money) Percent(rate decimal.Decimal) Money {
	amount := decimal.NewFromInt(m.Amount).Mul(rate).Round(0)
	return Money{Amount: amount.IntPart(), Currency: m.Currency}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// String renders the amount in major units with the currency code.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(minorUnitScale), m.Currency)
}
