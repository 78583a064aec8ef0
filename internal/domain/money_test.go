package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_Add(t *testing.T) {
	tests := []struct {
		name        string
		a           Money
		b           Money
		want        int64
		expectError bool
	}{
		{
			name: "same currency",
			a:    NewMoney(1000, NGN),
			b:    NewMoney(250, NGN),
			want: 1250,
		},
		{
			name:        "currency mismatch",
			a:           NewMoney(1000, NGN),
			b:           NewMoney(250, USD),
			expectError: true,
		},
		{
			name: "add zero",
			a:    NewMoney(1000, EUR),
			b:    Zero(EUR),
			want: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)

			if tt.expectError {
				if !errors.Is(err, ErrCurrencyMismatch) {
					t.Errorf("expected ErrCurrencyMismatch, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Amount != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got.Amount)
			}
		})
	}
}

func TestMoney_Sub(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		got, err := NewMoney(1000, NGN).Sub(NewMoney(400, NGN))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Amount != 600 {
			t.Errorf("expected 600, got %d", got.Amount)
		}
	})

	t.Run("result may be negative", func(t *testing.T) {
		got, err := NewMoney(100, NGN).Sub(NewMoney(400, NGN))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsNegative() {
			t.Error("expected negative result")
		}
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := NewMoney(1000, USD).Sub(NewMoney(400, EUR))
		if !errors.Is(err, ErrCurrencyMismatch) {
			t.Errorf("expected ErrCurrencyMismatch, got %v", err)
		}
	})
}

func TestMoney_Cmp(t *testing.T) {
	a := NewMoney(500, NGN)
	b := NewMoney(1000, NGN)

	if got, _ := a.Cmp(b); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if got, _ := b.Cmp(a); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got, _ := a.Cmp(a); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}

	if _, err := a.Cmp(NewMoney(500, USD)); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestMoney_Percent(t *testing.T) {
	tests := []struct {
		name string
		m    Money
		rate string
		want int64
	}{
		{name: "five percent", m: NewMoney(10000, NGN), rate: "0.05", want: 500},
		{name: "rounds half up", m: NewMoney(1050, NGN), rate: "0.05", want: 53}, // 52.5 -> 53
		{name: "zero rate", m: NewMoney(10000, NGN), rate: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, _ := decimal.NewFromString(tt.rate)
			got := tt.m.Percent(rate)
			if got.Amount != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got.Amount)
			}
			if got.Currency != tt.m.Currency {
				t.Errorf("expected currency preserved, got %s", got.Currency)
			}
		})
	}
}

func TestMoneyFromDecimal(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
	}{
		{name: "whole units", value: "50.00", want: 5000},
		{name: "rounds half up", value: "0.005", want: 1},
		{name: "truncates below half", value: "0.004", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, _ := decimal.NewFromString(tt.value)
			got := MoneyFromDecimal(value, NGN)
			if got.Amount != tt.want {
				t.Errorf("expected %d minor units, got %d", tt.want, got.Amount)
			}
		})
	}
}

func TestMoney_String(t *testing.T) {
	got := NewMoney(123456, NGN).String()
	if got != "1234.56 NGN" {
		t.Errorf("expected \"1234.56 NGN\", got %q", got)
	}
}
