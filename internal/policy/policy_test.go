package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sproutfi/stash/internal/domain"
)

func testSchedule() FeeSchedule {
	return FeeSchedule{
		WalletFlat: 25_00,
		WalletRate: decimal.RequireFromString("0.005"),
		BankFlat:   50_00,
		BankRate:   decimal.RequireFromString("0.01"),
		TierDiscounts: map[domain.KYCTier]decimal.Decimal{
			domain.TierPremium: decimal.RequireFromString("0.5"),
		},
	}
}

func TestCalculateFees(t *testing.T) {
	calc := NewFeeCalculator(testSchedule())
	amount := domain.NewMoney(100_000_00, domain.NGN)

	tests := []struct {
		name        string
		destination domain.WithdrawalDestination
		tier        domain.KYCTier
		want        int64
	}{
		{
			// 25.00 + 0.5% of 100,000.00
			name:        "wallet basic",
			destination: domain.DestinationWallet,
			tier:        domain.TierBasic,
			want:        525_00,
		},
		{
			// 50.00 + 1% of 100,000.00
			name:        "bank basic",
			destination: domain.DestinationBank,
			tier:        domain.TierBasic,
			want:        1_050_00,
		},
		{
			name:        "bank premium half price",
			destination: domain.DestinationBank,
			tier:        domain.TierPremium,
			want:        525_00,
		},
		{
			name:        "unknown tier pays full",
			destination: domain.DestinationWallet,
			tier:        domain.KYCTier("gold"),
			want:        525_00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := calc.CalculateFees(context.Background(), amount, tt.destination, tt.tier)
			if err != nil {
				t.Fatalf("CalculateFees() error = %v", err)
			}
			if fee.Amount != tt.want {
				t.Errorf("fee = %d, want %d", fee.Amount, tt.want)
			}
			if fee.Currency != amount.Currency {
				t.Errorf("fee currency = %s, want %s", fee.Currency, amount.Currency)
			}
		})
	}
}

func TestCalculateFees_RoundsHalfUp(t *testing.T) {
	calc := NewFeeCalculator(FeeSchedule{
		WalletRate: decimal.RequireFromString("0.005"),
	})

	// 0.5% of 1.01 is 0.505 minor units, rounds up to 1.
	fee, err := calc.CalculateFees(context.Background(), domain.NewMoney(101, domain.NGN), domain.DestinationWallet, domain.TierBasic)
	if err != nil {
		t.Fatalf("CalculateFees() error = %v", err)
	}
	if fee.Amount != 1 {
		t.Errorf("fee = %d, want 1", fee.Amount)
	}
}

type staticUsers map[string]*domain.User

func (s staticUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := s[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func testRules() ComplianceRules {
	return ComplianceRules{
		TierCaps: map[domain.KYCTier]int64{
			domain.TierBasic:    50_000_00,
			domain.TierVerified: 500_000_00,
			domain.TierPremium:  5_000_000_00,
		},
		TaxWarningThreshold: 100_000_00,
	}
}

func TestCheckCompliance(t *testing.T) {
	users := staticUsers{
		"basic":    {ID: "basic", KYCTier: domain.TierBasic},
		"verified": {ID: "verified", KYCTier: domain.TierVerified},
		"odd":      {ID: "odd", KYCTier: domain.KYCTier("gold")},
	}
	checker := NewComplianceChecker(testRules(), users)

	tests := []struct {
		name    string
		userID  string
		amount  int64
		wantErr bool
	}{
		{"basic under cap", "basic", 50_000_00, false},
		{"basic over cap", "basic", 50_000_01, true},
		{"verified passes where basic fails", "verified", 100_000_00, false},
		{"unknown tier rejected", "odd", 1_00, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.CheckCompliance(context.Background(), tt.userID, domain.NewMoney(tt.amount, domain.NGN))
			if tt.wantErr {
				var complianceErr *domain.ComplianceError
				if !errors.As(err, &complianceErr) {
					t.Fatalf("CheckCompliance() error = %v, want ComplianceError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CheckCompliance() error = %v", err)
			}
		})
	}
}

func TestGetTaxWarning(t *testing.T) {
	checker := NewComplianceChecker(testRules(), staticUsers{})

	warning, err := checker.GetTaxWarning(context.Background(), domain.NewMoney(100_000_01, domain.NGN))
	if err != nil {
		t.Fatalf("GetTaxWarning() error = %v", err)
	}
	if warning == "" {
		t.Error("expected a warning above the threshold")
	}

	warning, err = checker.GetTaxWarning(context.Background(), domain.NewMoney(100_000_00, domain.NGN))
	if err != nil {
		t.Fatalf("GetTaxWarning() error = %v", err)
	}
	if warning != "" {
		t.Errorf("warning = %q, want none at the threshold", warning)
	}
}
