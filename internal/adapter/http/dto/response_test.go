package dto

import (
	"testing"
	"time"

	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/usecase"
)

func TestPlanFromDomain(t *testing.T) {
	target := domain.NewMoney(1000000, domain.NGN)
	plan := &domain.SavingsPlan{
		ID:             "plan-1",
		UserID:         "user-1",
		PlanName:       "Rent",
		DailyAmount:    domain.NewMoney(50000, domain.NGN),
		CurrentAmount:  domain.NewMoney(250000, domain.NGN),
		MinimumBalance: domain.NewMoney(0, domain.NGN),
		TargetAmount:   &target,
		Status:         domain.PlanStatusActive,
		Version:        3,
	}

	resp := PlanFromDomain(plan)

	if resp.Currency != "NGN" {
		t.Fatalf("expected NGN, got %s", resp.Currency)
	}
	if resp.DailyAmount.String() != "500" {
		t.Fatalf("expected daily amount 500, got %s", resp.DailyAmount)
	}
	if resp.TargetAmount == nil || resp.TargetAmount.String() != "10000" {
		t.Fatalf("expected target 10000, got %v", resp.TargetAmount)
	}
	if resp.Status != "active" || resp.Version != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWithdrawFromResult(t *testing.T) {
	result := &usecase.WithdrawResult{
		TransactionID: "tx-1",
		WithdrawalID:  "wd-1",
		Reference:     "WDR-1-abc",
		NetAmount:     domain.NewMoney(95000, domain.NGN),
		Fee:           domain.NewMoney(5000, domain.NGN),
		Penalty:       domain.NewMoney(0, domain.NGN),
		Early:         false,
		Status:        "success",
		Message:       "withdrawal successful",
	}

	resp := WithdrawFromResult(result)

	if resp.NetAmount.String() != "950" || resp.Fee.String() != "50" {
		t.Fatalf("expected major-unit amounts, got net=%s fee=%s", resp.NetAmount, resp.Fee)
	}
	if resp.Currency != "NGN" || resp.Reference != "WDR-1-abc" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTransactionFromDomain(t *testing.T) {
	completed := time.Now()
	planID := "plan-1"
	tx := &domain.Transaction{
		ID:          "tx-1",
		UserID:      "user-1",
		PlanID:      &planID,
		Amount:      domain.NewMoney(100000, domain.USD),
		Fee:         domain.NewMoney(500, domain.USD),
		Penalty:     domain.NewMoney(0, domain.USD),
		Type:        domain.TransactionTypeWithdrawal,
		Status:      domain.TransactionStatusCompleted,
		Reference:   "WDR-1-xyz",
		CompletedAt: &completed,
	}

	resp := TransactionFromDomain(tx)

	if resp.Currency != "USD" || resp.Amount.String() != "1000" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Type != "withdrawal" || resp.CompletedAt == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
