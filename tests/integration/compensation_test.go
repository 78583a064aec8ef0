package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/sproutfi/stash/internal/adapter/gateway"
	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/usecase"
)

func TestWithdrawalCompensation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	e := newEnv(t)

	t.Run("gateway rejection leaves plan and wallet untouched", func(t *testing.T) {
		e.db.TruncateAll(ctx)

		user := e.db.CreateTestUser(ctx, "rejected", domain.TierVerified)
		e.db.CreateTestWallet(ctx, user.ID, ngn(0))
		plan := e.db.CreateTestPlan(ctx, &domain.SavingsPlan{
			UserID:        user.ID,
			CurrentAmount: ngn(100_000),
		})

		bankAccount := "acct-999"
		input := usecase.WithdrawInput{
			PlanID:        plan.ID,
			UserID:        user.ID,
			Amount:        ngn(40_000),
			Destination:   domain.DestinationBank,
			BankAccountID: &bankAccount,
		}

		e.gateway.FailNext()
		_, err := e.withdrawalUC.Withdraw(ctx, input)
		if !errors.Is(err, gateway.ErrPayoutRejected) {
			t.Fatalf("expected gateway rejection, got %v", err)
		}

		// No money moved and the failed record does not block retries.
		saved, _ := e.savingsRepo.FindByID(ctx, plan.ID)
		if saved.CurrentAmount.Amount != 100_000 {
			t.Errorf("expected plan balance unchanged at 100000, got %d", saved.CurrentAmount.Amount)
		}
		if saved.Version != plan.Version {
			t.Errorf("expected plan version unchanged at %d, got %d", plan.Version, saved.Version)
		}
		wallet, _ := e.walletRepo.FindByUser(ctx, user.ID)
		if !wallet.Balance.IsZero() {
			t.Errorf("expected wallet untouched, got %d", wallet.Balance.Amount)
		}

		pending, err := e.withdrawalRepo.HasPendingWithdrawals(ctx, plan.ID)
		if err != nil {
			t.Fatalf("pending check failed: %v", err)
		}
		if pending {
			t.Fatal("failed withdrawal left a pending record")
		}

		// The retry goes through once the gateway recovers.
		result, err := e.withdrawalUC.Withdraw(ctx, input)
		if err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if result.Status != "success" {
			t.Errorf("expected retry success, got %s", result.Status)
		}
	})

	t.Run("version conflict after side effects debits the wallet back", func(t *testing.T) {
		e.db.TruncateAll(ctx)

		user := e.db.CreateTestUser(ctx, "conflicted", domain.TierVerified)
		e.db.CreateTestWallet(ctx, user.ID, ngn(0))
		plan := e.db.CreateTestPlan(ctx, &domain.SavingsPlan{
			UserID:        user.ID,
			CurrentAmount: ngn(100_000),
		})

		// A conflicting writer bumps the plan version mid-flight via a
		// savings repository that mutates the row between the orchestrator's
		// initial load and its commit-time re-fetch.
		conflicting := &conflictOnFirstFind{inner: e.savingsRepo, env: e}
		deps := e.deps(zeroFees(), e.defaultCompliance())
		deps.SavingsRepo = conflicting
		uc := usecase.NewWithdrawalUseCase(deps, defaultWithdrawalConfig())

		_, err := uc.Withdraw(ctx, usecase.WithdrawInput{
			PlanID:      plan.ID,
			UserID:      user.ID,
			Amount:      ngn(40_000),
			Destination: domain.DestinationWallet,
		})
		var conflict *domain.ConcurrentWithdrawalError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected ConcurrentWithdrawalError, got %v", err)
		}

		// Compensation must have debited the wallet credit back.
		wallet, _ := e.walletRepo.FindByUser(ctx, user.ID)
		if !wallet.Balance.IsZero() {
			t.Errorf("expected wallet debited back to 0, got %d", wallet.Balance.Amount)
		}

		// A compensation event is queued for downstream consumers.
		events, err := e.outboxRepo.GetUnpublished(ctx, 20)
		if err != nil {
			t.Fatalf("failed to fetch outbox events: %v", err)
		}
		found := false
		for _, event := range events {
			if event.EventType == domain.EventTypeWithdrawalCompensated {
				found = true
			}
		}
		if !found {
			t.Error("expected a withdrawal compensated outbox event")
		}
	})
}

// conflictOnFirstFind serves the first FindByID normally, then bumps the
// stored plan version before any subsequent read, simulating a concurrent
// writer landing between load and commit.
type conflictOnFirstFind struct {
	inner usecase.SavingsRepository
	env   *env
	calls int
}

func (r *conflictOnFirstFind) FindByID(ctx context.Context, id string) (*domain.SavingsPlan, error) {
	r.calls++
	if r.calls == 2 {
		if _, err := r.env.db.Pool.Exec(ctx, `UPDATE savings_plans SET version = version + 1 WHERE id = $1`, id); err != nil {
			return nil, err
		}
	}
	return r.inner.FindByID(ctx, id)
}

func (r *conflictOnFirstFind) Create(ctx context.Context, plan *domain.SavingsPlan) error {
	return r.inner.Create(ctx, plan)
}

func (r *conflictOnFirstFind) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.SavingsPlan, error) {
	return r.inner.ListByUser(ctx, userID, limit, offset)
}

func (r *conflictOnFirstFind) Update(ctx context.Context, plan *domain.SavingsPlan) error {
	return r.inner.Update(ctx, plan)
}
