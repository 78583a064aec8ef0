package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/infrastructure/metrics"
)

// PlanUseCase handles savings-plan lifecycle: creation, contributions, and
// the pause/resume/cancel transitions. Plans are never physically deleted.
type PlanUseCase struct {
	savingsRepo SavingsRepository
	walletRepo  WalletRepository
	txRepo      TransactionRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewPlanUseCase creates a new PlanUseCase.
func NewPlanUseCase(
	savingsRepo SavingsRepository,
	walletRepo WalletRepository,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *PlanUseCase {
	return &PlanUseCase{
		savingsRepo: savingsRepo,
		walletRepo:  walletRepo,
		txRepo:      txRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		metrics:     m,
		logger:      logger,
	}
}

// CreatePlanInput represents input for creating a savings plan.
type CreatePlanInput struct {
	UserID            string
	PlanName          string
	DailyAmount       domain.Money
	CycleDurationDays int
	TargetAmount      *domain.Money
	MinimumBalance    domain.Money
	AllowEarlyExit    bool
}

// CreatePlan creates a new active savings plan.
func (uc *PlanUseCase) CreatePlan(ctx context.Context, input CreatePlanInput) (*domain.SavingsPlan, error) {
	if !input.DailyAmount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.CycleDurationDays <= 0 {
		return nil, errors.New("cycle duration must be positive")
	}
	if !input.DailyAmount.Currency.IsValid() {
		return nil, domain.ErrCurrencyMismatch
	}
	if input.TargetAmount != nil && input.TargetAmount.Currency != input.DailyAmount.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	now := time.Now().UTC()
	plan := &domain.SavingsPlan{
		ID:                uc.idGen.Generate(),
		UserID:            input.UserID,
		PlanName:          input.PlanName,
		DailyAmount:       input.DailyAmount,
		CycleDurationDays: input.CycleDurationDays,
		TargetAmount:      input.TargetAmount,
		CurrentAmount:     domain.Zero(input.DailyAmount.Currency),
		MinimumBalance:    input.MinimumBalance,
		Status:            domain.PlanStatusActive,
		AllowEarlyExit:    input.AllowEarlyExit,
		StartDate:         now,
		EndDate:           now.AddDate(0, 0, input.CycleDurationDays),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.savingsRepo.Create(ctx, plan); err != nil {
		return nil, domain.NewDatabaseError("create", "savings_plans", err)
	}

	uc.emit(ctx, plan.ID, domain.EventTypePlanCreated, map[string]any{
		"plan_id":      plan.ID,
		"user_id":      plan.UserID,
		"plan_name":    plan.PlanName,
		"daily_amount": plan.DailyAmount.Decimal().String(),
		"currency":     string(plan.DailyAmount.Currency),
	})
	uc.audit(ctx, domain.AuditActionPlanCreate, plan.ID, domain.MarshalState(plan))

	if uc.metrics != nil {
		uc.metrics.PlansCreated.Inc()
	}

	return plan, nil
}

// ContributeInput represents input for a plan contribution.
type ContributeInput struct {
	PlanID string
	UserID string
	Amount domain.Money
}

// Contribute debits the user's wallet and adds the amount to the plan,
// advancing streak and totals. The plan save is version-guarded; a stale
// read debits back the wallet and fails.
func (uc *PlanUseCase) Contribute(ctx context.Context, input ContributeInput) (*domain.SavingsPlan, error) {
	plan, err := uc.savingsRepo.FindByID(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return nil, err
		}
		return nil, domain.NewDatabaseError("find", "savings_plans", err)
	}

	if plan.UserID != input.UserID {
		return nil, domain.ErrPlanNotOwned
	}
	if plan.Status != domain.PlanStatusActive {
		return nil, domain.ErrInvalidPlanTransition
	}

	now := time.Now().UTC()

	updated, err := plan.ApplyContribution(input.Amount, now)
	if err != nil {
		return nil, err
	}

	if _, err := uc.walletRepo.Debit(ctx, input.UserID, input.Amount); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrWalletNotFound) {
			return nil, err
		}
		return nil, domain.NewDatabaseError("debit", "wallets", err)
	}

	if err := uc.savingsRepo.Update(ctx, updated); err != nil {
		// Debit already landed; put the money back.
		if _, debitErr := uc.walletRepo.Credit(ctx, input.UserID, input.Amount); debitErr != nil {
			uc.logger.Error().Err(debitErr).Str("plan_id", plan.ID).Msg("contribution rollback failed, manual reconciliation required")
		}

		var conflict *domain.ConcurrentWithdrawalError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, domain.NewDatabaseError("update", "savings_plans", err)
	}

	planID := plan.ID
	tx := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		PlanID:      &planID,
		Amount:      input.Amount,
		Fee:         domain.Zero(input.Amount.Currency),
		Penalty:     domain.Zero(input.Amount.Currency),
		Type:        domain.TransactionTypeContribution,
		Status:      domain.TransactionStatusCompleted,
		Reference:   domain.NewReference("CTR", now, uc.idGen.Generate()),
		Description: "savings plan contribution",
		CreatedAt:   now,
		CompletedAt: &now,
	}
	if err := uc.txRepo.Save(ctx, tx); err != nil {
		uc.logger.Error().Err(err).Str("plan_id", plan.ID).Msg("failed to record contribution transaction")
	}

	uc.emit(ctx, plan.ID, domain.EventTypeContributionRecorded, map[string]any{
		"plan_id":  plan.ID,
		"user_id":  input.UserID,
		"amount":   input.Amount.Decimal().String(),
		"currency": string(input.Amount.Currency),
		"streak":   updated.ContributionStreak,
	})
	uc.audit(ctx, domain.AuditActionContributionCreate, plan.ID, domain.MarshalState(updated))

	if uc.metrics != nil {
		uc.metrics.ContributionsRecorded.Inc()
	}

	return updated, nil
}

// Pause moves an active plan to paused.
func (uc *PlanUseCase) Pause(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
	return uc.transition(ctx, planID, userID, domain.PlanStatusPaused, domain.AuditActionPlanPause)
}

// Resume moves a paused plan back to active.
func (uc *PlanUseCase) Resume(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
	return uc.transition(ctx, planID, userID, domain.PlanStatusActive, domain.AuditActionPlanResume)
}

// Cancel soft-deletes the plan by moving it to cancelled.
func (uc *PlanUseCase) Cancel(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
	return uc.transition(ctx, planID, userID, domain.PlanStatusCancelled, domain.AuditActionPlanCancel)
}

func (uc *PlanUseCase) transition(ctx context.Context, planID, userID string, target domain.PlanStatus, action domain.AuditAction) (*domain.SavingsPlan, error) {
	plan, err := uc.savingsRepo.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return nil, err
		}
		return nil, domain.NewDatabaseError("find", "savings_plans", err)
	}

	if plan.UserID != userID {
		return nil, domain.ErrPlanNotOwned
	}

	updated, err := plan.TransitionTo(target, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.savingsRepo.Update(ctx, updated); err != nil {
		var conflict *domain.ConcurrentWithdrawalError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, domain.NewDatabaseError("update", "savings_plans", err)
	}

	uc.emit(ctx, plan.ID, domain.EventTypePlanStatusChanged, map[string]any{
		"plan_id": plan.ID,
		"from":    string(plan.Status),
		"to":      string(target),
	})
	uc.audit(ctx, action, plan.ID, domain.MarshalState(updated))

	return updated, nil
}

// GetPlan retrieves a plan, enforcing ownership.
func (uc *PlanUseCase) GetPlan(ctx context.Context, planID, userID string) (*domain.SavingsPlan, error) {
	plan, err := uc.savingsRepo.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return nil, err
		}
		return nil, domain.NewDatabaseError("find", "savings_plans", err)
	}
	if plan.UserID != userID {
		return nil, domain.ErrPlanNotOwned
	}
	return plan, nil
}

// ListPlansInput represents input for listing a user's plans.
type ListPlansInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListPlans lists plans for a user.
func (uc *PlanUseCase) ListPlans(ctx context.Context, input ListPlansInput) ([]*domain.SavingsPlan, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	plans, err := uc.savingsRepo.ListByUser(ctx, input.UserID, input.Limit, input.Offset)
	if err != nil {
		return nil, domain.NewDatabaseError("list", "savings_plans", err)
	}
	return plans, nil
}

// GetProgress computes the plan's progress summary.
func (uc *PlanUseCase) GetProgress(ctx context.Context, planID, userID string) (*domain.Progress, error) {
	plan, err := uc.GetPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}

	progress := plan.CalculateProgress(time.Now().UTC())
	return &progress, nil
}

func (uc *PlanUseCase) emit(ctx context.Context, aggregateID, eventType string, payload map[string]any) {
	if uc.outboxRepo == nil {
		return
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: domain.AggregateTypePlan,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.outboxRepo.Create(ctx, event); err != nil {
		uc.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to enqueue plan event")
	}
}

func (uc *PlanUseCase) audit(ctx context.Context, action domain.AuditAction, resourceID string, state domain.JSON) {
	if uc.auditRepo == nil {
		return
	}

	userID := "system"
	if user, ok := domain.UserFromContext(ctx); ok {
		userID = user.ID
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       userID,
		Action:       string(action),
		ResourceType: "savings_plan",
		ResourceID:   resourceID,
		AfterState:   state,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.auditRepo.Create(ctx, log); err != nil {
		uc.logger.Error().Err(err).Msg("failed to write audit log")
	}
}
