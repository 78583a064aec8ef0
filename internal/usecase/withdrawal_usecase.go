package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/infrastructure/metrics"
)

// WithdrawalConfig carries the policy knobs the orchestrator needs. Penalty
// rate and week start come from configuration, never hardcoded.
type WithdrawalConfig struct {
	DailyLimit   domain.WithdrawalLimit
	WeeklyLimit  domain.WithdrawalLimit
	MonthlyLimit domain.WithdrawalLimit
	// WeekStart anchors the weekly window. Config defaults it to Monday.
	WeekStart   time.Weekday
	PenaltyRate decimal.Decimal
	// CompleteOnDrain marks a matured active plan completed when a
	// withdrawal empties it.
	CompleteOnDrain bool
	Timeout         time.Duration
}

// WithdrawalDeps bundles the orchestrator's collaborators. All are injected
// explicitly; nothing is resolved from ambient context.
type WithdrawalDeps struct {
	SavingsRepo    SavingsRepository
	WalletRepo     WalletRepository
	TxRepo         TransactionRepository
	WithdrawalRepo WithdrawalRepository
	UserRepo       UserRepository
	Compliance     ComplianceService
	Fees           FeeService
	Gateway        PaymentGateway
	OutboxRepo     OutboxRepository
	AuditRepo      AuditRepository
	IDGen          IDGenerator
	Metrics        *metrics.Metrics
	Logger         zerolog.Logger
}

// WithdrawalUseCase orchestrates savings-plan withdrawals: ordered
// validation, fee and penalty computation, disbursement, transaction
// recording, and a version-guarded plan save with compensation when the
// commit-time check fails after side effects.
type WithdrawalUseCase struct {
	deps WithdrawalDeps
	cfg  WithdrawalConfig
}

// NewWithdrawalUseCase creates a new WithdrawalUseCase.
func NewWithdrawalUseCase(deps WithdrawalDeps, cfg WithdrawalConfig) *WithdrawalUseCase {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultWithdrawalTimeout
	}
	return &WithdrawalUseCase{deps: deps, cfg: cfg}
}

// WithdrawInput is the request to withdraw from a plan.
type WithdrawInput struct {
	PlanID        string
	UserID        string
	Amount        domain.Money
	Destination   domain.WithdrawalDestination
	BankAccountID *string
}

// WithdrawResult is returned on success.
type WithdrawResult struct {
	TransactionID string
	WithdrawalID  string
	Reference     string
	NetAmount     domain.Money
	Fee           domain.Money
	Penalty       domain.Money
	Early         bool
	Status        string
	Message       string
}

// Withdraw runs the withdrawal pipeline. Validation steps execute strictly
// in order and short-circuit with a typed error; no side effect happens
// until every synchronous check has passed. Two independent defenses guard
// against double-withdrawal: the pending-record fast path before any
// mutation, and the version-guarded plan save at commit time.
func (uc *WithdrawalUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*WithdrawResult, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	result, err := uc.withdraw(ctx, input)

	if uc.deps.Metrics != nil {
		uc.deps.Metrics.WithdrawalDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			uc.deps.Metrics.WithdrawalErrors.WithLabelValues(errorLabel(err)).Inc()
		} else {
			uc.deps.Metrics.WithdrawalsCompleted.Inc()
		}
	}

	return result, err
}

func (uc *WithdrawalUseCase) withdraw(ctx context.Context, input WithdrawInput) (*WithdrawResult, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if !input.Destination.IsValid() {
		return nil, &domain.WithdrawalNotAllowedError{Reason: "unknown destination"}
	}
	if input.Destination == domain.DestinationBank && input.BankAccountID == nil {
		return nil, &domain.WithdrawalNotAllowedError{Reason: "bank destination requires a bank account"}
	}

	now := time.Now().UTC()

	// 1. Load plan
	plan, err := uc.deps.SavingsRepo.FindByID(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			return nil, err
		}
		return nil, domain.NewDatabaseError("find", "savings_plans", err)
	}

	// 2. Ownership
	if plan.UserID != input.UserID {
		return nil, domain.ErrPlanNotOwned
	}

	// 3. Pending-withdrawal guard. Coarse pre-check only; the version check
	// at save time remains authoritative.
	pending, err := uc.deps.WithdrawalRepo.HasPendingWithdrawals(ctx, input.PlanID)
	if err != nil {
		return nil, domain.NewDatabaseError("pending_check", "withdrawals", err)
	}
	if pending {
		return nil, &domain.WithdrawalNotAllowedError{Reason: "a withdrawal is already in progress for this plan"}
	}

	// 4. Eligibility
	early := false
	switch {
	case plan.CanWithdraw(now):
	case plan.CanEarlyWithdraw(now):
		early = true
	default:
		return nil, domain.ErrWithdrawalNotEligible
	}

	// 5. Rate limits: daily, weekly, monthly. First breach wins.
	limits := []domain.WithdrawalLimit{uc.cfg.DailyLimit, uc.cfg.WeeklyLimit, uc.cfg.MonthlyLimit}
	for _, limit := range limits {
		if err := uc.checkLimit(ctx, limit, input, now); err != nil {
			return nil, err
		}
	}

	// 6. Compliance; tax warning is advisory and never blocks.
	if err := uc.deps.Compliance.CheckCompliance(ctx, input.UserID, input.Amount); err != nil {
		return nil, err
	}

	taxWarning, err := uc.deps.Compliance.GetTaxWarning(ctx, input.Amount)
	if err != nil {
		uc.deps.Logger.Warn().Err(err).Str("user_id", input.UserID).Msg("tax warning lookup failed")
		taxWarning = ""
	}

	// 7. Fees, priced by KYC tier.
	user, err := uc.deps.UserRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, domain.NewDatabaseError("find", "users", err)
	}

	fee, err := uc.deps.Fees.CalculateFees(ctx, input.Amount, input.Destination, user.KYCTier)
	if err != nil {
		return nil, err
	}

	// 8. Minimum balance
	if !plan.CanWithdrawAmount(input.Amount) {
		return nil, &domain.MinimumBalanceViolationError{
			Requested:      input.Amount,
			CurrentBalance: plan.CurrentAmount,
			MinimumBalance: plan.MinimumBalance,
		}
	}

	// 9. Balance sufficiency
	if cmp, err := plan.CurrentAmount.Cmp(input.Amount); err != nil || cmp < 0 {
		if err != nil {
			return nil, err
		}
		return nil, domain.ErrInsufficientFunds
	}

	// 10. Penalty and net amount
	penalty := domain.Zero(input.Amount.Currency)
	if early {
		penalty = plan.CalculateEarlyWithdrawalPenalty(uc.cfg.PenaltyRate)
	}

	net := input.Amount
	for _, deduction := range []domain.Money{fee, penalty} {
		net, err = net.Sub(deduction)
		if err != nil {
			return nil, err
		}
	}
	if !net.IsPositive() {
		return nil, &domain.WithdrawalNotAllowedError{Reason: "fees and penalty exceed the withdrawal amount"}
	}

	// 11. Apply to the in-memory aggregate. originalVersion anchors the
	// optimistic-concurrency check below.
	originalVersion := plan.Version

	updatedPlan, err := plan.Withdraw(input.Amount, now)
	if err != nil {
		return nil, err
	}

	if uc.cfg.CompleteOnDrain && updatedPlan.CurrentAmount.IsZero() &&
		updatedPlan.Status == domain.PlanStatusActive && plan.IsMatured(now) {
		updatedPlan.Status = domain.PlanStatusCompleted
	}

	reference := domain.WithdrawalReference(now, uc.deps.IDGen.Generate())

	record := &domain.WithdrawalRecord{
		ID:            uc.deps.IDGen.Generate(),
		PlanID:        plan.ID,
		UserID:        plan.UserID,
		Amount:        input.Amount,
		NetAmount:     net,
		Destination:   input.Destination,
		BankAccountID: input.BankAccountID,
		Status:        domain.WithdrawalStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.deps.WithdrawalRepo.Create(ctx, record); err != nil {
		return nil, domain.NewDatabaseError("create", "withdrawals", err)
	}

	// 12. Disburse. From here on every failure must compensate.
	walletCredited := false
	switch input.Destination {
	case domain.DestinationWallet:
		if _, err := uc.deps.WalletRepo.Credit(ctx, input.UserID, net); err != nil {
			uc.failWithdrawal(ctx, record, "wallet credit failed")
			return nil, domain.NewDatabaseError("credit", "wallets", err)
		}
		walletCredited = true
	case domain.DestinationBank:
		if _, err := uc.deps.Gateway.ProcessPayment(ctx, ProcessPaymentInput{
			UserID:        input.UserID,
			BankAccountID: *input.BankAccountID,
			Amount:        net,
			Reference:     reference,
			Narration:     "savings plan withdrawal",
		}); err != nil {
			uc.failWithdrawal(ctx, record, "payment gateway rejected the payout")
			return nil, err
		}
	}

	// 13. Transaction record
	planID := plan.ID
	tx := &domain.Transaction{
		ID:              uc.deps.IDGen.Generate(),
		UserID:          plan.UserID,
		PlanID:          &planID,
		Amount:          input.Amount,
		Fee:             fee,
		Penalty:         penalty,
		Type:            domain.TransactionTypeWithdrawal,
		Status:          domain.TransactionStatusCompleted,
		Reference:       reference,
		Description:     withdrawalDescription(early, taxWarning),
		EarlyWithdrawal: early,
		CreatedAt:       now,
		CompletedAt:     &now,
	}
	if err := uc.deps.TxRepo.Save(ctx, tx); err != nil {
		uc.compensate(ctx, record, tx, walletCredited, net, "transaction save failed")
		return nil, domain.NewDatabaseError("save", "transactions", err)
	}

	record.TransactionID = tx.ID

	// 14. Optimistic concurrency verification. The credited wallet and the
	// completed transaction are already external state, so a stale version
	// here is the compensation scenario, not a plain failure.
	current, err := uc.deps.SavingsRepo.FindByID(ctx, plan.ID)
	if err != nil {
		uc.compensate(ctx, record, tx, walletCredited, net, "plan re-fetch failed")
		return nil, domain.NewDatabaseError("find", "savings_plans", err)
	}
	if current.Version != originalVersion {
		uc.compensate(ctx, record, tx, walletCredited, net, "concurrent plan modification")
		if uc.deps.Metrics != nil {
			uc.deps.Metrics.WithdrawalConflicts.Inc()
		}
		return nil, &domain.ConcurrentWithdrawalError{
			PlanID:          plan.ID,
			ExpectedVersion: originalVersion,
			ActualVersion:   current.Version,
		}
	}

	// 15. Version-guarded plan save. The repository re-validates the
	// version atomically in the UPDATE itself.
	if err := uc.deps.SavingsRepo.Update(ctx, updatedPlan); err != nil {
		uc.compensate(ctx, record, tx, walletCredited, net, "plan save failed")

		var conflict *domain.ConcurrentWithdrawalError
		if errors.As(err, &conflict) {
			if uc.deps.Metrics != nil {
				uc.deps.Metrics.WithdrawalConflicts.Inc()
			}
			return nil, err
		}
		return nil, domain.NewDatabaseError("update", "savings_plans", err)
	}

	record.Status = domain.WithdrawalStatusCompleted
	record.UpdatedAt = time.Now().UTC()
	if err := uc.deps.WithdrawalRepo.Update(ctx, record); err != nil {
		// The withdrawal itself is durable; log and move on.
		uc.deps.Logger.Error().Err(err).Str("withdrawal_id", record.ID).Msg("failed to complete withdrawal record")
	}

	uc.emitOutbox(ctx, record, tx, early)
	uc.audit(ctx, domain.AuditActionWithdrawalCreate, record.ID, domain.MarshalState(record), string(domain.AuditStatusSuccess), "")

	message := "withdrawal successful"
	if taxWarning != "" {
		message += ". " + taxWarning
	}

	return &WithdrawResult{
		TransactionID: tx.ID,
		WithdrawalID:  record.ID,
		Reference:     reference,
		NetAmount:     net,
		Fee:           fee,
		Penalty:       penalty,
		Early:         early,
		Status:        "success",
		Message:       message,
	}, nil
}

// checkLimit evaluates one rolling-period limit against the repository's
// aggregates for that window.
func (uc *WithdrawalUseCase) checkLimit(ctx context.Context, limit domain.WithdrawalLimit, input WithdrawInput, now time.Time) error {
	since := domain.PeriodStart(limit.Period, now, uc.cfg.WeekStart)

	count, err := uc.deps.WithdrawalRepo.GetWithdrawalCountSince(ctx, input.UserID, since)
	if err != nil {
		return domain.NewDatabaseError("count", "withdrawals", err)
	}

	amount, err := uc.deps.WithdrawalRepo.GetWithdrawalAmountSince(ctx, input.UserID, since, input.Amount.Currency)
	if err != nil {
		return domain.NewDatabaseError("sum", "withdrawals", err)
	}

	if exceeded, limitType := limit.WouldExceed(count, amount, input.Amount); exceeded {
		return &domain.WithdrawalLimitExceededError{Period: limit.Period, LimitType: limitType}
	}

	return nil
}

// failWithdrawal marks the pending record failed before any external side
// effect landed. Nothing to compensate yet.
func (uc *WithdrawalUseCase) failWithdrawal(ctx context.Context, record *domain.WithdrawalRecord, reason string) {
	record.Status = domain.WithdrawalStatusFailed
	record.FailureReason = reason
	record.UpdatedAt = time.Now().UTC()
	if err := uc.deps.WithdrawalRepo.Update(ctx, record); err != nil {
		uc.deps.Logger.Error().Err(err).Str("withdrawal_id", record.ID).Msg("failed to mark withdrawal failed")
	}
}

// compensate undoes external side effects after a post-disbursement failure:
// debit back the wallet credit, mark the transaction failed, mark the
// withdrawal record failed. The system must never report success nor leave a
// credited wallet without the matching plan debit.
func (uc *WithdrawalUseCase) compensate(ctx context.Context, record *domain.WithdrawalRecord, tx *domain.Transaction, walletCredited bool, net domain.Money, reason string) {
	logger := uc.deps.Logger.With().
		Str("withdrawal_id", record.ID).
		Str("plan_id", record.PlanID).
		Str("reason", reason).
		Logger()

	logger.Warn().Msg("compensating withdrawal")

	if walletCredited {
		if _, err := uc.deps.WalletRepo.Debit(ctx, record.UserID, net); err != nil {
			// Compensation itself failed: this needs an operator.
			logger.Error().Err(err).Msg("wallet debit-back failed, manual reconciliation required")
		}
	}

	if tx != nil {
		tx.Status = domain.TransactionStatusFailed
		tx.CompletedAt = nil
		if err := uc.deps.TxRepo.Update(ctx, tx); err != nil {
			logger.Error().Err(err).Str("transaction_id", tx.ID).Msg("failed to mark transaction failed")
		}
	}

	uc.failWithdrawal(ctx, record, reason)

	if uc.deps.OutboxRepo != nil {
		event := &domain.OutboxEvent{
			ID:            uc.deps.IDGen.Generate(),
			AggregateID:   record.ID,
			AggregateType: domain.AggregateTypeWithdrawal,
			EventType:     domain.EventTypeWithdrawalCompensated,
			Payload: map[string]any{
				"withdrawal_id": record.ID,
				"plan_id":       record.PlanID,
				"user_id":       record.UserID,
				"reason":        reason,
			},
			CreatedAt: time.Now().UTC(),
		}
		if err := uc.deps.OutboxRepo.Create(ctx, event); err != nil {
			logger.Error().Err(err).Msg("failed to enqueue compensation event")
		}
	}

	uc.audit(ctx, domain.AuditActionWithdrawalCompensate, record.ID, domain.MarshalState(record), string(domain.AuditStatusFailure), reason)

	if uc.deps.Metrics != nil {
		uc.deps.Metrics.WithdrawalsCompensated.Inc()
	}
}

func (uc *WithdrawalUseCase) emitOutbox(ctx context.Context, record *domain.WithdrawalRecord, tx *domain.Transaction, early bool) {
	if uc.deps.OutboxRepo == nil {
		return
	}

	event := &domain.OutboxEvent{
		ID:            uc.deps.IDGen.Generate(),
		AggregateID:   record.ID,
		AggregateType: domain.AggregateTypeWithdrawal,
		EventType:     domain.EventTypeWithdrawalCompleted,
		Payload: map[string]any{
			"withdrawal_id":  record.ID,
			"plan_id":        record.PlanID,
			"user_id":        record.UserID,
			"transaction_id": tx.ID,
			"amount":         record.Amount.Decimal().String(),
			"net_amount":     record.NetAmount.Decimal().String(),
			"currency":       string(record.Amount.Currency),
			"destination":    string(record.Destination),
			"early":          early,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.deps.OutboxRepo.Create(ctx, event); err != nil {
		uc.deps.Logger.Error().Err(err).Str("withdrawal_id", record.ID).Msg("failed to enqueue withdrawal event")
	}
}

func (uc *WithdrawalUseCase) audit(ctx context.Context, action domain.AuditAction, resourceID string, state domain.JSON, status, errMsg string) {
	if uc.deps.AuditRepo == nil {
		return
	}

	userID := "system"
	if user, ok := domain.UserFromContext(ctx); ok {
		userID = user.ID
	}

	log := &domain.AuditLog{
		ID:           uc.deps.IDGen.Generate(),
		UserID:       userID,
		Action:       string(action),
		ResourceType: "withdrawal",
		ResourceID:   resourceID,
		AfterState:   state,
		Status:       status,
		ErrorMessage: errMsg,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.deps.AuditRepo.Create(ctx, log); err != nil {
		uc.deps.Logger.Error().Err(err).Msg("failed to write audit log")
	}
}

func withdrawalDescription(early bool, taxWarning string) string {
	desc := "savings plan withdrawal"
	if early {
		desc = "early savings plan withdrawal"
	}
	if taxWarning != "" {
		desc += " (" + taxWarning + ")"
	}
	return desc
}

// errorLabel buckets pipeline errors for metrics.
func errorLabel(err error) string {
	var (
		limitErr      *domain.WithdrawalLimitExceededError
		minBalanceErr *domain.MinimumBalanceViolationError
		conflictErr   *domain.ConcurrentWithdrawalError
		notAllowed    *domain.WithdrawalNotAllowedError
		compliance    *domain.ComplianceError
		dbErr         *domain.DatabaseError
	)

	switch {
	case errors.Is(err, domain.ErrPlanNotFound):
		return "plan_not_found"
	case errors.Is(err, domain.ErrPlanNotOwned):
		return "not_owned"
	case errors.Is(err, domain.ErrWithdrawalNotEligible):
		return "not_eligible"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.As(err, &limitErr):
		return "limit_exceeded"
	case errors.As(err, &minBalanceErr):
		return "minimum_balance"
	case errors.As(err, &conflictErr):
		return "concurrent_modification"
	case errors.As(err, &notAllowed):
		return "not_allowed"
	case errors.As(err, &compliance):
		return "compliance"
	case errors.As(err, &dbErr):
		return "database"
	default:
		return "other"
	}
}
