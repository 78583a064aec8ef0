package integration

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sproutfi/stash/internal/adapter/gateway"
	"github.com/sproutfi/stash/internal/adapter/repository/postgres"
	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/infrastructure/metrics"
	"github.com/sproutfi/stash/internal/policy"
	"github.com/sproutfi/stash/internal/usecase"
	"github.com/sproutfi/stash/tests/testutil"
)

// Prometheus collectors register once per binary.
var testMetrics = metrics.New()

// env wires real repositories and use cases against the test database.
type env struct {
	db             *testutil.TestDB
	savingsRepo    *postgres.SavingsPlanRepository
	walletRepo     *postgres.WalletRepository
	txRepo         *postgres.TransactionRepository
	withdrawalRepo *postgres.WithdrawalRepository
	outboxRepo     *postgres.OutboxRepository
	auditRepo      *postgres.AuditRepository
	userRepo       *postgres.UserRepository
	gateway        *gateway.Sandbox
	planUC         *usecase.PlanUseCase
	withdrawalUC   *usecase.WithdrawalUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(db.Cleanup)

	logger := zerolog.Nop()
	pool := db.Pool

	e := &env{
		db:             db,
		savingsRepo:    postgres.NewSavingsPlanRepository(pool),
		walletRepo:     postgres.NewWalletRepository(pool, postgres.NewRetrier(logger)),
		txRepo:         postgres.NewTransactionRepository(pool),
		withdrawalRepo: postgres.NewWithdrawalRepository(pool),
		outboxRepo:     postgres.NewOutboxRepository(pool),
		auditRepo:      postgres.NewAuditRepository(pool),
		userRepo:       postgres.NewUserRepository(pool),
		gateway:        gateway.NewSandbox(logger),
	}

	idGen := postgres.NewULIDGenerator()

	// Zero fee schedule keeps balance arithmetic exact; fee-sensitive tests
	// build their own use case via newWithdrawalUC.
	fees := policy.NewFeeCalculator(policy.FeeSchedule{})
	compliance := policy.NewComplianceChecker(policy.ComplianceRules{
		TierCaps: map[domain.KYCTier]int64{
			domain.TierBasic:    2_000_000,
			domain.TierVerified: 100_000_000,
			domain.TierPremium:  10_000_000_000,
		},
	}, e.userRepo)

	e.planUC = usecase.NewPlanUseCase(e.savingsRepo, e.walletRepo, e.txRepo, e.outboxRepo, e.auditRepo, idGen, testMetrics, logger)
	e.withdrawalUC = usecase.NewWithdrawalUseCase(e.deps(fees, compliance), defaultWithdrawalConfig())

	return e
}

func (e *env) deps(fees usecase.FeeService, compliance usecase.ComplianceService) usecase.WithdrawalDeps {
	return usecase.WithdrawalDeps{
		SavingsRepo:    e.savingsRepo,
		WalletRepo:     e.walletRepo,
		TxRepo:         e.txRepo,
		WithdrawalRepo: e.withdrawalRepo,
		UserRepo:       e.userRepo,
		Compliance:     compliance,
		Fees:           fees,
		Gateway:        e.gateway,
		OutboxRepo:     e.outboxRepo,
		AuditRepo:      e.auditRepo,
		IDGen:          postgres.NewULIDGenerator(),
		Metrics:        testMetrics,
		Logger:         zerolog.Nop(),
	}
}

// newWithdrawalUC builds a use case variant with a custom fee schedule and
// config, sharing the env's repositories and gateway.
func (e *env) newWithdrawalUC(fees usecase.FeeService, compliance usecase.ComplianceService, cfg usecase.WithdrawalConfig) *usecase.WithdrawalUseCase {
	return usecase.NewWithdrawalUseCase(e.deps(fees, compliance), cfg)
}

func zeroFees() usecase.FeeService {
	return policy.NewFeeCalculator(policy.FeeSchedule{})
}

// withConfig builds a use case variant with a custom limit config, keeping
// the zero fee schedule and default compliance rules.
func (e *env) withConfig(cfg usecase.WithdrawalConfig) *usecase.WithdrawalUseCase {
	return e.newWithdrawalUC(policy.NewFeeCalculator(policy.FeeSchedule{}), e.defaultCompliance(), cfg)
}

func (e *env) defaultCompliance() usecase.ComplianceService {
	return policy.NewComplianceChecker(policy.ComplianceRules{
		TierCaps: map[domain.KYCTier]int64{
			domain.TierBasic:    2_000_000,
			domain.TierVerified: 100_000_000,
			domain.TierPremium:  10_000_000_000,
		},
	}, e.userRepo)
}

func defaultWithdrawalConfig() usecase.WithdrawalConfig {
	return usecase.WithdrawalConfig{
		DailyLimit: domain.WithdrawalLimit{
			Period:    domain.PeriodDaily,
			MaxCount:  1000,
			MaxAmount: domain.NewMoney(1_000_000_000_000, domain.NGN),
		},
		WeeklyLimit: domain.WithdrawalLimit{
			Period:    domain.PeriodWeekly,
			MaxCount:  1000,
			MaxAmount: domain.NewMoney(1_000_000_000_000, domain.NGN),
		},
		MonthlyLimit: domain.WithdrawalLimit{
			Period:    domain.PeriodMonthly,
			MaxCount:  1000,
			MaxAmount: domain.NewMoney(1_000_000_000_000, domain.NGN),
		},
		WeekStart:       time.Monday,
		PenaltyRate:     decimal.NewFromFloat(0.05),
		CompleteOnDrain: true,
		Timeout:         30 * time.Second,
	}
}

func ngn(amount int64) domain.Money {
	return domain.NewMoney(amount, domain.NGN)
}
