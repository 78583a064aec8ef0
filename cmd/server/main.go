package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/sproutfi/stash/internal/adapter/gateway"
	httpAdapter "github.com/sproutfi/stash/internal/adapter/http"
	"github.com/sproutfi/stash/internal/adapter/http/handler"
	"github.com/sproutfi/stash/internal/adapter/http/middleware"
	postgresRepo "github.com/sproutfi/stash/internal/adapter/repository/postgres"
	redisRepo "github.com/sproutfi/stash/internal/adapter/repository/redis"
	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/infrastructure/auth"
	"github.com/sproutfi/stash/internal/infrastructure/config"
	"github.com/sproutfi/stash/internal/infrastructure/eventpublisher"
	"github.com/sproutfi/stash/internal/infrastructure/logger"
	"github.com/sproutfi/stash/internal/infrastructure/metrics"
	"github.com/sproutfi/stash/internal/infrastructure/postgres"
	"github.com/sproutfi/stash/internal/infrastructure/redis"
	"github.com/sproutfi/stash/internal/policy"
	"github.com/sproutfi/stash/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	penaltyRate, err := cfg.PenaltyRateDecimal()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid penalty rate")
	}
	weekStart, err := cfg.WeekStart()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid week start")
	}
	walletFeeRate, err := decimalFromConfig(cfg.WalletFeeRate)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid wallet fee rate")
	}
	bankFeeRate, err := decimalFromConfig(cfg.BankFeeRate)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid bank fee rate")
	}

	ctx := context.Background()

	// Run migrations before taking traffic
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	retrier := postgresRepo.NewRetrier(appLogger)
	savingsRepo := postgresRepo.NewSavingsPlanRepository(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool, retrier)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	withdrawalRepo := postgresRepo.NewWithdrawalRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Policy services
	feeService := policy.NewFeeCalculator(policy.FeeSchedule{
		WalletFlat: cfg.WalletFeeFlat,
		WalletRate: walletFeeRate,
		BankFlat:   cfg.BankFeeFlat,
		BankRate:   bankFeeRate,
	})
	complianceService := policy.NewComplianceChecker(policy.ComplianceRules{
		TierCaps: map[domain.KYCTier]int64{
			domain.TierBasic:    cfg.BasicTierCap,
			domain.TierVerified: cfg.VerifiedTierCap,
			domain.TierPremium:  cfg.PremiumTierCap,
		},
		TaxWarningThreshold: cfg.TaxWarningThreshold,
	}, userRepo)
	paymentGateway := gateway.NewSandbox(appLogger)

	// Initialize use cases
	planUC := usecase.NewPlanUseCase(savingsRepo, walletRepo, txRepo, outboxRepo, auditRepo, idGen, m, appLogger)
	withdrawalUC := usecase.NewWithdrawalUseCase(usecase.WithdrawalDeps{
		SavingsRepo:    savingsRepo,
		WalletRepo:     walletRepo,
		TxRepo:         txRepo,
		WithdrawalRepo: withdrawalRepo,
		UserRepo:       userRepo,
		Compliance:     complianceService,
		Fees:           feeService,
		Gateway:        paymentGateway,
		OutboxRepo:     outboxRepo,
		AuditRepo:      auditRepo,
		IDGen:          idGen,
		Metrics:        m,
		Logger:         appLogger,
	}, usecase.WithdrawalConfig{
		DailyLimit: domain.WithdrawalLimit{
			Period:    domain.PeriodDaily,
			MaxCount:  cfg.DailyWithdrawalCount,
			MaxAmount: domain.NewMoney(cfg.DailyWithdrawalAmount, domain.NGN),
		},
		WeeklyLimit: domain.WithdrawalLimit{
			Period:    domain.PeriodWeekly,
			MaxCount:  cfg.WeeklyWithdrawalCount,
			MaxAmount: domain.NewMoney(cfg.WeeklyWithdrawalAmount, domain.NGN),
		},
		MonthlyLimit: domain.WithdrawalLimit{
			Period:    domain.PeriodMonthly,
			MaxCount:  cfg.MonthlyWithdrawalCount,
			MaxAmount: domain.NewMoney(cfg.MonthlyWithdrawalAmount, domain.NGN),
		},
		WeekStart:       weekStart,
		PenaltyRate:     penaltyRate,
		CompleteOnDrain: cfg.CompleteOnDrain,
		Timeout:         cfg.WithdrawalTimeout,
	})

	// Outbox relay
	relayCtx, relayCancel := context.WithCancel(ctx)
	defer relayCancel()

	relay := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(appLogger),
		Logger:     appLogger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go func() {
		if err := relay.Start(relayCtx); err != nil && relayCtx.Err() == nil {
			log.Error().Err(err).Msg("outbox relay stopped")
		}
	}()

	// Initialize handlers
	planHandler := handler.NewPlanHandler(planUC)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalUC)
	walletHandler := handler.NewWalletHandler(walletRepo)
	transactionHandler := handler.NewTransactionHandler(txRepo)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var jwtManager *auth.JWTManager
	var authHandler *handler.AuthHandler
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		authHandler = handler.NewAuthHandler(jwtManager)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PlanHandler:        planHandler,
		WithdrawalHandler:  withdrawalHandler,
		WalletHandler:      walletHandler,
		TransactionHandler: transactionHandler,
		AuthHandler:        authHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		AuthEnabled:        cfg.AuthEnabled,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(100, 200),
		Metrics:            m,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	relayCancel()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func decimalFromConfig(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(value)
}
