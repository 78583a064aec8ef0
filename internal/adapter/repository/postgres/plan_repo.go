// Package postgres implements the usecase repository interfaces on pgx.
// Money columns are BIGINT minor units next to a currency column, so sums
// and comparisons happen in integer arithmetic all the way down.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sproutfi/stash/internal/domain"
)

// SavingsPlanRepository implements usecase.SavingsRepository.
type SavingsPlanRepository struct {
	pool *pgxpool.Pool
}

// NewSavingsPlanRepository creates a new SavingsPlanRepository.
func NewSavingsPlanRepository(pool *pgxpool.Pool) *SavingsPlanRepository {
	return &SavingsPlanRepository{pool: pool}
}

const planColumns = `
	id, user_id, plan_name, daily_amount, currency, cycle_duration_days,
	target_amount, current_amount, minimum_balance, status, allow_early_exit,
	start_date, end_date, contribution_streak, total_contributions, version,
	created_at, updated_at
`

// Create inserts a new savings plan.
func (r *SavingsPlanRepository) Create(ctx context.Context, plan *domain.SavingsPlan) error {
	query := `
		INSERT INTO savings_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	var target *int64
	if plan.TargetAmount != nil {
		target = &plan.TargetAmount.Amount
	}

	_, err := r.pool.Exec(ctx, query,
		plan.ID,
		plan.UserID,
		plan.PlanName,
		plan.DailyAmount.Amount,
		string(plan.DailyAmount.Currency),
		plan.CycleDurationDays,
		target,
		plan.CurrentAmount.Amount,
		plan.MinimumBalance.Amount,
		string(plan.Status),
		plan.AllowEarlyExit,
		plan.StartDate,
		plan.EndDate,
		plan.ContributionStreak,
		plan.TotalContributions,
		plan.Version,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	return err
}

// FindByID retrieves a plan by ID.
func (r *SavingsPlanRepository) FindByID(ctx context.Context, id string) (*domain.SavingsPlan, error) {
	query := `SELECT ` + planColumns + ` FROM savings_plans WHERE id = $1`

	plan, err := scanPlan(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}

		return nil, err
	}

	return plan, nil
}

// ListByUser lists a user's plans, newest first.
func (r *SavingsPlanRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.SavingsPlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM savings_plans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.SavingsPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// Update persists the plan only if the stored version is exactly one behind
// plan.Version. The version predicate and the write are a single atomic
// statement; a stale version surfaces as ConcurrentWithdrawalError.
func (r *SavingsPlanRepository) Update(ctx context.Context, plan *domain.SavingsPlan) error {
	query := `
		UPDATE savings_plans
		SET current_amount = $1,
		    status = $2,
		    contribution_streak = $3,
		    total_contributions = $4,
		    version = $5,
		    updated_at = $6
		WHERE id = $7 AND version = $8
	`

	tag, err := r.pool.Exec(ctx, query,
		plan.CurrentAmount.Amount,
		string(plan.Status),
		plan.ContributionStreak,
		plan.TotalContributions,
		plan.Version,
		plan.UpdatedAt,
		plan.ID,
		plan.Version-1,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		current, err := r.FindByID(ctx, plan.ID)
		if err != nil {
			return err
		}

		return &domain.ConcurrentWithdrawalError{
			PlanID:          plan.ID,
			ExpectedVersion: plan.Version - 1,
			ActualVersion:   current.Version,
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*domain.SavingsPlan, error) {
	var (
		plan     domain.SavingsPlan
		currency string
		daily    int64
		target   *int64
		current  int64
		minimum  int64
		status   string
	)

	err := row.Scan(
		&plan.ID,
		&plan.UserID,
		&plan.PlanName,
		&daily,
		&currency,
		&plan.CycleDurationDays,
		&target,
		&current,
		&minimum,
		&status,
		&plan.AllowEarlyExit,
		&plan.StartDate,
		&plan.EndDate,
		&plan.ContributionStreak,
		&plan.TotalContributions,
		&plan.Version,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	cur := domain.Currency(currency)
	plan.DailyAmount = domain.NewMoney(daily, cur)
	plan.CurrentAmount = domain.NewMoney(current, cur)
	plan.MinimumBalance = domain.NewMoney(minimum, cur)
	plan.Status = domain.PlanStatus(status)

	if target != nil {
		t := domain.NewMoney(*target, cur)
		plan.TargetAmount = &t
	}

	return &plan, nil
}
