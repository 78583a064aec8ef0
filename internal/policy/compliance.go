package policy

import (
	"context"
	"fmt"

	"github.com/sproutfi/stash/internal/domain"
)

// ComplianceRules caps single-transaction sizes per KYC tier and sets the
// threshold above which withdrawals carry an advisory tax warning. Amounts
// are minor units; a zero cap means the tier may not withdraw at all.
type ComplianceRules struct {
	TierCaps            map[domain.KYCTier]int64
	TaxWarningThreshold int64
}

// ComplianceChecker implements usecase.ComplianceService. It resolves the
// user's tier through the repository so the cap always reflects the current
// verification level, not the one captured at login.
type ComplianceChecker struct {
	rules ComplianceRules
	users UserTierResolver
}

// UserTierResolver narrows usecase.UserRepository to what compliance needs.
type UserTierResolver interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// NewComplianceChecker creates a ComplianceChecker.
func NewComplianceChecker(rules ComplianceRules, users UserTierResolver) *ComplianceChecker {
	return &ComplianceChecker{rules: rules, users: users}
}

// CheckCompliance rejects amounts above the user's tier cap.
func (c *ComplianceChecker) CheckCompliance(ctx context.Context, userID string, amount domain.Money) error {
	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		return domain.NewDatabaseError("find", "users", err)
	}

	cap, ok := c.rules.TierCaps[user.KYCTier]
	if !ok {
		return &domain.ComplianceError{Reason: fmt.Sprintf("unknown KYC tier %q", user.KYCTier)}
	}

	if amount.Amount > cap {
		return &domain.ComplianceError{
			Reason: fmt.Sprintf("amount %s exceeds the %s tier limit of %s",
				amount, user.KYCTier, domain.NewMoney(cap, amount.Currency)),
		}
	}

	return nil
}

// GetTaxWarning returns an advisory note for amounts above the configured
// threshold, or "" when none applies.
func (c *ComplianceChecker) GetTaxWarning(_ context.Context, amount domain.Money) (string, error) {
	if c.rules.TaxWarningThreshold > 0 && amount.Amount > c.rules.TaxWarningThreshold {
		return fmt.Sprintf("withdrawals above %s may be subject to withholding tax",
			domain.NewMoney(c.rules.TaxWarningThreshold, amount.Currency)), nil
	}
	return "", nil
}
