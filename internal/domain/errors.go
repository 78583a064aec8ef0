package domain

import (
	"errors"
	"fmt"
)

var (
	// Money errors
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrInvalidAmount    = errors.New("amount must be positive")

	// Plan errors
	ErrPlanNotFound          = errors.New("savings plan not found")
	ErrPlanNotOwned          = errors.New("savings plan does not belong to user")
	ErrInvalidPlanTransition = errors.New("invalid plan status transition")
	ErrNegativeBalance       = errors.New("withdrawal would make plan balance negative")

	// Wallet errors
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletInactive = errors.New("wallet is not active")

	// Withdrawal errors
	ErrWithdrawalNotEligible = errors.New("plan is not eligible for withdrawal")
	ErrInsufficientFunds     = errors.New("insufficient plan balance")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrWithdrawalNotFound    = errors.New("withdrawal not found")
)

// WithdrawalNotAllowedError is a business-rule block: a pending withdrawal
// already exists, or fees and penalty consume the whole amount.
type WithdrawalNotAllowedError struct {
	Reason string
}

func (e *WithdrawalNotAllowedError) Error() string {
	return "withdrawal not allowed: " + e.Reason
}

// LimitType identifies which half of a withdrawal limit was breached.
type LimitType string

const (
	LimitTypeCount  LimitType = "count"
	LimitTypeAmount LimitType = "amount"
)

// WithdrawalLimitExceededError is returned when a rolling-period limit
// would be breached by the prospective withdrawal.
type WithdrawalLimitExceededError struct {
	Period    LimitPeriod
	LimitType LimitType
}

func (e *WithdrawalLimitExceededError) Error() string {
	return fmt.Sprintf("%s withdrawal %s limit exceeded", e.Period, e.LimitType)
}

// MinimumBalanceViolationError is returned when a withdrawal would leave
// the plan below its minimum balance.
type MinimumBalanceViolationError struct {
	Requested      Money
	CurrentBalance Money
	MinimumBalance Money
}

func (e *MinimumBalanceViolationError) Error() string {
	return fmt.Sprintf("withdrawing %s from %s would breach minimum balance %s",
		e.Requested, e.CurrentBalance, e.MinimumBalance)
}

// ConcurrentWithdrawalError is returned when the plan row changed between
// load and the version-guarded save.
type ConcurrentWithdrawalError struct {
	PlanID          string
	ExpectedVersion int64
	ActualVersion   int64
}

func (e *ConcurrentWithdrawalError) Error() string {
	return fmt.Sprintf("concurrent modification of plan %s: expected version %d, found %d",
		e.PlanID, e.ExpectedVersion, e.ActualVersion)
}

// ComplianceError is returned when a transaction breaches tier limits.
type ComplianceError struct {
	Reason string
}

func (e *ComplianceError) Error() string {
	return "compliance check failed: " + e.Reason
}

// DatabaseError wraps a repository-level failure with the operation and
// table for diagnostics. Raw driver errors never escape the use cases.
type DatabaseError struct {
	Op    string
	Table string
	Err   error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error in %s on %s: %v", e.Op, e.Table, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError wraps err, passing through when it is already a domain
// error so sentinel checks keep working.
func NewDatabaseError(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}
	return &DatabaseError{Op: op, Table: table, Err: err}
}
