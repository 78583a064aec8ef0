package domain

import "time"

// LimitPeriod is a rolling calendar window for withdrawal limits.
type LimitPeriod string

const (
	PeriodDaily   LimitPeriod = "daily"
	PeriodWeekly  LimitPeriod = "weekly"
	PeriodMonthly LimitPeriod = "monthly"
)

// WithdrawalLimit caps withdrawal count and total amount within a period.
type WithdrawalLimit struct {
	Period    LimitPeriod
	MaxCount  int
	MaxAmount Money
}

// WouldExceed reports whether one more withdrawal of proposedAmount would
// breach this limit, given the count and summed amount already recorded in
// the current period. When the count is already at or over MaxCount the
// breach is LimitTypeCount, otherwise LimitTypeAmount. Pure, no I/O.
func (l WithdrawalLimit) WouldExceed(currentCount int, currentAmount, proposedAmount Money) (bool, LimitType) {
	if currentCount+1 > l.MaxCount {
		return true, LimitTypeCount
	}

	total, err := currentAmount.Add(proposedAmount)
	if err != nil {
		// Mismatched currency cannot be summed against the cap; treat as breach.
		return true, LimitTypeAmount
	}

	if total.Amount > l.MaxAmount.Amount {
		return true, LimitTypeAmount
	}

	return false, ""
}

// PeriodStart returns the inclusive lower bound of the current window in UTC:
// daily is midnight of the current day, weekly the most recent weekStart
// (Monday unless configured otherwise), monthly the first of the month.
func PeriodStart(period LimitPeriod, now time.Time, weekStart time.Weekday) time.Time {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch period {
	case PeriodWeekly:
		daysBack := int(now.Weekday()-weekStart+7) % 7
		return midnight.AddDate(0, 0, -daysBack)
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return midnight
	}
}
