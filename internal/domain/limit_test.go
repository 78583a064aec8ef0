package domain

import (
	"testing"
	"time"
)

func TestWithdrawalLimit_WouldExceed(t *testing.T) {
	limit := WithdrawalLimit{
		Period:    PeriodDaily,
		MaxCount:  3,
		MaxAmount: NewMoney(100_000, NGN),
	}

	tests := []struct {
		name          string
		currentCount  int
		currentAmount Money
		proposed      Money
		wantExceed    bool
		wantType      LimitType
	}{
		{
			name:          "well under both limits",
			currentCount:  0,
			currentAmount: Zero(NGN),
			proposed:      NewMoney(10_000, NGN),
			wantExceed:    false,
		},
		{
			name:          "count at max",
			currentCount:  3,
			currentAmount: NewMoney(30_000, NGN),
			proposed:      NewMoney(1_000, NGN),
			wantExceed:    true,
			wantType:      LimitTypeCount,
		},
		{
			name:          "count over max",
			currentCount:  5,
			currentAmount: Zero(NGN),
			proposed:      NewMoney(1_000, NGN),
			wantExceed:    true,
			wantType:      LimitTypeCount,
		},
		{
			name:          "amount would exceed",
			currentCount:  1,
			currentAmount: NewMoney(95_000, NGN),
			proposed:      NewMoney(10_000, NGN),
			wantExceed:    true,
			wantType:      LimitTypeAmount,
		},
		{
			name:          "amount exactly at max is allowed",
			currentCount:  1,
			currentAmount: NewMoney(90_000, NGN),
			proposed:      NewMoney(10_000, NGN),
			wantExceed:    false,
		},
		{
			name:          "count takes precedence over amount",
			currentCount:  3,
			currentAmount: NewMoney(99_999, NGN),
			proposed:      NewMoney(10_000, NGN),
			wantExceed:    true,
			wantType:      LimitTypeCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exceed, limitType := limit.WouldExceed(tt.currentCount, tt.currentAmount, tt.proposed)

			if exceed != tt.wantExceed {
				t.Errorf("expected exceed=%v, got %v", tt.wantExceed, exceed)
			}
			if tt.wantExceed && limitType != tt.wantType {
				t.Errorf("expected limit type %q, got %q", tt.wantType, limitType)
			}
		})
	}
}

func TestWithdrawalLimit_WouldExceedIsPure(t *testing.T) {
	limit := WithdrawalLimit{Period: PeriodWeekly, MaxCount: 5, MaxAmount: NewMoney(50_000, NGN)}

	first, firstType := limit.WouldExceed(2, NewMoney(20_000, NGN), NewMoney(40_000, NGN))
	second, secondType := limit.WouldExceed(2, NewMoney(20_000, NGN), NewMoney(40_000, NGN))

	if first != second || firstType != secondType {
		t.Error("identical inputs must yield identical results")
	}
}

func TestPeriodStart(t *testing.T) {
	// Thursday 2024-06-13 15:04:05 UTC
	now := time.Date(2024, 6, 13, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		period    LimitPeriod
		weekStart time.Weekday
		want      time.Time
	}{
		{
			name:   "daily truncates to midnight",
			period: PeriodDaily,
			want:   time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "weekly with Monday start",
			period:    PeriodWeekly,
			weekStart: time.Monday,
			want:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "weekly with Sunday start",
			period:    PeriodWeekly,
			weekStart: time.Sunday,
			want:      time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "monthly truncates to first of month",
			period: PeriodMonthly,
			want:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodStart(tt.period, now, tt.weekStart)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPeriodStart_OnWeekStartDay(t *testing.T) {
	// Monday itself starts a new week
	monday := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	got := PeriodStart(PeriodWeekly, monday, time.Monday)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}
