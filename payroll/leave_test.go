package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/workforce-engine/generic"
	"github.com/warp/workforce-engine/payroll"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func unpaidLeave(id string, start, end generic.TimePoint, totalDays float64) payroll.LeaveRequest {
	return payroll.LeaveRequest{
		ID:        id,
		MemberID:  "member-1",
		Status:    payroll.LeaveApproved,
		IsPaid:    false,
		Start:     start,
		End:       end,
		TotalDays: decimal.NewFromFloat(totalDays),
	}
}

var march = payroll.PayPeriod{Year: 2024, Month: time.March}

// =============================================================================
// DEDUCTION RULES
// =============================================================================

func TestDeductions_HalfDayInsidePeriod_UsesStoredTotalExactly(t *testing.T) {
	// A 0.5-day leave fully inside the month deducts exactly 0.5 days -
	// the stored total is authoritative, never recomputed from the calendar.

	day := generic.NewTimePoint(2024, time.March, 10)
	rate := decimal.NewFromInt(100)

	lines := payroll.DeductionsForLeaves(march, rate, []payroll.LeaveRequest{
		unpaidLeave("lv-1", day, day, 0.5),
	})

	require.Len(t, lines, 1)
	assert.True(t, lines[0].DaysDeducted.Equal(decimal.NewFromFloat(0.5)),
		"expected exactly 0.5 days, got %s", lines[0].DaysDeducted)
	assert.True(t, lines[0].Amount.Equal(decimal.NewFromInt(50)),
		"expected amount 50.00, got %s", lines[0].Amount)
}

func TestDeductions_LeaveCrossingMonthBoundary_Recounted(t *testing.T) {
	// Leave spans 2024-01-28 to 2024-02-03. For January the clamped range is
	// Jan 28-31: 4 calendar days, not the stored 7-day total.

	january := payroll.PayPeriod{Year: 2024, Month: time.January}
	leave := unpaidLeave("lv-2",
		generic.NewTimePoint(2024, time.January, 28),
		generic.NewTimePoint(2024, time.February, 3), 7)
	rate := decimal.NewFromInt(100)

	lines := payroll.DeductionsForLeaves(january, rate, []payroll.LeaveRequest{leave})

	require.Len(t, lines, 1)
	line := lines[0]
	assert.True(t, line.EffectiveStart.Equal(generic.NewTimePoint(2024, time.January, 28)))
	assert.True(t, line.EffectiveEnd.Equal(generic.NewTimePoint(2024, time.January, 31)))
	assert.True(t, line.DaysDeducted.Equal(decimal.NewFromInt(4)),
		"expected 4 days, got %s", line.DaysDeducted)
	assert.True(t, line.Amount.Equal(decimal.NewFromInt(400)))
}

func TestDeductions_LeaveCrossingIntoPeriod_ClampedAtStart(t *testing.T) {
	// The same leave charged to February gets Feb 1-3: 3 days.

	february := payroll.PayPeriod{Year: 2024, Month: time.February}
	leave := unpaidLeave("lv-2",
		generic.NewTimePoint(2024, time.January, 28),
		generic.NewTimePoint(2024, time.February, 3), 7)

	lines := payroll.DeductionsForLeaves(february, decimal.NewFromInt(100), []payroll.LeaveRequest{leave})

	require.Len(t, lines, 1)
	assert.True(t, lines[0].EffectiveStart.Equal(generic.NewTimePoint(2024, time.February, 1)))
	assert.True(t, lines[0].DaysDeducted.Equal(decimal.NewFromInt(3)))
}

func TestDeductions_LeaveOutsidePeriod_NoLines(t *testing.T) {
	// Entirely before or entirely after the month: zero deduction lines.

	before := unpaidLeave("lv-3",
		generic.NewTimePoint(2024, time.February, 10),
		generic.NewTimePoint(2024, time.February, 12), 3)
	after := unpaidLeave("lv-4",
		generic.NewTimePoint(2024, time.April, 1),
		generic.NewTimePoint(2024, time.April, 2), 2)

	lines := payroll.DeductionsForLeaves(march, decimal.NewFromInt(100), []payroll.LeaveRequest{before, after})
	assert.Empty(t, lines)
}

func TestDeductions_PaidOrUnapprovedLeave_Excluded(t *testing.T) {
	day := generic.NewTimePoint(2024, time.March, 5)

	paid := unpaidLeave("lv-5", day, day, 1)
	paid.IsPaid = true
	pending := unpaidLeave("lv-6", day, day, 1)
	pending.Status = payroll.LeavePending

	lines := payroll.DeductionsForLeaves(march, decimal.NewFromInt(100), []payroll.LeaveRequest{paid, pending})
	assert.Empty(t, lines)
}

func TestDeductions_SpansEntireMonth_FullMonthRecounted(t *testing.T) {
	// Leave covering more than the whole month deducts every day of it.

	leave := unpaidLeave("lv-7",
		generic.NewTimePoint(2024, time.February, 20),
		generic.NewTimePoint(2024, time.April, 10), 51)

	lines := payroll.DeductionsForLeaves(march, decimal.NewFromInt(100), []payroll.LeaveRequest{leave})

	require.Len(t, lines, 1)
	assert.True(t, lines[0].DaysDeducted.Equal(decimal.NewFromInt(31)),
		"March has 31 days, got %s", lines[0].DaysDeducted)
}

func TestDeductions_RoundingHalfUp(t *testing.T) {
	// 1 day at 1234.565/30... final amounts round half up to 2 decimals.

	day := generic.NewTimePoint(2024, time.March, 11)
	rate := decimal.RequireFromString("41.155")

	lines := payroll.DeductionsForLeaves(march, rate, []payroll.LeaveRequest{
		unpaidLeave("lv-8", day, day, 1),
	})

	require.Len(t, lines, 1)
	assert.Equal(t, "41.16", lines[0].Amount.StringFixed(2))
}

// =============================================================================
// COMPANION ENTRY POINTS
// =============================================================================

func TestUnpaidDaysInPeriod_SumsClampedDays(t *testing.T) {
	leaves := []payroll.LeaveRequest{
		unpaidLeave("lv-9", generic.NewTimePoint(2024, time.March, 10), generic.NewTimePoint(2024, time.March, 10), 0.5),
		unpaidLeave("lv-10", generic.NewTimePoint(2024, time.March, 25), generic.NewTimePoint(2024, time.April, 2), 9),
	}

	days := payroll.UnpaidDaysInPeriod(march, leaves)
	// 0.5 + (Mar 25-31 = 7)
	assert.True(t, days.Equal(decimal.NewFromFloat(7.5)), "expected 7.5, got %s", days)
}

func TestHasUnpaidLeaveInPeriod(t *testing.T) {
	day := generic.NewTimePoint(2024, time.March, 10)
	assert.True(t, payroll.HasUnpaidLeaveInPeriod(march, []payroll.LeaveRequest{unpaidLeave("lv", day, day, 0.5)}))
	assert.False(t, payroll.HasUnpaidLeaveInPeriod(march, nil))
}

// =============================================================================
// PAY PERIOD
// =============================================================================

func TestPayPeriod_Bounds(t *testing.T) {
	p := payroll.PayPeriod{Year: 2024, Month: time.February}
	assert.True(t, p.Start().Equal(generic.NewTimePoint(2024, time.February, 1)))
	assert.True(t, p.End().Equal(generic.NewTimePoint(2024, time.February, 29)))
}
