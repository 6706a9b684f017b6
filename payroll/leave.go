/*
leave.go - Unpaid-leave deduction calculator

PURPOSE:
  Computes salary deductions for a pay period from approved unpaid leave.
  Works on leave slices so it stays a pure function; the store-backed
  Calculator wraps it with the tenant-scoped fetch.

DAY-COUNT RULES:
  - Leave fully inside the period: the stored TotalDays is authoritative.
    It already encodes half-day semantics (0.5), and half-day leaves are
    single-day by construction so they always land here.
  - Leave crossing a period boundary: the clamped range is recounted as
    inclusive calendar days. The stored TotalDays covers the whole leave
    and must not be charged to one month.

MONEY:
  amount = round2(days * dailyRate). The daily rate arrives precomputed as
  gross/30 (generic.DailyRate); day counts stay full precision until the
  final multiplication.
*/
package payroll

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/warp/workforce-engine/generic"
)

// DeductionsForLeaves computes one DeductionLine per deductible leave that
// overlaps the pay period. Pure function; callers sum the lines for a
// period total.
func DeductionsForLeaves(period PayPeriod, dailyRate decimal.Decimal, leaves []LeaveRequest) []DeductionLine {
	var lines []DeductionLine
	for _, leave := range leaves {
		if !leave.deductible() || !period.Overlaps(leave.Start, leave.End) {
			continue
		}

		effectiveStart := leave.Start.Max(period.Start())
		effectiveEnd := leave.End.Min(period.End())
		days := daysToDeduct(period, leave, effectiveStart, effectiveEnd)

		lines = append(lines, DeductionLine{
			SourceID:       leave.ID,
			Label:          "unpaid leave",
			EffectiveStart: effectiveStart,
			EffectiveEnd:   effectiveEnd,
			DaysDeducted:   days,
			DailyRate:      dailyRate,
			Amount:         generic.Round2(days.Mul(dailyRate)),
		})
	}
	return lines
}

// daysToDeduct picks between the stored total and a recount of the clamped
// range.
func daysToDeduct(period PayPeriod, leave LeaveRequest, effectiveStart, effectiveEnd generic.TimePoint) decimal.Decimal {
	fullyInside := leave.Start.AfterOrEqual(period.Start()) && leave.End.BeforeOrEqual(period.End())
	if fullyInside {
		return leave.TotalDays
	}
	return decimal.NewFromInt(int64(generic.InclusiveDays(effectiveStart, effectiveEnd)))
}

// UnpaidDaysInPeriod returns only the total deductible day count for the
// period, using the same overlap and clamp rules as DeductionsForLeaves.
func UnpaidDaysInPeriod(period PayPeriod, leaves []LeaveRequest) decimal.Decimal {
	total := decimal.Zero
	for _, line := range DeductionsForLeaves(period, decimal.Zero, leaves) {
		total = total.Add(line.DaysDeducted)
	}
	return total
}

// HasUnpaidLeaveInPeriod is the quick eligibility check.
func HasUnpaidLeaveInPeriod(period PayPeriod, leaves []LeaveRequest) bool {
	return UnpaidDaysInPeriod(period, leaves).IsPositive()
}

// =============================================================================
// STORE-BACKED CALCULATOR
// =============================================================================

// Calculator fetches a member's approved unpaid leave and applies the
// deduction rules.
type Calculator struct {
	Store Store
}

func NewCalculator(store Store) *Calculator { return &Calculator{Store: store} }

// Deductions computes the member's unpaid-leave deduction lines for the
// given month at the given daily rate.
func (c *Calculator) Deductions(ctx context.Context, tenantID, memberID string, period PayPeriod, dailyRate decimal.Decimal) ([]DeductionLine, error) {
	leaves, err := c.Store.ApprovedUnpaidLeaves(ctx, tenantID, memberID, period.Start(), period.End())
	if err != nil {
		return nil, err
	}
	return DeductionsForLeaves(period, dailyRate, leaves), nil
}
