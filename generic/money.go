package generic

import "github.com/shopspring/decimal"

// =============================================================================
// MONEY HELPERS
// =============================================================================
// All monetary values and fractional day counts use decimal.Decimal.
// Intermediate day counts keep full precision (half-day leave is 0.5);
// rounding happens once, when a final currency amount is produced.

var thirtyDayMonth = decimal.NewFromInt(30)

// Round2 rounds a final monetary amount to 2 decimal places, half up.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// DailyRate converts a gross monthly salary to a per-day rate using the
// fixed 30-day month convention. The actual calendar length of the month is
// deliberately ignored; every payroll consumer relies on this.
func DailyRate(grossSalary decimal.Decimal) decimal.Decimal {
	return grossSalary.Div(thirtyDayMonth)
}
