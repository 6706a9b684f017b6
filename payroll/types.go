// Package payroll computes salary deductions and payroll run previews from
// approved unpaid leave and active loans. All monetary math uses
// decimal.Decimal; the fixed 30-day month convention (gross/30) sets every
// daily rate.
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/workforce-engine/generic"
)

// =============================================================================
// SALARY STRUCTURE
// =============================================================================

// SalaryStructure is one member's active compensation breakdown.
type SalaryStructure struct {
	MemberID   string
	MemberName string
	Basic      decimal.Decimal
	Housing    decimal.Decimal
	Transport  decimal.Decimal
	Food       decimal.Decimal
	Phone      decimal.Decimal
	Other      decimal.Decimal
}

// Gross sums all salary components.
func (s SalaryStructure) Gross() decimal.Decimal {
	return s.Basic.Add(s.Housing).Add(s.Transport).Add(s.Food).Add(s.Phone).Add(s.Other)
}

// =============================================================================
// LOANS
// =============================================================================

type LoanStatus string

const (
	LoanActive  LoanStatus = "active"
	LoanSettled LoanStatus = "settled"
)

// Loan is a staff loan repaid through monthly payroll deductions.
type Loan struct {
	ID               string
	MemberID         string
	Label            string
	Status           LoanStatus
	StartDate        generic.TimePoint
	MonthlyDeduction decimal.Decimal
	RemainingAmount  decimal.Decimal
}

// InstallmentFor caps the deduction at the remaining balance so the final
// installment never overshoots.
func (l Loan) InstallmentFor() decimal.Decimal {
	if l.RemainingAmount.LessThan(l.MonthlyDeduction) {
		return l.RemainingAmount
	}
	return l.MonthlyDeduction
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

type LeaveStatus string

const (
	LeaveApproved LeaveStatus = "approved"
	LeavePending  LeaveStatus = "pending"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest is read-only input from the leave workflow. TotalDays is
// authoritative for single-period leaves and supports 0.5 for half days;
// half-day leaves are single-day by validation upstream.
type LeaveRequest struct {
	ID          string
	MemberID    string
	Status      LeaveStatus
	LeaveTypeID string
	IsPaid      bool
	Start       generic.TimePoint
	End         generic.TimePoint
	TotalDays   decimal.Decimal
}

// deductible reports whether the request participates in unpaid-leave
// deduction at all.
func (l LeaveRequest) deductible() bool {
	return l.Status == LeaveApproved && !l.IsPaid
}

// =============================================================================
// PAY PERIOD
// =============================================================================

// PayPeriod is one calendar month, inclusive on both ends.
type PayPeriod struct {
	Year  int
	Month time.Month
}

func (p PayPeriod) Start() generic.TimePoint { return generic.StartOfMonth(p.Year, p.Month) }
func (p PayPeriod) End() generic.TimePoint   { return generic.EndOfMonth(p.Year, p.Month) }

// Overlaps reports whether [from, to] intersects the pay period: starts in
// it, ends in it, or spans it entirely.
func (p PayPeriod) Overlaps(from, to generic.TimePoint) bool {
	return from.BeforeOrEqual(p.End()) && to.AfterOrEqual(p.Start())
}

// =============================================================================
// DEDUCTION LINES AND PREVIEW
// =============================================================================

// DeductionLine is one deduction against a member's gross salary. Loan lines
// carry only SourceID, Label and Amount; leave lines also carry the clamped
// range, day count and daily rate.
type DeductionLine struct {
	SourceID       string
	Label          string
	EffectiveStart generic.TimePoint
	EffectiveEnd   generic.TimePoint
	DaysDeducted   decimal.Decimal
	DailyRate      decimal.Decimal
	Amount         decimal.Decimal
}

// EmployeePayrollLine is one member's projected payslip for the run.
type EmployeePayrollLine struct {
	MemberID        string
	MemberName      string
	Gross           decimal.Decimal
	DailyRate       decimal.Decimal
	LoanDeductions  []DeductionLine
	LeaveDeductions []DeductionLine
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}

// PayrollPreview is the full projected run for a tenant and month.
type PayrollPreview struct {
	Period          PayPeriod
	PeriodEnd       generic.TimePoint
	Employees       []EmployeePayrollLine
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
}
