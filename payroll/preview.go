/*
preview.go - Payroll run projection

PURPOSE:
  Composes loan installments and unpaid-leave deductions per member into a
  full tenant payroll preview. The preview is derived, idempotent and never
  persisted.

PARTIAL FAILURE:
  One member's leave computation failing must never abort the run. The
  failure is logged, that member's leave deductions degrade to an empty
  list, and the run continues.

CONCURRENCY:
  Per-member computation is independent, so members fan out on a bounded
  errgroup. Each member writes only its own result slot; the final
  name-sort restores deterministic order.
*/
package payroll

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/warp/workforce-engine/generic"
)

const defaultConcurrency = 8

// PreviewBuilder aggregates a tenant's payroll projection for one month.
type PreviewBuilder struct {
	Store       Store
	Log         logrus.FieldLogger
	Concurrency int
}

func NewPreviewBuilder(store Store, log logrus.FieldLogger) *PreviewBuilder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PreviewBuilder{Store: store, Log: log, Concurrency: defaultConcurrency}
}

// Build projects the tenant's payroll run for the given month. periodEnd
// bounds loan eligibility: only active loans started on or before it
// deduct this run.
func (b *PreviewBuilder) Build(ctx context.Context, tenantID string, year int, month time.Month, periodEnd generic.TimePoint) (*PayrollPreview, error) {
	period := PayPeriod{Year: year, Month: month}

	structures, err := b.Store.ActiveSalaryStructures(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	loans, err := b.Store.ActiveLoans(ctx, tenantID, periodEnd)
	if err != nil {
		return nil, err
	}

	loansByMember := make(map[string][]Loan)
	for _, l := range loans {
		loansByMember[l.MemberID] = append(loansByMember[l.MemberID], l)
	}

	lines := make([]EmployeePayrollLine, len(structures))
	g, gctx := errgroup.WithContext(ctx)
	limit := b.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g.SetLimit(limit)

	for i, s := range structures {
		i, s := i, s
		g.Go(func() error {
			lines[i] = b.buildLine(gctx, tenantID, period, s, loansByMember[s.MemberID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].MemberName != lines[j].MemberName {
			return lines[i].MemberName < lines[j].MemberName
		}
		return lines[i].MemberID < lines[j].MemberID
	})

	preview := &PayrollPreview{
		Period:          period,
		PeriodEnd:       periodEnd,
		Employees:       lines,
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
	}
	for _, line := range lines {
		preview.TotalGross = preview.TotalGross.Add(line.Gross)
		preview.TotalDeductions = preview.TotalDeductions.Add(line.TotalDeductions)
		preview.TotalNet = preview.TotalNet.Add(line.Net)
	}
	return preview, nil
}

func (b *PreviewBuilder) buildLine(ctx context.Context, tenantID string, period PayPeriod, s SalaryStructure, memberLoans []Loan) EmployeePayrollLine {
	gross := s.Gross()
	rate := generic.DailyRate(gross)

	var loanLines []DeductionLine
	for _, loan := range memberLoans {
		installment := loan.InstallmentFor()
		if !installment.IsPositive() {
			continue
		}
		loanLines = append(loanLines, DeductionLine{
			SourceID: loan.ID,
			Label:    loanLabel(loan),
			Amount:   generic.Round2(installment),
		})
	}

	leaveLines, err := NewCalculator(b.Store).Deductions(ctx, tenantID, s.MemberID, period, rate)
	if err != nil {
		// One bad record must not abort the tenant's run.
		b.Log.WithFields(logrus.Fields{
			"tenant": tenantID,
			"member": s.MemberID,
		}).WithError(err).Warn("leave deduction failed, continuing without it")
		leaveLines = nil
	}

	total := decimal.Zero
	for _, l := range loanLines {
		total = total.Add(l.Amount)
	}
	for _, l := range leaveLines {
		total = total.Add(l.Amount)
	}

	return EmployeePayrollLine{
		MemberID:        s.MemberID,
		MemberName:      s.MemberName,
		Gross:           gross,
		DailyRate:       rate,
		LoanDeductions:  loanLines,
		LeaveDeductions: leaveLines,
		TotalDeductions: total,
		Net:             gross.Sub(total),
	}
}

func loanLabel(loan Loan) string {
	if loan.Label != "" {
		return loan.Label
	}
	return "loan installment"
}
