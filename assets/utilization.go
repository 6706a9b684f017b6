/*
utilization.go - Days-in-use over days-owned

PURPOSE:
  Derives a utilization ratio from reconstructed holding periods. Owned days
  run from acquisition to "now"; assigned days sum the periods after
  clamping any period that claims to start before the asset existed.

CLAMPING:
  A raw ratio above 100% means overlapping assignments slipped through the
  history - a data-integrity signal, not a computation failure. The
  displayed percentage is clamped to [0, 100]; the raw value is logged.
*/
package assets

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/workforce-engine/generic"
)

var hundred = decimal.NewFromInt(100)

// UtilizationReport is the derived usage summary for one asset.
type UtilizationReport struct {
	SubjectID          string
	TotalOwnedDays     int
	TotalAssignedDays  int
	UtilizationPercent decimal.Decimal // clamped to [0, 100], 2 decimals
	Periods            []generic.Period
}

// Utilization reconstructs the asset's periods and derives its report.
func (r *Reconstructor) Utilization(ctx context.Context, tenantID, subjectID string) (*UtilizationReport, error) {
	asset, err := r.Store.GetAsset(ctx, tenantID, subjectID)
	if err != nil {
		return nil, err
	}
	periods, err := r.Periods(ctx, tenantID, subjectID)
	if err != nil {
		return nil, err
	}
	report := computeUtilization(asset.AcquiredAt(), periods, r.Clock.Today(), r.Log)
	report.SubjectID = subjectID
	return report, nil
}

func computeUtilization(acquiredAt generic.TimePoint, periods []generic.Period, now generic.TimePoint, log logrus.FieldLogger) *UtilizationReport {
	ownedDays := generic.InclusiveDays(acquiredAt, now)
	if ownedDays < 0 {
		ownedDays = 0
	}

	assignedDays := 0
	clamped := make([]generic.Period, 0, len(periods))
	for _, p := range periods {
		if p.Start.Before(acquiredAt) {
			p.Start = acquiredAt
			p.Recompute(now)
			p.AddNote(generic.NoteStartAdjusted)
		}
		assignedDays += p.Days
		clamped = append(clamped, p)
	}

	raw := decimal.Zero
	if ownedDays > 0 {
		raw = decimal.NewFromInt(int64(assignedDays)).
			Div(decimal.NewFromInt(int64(ownedDays))).
			Mul(hundred)
	}

	percent := raw
	if raw.GreaterThan(hundred) {
		log.WithFields(logrus.Fields{
			"raw_percent":   raw.StringFixed(2),
			"owned_days":    ownedDays,
			"assigned_days": assignedDays,
		}).Warn("utilization above 100%, overlapping assignments in history")
		percent = hundred
	}

	return &UtilizationReport{
		TotalOwnedDays:     ownedDays,
		TotalAssignedDays:  assignedDays,
		UtilizationPercent: percent.Round(2),
		Periods:            clamped,
	}
}
