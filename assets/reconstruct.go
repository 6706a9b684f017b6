/*
reconstruct.go - Period reconstruction from the lifecycle event log

PURPOSE:
  Replays a subject's assigned/unassigned events into a set of
  non-overlapping holding periods. The log is the source of truth; periods
  are derived on demand and never persisted.

REPLAY RULES:
  - Events run in RecordedAt order; boundaries come from EffectiveDate
    (falling back to the recorded day when the effective date is missing).
  - A second assignment while one is open auto-closes the first at the new
    event's boundary and tags it.
  - An unassign without an open period is ignored (stale duplicate).
  - A subject that is currently assigned but whose log never opened a period
    gets a fallback period: start from the latest matching assigned-event,
    or from the asset's creation date when even that is missing.

FAILURE SEMANTICS:
  Malformed history never fails reconstruction - it degrades to estimated
  periods with notes, and the anomaly is logged. The only hard failure is a
  missing subject (generic.ErrNotFound). Store I/O errors propagate.
*/
package assets

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/warp/workforce-engine/generic"
)

// Reconstructor derives holding periods and utilization for assets.
type Reconstructor struct {
	Store HistoryStore
	Clock generic.Clock
	Log   logrus.FieldLogger
}

func NewReconstructor(store HistoryStore, clock generic.Clock, log logrus.FieldLogger) *Reconstructor {
	if clock == nil {
		clock = generic.SystemClock{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reconstructor{Store: store, Clock: clock, Log: log}
}

// Periods reconstructs the subject's holding periods, merged and ordered.
func (r *Reconstructor) Periods(ctx context.Context, tenantID, subjectID string) ([]generic.Period, error) {
	asset, err := r.Store.GetAsset(ctx, tenantID, subjectID)
	if err != nil {
		return nil, err
	}

	events, err := r.Store.EventsBySubject(ctx, tenantID, subjectID)
	if err != nil {
		return nil, err
	}

	now := r.Clock.Today()
	periods, open := r.replay(asset, events, now)

	if asset.Assigned() {
		if open != nil {
			// Still held: the last assignment runs to "now" with no end.
			open.End = nil
			open.Recompute(now)
			periods = append(periods, *open)
		} else {
			p, err := r.fallbackOpenPeriod(ctx, asset, now)
			if err != nil {
				return nil, err
			}
			periods = append(periods, p)
		}
	} else if open != nil {
		// Log says assigned, subject record says not. Close at "now" so the
		// timeline stays usable and flag the mismatch.
		end := now
		open.End = &end
		open.Recompute(now)
		open.AddNote(generic.NoteAutoClosedInactive)
		r.Log.WithFields(logrus.Fields{
			"tenant":  tenantID,
			"subject": subjectID,
			"holder":  open.OwnerID,
		}).Warn("open period for unassigned subject, auto-closing")
		periods = append(periods, *open)
	}

	return generic.MergePeriods(periods, now), nil
}

// replay runs the assigned/unassigned state machine over the log in
// recorded order. Returns the closed periods and the still-open one, if any.
func (r *Reconstructor) replay(asset Asset, events []LifecycleEvent, now generic.TimePoint) ([]generic.Period, *generic.Period) {
	var (
		periods []generic.Period
		open    *generic.Period
	)

	for _, ev := range events {
		switch ev.Action {
		case ActionAssigned:
			if ev.CounterpartyID == "" {
				continue
			}
			if open != nil {
				// Two starts without a stop: close the first at the new
				// event's boundary.
				end := ev.BoundaryDate()
				open.End = &end
				open.Recompute(now)
				open.AddNote(generic.NoteAutoClosedReassigned)
				r.Log.WithFields(logrus.Fields{
					"tenant":  asset.TenantID,
					"subject": asset.ID,
					"holder":  open.OwnerID,
				}).Warn("assignment while period still open, auto-closing")
				periods = append(periods, *open)
			}
			open = &generic.Period{
				OwnerID:   ev.CounterpartyID,
				SubjectID: asset.ID,
				Start:     ev.BoundaryDate(),
			}

		case ActionUnassigned:
			if open == nil {
				continue
			}
			end := ev.BoundaryDate()
			open.End = &end
			open.Recompute(now)
			periods = append(periods, *open)
			open = nil
		}
	}

	return periods, open
}

// fallbackOpenPeriod covers the data-integrity gap where the subject is
// currently assigned but its log never opened a period.
func (r *Reconstructor) fallbackOpenPeriod(ctx context.Context, asset Asset, now generic.TimePoint) (generic.Period, error) {
	p := generic.Period{
		OwnerID:   asset.HolderID,
		SubjectID: asset.ID,
	}

	ev, err := r.Store.LatestAssignmentTo(ctx, asset.TenantID, asset.ID, asset.HolderID)
	if err != nil {
		return generic.Period{}, err
	}
	if ev != nil {
		p.Start = ev.BoundaryDate()
	} else {
		p.Start = asset.CreatedAt
		p.AddNote(generic.NoteEstimatedNoHistory)
	}
	p.Recompute(now)

	r.Log.WithFields(logrus.Fields{
		"tenant":  asset.TenantID,
		"subject": asset.ID,
		"holder":  asset.HolderID,
	}).Warn("no open period in history for assigned subject, estimating")

	return p, nil
}
