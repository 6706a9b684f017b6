/*
period.go - Derived time spans reconstructed from event history

PURPOSE:
  A Period is one continuous state for a (owner, subject) pair: assigned-to-X
  or on-unpaid-leave. Periods are never stored - they are recomputed from the
  append-only event log every time a report asks for them.

KEY INVARIANTS:
  - Start <= End when the period is closed
  - End == nil means the period is ongoing as of "now"
  - After merging, periods for the same owner never overlap

ANOMALY NOTES:
  Reconstruction degrades instead of failing on malformed history. Each
  degradation leaves a structured note on the period so operators can spot
  data-quality issues without the derived result becoming unusable.

SEE ALSO:
  - merge.go: overlap/adjacency merging
  - assets/reconstruct.go: event replay that produces periods
*/
package generic

// =============================================================================
// ANOMALY NOTES
// =============================================================================

// Notes attached to periods when reconstruction hits anomalous history.
const (
	// NoteAutoClosedReassigned marks a period closed because a second
	// assignment arrived before the first was returned.
	NoteAutoClosedReassigned = "auto-closed: reassigned"

	// NoteAutoClosedInactive marks an open period closed because the subject
	// record says it is no longer assigned.
	NoteAutoClosedInactive = "auto-closed: no active assignment"

	// NoteEstimatedNoHistory marks a period whose start had to be estimated
	// because the log holds no record for the current assignment.
	NoteEstimatedNoHistory = "estimated: no history record"

	// NoteStartAdjusted marks a period whose start was raised to the
	// subject's acquisition date.
	NoteStartAdjusted = "start date adjusted"
)

// =============================================================================
// PERIOD
// =============================================================================

// Period is a derived, non-overlapping span during which OwnerID held
// SubjectID. End == nil means the period is still open.
type Period struct {
	OwnerID   string
	SubjectID string
	Start     TimePoint
	End       *TimePoint
	Days      int
	Notes     []string
}

// Open reports whether the period has no end date.
func (p Period) Open() bool { return p.End == nil }

// EndOr returns the period end, or the given fallback for open periods.
func (p Period) EndOr(now TimePoint) TimePoint {
	if p.End == nil {
		return now
	}
	return *p.End
}

// Recompute refreshes Days from the current boundaries. Open periods count
// up to "now".
func (p *Period) Recompute(now TimePoint) {
	p.Days = DaysBetween(p.Start, p.EndOr(now))
	if p.Days < 0 {
		p.Days = 0
	}
}

// AddNote appends a note, skipping duplicates.
func (p *Period) AddNote(note string) {
	for _, n := range p.Notes {
		if n == note {
			return
		}
	}
	p.Notes = append(p.Notes, note)
}

// mergeNotes folds another period's notes into this one, keeping distinct
// entries in first-seen order.
func (p *Period) mergeNotes(other Period) {
	for _, n := range other.Notes {
		p.AddNote(n)
	}
}
