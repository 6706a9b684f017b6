// Package assets implements the asset lifecycle domain: reconstructing
// assignment periods from the append-only event log and deriving
// utilization metrics from them. It uses the generic kernel for time,
// period, and merge primitives.
package assets

import (
	"time"

	"github.com/warp/workforce-engine/generic"
)

// =============================================================================
// LIFECYCLE EVENTS
// =============================================================================

// EventAction is the start/stop pair of the assignment state machine.
type EventAction string

const (
	ActionAssigned   EventAction = "assigned"
	ActionUnassigned EventAction = "unassigned"
)

// LifecycleEvent is one immutable row of the assignment history. Events are
// appended by upstream workflows and never mutated.
//
// Two dates matter and they deliberately play different roles:
//   - RecordedAt orders replay (the state machine runs in append order)
//   - EffectiveDate sets period boundaries (the business-intended date)
//
// When they disagree, replay order stays RecordedAt and boundaries stay
// EffectiveDate. Do not unify them.
type LifecycleEvent struct {
	ID             string
	TenantID       string
	SubjectID      string
	Action         EventAction
	CounterpartyID string // holder receiving the asset; may be empty on unassign
	EffectiveDate  generic.TimePoint
	RecordedAt     time.Time
	Notes          string
}

// BoundaryDate is the period boundary this event contributes: the effective
// date when present, otherwise the day the event was recorded.
func (e LifecycleEvent) BoundaryDate() generic.TimePoint {
	if e.EffectiveDate.IsZero() {
		return generic.DateOf(e.RecordedAt)
	}
	return e.EffectiveDate
}

// =============================================================================
// ASSET
// =============================================================================

// Asset is the subject being tracked across time.
type Asset struct {
	ID           string
	TenantID     string
	Name         string
	PurchaseDate generic.TimePoint // zero when unknown
	CreatedAt    generic.TimePoint
	HolderID     string // current holder; empty when unassigned
}

// AcquiredAt is the date the asset entered service: the purchase date when
// known, otherwise the record creation date.
func (a Asset) AcquiredAt() generic.TimePoint {
	if a.PurchaseDate.IsZero() {
		return a.CreatedAt
	}
	return a.PurchaseDate
}

// Assigned reports whether the asset currently has a holder.
func (a Asset) Assigned() bool { return a.HolderID != "" }
