package assets

import "context"

// =============================================================================
// HISTORY STORE - Tenant-scoped repository interface
// =============================================================================

// HistoryStore is the narrow query surface reconstruction needs. Every
// method is scoped by tenant; implementations must never read across
// tenants.
//
// Implementations:
//   - store/sqlite: production store
//   - store/memory: in-memory store for tests and the demo seed
type HistoryStore interface {
	// GetAsset returns the asset or an error unwrapping to
	// generic.ErrNotFound.
	GetAsset(ctx context.Context, tenantID, assetID string) (Asset, error)

	// EventsBySubject returns the subject's lifecycle events ordered by
	// RecordedAt ascending (replay order).
	EventsBySubject(ctx context.Context, tenantID, subjectID string) ([]LifecycleEvent, error)

	// LatestAssignmentTo returns the most recent assigned-event handing the
	// subject to the given counterparty, or nil when the log holds none.
	// Used as the fallback lookup when a currently-assigned subject has no
	// open period in its history.
	LatestAssignmentTo(ctx context.Context, tenantID, subjectID, counterpartyID string) (*LifecycleEvent, error)
}
