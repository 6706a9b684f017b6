package payroll

import (
	"context"

	"github.com/warp/workforce-engine/generic"
)

// =============================================================================
// STORE - Tenant-scoped repository interface
// =============================================================================

// Store is the narrow query surface payroll computation needs. Every method
// is scoped by tenant; implementations must never read across tenants.
//
// Implementations:
//   - store/sqlite: production store
//   - store/memory: in-memory store for tests and the demo seed
type Store interface {
	// ActiveSalaryStructures returns the tenant's current salary structures,
	// one per payable member.
	ActiveSalaryStructures(ctx context.Context, tenantID string) ([]SalaryStructure, error)

	// ActiveLoans returns loans with active status whose start date is on or
	// before the given day.
	ActiveLoans(ctx context.Context, tenantID string, onOrBefore generic.TimePoint) ([]Loan, error)

	// ApprovedUnpaidLeaves returns the member's approved unpaid leave
	// requests whose range intersects [from, to].
	ApprovedUnpaidLeaves(ctx context.Context, tenantID, memberID string, from, to generic.TimePoint) ([]LeaveRequest, error)
}
