/*
errors.go - Centralized error types for the engine

PURPOSE:
  The engine distinguishes exactly one hard failure - the subject of a
  computation does not exist in the tenant scope. Everything else that can
  go wrong with historical data (overlaps, gaps, impossible ratios) is a
  soft anomaly: logged, noted on the derived result, never returned as an
  error.

USAGE:
  if generic.IsNotFound(err) {
      // 404-equivalent for whatever surface sits above the engine
  }
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when the subject of a computation does not
	// exist in the tenant scope. This is the only hard failure the
	// computational core produces.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPeriod is returned when a caller supplies a range whose end
	// precedes its start.
	ErrInvalidPeriod = errors.New("invalid period: end before start")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// NotFoundError identifies which record was missing and in which tenant.
type NotFoundError struct {
	Kind     string // "asset", "member", ...
	ID       string
	TenantID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in tenant %q", e.Kind, e.ID, e.TenantID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
