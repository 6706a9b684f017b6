/*
Package generic provides the domain-agnostic kernel of the workforce engine.

PURPOSE:
  This package contains the types and algorithms shared by the asset and
  payroll domains: day-granular time points, derived periods, the interval
  merge engine, and decimal money helpers.

KEY CONCEPTS IN THIS FILE (time.go):
  - TimePoint: a calendar day (UTC midnight normalized)
  - Clock: injectable "today" provider for deterministic tests
  - DaysBetween / InclusiveDays: the two day-count conventions used
    by the engine (see period.go and the payroll package)

DESIGN PRINCIPLES:
  1. Day granularity: all business dates are whole days; wall-clock time
     never participates in period or deduction math
  2. Injected now: nothing in this module calls time.Now() directly except
     SystemClock, so every "ongoing period" computation is testable

SEE ALSO:
  - period.go: Period type and merge engine
  - money.go: decimal helpers for monetary amounts
*/
package generic

import "time"

// =============================================================================
// TIME POINT - A calendar day
// =============================================================================

type TimePoint struct {
	Time time.Time
}

// NewTimePoint builds a day-granular point at UTC midnight.
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary timestamp to its UTC calendar day.
func DateOf(t time.Time) TimePoint {
	u := t.UTC()
	return NewTimePoint(u.Year(), u.Month(), u.Day())
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return tp.Before(other) || tp.Equal(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return tp.After(other) || tp.Equal(other) }

func (tp TimePoint) normalize() time.Time {
	return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint   { return TimePoint{Time: tp.normalize().AddDate(0, 0, n)} }
func (tp TimePoint) AddMonths(n int) TimePoint { return TimePoint{Time: tp.normalize().AddDate(0, n, 0)} }

// Properties
func (tp TimePoint) Year() int         { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month { return tp.Time.Month() }
func (tp TimePoint) Day() int          { return tp.Time.Day() }
func (tp TimePoint) IsZero() bool      { return tp.Time.IsZero() }

func (tp TimePoint) String() string { return tp.normalize().Format("2006-01-02") }

// Min returns the earlier of two points, Max the later.
func (tp TimePoint) Min(other TimePoint) TimePoint {
	if tp.Before(other) {
		return tp
	}
	return other
}

func (tp TimePoint) Max(other TimePoint) TimePoint {
	if tp.After(other) {
		return tp
	}
	return other
}

// =============================================================================
// DAY COUNTS
// =============================================================================

// DaysBetween returns whole days from one point to another (to - from).
// This is the span convention used for assignment periods: a period held
// from Feb 1 to Jun 1 2024 spans 121 days.
func DaysBetween(from, to TimePoint) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// InclusiveDays counts both endpoints: Jan 28 to Jan 31 is 4 days.
// This is the convention used for leave deductions.
func InclusiveDays(from, to TimePoint) int {
	return DaysBetween(from, to) + 1
}

// =============================================================================
// MONTH BOUNDARIES
// =============================================================================

func StartOfMonth(year int, month time.Month) TimePoint {
	return NewTimePoint(year, month, 1)
}

func EndOfMonth(year int, month time.Month) TimePoint {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return TimePoint{Time: t}
}

// =============================================================================
// CLOCK - Injectable "now" provider
// =============================================================================

// Clock supplies "today" for open-period day counts and utilization.
// Production code uses SystemClock; tests use FixedClock.
type Clock interface {
	Today() TimePoint
}

type SystemClock struct{}

func (SystemClock) Today() TimePoint { return DateOf(time.Now()) }

// FixedClock pins "today" for deterministic tests.
type FixedClock struct {
	At TimePoint
}

func (c FixedClock) Today() TimePoint { return c.At }
