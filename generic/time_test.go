package generic_test

import (
	"testing"
	"time"

	"github.com/warp/workforce-engine/generic"
)

func TestDaysBetween_SpanConvention(t *testing.T) {
	// GIVEN: Feb 1 to Jun 1 in a leap year
	// THEN: 121 whole days (the assignment-period convention)

	from := generic.NewTimePoint(2024, time.February, 1)
	to := generic.NewTimePoint(2024, time.June, 1)
	if got := generic.DaysBetween(from, to); got != 121 {
		t.Errorf("expected 121, got %d", got)
	}
}

func TestInclusiveDays_CountsBothEndpoints(t *testing.T) {
	// GIVEN: Jan 28 to Jan 31
	// THEN: 4 days (the leave-deduction convention)

	from := generic.NewTimePoint(2024, time.January, 28)
	to := generic.NewTimePoint(2024, time.January, 31)
	if got := generic.InclusiveDays(from, to); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestEndOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.January, 31},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, c := range cases {
		got := generic.EndOfMonth(c.year, c.month)
		want := generic.NewTimePoint(c.year, c.month, c.day)
		if !got.Equal(want) {
			t.Errorf("EndOfMonth(%d, %s) = %s, want %s", c.year, c.month, got, want)
		}
	}
}

func TestDateOf_NormalizesToUTCMidnight(t *testing.T) {
	stamp := time.Date(2024, time.March, 10, 23, 45, 12, 0, time.UTC)
	got := generic.DateOf(stamp)
	if !got.Equal(generic.NewTimePoint(2024, time.March, 10)) {
		t.Errorf("expected 2024-03-10, got %s", got)
	}
}

func TestFixedClock(t *testing.T) {
	at := generic.NewTimePoint(2024, time.September, 1)
	var clock generic.Clock = generic.FixedClock{At: at}
	if !clock.Today().Equal(at) {
		t.Error("FixedClock should return the pinned day")
	}
}
