/*
merge.go - Interval merge engine

PURPOSE:
  Reconstruction can emit overlapping or back-to-back periods for the same
  owner (reassignment artifacts, duplicated history rows). Merge collapses
  them so downstream consumers always see a chronologically ordered,
  non-overlapping set per owner.

ALGORITHM:
  Group by OwnerID, sort each group by Start ascending, then walk with a
  current period:
    - next.Start <= current end  -> extend current (open end wins, it is
      effectively infinite), union the notes
    - otherwise                  -> flush current, continue from next
  A closed period ending exactly on the next period's start is adjacent and
  merges - there is no gap day between them.

DETERMINISM:
  Output is ordered by owner then chronologically, so repeated merges of the
  same input produce identical output. Merge is idempotent.
*/
package generic

import "sort"

// MergePeriods collapses overlapping and adjacent periods per owner.
// "now" bounds open periods for day counting only; an open end still compares
// as greater than any closed end.
func MergePeriods(periods []Period, now TimePoint) []Period {
	if len(periods) == 0 {
		return nil
	}

	groups := make(map[string][]Period)
	var owners []string
	for _, p := range periods {
		if _, ok := groups[p.OwnerID]; !ok {
			owners = append(owners, p.OwnerID)
		}
		groups[p.OwnerID] = append(groups[p.OwnerID], p)
	}
	sort.Strings(owners)

	var out []Period
	for _, owner := range owners {
		out = append(out, mergeOwnerGroup(groups[owner], now)...)
	}
	return out
}

func mergeOwnerGroup(group []Period, now TimePoint) []Period {
	sort.SliceStable(group, func(i, j int) bool {
		if !group[i].Start.Equal(group[j].Start) {
			return group[i].Start.Before(group[j].Start)
		}
		// Equal starts: open periods first so the walk sees the widest span.
		return group[i].Open() && !group[j].Open()
	})

	var result []Period
	current := group[0]

	for _, next := range group[1:] {
		if overlapsOrTouches(current, next) {
			current = extend(current, next, now)
			continue
		}
		result = append(result, current)
		current = next
	}
	return append(result, current)
}

// overlapsOrTouches reports whether next begins on or before current's end.
// An open current period swallows everything after its start.
func overlapsOrTouches(current, next Period) bool {
	if current.Open() {
		return true
	}
	return next.Start.BeforeOrEqual(*current.End)
}

// extend grows current to cover next. An open end on either side keeps the
// merged period open; otherwise the later close date wins.
func extend(current, next Period, now TimePoint) Period {
	switch {
	case current.Open() || next.Open():
		current.End = nil
	case next.End.After(*current.End):
		end := *next.End
		current.End = &end
	}
	current.mergeNotes(next)
	current.Recompute(now)
	return current
}
