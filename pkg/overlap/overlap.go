package overlap

import "strings"

// Pending is anything that is about to be written to the calendar
type Pending interface {
	// EventSummary is the exact event title
	EventSummary() string
	// Begin is the local start timestamp without an offset, e.g. "2026-01-05T07:00:00"
	Begin() string
}

// Existing is an event already on the calendar
type Existing struct {
	ID      string
	Summary string
	// Begin carries the calendar's offset, e.g. "2026-01-05T07:00:00-05:00", or a bare date
	// for all-day events
	Begin string
}

// Detect reports, for each pending item, whether an existing event has the same summary and a
// begin timestamp starting with the pending begin timestamp.
//
// The prefix match ignores whatever offset the calendar stored, so it is only exact when the
// calendar zone matches the zone the signup sheet was written in.
func Detect[P Pending](pending []P, existing []Existing) []bool {
	out := make([]bool, len(pending))
	if len(existing) == 0 {
		return out
	}

	bySummary := make(map[string][]string)
	for _, e := range existing {
		bySummary[e.Summary] = append(bySummary[e.Summary], e.Begin)
	}

	for i, p := range pending {
		begin := p.Begin()
		for _, b := range bySummary[p.EventSummary()] {
			if strings.HasPrefix(b, begin) {
				out[i] = true
				break
			}
		}
	}
	return out
}

// Filter returns the pending items that Detect does not find on the calendar, and how many
// were dropped
func Filter[P Pending](pending []P, existing []Existing) ([]P, int) {
	found := Detect(pending, existing)
	kept := make([]P, 0, len(pending))
	for i, p := range pending {
		if !found[i] {
			kept = append(kept, p)
		}
	}
	return kept, len(pending) - len(kept)
}
