// README: Booking overlap detection, severity scoring, and gap suggestion.
package schedule

import (
	"sort"
	"time"

	"pawmatch/internal/types"
)

// Interval is a half-open booking window [Start, End). Callers pass only one
// walker's non-cancelled bookings; the detector does not re-check ownership
// or status.
type Interval struct {
	ID    types.ID
	Start time.Time
	End   time.Time
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Severity quantifies an overlap as overlapping minutes over the combined
// duration of both intervals, clamped to [0,1]. Identical intervals score
// 0.5, the formula's maximum.
func Severity(a, b Interval) float64 {
	if !Overlaps(a, b) {
		return 0
	}
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	overlap := end.Sub(start).Minutes()
	total := a.Duration().Minutes() + b.Duration().Minutes()
	if total <= 0 {
		return 0
	}
	s := overlap / total
	if s > 1 {
		s = 1
	}
	return s
}

// Conflict pairs an existing booking with the severity of its overlap
// against the candidate.
type Conflict struct {
	Booking  Interval
	Severity float64
}

// FindConflicts returns every existing booking that overlaps the candidate,
// most severe first. Ties break on earlier start for determinism.
func FindConflicts(candidate Interval, existing []Interval) []Conflict {
	var out []Conflict
	for _, iv := range existing {
		if Overlaps(candidate, iv) {
			out = append(out, Conflict{Booking: iv, Severity: Severity(candidate, iv)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].Booking.Start.Before(out[j].Booking.Start)
	})
	return out
}

// bufferGap is the minimum clearance required on both sides of a booking.
const bufferGap = 15 * time.Minute

// maxSuggestions caps how many alternative start times are returned.
const maxSuggestions = 3

// SuggestStarts proposes up to three start times for a walk of the given
// duration against a walker's existing bookings. The originally requested
// time comes first when it fits; remaining slots are the earliest valid gaps
// in start order.
func SuggestStarts(requested time.Time, duration time.Duration, existing []Interval) []time.Time {
	if duration <= 0 {
		return nil
	}

	sorted := make([]Interval, len(existing))
	copy(sorted, existing)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var out []time.Time
	if fits(requested, duration, sorted) {
		out = append(out, requested)
	}

	// Candidate gap starts: the open-ended gap before the first booking,
	// then right after each booking (plus buffer). The requested time itself
	// is already handled above.
	if len(sorted) > 0 && len(out) < maxSuggestions {
		start := sorted[0].Start.Add(-bufferGap).Add(-duration)
		if !start.Equal(requested) && fits(start, duration, sorted) {
			out = append(out, start)
		}
	}
	for _, iv := range sorted {
		if len(out) >= maxSuggestions {
			break
		}
		start := iv.End.Add(bufferGap)
		if start.Equal(requested) {
			continue
		}
		if fits(start, duration, sorted) {
			out = append(out, start)
		}
	}
	return out
}

// fits reports whether [start, start+duration) clears every booking by the
// buffer on both sides.
func fits(start time.Time, duration time.Duration, sorted []Interval) bool {
	end := start.Add(duration)
	for _, iv := range sorted {
		// Needs start >= iv.End + buffer or end <= iv.Start - buffer.
		if !start.Before(iv.End.Add(bufferGap)) {
			continue
		}
		if !end.After(iv.Start.Add(-bufferGap)) {
			continue
		}
		return false
	}
	return true
}
