package schedule

import (
	"math"
	"testing"
	"time"

	"pawmatch/internal/types"
)

var day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func iv(id string, startH, startM, endH, endM int) Interval {
	return Interval{ID: types.ID(id), Start: at(startH, startM), End: at(endH, endM)}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"partial overlap", iv("a", 10, 0, 11, 0), iv("b", 10, 30, 11, 30), true},
		{"contained", iv("a", 9, 0, 12, 0), iv("b", 10, 0, 11, 0), true},
		{"identical", iv("a", 10, 0, 11, 0), iv("b", 10, 0, 11, 0), true},
		{"touching endpoints do not overlap", iv("a", 10, 0, 11, 0), iv("b", 11, 0, 12, 0), false},
		{"disjoint", iv("a", 8, 0, 9, 0), iv("b", 10, 0, 11, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// Symmetry in every case.
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Errorf("Overlaps reversed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSeverity(t *testing.T) {
	a := iv("a", 10, 0, 11, 0)
	b := iv("b", 10, 30, 11, 30)

	// 30 overlapping minutes over 120 combined minutes.
	if got := Severity(a, b); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("Severity = %f, want 0.25", got)
	}
	if got, rev := Severity(a, b), Severity(b, a); got != rev {
		t.Errorf("Severity not symmetric: %f vs %f", got, rev)
	}
	// Identical intervals hit the formula's maximum.
	if got := Severity(a, a); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Severity(a,a) = %f, want 0.5", got)
	}
	// No overlap, no severity.
	if got := Severity(a, iv("c", 12, 0, 13, 0)); got != 0 {
		t.Errorf("Severity of disjoint = %f, want 0", got)
	}
}

func TestFindConflicts_SortedBySeverity(t *testing.T) {
	candidate := iv("new", 10, 0, 12, 0)
	existing := []Interval{
		iv("light", 11, 45, 13, 45), // 15 min overlap
		iv("heavy", 10, 0, 12, 0),   // full overlap
		iv("none", 14, 0, 15, 0),
		iv("mid", 11, 0, 13, 0), // 60 min overlap
	}

	got := FindConflicts(candidate, existing)
	if len(got) != 3 {
		t.Fatalf("got %d conflicts, want 3", len(got))
	}
	wantOrder := []string{"heavy", "mid", "light"}
	for i, w := range wantOrder {
		if string(got[i].Booking.ID) != w {
			t.Errorf("conflict %d = %s, want %s", i, got[i].Booking.ID, w)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Severity > got[i-1].Severity {
			t.Error("conflicts not sorted by severity descending")
		}
	}
}

func TestFindConflicts_Empty(t *testing.T) {
	if got := FindConflicts(iv("new", 10, 0, 11, 0), nil); len(got) != 0 {
		t.Errorf("expected no conflicts, got %d", len(got))
	}
}

func TestSuggestStarts_RequestedTimeFree(t *testing.T) {
	existing := []Interval{iv("b1", 13, 0, 14, 0)}
	got := SuggestStarts(at(10, 0), time.Hour, existing)
	if len(got) == 0 || !got[0].Equal(at(10, 0)) {
		t.Fatalf("expected requested time first, got %v", got)
	}
}

func TestSuggestStarts_RequestedTimeBlocked(t *testing.T) {
	existing := []Interval{
		iv("b1", 10, 0, 11, 0),
		iv("b2", 12, 0, 13, 0),
	}
	got := SuggestStarts(at(10, 30), time.Hour, existing)
	if len(got) == 0 {
		t.Fatal("expected suggestions")
	}
	for _, s := range got {
		if !fits(s, time.Hour, existing) {
			t.Errorf("suggested start %v does not fit", s)
		}
		if s.Equal(at(10, 30)) {
			t.Error("blocked requested time must not be suggested")
		}
	}
	// The free morning before b1 comes first (10:00 - 15m - 60m = 08:45).
	// b1's tail gap (11:15 + 60m = 12:15) collides with b2, so the next
	// usable start is after b2.
	if !got[0].Equal(at(8, 45)) {
		t.Errorf("first suggestion = %v, want 08:45", got[0])
	}
	if len(got) < 2 || !got[1].Equal(at(13, 15)) {
		t.Errorf("second suggestion = %v, want 13:15", got)
	}
}

func TestSuggestStarts_GapBeforeFirstBooking(t *testing.T) {
	existing := []Interval{iv("b1", 9, 30, 12, 0)}
	got := SuggestStarts(at(10, 0), time.Hour, existing)
	if len(got) != 2 {
		t.Fatalf("expected pre-booking and post-booking suggestions, got %v", got)
	}
	// 09:30 - 15m buffer - 60m walk = 08:15.
	if !got[0].Equal(at(8, 15)) {
		t.Errorf("first suggestion = %v, want 08:15", got[0])
	}
	if !got[1].Equal(at(12, 15)) {
		t.Errorf("second suggestion = %v, want 12:15", got[1])
	}
	for _, s := range got {
		if !fits(s, time.Hour, existing) {
			t.Errorf("suggested start %v does not fit", s)
		}
	}
}

func TestSuggestStarts_BufferRespected(t *testing.T) {
	existing := []Interval{iv("b1", 10, 0, 11, 0)}
	// 11:05 violates the 15 minute clearance after b1.
	got := SuggestStarts(at(11, 5), time.Hour, existing)
	for _, s := range got {
		if s.Equal(at(11, 5)) {
			t.Error("start inside the buffer must not be suggested")
		}
	}
}

func TestSuggestStarts_NoBookings(t *testing.T) {
	got := SuggestStarts(at(9, 0), 30*time.Minute, nil)
	if len(got) != 1 || !got[0].Equal(at(9, 0)) {
		t.Errorf("empty calendar should return the requested time, got %v", got)
	}
}
