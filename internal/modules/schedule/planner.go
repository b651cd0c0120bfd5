// README: Weighted interval scheduling (DP) plus the max-count greedy variant.
package schedule

import (
	"sort"
	"time"

	"pawmatch/internal/types"
)

// Item is one candidate walk for a single walker's day plan.
type Item struct {
	ID    types.ID
	Start time.Time
	End   time.Time
	Value float64
}

// Plan is the selected non-overlapping subset and its total value.
type Plan struct {
	Chosen []Item
	Total  float64
}

// ValueParams tunes the default walk value function.
type ValueParams struct {
	Base           float64 `koanf:"base"`
	PerHour        float64 `koanf:"per_hour"`
	PerRatingPoint float64 `koanf:"per_rating_point"`
	UrgencyBonus   float64 `koanf:"urgency_bonus"`
	UrgencyHours   float64 `koanf:"urgency_hours"`
}

func DefaultValueParams() ValueParams {
	return ValueParams{
		Base:           50,
		PerHour:        30,
		PerRatingPoint: 10,
		UrgencyBonus:   25,
		UrgencyHours:   24,
	}
}

// WalkValue is the default value function: a base constant, duration and
// rating proportions, and an urgency bonus for walks starting soon.
func WalkValue(start, end time.Time, walkerRating float64, now time.Time, p ValueParams) float64 {
	v := p.Base
	v += p.PerHour * end.Sub(start).Hours()
	v += p.PerRatingPoint * walkerRating
	if lead := start.Sub(now); lead >= 0 && lead <= time.Duration(p.UrgencyHours*float64(time.Hour)) {
		v += p.UrgencyBonus
	}
	return v
}

// MaxValue selects the maximum-total-value subset of non-overlapping items.
// Sort by end time, binary-search each item's last compatible predecessor,
// then a linear DP pass with back-pointer reconstruction. O(n log n).
func MaxValue(items []Item) Plan {
	n := len(items)
	if n == 0 {
		return Plan{}
	}

	sorted := make([]Item, n)
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].End.Equal(sorted[j].End) {
			return sorted[i].End.Before(sorted[j].End)
		}
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].ID < sorted[j].ID
	})

	// pred[i] is the largest j < i with sorted[j].End <= sorted[i].Start,
	// or -1 when no earlier item is compatible.
	pred := make([]int, n)
	for i := range sorted {
		start := sorted[i].Start
		// First index whose End is after start; everything before it is
		// compatible.
		idx := sort.Search(i, func(j int) bool { return sorted[j].End.After(start) })
		pred[i] = idx - 1
	}

	// dp[k] is the best value using the first k items.
	dp := make([]float64, n+1)
	take := make([]bool, n)
	for i := 0; i < n; i++ {
		skip := dp[i]
		with := sorted[i].Value + dp[pred[i]+1]
		if with > skip {
			dp[i+1] = with
			take[i] = true
		} else {
			dp[i+1] = skip
		}
	}

	var chosen []Item
	for i := n - 1; i >= 0; {
		if take[i] {
			chosen = append(chosen, sorted[i])
			i = pred[i]
		} else {
			i--
		}
	}
	// Reverse into chronological order.
	for l, r := 0, len(chosen)-1; l < r; l, r = l+1, r-1 {
		chosen[l], chosen[r] = chosen[r], chosen[l]
	}
	return Plan{Chosen: chosen, Total: dp[n]}
}

// MaxCount is the earliest-end-time greedy. It maximizes the number of
// accepted walks, not their value; kept alongside MaxValue for comparison.
func MaxCount(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].End.Equal(sorted[j].End) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var chosen []Item
	var lastEnd time.Time
	for _, it := range sorted {
		if len(chosen) == 0 || !it.Start.Before(lastEnd) {
			chosen = append(chosen, it)
			lastEnd = it.End
		}
	}
	return chosen
}
