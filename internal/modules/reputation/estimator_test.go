package reputation

import (
	"math"
	"testing"
	"time"

	"pawmatch/internal/modules/review"
)

func reviewsAt(now time.Time, ratings []float64, spacing time.Duration) []review.Review {
	out := make([]review.Review, len(ratings))
	start := now.Add(-spacing * time.Duration(len(ratings)-1))
	for i, r := range ratings {
		out[i] = review.Review{Rating: r, CreatedAt: start.Add(spacing * time.Duration(i))}
	}
	return out
}

func TestEstimate_EmptyReviewSet(t *testing.T) {
	e := NewEstimator(DefaultParams())
	snap := e.Estimate(nil, time.Now())
	if snap.Combined != 3.5 {
		t.Errorf("combined = %f, want prior 3.5", snap.Combined)
	}
	if snap.Confidence != 0 {
		t.Errorf("confidence = %f, want 0", snap.Confidence)
	}
	if snap.Trend != TrendStable {
		t.Errorf("trend = %v, want stable", snap.Trend)
	}
}

func TestEstimate_SingleFiveStarToday(t *testing.T) {
	e := NewEstimator(DefaultParams())
	now := time.Now()
	snap := e.Estimate([]review.Review{{Rating: 5.0, CreatedAt: now}}, now)

	wantBayes := (3.5*10 + 5.0) / 11
	if math.Abs(snap.Bayesian-wantBayes) > 1e-9 {
		t.Errorf("bayesian = %f, want %f", snap.Bayesian, wantBayes)
	}
	wantConf := 1 - math.Exp(-1.0/5)
	if math.Abs(snap.Confidence-wantConf) > 1e-9 {
		t.Errorf("confidence = %f, want %f", snap.Confidence, wantConf)
	}
	// A single fresh review carries full time weight.
	if math.Abs(snap.TimeWeighted-5.0) > 1e-9 {
		t.Errorf("timeWeighted = %f, want 5.0", snap.TimeWeighted)
	}
}

func TestBayesian_ConvergesToObservedMean(t *testing.T) {
	e := NewEstimator(DefaultParams())
	now := time.Now()
	ratings := make([]float64, 2000)
	for i := range ratings {
		ratings[i] = 4.2
	}
	snap := e.Estimate(reviewsAt(now, ratings, time.Hour), now)
	if math.Abs(snap.Bayesian-4.2) > 0.01 {
		t.Errorf("bayesian with n=2000 constant 4.2 = %f, want ≈4.2", snap.Bayesian)
	}
}

func TestConfidence_MonotoneAndBounded(t *testing.T) {
	e := NewEstimator(DefaultParams())
	prev := -1.0
	for n := 0; n <= 100; n++ {
		c := e.Confidence(n)
		if c < 0 || c > 1 {
			t.Fatalf("confidence(%d) = %f out of [0,1]", n, c)
		}
		if c < prev {
			t.Fatalf("confidence not monotone at n=%d", n)
		}
		prev = c
	}
}

func TestTimeWeighted_RecentDominates(t *testing.T) {
	e := NewEstimator(DefaultParams())
	now := time.Now()
	reviews := []review.Review{
		{Rating: 1.0, CreatedAt: now.AddDate(0, 0, -300)},
		{Rating: 5.0, CreatedAt: now},
	}
	snap := e.Estimate(reviews, now)
	if snap.TimeWeighted < 4.5 {
		t.Errorf("timeWeighted = %f, want heavily toward recent 5.0", snap.TimeWeighted)
	}
}

func TestTrend_Detection(t *testing.T) {
	e := NewEstimator(DefaultParams())
	now := time.Now()

	improving := make([]float64, 20)
	declining := make([]float64, 20)
	flat := make([]float64, 20)
	for i := 0; i < 20; i++ {
		improving[i] = 1.0 + float64(i)*0.2
		declining[i] = 5.0 - float64(i)*0.2
		flat[i] = 4.0
	}

	cases := []struct {
		name    string
		ratings []float64
		want    Trend
	}{
		{"improving", improving, TrendImproving},
		{"declining", declining, TrendDeclining},
		{"flat", flat, TrendStable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := e.Estimate(reviewsAt(now, tc.ratings, 24*time.Hour), now)
			if snap.Trend != tc.want {
				t.Errorf("trend = %v, want %v", snap.Trend, tc.want)
			}
		})
	}
}

func TestTrend_FewerThanWindowIsStable(t *testing.T) {
	e := NewEstimator(DefaultParams())
	now := time.Now()
	// Steeply improving but only 10 reviews, below the window of 20.
	ratings := []float64{1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5, 5}
	snap := e.Estimate(reviewsAt(now, ratings, 24*time.Hour), now)
	if snap.Trend != TrendStable {
		t.Errorf("trend = %v, want stable below window", snap.Trend)
	}
}

func TestVolatility(t *testing.T) {
	e := NewEstimator(DefaultParams())
	now := time.Now()
	constant := e.Estimate(reviewsAt(now, []float64{4, 4, 4, 4}, time.Hour), now)
	if constant.Volatility != 0 {
		t.Errorf("volatility of constant ratings = %f, want 0", constant.Volatility)
	}
	swing := e.Estimate(reviewsAt(now, []float64{1, 5, 1, 5}, time.Hour), now)
	if swing.Volatility != 2 {
		t.Errorf("volatility of 1/5 swings = %f, want 2", swing.Volatility)
	}
}

func TestMovingAverage(t *testing.T) {
	now := time.Now()
	reviews := reviewsAt(now, []float64{1, 2, 3, 4, 5}, 24*time.Hour)
	samples := MovingAverage(reviews, 3)
	want := []float64{2, 3, 4}
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i, w := range want {
		if math.Abs(samples[i].Mean-w) > 1e-9 {
			t.Errorf("sample %d mean = %f, want %f", i, samples[i].Mean, w)
		}
	}
	if got := MovingAverage(reviews, 10); got != nil {
		t.Error("window larger than history should yield nil")
	}
}

func TestMaxChanges(t *testing.T) {
	now := time.Now()
	reviews := reviewsAt(now, []float64{3, 5, 2, 4, 1}, 24*time.Hour)
	drop, rise := MaxChanges(reviews)
	if drop.Delta != 4 {
		t.Errorf("largest drop = %f, want 4 (5 -> 1)", drop.Delta)
	}
	if !drop.Start.Equal(reviews[1].CreatedAt) {
		t.Errorf("drop start = %v, want date of the 5.0 review", drop.Start)
	}
	if rise.Delta != 2 {
		t.Errorf("largest rise = %f, want 2 (2 -> 4 or 3 -> 5)", rise.Delta)
	}
}
