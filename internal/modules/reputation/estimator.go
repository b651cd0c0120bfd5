// README: Statistical rating model: Bayesian prior, time decay, trend, volatility.
package reputation

import (
	"math"
	"time"

	"pawmatch/internal/modules/review"
)

// Params tunes the estimators. Loaded from config so tests and deployments
// can override without touching globals.
type Params struct {
	PriorMean       float64 `koanf:"prior_mean"`
	PriorCount      float64 `koanf:"prior_count"`
	DecayDays       float64 `koanf:"decay_days"`
	BayesianWeight  float64 `koanf:"bayesian_weight"`
	TimeWeight      float64 `koanf:"time_weight"`
	ConfidencePivot float64 `koanf:"confidence_pivot"`
	TrendWindow     int     `koanf:"trend_window"`
	TrendSlopeEps   float64 `koanf:"trend_slope_eps"`
}

func DefaultParams() Params {
	return Params{
		PriorMean:       3.5,
		PriorCount:      10,
		DecayDays:       30,
		BayesianWeight:  0.4,
		TimeWeight:      0.6,
		ConfidencePivot: 5,
		TrendWindow:     20,
		TrendSlopeEps:   0.1,
	}
}

type Trend int

const (
	TrendStable Trend = iota
	TrendImproving
	TrendDeclining
)

func (t Trend) String() string {
	switch t {
	case TrendImproving:
		return "improving"
	case TrendDeclining:
		return "declining"
	default:
		return "stable"
	}
}

// Snapshot is the full reputation picture for one walker at one instant.
type Snapshot struct {
	Bayesian     float64
	TimeWeighted float64
	Combined     float64
	Confidence   float64
	Volatility   float64
	Trend        Trend
	ReviewCount  int
}

type Estimator struct {
	p Params
}

func NewEstimator(p Params) *Estimator {
	return &Estimator{p: p}
}

// Estimate computes the snapshot over a chronologically ordered review set.
// An empty set yields the Bayesian prior with zero confidence.
func (e *Estimator) Estimate(reviews []review.Review, now time.Time) Snapshot {
	n := len(reviews)
	if n == 0 {
		return Snapshot{
			Bayesian:     e.p.PriorMean,
			TimeWeighted: e.p.PriorMean,
			Combined:     e.p.PriorMean,
			Confidence:   0,
			Trend:        TrendStable,
		}
	}

	bayesian := e.bayesianAverage(reviews)
	timeWeighted := e.timeWeightedAverage(reviews, now)
	combined := e.p.BayesianWeight*bayesian + e.p.TimeWeight*timeWeighted

	return Snapshot{
		Bayesian:     bayesian,
		TimeWeighted: timeWeighted,
		Combined:     combined,
		Confidence:   e.Confidence(n),
		Volatility:   e.volatility(reviews),
		Trend:        e.trend(reviews),
		ReviewCount:  n,
	}
}

// bayesianAverage blends the prior with observed ratings so new walkers start
// near the prior and need volume to diverge.
func (e *Estimator) bayesianAverage(reviews []review.Review) float64 {
	sum := 0.0
	for _, r := range reviews {
		sum += r.Rating
	}
	return (e.p.PriorMean*e.p.PriorCount + sum) / (e.p.PriorCount + float64(len(reviews)))
}

// timeWeightedAverage weights each rating by exp(-age/decay) so recent
// reviews dominate.
func (e *Estimator) timeWeightedAverage(reviews []review.Review, now time.Time) float64 {
	var weightedSum, weightTotal float64
	for _, r := range reviews {
		ageDays := now.Sub(r.CreatedAt).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		w := math.Exp(-ageDays / e.p.DecayDays)
		weightedSum += r.Rating * w
		weightTotal += w
	}
	if weightTotal == 0 {
		return e.p.PriorMean
	}
	return weightedSum / weightTotal
}

// Confidence grows monotonically with review count, asymptotic to 1.
func (e *Estimator) Confidence(n int) float64 {
	c := 1 - math.Exp(-float64(n)/e.p.ConfidencePivot)
	return clamp01(c)
}

// trend fits rating against days-since-window-start by ordinary least squares
// over the most recent TrendWindow reviews. Fewer reviews than the window is
// stable by definition.
func (e *Estimator) trend(reviews []review.Review) Trend {
	if len(reviews) < e.p.TrendWindow {
		return TrendStable
	}
	window := reviews[len(reviews)-e.p.TrendWindow:]
	first := window[0].CreatedAt

	var sumX, sumY, sumXY, sumXX float64
	for _, r := range window {
		x := r.CreatedAt.Sub(first).Hours() / 24
		y := r.Rating
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	n := float64(len(window))
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return TrendStable
	}
	slope := (n*sumXY - sumX*sumY) / denom
	switch {
	case slope > e.p.TrendSlopeEps:
		return TrendImproving
	case slope < -e.p.TrendSlopeEps:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// volatility is the standard deviation of ratings in the most recent window.
func (e *Estimator) volatility(reviews []review.Review) float64 {
	window := reviews
	if len(window) > e.p.TrendWindow {
		window = window[len(window)-e.p.TrendWindow:]
	}
	if len(window) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range window {
		mean += r.Rating
	}
	mean /= float64(len(window))

	variance := 0.0
	for _, r := range window {
		d := r.Rating - mean
		variance += d * d
	}
	variance /= float64(len(window))
	return math.Sqrt(variance)
}

// Sample is one point of a moving-average series.
type Sample struct {
	Date time.Time
	Mean float64
}

// MovingAverage emits a classic sliding-window mean over chronologically
// ordered reviews, one sample per window position, stamped with the window's
// last review date.
func MovingAverage(reviews []review.Review, window int) []Sample {
	if window <= 0 || len(reviews) < window {
		return nil
	}
	out := make([]Sample, 0, len(reviews)-window+1)
	sum := 0.0
	for i, r := range reviews {
		sum += r.Rating
		if i >= window {
			sum -= reviews[i-window].Rating
		}
		if i >= window-1 {
			out = append(out, Sample{
				Date: r.CreatedAt,
				Mean: sum / float64(window),
			})
		}
	}
	return out
}

// Change is a historical rating move: Delta from the rating at Start.
type Change struct {
	Delta float64
	Start time.Time
}

// MaxChanges reports the largest historical rating drop and rise with their
// start dates, single pass in the manner of maximum-drawdown trackers.
func MaxChanges(reviews []review.Review) (drop, rise Change) {
	if len(reviews) == 0 {
		return
	}
	runMax, runMin := reviews[0], reviews[0]
	for _, r := range reviews[1:] {
		if fall := runMax.Rating - r.Rating; fall > drop.Delta {
			drop = Change{Delta: fall, Start: runMax.CreatedAt}
		}
		if gain := r.Rating - runMin.Rating; gain > rise.Delta {
			rise = Change{Delta: gain, Start: runMin.CreatedAt}
		}
		if r.Rating > runMax.Rating {
			runMax = r
		}
		if r.Rating < runMin.Rating {
			runMin = r
		}
	}
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
