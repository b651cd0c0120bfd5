// README: Cost matrix construction for walker/request assignment.
package assignment

import (
	"math"
	"time"

	"pawmatch/internal/modules/geo"
	"pawmatch/internal/modules/request"
	"pawmatch/internal/modules/schedule"
	"pawmatch/internal/modules/walker"
	"pawmatch/internal/types"
)

// Criteria selects which cost function drives the assignment.
type Criteria string

const (
	CriteriaBalanced Criteria = "balanced"
	CriteriaDistance Criteria = "distance"
	CriteriaTime     Criteria = "time"
	CriteriaCombined Criteria = "combined"
)

// ParseCriteria falls back to balanced for anything it does not recognize.
func ParseCriteria(s string) Criteria {
	switch Criteria(s) {
	case CriteriaDistance, CriteriaTime, CriteriaCombined, CriteriaBalanced:
		return Criteria(s)
	}
	return CriteriaBalanced
}

// CostWeights blends the combined-cost components. They should sum to 1.
type CostWeights struct {
	Distance      float64 `koanf:"distance"`
	TimeConflict  float64 `koanf:"time_conflict"`
	Compatibility float64 `koanf:"compatibility"`
	Efficiency    float64 `koanf:"efficiency"`
}

// DefaultCostWeights favors travel distance, then schedule friction.
func DefaultCostWeights() CostWeights {
	return CostWeights{
		Distance:      0.4,
		TimeConflict:  0.3,
		Compatibility: 0.2,
		Efficiency:    0.1,
	}
}

// Candidate is one walker column of the cost matrix, carrying the context
// needed to price it against a request.
type Candidate struct {
	Walker   walker.Walker
	Booked   []schedule.Interval
	MatchFit float64 // compatibility in [0,1]; higher is better
}

// Pricer turns request/candidate pairs into cost matrix cells.
type Pricer struct {
	criteria Criteria
	weights  CostWeights
	maxDist  float64
}

func NewPricer(criteria Criteria, weights CostWeights, maxDistanceKm float64) *Pricer {
	if maxDistanceKm <= 0 {
		maxDistanceKm = 25
	}
	return &Pricer{criteria: criteria, weights: weights, maxDist: maxDistanceKm}
}

// Matrix builds the rows×cols cost matrix for the given requests and
// candidates. origins[i] is request i's pickup point, nil when unknown.
// Cells that are infeasible (hard schedule conflict, walker unavailable
// that day) are +Inf and can never be assigned.
func (p *Pricer) Matrix(reqs []request.WalkRequest, cands []Candidate, origins []*types.Point) [][]float64 {
	m := make([][]float64, len(reqs))
	for i, req := range reqs {
		m[i] = make([]float64, len(cands))
		for j, c := range cands {
			var origin *types.Point
			if i < len(origins) {
				origin = origins[i]
			}
			m[i][j] = p.Cell(req, c, origin)
		}
	}
	return m
}

// Cell prices one request/candidate pairing. Lower is better; +Inf means
// the pairing is not allowed.
func (p *Pricer) Cell(req request.WalkRequest, c Candidate, origin *types.Point) float64 {
	if !c.Walker.AvailableOn(req.Start.Weekday()) {
		return math.Inf(1)
	}
	iv := schedule.Interval{ID: req.ID, Start: req.Start, End: req.End}
	overlap := worstOverlap(iv, c.Booked)
	if overlap >= 0.5 {
		// Severity 0.5 is total containment; the walk cannot happen.
		return math.Inf(1)
	}

	switch p.criteria {
	case CriteriaDistance:
		d, ok := p.distance(c, origin)
		if !ok {
			return math.Inf(1)
		}
		return d
	case CriteriaTime:
		return overlap
	default:
	}

	// Balanced and combined share the weighted blend; combined simply
	// exposes the knobs through config while balanced uses the defaults.
	d, ok := p.distance(c, origin)
	if !ok {
		d = p.maxDist // unknown location prices as worst-case travel
	}
	distNorm := clamp01(d / p.maxDist)
	incompat := 1 - clamp01(c.MatchFit)
	idle := idleGapScore(iv, c.Booked)

	w := p.weights
	return w.Distance*distNorm + w.TimeConflict*(overlap/0.5) + w.Compatibility*incompat + w.Efficiency*idle
}

func (p *Pricer) distance(c Candidate, origin *types.Point) (float64, bool) {
	if origin == nil || c.Walker.Location == nil {
		return 0, false
	}
	return geo.DistanceKm(*origin, *c.Walker.Location), true
}

// worstOverlap is the highest conflict severity against the candidate's
// existing bookings, 0 when the calendar is clear.
func worstOverlap(iv schedule.Interval, booked []schedule.Interval) float64 {
	worst := 0.0
	for _, b := range booked {
		if s := schedule.Severity(iv, b); s > worst {
			worst = s
		}
	}
	return worst
}

// idleGapScore penalizes assignments that strand the walker with a long idle
// gap before the walk. Gaps beyond two hours count as fully idle.
func idleGapScore(iv schedule.Interval, booked []schedule.Interval) float64 {
	const maxIdle = 2 * time.Hour
	best := time.Duration(-1)
	for _, b := range booked {
		if !b.End.After(iv.Start) {
			gap := iv.Start.Sub(b.End)
			if best < 0 || gap < best {
				best = gap
			}
		}
	}
	if best < 0 {
		return 0 // first walk of the day costs nothing extra
	}
	return clamp01(float64(best) / float64(maxIdle))
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
