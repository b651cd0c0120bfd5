// README: Multi-factor compatibility scoring between walkers and requests.
package matching

import (
	"math"
	"sort"

	"pawmatch/internal/modules/geo"
	"pawmatch/internal/modules/owner"
	"pawmatch/internal/modules/request"
	"pawmatch/internal/modules/walker"
)

// Scorer blends the per-factor scores into one bounded [0,1] value. Factors
// that cannot be evaluated (missing locations) are left out of the weighted
// sum entirely rather than counted as zero.
type Scorer struct {
	weights   Weights
	baselines Baselines
}

func NewScorer(weights Weights, baselines Baselines) *Scorer {
	return &Scorer{weights: weights, baselines: baselines}
}

// Score computes the compatibility of one walker for one request.
func (s *Scorer) Score(w *walker.Walker, req *request.WalkRequest, ow *owner.Owner, dog *owner.Dog) Match {
	breakdown := make(map[Factor]float64, 9)
	var sum, weightTotal float64

	add := func(f Factor, weight, value float64) {
		value = clamp01(value)
		breakdown[f] = value
		sum += weight * value
		weightTotal += weight
	}

	if w.Location != nil && ow.Location != nil && w.MaxDistanceKm > 0 {
		d := geo.DistanceKm(*w.Location, *ow.Location)
		add(FactorDistance, s.weights.Distance, distanceScore(d, w.MaxDistanceKm))
	}
	add(FactorSize, s.weights.Size, categoryScore(dog.Size.Rank(), sizeRanks(w.AcceptedSizes), s.baselines.Size))
	add(FactorTemperament, s.weights.Temperament, categoryScore(dog.Temperament.Rank(), temperamentRanks(w.AcceptedTemperaments), s.baselines.Temperament))
	add(FactorEnergy, s.weights.Energy, categoryScore(dog.Energy.Rank(), energyRanks(w.AcceptedEnergy), s.baselines.Energy))
	add(FactorSpecialNeeds, s.weights.SpecialNeeds, needsScore(w, dog))
	add(FactorSchedule, s.weights.Schedule, scheduleScore(w, req))
	add(FactorExperience, s.weights.Experience, experienceScore(w.Experience.Level(), dog.Difficulty()))
	add(FactorReputation, s.weights.Reputation, w.Rating/5)
	add(FactorPrice, s.weights.Price, priceScore(w, req))

	score := 0.0
	if weightTotal > 0 {
		score = clamp01(sum / weightTotal)
	}
	return Match{WalkerID: w.ID, Score: score, Breakdown: breakdown}
}

// distanceScore decays exponentially with distance up to the walker's travel
// limit: 1.0 at the doorstep, 0.0 at or beyond the limit, smooth in between.
func distanceScore(d, maxDistance float64) float64 {
	switch {
	case d <= 0:
		return 1.0
	case d >= maxDistance:
		return 0.0
	default:
		return math.Exp(-d / (maxDistance * distanceDecayShare))
	}
}

// categoryScore measures how close the dog's category sits to the walker's
// declared preferences on the ordered scale: exact 1.0, one step 0.7, two
// or more 0.3. An empty preference set scores the neutral baseline.
func categoryScore(dogRank int, accepted []int, baseline float64) float64 {
	if len(accepted) == 0 || dogRank < 0 {
		return baseline
	}
	best := math.MaxInt32
	for _, r := range accepted {
		if diff := abs(dogRank - r); diff < best {
			best = diff
		}
	}
	switch best {
	case 0:
		return 1.0
	case 1:
		return 0.7
	default:
		return 0.3
	}
}

// needsScore is the fraction of the dog's declared special needs the walker
// explicitly supports; a dog with no needs is a perfect fit.
func needsScore(w *walker.Walker, dog *owner.Dog) float64 {
	if len(dog.SpecialNeeds) == 0 {
		return 1.0
	}
	supported := 0
	for _, need := range dog.SpecialNeeds {
		if w.SupportsNeed(need) {
			supported++
		}
	}
	return float64(supported) / float64(len(dog.SpecialNeeds))
}

// scheduleScore is zero outside the walker's available days, full inside a
// preferred slot, partial otherwise.
func scheduleScore(w *walker.Walker, req *request.WalkRequest) float64 {
	if !w.AvailableOn(req.Start.Weekday()) {
		return 0
	}
	if w.PrefersSlot(walker.SlotFor(req.Start)) {
		return 1.0
	}
	return offSlotSchedule
}

// experienceScore compares the walker's level to the dog's difficulty:
// level at or above difficulty is a full match, exactly one short degrades
// to 0.7, further short to 0.3.
func experienceScore(level, difficulty int) float64 {
	switch {
	case level >= difficulty:
		return 1.0
	case level == difficulty-1:
		return 0.7
	default:
		return 0.3
	}
}

// priceScore steps down as the estimated walk cost overruns the budget:
// within budget 1.0, up to 20% over 0.7, up to 50% over 0.4, beyond 0.0.
func priceScore(w *walker.Walker, req *request.WalkRequest) float64 {
	estimated := float64(w.HourlyRate.Amount) * req.Duration().Hours()
	budget := float64(req.Budget.Amount)
	if budget <= 0 {
		return 0
	}
	ratio := estimated / budget
	switch {
	case ratio <= 1.0:
		return 1.0
	case ratio <= 1.2:
		return 0.7
	case ratio <= 1.5:
		return 0.4
	default:
		return 0.0
	}
}

// Rank scores every candidate and returns those at or above the acceptance
// threshold, best first, capped to topK. Ties break on walker ID ascending
// so rankings are stable across runs.
func (s *Scorer) Rank(candidates []*walker.Walker, req *request.WalkRequest, ow *owner.Owner, dog *owner.Dog, topK int) []Match {
	var matches []Match
	for _, w := range candidates {
		if m := s.Score(w, req, ow, dog); m.Score >= AcceptThreshold {
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].WalkerID < matches[j].WalkerID
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

func sizeRanks(in []walker.DogSize) []int {
	out := make([]int, 0, len(in))
	for _, v := range in {
		if r := v.Rank(); r >= 0 {
			out = append(out, r)
		}
	}
	return out
}

func temperamentRanks(in []walker.Temperament) []int {
	out := make([]int, 0, len(in))
	for _, v := range in {
		if r := v.Rank(); r >= 0 {
			out = append(out, r)
		}
	}
	return out
}

func energyRanks(in []walker.EnergyLevel) []int {
	out := make([]int, 0, len(in))
	for _, v := range in {
		if r := v.Rank(); r >= 0 {
			out = append(out, r)
		}
	}
	return out
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

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
