// README: Match results and the weight/baseline configuration for scoring.
package matching

import "pawmatch/internal/types"

// Factor names the components of a compatibility score breakdown.
type Factor string

const (
	FactorDistance     Factor = "distance"
	FactorSize         Factor = "size"
	FactorTemperament  Factor = "temperament"
	FactorEnergy       Factor = "energy"
	FactorSpecialNeeds Factor = "special_needs"
	FactorSchedule     Factor = "schedule"
	FactorExperience   Factor = "experience"
	FactorReputation   Factor = "reputation"
	FactorPrice        Factor = "price"
)

// Match is one scored walker for a request, with the per-factor breakdown.
type Match struct {
	WalkerID  types.ID
	Score     float64
	Breakdown map[Factor]float64
}

// Weights control the blended score. They must sum to 1.0; factors omitted
// for missing data drop out of both numerator and denominator.
type Weights struct {
	Distance     float64 `koanf:"distance"`
	Size         float64 `koanf:"size"`
	Temperament  float64 `koanf:"temperament"`
	Energy       float64 `koanf:"energy"`
	SpecialNeeds float64 `koanf:"special_needs"`
	Schedule     float64 `koanf:"schedule"`
	Experience   float64 `koanf:"experience"`
	Reputation   float64 `koanf:"reputation"`
	Price        float64 `koanf:"price"`
}

func DefaultWeights() Weights {
	return Weights{
		Distance:     0.20,
		Size:         0.10,
		Temperament:  0.10,
		Energy:       0.05,
		SpecialNeeds: 0.15,
		Schedule:     0.15,
		Experience:   0.10,
		Reputation:   0.10,
		Price:        0.05,
	}
}

func (w Weights) Sum() float64 {
	return w.Distance + w.Size + w.Temperament + w.Energy + w.SpecialNeeds +
		w.Schedule + w.Experience + w.Reputation + w.Price
}

// Baselines are the neutral scores used when a walker declares no preference
// for a category. Absence of preference is neutral, not a match.
type Baselines struct {
	Size        float64 `koanf:"size"`
	Temperament float64 `koanf:"temperament"`
	Energy      float64 `koanf:"energy"`
}

func DefaultBaselines() Baselines {
	return Baselines{Size: 0.5, Temperament: 0.6, Energy: 0.5}
}

const (
	// AcceptThreshold filters out matches too weak to show.
	AcceptThreshold = 0.3
	// distanceDecayShare shapes the exponential distance decay relative to
	// the walker's travel limit.
	distanceDecayShare = 0.3
	// offSlotSchedule is the partial credit for an available day outside
	// the walker's preferred slots.
	offSlotSchedule = 0.5
)
