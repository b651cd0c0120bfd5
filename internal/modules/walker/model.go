// README: Walker profile aggregate and the category enums used by matching.
package walker

import (
	"time"

	"pawmatch/internal/types"
)

// DogSize is an ordered category: small < medium < large. Unknown values
// coming from storage parse to SizeUnknown, which matching treats as neutral.
type DogSize int

const (
	SizeUnknown DogSize = iota
	SizeSmall
	SizeMedium
	SizeLarge
)

func ParseDogSize(s string) DogSize {
	switch s {
	case "small":
		return SizeSmall
	case "medium":
		return SizeMedium
	case "large":
		return SizeLarge
	default:
		return SizeUnknown
	}
}

func (s DogSize) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Rank returns the position of the size on its ordered scale, or -1 when
// the value is unknown and no ordering applies.
func (s DogSize) Rank() int {
	if s == SizeUnknown {
		return -1
	}
	return int(s) - 1
}

// Temperament is ordered from most placid to most demanding:
// calm < friendly < energetic < aggressive.
type Temperament int

const (
	TemperamentUnknown Temperament = iota
	TemperamentCalm
	TemperamentFriendly
	TemperamentEnergetic
	TemperamentAggressive
)

func ParseTemperament(s string) Temperament {
	switch s {
	case "calm":
		return TemperamentCalm
	case "friendly":
		return TemperamentFriendly
	case "energetic":
		return TemperamentEnergetic
	case "aggressive":
		return TemperamentAggressive
	default:
		return TemperamentUnknown
	}
}

func (t Temperament) String() string {
	switch t {
	case TemperamentCalm:
		return "calm"
	case TemperamentFriendly:
		return "friendly"
	case TemperamentEnergetic:
		return "energetic"
	case TemperamentAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

func (t Temperament) Rank() int {
	if t == TemperamentUnknown {
		return -1
	}
	return int(t) - 1
}

// EnergyLevel is ordered: low < medium < high < veryHigh.
type EnergyLevel int

const (
	EnergyUnknown EnergyLevel = iota
	EnergyLow
	EnergyMedium
	EnergyHigh
	EnergyVeryHigh
)

func ParseEnergyLevel(s string) EnergyLevel {
	switch s {
	case "low":
		return EnergyLow
	case "medium":
		return EnergyMedium
	case "high":
		return EnergyHigh
	case "very_high":
		return EnergyVeryHigh
	default:
		return EnergyUnknown
	}
}

func (e EnergyLevel) String() string {
	switch e {
	case EnergyLow:
		return "low"
	case EnergyMedium:
		return "medium"
	case EnergyHigh:
		return "high"
	case EnergyVeryHigh:
		return "very_high"
	default:
		return "unknown"
	}
}

func (e EnergyLevel) Rank() int {
	if e == EnergyUnknown {
		return -1
	}
	return int(e) - 1
}

// ExperienceTier maps to an integer level 1-3 used against dog difficulty.
type ExperienceTier int

const (
	TierBeginner ExperienceTier = iota + 1
	TierIntermediate
	TierExpert
)

func ParseExperienceTier(s string) ExperienceTier {
	switch s {
	case "intermediate":
		return TierIntermediate
	case "expert":
		return TierExpert
	default:
		// Unknown tiers fall back to the most conservative level.
		return TierBeginner
	}
}

func (t ExperienceTier) String() string {
	switch t {
	case TierIntermediate:
		return "intermediate"
	case TierExpert:
		return "expert"
	default:
		return "beginner"
	}
}

func (t ExperienceTier) Level() int {
	if t < TierBeginner || t > TierExpert {
		return 1
	}
	return int(t)
}

// TimeSlot is the coarse part-of-day bucket used by schedule matching.
type TimeSlot int

const (
	SlotMorning TimeSlot = iota + 1
	SlotAfternoon
	SlotEvening
)

func ParseTimeSlot(s string) (TimeSlot, bool) {
	switch s {
	case "morning":
		return SlotMorning, true
	case "afternoon":
		return SlotAfternoon, true
	case "evening":
		return SlotEvening, true
	default:
		return 0, false
	}
}

func (s TimeSlot) String() string {
	switch s {
	case SlotMorning:
		return "morning"
	case SlotAfternoon:
		return "afternoon"
	default:
		return "evening"
	}
}

// SlotFor buckets a clock time: morning before 12:00, afternoon before
// 17:00, evening otherwise.
func SlotFor(t time.Time) TimeSlot {
	switch {
	case t.Hour() < 12:
		return SlotMorning
	case t.Hour() < 17:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

// Walker is the provider profile as read by the engine. The engine never
// mutates walkers; rating aggregates are refreshed by the reputation service
// through the store.
type Walker struct {
	ID       types.ID
	Name     string
	Location *types.Point

	AcceptedSizes        []DogSize
	AcceptedTemperaments []Temperament
	AcceptedEnergy       []EnergyLevel
	SupportedNeeds       []string

	Experience ExperienceTier
	HourlyRate types.Money

	AvailableDays  []time.Weekday
	PreferredSlots []TimeSlot
	MaxDistanceKm  float64

	Rating      float64
	ReviewCount int
	Active      bool
}

// AvailableOn reports whether the walker works on the given weekday.
func (w *Walker) AvailableOn(day time.Weekday) bool {
	for _, d := range w.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}

// PrefersSlot reports whether a coarse slot is in the walker's preferred set.
func (w *Walker) PrefersSlot(slot TimeSlot) bool {
	for _, s := range w.PreferredSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SupportsNeed reports whether the walker explicitly supports a special need.
func (w *Walker) SupportsNeed(need string) bool {
	for _, n := range w.SupportedNeeds {
		if n == need {
			return true
		}
	}
	return false
}
