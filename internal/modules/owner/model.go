// README: Owner and dog records as read by the matching engine.
package owner

import (
	"pawmatch/internal/modules/walker"
	"pawmatch/internal/types"
)

type Owner struct {
	ID       types.ID
	Name     string
	Location *types.Point
}

// Dog carries the attributes matching scores against walker preferences.
type Dog struct {
	ID           types.ID
	OwnerID      types.ID
	Name         string
	Size         walker.DogSize
	Temperament  walker.Temperament
	Energy       walker.EnergyLevel
	SpecialNeeds []string
}

// Difficulty scores how demanding the dog is on a 1-4 scale: one point each
// for declared special needs, an aggressive temperament, and very high energy.
func (d *Dog) Difficulty() int {
	score := 1
	if len(d.SpecialNeeds) > 0 {
		score++
	}
	if d.Temperament == walker.TemperamentAggressive {
		score++
	}
	if d.Energy == walker.EnergyVeryHigh {
		score++
	}
	return score
}
