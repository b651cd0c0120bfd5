package owner

import (
	"testing"

	"pawmatch/internal/modules/walker"
)

func TestDogDifficulty(t *testing.T) {
	cases := []struct {
		name string
		dog  Dog
		want int
	}{
		{"easy dog", Dog{Temperament: walker.TemperamentCalm, Energy: walker.EnergyLow}, 1},
		{"special needs", Dog{SpecialNeeds: []string{"medication"}}, 2},
		{"aggressive", Dog{Temperament: walker.TemperamentAggressive}, 2},
		{"very high energy", Dog{Energy: walker.EnergyVeryHigh}, 2},
		{
			"everything at once",
			Dog{
				SpecialNeeds: []string{"medication", "anxiety"},
				Temperament:  walker.TemperamentAggressive,
				Energy:       walker.EnergyVeryHigh,
			},
			4,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.dog.Difficulty(); got != tc.want {
				t.Errorf("Difficulty() = %d, want %d", got, tc.want)
			}
		})
	}
}
