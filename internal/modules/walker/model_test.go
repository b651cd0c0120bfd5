package walker

import (
	"testing"
	"time"
)

func TestParseDogSize_UnknownFallsBackNeutral(t *testing.T) {
	cases := map[string]DogSize{
		"small":   SizeSmall,
		"medium":  SizeMedium,
		"large":   SizeLarge,
		"":        SizeUnknown,
		"gigantic": SizeUnknown,
	}
	for in, want := range cases {
		if got := ParseDogSize(in); got != want {
			t.Errorf("ParseDogSize(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRankOrdering(t *testing.T) {
	if SizeSmall.Rank() >= SizeMedium.Rank() || SizeMedium.Rank() >= SizeLarge.Rank() {
		t.Error("size ranks must be strictly increasing")
	}
	if EnergyLow.Rank() >= EnergyVeryHigh.Rank() {
		t.Error("energy ranks must be strictly increasing")
	}
	if SizeUnknown.Rank() != -1 || TemperamentUnknown.Rank() != -1 || EnergyUnknown.Rank() != -1 {
		t.Error("unknown categories must rank -1")
	}
}

func TestExperienceLevel(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"beginner", 1},
		{"intermediate", 2},
		{"expert", 3},
		{"grandmaster", 1}, // unknown tier is conservative
	}
	for _, tc := range cases {
		if got := ParseExperienceTier(tc.in).Level(); got != tc.want {
			t.Errorf("ParseExperienceTier(%q).Level() = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSlotFor(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		hour int
		want TimeSlot
	}{
		{0, SlotMorning},
		{11, SlotMorning},
		{12, SlotAfternoon},
		{16, SlotAfternoon},
		{17, SlotEvening},
		{23, SlotEvening},
	}
	for _, tc := range cases {
		if got := SlotFor(day.Add(time.Duration(tc.hour) * time.Hour)); got != tc.want {
			t.Errorf("SlotFor(hour=%d) = %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestWalkerAccessors(t *testing.T) {
	w := &Walker{
		AvailableDays:  []time.Weekday{time.Monday, time.Wednesday},
		PreferredSlots: []TimeSlot{SlotMorning},
		SupportedNeeds: []string{"medication", "senior_care"},
	}
	if !w.AvailableOn(time.Monday) || w.AvailableOn(time.Sunday) {
		t.Error("AvailableOn mismatch")
	}
	if !w.PrefersSlot(SlotMorning) || w.PrefersSlot(SlotEvening) {
		t.Error("PrefersSlot mismatch")
	}
	if !w.SupportsNeed("medication") || w.SupportsNeed("anxiety") {
		t.Error("SupportsNeed mismatch")
	}
}
