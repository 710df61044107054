package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func daysAfterReference(days float64) time.Time {
	return ReferenceNewMoon.Add(time.Duration(days * 24 * float64(time.Hour)))
}

func TestCalculateMoonPhaseAtReference(t *testing.T) {
	got := CalculateMoonPhase(ReferenceNewMoon)
	assert.Equal(t, NewMoon, got.Phase)
	assert.Equal(t, 0.0, got.Degrees)
	assert.Equal(t, 0.0, got.Illumination)
}

func TestCalculateMoonPhaseAcrossCycle(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     MoonPhase
	}{
		{"waxing crescent", 1.0 / 8, WaxingCrescent},
		{"first quarter", 2.0 / 8, FirstQuarter},
		{"waxing gibbous", 3.0 / 8, WaxingGibbous},
		{"full moon", 4.0 / 8, FullMoon},
		{"waning gibbous", 5.0 / 8, WaningGibbous},
		{"last quarter", 6.0 / 8, LastQuarter},
		{"waning crescent", 7.0 / 8, WaningCrescent},
		{"late in cycle wraps to new", 0.97, NewMoon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMoonPhase(daysAfterReference(tt.fraction * SynodicMonthDays))
			assert.Equal(t, tt.want, got.Phase)
			assert.InDelta(t, tt.fraction*360, got.Degrees, 0.01)
		})
	}
}

func TestCalculateMoonPhaseFullMoonIllumination(t *testing.T) {
	got := CalculateMoonPhase(daysAfterReference(SynodicMonthDays / 2))
	assert.Equal(t, FullMoon, got.Phase)
	assert.Equal(t, 1.0, got.Illumination)
}

func TestCalculateMoonPhaseIsPeriodic(t *testing.T) {
	base := time.Date(2025, time.March, 14, 6, 0, 0, 0, time.UTC)
	a := CalculateMoonPhase(base)

	for _, cycles := range []float64{1, 5, -3} {
		b := CalculateMoonPhase(base.Add(time.Duration(cycles * SynodicMonthDays * 24 * float64(time.Hour))))
		assert.Equal(t, a.Phase, b.Phase)
		assert.InDelta(t, a.Degrees, b.Degrees, 0.001)
	}
}

func TestCalculateMoonPhaseBeforeReference(t *testing.T) {
	got := CalculateMoonPhase(daysAfterReference(-SynodicMonthDays / 4))
	assert.Equal(t, LastQuarter, got.Phase)
	assert.InDelta(t, 270, got.Degrees, 0.01)
	assert.Equal(t, 0.5, got.Illumination)

	old := CalculateMoonPhase(time.Date(1969, time.July, 20, 20, 17, 0, 0, time.UTC))
	assert.GreaterOrEqual(t, old.Degrees, 0.0)
	assert.Less(t, old.Degrees, 360.0)
}

func TestCalculateMoonPhaseRanges(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24*60; h += 7 {
		got := CalculateMoonPhase(start.Add(time.Duration(h) * time.Hour))
		assert.GreaterOrEqual(t, got.Degrees, 0.0)
		assert.Less(t, got.Degrees, 360.0)
		assert.GreaterOrEqual(t, got.Illumination, 0.0)
		assert.LessOrEqual(t, got.Illumination, 1.0)
		_, known := MoonPhaseByID(got.Phase)
		assert.True(t, known)
	}
}

func TestCalculateMoonPhaseFarFromReference(t *testing.T) {
	tests := []struct {
		date    time.Time
		degrees float64
		phase   MoonPhase
	}{
		{time.Date(1650, time.March, 1, 0, 0, 0, 0, time.UTC), 339.84, NewMoon},
		{time.Date(1500, time.January, 1, 0, 0, 0, 0, time.UTC), 246.04, LastQuarter},
		{time.Date(2350, time.March, 1, 0, 0, 0, 0, time.UTC), 256.35, LastQuarter},
		{time.Date(2350, time.March, 16, 0, 0, 0, 0, time.UTC), 79.22, FirstQuarter},
	}
	for _, tt := range tests {
		t.Run(tt.date.Format(time.DateOnly), func(t *testing.T) {
			got := CalculateMoonPhase(tt.date)
			assert.InDelta(t, tt.degrees, got.Degrees, 0.01)
			assert.Equal(t, tt.phase, got.Phase)
		})
	}
}

func TestCalculateMoonPhaseIsPeriodicCenturiesAhead(t *testing.T) {
	base := time.Date(2350, time.March, 1, 0, 0, 0, 0, time.UTC)
	a := CalculateMoonPhase(base)

	for _, cycles := range []float64{1, 3, -2} {
		b := CalculateMoonPhase(base.Add(time.Duration(cycles * SynodicMonthDays * 24 * float64(time.Hour))))
		assert.Equal(t, a.Phase, b.Phase)
		assert.InDelta(t, a.Degrees, b.Degrees, 0.001)
	}
}
