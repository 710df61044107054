package astro

import (
	"math"
	"time"
)

const (
	// SynodicMonthDays is the mean time between successive new moons.
	SynodicMonthDays = 29.53059

	phaseSectorDegrees = 45.0
)

// ReferenceNewMoon is a known new moon used as the epoch for phase calculation.
var ReferenceNewMoon = time.Date(2000, time.January, 6, 12, 24, 0, 0, time.UTC)

// phaseOrder maps 45° sectors, offset by half a sector, to phases.
var phaseOrder = [8]MoonPhase{
	NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous,
	FullMoon, WaningGibbous, LastQuarter, WaningCrescent,
}

// MoonPhaseResult is the computed state of the moon at an instant.
type MoonPhaseResult struct {
	Phase        MoonPhase `json:"phase"`
	Illumination float64   `json:"illumination"` // [0,1], two decimals
	Degrees      float64   `json:"degrees"`      // [0,360)
}

// CalculateMoonPhase returns the lunar phase at t. Dates before the
// reference epoch are handled by normalizing into one synodic cycle.
func CalculateMoonPhase(t time.Time) MoonPhaseResult {
	days := daysSinceReference(t)

	cycle := math.Mod(days, SynodicMonthDays)
	if cycle < 0 {
		cycle += SynodicMonthDays
	}
	position := cycle / SynodicMonthDays

	degrees := position * 360
	if degrees >= 360 {
		degrees = 0
	}

	illumination := (1 - math.Cos(position*2*math.Pi)) / 2

	return MoonPhaseResult{
		Phase:        phaseForDegrees(degrees),
		Illumination: math.Round(illumination*100) / 100,
		Degrees:      degrees,
	}
}

// daysSinceReference avoids time.Duration, which saturates about 292 years
// from the epoch.
func daysSinceReference(t time.Time) float64 {
	secs := t.Unix() - ReferenceNewMoon.Unix()
	nanos := t.Nanosecond() - ReferenceNewMoon.Nanosecond()
	return float64(secs)/86400 + float64(nanos)/86400e9
}

// CurrentMoonPhase returns the phase right now.
func CurrentMoonPhase() MoonPhaseResult {
	return CalculateMoonPhase(time.Now())
}

func phaseForDegrees(deg float64) MoonPhase {
	sector := int(math.Floor((deg + phaseSectorDegrees/2) / phaseSectorDegrees))
	return phaseOrder[sector%len(phaseOrder)]
}
