package calculation

import (
	"math"
	"time"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// volatilitySeedMultiplier spreads consecutive calendar years across the sine hash.
const volatilitySeedMultiplier = 1337

// DeterministicRandom maps a seed to [0, 1) with a sine hash. It has no state,
// so the same seed always yields the same value.
func DeterministicRandom(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}

// volatilitySwing returns the market swing for a calendar year, in [-3, +3] percent.
func volatilitySwing(year int) float64 {
	return DeterministicRandom(float64(year*volatilitySeedMultiplier))*6 - 3
}
