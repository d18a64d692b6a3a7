package physics

import (
	"math"
	"math/rand"
)

// RandFloat returns a uniform value in [min, max).
func RandFloat(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// RandVec returns a vector with a uniformly random heading and a length
// uniform in [minLen, maxLen).
func RandVec(r *rand.Rand, minLen, maxLen float64) Vec2 {
	theta := r.Float64() * 2 * math.Pi
	return FromPolar(theta, RandFloat(r, minLen, maxLen))
}
