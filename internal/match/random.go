package match

import "math/rand/v2"

// Random is the source of randomness for serves and the computer opponent.
// Float64 returns a value in [0, 1).
type Random interface {
	Float64() float64
}

// NewRandom returns a seedable Random. Matches built from the same seed serve
// and aim identically given identical input.
func NewRandom(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}
