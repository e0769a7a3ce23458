// Random streams for growth.
//
// Every draw of a run (mouth placement, selection, branch kind, headings)
// comes from one *rand.Rand seeded by Parameters.Seed, in a fixed order, so
// a seed reproduces the same network. *rand.Rand is not goroutine-safe; a
// Grower owns its stream.
package growth

import "math/rand"

// defaultRNGSeed is used when Parameters.Seed is 0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 => defaultRNGSeed; otherwise the seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.New(rand.NewSource(s))
}

// gauss draws from N(mean, std) on r.
//
// Complexity: O(1).
func gauss(r *rand.Rand, mean, std float64) float64 {
	return mean + r.NormFloat64()*std
}
