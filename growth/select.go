package growth

import "math/rand"

// Candidate is a node still eligible for expansion, as seen by selection.
type Candidate struct {
	ID        int
	Elevation float64
	Priority  int
}

// SelectNode returns the index into cands of the candidate to expand next,
// or -1 when cands is empty.
//
// SelectNearHighest keeps candidates with elevation >= max-zeta and draws
// one uniformly. SelectClassic keeps candidates with elevation < min+zeta
// (the minimum itself always qualifies) and returns the highest priority,
// preferring the later index on ties; it consumes no randomness.
func SelectNode(cands []Candidate, zeta float64, policy SelectionPolicy, rng *rand.Rand) int {
	if len(cands) == 0 {
		return -1
	}

	switch policy {
	case SelectClassic:
		lowest := cands[0].Elevation
		for _, c := range cands[1:] {
			if c.Elevation < lowest {
				lowest = c.Elevation
			}
		}
		best := -1
		for i, c := range cands {
			if c.Elevation != lowest && c.Elevation >= lowest+zeta {
				continue
			}
			if best < 0 || c.Priority >= cands[best].Priority {
				best = i
			}
		}
		return best

	default:
		highest := cands[0].Elevation
		for _, c := range cands[1:] {
			if c.Elevation > highest {
				highest = c.Elevation
			}
		}
		window := make([]int, 0, len(cands))
		for i, c := range cands {
			if c.Elevation >= highest-zeta {
				window = append(window, i)
			}
		}
		return window[rng.Intn(len(window))]
	}
}
