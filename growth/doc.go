// Package growth grows a river network inland from the coast.
//
// What:
//
//   - PlaceMouths seeds NumMajorRivers mouth nodes on the shore: the first
//     at a random index, the rest roughly evenly spaced with Gaussian
//     jitter of a sixth of the spacing.
//   - Each Step selects a candidate (SelectNode), draws a branch type from
//     Pc / Pa / Ps and tries up to MaxTries positions per child at distance
//     EdgeLength in a direction drawn around the node's preferred heading.
//   - A position is acceptable when it is on land, at least Eta*EdgeLength
//     from the coast and at least Sigma*EdgeLength from every node and every
//     edge already in the network.
//   - A child climbs SlopeRate * EdgeLength * slope(child) / 255 above its
//     parent, so elevation never decreases going upstream.
//   - Run repeats Step until no candidates are left.
//
// Determinism:
//
//   - All randomness flows from one math/rand stream seeded by
//     Parameters.Seed (0 selects a fixed default seed). The same seed,
//     shore, slope raster and parameters reproduce the same network.
//
// Options:
//
//   - WithLogger(l)        debug diagnostics (exhausted tries, skipped mouths).
//   - WithSelection(p)     SelectNearHighest (default) or SelectClassic.
//   - WithNetwork(n)       grow into an existing network.
//   - WithOnStep(fn)       progress callback after every expansion.
//
// Errors:
//
//   - ErrInvalidParameters: a parameter is out of range (see Validate).
//   - ErrNilShore / ErrNilSlope: missing collaborators.
//   - context errors from Run.
package growth
