// Package partition computes the Voronoi diagram of a point set and exposes
// it as flat index arrays.
//
// What:
//
//   - Compute runs Fortune's sweep (github.com/pzsz/voronoi) over the input
//     points clipped to a bounding box and returns a Diagram:
//     Points (the input, in order), Vertices (deduplicated ridge endpoints),
//     RidgePoints / RidgeVertices (per ridge, the two points it separates and
//     its two endpoint vertices) and PointRidges (per point, its ridges).
//   - Ridges of zero length and ridges wholly outside the box are dropped by
//     the sweep; a point whose cell lies entirely outside the box has no
//     ridges.
//
// Complexity:
//
//   - O(n log n) sweep plus O(r) map lookups for r ridges.
//
// Errors:
//
//   - ErrTooFewPoints: fewer than two points.
//   - ErrDuplicatePoint: two input points coincide.
//   - ErrOutsideBounds: a point lies outside the bounding box.
//   - ErrDegenerate: the sweep failed on the configuration. Fortune's
//     algorithm in this library breaks when the lowest sites tie on Y, so
//     callers adding helper sites should keep their Y values distinct.
package partition
