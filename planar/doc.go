// Package planar provides the small set of 2D predicates shared by the
// growth and honeycomb packages, expressed over github.com/golang/geo/r2.
//
// What:
//
//   - SegmentIntersection: exact crossing point of two closed segments.
//   - PointSegmentDistance / SegmentDistance: Euclidean clearances used by
//     the acceptability test for new river nodes.
//   - SignedArea / Area: shoelace polygon area (positive when CCW).
//   - ContainsPoint: even-odd point-in-polygon test.
//
// Complexity:
//
//   - Segment predicates: O(1).
//   - Polygon predicates: O(n) in the number of vertices.
//
// Errors:
//
//   - None. Degenerate inputs (parallel segments, zero-length segments,
//     polygons with fewer than 3 vertices) are reported through the boolean
//     or zero results.
package planar
