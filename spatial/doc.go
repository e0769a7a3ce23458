// Package spatial indexes a growing set of 2D points for nearest-neighbour
// and radius queries.
//
// What:
//
//   - Index stores points under dense integer ids (0, 1, 2, ... in
//     insertion order) inside a bulk-loaded R-tree from
//     github.com/peterstace/simplefeatures/rtree. The tree cannot grow, so
//     recent inserts wait in a tail of at most 64 points that every query
//     also scans; a full tail triggers a fresh bulk load.
//   - Radius returns every id within a Euclidean distance, sorted by id.
//   - Nearest and KNearest walk the tree in priority (distance) order.
//
// Both the hydrology network (river nodes) and the shore model (shoreline
// vertices) are backed by an Index.
//
// Complexity:
//
//   - Insert: O(1), or O(n log n) on the insert that fills the tail;
//     O(n log n / 64) amortised.
//   - Radius: O(log n + k + 64) for k results, plus O(k log k) to sort.
//   - KNearest: O(k log n + 64) typical.
//
// Concurrency:
//
//   - Index is not safe for concurrent mutation. Concurrent reads after the
//     last Insert are safe.
package spatial
