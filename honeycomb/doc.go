// Package honeycomb partitions the land around a river network into one
// polygonal cell per river node.
//
// What:
//
//   - Build computes a single Voronoi diagram over every node position plus
//     four far corner points, then walks the nodes in id order and turns
//     each node's Voronoi region into a closed ring of Edges between Qs.
//   - A Q is a cell corner. Inland Qs sit on Voronoi vertices and are
//     shared by every cell meeting there; shore Qs (ridge/shore crossings
//     and shoreline points) belong to one cell only.
//   - An Edge is either a ridge (a clipped Voronoi ridge, shared by the two
//     cells it separates) or a shore edge following one shoreline segment.
//     A ridge crossed by a river link has HasRiver set.
//   - Each cell stores its edges as CellEdges: a shared *Edge plus a
//     Reversed flag, so that walking a cell's ring always yields
//     End(i) == Start(i+1) while the Edge itself stays shared by identity.
//
// Stitching:
//
//  1. The node's ridges are chained into a counterclockwise cycle that
//     starts at a ridge whose first vertex is on land.
//  2. A ridge whose far vertex is on land becomes a land edge.
//  3. A ridge whose far vertex is at sea is cut at the shoreline; the cell
//     then follows the shore one segment per edge until a remaining ridge
//     crosses the current segment, and resumes at that ridge.
//
// Complexity:
//
//   - Build: O(n log n) for the diagram plus O(r) stitching for r ridges;
//     shore searches cost O(k log k) in the number of nearby shore points.
//
// Options:
//
//   - WithLogger(l)     debug summaries per stitched cell.
//   - WithOnCell(fn)    progress callback after every finished cell.
//
// Errors:
//
//   - ErrOpenCell: a cell's ridges do not form a closed chain, or the
//     shore walk never meets another ridge.
//   - ErrNoLand: no ridge of a cell starts on land.
//   - ErrNoShoreCrossing: a ridge leaves the land but no shore segment
//     crosses it.
//   - ErrNoDownstreamEdge: a non-mouth node shares no ridge with its parent.
//   - partition errors (wrapped), for example partition.ErrDegenerate when
//     the Voronoi sweep cannot resolve the node layout.
package honeycomb
