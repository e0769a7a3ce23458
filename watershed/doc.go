// Package watershed accumulates drainage area and discharge over a river
// network once the land has been cut into cells.
//
// What:
//
//   - Compute sets, for every node, LocalWatershed (the area of its own
//     cell), InheritedWatershed (local plus every upstream node's local) and
//     Flow = FlowCoefficient · InheritedWatershed^FlowExponent.
//   - TraceRivers turns the forest into river polylines. A river starts at
//     a source node and runs downstream until it joins a river draining a
//     larger area, or reaches the sea; the polyline is stored on the source
//     node's Rivers field.
//
// Compute visits nodes in depth-first postorder (hydrology.Network.Walk),
// so a node's inherited area is final before its parent reads it.
//
// Complexity:
//
//   - Compute: O(n) plus one cell-area evaluation per node.
//   - TraceRivers: O(total polyline length).
//
// Errors:
//
//   - ErrCellCount: the area source does not have one cell per node.
//   - Context cancellation aborts Compute; values already written stay.
package watershed
