// Package hydrology holds the river network: a forest of river nodes
// draining to the sea, stored as an arena indexed by stable integer ids.
//
// What:
//
//   - Network.AddNode is the only mutation. It appends a node (mouth when no
//     parent is given), links parent->child, indexes the position, and
//     re-derives stream order (priority) from the new leaf upward.
//   - Read-only queries: RadiusQuery, EdgesWithinRadius, Node, Parent,
//     Children, Ancestors, Upstream, PathBetween, Mouths, LeavesUnder.
//   - Walk is a depth-first traversal of the whole forest with pre- and
//     post-order hooks; DepthFirstPostorder returns its finish order, which
//     lists every child before its parent.
//
// Priority rule (applied after every insertion):
//
//	leaf                         -> 1
//	one child holds the maximum  -> max(children)
//	two or more tie the maximum  -> max(children) + 1
//
// The upward walk stops at the first ancestor whose priority is unchanged.
//
// Complexity:
//
//   - AddNode: O(1) amortised index insert (see package spatial) + O(h·c)
//     priority walk (h = height, c = children per node).
//   - RadiusQuery / EdgesWithinRadius: O(log n + k).
//   - Walk / DepthFirstPostorder: O(n).
//
// Options:
//
//   - WithParent(id), WithContourIndex(i) for AddNode.
//   - WithContext(ctx), WithOnVisit(fn), WithOnExit(fn) for Walk.
//
// Errors:
//
//   - ErrUnknownNode: AddNode with a parent id that does not exist.
//   - ErrDisconnected: PathBetween across two different river systems.
//   - Node, Parent, Children and friends panic on unknown ids; asking for a
//     node that was never created is a programming error.
package hydrology
