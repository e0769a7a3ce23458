package hydrology

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/planar"
	"github.com/katalvlaran/hydroterra/spatial"
)

// Network is the river forest. The zero value is not usable; call New.
type Network struct {
	nodes  []*Node
	mouths []int
	index  *spatial.Index
	// longest parent->child edge, used to widen edge searches
	maxEdge float64
}

// New returns an empty network.
func New() *Network {
	return &Network{index: spatial.New(nil)}
}

// AddNode creates a node with the next sequential id and returns that id.
// priority is the caller's initial classification; it is immediately
// re-derived (a new node is always a leaf) and propagated to ancestors.
//
// Steps:
//  1. Validate the parent id, if any.
//  2. Append the node to the arena and its position to the spatial index.
//  3. Register it as a mouth, or as the parent's newest child (tracking the
//     longest link for Clearance).
//  4. Reclassify from the parent toward the mouth, stopping at the first
//     ancestor whose priority does not change.
//
// Complexity: O(1) amortised for the index plus O(h·c) for the priority
// walk, with h the depth of the new node and c the children per ancestor.
func (n *Network) AddNode(position r2.Point, elevation float64, priority int, opts ...NodeOption) (int, error) {
	spec := nodeSpec{parent: NoParent, contourIndex: -1}
	for _, opt := range opts {
		opt(&spec)
	}
	if spec.parent != NoParent && !n.Has(spec.parent) {
		return 0, fmt.Errorf("hydrology: parent %d: %w", spec.parent, ErrUnknownNode)
	}

	id := len(n.nodes)
	node := &Node{
		ID:           id,
		Position:     position,
		Elevation:    elevation,
		Priority:     priority,
		Parent:       spec.parent,
		ContourIndex: spec.contourIndex,
	}
	n.nodes = append(n.nodes, node)
	n.index.Insert(position)

	if spec.parent == NoParent {
		n.mouths = append(n.mouths, id)
	} else {
		parent := n.nodes[spec.parent]
		parent.children = append(parent.children, id)
		if l := position.Sub(parent.Position).Norm(); l > n.maxEdge {
			n.maxEdge = l
		}
	}

	node.Priority = 1
	n.reclassify(node.Parent)

	return id, nil
}

// reclassify walks from id toward the mouth, re-deriving stream order.
func (n *Network) reclassify(id int) {
	for id != NoParent {
		node := n.nodes[id]
		want := n.derivedPriority(node)
		if want == node.Priority {
			return
		}
		node.Priority = want
		id = node.Parent
	}
}

func (n *Network) derivedPriority(node *Node) int {
	if len(node.children) == 0 {
		return 1
	}
	maxP, count := 0, 0
	for _, c := range node.children {
		p := n.nodes[c].Priority
		switch {
		case p > maxP:
			maxP, count = p, 1
		case p == maxP:
			count++
		}
	}
	if count > 1 {
		return maxP + 1
	}
	return maxP
}

// Len is the number of nodes.
func (n *Network) Len() int { return len(n.nodes) }

// Has reports whether id names an existing node.
func (n *Network) Has(id int) bool { return id >= 0 && id < len(n.nodes) }

// Node returns the node with the given id. It panics for unknown ids.
func (n *Network) Node(id int) *Node {
	if !n.Has(id) {
		panic(fmt.Sprintf("hydrology: node %d does not exist (network has %d nodes)", id, len(n.nodes)))
	}
	return n.nodes[id]
}

// Nodes returns every node in id order.
func (n *Network) Nodes() []*Node {
	return append([]*Node(nil), n.nodes...)
}

// Position returns the location of node id.
func (n *Network) Position(id int) r2.Point { return n.Node(id).Position }

// Parent returns the downstream neighbour of id; ok is false for mouths.
func (n *Network) Parent(id int) (parent int, ok bool) {
	p := n.Node(id).Parent
	return p, p != NoParent
}

// Children returns the direct upstream neighbours of id in insertion order.
func (n *Network) Children(id int) []int {
	return append([]int(nil), n.Node(id).children...)
}

// Ancestors returns the chain of downstream nodes from id's parent to its
// mouth.
func (n *Network) Ancestors(id int) []int {
	var out []int
	for p := n.Node(id).Parent; p != NoParent; p = n.nodes[p].Parent {
		out = append(out, p)
	}
	return out
}

// Mouth returns the root of id's tree.
func (n *Network) Mouth(id int) int {
	for n.Node(id).Parent != NoParent {
		id = n.nodes[id].Parent
	}
	return id
}

// Upstream returns every node draining through id, excluding id, in
// pre-order.
func (n *Network) Upstream(id int) []int {
	var out []int
	stack := append([]int(nil), n.Node(id).children...)
	for len(stack) > 0 {
		last := len(stack) - 1
		cur := stack[last]
		stack = stack[:last]
		out = append(out, cur)
		stack = append(stack, n.nodes[cur].children...)
	}
	return out
}

// LeavesUnder returns the source nodes (no children) upstream of id,
// sorted by id.
func (n *Network) LeavesUnder(id int) []int {
	var out []int
	for _, u := range n.Upstream(id) {
		if len(n.nodes[u].children) == 0 {
			out = append(out, u)
		}
	}
	sort.Ints(out)
	return out
}

// Mouths returns the mouth node ids in creation order.
func (n *Network) Mouths() []int {
	return append([]int(nil), n.mouths...)
}

// Edges returns every parent->child link ordered by child id.
func (n *Network) Edges() []Edge {
	out := make([]Edge, 0, len(n.nodes))
	for _, node := range n.nodes {
		if node.Parent != NoParent {
			out = append(out, Edge{Parent: node.Parent, Child: node.ID})
		}
	}
	return out
}

// PathBetween returns the node ids on the river path from a to b, both
// inclusive. The path climbs from a to the lowest common ancestor and
// descends to b.
func (n *Network) PathBetween(a, b int) ([]int, error) {
	if !n.Has(a) || !n.Has(b) {
		return nil, ErrUnknownNode
	}
	upA := append([]int{a}, n.Ancestors(a)...)
	upB := append([]int{b}, n.Ancestors(b)...)
	if upA[len(upA)-1] != upB[len(upB)-1] {
		return nil, fmt.Errorf("hydrology: path %d->%d: %w", a, b, ErrDisconnected)
	}

	onA := make(map[int]int, len(upA))
	for i, id := range upA {
		onA[id] = i
	}
	for j, id := range upB {
		if i, ok := onA[id]; ok {
			path := append([]int(nil), upA[:i+1]...)
			for k := j - 1; k >= 0; k-- {
				path = append(path, upB[k])
			}
			return path, nil
		}
	}
	// unreachable: both chains end at the same mouth
	return nil, fmt.Errorf("hydrology: path %d->%d: %w", a, b, ErrDisconnected)
}

// RadiusQuery returns the ids of nodes within radius of p, sorted.
func (n *Network) RadiusQuery(p r2.Point, radius float64) []int {
	return n.index.Radius(p, radius)
}

// EdgesWithinRadius returns every edge with at least one endpoint within
// radius of p, ordered by child id.
func (n *Network) EdgesWithinRadius(p r2.Point, radius float64) []Edge {
	seen := make(map[int]struct{})
	var out []Edge
	add := func(parent, child int) {
		if _, ok := seen[child]; ok {
			return
		}
		seen[child] = struct{}{}
		out = append(out, Edge{Parent: parent, Child: child})
	}
	for _, id := range n.index.Radius(p, radius) {
		node := n.nodes[id]
		if node.Parent != NoParent {
			add(node.Parent, id)
		}
		for _, c := range node.children {
			add(id, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Child < out[j].Child })
	return out
}

// Clearance returns the distance from p to the nearest node or edge within
// radius, and false when nothing lies within radius. An edge can pass
// within radius while both endpoints lie outside it, so edges are gathered
// from nodes within radius plus half the longest edge.
func (n *Network) Clearance(p r2.Point, radius float64) (float64, bool) {
	best, found := radius, false
	for _, id := range n.index.Radius(p, radius) {
		if d := n.nodes[id].Position.Sub(p).Norm(); d <= best {
			best, found = d, true
		}
	}
	for _, e := range n.EdgesWithinRadius(p, radius+n.maxEdge/2) {
		d := planar.PointSegmentDistance(p, n.nodes[e.Parent].Position, n.nodes[e.Child].Position)
		if d <= best {
			best, found = d, true
		}
	}
	return best, found
}
