package honeycomb

import (
	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/planar"
)

// NumCells is the number of cells, one per node.
func (h *Honeycomb) NumCells() int { return len(h.cells) }

// Shore returns the shore the honeycomb was built against.
func (h *Honeycomb) Shore() Shore { return h.shore }

// CellEdges returns the boundary of cell id in counterclockwise walking
// order.
func (h *Honeycomb) CellEdges(id int) []CellEdge {
	return append([]CellEdge(nil), h.cells[id]...)
}

// CellQs returns the corners of cell id in walking order.
func (h *Honeycomb) CellQs(id int) []*Q {
	out := make([]*Q, len(h.cells[id]))
	for i, ce := range h.cells[id] {
		out[i] = ce.Start()
	}
	return out
}

// CellVertices returns the corner positions of cell id.
func (h *Honeycomb) CellVertices(id int) []r2.Point {
	out := make([]r2.Point, len(h.cells[id]))
	for i, ce := range h.cells[id] {
		out[i] = ce.Start().Position
	}
	return out
}

// CellRidges returns the edges of cell id that are neither crossed by a
// river nor part of the shoreline.
func (h *Honeycomb) CellRidges(id int) []*Edge {
	var out []*Edge
	for _, ce := range h.cells[id] {
		if !ce.Edge.HasRiver && !ce.Edge.IsShore {
			out = append(out, ce.Edge)
		}
	}
	return out
}

// CellOutflowRidge returns the edge cell id drains through; ok is false for
// mouths.
func (h *Honeycomb) CellOutflowRidge(id int) (e *Edge, ok bool) {
	e = h.downstream[id]
	return e, e != nil
}

// CellArea is the area of cell id.
func (h *Honeycomb) CellArea(id int) float64 {
	return planar.Area(h.CellVertices(id))
}

// BoundingBox returns the smallest rectangle holding cell id.
func (h *Honeycomb) BoundingBox(id int) r2.Rect {
	return r2.RectFromPoints(h.CellVertices(id)...)
}

// IsInCell reports whether p lies inside cell id.
func (h *Honeycomb) IsInCell(p r2.Point, id int) bool {
	return planar.ContainsPoint(h.CellVertices(id), p)
}

// NodeID returns the cell containing p. A land point belongs to the cell of
// its nearest node; ok is false when p is outside that cell (at sea).
func (h *Honeycomb) NodeID(p r2.Point) (id int, ok bool) {
	id, err := h.index.Nearest(p)
	if err != nil {
		return 0, false
	}
	if !h.IsInCell(p, id) {
		return 0, false
	}
	return id, true
}

// AllQs returns every Q in creation order; a Q's ID is its index.
func (h *Honeycomb) AllQs() []*Q { return append([]*Q(nil), h.qs...) }

// AllEdges returns every Edge in creation order; an Edge's ID is its index.
func (h *Honeycomb) AllEdges() []*Edge { return append([]*Edge(nil), h.edges...) }

// Caches returns lookup maps keyed by Voronoi vertex and ridge id over the
// honeycomb's Qs and Edges.
func (h *Honeycomb) Caches() *Caches { return CachesFrom(h.qs, h.edges) }
