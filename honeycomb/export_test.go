package honeycomb

import (
	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/partition"
)

// Ridge exposes the oriented ridge type to external tests.
type Ridge = ridge

// NewRidge builds an oriented ridge.
func NewRidge(id, v0, v1 int) Ridge { return ridge{ID: id, V0: v0, V1: v1} }

// OrderVertices exposes orderVertices.
func OrderVertices(d *partition.Diagram, id int, at r2.Point) Ridge {
	return orderVertices(d, id, at)
}

// OrderRidges exposes orderRidges.
func OrderRidges(d *partition.Diagram, ids []int, at r2.Point, s Shore) ([]Ridge, error) {
	return orderRidges(d, ids, at, s)
}

// Orient exposes orient.
func Orient(d *partition.Diagram, e *Edge, r Ridge) CellEdge { return orient(d, e, r) }

// StitchCell runs the stitcher for one cell with the given caches.
func StitchCell(d *partition.Diagram, s Shore, net Network, c *Caches, ridges []Ridge) ([]CellEdge, error) {
	st := &stitcher{d: d, shore: s, net: net, c: c}
	return st.stitchCell(ridges)
}

// HasRiver exposes the ridge river test.
func HasRiver(d *partition.Diagram, net Network, id int) bool {
	st := &stitcher{d: d, net: net}
	return st.hasRiver(id)
}

// FindShoreCrossing exposes findShoreCrossing.
func FindShoreCrossing(s Shore, p0, p1 r2.Point) (ShoreSegment, r2.Point, error) {
	return findShoreCrossing(s, p0, p1)
}

// Corners exposes the far sites added around the shore.
func Corners(b r2.Rect) []r2.Point { return corners(b) }
