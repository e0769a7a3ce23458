package honeycomb

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/partition"
	"github.com/katalvlaran/hydroterra/spatial"
)

// boxScale sizes the Voronoi clipping box relative to the shore so that
// clipping only ever touches ridges between corner cells.
const boxScale = 1000

// Honeycomb is the cell partition of the land. Cell ids equal node ids.
type Honeycomb struct {
	shore Shore
	net   Network

	qs         []*Q
	edges      []*Edge
	cells      [][]CellEdge
	downstream []*Edge

	index *spatial.Index
}

// Build partitions the land around net into one closed cell per node.
//
// Node positions and four far corner sites go into one Voronoi diagram.
// Each node's ridges are then ordered and stitched in id order against a
// shared Caches, so a ridge seen by its second cell reuses the first
// cell's Edge. A non-mouth node must find its parent across one of its
// ridges; that ridge's Edge becomes the cell's outflow.
//
// Complexity:
//
//   - Time:   O(n log n) for the sweep, O(d²) ordering per cell of degree d,
//     and O(k log k) per shore crossing for the k shore points searched.
//   - Memory: O(n + r) for r ridges.
func Build(ctx context.Context, s Shore, net Network, opts ...Option) (*Honeycomb, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := net.Len()
	points := make([]r2.Point, 0, n+4)
	for id := 0; id < n; id++ {
		points = append(points, net.Position(id))
	}
	points = append(points, corners(s.Bounds())...)

	d, err := partition.Compute(points, clipBox(s.Bounds()))
	if err != nil {
		return nil, fmt.Errorf("honeycomb: voronoi: %w", err)
	}

	st := &stitcher{d: d, shore: s, net: net, c: NewCaches()}
	cells := make([][]CellEdge, n)
	downstream := make([]*Edge, n)
	for id := 0; id < n; id++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ridges, err := orderRidges(d, d.PointRidges[id], points[id], s)
		if err != nil {
			return nil, fmt.Errorf("honeycomb: cell %d: %w", id, err)
		}
		cell, err := st.stitchCell(ridges)
		if err != nil {
			return nil, fmt.Errorf("honeycomb: cell %d: %w", id, err)
		}
		cells[id] = cell

		if parent, ok := net.Parent(id); ok {
			e := downstreamEdge(d, st.c, ridges, id, parent)
			if e == nil {
				return nil, fmt.Errorf("honeycomb: cell %d (parent %d): %w", id, parent, ErrNoDownstreamEdge)
			}
			downstream[id] = e
		}

		shoreEdges := 0
		for _, ce := range cell {
			ce.Start().addBorderedNode(id)
			if ce.Edge.IsShore {
				shoreEdges++
			}
		}
		o.Logger.Debug("cell stitched",
			slog.Int("node", id),
			slog.Int("ridges", len(ridges)),
			slog.Int("edges", len(cell)),
			slog.Int("shoreEdges", shoreEdges))
		if o.OnCell != nil {
			o.OnCell(id+1, n)
		}
	}

	return FromParts(s, net, st.c.allQs, st.c.allEdges, cells, downstream), nil
}

// FromParts assembles a Honeycomb from already built pieces, as loaded
// from storage. cells and downstream are indexed by node id; downstream
// entries of mouths are nil.
func FromParts(s Shore, net Network, qs []*Q, edges []*Edge, cells [][]CellEdge, downstream []*Edge) *Honeycomb {
	h := &Honeycomb{
		shore:      s,
		net:        net,
		qs:         qs,
		edges:      edges,
		cells:      cells,
		downstream: downstream,
	}
	pts := make([]r2.Point, net.Len())
	for id := range pts {
		pts[id] = net.Position(id)
	}
	h.index = spatial.New(pts)
	return h
}

// downstreamEdge returns the edge on the ridge shared with parent.
func downstreamEdge(d *partition.Diagram, c *Caches, ridges []ridge, id, parent int) *Edge {
	for _, r := range ridges {
		if d.OtherPoint(r.ID, id) == parent {
			return c.Edges[r.ID]
		}
	}
	return nil
}

// cornerScale skews the corner square so that no two corners share an X
// or a Y; the Voronoi sweep fails when its lowest sites tie on Y.
var cornerScale = [4]r2.Point{
	{X: -1.00, Y: -1.03},
	{X: -1.02, Y: 1.01},
	{X: 1.01, Y: 1.02},
	{X: 1.03, Y: -1.00},
}

// corners are four far points around the shore's bounding box that keep
// every land cell bounded.
func corners(b r2.Rect) []r2.Point {
	c, size := b.Center(), b.Size()
	out := make([]r2.Point, len(cornerScale))
	for i, k := range cornerScale {
		out[i] = r2.Point{X: c.X + k.X*size.X, Y: c.Y + k.Y*size.Y}
	}
	return out
}

func clipBox(b r2.Rect) r2.Rect {
	size := b.Size()
	half := boxScale * math.Max(size.X, size.Y)
	return r2.RectFromCenterSize(b.Center(), r2.Point{X: 2 * half, Y: 2 * half})
}
