package honeycomb

import (
	"errors"
	"io"
	"log/slog"

	"github.com/golang/geo/r2"
)

var (
	// ErrOpenCell indicates a cell boundary that cannot be closed.
	ErrOpenCell = errors.New("honeycomb: cell ridge chain is open")
	// ErrNoLand indicates a cell with no ridge starting on land.
	ErrNoLand = errors.New("honeycomb: cell has no vertex on land")
	// ErrNoShoreCrossing indicates a ridge leaving land without crossing
	// any shore segment.
	ErrNoShoreCrossing = errors.New("honeycomb: ridge does not cross the shore")
	// ErrNoDownstreamEdge indicates a non-mouth node whose cell shares no
	// ridge with its parent's cell.
	ErrNoDownstreamEdge = errors.New("honeycomb: no downstream edge")
)

// Shore is the coastline as seen by the builder.
type Shore interface {
	IsOnLand(p r2.Point) bool
	At(i int) r2.Point
	Len() int
	ClosestN(p r2.Point, n int) []int
	Bounds() r2.Rect
}

// Network is the read-only view of the river forest the builder needs.
type Network interface {
	Len() int
	Position(id int) r2.Point
	Parent(id int) (int, bool)
}

// Q is a cell corner.
type Q struct {
	ID int
	// Vertex is the Voronoi vertex a shared Q sits on, or -1 for Qs created
	// on the shore.
	Vertex    int
	Position  r2.Point
	Elevation float64
	// Nodes lists the cells whose boundary passes through this Q.
	Nodes []int
}

// addBorderedNode records that cell id passes through q.
func (q *Q) addBorderedNode(id int) {
	for _, n := range q.Nodes {
		if n == id {
			return
		}
	}
	q.Nodes = append(q.Nodes, id)
}

// ShoreSegment names the shore segment between contour indices From and To.
type ShoreSegment struct {
	From, To int
}

// NoSegment marks an edge unrelated to the shore.
var NoSegment = ShoreSegment{From: -1, To: -1}

// Valid reports whether s names a real segment.
func (s ShoreSegment) Valid() bool { return s.From >= 0 && s.To >= 0 }

// Edge is a boundary piece between two Qs.
type Edge struct {
	ID int
	// Ridge is the Voronoi ridge the edge lies on, or -1 for shore edges.
	Ridge    int
	Q0, Q1   *Q
	HasRiver bool
	IsShore  bool
	// Segment is the shore segment a shore edge follows, or the one a
	// ridge was cut at. NoSegment otherwise.
	Segment ShoreSegment
}

// CellEdge is an Edge as walked by one cell.
type CellEdge struct {
	Edge     *Edge
	Reversed bool
}

// Start is the corner the cell reaches first.
func (c CellEdge) Start() *Q {
	if c.Reversed {
		return c.Edge.Q1
	}
	return c.Edge.Q0
}

// End is the corner the cell reaches last.
func (c CellEdge) End() *Q {
	if c.Reversed {
		return c.Edge.Q0
	}
	return c.Edge.Q1
}

// Caches holds the Qs and Edges created so far. Ridge edges are keyed by
// Voronoi ridge id and inland Qs by Voronoi vertex id so that neighbouring
// cells reuse them; every Q and Edge, shared or not, is also kept in
// creation order.
type Caches struct {
	Edges map[int]*Edge
	Qs    map[int]*Q

	allQs    []*Q
	allEdges []*Edge
}

// CachesFrom rebuilds the lookup maps of a loaded model from the Vertex
// and Ridge keys of qs and edges.
func CachesFrom(qs []*Q, edges []*Edge) *Caches {
	c := NewCaches()
	c.allQs = qs
	c.allEdges = edges
	for _, q := range qs {
		if q.Vertex >= 0 {
			c.Qs[q.Vertex] = q
		}
	}
	for _, e := range edges {
		if e.Ridge >= 0 {
			c.Edges[e.Ridge] = e
		}
	}
	return c
}

// NewCaches returns empty caches.
func NewCaches() *Caches {
	return &Caches{
		Edges: make(map[int]*Edge),
		Qs:    make(map[int]*Q),
	}
}

func (c *Caches) newQ(p r2.Point) *Q {
	q := &Q{ID: len(c.allQs), Vertex: -1, Position: p}
	c.allQs = append(c.allQs, q)
	return q
}

func (c *Caches) newEdge(q0, q1 *Q, hasRiver, isShore bool, seg ShoreSegment) *Edge {
	e := &Edge{ID: len(c.allEdges), Ridge: -1, Q0: q0, Q1: q1, HasRiver: hasRiver, IsShore: isShore, Segment: seg}
	c.allEdges = append(c.allEdges, e)
	return e
}

// Option configures Build.
type Option func(*Options)

// Options holds Build's optional collaborators.
type Options struct {
	Logger *slog.Logger
	// OnCell runs after each cell is stitched with the number of cells
	// done and the total.
	OnCell func(done, total int)
}

// DefaultOptions discards logs and reports no progress.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger routes diagnostics to l. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnCell installs a progress callback.
func WithOnCell(fn func(done, total int)) Option {
	return func(o *Options) { o.OnCell = fn }
}
