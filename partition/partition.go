package partition

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/pzsz/voronoi"
)

var (
	// ErrTooFewPoints is returned for fewer than two input points.
	ErrTooFewPoints = errors.New("partition: need at least two points")
	// ErrDuplicatePoint is returned when two input points coincide.
	ErrDuplicatePoint = errors.New("partition: duplicate point")
	// ErrOutsideBounds is returned when a point is outside the bounding box.
	ErrOutsideBounds = errors.New("partition: point outside bounding box")
	// ErrDegenerate is returned when the sweep cannot resolve the input,
	// typically several lowest sites sharing one Y coordinate.
	ErrDegenerate = errors.New("partition: degenerate site configuration")
)

// Diagram is a Voronoi diagram in index form.
type Diagram struct {
	Points   []r2.Point
	Vertices []r2.Point

	// RidgePoints[r] are the two points whose cells ridge r separates.
	RidgePoints [][2]int
	// RidgeVertices[r] are the endpoints of ridge r.
	RidgeVertices [][2]int
	// PointRidges[p] lists the ridges bounding point p's cell.
	PointRidges [][]int
}

// Compute builds the diagram of points clipped to bounds.
func Compute(points []r2.Point, bounds r2.Rect) (*Diagram, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	siteIndex := make(map[voronoi.Vertex]int, len(points))
	sites := make([]voronoi.Vertex, len(points))
	for i, p := range points {
		if !bounds.ContainsPoint(p) {
			return nil, fmt.Errorf("partition: point %d %v: %w", i, p, ErrOutsideBounds)
		}
		v := voronoi.Vertex{X: p.X, Y: p.Y}
		if j, dup := siteIndex[v]; dup {
			return nil, fmt.Errorf("partition: points %d and %d: %w", j, i, ErrDuplicatePoint)
		}
		siteIndex[v] = i
		sites[i] = v
	}

	bbox := voronoi.BBox{Xl: bounds.X.Lo, Xr: bounds.X.Hi, Yt: bounds.Y.Lo, Yb: bounds.Y.Hi}
	vd, err := sweep(sites, bbox)
	if err != nil {
		return nil, err
	}

	d := &Diagram{
		Points:      append([]r2.Point(nil), points...),
		PointRidges: make([][]int, len(points)),
	}
	vertexIndex := make(map[voronoi.Vertex]int)
	vertexID := func(v voronoi.Vertex) int {
		if id, ok := vertexIndex[v]; ok {
			return id
		}
		id := len(d.Vertices)
		vertexIndex[v] = id
		d.Vertices = append(d.Vertices, r2.Point{X: v.X, Y: v.Y})
		return id
	}

	for _, e := range vd.Edges {
		if e.LeftCell == nil || e.RightCell == nil {
			continue
		}
		left, right := siteIndex[e.LeftCell.Site], siteIndex[e.RightCell.Site]
		r := len(d.RidgePoints)
		d.RidgePoints = append(d.RidgePoints, [2]int{left, right})
		d.RidgeVertices = append(d.RidgeVertices, [2]int{vertexID(e.Va.Vertex), vertexID(e.Vb.Vertex)})
		d.PointRidges[left] = append(d.PointRidges[left], r)
		d.PointRidges[right] = append(d.PointRidges[right], r)
	}
	return d, nil
}

// sweep runs Fortune's algorithm. The library dereferences nil on some
// degenerate inputs; that panic becomes ErrDegenerate.
func sweep(sites []voronoi.Vertex, bbox voronoi.BBox) (vd *voronoi.Diagram, err error) {
	defer func() {
		if r := recover(); r != nil {
			vd, err = nil, fmt.Errorf("partition: sweep over %d sites: %v: %w", len(sites), r, ErrDegenerate)
		}
	}()
	return voronoi.ComputeDiagram(sites, bbox, false), nil
}

// Len is the number of ridges.
func (d *Diagram) Len() int { return len(d.RidgePoints) }

// OtherPoint returns the point across ridge r from p.
func (d *Diagram) OtherPoint(r, p int) int {
	rp := d.RidgePoints[r]
	if rp[0] == p {
		return rp[1]
	}
	return rp[0]
}

// RidgeSegment returns the endpoints of ridge r.
func (d *Diagram) RidgeSegment(r int) (r2.Point, r2.Point) {
	rv := d.RidgeVertices[r]
	return d.Vertices[rv[0]], d.Vertices[rv[1]]
}
