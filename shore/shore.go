package shore

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/planar"
	"github.com/katalvlaran/hydroterra/spatial"
)

var (
	// ErrTooFewPoints indicates a contour with fewer than three vertices.
	ErrTooFewPoints = errors.New("shore: contour needs at least 3 points")

	// ErrNoPolygon indicates an input document without polygon geometry.
	ErrNoPolygon = errors.New("shore: no polygon in input")
)

// Shore is an immutable closed coastline.
type Shore struct {
	contour   []r2.Point
	index     *spatial.Index
	bounds    r2.Rect
	maxSegLen float64
}

// New builds a Shore from the polygon pts. Clockwise input is reversed.
func New(pts []r2.Point) (*Shore, error) {
	contour := append([]r2.Point(nil), pts...)
	if len(contour) > 1 && contour[0] == contour[len(contour)-1] {
		contour = contour[:len(contour)-1]
	}
	if len(contour) < 3 {
		return nil, ErrTooFewPoints
	}
	if planar.SignedArea(contour) < 0 {
		for i, j := 0, len(contour)-1; i < j; i, j = i+1, j-1 {
			contour[i], contour[j] = contour[j], contour[i]
		}
	}

	s := &Shore{
		contour: contour,
		index:   spatial.New(contour),
		bounds:  r2.RectFromPoints(contour...),
	}
	for i := range contour {
		a, b := s.Segment(i)
		s.maxSegLen = math.Max(s.maxSegLen, b.Sub(a).Norm())
	}
	return s, nil
}

// Len is the number of shoreline vertices.
func (s *Shore) Len() int { return len(s.contour) }

// At returns vertex i, wrapping around in both directions.
func (s *Shore) At(i int) r2.Point {
	n := len(s.contour)
	return s.contour[((i%n)+n)%n]
}

// Segment returns the endpoints of the segment from vertex i to i+1.
func (s *Shore) Segment(i int) (r2.Point, r2.Point) {
	return s.At(i), s.At(i + 1)
}

// Contour returns a copy of the counterclockwise vertex list.
func (s *Shore) Contour() []r2.Point {
	return append([]r2.Point(nil), s.contour...)
}

// Bounds is the axis-aligned bounding box of the contour.
func (s *Shore) Bounds() r2.Rect { return s.bounds }

// RealShape is the width and height of the contour's bounding box.
func (s *Shore) RealShape() r2.Point { return s.bounds.Size() }

// IsOnLand reports whether p lies inside the coastline or on it.
func (s *Shore) IsOnLand(p r2.Point) bool {
	return s.DistanceToShore(p) >= 0
}

// DistanceToShore returns the distance from p to the coastline, positive
// inland and negative offshore.
func (s *Shore) DistanceToShore(p r2.Point) float64 {
	d := s.unsignedDistance(p)
	if planar.ContainsPoint(s.contour, p) {
		return d
	}
	return -d
}

// unsignedDistance only inspects segments touching vertices that can hold
// the closest point: any such segment has an endpoint within
// hypot(nearestVertexDist, maxSegLen/2) of p.
func (s *Shore) unsignedDistance(p r2.Point) float64 {
	nearest, _ := s.index.Nearest(p)
	d0 := s.contour[nearest].Sub(p).Norm()
	reach := math.Hypot(d0, s.maxSegLen/2)

	best := d0
	for _, i := range s.index.Radius(p, reach) {
		a, b := s.Segment(i)
		best = math.Min(best, planar.PointSegmentDistance(p, a, b))
		a, b = s.Segment(i - 1)
		best = math.Min(best, planar.PointSegmentDistance(p, a, b))
	}
	return best
}

// ClosestN returns the indices of the n shoreline vertices closest to p,
// nearest first. n is clamped to Len().
func (s *Shore) ClosestN(p r2.Point, n int) []int {
	ids, _ := s.index.KNearest(p, n)
	return ids
}

// IndexOf returns the index of the shoreline vertex closest to p.
func (s *Shore) IndexOf(p r2.Point) int {
	id, _ := s.index.Nearest(p)
	return id
}
