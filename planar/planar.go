package planar

import (
	"math"

	"github.com/golang/geo/r2"
)

// SegmentIntersection returns the point where segment a0-a1 crosses
// segment b0-b1. Parallel (including collinear) segments never intersect.
// Endpoints are inclusive.
func SegmentIntersection(a0, a1, b0, b1 r2.Point) (r2.Point, bool) {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	denom := db.Y*da.X - db.X*da.Y
	if denom == 0 {
		return r2.Point{}, false
	}

	ua := (db.X*(a0.Y-b0.Y) - db.Y*(a0.X-b0.X)) / denom
	if ua < 0 || ua > 1 {
		return r2.Point{}, false
	}
	ub := (da.X*(a0.Y-b0.Y) - da.Y*(a0.X-b0.X)) / denom
	if ub < 0 || ub > 1 {
		return r2.Point{}, false
	}

	return a0.Add(da.Mul(ua)), true
}

// SegmentsIntersect reports whether the two closed segments cross.
func SegmentsIntersect(a0, a1, b0, b1 r2.Point) bool {
	_, ok := SegmentIntersection(a0, a1, b0, b1)
	return ok
}

// PointSegmentDistance returns the distance from p to the closest point of
// segment a-b. A zero-length segment degrades to point distance.
func PointSegmentDistance(p, a, b r2.Point) float64 {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return p.Sub(a).Norm()
	}

	t := p.Sub(a).Dot(d) / lenSq
	switch {
	case t < 0:
		return p.Sub(a).Norm()
	case t > 1:
		return p.Sub(b).Norm()
	default:
		return p.Sub(a.Add(d.Mul(t))).Norm()
	}
}

// SegmentDistance returns the minimum distance between segments a0-a1 and
// b0-b1, which is zero when they cross.
func SegmentDistance(a0, a1, b0, b1 r2.Point) float64 {
	if SegmentsIntersect(a0, a1, b0, b1) {
		return 0
	}
	return math.Min(
		math.Min(PointSegmentDistance(a0, b0, b1), PointSegmentDistance(a1, b0, b1)),
		math.Min(PointSegmentDistance(b0, a0, a1), PointSegmentDistance(b1, a0, a1)),
	)
}

// SignedArea is the shoelace area of the closed polygon pts, positive for
// counterclockwise winding.
func SignedArea(pts []r2.Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	prev := pts[len(pts)-1]
	for _, p := range pts {
		sum += prev.Cross(p)
		prev = p
	}
	return sum / 2
}

// Area is the absolute polygon area.
func Area(pts []r2.Point) float64 {
	return math.Abs(SignedArea(pts))
}

// ContainsPoint applies the even-odd rule. Points exactly on the boundary
// may be reported either way.
func ContainsPoint(pts []r2.Point, p r2.Point) bool {
	if len(pts) < 3 {
		return false
	}
	inside := false
	j := len(pts) - 1
	for i := range pts {
		pi, pj := pts[i], pts[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			x := pi.X + (p.Y-pi.Y)*(pj.X-pi.X)/(pj.Y-pi.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Angle returns the direction of v in radians.
func Angle(v r2.Point) float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle returns the point at distance length from origin in direction
// theta.
func FromAngle(origin r2.Point, theta, length float64) r2.Point {
	return origin.Add(r2.Point{X: math.Cos(theta), Y: math.Sin(theta)}.Mul(length))
}
