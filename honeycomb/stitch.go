package honeycomb

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/partition"
	"github.com/katalvlaran/hydroterra/planar"
)

// stitcher turns ordered ridges into cell edges, sharing Qs and ridge
// edges through its caches.
type stitcher struct {
	d     *partition.Diagram
	shore Shore
	net   Network
	c     *Caches
}

func (s *stitcher) vertex(id int) r2.Point { return s.d.Vertices[id] }

// stitchCell walks ridges (already ordered by orderRidges) with a cursor.
// Land ridges advance the cursor by one; a ridge running out to sea is
// cut at the shore, after which the shoreline is followed until one of
// the remaining ridges crosses it, and the cursor jumps to that ridge.
func (s *stitcher) stitchCell(ridges []ridge) ([]CellEdge, error) {
	cell := make([]CellEdge, 0, len(ridges))
	for i := 0; i < len(ridges); {
		r := ridges[i]
		if s.shore.IsOnLand(s.vertex(r.V1)) {
			cell = append(cell, s.landEdge(r, cell))
			i++
			continue
		}

		cut, err := s.cutEdge(r, cell)
		if err != nil {
			return nil, fmt.Errorf("honeycomb: ridge %d: %w", r.ID, err)
		}
		cell = append(cell, cut)
		i++

		skip, err := s.followShore(cut.Edge.Segment, ridges[i:], &cell)
		if err != nil {
			return nil, fmt.Errorf("honeycomb: shore after ridge %d: %w", r.ID, err)
		}
		i += skip
	}

	if len(cell) == 0 || cell[len(cell)-1].End() != cell[0].Start() {
		return nil, ErrOpenCell
	}
	return cell, nil
}

// startQ is the first corner of a new edge for r: the previous edge's end
// if there is one, otherwise the shared Q on r.V0.
func (s *stitcher) startQ(r ridge, cell []CellEdge) *Q {
	if len(cell) > 0 {
		return cell[len(cell)-1].End()
	}
	return s.sharedQ(r.V0)
}

func (s *stitcher) sharedQ(vertex int) *Q {
	if q, ok := s.c.Qs[vertex]; ok {
		return q
	}
	q := s.c.newQ(s.vertex(vertex))
	q.Vertex = vertex
	s.c.Qs[vertex] = q
	return q
}

func (s *stitcher) landEdge(r ridge, cell []CellEdge) CellEdge {
	if e, ok := s.c.Edges[r.ID]; ok {
		return orient(s.d, e, r)
	}
	q0 := s.startQ(r, cell)
	q1 := s.sharedQ(r.V1)

	seg := NoSegment
	if len(cell) > 1 && cell[len(cell)-1].Edge.IsShore {
		seg = cell[len(cell)-1].Edge.Segment
	}
	e := s.c.newEdge(q0, q1, s.hasRiver(r.ID), false, seg)
	e.Ridge = r.ID
	s.c.Edges[r.ID] = e
	return CellEdge{Edge: e}
}

// cutEdge ends ridge r where it leaves the land. The crossing Q belongs to
// this ridge only.
func (s *stitcher) cutEdge(r ridge, cell []CellEdge) (CellEdge, error) {
	if e, ok := s.c.Edges[r.ID]; ok {
		return orient(s.d, e, r), nil
	}
	q0 := s.startQ(r, cell)
	seg, p, err := findShoreCrossing(s.shore, s.vertex(r.V0), s.vertex(r.V1))
	if err != nil {
		return CellEdge{}, err
	}
	e := s.c.newEdge(q0, s.c.newQ(p), s.hasRiver(r.ID), false, seg)
	e.Ridge = r.ID
	s.c.Edges[r.ID] = e
	return CellEdge{Edge: e}, nil
}

// followShore appends one shore edge per segment starting at seg until a
// ridge in remaining crosses the current segment. It returns the index of
// that ridge within remaining.
func (s *stitcher) followShore(seg ShoreSegment, remaining []ridge, cell *[]CellEdge) (int, error) {
	if len(remaining) == 0 {
		return 0, ErrOpenCell
	}
	n := s.shore.Len()
	for step := 0; step <= n; step++ {
		a, b := s.shore.At(seg.From), s.shore.At(seg.To)
		start := (*cell)[len(*cell)-1].End()

		for j, r := range remaining {
			p, ok := planar.SegmentIntersection(s.vertex(r.V0), s.vertex(r.V1), a, b)
			if !ok {
				continue
			}
			var end *Q
			if e, cached := s.c.Edges[r.ID]; cached {
				end = orient(s.d, e, r).Start()
			} else {
				end = s.c.newQ(p)
			}
			*cell = append(*cell, CellEdge{Edge: s.c.newEdge(start, end, false, true, seg)})
			return j, nil
		}

		end := s.c.newQ(b)
		*cell = append(*cell, CellEdge{Edge: s.c.newEdge(start, end, false, true, seg)})
		seg = ShoreSegment{From: seg.To, To: (seg.To + 1) % n}
	}
	return 0, ErrOpenCell
}

// hasRiver reports whether the two nodes a ridge separates are linked
// parent and child. Corner points never carry rivers.
func (s *stitcher) hasRiver(id int) bool {
	rp := s.d.RidgePoints[id]
	a, b := rp[0], rp[1]
	if a >= s.net.Len() || b >= s.net.Len() {
		return false
	}
	if p, ok := s.net.Parent(a); ok && p == b {
		return true
	}
	if p, ok := s.net.Parent(b); ok && p == a {
		return true
	}
	return false
}

// findShoreCrossing looks for the shore segment crossed by p0 -> p1 among
// segments starting at the 4, 16, 64, ... shore points closest to p0,
// giving up once the whole shore has been searched.
//
// Complexity: O(n log n) in the worst case for a shore of n points.
func findShoreCrossing(s Shore, p0, p1 r2.Point) (ShoreSegment, r2.Point, error) {
	n := s.Len()
	for k := 4; ; k *= 4 {
		if k > n {
			k = n
		}
		for _, idx := range s.ClosestN(p0, k) {
			next := (idx + 1) % n
			if p, ok := planar.SegmentIntersection(p0, p1, s.At(idx), s.At(next)); ok {
				return ShoreSegment{From: idx, To: next}, p, nil
			}
		}
		if k >= n {
			return NoSegment, r2.Point{}, ErrNoShoreCrossing
		}
	}
}
