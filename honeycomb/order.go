package honeycomb

import (
	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/partition"
)

// ridge is a Voronoi ridge with its vertices in one cell's walking order.
type ridge struct {
	ID     int
	V0, V1 int
}

// orderVertices orients ridge id so that V0 -> V1 turns counterclockwise
// around at.
func orderVertices(d *partition.Diagram, id int, at r2.Point) ridge {
	rv := d.RidgeVertices[id]
	r := ridge{ID: id, V0: rv[0], V1: rv[1]}
	a := d.Vertices[r.V0].Sub(at)
	b := d.Vertices[r.V1].Sub(at)
	if a.Cross(b) < 0 {
		r.V0, r.V1 = r.V1, r.V0
	}
	return r
}

// orderRidges chains ids into a closed counterclockwise cycle around at and
// rotates it to start at the first ridge whose V0 is on land.
func orderRidges(d *partition.Diagram, ids []int, at r2.Point, s Shore) ([]ridge, error) {
	if len(ids) == 0 {
		return nil, ErrOpenCell
	}

	ordered := make([]ridge, 0, len(ids))
	ordered = append(ordered, orderVertices(d, ids[0], at))
	left := append([]int(nil), ids[1:]...)
	for len(left) > 0 {
		tail := ordered[len(ordered)-1].V1
		next := -1
		for i, id := range left {
			rv := d.RidgeVertices[id]
			if rv[0] == tail {
				ordered = append(ordered, ridge{ID: id, V0: rv[0], V1: rv[1]})
				next = i
				break
			}
			if rv[1] == tail {
				ordered = append(ordered, ridge{ID: id, V0: rv[1], V1: rv[0]})
				next = i
				break
			}
		}
		if next < 0 {
			return nil, ErrOpenCell
		}
		left = append(left[:next], left[next+1:]...)
	}
	if ordered[len(ordered)-1].V1 != ordered[0].V0 {
		return nil, ErrOpenCell
	}

	for i, r := range ordered {
		if s.IsOnLand(d.Vertices[r.V0]) {
			rotated := make([]ridge, 0, len(ordered))
			rotated = append(rotated, ordered[i:]...)
			return append(rotated, ordered[:i]...), nil
		}
	}
	return nil, ErrNoLand
}

// orient returns the cell's view of a cached edge: Start must sit on the
// ridge's V0 side. A ridge cut at the shore keeps only one Voronoi vertex,
// so the remaining cases are matched in order.
func orient(d *partition.Diagram, e *Edge, r ridge) CellEdge {
	v0, v1 := d.Vertices[r.V0], d.Vertices[r.V1]
	switch {
	case e.Q0.Position == v0:
		return CellEdge{Edge: e}
	case e.Q0.Position == v1:
		return CellEdge{Edge: e, Reversed: true}
	case e.Q1.Position == v0:
		return CellEdge{Edge: e, Reversed: true}
	default:
		return CellEdge{Edge: e}
	}
}
