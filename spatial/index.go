package spatial

import (
	"errors"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/peterstace/simplefeatures/rtree"
)

// ErrEmpty is returned by nearest-neighbour queries on an empty index.
var ErrEmpty = errors.New("spatial: index is empty")

// tailSize is how many inserted points may wait outside the tree before
// it is bulk loaded again.
const tailSize = 64

// Index is a point index keyed by insertion order.
//
// The R-tree is static: points[:indexed] live in the tree and the rest form
// a short tail that queries scan linearly. Insert rebuilds the tree once
// the tail reaches tailSize, so n inserts cost O(n²/tailSize · log n) in
// total and every query pays at most tailSize extra distance checks.
type Index struct {
	tree    rtree.RTree
	points  []r2.Point
	indexed int
}

// New builds an index over pts in one bulk load; the id of pts[i] is i.
func New(pts []r2.Point) *Index {
	idx := &Index{points: append([]r2.Point(nil), pts...)}
	idx.rebuild()
	return idx
}

// Insert adds p and returns its id.
func (x *Index) Insert(p r2.Point) int {
	id := len(x.points)
	x.points = append(x.points, p)
	if len(x.points)-x.indexed >= tailSize {
		x.rebuild()
	}
	return id
}

func (x *Index) rebuild() {
	items := make([]rtree.BulkItem, len(x.points))
	for i, p := range x.points {
		items[i] = rtree.BulkItem{Box: pointBox(p), RecordID: i}
	}
	x.tree = *rtree.BulkLoad(items)
	x.indexed = len(x.points)
}

// tail returns the ids of points not yet in the tree.
func (x *Index) tail() []int {
	ids := make([]int, 0, len(x.points)-x.indexed)
	for id := x.indexed; id < len(x.points); id++ {
		ids = append(ids, id)
	}
	return ids
}

// Len is the number of indexed points.
func (x *Index) Len() int { return len(x.points) }

// Point returns the position stored under id.
func (x *Index) Point(id int) r2.Point { return x.points[id] }

// Radius returns the ids of all points within r of p (inclusive), sorted
// ascending.
func (x *Index) Radius(p r2.Point, r float64) []int {
	if r < 0 || len(x.points) == 0 {
		return nil
	}
	box := rtree.Box{MinX: p.X - r, MinY: p.Y - r, MaxX: p.X + r, MaxY: p.Y + r}
	rSq := r * r

	var ids []int
	_ = x.tree.RangeSearch(box, func(id int) error {
		if x.distSq(id, p) <= rSq {
			ids = append(ids, id)
		}
		return nil
	})
	for _, id := range x.tail() {
		if x.distSq(id, p) <= rSq {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Nearest returns the id of the closest point to p.
func (x *Index) Nearest(p r2.Point) (int, error) {
	ids, err := x.KNearest(p, 1)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// KNearest returns up to k ids ordered by increasing distance from p. Ties
// are broken by id so results are deterministic.
func (x *Index) KNearest(p r2.Point, k int) ([]int, error) {
	if len(x.points) == 0 {
		return nil, ErrEmpty
	}
	if k <= 0 {
		return nil, nil
	}
	if k > len(x.points) {
		k = len(x.points)
	}

	ids := make([]int, 0, k+len(x.points)-x.indexed)
	var lastDist float64
	found := 0
	_ = x.tree.PrioritySearch(pointBox(p), func(id int) error {
		d := x.distSq(id, p)
		// Keep collecting while the boundary distance ties so the id tie-break
		// below sees every equidistant candidate.
		if found >= k && d > lastDist {
			return rtree.Stop
		}
		ids = append(ids, id)
		found++
		lastDist = d
		return nil
	})
	ids = append(ids, x.tail()...)

	sort.SliceStable(ids, func(i, j int) bool {
		di, dj := x.distSq(ids[i], p), x.distSq(ids[j], p)
		if di != dj {
			return di < dj
		}
		return ids[i] < ids[j]
	})
	if len(ids) > k {
		ids = ids[:k]
	}
	return ids, nil
}

func (x *Index) distSq(id int, p r2.Point) float64 {
	d := x.points[id].Sub(p)
	return d.Dot(d)
}

func pointBox(p r2.Point) rtree.Box {
	return rtree.Box{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}
