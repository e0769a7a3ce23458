package spatial_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydroterra/spatial"
)

func grid(n int) []r2.Point {
	pts := make([]r2.Point, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			pts = append(pts, r2.Point{X: float64(x), Y: float64(y)})
		}
	}
	return pts
}

func TestIndex_InsertAssignsDenseIDs(t *testing.T) {
	var idx spatial.Index
	for i, p := range grid(3) {
		assert.Equal(t, i, idx.Insert(p))
	}
	assert.Equal(t, 9, idx.Len())
	assert.Equal(t, r2.Point{X: 2, Y: 1}, idx.Point(5))
}

func TestIndex_Radius(t *testing.T) {
	idx := spatial.New(grid(5))

	// centre (2,2) has id 12; radius 1 covers the 4-neighbourhood
	got := idx.Radius(r2.Point{X: 2, Y: 2}, 1)
	assert.Equal(t, []int{7, 11, 12, 13, 17}, got)

	assert.Empty(t, idx.Radius(r2.Point{X: 100, Y: 100}, 1))
	assert.Nil(t, idx.Radius(r2.Point{}, -1))
}

func TestIndex_RadiusMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var idx spatial.Index
	pts := make([]r2.Point, 300)
	for i := range pts {
		pts[i] = r2.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		idx.Insert(pts[i])
	}

	q := r2.Point{X: 40, Y: 60}
	var want []int
	for i, p := range pts {
		if p.Sub(q).Norm() <= 15 {
			want = append(want, i)
		}
	}
	sort.Ints(want)
	assert.Equal(t, want, idx.Radius(q, 15))
}

func TestIndex_KNearest(t *testing.T) {
	idx := spatial.New(grid(5))

	ids, err := idx.KNearest(r2.Point{X: 0.1, Y: 0.1}, 3)
	require.NoError(t, err)
	// (0,0) first, then (1,0) and (0,1) tie and are ordered by id
	assert.Equal(t, []int{0, 1, 5}, ids)

	all, err := idx.KNearest(r2.Point{}, 100)
	require.NoError(t, err)
	assert.Len(t, all, 25)

	near, err := idx.Nearest(r2.Point{X: 3.9, Y: 4.2})
	require.NoError(t, err)
	assert.Equal(t, 24, near)
}

func TestIndex_KNearestAcrossRebuilds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	var idx spatial.Index
	var pts []r2.Point
	q := r2.Point{X: 50, Y: 50}

	// 64 points fill the tree exactly once; the rest stay in the tail until
	// the next rebuild.
	for _, n := range []int{1, 63, 64, 65, 130, 200} {
		for len(pts) < n {
			p := r2.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
			pts = append(pts, p)
			idx.Insert(p)
		}

		want := make([]int, len(pts))
		for i := range want {
			want[i] = i
		}
		sort.SliceStable(want, func(i, j int) bool {
			return pts[want[i]].Sub(q).Norm() < pts[want[j]].Sub(q).Norm()
		})
		k := 10
		if k > n {
			k = n
		}

		got, err := idx.KNearest(q, k)
		require.NoError(t, err)
		assert.Equal(t, want[:k], got, "after %d inserts", n)

		near, err := idx.Nearest(q)
		require.NoError(t, err)
		assert.Equal(t, want[0], near)
	}
}

func TestIndex_EmptyNearest(t *testing.T) {
	var idx spatial.Index
	_, err := idx.Nearest(r2.Point{})
	assert.ErrorIs(t, err, spatial.ErrEmpty)
	assert.Nil(t, idx.Radius(r2.Point{}, 10))
}
