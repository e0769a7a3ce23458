package honeycomb_test

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydroterra/growth"
	"github.com/katalvlaran/hydroterra/honeycomb"
	"github.com/katalvlaran/hydroterra/hydrology"
	"github.com/katalvlaran/hydroterra/planar"
	"github.com/katalvlaran/hydroterra/raster"
	"github.com/katalvlaran/hydroterra/shore"
)

func islandShore(t testing.TB) *shore.Shore {
	t.Helper()
	s, err := shore.New([]r2.Point{
		{X: -4623.8, Y: 6201.5},
		{X: -9299.9, Y: 0},
		{X: -4629.4, Y: -8124.4},
		{X: 4751.4, Y: -8114.7},
		{X: 9417.8, Y: 0},
		{X: 4741, Y: 6209},
	})
	require.NoError(t, err)
	return s
}

type fixtureNode struct {
	x, y      float64
	elevation float64
	parent    int // -1 for mouths
}

// islandNodes are ten mouths and three generations of tributaries.
var islandNodes = []fixtureNode{
	{-7768.8, 2059.2, 0, -1},
	{-8049.6, -2246.4, 0, -1},
	{-5054.4, -7394.4, 0, -1},
	{1123.2, -8049.6, 0, -1},
	{4305.6, -8049.6, 0, -1},
	{6458.4, -5054.4, 0, -1},
	{8049.6, 1684.8, 0, -1},
	{6832.8, 3369.6, 0, -1},
	{280.8, 6177.6, 0, -1},
	{-4867.2, 5990.4, 0, -1},
	{-6246.780372888135, 307.5788923724788, 173.81, 0},
	{-5449.5362946522855, 2134.9371444985295, 173.81, 0},
	{-5738.2285044404125, -2452.02601857411, 173.81, 1},
	{-3779.8747892700185, -5455.249222671507, 173.81, 2},
	{1735.4047436340666, -5811.313690817918, 173.81, 3},
	{3913.3561082532797, -5762.491568073916, 173.81, 4},
	{4575.801759157646, -3697.733455274554, 173.81, 5},
	{6588.2148673450665, -117.71872224815615, 173.81, 6},
	{4551.139609616782, 2946.8162338070397, 173.81, 7},
	{1686.515368282502, 4331.337680237612, 173.81, 8},
	{-267.90201010200553, 3922.9057071722514, 173.81, 8},
	{-3628.3824225111284, 4028.245250826377, 173.81, 9},
	{-3981.7104458665694, 811.7400528187368, 347.62, 10},
	{-4397.990228017062, -1094.8102298855324, 347.62, 10},
	{-3139.1312650010427, 2351.151965827316, 347.62, 11},
	{-3652.2156918437145, -3468.52530321843, 347.62, 12},
	{-1636.5946626095852, -4565.8277541525395, 347.62, 13},
	{1544.4836554558808, -3498.6811242200897, 347.62, 14},
	{4066.8172916595668, -1433.742496404423, 347.62, 16},
	{4397.765121188957, 648.2121881900088, 347.62, 17},
	{2306.434717613504, 2358.5814186043426, 347.62, 18},
	{-1017.1741446275356, 1726.701818999854, 347.62, 20},
	{-2307.913817105099, -795.4702929502098, 521.43, 22},
	{-1496.566016258495, -2609.517313645959, 521.43, 25},
	{1363.0351974719795, -1185.2860634716526, 521.43, 27},
	{2670.0365109674985, 419.2884533342087, 521.43, 28},
	{707.4833463640621, 676.8933493181478, 521.43, 30},
}

func islandNetwork(t testing.TB) *hydrology.Network {
	t.Helper()
	s := islandShore(t)
	net := hydrology.New()
	for _, fn := range islandNodes {
		p := r2.Point{X: fn.x, Y: fn.y}
		var opt hydrology.NodeOption
		if fn.parent < 0 {
			opt = hydrology.WithContourIndex(s.IndexOf(p))
		} else {
			opt = hydrology.WithParent(fn.parent)
		}
		_, err := net.AddNode(p, fn.elevation, 1, opt)
		require.NoError(t, err)
	}
	return net
}

func buildIsland(t testing.TB, opts ...honeycomb.Option) (*honeycomb.Honeycomb, *shore.Shore, *hydrology.Network) {
	t.Helper()
	s := islandShore(t)
	net := islandNetwork(t)
	h, err := honeycomb.Build(context.Background(), s, net, opts...)
	require.NoError(t, err)
	return h, s, net
}

func shoreSegments(cell []honeycomb.CellEdge) []honeycomb.ShoreSegment {
	var out []honeycomb.ShoreSegment
	for _, ce := range cell {
		if ce.Edge.IsShore {
			out = append(out, ce.Edge.Segment)
		}
	}
	return out
}

func TestBuildIsland(t *testing.T) {
	h, s, net := buildIsland(t)
	require.Equal(t, net.Len(), h.NumCells())

	total := 0.0
	for id := 0; id < h.NumCells(); id++ {
		cell := h.CellEdges(id)
		assertClosed(t, cell)
		assert.Positive(t, planar.SignedArea(h.CellVertices(id)), "cell %d is not counterclockwise", id)
		total += h.CellArea(id)
	}
	shoreArea := planar.Area(s.Contour())
	assert.InEpsilon(t, shoreArea, total, 1e-6, "cells must tile the island")

	cases := []struct {
		id    int
		edges int
		shore []honeycomb.ShoreSegment
	}{
		{35, 5, nil},
		{7, 5, []honeycomb.ShoreSegment{{From: 4, To: 5}}},
		{3, 6, []honeycomb.ShoreSegment{{From: 2, To: 3}}},
		{1, 4, []honeycomb.ShoreSegment{{From: 1, To: 2}}},
		{6, 4, []honeycomb.ShoreSegment{{From: 3, To: 4}, {From: 4, To: 5}}},
	}
	for _, tc := range cases {
		cell := h.CellEdges(tc.id)
		assert.Len(t, cell, tc.edges, "cell %d", tc.id)
		assert.Equal(t, tc.shore, shoreSegments(cell), "cell %d", tc.id)
	}
}

func TestBuildRivers(t *testing.T) {
	h, _, net := buildIsland(t)

	for id := 0; id < h.NumCells(); id++ {
		want := len(net.Children(id))
		if _, ok := net.Parent(id); ok {
			want++
		}
		got := 0
		for _, ce := range h.CellEdges(id) {
			if ce.Edge.HasRiver {
				got++
			}
		}
		assert.Equal(t, want, got, "river edges of cell %d", id)

		e, ok := h.CellOutflowRidge(id)
		parent, hasParent := net.Parent(id)
		require.Equal(t, hasParent, ok, "cell %d", id)
		if !ok {
			continue
		}
		assert.True(t, e.HasRiver)
		assert.Contains(t, edgesOf(h, id), e)
		assert.Contains(t, edgesOf(h, parent), e, "outflow of %d must border its parent", id)

		for _, r := range h.CellRidges(id) {
			assert.False(t, r.HasRiver)
			assert.False(t, r.IsShore)
		}
	}
}

func edgesOf(h *honeycomb.Honeycomb, id int) []*honeycomb.Edge {
	var out []*honeycomb.Edge
	for _, ce := range h.CellEdges(id) {
		out = append(out, ce.Edge)
	}
	return out
}

func TestBuildSharing(t *testing.T) {
	h, _, _ := buildIsland(t)

	uses := make(map[*honeycomb.Edge]int)
	for id := 0; id < h.NumCells(); id++ {
		for _, ce := range h.CellEdges(id) {
			uses[ce.Edge]++
		}
		for _, q := range h.CellQs(id) {
			assert.Contains(t, q.Nodes, id)
		}
	}
	for e, n := range uses {
		if e.IsShore {
			assert.Equal(t, 1, n, "shore edge %d", e.ID)
		} else {
			assert.LessOrEqual(t, n, 2, "edge %d", e.ID)
		}
	}

	for i, q := range h.AllQs() {
		assert.Equal(t, i, q.ID)
	}
	for i, e := range h.AllEdges() {
		assert.Equal(t, i, e.ID)
	}
	assert.Len(t, uses, len(h.AllEdges()), "every edge belongs to some cell")
}

func TestNodeID(t *testing.T) {
	h, _, net := buildIsland(t)
	for _, n := range net.Nodes() {
		if n.IsMouth() {
			continue
		}
		id, ok := h.NodeID(n.Position)
		require.True(t, ok, "node %d", n.ID)
		assert.Equal(t, n.ID, id)
		assert.True(t, h.IsInCell(n.Position, n.ID))
		assert.True(t, h.BoundingBox(n.ID).ContainsPoint(n.Position))
	}
	_, ok := h.NodeID(r2.Point{X: 0, Y: 20000})
	assert.False(t, ok)
}

func TestRidgeElevations(t *testing.T) {
	h, _, net := buildIsland(t)
	honeycomb.RidgeElevations(h, net, raster.Constant(raster.MaxValue), 0.1)

	for _, q := range h.AllQs() {
		if len(q.Nodes) < 2 {
			assert.Zero(t, q.Elevation, "Q %d", q.ID)
			continue
		}
		highest := math.Inf(-1)
		for _, id := range q.Nodes {
			highest = math.Max(highest, net.Node(id).Elevation)
		}
		assert.GreaterOrEqual(t, q.Elevation, highest, "Q %d", q.ID)
	}
}

func TestBuildOptions(t *testing.T) {
	calls, last, reported := 0, 0, 0
	h, _, net := buildIsland(t, honeycomb.WithLogger(nil), honeycomb.WithOnCell(func(done, total int) {
		calls++
		last = done
		reported = total
	}))
	assert.Equal(t, h.NumCells(), calls)
	assert.Equal(t, h.NumCells(), last)
	assert.Equal(t, net.Len(), reported)
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := honeycomb.Build(ctx, islandShore(t), islandNetwork(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildGrownNetwork(t *testing.T) {
	pts := make([]r2.Point, 64)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(len(pts))
		pts[i] = r2.Point{X: 40000 * math.Cos(a), Y: 40000 * math.Sin(a)}
	}
	s, err := shore.New(pts)
	require.NoError(t, err)

	params := growth.DefaultParameters()
	params.NumMajorRivers = 4
	net, err := growth.Grow(context.Background(), s, raster.Constant(128), params)
	require.NoError(t, err)

	h, err := honeycomb.Build(context.Background(), s, net)
	require.NoError(t, err)
	require.Equal(t, net.Len(), h.NumCells())

	total := 0.0
	for id := 0; id < h.NumCells(); id++ {
		assertClosed(t, h.CellEdges(id))
		total += h.CellArea(id)
	}
	assert.InEpsilon(t, planar.Area(s.Contour()), total, 1e-6)
}

func TestCorners(t *testing.T) {
	for _, b := range []r2.Rect{
		islandShore(t).Bounds(),
		r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 100, Y: 100}),
		r2.RectFromPoints(r2.Point{X: -5, Y: 20}, r2.Point{X: 5, Y: 2000}),
	} {
		cs := honeycomb.Corners(b)
		require.Len(t, cs, 4)
		xs, ys := map[float64]bool{}, map[float64]bool{}
		for _, c := range cs {
			assert.False(t, b.ContainsPoint(c), "corner %v inside %v", c, b)
			xs[c.X], ys[c.Y] = true, true
		}
		assert.Len(t, xs, 4, "corners share an X: %v", cs)
		assert.Len(t, ys, 4, "corners share a Y: %v", cs)
	}
}

func TestBuildBlobIslands(t *testing.T) {
	blob := shore.DefaultBlobOptions()
	blob.Radius = 60000
	blob.Points = 200
	blob.Roughness = 0.2

	for seed := int64(1); seed <= 12; seed++ {
		s, err := shore.Blob(seed, blob)
		require.NoError(t, err)

		params := growth.DefaultParameters()
		params.NumMajorRivers = 6
		params.Seed = seed
		net, err := growth.Grow(context.Background(), s, raster.Constant(128), params)
		require.NoError(t, err)

		h, err := honeycomb.Build(context.Background(), s, net)
		require.NoError(t, err, "seed %d", seed)

		total := 0.0
		for id := 0; id < h.NumCells(); id++ {
			assertClosed(t, h.CellEdges(id))
			total += h.CellArea(id)
		}
		assert.InEpsilon(t, planar.Area(s.Contour()), total, 1e-6, "seed %d", seed)
	}
}

func TestFromParts(t *testing.T) {
	h, s, net := buildIsland(t)
	cells := make([][]honeycomb.CellEdge, h.NumCells())
	downstream := make([]*honeycomb.Edge, h.NumCells())
	for id := range cells {
		cells[id] = h.CellEdges(id)
		downstream[id], _ = h.CellOutflowRidge(id)
	}

	again := honeycomb.FromParts(s, net, h.AllQs(), h.AllEdges(), cells, downstream)
	assert.Equal(t, h.NumCells(), again.NumCells())
	for id := range cells {
		assert.InDelta(t, h.CellArea(id), again.CellArea(id), 1e-9)
	}
	id, ok := again.NodeID(net.Position(36))
	require.True(t, ok)
	assert.Equal(t, 36, id)
}

func TestCachesKeepVoronoiKeys(t *testing.T) {
	h, _, _ := buildIsland(t)
	c := h.Caches()
	for ridge, e := range c.Edges {
		assert.Equal(t, ridge, e.Ridge)
		assert.False(t, e.IsShore)
	}
	for vertex, q := range c.Qs {
		assert.Equal(t, vertex, q.Vertex)
	}
	for _, e := range h.AllEdges() {
		assert.Equal(t, e.IsShore, e.Ridge < 0, "edge %d", e.ID)
	}
}
