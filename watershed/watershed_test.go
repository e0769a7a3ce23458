package watershed_test

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
	"github.com/katalvlaran/hydroterra/watershed"
)

type areas []float64

func (a areas) NumCells() int { return len(a) }
func (a areas) CellArea(id int) float64 { return a[id] }

// forkNetwork is a mouth with one trunk node that splits in two.
//
//	(0) <- (1) <- (2)
//	        ^
//	        +---- (3)
func forkNetwork(t *testing.T) *hydrology.Network {
	t.Helper()
	net := hydrology.New()
	mouth, err := net.AddNode(r2.Point{X: 0, Y: 0}, 0, 1, hydrology.WithContourIndex(0))
	require.NoError(t, err)
	trunk, err := net.AddNode(r2.Point{X: 0, Y: 10}, 1, 1, hydrology.WithParent(mouth))
	require.NoError(t, err)
	_, err = net.AddNode(r2.Point{X: -5, Y: 20}, 2, 1, hydrology.WithParent(trunk))
	require.NoError(t, err)
	_, err = net.AddNode(r2.Point{X: 5, Y: 20}, 2, 1, hydrology.WithParent(trunk))
	require.NoError(t, err)
	return net
}

func TestCompute(t *testing.T) {
	net := forkNetwork(t)
	require.NoError(t, watershed.Compute(context.Background(), net, areas{10, 20, 5, 7}))

	wantLocal := []float64{10, 20, 5, 7}
	wantInherited := []float64{42, 32, 5, 7}
	for id := range wantLocal {
		n := net.Node(id)
		assert.Equal(t, wantLocal[id], n.LocalWatershed, "node %d", id)
		assert.Equal(t, wantInherited[id], n.InheritedWatershed, "node %d", id)
		assert.InDelta(t, 0.42*math.Pow(wantInherited[id], 0.69), n.Flow, 1e-9, "node %d", id)
	}
	assert.Greater(t, net.Node(0).Flow, net.Node(1).Flow)
}

func TestComputeErrors(t *testing.T) {
	net := forkNetwork(t)
	err := watershed.Compute(context.Background(), net, areas{1, 2})
	assert.ErrorIs(t, err, watershed.ErrCellCount)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = watershed.Compute(ctx, net, areas{1, 2, 3, 4})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlow(t *testing.T) {
	assert.Zero(t, watershed.Flow(0))
	assert.InDelta(t, 0.42, watershed.Flow(1), 1e-12)
}

func TestTraceRivers(t *testing.T) {
	net := forkNetwork(t)
	require.NoError(t, watershed.Compute(context.Background(), net, areas{10, 20, 5, 7}))
	watershed.TraceRivers(net)

	// 3 drains more than 2, so it carries on to the sea.
	assert.Equal(t, [][]r2.Point{{{X: 5, Y: 20}, {X: 0, Y: 10}, {X: 0, Y: 0}}}, net.Node(3).Rivers)
	assert.Equal(t, [][]r2.Point{{{X: -5, Y: 20}, {X: 0, Y: 10}}}, net.Node(2).Rivers)
	assert.Nil(t, net.Node(0).Rivers)
	assert.Nil(t, net.Node(1).Rivers)
}

func TestTraceRiversTie(t *testing.T) {
	net := forkNetwork(t)
	require.NoError(t, watershed.Compute(context.Background(), net, areas{1, 1, 1, 1}))
	watershed.TraceRivers(net)

	assert.Len(t, net.Node(2).Rivers[0], 3, "lower id wins a tie")
	assert.Len(t, net.Node(3).Rivers[0], 2)
}

func TestComputeOnIsland(t *testing.T) {
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

	require.NoError(t, watershed.Compute(context.Background(), net, h))
	total := 0.0
	for _, m := range net.Mouths() {
		total += net.Node(m).InheritedWatershed
	}
	assert.InEpsilon(t, planar.Area(s.Contour()), total, 1e-6, "mouths drain the whole island")
}
