package shore_test

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydroterra/planar"
	"github.com/katalvlaran/hydroterra/shore"
)

func square(t *testing.T, clockwise bool) *shore.Shore {
	t.Helper()
	pts := []r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if clockwise {
		pts = []r2.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	}
	s, err := shore.New(pts)
	require.NoError(t, err)
	return s
}

func TestNew_TooFewPoints(t *testing.T) {
	_, err := shore.New([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	assert.ErrorIs(t, err, shore.ErrTooFewPoints)

	// a closed ring of two distinct points collapses too
	_, err = shore.New([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}})
	assert.ErrorIs(t, err, shore.ErrTooFewPoints)
}

func TestNew_NormalisesWinding(t *testing.T) {
	s := square(t, true)
	assert.Positive(t, planar.SignedArea(s.Contour()))
	assert.Equal(t, 4, s.Len())
}

func TestShore_CyclicAt(t *testing.T) {
	s := square(t, false)
	assert.Equal(t, s.At(0), s.At(4))
	assert.Equal(t, s.At(3), s.At(-1))
	a, b := s.Segment(3)
	assert.Equal(t, s.At(3), a)
	assert.Equal(t, s.At(0), b)
}

func TestShore_DistanceToShore(t *testing.T) {
	s := square(t, false)

	assert.InDelta(t, 2.0, s.DistanceToShore(r2.Point{X: 2, Y: 5}), 1e-12)
	assert.InDelta(t, 5.0, s.DistanceToShore(r2.Point{X: 5, Y: 5}), 1e-12)
	assert.InDelta(t, -3.0, s.DistanceToShore(r2.Point{X: 13, Y: 5}), 1e-12)
	assert.InDelta(t, -5.0, s.DistanceToShore(r2.Point{X: -3, Y: -4}), 1e-12)

	assert.True(t, s.IsOnLand(r2.Point{X: 9.9, Y: 0.1}))
	assert.False(t, s.IsOnLand(r2.Point{X: 10.1, Y: 5}))
}

func TestShore_DistanceMatchesBruteForce(t *testing.T) {
	s, err := shore.Blob(3, shore.BlobOptions{Center: r2.Point{}, Radius: 100, Points: 64, Roughness: 0.4, Frequency: 2})
	require.NoError(t, err)

	for _, p := range []r2.Point{{X: 0, Y: 0}, {X: 50, Y: 20}, {X: -90, Y: 10}, {X: 130, Y: -130}} {
		best := -1.0
		for i := 0; i < s.Len(); i++ {
			a, b := s.Segment(i)
			d := planar.PointSegmentDistance(p, a, b)
			if best < 0 || d < best {
				best = d
			}
		}
		got := s.DistanceToShore(p)
		if got < 0 {
			got = -got
		}
		assert.InDelta(t, best, got, 1e-9, "point %v", p)
	}
}

func TestShore_ClosestN(t *testing.T) {
	s := square(t, false)
	got := s.ClosestN(r2.Point{X: 9, Y: 1}, 2)
	require.Len(t, got, 2)
	assert.Equal(t, r2.Point{X: 10, Y: 0}, s.At(got[0]))

	assert.Len(t, s.ClosestN(r2.Point{}, 100), 4)
	assert.Equal(t, got[0], s.IndexOf(r2.Point{X: 9, Y: 1}))
}

func TestShore_RealShape(t *testing.T) {
	s := square(t, false)
	assert.Equal(t, r2.Point{X: 10, Y: 10}, s.RealShape())
	assert.Equal(t, r2.Point{X: 5, Y: 5}, s.Bounds().Center())
}

func TestFromGeoJSON(t *testing.T) {
	doc := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,1]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[0,4],[4,4],[4,0],[0,0]]]}}
	]}`)
	s, err := shore.FromGeoJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Positive(t, planar.SignedArea(s.Contour()))

	bare := []byte(`{"type":"Polygon","coordinates":[[[0,0],[3,0],[0,3],[0,0]]]}`)
	s, err = shore.FromGeoJSON(bare)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	_, err = shore.FromGeoJSON([]byte(`{"type":"Point","coordinates":[1,1]}`))
	assert.ErrorIs(t, err, shore.ErrNoPolygon)
}

func TestBlob_Deterministic(t *testing.T) {
	opts := shore.DefaultBlobOptions()
	a, err := shore.Blob(11, opts)
	require.NoError(t, err)
	b, err := shore.Blob(11, opts)
	require.NoError(t, err)
	assert.Equal(t, a.Contour(), b.Contour())
	assert.True(t, a.IsOnLand(opts.Center))

	_, err = shore.Blob(1, shore.BlobOptions{Points: 2})
	assert.ErrorIs(t, err, shore.ErrTooFewPoints)
}
