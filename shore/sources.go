package shore

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/ojrac/opensimplex-go"
	geojson "github.com/paulmach/go.geojson"
)

// FromGeoJSON builds a Shore from the outer ring of the first Polygon (or
// the first polygon of the first MultiPolygon) in data. data may be a
// FeatureCollection, a Feature or a bare Geometry.
func FromGeoJSON(data []byte) (*Shore, error) {
	var geoms []*geojson.Geometry
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil && len(fc.Features) > 0 {
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	} else if f, err := geojson.UnmarshalFeature(data); err == nil && f.Geometry != nil {
		geoms = append(geoms, f.Geometry)
	} else {
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("shore: decode geojson: %w", err)
		}
		geoms = append(geoms, g)
	}

	for _, g := range geoms {
		ring := outerRing(g)
		if ring == nil {
			continue
		}
		pts := make([]r2.Point, 0, len(ring))
		for _, c := range ring {
			if len(c) < 2 {
				return nil, fmt.Errorf("shore: coordinate with %d components: %w", len(c), ErrNoPolygon)
			}
			pts = append(pts, r2.Point{X: c[0], Y: c[1]})
		}
		return New(pts)
	}
	return nil, ErrNoPolygon
}

func outerRing(g *geojson.Geometry) [][]float64 {
	if g == nil {
		return nil
	}
	switch {
	case g.IsPolygon() && len(g.Polygon) > 0:
		return g.Polygon[0]
	case g.IsMultiPolygon() && len(g.MultiPolygon) > 0 && len(g.MultiPolygon[0]) > 0:
		return g.MultiPolygon[0][0]
	}
	return nil
}

// BlobOptions shapes a synthetic island.
type BlobOptions struct {
	Center    r2.Point `yaml:"center"`
	Radius    float64  `yaml:"radius"`
	Points    int      `yaml:"points"`
	Roughness float64  `yaml:"roughness"` // fraction of Radius, in [0, 1)
	Frequency float64  `yaml:"frequency"`
}

// DefaultBlobOptions describes a 20 km wide island with a moderately
// ragged coast.
func DefaultBlobOptions() BlobOptions {
	return BlobOptions{
		Center:    r2.Point{X: 10000, Y: 10000},
		Radius:    10000,
		Points:    400,
		Roughness: 0.3,
		Frequency: 1.5,
	}
}

// Blob builds a star-shaped island whose radius is modulated by OpenSimplex
// noise sampled around a circle, so the same seed always yields the same
// coastline.
func Blob(seed int64, opts BlobOptions) (*Shore, error) {
	if opts.Points < 3 {
		return nil, ErrTooFewPoints
	}
	rough := math.Max(0, math.Min(opts.Roughness, 0.95))
	noise := opensimplex.New(seed)

	pts := make([]r2.Point, opts.Points)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(opts.Points)
		cos, sin := math.Cos(theta), math.Sin(theta)
		n := noise.Eval2(cos*opts.Frequency, sin*opts.Frequency)
		r := opts.Radius * (1 + rough*n)
		pts[i] = r2.Point{X: opts.Center.X + r*cos, Y: opts.Center.Y + r*sin}
	}
	return New(pts)
}
