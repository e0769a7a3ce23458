package raster

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"
	"github.com/ojrac/opensimplex-go"
)

var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("raster: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")
	// ErrBadResolution indicates a non-positive cell size.
	ErrBadResolution = errors.New("raster: resolution must be > 0")
)

// MaxValue is the upper bound of every Sampler.
const MaxValue = 255.0

// Sampler returns the raster value at a map position, in [0, MaxValue].
type Sampler interface {
	Sample(p r2.Point) float64
}

// SamplerFunc adapts a plain function to Sampler.
type SamplerFunc func(p r2.Point) float64

// Sample calls f(p).
func (f SamplerFunc) Sample(p r2.Point) float64 { return f(p) }

// Constant is a uniform raster.
type Constant float64

// Sample returns c clamped to [0, MaxValue].
func (c Constant) Sample(r2.Point) float64 { return clamp(float64(c)) }

// Grid is an immutable rectangular raster. Values[y][x] covers the square
// [Origin.X + x*Resolution, Origin.X + (x+1)*Resolution) in X and the
// analogous range in Y.
type Grid struct {
	Width, Height int
	Resolution    float64
	Origin        r2.Point
	values        [][]uint8
}

// NewGrid validates values and places the grid on the plane.
func NewGrid(values [][]uint8, resolution float64, origin r2.Point) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if !(resolution > 0) {
		return nil, ErrBadResolution
	}
	w := len(values[0])
	rows := make([][]uint8, len(values))
	for y, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		rows[y] = append([]uint8(nil), row...)
	}
	return &Grid{
		Width:      w,
		Height:     len(values),
		Resolution: resolution,
		Origin:     origin,
		values:     rows,
	}, nil
}

// InBounds reports whether cell (x, y) exists.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Cell returns the cell containing p, clamped to the grid.
func (g *Grid) Cell(p r2.Point) (int, int) {
	x := int(math.Floor((p.X - g.Origin.X) / g.Resolution))
	y := int(math.Floor((p.Y - g.Origin.Y) / g.Resolution))
	return clampInt(x, 0, g.Width-1), clampInt(y, 0, g.Height-1)
}

// Sample returns the value of the cell containing p.
func (g *Grid) Sample(p r2.Point) float64 {
	x, y := g.Cell(p)
	return float64(g.values[y][x])
}

// Noise is fractal OpenSimplex noise scaled to [0, MaxValue].
type Noise struct {
	noise       opensimplex.Noise
	Frequency   float64
	Octaves     int
	Persistence float64
}

// NewNoise seeds a noise raster. Frequency is in cycles per map unit.
func NewNoise(seed int64, frequency float64, octaves int) *Noise {
	if octaves < 1 {
		octaves = 1
	}
	return &Noise{
		noise:       opensimplex.NewNormalized(seed),
		Frequency:   frequency,
		Octaves:     octaves,
		Persistence: 0.5,
	}
}

// Sample layers Octaves octaves, doubling frequency and multiplying
// amplitude by Persistence each time.
func (n *Noise) Sample(p r2.Point) float64 {
	total, amplitude, maxVal := 0.0, 1.0, 0.0
	freq := n.Frequency
	for i := 0; i < n.Octaves; i++ {
		total += n.noise.Eval2(p.X*freq, p.Y*freq) * amplitude
		maxVal += amplitude
		amplitude *= n.Persistence
		freq *= 2
	}
	return clamp(MaxValue * total / maxVal)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(MaxValue, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
