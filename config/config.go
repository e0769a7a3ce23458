// Package config loads the YAML description of a generation run.
//
// A document has four sections, each optional:
//
//	growth:   growth.Parameters (edgeLength, eta, sigma, pa, pc, ...)
//	terrain:  the river and ridge slope rasters and the ridge slope rate
//	shore:    a GeoJSON file to read, or the synthetic blob to generate
//	output:   database, GeoJSON and SVG paths plus the log level
//
// Load starts from Default, so a partial file only overrides the keys it
// names. The result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hydroterra/growth"
	"github.com/katalvlaran/hydroterra/raster"
	"github.com/katalvlaran/hydroterra/shore"
)

// ErrInvalid wraps every validation failure outside growth parameters.
var ErrInvalid = errors.New("config: invalid configuration")

// Raster kinds.
const (
	RasterConstant = "constant"
	RasterNoise    = "noise"
)

// Config is a whole run.
type Config struct {
	Growth  growth.Parameters `yaml:"growth"`
	Terrain Terrain           `yaml:"terrain"`
	Shore   Shore             `yaml:"shore"`
	Output  Output            `yaml:"output"`
}

// Terrain selects the slope rasters.
type Terrain struct {
	// RiverSlope drives node elevation during growth.
	RiverSlope Raster `yaml:"riverSlope"`
	// TerrainSlope drives ridge elevation.
	TerrainSlope Raster `yaml:"terrainSlope"`
	// SlopeRate scales TerrainSlope into a climb per map unit.
	SlopeRate float64 `yaml:"slopeRate"`
}

// Raster describes one Sampler.
type Raster struct {
	Kind      string  `yaml:"kind"`
	Value     float64 `yaml:"value"`
	Seed      int64   `yaml:"seed"`
	Frequency float64 `yaml:"frequency"`
	Octaves   int     `yaml:"octaves"`
}

// Sampler builds the raster.
func (r Raster) Sampler() (raster.Sampler, error) {
	switch r.Kind {
	case RasterConstant:
		return raster.Constant(r.Value), nil
	case RasterNoise:
		if !(r.Frequency > 0) {
			return nil, fmt.Errorf("%w: noise frequency %v must be > 0", ErrInvalid, r.Frequency)
		}
		return raster.NewNoise(r.Seed, r.Frequency, r.Octaves), nil
	}
	return nil, fmt.Errorf("%w: unknown raster kind %q", ErrInvalid, r.Kind)
}

// Shore selects the coastline source. GeoJSON wins when set.
type Shore struct {
	GeoJSON string            `yaml:"geojson"`
	Seed    int64             `yaml:"seed"`
	Blob    shore.BlobOptions `yaml:"blob"`
}

// Build reads or generates the coastline.
func (s Shore) Build() (*shore.Shore, error) {
	if s.GeoJSON == "" {
		return shore.Blob(s.Seed, s.Blob)
	}
	data, err := os.ReadFile(s.GeoJSON)
	if err != nil {
		return nil, fmt.Errorf("config: read shore: %w", err)
	}
	return shore.FromGeoJSON(data)
}

// Output names the files a run writes. Empty paths are skipped.
type Output struct {
	Database string `yaml:"database"`
	GeoJSON  string `yaml:"geojson"`
	SVG      string `yaml:"svg"`
	SVGWidth int    `yaml:"svgWidth"`
	LogLevel string `yaml:"logLevel"`
}

// Level parses LogLevel; unknown names fall back to info.
func (o Output) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(o.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Default is the configuration used for every key a file leaves out.
func Default() Config {
	return Config{
		Growth: growth.DefaultParameters(),
		Terrain: Terrain{
			RiverSlope:   Raster{Kind: RasterNoise, Seed: 1, Frequency: 5e-5, Octaves: 3},
			TerrainSlope: Raster{Kind: RasterNoise, Seed: 2, Frequency: 1e-4, Octaves: 4},
			SlopeRate:    0.5,
		},
		Shore: Shore{
			Seed: 1,
			Blob: shore.BlobOptions{
				Radius:    60000,
				Points:    400,
				Roughness: 0.3,
				Frequency: 1.5,
			},
		},
		Output: Output{
			Database: "hydroterra.db",
			SVGWidth: 1024,
			LogLevel: "info",
		},
	}
}

// Parse decodes a YAML document over Default and validates it.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Growth.Validate(); err != nil {
		return err
	}
	if _, err := c.Terrain.RiverSlope.Sampler(); err != nil {
		return fmt.Errorf("terrain.riverSlope: %w", err)
	}
	if _, err := c.Terrain.TerrainSlope.Sampler(); err != nil {
		return fmt.Errorf("terrain.terrainSlope: %w", err)
	}
	if c.Terrain.SlopeRate < 0 {
		return fmt.Errorf("%w: terrain.slopeRate %v must be >= 0", ErrInvalid, c.Terrain.SlopeRate)
	}
	if c.Shore.GeoJSON == "" && (c.Shore.Blob.Points < 3 || !(c.Shore.Blob.Radius > 0)) {
		return fmt.Errorf("%w: shore.blob needs radius > 0 and at least 3 points", ErrInvalid)
	}
	if c.Output.SVGWidth < 0 {
		return fmt.Errorf("%w: output.svgWidth %d must be >= 0", ErrInvalid, c.Output.SVGWidth)
	}
	return nil
}

// Encode writes c as YAML, for dumping the effective configuration.
func (c Config) Encode() ([]byte, error) {
	return yaml.Marshal(c)
}
