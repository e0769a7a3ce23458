package growth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/hydrology"
)

var (
	// ErrInvalidParameters wraps every Parameters validation failure.
	ErrInvalidParameters = errors.New("growth: invalid parameters")
	// ErrNilShore is returned when no shore is supplied.
	ErrNilShore = errors.New("growth: shore is nil")
	// ErrNilSlope is returned when no river slope raster is supplied.
	ErrNilSlope = errors.New("growth: slope raster is nil")
)

// Shore is the coastline as seen by the growth algorithm.
type Shore interface {
	IsOnLand(p r2.Point) bool
	DistanceToShore(p r2.Point) float64
	At(i int) r2.Point
	Len() int
}

// Parameters controls river growth. Lengths are in map units.
type Parameters struct {
	// EdgeLength is the distance between a node and each of its children.
	EdgeLength float64 `yaml:"edgeLength" db:"edge_length"`
	// Eta*EdgeLength is the minimum distance from a new node to the coast.
	Eta float64 `yaml:"eta" db:"eta"`
	// Sigma*EdgeLength is the minimum distance from a new node to any
	// existing node or edge.
	Sigma float64 `yaml:"sigma" db:"sigma"`
	// Pa is the probability of an asymmetric branch (two children).
	Pa float64 `yaml:"pa" db:"pa"`
	// Pc is the probability of a continuation (one child). The remainder,
	// 1-Pa-Pc, is the probability of a symmetric branch (two children).
	Pc float64 `yaml:"pc" db:"pc"`
	// MaxTries bounds the position draws per child.
	MaxTries int `yaml:"maxTries" db:"max_tries"`
	// RiverAngleDev is the standard deviation, in radians, of a child's
	// heading around the preferred heading.
	RiverAngleDev float64 `yaml:"riverAngleDev" db:"river_angle_dev"`
	// Zeta is the elevation window used by candidate selection.
	Zeta float64 `yaml:"zeta" db:"zeta"`
	// SlopeRate is the vertical climb per horizontal unit at full slope.
	SlopeRate float64 `yaml:"slopeRate" db:"slope_rate"`
	// NumMajorRivers is the number of mouth nodes placed on the coast.
	NumMajorRivers int `yaml:"numMajorRivers" db:"num_major_rivers"`
	// Seed drives every random draw; 0 selects the default seed.
	Seed int64 `yaml:"seed" db:"seed"`
}

// DefaultParameters returns the classic settings: mostly continuations
// with occasional symmetric forks, wide heading spread, 8 km edges.
func DefaultParameters() Parameters {
	return Parameters{
		EdgeLength:     8000,
		Eta:            0.75,
		Sigma:          0.75,
		Pa:             0,
		Pc:             0.7,
		MaxTries:       15,
		RiverAngleDev:  1.7,
		Zeta:           100,
		SlopeRate:      0.1,
		NumMajorRivers: 10,
		Seed:           4314,
	}
}

// Ps is the symmetric-branch probability.
func (p Parameters) Ps() float64 { return 1 - p.Pa - p.Pc }

// Validate checks every range constraint. Sigma must stay below 1 because
// a child sits exactly EdgeLength from its own parent.
func (p Parameters) Validate() error {
	switch {
	case !(p.EdgeLength > 0):
		return fmt.Errorf("%w: edgeLength %v must be > 0", ErrInvalidParameters, p.EdgeLength)
	case p.Eta < 0:
		return fmt.Errorf("%w: eta %v must be >= 0", ErrInvalidParameters, p.Eta)
	case p.Sigma < 0 || p.Sigma >= 1:
		return fmt.Errorf("%w: sigma %v must be in [0, 1)", ErrInvalidParameters, p.Sigma)
	case p.Pa < 0 || p.Pc < 0 || p.Pa+p.Pc > 1:
		return fmt.Errorf("%w: pa %v and pc %v must be >= 0 with pa+pc <= 1", ErrInvalidParameters, p.Pa, p.Pc)
	case p.MaxTries < 1:
		return fmt.Errorf("%w: maxTries %d must be >= 1", ErrInvalidParameters, p.MaxTries)
	case p.RiverAngleDev < 0:
		return fmt.Errorf("%w: riverAngleDev %v must be >= 0", ErrInvalidParameters, p.RiverAngleDev)
	case p.Zeta < 0:
		return fmt.Errorf("%w: zeta %v must be >= 0", ErrInvalidParameters, p.Zeta)
	case p.SlopeRate < 0:
		return fmt.Errorf("%w: slopeRate %v must be >= 0", ErrInvalidParameters, p.SlopeRate)
	case p.NumMajorRivers < 1:
		return fmt.Errorf("%w: numMajorRivers %d must be >= 1", ErrInvalidParameters, p.NumMajorRivers)
	}
	return nil
}

// SelectionPolicy chooses which candidate to expand next.
type SelectionPolicy int

const (
	// SelectNearHighest picks uniformly among candidates whose elevation is
	// within Zeta of the highest candidate.
	SelectNearHighest SelectionPolicy = iota
	// SelectClassic takes candidates within Zeta of the lowest candidate and
	// expands the one with the highest priority, the latest such candidate
	// on ties.
	SelectClassic
)

// BranchKind is the expansion shape drawn for a selected node.
type BranchKind int

const (
	// Continuation extends the river with one child.
	Continuation BranchKind = iota
	// Symmetric forks into two children of equal order.
	Symmetric
	// Asymmetric adds a main-stem child and a lower-order tributary.
	Asymmetric
)

func (k BranchKind) String() string {
	switch k {
	case Continuation:
		return "continuation"
	case Symmetric:
		return "symmetric"
	case Asymmetric:
		return "asymmetric"
	}
	return fmt.Sprintf("BranchKind(%d)", int(k))
}

// Step reports one expansion.
type Step struct {
	Expanded   int
	Kind       BranchKind
	Children   []int
	Candidates int
	Nodes      int
}

// Option configures a Grower.
type Option func(*Options)

// Options holds optional collaborators.
type Options struct {
	Logger    *slog.Logger
	Selection SelectionPolicy
	Network   *hydrology.Network
	OnStep    func(Step)
}

// DefaultOptions discards logs, selects near the highest candidate and
// starts from an empty network.
func DefaultOptions() Options {
	return Options{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Selection: SelectNearHighest,
	}
}

// WithLogger routes diagnostics to l. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSelection sets the candidate selection policy.
func WithSelection(p SelectionPolicy) Option {
	return func(o *Options) { o.Selection = p }
}

// WithNetwork grows into net instead of a fresh network.
func WithNetwork(net *hydrology.Network) Option {
	return func(o *Options) { o.Network = net }
}

// WithOnStep installs a callback invoked after every expansion.
func WithOnStep(fn func(Step)) Option {
	return func(o *Options) { o.OnStep = fn }
}
