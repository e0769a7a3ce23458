package growth

import (
	"context"
	"log/slog"
	"math"
	"math/rand"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/hydrology"
	"github.com/katalvlaran/hydroterra/planar"
	"github.com/katalvlaran/hydroterra/raster"
)

// Grower holds the mutable state of one growth run: the network, the
// candidate list and the random stream.
type Grower struct {
	shore  Shore
	slope  raster.Sampler
	params Parameters
	opts   Options

	net        *hydrology.Network
	candidates []int
	rng        *rand.Rand
}

// NewGrower validates its inputs and returns a Grower with no mouths
// placed yet.
func NewGrower(s Shore, slope raster.Sampler, params Parameters, opts ...Option) (*Grower, error) {
	if s == nil {
		return nil, ErrNilShore
	}
	if slope == nil {
		return nil, ErrNilSlope
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	net := o.Network
	if net == nil {
		net = hydrology.New()
	}
	return &Grower{
		shore:  s,
		slope:  slope,
		params: params,
		opts:   o,
		net:    net,
		rng:    rngFromSeed(params.Seed),
	}, nil
}

// Network returns the network being grown.
func (g *Grower) Network() *hydrology.Network { return g.net }

// Candidates returns the ids still eligible for expansion.
func (g *Grower) Candidates() []int { return append([]int(nil), g.candidates...) }

// PlaceMouths adds NumMajorRivers mouth nodes on the shore and makes them
// candidates. A jittered index that lands on an already used shore point
// is skipped.
func (g *Grower) PlaceMouths() []int {
	n := g.shore.Len()
	count := g.params.NumMajorRivers
	spacing := float64(n) / float64(count)

	first := g.rng.Intn(n)
	used := make(map[int]struct{}, count)
	var placed []int
	for i := 0; i < count; i++ {
		idx := first
		if i > 0 {
			raw := float64(first) + float64(i)*spacing + gauss(g.rng, 0, spacing/6)
			idx = int(math.Mod(raw, float64(n)))
			if idx < 0 {
				idx += n
			}
		}
		priority := g.rng.Intn(count) + 1
		if _, dup := used[idx]; dup {
			g.opts.Logger.Debug("skipping duplicate mouth", slog.Int("contourIndex", idx))
			continue
		}
		used[idx] = struct{}{}

		id, _ := g.net.AddNode(g.shore.At(idx), 0, priority, hydrology.WithContourIndex(idx))
		g.candidates = append(g.candidates, id)
		placed = append(placed, id)
	}
	return placed
}

// Step expands one candidate. It returns false once no candidates remain.
func (g *Grower) Step() (Step, bool) {
	if len(g.candidates) == 0 {
		return Step{}, false
	}

	cands := make([]Candidate, len(g.candidates))
	for i, id := range g.candidates {
		node := g.net.Node(id)
		cands[i] = Candidate{ID: id, Elevation: node.Elevation, Priority: node.Priority}
	}
	pick := SelectNode(cands, g.params.Zeta, g.opts.Selection, g.rng)
	id := g.candidates[pick]
	g.candidates = append(g.candidates[:pick], g.candidates[pick+1:]...)

	kind := g.drawKind()
	children := g.expand(id, kind)
	g.candidates = append(g.candidates, children...)

	st := Step{
		Expanded:   id,
		Kind:       kind,
		Children:   children,
		Candidates: len(g.candidates),
		Nodes:      g.net.Len(),
	}
	if g.opts.OnStep != nil {
		g.opts.OnStep(st)
	}
	return st, true
}

// Run steps until the candidate list is empty or ctx is done.
func (g *Grower) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := g.Step(); !ok {
			return nil
		}
	}
}

func (g *Grower) drawKind() BranchKind {
	r := g.rng.Float64()
	switch {
	case r < g.params.Pc:
		return Continuation
	case r < g.params.Pc+g.params.Pa:
		return Asymmetric
	default:
		return Symmetric
	}
}

// expand tries to attach the children kind calls for and returns the ids
// of those that found an acceptable position.
func (g *Grower) expand(id int, kind BranchKind) []int {
	node := g.net.Node(id)
	heading := g.preferredHeading(node)

	var priorities []int
	switch kind {
	case Continuation:
		priorities = []int{node.Priority}
	case Symmetric:
		priorities = []int{node.Priority - 1, node.Priority - 1}
	case Asymmetric:
		priorities = []int{node.Priority, node.Priority - 1}
	}

	var children []int
	for _, pr := range priorities {
		if pr < 1 {
			pr = 1
		}
		pos, ok := g.findPosition(node.Position, heading)
		if !ok {
			g.opts.Logger.Debug("no acceptable position",
				slog.Int("node", id),
				slog.String("branch", kind.String()),
				slog.Int("tries", g.params.MaxTries))
			continue
		}
		elev := node.Elevation + g.params.SlopeRate*g.params.EdgeLength*g.slope.Sample(pos)/raster.MaxValue
		child, err := g.net.AddNode(pos, elev, pr, hydrology.WithParent(id))
		if err != nil {
			// id came from the network itself
			panic(err)
		}
		children = append(children, child)
	}
	return children
}

func (g *Grower) findPosition(origin r2.Point, heading float64) (r2.Point, bool) {
	for try := 0; try < g.params.MaxTries; try++ {
		theta := gauss(g.rng, heading, g.params.RiverAngleDev)
		p := planar.FromAngle(origin, theta, g.params.EdgeLength)
		if g.IsAcceptable(p) {
			return p, true
		}
	}
	return r2.Point{}, false
}

func (g *Grower) preferredHeading(node *hydrology.Node) float64 {
	if parent, ok := g.net.Parent(node.ID); ok {
		return planar.Angle(node.Position.Sub(g.net.Position(parent)))
	}
	return CoastNormal(g.shore, node.ContourIndex)
}

// IsAcceptable reports whether a new node may be placed at p: on land, at
// least Eta*EdgeLength from the coast and at least Sigma*EdgeLength from
// every node and edge of the network.
func (g *Grower) IsAcceptable(p r2.Point) bool {
	return IsAcceptable(g.shore, g.net, g.params, p)
}

// IsAcceptable is the stateless form of Grower.IsAcceptable.
func IsAcceptable(s Shore, net *hydrology.Network, params Parameters, p r2.Point) bool {
	if !s.IsOnLand(p) {
		return false
	}
	if s.DistanceToShore(p) < params.Eta*params.EdgeLength {
		return false
	}
	if _, near := net.Clearance(p, params.Sigma*params.EdgeLength); near {
		return false
	}
	return true
}

// CoastNormal returns the inland-pointing normal angle, in radians, of the
// shore at contour index idx. The tangent is taken across up to three
// points on either side.
func CoastNormal(s Shore, idx int) float64 {
	k := (s.Len() - 1) / 2
	if k > 3 {
		k = 3
	}
	if k < 1 {
		k = 1
	}
	chord := s.At(idx + k).Sub(s.At(idx - k))
	theta := math.Atan2(chord.Y, chord.X) + math.Pi/2

	inland := planar.FromAngle(s.At(idx), theta, chord.Norm()/100)
	if !s.IsOnLand(inland) {
		theta += math.Pi
	}
	return normalizeAngle(theta)
}

// normalizeAngle maps theta into (-pi, pi].
func normalizeAngle(theta float64) float64 {
	for theta > math.Pi {
		theta -= 2 * math.Pi
	}
	for theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

// Grow places mouths and runs growth to completion.
func Grow(ctx context.Context, s Shore, slope raster.Sampler, params Parameters, opts ...Option) (*hydrology.Network, error) {
	g, err := NewGrower(s, slope, params, opts...)
	if err != nil {
		return nil, err
	}
	g.PlaceMouths()
	if err := g.Run(ctx); err != nil {
		return nil, err
	}
	return g.net, nil
}
