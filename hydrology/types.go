package hydrology

import (
	"context"
	"errors"

	"github.com/golang/geo/r2"
)

var (
	// ErrUnknownNode is returned when a referenced node id does not exist.
	ErrUnknownNode = errors.New("hydrology: unknown node id")

	// ErrDisconnected is returned by PathBetween for nodes in different trees.
	ErrDisconnected = errors.New("hydrology: nodes belong to different river systems")
)

// NoParent marks a mouth node's Parent field.
const NoParent = -1

// Node is a river node. Structural fields (ID, Position, Parent,
// ContourIndex, Priority) are owned by the Network; the watershed, flow
// and river fields are filled in by downstream passes.
type Node struct {
	ID        int
	Position  r2.Point
	Elevation float64
	Priority  int
	Parent    int // NoParent for mouths
	// ContourIndex is the shore index of a mouth node, -1 otherwise.
	ContourIndex int

	LocalWatershed     float64
	InheritedWatershed float64
	Flow               float64
	Rivers             [][]r2.Point

	children []int
}

// IsMouth reports whether the node drains directly into the sea.
func (n *Node) IsMouth() bool { return n.Parent == NoParent }

// Edge is a directed parent->child link.
type Edge struct {
	Parent, Child int
}

// NodeOption configures AddNode.
type NodeOption func(*nodeSpec)

type nodeSpec struct {
	parent       int
	contourIndex int
}

// WithParent links the new node under parent.
func WithParent(parent int) NodeOption {
	return func(s *nodeSpec) { s.parent = parent }
}

// WithContourIndex records the shore index a mouth node sits on.
func WithContourIndex(i int) NodeOption {
	return func(s *nodeSpec) { s.contourIndex = i }
}

// WalkOption configures Walk.
type WalkOption func(*WalkOptions)

// WalkOptions holds the hooks and context of a forest traversal.
type WalkOptions struct {
	// Ctx aborts the walk when done; defaults to context.Background().
	Ctx context.Context

	// OnVisit runs when a node is first reached (pre-order).
	OnVisit func(id int) error

	// OnExit runs after all of a node's children finished (post-order).
	OnExit func(id int) error
}

// DefaultWalkOptions returns a background context and no hooks.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{Ctx: context.Background()}
}

// WithContext sets the cancellation context. nil is ignored.
func WithContext(ctx context.Context) WalkOption {
	return func(o *WalkOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(id int) error) WalkOption {
	return func(o *WalkOptions) { o.OnVisit = fn }
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(id int) error) WalkOption {
	return func(o *WalkOptions) { o.OnExit = fn }
}

// WalkResult captures a completed traversal.
type WalkResult struct {
	// Order lists node ids in finish (post-order) sequence.
	Order []int
	// Depth maps node id to its distance from its mouth.
	Depth []int
}
