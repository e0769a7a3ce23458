package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
)

// ErrEmptyShore indicates a shore with no extent to scale the map to.
var ErrEmptyShore = errors.New("export: shore has no extent")

const (
	landStyle  = "fill:rgb(222,205,160);stroke:rgb(120,100,60);stroke-width:1"
	cellStyle  = "fill:none;stroke:rgb(150,140,120);stroke-width:0.5"
	nodeStyle  = "fill:rgb(20,60,160)"
	riverColor = "rgb(40,90,200)"
	margin     = 10
)

// SVGOption configures WriteSVG.
type SVGOption func(*SVGOptions)

// SVGOptions holds the map layout.
type SVGOptions struct {
	Width     int
	DrawCells bool
	DrawNodes bool
}

// DefaultSVGOptions draws a 1024 px wide map with cell outlines and no
// node markers.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 1024, DrawCells: true}
}

// WithWidth sets the image width in pixels. Values below 2*margin+1 are
// ignored.
func WithWidth(px int) SVGOption {
	return func(o *SVGOptions) {
		if px > 2*margin {
			o.Width = px
		}
	}
}

// WithCells toggles the cell outline layer.
func WithCells(on bool) SVGOption {
	return func(o *SVGOptions) { o.DrawCells = on }
}

// WithNodes toggles the node marker layer.
func WithNodes(on bool) SVGOption {
	return func(o *SVGOptions) { o.DrawNodes = on }
}

// projection maps model coordinates to pixels, y pointing down.
type projection struct {
	bounds r2.Rect
	scale  float64
}

func (p projection) xy(pt r2.Point) (int, int) {
	x := margin + (pt.X-p.bounds.X.Lo)*p.scale
	y := margin + (p.bounds.Y.Hi-pt.Y)*p.scale
	return int(math.Round(x)), int(math.Round(y))
}

func (p projection) poly(pts []r2.Point) ([]int, []int) {
	xs, ys := make([]int, len(pts)), make([]int, len(pts))
	for i, pt := range pts {
		xs[i], ys[i] = p.xy(pt)
	}
	return xs, ys
}

// WriteSVG draws in as an SVG map.
func WriteSVG(w io.Writer, in Input, opts ...SVGOption) error {
	o := DefaultSVGOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := in.Shore.Bounds()
	size := b.Size()
	if b.IsEmpty() || size.X <= 0 || size.Y <= 0 {
		return ErrEmptyShore
	}
	proj := projection{bounds: b, scale: float64(o.Width-2*margin) / size.X}
	height := int(math.Ceil(size.Y*proj.scale)) + 2*margin

	canvas := svg.New(w)
	canvas.Start(o.Width, height)
	canvas.Rect(0, 0, o.Width, height, "fill:rgb(170,200,230)")

	xs, ys := proj.poly(in.Shore.Contour())
	canvas.Polygon(xs, ys, landStyle)

	if h := in.Honeycomb; h != nil && o.DrawCells {
		canvas.Gid("cells")
		for id := 0; id < h.NumCells(); id++ {
			xs, ys := proj.poly(h.CellVertices(id))
			canvas.Polygon(xs, ys, cellStyle)
		}
		canvas.Gend()
	}

	canvas.Gid("rivers")
	maxFlow := 0.0
	for _, n := range in.Network.Nodes() {
		maxFlow = math.Max(maxFlow, n.Flow)
	}
	for _, e := range in.Network.Edges() {
		x0, y0 := proj.xy(in.Network.Position(e.Child))
		x1, y1 := proj.xy(in.Network.Position(e.Parent))
		canvas.Line(x0, y0, x1, y1, riverStyle(in.Network.Node(e.Child).Flow, maxFlow))
	}
	canvas.Gend()

	if o.DrawNodes {
		canvas.Gid("nodes")
		for _, n := range in.Network.Nodes() {
			x, y := proj.xy(n.Position)
			canvas.Circle(x, y, 2, nodeStyle)
		}
		canvas.Gend()
	}

	canvas.End()
	return nil
}

// riverStyle scales stroke width from 1 px up to 5 px with discharge.
func riverStyle(flow, maxFlow float64) string {
	width := 1.0
	if maxFlow > 0 && flow > 0 {
		width += 4 * math.Sqrt(flow/maxFlow)
	}
	return fmt.Sprintf("stroke:%s;stroke-width:%.1f;stroke-linecap:round", riverColor, width)
}
