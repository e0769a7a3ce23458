package export

import (
	"fmt"
	"io"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	geojson "github.com/paulmach/go.geojson"

	"github.com/katalvlaran/hydroterra/honeycomb"
	"github.com/katalvlaran/hydroterra/hydrology"
)

// Feature kinds.
const (
	KindShore = "shore"
	KindCell  = "cell"
	KindRiver = "river"
	KindLink  = "link"
	KindNode  = "node"
)

// Shore is the part of the coastline the exporters draw.
type Shore interface {
	Contour() []r2.Point
	Bounds() r2.Rect
}

// Input is what gets exported. Honeycomb may be nil.
type Input struct {
	ModelID   uuid.UUID
	Shore     Shore
	Network   *hydrology.Network
	Honeycomb *honeycomb.Honeycomb
}

// FeatureCollection builds the GeoJSON view of in. Features come in a
// fixed order: shore, cells by id, rivers, nodes by id.
func FeatureCollection(in Input) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	shore := geojson.NewPolygonFeature([][][]float64{ring(in.Shore.Contour())})
	shore.SetProperty("kind", KindShore)
	shore.SetProperty("model_id", in.ModelID.String())
	fc.AddFeature(shore)

	if h := in.Honeycomb; h != nil {
		for id := 0; id < h.NumCells(); id++ {
			fc.AddFeature(cellFeature(h, id))
		}
	}

	traced := false
	for _, n := range in.Network.Nodes() {
		for _, line := range n.Rivers {
			f := geojson.NewLineStringFeature(coords(line))
			f.SetProperty("kind", KindRiver)
			f.SetProperty("source", n.ID)
			fc.AddFeature(f)
			traced = true
		}
	}
	if !traced {
		for _, e := range in.Network.Edges() {
			f := geojson.NewLineStringFeature(coords([]r2.Point{
				in.Network.Position(e.Child), in.Network.Position(e.Parent),
			}))
			f.SetProperty("kind", KindLink)
			f.SetProperty("child", e.Child)
			f.SetProperty("parent", e.Parent)
			f.SetProperty("flow", in.Network.Node(e.Child).Flow)
			fc.AddFeature(f)
		}
	}

	for _, n := range in.Network.Nodes() {
		f := geojson.NewPointFeature([]float64{n.Position.X, n.Position.Y})
		f.SetProperty("kind", KindNode)
		f.SetProperty("id", n.ID)
		f.SetProperty("parent", n.Parent)
		f.SetProperty("elevation", n.Elevation)
		f.SetProperty("priority", n.Priority)
		f.SetProperty("flow", n.Flow)
		f.SetProperty("watershed", n.InheritedWatershed)
		fc.AddFeature(f)
	}
	return fc
}

func cellFeature(h *honeycomb.Honeycomb, id int) *geojson.Feature {
	f := geojson.NewPolygonFeature([][][]float64{ring(h.CellVertices(id))})
	f.SetProperty("kind", KindCell)
	f.SetProperty("node", id)
	f.SetProperty("area", h.CellArea(id))

	var rivers, shores int
	for _, ce := range h.CellEdges(id) {
		switch {
		case ce.Edge.HasRiver:
			rivers++
		case ce.Edge.IsShore:
			shores++
		}
	}
	f.SetProperty("edges", len(h.CellEdges(id)))
	f.SetProperty("river_edges", rivers)
	f.SetProperty("shore_edges", shores)
	f.SetProperty("ridge_edges", len(h.CellRidges(id)))
	if e, ok := h.CellOutflowRidge(id); ok {
		f.SetProperty("outflow_edge", e.ID)
	}
	return f
}

// WriteGeoJSON writes FeatureCollection(in) to w.
func WriteGeoJSON(w io.Writer, in Input) error {
	b, err := FeatureCollection(in).MarshalJSON()
	if err != nil {
		return fmt.Errorf("export: encode geojson: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("export: write geojson: %w", err)
	}
	return nil
}

// ring closes pts into a GeoJSON linear ring.
func ring(pts []r2.Point) [][]float64 {
	out := coords(pts)
	if len(pts) > 0 {
		out = append(out, []float64{pts[0].X, pts[0].Y})
	}
	return out
}

func coords(pts []r2.Point) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}
