package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/honeycomb"
	"github.com/katalvlaran/hydroterra/hydrology"
)

type shoreRow struct {
	Idx int     `db:"idx"`
	X   float64 `db:"x"`
	Y   float64 `db:"y"`
}

type nodeRow struct {
	ID                 int           `db:"id"`
	Parent             sql.NullInt64 `db:"parent"`
	X                  float64       `db:"x"`
	Y                  float64       `db:"y"`
	Elevation          float64       `db:"elevation"`
	Priority           int           `db:"priority"`
	ContourIndex       int           `db:"contour_index"`
	LocalWatershed     float64       `db:"local_watershed"`
	InheritedWatershed float64       `db:"inherited_watershed"`
	Flow               float64       `db:"flow"`
}

func newNodeRow(n *hydrology.Node) nodeRow {
	r := nodeRow{
		ID:                 n.ID,
		X:                  n.Position.X,
		Y:                  n.Position.Y,
		Elevation:          n.Elevation,
		Priority:           n.Priority,
		ContourIndex:       n.ContourIndex,
		LocalWatershed:     n.LocalWatershed,
		InheritedWatershed: n.InheritedWatershed,
		Flow:               n.Flow,
	}
	if !n.IsMouth() {
		r.Parent = sql.NullInt64{Int64: int64(n.Parent), Valid: true}
	}
	return r
}

type pathRow struct {
	NodeID int     `db:"node_id"`
	River  int     `db:"river"`
	Seq    int     `db:"seq"`
	X      float64 `db:"x"`
	Y      float64 `db:"y"`
}

type qRow struct {
	ID        int     `db:"id"`
	Vertex    int     `db:"vertex"`
	X         float64 `db:"x"`
	Y         float64 `db:"y"`
	Elevation float64 `db:"elevation"`
	NodesJSON string  `db:"nodes_json"`
}

func newQRow(q *honeycomb.Q) (qRow, error) {
	nodes := q.Nodes
	if nodes == nil {
		nodes = []int{}
	}
	b, err := json.Marshal(nodes)
	if err != nil {
		return qRow{}, err
	}
	return qRow{
		ID:        q.ID,
		Vertex:    q.Vertex,
		X:         q.Position.X,
		Y:         q.Position.Y,
		Elevation: q.Elevation,
		NodesJSON: string(b),
	}, nil
}

func (r qRow) q() (*honeycomb.Q, error) {
	q := &honeycomb.Q{
		ID:        r.ID,
		Vertex:    r.Vertex,
		Position:  r2.Point{X: r.X, Y: r.Y},
		Elevation: r.Elevation,
	}
	if err := json.Unmarshal([]byte(r.NodesJSON), &q.Nodes); err != nil {
		return nil, fmt.Errorf("q %d nodes: %w", r.ID, err)
	}
	if len(q.Nodes) == 0 {
		q.Nodes = nil
	}
	return q, nil
}

type edgeRow struct {
	ID       int  `db:"id"`
	Ridge    int  `db:"ridge"`
	Q0       int  `db:"q0"`
	Q1       int  `db:"q1"`
	HasRiver bool `db:"has_river"`
	IsShore  bool `db:"is_shore"`
	SegFrom  int  `db:"seg_from"`
	SegTo    int  `db:"seg_to"`
}

func newEdgeRow(e *honeycomb.Edge) edgeRow {
	return edgeRow{
		ID:       e.ID,
		Ridge:    e.Ridge,
		Q0:       e.Q0.ID,
		Q1:       e.Q1.ID,
		HasRiver: e.HasRiver,
		IsShore:  e.IsShore,
		SegFrom:  e.Segment.From,
		SegTo:    e.Segment.To,
	}
}

type cellRow struct {
	NodeID   int  `db:"node_id"`
	Seq      int  `db:"seq"`
	EdgeID   int  `db:"edge_id"`
	Reversed bool `db:"reversed"`
}

type downstreamRow struct {
	NodeID int `db:"node_id"`
	EdgeID int `db:"edge_id"`
}
