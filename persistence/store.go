package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/hydroterra/growth"
	"github.com/katalvlaran/hydroterra/honeycomb"
	"github.com/katalvlaran/hydroterra/hydrology"
	"github.com/katalvlaran/hydroterra/shore"
)

var (
	// ErrNoModel is returned by Load when nothing has been saved yet.
	ErrNoModel = errors.New("persistence: no model stored")
	// ErrCorrupt is returned when stored rows reference missing rows.
	ErrCorrupt = errors.New("persistence: inconsistent model")
)

// Model is everything a generation run produces.
type Model struct {
	ID         uuid.UUID
	Parameters growth.Parameters
	Shore      *shore.Shore
	Network    *hydrology.Network
	// Honeycomb may be nil when only the rivers were grown.
	Honeycomb *honeycomb.Honeycomb
}

// Option configures Open.
type Option func(*Options)

// Options holds the store's collaborators.
type Options struct {
	Logger *slog.Logger
}

// DefaultOptions discards logs.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger routes save and load summaries to l. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Store wraps a SQLite connection holding one model.
type Store struct {
	conn *sqlx.DB
	log  *slog.Logger
}

// Open opens or creates the SQLite file at path and ensures the schema.
func Open(path string, opts ...Option) (*Store, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("persistence: open %s: %w", path, err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("persistence: migrate: %w", err)
	}
	return &Store{conn: conn, log: o.Logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Save replaces the stored model with m. A nil m.ID is replaced by a new
// random id before writing.
func (s *Store) Save(ctx context.Context, m *Model) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("persistence: clear %s: %w", table, err)
		}
	}

	steps := []struct {
		name string
		fn   func(context.Context, *sqlx.Tx, *Model) error
	}{
		{"meta", saveMeta},
		{"parameters", saveParameters},
		{"shore", saveShore},
		{"network", saveNetwork},
		{"honeycomb", saveHoneycomb},
	}
	for _, st := range steps {
		if err := st.fn(ctx, tx, m); err != nil {
			return fmt.Errorf("persistence: save %s: %w", st.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.log.Info("model saved",
		slog.String("id", m.ID.String()),
		slog.Int("shorePoints", m.Shore.Len()),
		slog.Int("nodes", m.Network.Len()))
	return nil
}

func saveMeta(ctx context.Context, tx *sqlx.Tx, m *Model) error {
	for k, v := range map[string]string{"model_id": m.ID.String(), "format_version": formatVersion} {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return err
		}
	}
	return nil
}

func saveParameters(ctx context.Context, tx *sqlx.Tx, m *Model) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO parameters
		(id, edge_length, eta, sigma, pa, pc, max_tries, river_angle_dev,
		 zeta, slope_rate, num_major_rivers, seed)
		VALUES (1, :edge_length, :eta, :sigma, :pa, :pc, :max_tries, :river_angle_dev,
		 :zeta, :slope_rate, :num_major_rivers, :seed)`, m.Parameters)
	return err
}

func saveShore(ctx context.Context, tx *sqlx.Tx, m *Model) error {
	stmt, err := tx.PrepareNamedContext(ctx, "INSERT INTO shore (idx, x, y) VALUES (:idx, :x, :y)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range m.Shore.Contour() {
		if _, err := stmt.ExecContext(ctx, shoreRow{Idx: i, X: p.X, Y: p.Y}); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}
	return nil
}

func saveNetwork(ctx context.Context, tx *sqlx.Tx, m *Model) error {
	nodes, err := tx.PrepareNamedContext(ctx, `INSERT INTO river_nodes
		(id, parent, x, y, elevation, priority, contour_index,
		 local_watershed, inherited_watershed, flow)
		VALUES (:id, :parent, :x, :y, :elevation, :priority, :contour_index,
		 :local_watershed, :inherited_watershed, :flow)`)
	if err != nil {
		return err
	}
	defer nodes.Close()

	paths, err := tx.PrepareNamedContext(ctx, `INSERT INTO river_paths (node_id, river, seq, x, y)
		VALUES (:node_id, :river, :seq, :x, :y)`)
	if err != nil {
		return err
	}
	defer paths.Close()

	for _, n := range m.Network.Nodes() {
		if _, err := nodes.ExecContext(ctx, newNodeRow(n)); err != nil {
			return fmt.Errorf("node %d: %w", n.ID, err)
		}
		for river, line := range n.Rivers {
			for seq, p := range line {
				row := pathRow{NodeID: n.ID, River: river, Seq: seq, X: p.X, Y: p.Y}
				if _, err := paths.ExecContext(ctx, row); err != nil {
					return fmt.Errorf("node %d river %d: %w", n.ID, river, err)
				}
			}
		}
	}
	return nil
}

func saveHoneycomb(ctx context.Context, tx *sqlx.Tx, m *Model) error {
	h := m.Honeycomb
	if h == nil {
		return nil
	}

	qs, err := tx.PrepareNamedContext(ctx, `INSERT INTO qs (id, vertex, x, y, elevation, nodes_json)
		VALUES (:id, :vertex, :x, :y, :elevation, :nodes_json)`)
	if err != nil {
		return err
	}
	defer qs.Close()
	for _, q := range h.AllQs() {
		row, err := newQRow(q)
		if err != nil {
			return fmt.Errorf("q %d: %w", q.ID, err)
		}
		if _, err := qs.ExecContext(ctx, row); err != nil {
			return fmt.Errorf("q %d: %w", q.ID, err)
		}
	}

	edges, err := tx.PrepareNamedContext(ctx, `INSERT INTO edges
		(id, ridge, q0, q1, has_river, is_shore, seg_from, seg_to)
		VALUES (:id, :ridge, :q0, :q1, :has_river, :is_shore, :seg_from, :seg_to)`)
	if err != nil {
		return err
	}
	defer edges.Close()
	for _, e := range h.AllEdges() {
		if _, err := edges.ExecContext(ctx, newEdgeRow(e)); err != nil {
			return fmt.Errorf("edge %d: %w", e.ID, err)
		}
	}

	cells, err := tx.PrepareNamedContext(ctx, `INSERT INTO cells (node_id, seq, edge_id, reversed)
		VALUES (:node_id, :seq, :edge_id, :reversed)`)
	if err != nil {
		return err
	}
	defer cells.Close()
	for id := 0; id < h.NumCells(); id++ {
		for seq, ce := range h.CellEdges(id) {
			row := cellRow{NodeID: id, Seq: seq, EdgeID: ce.Edge.ID, Reversed: ce.Reversed}
			if _, err := cells.ExecContext(ctx, row); err != nil {
				return fmt.Errorf("cell %d: %w", id, err)
			}
		}
		if e, ok := h.CellOutflowRidge(id); ok {
			if _, err := tx.NamedExecContext(ctx,
				"INSERT INTO downstream_edges (node_id, edge_id) VALUES (:node_id, :edge_id)",
				downstreamRow{NodeID: id, EdgeID: e.ID}); err != nil {
				return fmt.Errorf("cell %d outflow: %w", id, err)
			}
		}
	}
	return nil
}

// Load reads the stored model. Model.Honeycomb is nil when none was saved.
// Loading the same file twice yields independent models.
func (s *Store) Load(ctx context.Context) (*Model, error) {
	var id string
	err := s.conn.GetContext(ctx, &id, "SELECT value FROM meta WHERE key = 'model_id'")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoModel
	}
	if err != nil {
		return nil, fmt.Errorf("persistence: load meta: %w", err)
	}

	m := &Model{}
	if m.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("persistence: model id: %w", err)
	}
	if err := s.conn.GetContext(ctx, &m.Parameters, `SELECT edge_length, eta, sigma, pa, pc,
		max_tries, river_angle_dev, zeta, slope_rate, num_major_rivers, seed
		FROM parameters WHERE id = 1`); err != nil {
		return nil, fmt.Errorf("persistence: load parameters: %w", err)
	}
	if m.Shore, err = s.loadShore(ctx); err != nil {
		return nil, fmt.Errorf("persistence: load shore: %w", err)
	}
	if m.Network, err = s.loadNetwork(ctx); err != nil {
		return nil, fmt.Errorf("persistence: load network: %w", err)
	}
	if m.Honeycomb, err = s.loadHoneycomb(ctx, m.Shore, m.Network); err != nil {
		return nil, fmt.Errorf("persistence: load honeycomb: %w", err)
	}

	s.log.Info("model loaded",
		slog.String("id", m.ID.String()),
		slog.Int("nodes", m.Network.Len()),
		slog.Bool("honeycomb", m.Honeycomb != nil))
	return m, nil
}

func (s *Store) loadShore(ctx context.Context) (*shore.Shore, error) {
	var rows []shoreRow
	if err := s.conn.SelectContext(ctx, &rows, "SELECT idx, x, y FROM shore ORDER BY idx"); err != nil {
		return nil, err
	}
	pts := make([]r2.Point, len(rows))
	for i, r := range rows {
		pts[i] = r2.Point{X: r.X, Y: r.Y}
	}
	return shore.New(pts)
}

func (s *Store) loadNetwork(ctx context.Context) (*hydrology.Network, error) {
	var rows []nodeRow
	if err := s.conn.SelectContext(ctx, &rows, `SELECT id, parent, x, y, elevation, priority,
		contour_index, local_watershed, inherited_watershed, flow
		FROM river_nodes ORDER BY id`); err != nil {
		return nil, err
	}

	net := hydrology.New()
	for _, r := range rows {
		opt := hydrology.WithContourIndex(r.ContourIndex)
		if r.Parent.Valid {
			opt = hydrology.WithParent(int(r.Parent.Int64))
		}
		id, err := net.AddNode(r2.Point{X: r.X, Y: r.Y}, r.Elevation, r.Priority, opt)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", r.ID, err)
		}
		if id != r.ID {
			return nil, fmt.Errorf("%w: node %d stored as %d", ErrCorrupt, id, r.ID)
		}
		n := net.Node(id)
		n.Priority = r.Priority
		n.ContourIndex = r.ContourIndex
		n.LocalWatershed = r.LocalWatershed
		n.InheritedWatershed = r.InheritedWatershed
		n.Flow = r.Flow
	}

	var paths []pathRow
	if err := s.conn.SelectContext(ctx, &paths,
		"SELECT node_id, river, seq, x, y FROM river_paths ORDER BY node_id, river, seq"); err != nil {
		return nil, err
	}
	for _, p := range paths {
		if !net.Has(p.NodeID) {
			return nil, fmt.Errorf("%w: river path of node %d", ErrCorrupt, p.NodeID)
		}
		n := net.Node(p.NodeID)
		for len(n.Rivers) <= p.River {
			n.Rivers = append(n.Rivers, nil)
		}
		n.Rivers[p.River] = append(n.Rivers[p.River], r2.Point{X: p.X, Y: p.Y})
	}
	return net, nil
}

func (s *Store) loadHoneycomb(ctx context.Context, sh *shore.Shore, net *hydrology.Network) (*honeycomb.Honeycomb, error) {
	var qRows []qRow
	if err := s.conn.SelectContext(ctx, &qRows,
		"SELECT id, vertex, x, y, elevation, nodes_json FROM qs ORDER BY id"); err != nil {
		return nil, err
	}
	var cellRows []cellRow
	if err := s.conn.SelectContext(ctx, &cellRows,
		"SELECT node_id, seq, edge_id, reversed FROM cells ORDER BY node_id, seq"); err != nil {
		return nil, err
	}
	if len(cellRows) == 0 {
		return nil, nil
	}

	qs := make([]*honeycomb.Q, len(qRows))
	for i, r := range qRows {
		if r.ID != i {
			return nil, fmt.Errorf("%w: q %d stored as %d", ErrCorrupt, i, r.ID)
		}
		q, err := r.q()
		if err != nil {
			return nil, err
		}
		qs[i] = q
	}

	var edgeRows []edgeRow
	if err := s.conn.SelectContext(ctx, &edgeRows, `SELECT id, ridge, q0, q1, has_river, is_shore,
		seg_from, seg_to FROM edges ORDER BY id`); err != nil {
		return nil, err
	}
	edges := make([]*honeycomb.Edge, len(edgeRows))
	for i, r := range edgeRows {
		if r.ID != i || !inRange(r.Q0, len(qs)) || !inRange(r.Q1, len(qs)) {
			return nil, fmt.Errorf("%w: edge %d", ErrCorrupt, r.ID)
		}
		edges[i] = &honeycomb.Edge{
			ID:       r.ID,
			Ridge:    r.Ridge,
			Q0:       qs[r.Q0],
			Q1:       qs[r.Q1],
			HasRiver: r.HasRiver,
			IsShore:  r.IsShore,
			Segment:  honeycomb.ShoreSegment{From: r.SegFrom, To: r.SegTo},
		}
	}

	cells := make([][]honeycomb.CellEdge, net.Len())
	for _, r := range cellRows {
		if !inRange(r.NodeID, len(cells)) || !inRange(r.EdgeID, len(edges)) || r.Seq != len(cells[r.NodeID]) {
			return nil, fmt.Errorf("%w: cell %d edge %d", ErrCorrupt, r.NodeID, r.Seq)
		}
		cells[r.NodeID] = append(cells[r.NodeID], honeycomb.CellEdge{Edge: edges[r.EdgeID], Reversed: r.Reversed})
	}

	var downRows []downstreamRow
	if err := s.conn.SelectContext(ctx, &downRows,
		"SELECT node_id, edge_id FROM downstream_edges ORDER BY node_id"); err != nil {
		return nil, err
	}
	downstream := make([]*honeycomb.Edge, net.Len())
	for _, r := range downRows {
		if !inRange(r.NodeID, len(downstream)) || !inRange(r.EdgeID, len(edges)) {
			return nil, fmt.Errorf("%w: outflow of cell %d", ErrCorrupt, r.NodeID)
		}
		downstream[r.NodeID] = edges[r.EdgeID]
	}

	return honeycomb.FromParts(sh, net, qs, edges, cells, downstream), nil
}

func inRange(i, n int) bool { return i >= 0 && i < n }
