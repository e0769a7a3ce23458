package persistence

const formatVersion = "1"

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS parameters (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	edge_length REAL NOT NULL,
	eta REAL NOT NULL,
	sigma REAL NOT NULL,
	pa REAL NOT NULL,
	pc REAL NOT NULL,
	max_tries INTEGER NOT NULL,
	river_angle_dev REAL NOT NULL,
	zeta REAL NOT NULL,
	slope_rate REAL NOT NULL,
	num_major_rivers INTEGER NOT NULL,
	seed INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS shore (
	idx INTEGER PRIMARY KEY,
	x REAL NOT NULL,
	y REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS river_nodes (
	id INTEGER PRIMARY KEY,
	parent INTEGER,
	x REAL NOT NULL,
	y REAL NOT NULL,
	elevation REAL NOT NULL,
	priority INTEGER NOT NULL,
	contour_index INTEGER NOT NULL,
	local_watershed REAL NOT NULL,
	inherited_watershed REAL NOT NULL,
	flow REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS river_paths (
	node_id INTEGER NOT NULL,
	river INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	PRIMARY KEY (node_id, river, seq)
);

CREATE TABLE IF NOT EXISTS qs (
	id INTEGER PRIMARY KEY,
	vertex INTEGER NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	elevation REAL NOT NULL,
	nodes_json TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS edges (
	id INTEGER PRIMARY KEY,
	ridge INTEGER NOT NULL,
	q0 INTEGER NOT NULL,
	q1 INTEGER NOT NULL,
	has_river INTEGER NOT NULL,
	is_shore INTEGER NOT NULL,
	seg_from INTEGER NOT NULL,
	seg_to INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cells (
	node_id INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	edge_id INTEGER NOT NULL,
	reversed INTEGER NOT NULL,
	PRIMARY KEY (node_id, seq)
);

CREATE TABLE IF NOT EXISTS downstream_edges (
	node_id INTEGER PRIMARY KEY,
	edge_id INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_river_nodes_parent ON river_nodes(parent);
`

// tables lists every table in the order Save clears them.
var tables = []string{
	"meta", "parameters", "shore", "river_nodes", "river_paths",
	"qs", "edges", "cells", "downstream_edges",
}
