// Package persistence stores a generated terrain model in a SQLite file.
//
// What:
//
//   - Store.Save writes the growth parameters, shore, river network and
//     honeycomb in one transaction. Every table is cleared first, so a file
//     always holds exactly one model.
//   - Store.Load reads it back. Node ids, parent links, priorities, edge
//     flags, shore segments and each cell's edge order survive unchanged;
//     shared Qs and Edges are shared again after loading, and the Voronoi
//     vertex and ridge keys are kept so honeycomb.CachesFrom can rebuild the
//     deduplication maps.
//
// Tables:
//
//	meta              key/value pairs (model id, format version)
//	parameters        one row of growth.Parameters
//	shore             contour vertices in counterclockwise order
//	river_nodes       one row per node; parent is NULL for mouths
//	river_paths       river polyline points per source node
//	qs                cell corners; nodes_json lists bordering cells
//	edges             cell boundary pieces with ridge key and flags
//	cells             per-cell edge order and walking direction
//	downstream_edges  outflow edge of every non-mouth cell
//
// The driver is modernc.org/sqlite (pure Go) behind jmoiron/sqlx.
//
// Errors:
//
//   - ErrNoModel: Load on a file that was never saved to.
//   - ErrCorrupt: references between rows that do not resolve.
package persistence
