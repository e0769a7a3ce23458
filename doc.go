// Package hydroterra generates island terrain the way rivers would carve
// it: a river network is grown inland from the coast, and the land is then
// cut into one drainage cell per river node.
//
// The work is split into small packages, each usable on its own:
//
//	planar/      segment intersection, point-segment distance, polygon area
//	spatial/     R-tree point index (radius, nearest, k-nearest)
//	shore/       the coastline: signed distance, land test, constructors
//	raster/      slope samplers (constant, grid, OpenSimplex noise)
//	hydrology/   the river forest: node arena, stream order, traversal
//	growth/      river growth: mouths, candidate selection, expansion
//	partition/   Voronoi diagram with index arrays
//	honeycomb/   cells clipped to the shore, shared corners and edges
//	watershed/   drainage area, discharge and river polylines
//	persistence/ SQLite storage of a whole model
//	export/      GeoJSON and SVG output
//	config/      YAML run configuration
//
// cmd/hydroterra wires them into a command that generates, stores and
// exports a model.
//
// Data flows one way:
//
//	shore -> growth -> hydrology.Network -> partition -> honeycomb -> watershed
//
// Everything is deterministic for a given seed.
package hydroterra
