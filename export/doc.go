// Package export renders a generated model for GIS tools and for a quick
// look in the browser.
//
// What:
//
//   - FeatureCollection / WriteGeoJSON: one GeoJSON document holding the
//     shore polygon, every cell polygon (with its edge classification
//     counts and outflow edge), the river polylines (or the raw parent ->
//     child links when no rivers were traced) and every river node.
//   - WriteSVG: a flat map. Land is filled, cells are outlined and rivers
//     are stroked with a width that grows with discharge.
//
// Every feature carries a "kind" property: shore, cell, river, link or
// node. Coordinates are written untouched, in the model's planar units.
//
// Options (WriteSVG):
//
//   - WithWidth(px): image width; height follows the shore's aspect ratio.
//   - WithCells(bool), WithNodes(bool): toggle the cell and node layers.
package export
