// Package raster provides slope rasters: scalar fields over the map plane
// that return values in [0, 255].
//
// What:
//
//   - Sampler is the single-method contract consumed by growth (river
//     slope) and honeycomb (terrain slope).
//   - Constant returns one value everywhere.
//   - Grid is a rectangular byte grid placed on the plane with an origin
//     and a cell resolution; sampling picks the nearest cell and clamps to
//     the border.
//   - Noise is layered OpenSimplex noise rescaled to [0, 255].
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrBadResolution: resolution is not strictly positive.
package raster
