// Package shore models the coastline as a closed counterclockwise polygon
// and answers the geometric questions the river network needs: which side
// of the coast a point is on, how far it is from the water, and which
// shoreline vertices are nearby.
//
// What:
//
//   - New normalises the winding to counterclockwise and drops a repeated
//     closing vertex.
//   - DistanceToShore is signed: positive inland, negative at sea.
//   - IsOnLand is DistanceToShore >= 0.
//   - ClosestN uses an R-tree over the shoreline vertices (package spatial).
//   - FromGeoJSON reads the outer ring of the first polygon found in a
//     GeoJSON document; Blob synthesises an island from OpenSimplex noise.
//
// Indices are cyclic: At(Len()) is At(0).
//
// Errors:
//
//   - ErrTooFewPoints: fewer than three distinct vertices.
//   - ErrNoPolygon: a GeoJSON document without a polygon.
package shore
