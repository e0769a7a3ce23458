package honeycomb

import (
	"github.com/katalvlaran/hydroterra/hydrology"
	"github.com/katalvlaran/hydroterra/raster"
)

// RidgeElevations sets the Elevation of every Q. A Q bordering fewer than
// two cells lies on the shore and gets 0. Otherwise the Q climbs from the
// highest bordering node: max(node elevation) + d * rate * slope(q) / 255,
// with d the distance to the first bordering node.
func RidgeElevations(h *Honeycomb, net *hydrology.Network, slope raster.Sampler, rate float64) {
	for _, q := range h.qs {
		q.Elevation = ridgeElevation(q, net, slope, rate)
	}
}

func ridgeElevation(q *Q, net *hydrology.Network, slope raster.Sampler, rate float64) float64 {
	if len(q.Nodes) < 2 {
		return 0
	}
	highest := net.Node(q.Nodes[0]).Elevation
	for _, id := range q.Nodes[1:] {
		if e := net.Node(id).Elevation; e > highest {
			highest = e
		}
	}
	d := q.Position.Sub(net.Position(q.Nodes[0])).Norm()
	return highest + d*rate*slope.Sample(q.Position)/raster.MaxValue
}
