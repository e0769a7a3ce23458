package honeycomb_test

import (
	"context"
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/growth"
	"github.com/katalvlaran/hydroterra/honeycomb"
	"github.com/katalvlaran/hydroterra/planar"
	"github.com/katalvlaran/hydroterra/raster"
	"github.com/katalvlaran/hydroterra/shore"
)

// ExampleBuild grows rivers on a round island and cuts the island into one
// cell per river node. The cells cover the island exactly.
func ExampleBuild() {
	pts := make([]r2.Point, 64)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(len(pts))
		pts[i] = r2.Point{X: 40000 * math.Cos(a), Y: 40000 * math.Sin(a)}
	}
	island, _ := shore.New(pts)

	params := growth.DefaultParameters()
	params.NumMajorRivers = 4
	net, err := growth.Grow(context.Background(), island, raster.Constant(128), params)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	h, err := honeycomb.Build(context.Background(), island, net)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	total := 0.0
	for id := 0; id < h.NumCells(); id++ {
		total += h.CellArea(id)
	}
	area := planar.Area(island.Contour())
	fmt.Println("one cell per node:", h.NumCells() == net.Len())
	fmt.Println("covers island:", math.Abs(total-area)/area < 1e-6)

	// Output:
	// one cell per node: true
	// covers island: true
}
