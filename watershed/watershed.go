package watershed

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/katalvlaran/hydroterra/hydrology"
)

// ErrCellCount indicates an area source that does not match the network.
var ErrCellCount = errors.New("watershed: cell count differs from node count")

const (
	// FlowCoefficient and FlowExponent relate drainage area to discharge.
	FlowCoefficient = 0.42
	FlowExponent    = 0.69
)

// Areas supplies one cell area per node id.
type Areas interface {
	NumCells() int
	CellArea(id int) float64
}

// Compute fills the watershed and flow fields of every node in net.
func Compute(ctx context.Context, net *hydrology.Network, cells Areas) error {
	if cells.NumCells() != net.Len() {
		return fmt.Errorf("%w: %d cells, %d nodes", ErrCellCount, cells.NumCells(), net.Len())
	}

	_, err := net.Walk(
		hydrology.WithContext(ctx),
		hydrology.WithOnExit(func(id int) error {
			node := net.Node(id)
			node.LocalWatershed = cells.CellArea(id)
			node.InheritedWatershed = node.LocalWatershed
			for _, c := range net.Children(id) {
				node.InheritedWatershed += net.Node(c).InheritedWatershed
			}
			node.Flow = Flow(node.InheritedWatershed)
			return nil
		}),
	)
	return err
}

// Flow is the discharge out of a cell draining area.
func Flow(area float64) float64 {
	return FlowCoefficient * math.Pow(area, FlowExponent)
}

// TraceRivers sets Rivers on every source node and clears it elsewhere.
// At a junction the river draining the larger inherited area (lower id on
// ties) keeps going; the others end there. Run it after Compute.
func TraceRivers(net *hydrology.Network) {
	for _, n := range net.Nodes() {
		n.Rivers = nil
	}
	for _, n := range net.Nodes() {
		if len(net.Children(n.ID)) > 0 {
			continue
		}
		path := []r2.Point{n.Position}
		cur := n.ID
		for {
			parent, ok := net.Parent(cur)
			if !ok {
				break
			}
			path = append(path, net.Position(parent))
			if mainstem(net, parent) != cur {
				break
			}
			cur = parent
		}
		n.Rivers = [][]r2.Point{path}
	}
}

// mainstem is the child of id draining the largest area.
func mainstem(net *hydrology.Network, id int) int {
	best, bestArea := -1, math.Inf(-1)
	for _, c := range net.Children(id) {
		if a := net.Node(c).InheritedWatershed; a > bestArea {
			best, bestArea = c, a
		}
	}
	return best
}
