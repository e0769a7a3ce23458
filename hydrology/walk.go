package hydrology

import "fmt"

// walker carries traversal state for Walk.
type walker struct {
	net  *Network
	opts WalkOptions
	res  *WalkResult
}

// Walk traverses every river system depth-first, mouths in creation order
// and children in insertion order. Hook errors and context cancellation
// abort the walk and clear Order.
//
// OnVisit runs before a node's children, OnExit after them; Order records
// nodes as they finish, so every child precedes its parent.
//
// Complexity:
//
//   - Time:   O(n) plus the cost of the hooks.
//   - Memory: O(n) for Order and Depth, O(h) recursion for the tallest tree.
func (n *Network) Walk(opts ...WalkOption) (*WalkResult, error) {
	wopts := DefaultWalkOptions()
	for _, fn := range opts {
		fn(&wopts)
	}

	res := &WalkResult{
		Order: make([]int, 0, len(n.nodes)),
		Depth: make([]int, len(n.nodes)),
	}
	w := &walker{net: n, opts: wopts, res: res}

	for _, m := range n.mouths {
		if err := w.traverse(m, 0); err != nil {
			res.Order = nil
			return res, err
		}
	}
	return res, nil
}

func (w *walker) traverse(id, depth int) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	w.res.Depth[id] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			return fmt.Errorf("hydrology: OnVisit hook for node %d: %w", id, err)
		}
	}

	for _, c := range w.net.nodes[id].children {
		if err := w.traverse(c, depth+1); err != nil {
			return err
		}
	}

	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(id); err != nil {
			return fmt.Errorf("hydrology: OnExit hook for node %d: %w", id, err)
		}
	}

	w.res.Order = append(w.res.Order, id)
	return nil
}

// DepthFirstPostorder returns every node id such that each node appears
// after all of its upstream nodes.
func (n *Network) DepthFirstPostorder() []int {
	res, _ := n.Walk()
	return res.Order
}
