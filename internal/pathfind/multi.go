package pathfind

import "context"

// MultiTarget runs a breadth-first search from src to exhaustion and
// returns the parent map covering every reachable node. For any reachable
// dst, Reconstruct(dst, pm) has the same length as SingleTarget(src, dst).
func MultiTarget(ctx context.Context, g Graph, src NodeID) (*ParentMap, error) {
	if err := requireNodes(ctx, g, src); err != nil {
		return nil, err
	}

	parents := NewParentMap(src)
	queue := newFrontier(src)

	for queue.len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := step(ctx, g.ForwardNeighbors, queue, parents); err != nil {
			return nil, err
		}
	}

	return parents, nil
}
