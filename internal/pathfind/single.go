package pathfind

import "context"

// SingleTarget returns a shortest path from src to dst, or nil when dst is
// unreachable. The search stops as soon as dst is discovered, since
// discovery already fixes its distance.
func SingleTarget(ctx context.Context, g Graph, src, dst NodeID) ([]NodeID, error) {
	if err := requireNodes(ctx, g, src, dst); err != nil {
		return nil, err
	}

	parents := NewParentMap(src)
	queue := newFrontier(src)

	for queue.len() > 0 && !parents.Contains(dst) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := step(ctx, g.ForwardNeighbors, queue, parents); err != nil {
			return nil, err
		}
	}

	if !parents.Contains(dst) {
		return nil, nil
	}

	return pathFrom(dst, parents)
}
