package pathfind

import (
	"context"
	"fmt"
)

// frontier is a FIFO queue of discovered nodes awaiting expansion.
type frontier struct {
	items []NodeID
	head  int
}

func newFrontier(start NodeID) *frontier {
	return &frontier{items: []NodeID{start}}
}

func (f *frontier) push(id NodeID) { f.items = append(f.items, id) }

func (f *frontier) len() int { return len(f.items) - f.head }

func (f *frontier) peek() NodeID { return f.items[f.head] }

// pop removes and returns the oldest node. The backing array is compacted
// once the consumed prefix dominates it.
func (f *frontier) pop() NodeID {
	id := f.items[f.head]
	f.head++

	if f.head > 1024 && f.head*2 > len(f.items) {
		f.items = append(f.items[:0], f.items[f.head:]...)
		f.head = 0
	}

	return id
}

// neighborFunc is one direction of a Graph.
type neighborFunc func(ctx context.Context, id NodeID) ([]NodeID, error)

// step dequeues one node, looks up its neighbors once, and enqueues every
// neighbor not yet in parents.
func step(ctx context.Context, neighbors neighborFunc, queue *frontier, parents *ParentMap) error {
	id := queue.pop()

	nbrs, err := neighbors(ctx, id)
	if err != nil {
		return fmt.Errorf("expanding node %d: %w", id, err)
	}

	for _, n := range nbrs {
		if parents.Discover(n, id) {
			queue.push(n)
		}
	}

	return nil
}
