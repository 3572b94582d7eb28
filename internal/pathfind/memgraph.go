package pathfind

import (
	"context"
	"fmt"
	"sync"

	"github.com/tidwall/btree"

	"github.com/wikipath/wikipath/internal/models"
)

type idSet = btree.BTreeG[NodeID]

func newIDSet() *idSet {
	return btree.NewBTreeG(func(a, b NodeID) bool { return a < b })
}

// MemoryGraph is an in-memory Graph. Adjacency is kept in ordered sets so
// neighbor lookups come back ascending without sorting. It is safe for
// concurrent use; take a Snapshot before searching a graph that may still
// be modified.
type MemoryGraph struct {
	mu    sync.RWMutex
	out   map[NodeID]*idSet
	in    map[NodeID]*idSet
	edges int
}

var _ Graph = (*MemoryGraph)(nil)

// NewMemoryGraph returns an empty graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		out: make(map[NodeID]*idSet),
		in:  make(map[NodeID]*idSet),
	}
}

// AddNode adds id with no links. Adding an existing node is a no-op.
func (g *MemoryGraph) AddNode(id NodeID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(id)
}

func (g *MemoryGraph) addNodeLocked(id NodeID) {
	if _, ok := g.out[id]; ok {
		return
	}

	g.out[id] = newIDSet()
	g.in[id] = newIDSet()
}

// AddEdge adds the link from -> to, creating either node if needed.
// Duplicate links collapse; self-links are kept.
func (g *MemoryGraph) AddEdge(from, to NodeID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(from)
	g.addNodeLocked(to)

	if _, replaced := g.out[from].Set(to); !replaced {
		g.edges++
	}

	g.in[to].Set(from)
}

// NodeCount returns the number of nodes.
func (g *MemoryGraph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.out)
}

// EdgeCount returns the number of distinct links.
func (g *MemoryGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// Snapshot returns a frozen copy of g. The adjacency sets are copied on
// write, so later changes to g are not visible through the snapshot.
func (g *MemoryGraph) Snapshot() *MemoryGraph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := &MemoryGraph{
		out:   make(map[NodeID]*idSet, len(g.out)),
		in:    make(map[NodeID]*idSet, len(g.in)),
		edges: g.edges,
	}

	for id, set := range g.out {
		snap.out[id] = set.Copy()
	}

	for id, set := range g.in {
		snap.in[id] = set.Copy()
	}

	return snap
}

// HasNode implements Graph.
func (g *MemoryGraph) HasNode(_ context.Context, id NodeID) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.out[id]

	return ok, nil
}

// ForwardNeighbors implements Graph.
func (g *MemoryGraph) ForwardNeighbors(_ context.Context, id NodeID) ([]NodeID, error) {
	return g.neighbors(g.out, id)
}

// ReverseNeighbors implements Graph.
func (g *MemoryGraph) ReverseNeighbors(_ context.Context, id NodeID) ([]NodeID, error) {
	return g.neighbors(g.in, id)
}

func (g *MemoryGraph) neighbors(adj map[NodeID]*idSet, id NodeID) ([]NodeID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	set, ok := adj[id]
	if !ok {
		return nil, fmt.Errorf("node %d: %w", id, models.ErrNodeNotFound)
	}

	ids := make([]NodeID, 0, set.Len())
	set.Scan(func(n NodeID) bool {
		ids = append(ids, n)

		return true
	})

	return ids, nil
}
