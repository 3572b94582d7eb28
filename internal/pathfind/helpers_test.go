package pathfind_test

import (
	"github.com/wikipath/wikipath/internal/pathfind"
)

// buildGraph returns a MemoryGraph holding nodes plus every edge endpoint.
func buildGraph(nodes []pathfind.NodeID, edges [][2]pathfind.NodeID) *pathfind.MemoryGraph {
	g := pathfind.NewMemoryGraph()
	for _, n := range nodes {
		g.AddNode(n)
	}

	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}

	return g
}

// treeGraph is nodes {0..5} with edges 0→1, 0→2, 1→3, 2→4, 3→5.
func treeGraph() *pathfind.MemoryGraph {
	return buildGraph(
		[]pathfind.NodeID{0, 1, 2, 3, 4, 5},
		[][2]pathfind.NodeID{{0, 1}, {0, 2}, {1, 3}, {2, 4}, {3, 5}},
	)
}
