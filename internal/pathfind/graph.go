// Package pathfind finds shortest click paths in a directed article graph.
//
// Every search is an unweighted breadth-first search over a Graph port and
// records how each node was first reached in a ParentMap. Paths are read
// back out of a ParentMap with Reconstruct. Three variants are provided:
//
//   - SingleTarget stops as soon as the destination is discovered.
//   - MultiTarget exhausts the graph from one source so a single ParentMap
//     can answer many destinations.
//   - Bidirectional grows a forward frontier from the source and a reverse
//     frontier from the destination and joins them where they meet.
//
// Searches are synchronous and keep all state local to the call. A Graph
// must present a stable snapshot for the duration of one search.
package pathfind

import (
	"context"
	"errors"
	"fmt"

	"github.com/wikipath/wikipath/internal/models"
)

// NodeID identifies an article.
type NodeID = int64

// Graph supplies neighbor sets for nodes in both directions.
//
// Neighbor slices hold distinct ids in ascending order. Lookups for an id
// that names no node fail with models.ErrNodeNotFound.
type Graph interface {
	// ForwardNeighbors returns the nodes id links to.
	ForwardNeighbors(ctx context.Context, id NodeID) ([]NodeID, error)
	// ReverseNeighbors returns the nodes that link to id.
	ReverseNeighbors(ctx context.Context, id NodeID) ([]NodeID, error)
	// HasNode reports whether id names an existing node.
	HasNode(ctx context.Context, id NodeID) (bool, error)
}

// ErrCorruptParentMap is returned when a search cannot reconstruct a path
// from a parent map it built itself.
var ErrCorruptParentMap = errors.New("pathfind: corrupt parent map")

// requireNodes fails with models.ErrNodeNotFound for the first id that does
// not exist in g.
func requireNodes(ctx context.Context, g Graph, ids ...NodeID) error {
	for _, id := range ids {
		ok, err := g.HasNode(ctx, id)
		if err != nil {
			return fmt.Errorf("checking node %d: %w", id, err)
		}

		if !ok {
			return fmt.Errorf("node %d: %w", id, models.ErrNodeNotFound)
		}
	}

	return nil
}
