// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"

	"github.com/wikipath/wikipath/internal/pathfind"
)

// Resolver maps between titles and article ids.
type Resolver interface {
	TitleToID(ctx context.Context, title string) (int64, error)
	Titles(ctx context.Context, ids []int64) (map[int64]string, error)
}

// Snapshot is a consistent read view of the article graph. Lookups through
// one Snapshot never observe concurrent writes.
type Snapshot interface {
	pathfind.Graph
	Resolver
	Close(ctx context.Context) error
}

// SnapshotSource opens snapshots, one per query.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// SnapshotFunc adapts a function to SnapshotSource.
type SnapshotFunc func(ctx context.Context) (Snapshot, error)

// Snapshot implements SnapshotSource.
func (f SnapshotFunc) Snapshot(ctx context.Context) (Snapshot, error) { return f(ctx) }
