package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/wikipath/wikipath/internal/models"
	"github.com/wikipath/wikipath/internal/pathfind"
)

// MemorySource serves snapshots of an in-memory graph. It backs offline
// queries against a dump file and the service tests.
type MemorySource struct {
	graph  *pathfind.MemoryGraph
	titles map[int64]string
	byName map[string][]int64
}

var _ SnapshotSource = (*MemorySource)(nil)

// NewMemorySource serves g with the given id -> title index. Both are
// owned by the source afterwards.
func NewMemorySource(g *pathfind.MemoryGraph, titles map[int64]string) *MemorySource {
	byName := make(map[string][]int64, len(titles))
	for id, t := range titles {
		byName[t] = append(byName[t], id)
	}

	for _, ids := range byName {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	return &MemorySource{graph: g, titles: titles, byName: byName}
}

// Snapshot implements SnapshotSource.
func (m *MemorySource) Snapshot(_ context.Context) (Snapshot, error) {
	return &memorySnapshot{MemoryGraph: m.graph.Snapshot(), src: m}, nil
}

type memorySnapshot struct {
	*pathfind.MemoryGraph
	src *MemorySource
}

func (s *memorySnapshot) TitleToID(_ context.Context, title string) (int64, error) {
	ids := s.src.byName[title]

	switch len(ids) {
	case 0:
		return 0, fmt.Errorf("%q: %w", title, models.ErrTitleNotFound)
	case 1:
		return ids[0], nil
	default:
		return 0, fmt.Errorf("%q: %w", title, models.ErrAmbiguousTitle)
	}
}

func (s *memorySnapshot) Titles(_ context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	for _, id := range ids {
		if t, ok := s.src.titles[id]; ok {
			out[id] = t
		}
	}

	return out, nil
}

func (s *memorySnapshot) Close(context.Context) error { return nil }
