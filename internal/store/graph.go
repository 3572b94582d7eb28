package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/models"
	"github.com/wikipath/wikipath/internal/pathfind"
)

// Neighbor queries. The LEFT JOIN yields one row with a NULL neighbor for an
// article without links and no rows at all for an unknown id, so a single
// round trip answers both existence and adjacency.
const (
	forwardNeighborsSQL = `SELECT l.dst FROM articles a
		LEFT JOIN links l ON l.src = a.id
		WHERE a.id = $1
		ORDER BY l.dst`

	reverseNeighborsSQL = `SELECT l.src FROM articles a
		LEFT JOIN links l ON l.dst = a.id
		WHERE a.id = $1
		ORDER BY l.src`
)

// GraphStore opens consistent read views of the link graph.
type GraphStore struct {
	Base
}

// NewGraphStore creates a GraphStore with the given shared base.
func NewGraphStore(base Base) *GraphStore {
	return &GraphStore{Base: base}
}

// Snapshot opens a read-only view of the graph pinned to the current
// committed state. The caller must Close it.
func (s *GraphStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	tx, err := s.beginSnapshotTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening graph snapshot: %w", err)
	}

	return &Snapshot{tx: tx, log: s.Log}, nil
}

// Snapshot is a pathfind.Graph backed by one REPEATABLE READ transaction.
// It is not safe for concurrent use.
type Snapshot struct {
	tx  pgx.Tx
	log *logrus.Logger
}

var _ pathfind.Graph = (*Snapshot)(nil)

// HasNode implements pathfind.Graph.
func (s *Snapshot) HasNode(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := s.tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking article %d: %w", id, err)
	}

	return exists, nil
}

// ForwardNeighbors implements pathfind.Graph.
func (s *Snapshot) ForwardNeighbors(ctx context.Context, id int64) ([]int64, error) {
	return s.neighbors(ctx, forwardNeighborsSQL, id)
}

// ReverseNeighbors implements pathfind.Graph.
func (s *Snapshot) ReverseNeighbors(ctx context.Context, id int64) ([]int64, error) {
	return s.neighbors(ctx, reverseNeighborsSQL, id)
}

func (s *Snapshot) neighbors(ctx context.Context, query string, id int64) ([]int64, error) {
	rows, err := s.tx.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying neighbors of %d: %w", id, err)
	}
	defer rows.Close()

	var (
		ids  []int64
		seen bool
	)

	for rows.Next() {
		seen = true

		var n *int64
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning neighbor of %d: %w", id, err)
		}

		if n != nil {
			ids = append(ids, *n)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating neighbors of %d: %w", id, err)
	}

	if !seen {
		return nil, fmt.Errorf("article %d: %w", id, models.ErrNodeNotFound)
	}

	return ids, nil
}

// TitleToID resolves a title to the one article carrying it.
func (s *Snapshot) TitleToID(ctx context.Context, title string) (int64, error) {
	rows, err := s.tx.Query(ctx, `SELECT id FROM articles WHERE title = $1 ORDER BY id LIMIT 2`, title)
	if err != nil {
		return 0, fmt.Errorf("resolving title %q: %w", title, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, fmt.Errorf("collecting ids for title %q: %w", title, err)
	}

	switch len(ids) {
	case 0:
		return 0, fmt.Errorf("%q: %w", title, models.ErrTitleNotFound)
	case 1:
		return ids[0], nil
	default:
		return 0, fmt.Errorf("%q: %w", title, models.ErrAmbiguousTitle)
	}
}

// Titles returns the titles of the given ids. Unknown ids are absent from
// the result.
func (s *Snapshot) Titles(ctx context.Context, ids []int64) (map[int64]string, error) {
	titles := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	rows, err := s.tx.Query(ctx, `SELECT id, title FROM articles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			title string
		)

		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}

		titles[id] = title
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating titles: %w", err)
	}

	return titles, nil
}

// Close commits the read-only transaction, rolling back if the commit fails.
func (s *Snapshot) Close(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil {
		s.tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after failed commit.
		s.log.WithError(err).Warn("closing graph snapshot")

		return fmt.Errorf("closing graph snapshot: %w", err)
	}

	return nil
}
