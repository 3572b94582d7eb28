package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wikipath/wikipath/internal/models"
)

// maxBulkBatchSize limits the number of rows per INSERT statement to avoid
// exceeding PostgreSQL's parameter limit (65535 params).
const maxBulkBatchSize = 500

// BulkStore loads articles and links in bulk.
type BulkStore struct {
	Base
}

// NewBulkStore creates a BulkStore with the given shared base.
func NewBulkStore(base Base) *BulkStore {
	return &BulkStore{Base: base}
}

// batches calls fn with consecutive [start, end) windows of at most
// maxBulkBatchSize over n items.
func batches(n int, fn func(start, end int) error) error {
	for i := 0; i < n; i += maxBulkBatchSize {
		if err := fn(i, min(i+maxBulkBatchSize, n)); err != nil {
			return err
		}
	}

	return nil
}

// placeholders renders "($1, $2), ($3, $4), ..." for rows of width columns.
func placeholders(rows, width int) string {
	parts := make([]string, rows)
	cols := make([]string, width)

	for r := range rows {
		for c := range width {
			cols[c] = fmt.Sprintf("$%d", r*width+c+1)
		}

		parts[r] = "(" + strings.Join(cols, ", ") + ")"
	}

	return strings.Join(parts, ", ")
}

// dedupeArticles keeps the last request per id, in first-seen order.
func dedupeArticles(articles []models.CreateArticleRequest) []models.CreateArticleRequest {
	pos := make(map[int64]int, len(articles))
	out := make([]models.CreateArticleRequest, 0, len(articles))

	for _, a := range articles {
		if i, ok := pos[a.ID]; ok {
			out[i] = a

			continue
		}

		pos[a.ID] = len(out)
		out = append(out, a)
	}

	return out
}

// BulkUpsertArticles inserts or renames articles in a single transaction
// using multi-row INSERT ... ON CONFLICT. Returns the number of rows written.
func (s *BulkStore) BulkUpsertArticles(ctx context.Context, articles []models.CreateArticleRequest) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	// A statement may not update the same row twice.
	articles = dedupeArticles(articles)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("bulk upsert articles: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	total := 0

	err = batches(len(articles), func(start, end int) error {
		batch := articles[start:end]
		args := make([]any, 0, len(batch)*2)

		for _, a := range batch {
			args = append(args, a.ID, a.Title)
		}

		sql := `INSERT INTO articles (id, title)
			VALUES ` + placeholders(len(batch), 2) + `
			ON CONFLICT (id) DO UPDATE
			SET title = EXCLUDED.title,
				updated_at = NOW()
			WHERE articles.title IS DISTINCT FROM EXCLUDED.title`

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("bulk upserting articles batch: %w", err)
		}

		total += int(tag.RowsAffected())

		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing bulk upsert articles: %w", err)
	}

	s.Log.WithField("count", total).Debug("bulk upserted articles")

	return total, nil
}

// BulkInsertLinks adds links in a single transaction. Links already present
// are skipped, so the return value counts only new links. Every endpoint
// must already exist as an article.
func (s *BulkStore) BulkInsertLinks(ctx context.Context, links []models.CreateLinkRequest) (int, error) {
	if len(links) == 0 {
		return 0, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("bulk insert links: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	// Verify all referenced articles exist.
	idSet := make(map[int64]struct{})
	for _, l := range links {
		idSet[l.Src] = struct{}{}
		idSet[l.Dst] = struct{}{}
	}

	expected := make([]int64, 0, len(idSet))
	for id := range idSet {
		expected = append(expected, id)
	}

	rows, err := tx.Query(ctx, `SELECT id FROM articles WHERE id = ANY($1)`, expected)
	if err != nil {
		return 0, fmt.Errorf("verifying article existence: %w", err)
	}

	found := make(map[int64]struct{}, len(expected))

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning article id: %w", err)
		}

		found[id] = struct{}{}
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating article ids: %w", err)
	}

	if len(found) != len(idSet) {
		var missing []int64
		for id := range idSet {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}

		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })

		return 0, fmt.Errorf("articles %v referenced by links: %w", missing, models.ErrNodeNotFound)
	}

	total := 0

	err = batches(len(links), func(start, end int) error {
		batch := links[start:end]
		args := make([]any, 0, len(batch)*2)

		for _, l := range batch {
			args = append(args, l.Src, l.Dst)
		}

		sql := `INSERT INTO links (src, dst)
			VALUES ` + placeholders(len(batch), 2) + `
			ON CONFLICT (src, dst) DO NOTHING`

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("bulk inserting links batch: %w", err)
		}

		total += int(tag.RowsAffected())

		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing bulk insert links: %w", err)
	}

	s.Log.WithField("count", total).Debug("bulk inserted links")

	return total, nil
}
