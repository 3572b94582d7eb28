package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wikipath/wikipath/internal/models"
)

// maxTitleMatches caps FindByTitle results.
const maxTitleMatches = 100

// ArticleStore reads individual articles and graph totals.
type ArticleStore struct {
	Base
}

// NewArticleStore creates an ArticleStore with the given shared base.
func NewArticleStore(base Base) *ArticleStore {
	return &ArticleStore{Base: base}
}

// GetArticle retrieves a single article by id.
func (s *ArticleStore) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var a models.Article

	err := s.Pool.QueryRow(ctx, `SELECT id, title FROM articles WHERE id = $1`, id).Scan(&a.ID, &a.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNodeNotFound
		}

		return nil, fmt.Errorf("getting article: %w", err)
	}

	return &a, nil
}

// FindByTitle returns every article carrying title, ordered by id.
func (s *ArticleStore) FindByTitle(ctx context.Context, title string) ([]models.Article, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		`SELECT id, title FROM articles WHERE title = $1 ORDER BY id LIMIT $2`,
		title, maxTitleMatches)
	if err != nil {
		return nil, fmt.Errorf("finding articles by title: %w", err)
	}

	articles, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Article])
	if err != nil {
		return nil, fmt.Errorf("collecting articles: %w", err)
	}

	return articles, nil
}

// Stats counts articles and links in one read-only transaction.
func (s *ArticleStore) Stats(ctx context.Context) (*models.Stats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var st models.Stats

	err = tx.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM articles), (SELECT COUNT(*) FROM links)`,
	).Scan(&st.Articles, &st.Links)
	if err != nil {
		return nil, fmt.Errorf("counting graph: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing stats: %w", err)
	}

	return &st, nil
}
