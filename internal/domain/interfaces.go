// Package domain defines the canonical service interfaces shared across API
// layers (REST handlers, WebSocket stream, CLI offline mode). Consumers
// should depend on these interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/wikipath/wikipath/internal/models"
)

// PathFinder answers shortest click-path queries by article title.
type PathFinder interface {
	// Single returns a shortest path from src to dst, or nil when dst is
	// unreachable.
	Single(ctx context.Context, src, dst string, algo models.Algorithm) (*models.ArticlePath, error)

	// Many returns a shortest path from src to each of dsts using one search.
	Many(ctx context.Context, src string, dsts []string) (*models.ManyArticlePaths, error)

	// Stream is Many with one callback per destination. A callback error
	// stops the stream and is returned.
	Stream(ctx context.Context, src string, dsts []string, emit func(models.DestinationPath) error) error
}

// ArticleReader looks up articles and graph totals.
type ArticleReader interface {
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	Resolve(ctx context.Context, title string) (*models.Article, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// BulkLoader writes articles and links in bulk.
type BulkLoader interface {
	BulkUpsertArticles(ctx context.Context, articles []models.CreateArticleRequest) (int, error)
	BulkInsertLinks(ctx context.Context, links []models.CreateLinkRequest) (int, error)
}
