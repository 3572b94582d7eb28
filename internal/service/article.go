package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/domain"
	"github.com/wikipath/wikipath/internal/metrics"
	"github.com/wikipath/wikipath/internal/models"
)

// Compile-time checks against the canonical interfaces.
var (
	_ domain.ArticleReader = (*ArticleService)(nil)
	_ domain.BulkLoader    = (*ArticleService)(nil)
)

// ArticleStore defines the data access methods ArticleService reads through.
type ArticleStore interface {
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	FindByTitle(ctx context.Context, title string) ([]models.Article, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// BulkStore is the data-access interface for bulk writes. Its method set is
// identical to domain.BulkLoader.
type BulkStore = domain.BulkLoader

// ArticleService serves article lookups and bulk loads.
type ArticleService struct {
	articles ArticleStore
	bulk     BulkStore
	cache    *TitleCache
	log      *logrus.Logger
}

// NewArticleService creates an ArticleService. bulk may be nil for a
// read-only deployment; cache may be nil.
func NewArticleService(articles ArticleStore, bulk BulkStore, cache *TitleCache, log *logrus.Logger) *ArticleService {
	return &ArticleService{articles: articles, bulk: bulk, cache: cache, log: log}
}

// GetArticle returns one article by id.
func (s *ArticleService) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	if id <= 0 {
		return nil, models.ErrInvalidID
	}

	return s.articles.GetArticle(ctx, id)
}

// Resolve returns the single article titled title.
func (s *ArticleService) Resolve(ctx context.Context, title string) (*models.Article, error) {
	if title == "" {
		return nil, models.ErrMissingTitle
	}

	matches, err := s.articles.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%q: %w", title, models.ErrTitleNotFound)
	case 1:
		return &matches[0], nil
	}

	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}

	return nil, fmt.Errorf("%q matches articles %v: %w", title, ids, models.ErrAmbiguousTitle)
}

// Stats returns graph totals and refreshes the article and link gauges.
func (s *ArticleService) Stats(ctx context.Context) (*models.Stats, error) {
	st, err := s.articles.Stats(ctx)
	if err != nil {
		return nil, err
	}

	metrics.ArticleCount.Set(float64(st.Articles))
	metrics.LinkCount.Set(float64(st.Links))

	return st, nil
}

// BulkUpsertArticles validates and upserts articles, then drops cached
// titles since any of them may have been renamed.
func (s *ArticleService) BulkUpsertArticles(ctx context.Context, articles []models.CreateArticleRequest) (int, error) {
	if s.bulk == nil {
		return 0, ErrReadOnly
	}

	for i := range articles {
		if err := articles[i].Validate(); err != nil {
			return 0, fmt.Errorf("article %d: %w", i, err)
		}
	}

	n, err := s.bulk.BulkUpsertArticles(ctx, articles)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		s.cache.Purge()
	}

	s.log.WithFields(logrus.Fields{"requested": len(articles), "upserted": n}).Info("bulk articles")

	return n, nil
}

// BulkInsertLinks validates and inserts links.
func (s *ArticleService) BulkInsertLinks(ctx context.Context, links []models.CreateLinkRequest) (int, error) {
	if s.bulk == nil {
		return 0, ErrReadOnly
	}

	for i := range links {
		if err := links[i].Validate(); err != nil {
			return 0, fmt.Errorf("link %d: %w", i, err)
		}
	}

	n, err := s.bulk.BulkInsertLinks(ctx, links)
	if err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{"requested": len(links), "inserted": n}).Info("bulk links")

	return n, nil
}
