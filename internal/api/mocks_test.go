package api_test

import (
	"context"
	"errors"

	"github.com/wikipath/wikipath/internal/models"
)

// mockPathService implements api.PathService for testing.
type mockPathService struct {
	singleFn func(ctx context.Context, src, dst string, algo models.Algorithm) (*models.ArticlePath, error)
	manyFn   func(ctx context.Context, src string, dsts []string) (*models.ManyArticlePaths, error)
	streamFn func(ctx context.Context, src string, dsts []string, emit func(models.DestinationPath) error) error
}

func (m *mockPathService) Single(ctx context.Context, src, dst string, algo models.Algorithm) (*models.ArticlePath, error) {
	return m.singleFn(ctx, src, dst, algo)
}

func (m *mockPathService) Many(ctx context.Context, src string, dsts []string) (*models.ManyArticlePaths, error) {
	return m.manyFn(ctx, src, dsts)
}

func (m *mockPathService) Stream(ctx context.Context, src string, dsts []string, emit func(models.DestinationPath) error) error {
	return m.streamFn(ctx, src, dsts, emit)
}

// mockArticleService implements api.ArticleService for testing.
type mockArticleService struct {
	getFn     func(ctx context.Context, id int64) (*models.Article, error)
	resolveFn func(ctx context.Context, title string) (*models.Article, error)
	statsFn   func(ctx context.Context) (*models.Stats, error)
}

func (m *mockArticleService) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	return m.getFn(ctx, id)
}

func (m *mockArticleService) Resolve(ctx context.Context, title string) (*models.Article, error) {
	return m.resolveFn(ctx, title)
}

func (m *mockArticleService) Stats(ctx context.Context) (*models.Stats, error) {
	return m.statsFn(ctx)
}

// mockBulkService implements api.BulkService for testing.
type mockBulkService struct {
	articlesFn func(ctx context.Context, articles []models.CreateArticleRequest) (int, error)
	linksFn    func(ctx context.Context, links []models.CreateLinkRequest) (int, error)
}

func (m *mockBulkService) BulkUpsertArticles(ctx context.Context, articles []models.CreateArticleRequest) (int, error) {
	return m.articlesFn(ctx, articles)
}

func (m *mockBulkService) BulkInsertLinks(ctx context.Context, links []models.CreateLinkRequest) (int, error) {
	return m.linksFn(ctx, links)
}

// mockPinger implements api.Pinger for testing.
type mockPinger struct {
	err error
}

func (m *mockPinger) HealthCheck(context.Context) error { return m.err }

var errBoom = errors.New("boom")

func testPath(titles ...string) *models.ArticlePath {
	p := &models.ArticlePath{}
	for i, title := range titles {
		p.Articles = append(p.Articles, models.ArticleWrapper{
			ID:    int64(i + 1),
			Title: title,
			Link:  "https://en.wikipedia.org/?curid=1",
		})
	}

	return p
}
