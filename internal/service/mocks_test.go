package service

import (
	"context"
	"sync"

	"github.com/wikipath/wikipath/internal/models"
	"github.com/wikipath/wikipath/internal/pathfind"
)

// mockArticleStore records calls and returns configured responses.
type mockArticleStore struct {
	mu    sync.Mutex
	calls []string

	getArticle  func(ctx context.Context, id int64) (*models.Article, error)
	findByTitle func(ctx context.Context, title string) ([]models.Article, error)
	stats       func(ctx context.Context) (*models.Stats, error)
}

func (m *mockArticleStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockArticleStore) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	m.record("GetArticle")
	return m.getArticle(ctx, id)
}

func (m *mockArticleStore) FindByTitle(ctx context.Context, title string) ([]models.Article, error) {
	m.record("FindByTitle")
	return m.findByTitle(ctx, title)
}

func (m *mockArticleStore) Stats(ctx context.Context) (*models.Stats, error) {
	m.record("Stats")
	return m.stats(ctx)
}

// mockBulkStore records calls and returns configured responses.
type mockBulkStore struct {
	mu    sync.Mutex
	calls []string

	upsertArticles func(ctx context.Context, articles []models.CreateArticleRequest) (int, error)
	insertLinks    func(ctx context.Context, links []models.CreateLinkRequest) (int, error)
}

func (m *mockBulkStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockBulkStore) BulkUpsertArticles(ctx context.Context, articles []models.CreateArticleRequest) (int, error) {
	m.record("BulkUpsertArticles")
	return m.upsertArticles(ctx, articles)
}

func (m *mockBulkStore) BulkInsertLinks(ctx context.Context, links []models.CreateLinkRequest) (int, error) {
	m.record("BulkInsertLinks")
	return m.insertLinks(ctx, links)
}

// countingResolver counts calls into a title index.
type countingResolver struct {
	mu       sync.Mutex
	byTitle  map[string]int64
	byID     map[int64]string
	resolves int
	batches  [][]int64
}

func newCountingResolver(titles map[int64]string) *countingResolver {
	r := &countingResolver{byTitle: make(map[string]int64), byID: titles}
	for id, t := range titles {
		r.byTitle[t] = id
	}

	return r
}

func (r *countingResolver) TitleToID(_ context.Context, title string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolves++

	id, ok := r.byTitle[title]
	if !ok {
		return 0, models.ErrTitleNotFound
	}

	return id, nil
}

func (r *countingResolver) Titles(_ context.Context, ids []int64) (map[int64]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, append([]int64(nil), ids...))

	out := make(map[int64]string)
	for _, id := range ids {
		if t, ok := r.byID[id]; ok {
			out[id] = t
		}
	}

	return out, nil
}

// trackingSource wraps a SnapshotSource and counts opened and closed
// snapshots.
type trackingSource struct {
	SnapshotSource
	opened, closed int
}

func (s *trackingSource) Snapshot(ctx context.Context) (Snapshot, error) {
	snap, err := s.SnapshotSource.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	s.opened++

	return &trackingSnapshot{Snapshot: snap, src: s}, nil
}

type trackingSnapshot struct {
	Snapshot
	src *trackingSource
}

func (s *trackingSnapshot) Close(ctx context.Context) error {
	s.src.closed++
	return s.Snapshot.Close(ctx)
}

// testTitles names the articles of testSource.
var testTitles = map[int64]string{
	1: "Alpha",
	2: "Beta",
	3: "Gamma",
	4: "Delta",
	5: "Epsilon",
	6: "Twin",
	7: "Twin",
	8: "Island",
}

// testSource is Alpha→Beta→Gamma→Delta with the shortcut Alpha→Epsilon→Delta.
// Twin is an ambiguous title; Island has no links.
func testSource() *MemorySource {
	g := pathfind.NewMemoryGraph()
	for id := range testTitles {
		g.AddNode(id)
	}

	for _, e := range [][2]int64{{1, 2}, {2, 3}, {3, 4}, {1, 5}, {5, 4}, {6, 1}} {
		g.AddEdge(e[0], e[1])
	}

	titles := make(map[int64]string, len(testTitles))
	for id, t := range testTitles {
		titles[id] = t
	}

	return NewMemorySource(g, titles)
}
