// Package dump reads article graph dump files. A dump lists articles and
// the links between them:
//
//	articles:
//	  - {id: 1, title: Alpha}
//	  - {id: 2, title: Beta}
//	links:
//	  - {src: 1, dst: 2}
//
// JSON with the same shape is accepted as well.
package dump

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wikipath/wikipath/internal/models"
	"github.com/wikipath/wikipath/internal/pathfind"
	"github.com/wikipath/wikipath/internal/service"
)

// ErrEmpty is returned when a dump has no articles.
var ErrEmpty = errors.New("dump has no articles")

// Dump is a parsed graph dump.
type Dump struct {
	Articles []models.Article `yaml:"articles"`
	Links    []models.Link    `yaml:"links"`
}

// Load reads and validates the dump at path.
func Load(path string) (*Dump, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the operator.
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// Parse decodes and validates a YAML or JSON dump from r.
func Parse(r io.Reader) (*Dump, error) {
	var d Dump

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}

		return nil, fmt.Errorf("decoding dump: %w", err)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}

// Validate checks ids and titles and that every link joins known articles.
func (d *Dump) Validate() error {
	if len(d.Articles) == 0 {
		return ErrEmpty
	}

	seen := make(map[int64]struct{}, len(d.Articles))

	for i, a := range d.Articles {
		req := models.CreateArticleRequest{ID: a.ID, Title: a.Title}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("article %d: %w", i, err)
		}

		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("article %d: duplicate id %d", i, a.ID)
		}

		seen[a.ID] = struct{}{}
	}

	for i, l := range d.Links {
		req := models.CreateLinkRequest{Src: l.Src, Dst: l.Dst}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("link %d: %w", i, err)
		}

		for _, id := range []int64{l.Src, l.Dst} {
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("link %d: article %d: %w", i, id, models.ErrNodeNotFound)
			}
		}
	}

	return nil
}

// Graph builds the in-memory link graph of d.
func (d *Dump) Graph() *pathfind.MemoryGraph {
	g := pathfind.NewMemoryGraph()

	for _, a := range d.Articles {
		g.AddNode(a.ID)
	}

	for _, l := range d.Links {
		g.AddEdge(l.Src, l.Dst)
	}

	return g
}

// Titles returns the id -> title index of d.
func (d *Dump) Titles() map[int64]string {
	titles := make(map[int64]string, len(d.Articles))
	for _, a := range d.Articles {
		titles[a.ID] = a.Title
	}

	return titles
}

// NewSource serves offline path queries against d.
func NewSource(d *Dump) *service.MemorySource {
	return service.NewMemorySource(d.Graph(), d.Titles())
}

// ArticleRequests converts the articles of d into bulk upsert requests.
func (d *Dump) ArticleRequests() []models.CreateArticleRequest {
	reqs := make([]models.CreateArticleRequest, len(d.Articles))
	for i, a := range d.Articles {
		reqs[i] = models.CreateArticleRequest{ID: a.ID, Title: a.Title}
	}

	return reqs
}

// LinkRequests converts the links of d into bulk insert requests.
func (d *Dump) LinkRequests() []models.CreateLinkRequest {
	reqs := make([]models.CreateLinkRequest, len(d.Links))
	for i, l := range d.Links {
		reqs[i] = models.CreateLinkRequest{Src: l.Src, Dst: l.Dst}
	}

	return reqs
}
