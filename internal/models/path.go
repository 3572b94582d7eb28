package models

import "fmt"

// ArticleWrapper is an article annotated with its external reference URL.
type ArticleWrapper struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// ArticlePath is a path of articles connected by links, source first.
type ArticlePath struct {
	Articles []ArticleWrapper `json:"articles"`
}

// Clicks returns the number of links followed along the path.
func (p *ArticlePath) Clicks() int {
	if p == nil || len(p.Articles) == 0 {
		return 0
	}

	return len(p.Articles) - 1
}

// Titles returns the article titles in path order.
func (p *ArticlePath) Titles() []string {
	if p == nil {
		return nil
	}

	titles := make([]string, len(p.Articles))
	for i, a := range p.Articles {
		titles[i] = a.Title
	}

	return titles
}

// ManyArticlePaths maps destination titles to a shortest path from Source.
// A nil path means the destination is unreachable. Destinations whose title
// could not be resolved are listed in Unresolved with the reason.
type ManyArticlePaths struct {
	Source     string                  `json:"source"`
	Paths      map[string]*ArticlePath `json:"paths"`
	Unresolved map[string]string       `json:"unresolved,omitempty"`
}

// DestinationPath is one result frame of a streamed multi-destination query.
type DestinationPath struct {
	Destination string       `json:"destination"`
	Path        *ArticlePath `json:"path"`
	Error       string       `json:"error,omitempty"`
}

// Stats holds aggregate graph counts.
type Stats struct {
	Articles int64 `json:"articles"`
	Links    int64 `json:"links"`
}

// MaxDestinations caps the destinations of one multi-destination query.
const MaxDestinations = 1000

// Algorithm selects the search used for a single-destination query.
type Algorithm string

// Supported algorithms.
const (
	AlgorithmBFS           Algorithm = "bfs"
	AlgorithmBidirectional Algorithm = "bidirectional"
)

// ParseAlgorithm parses s, falling back to def when s is empty.
func ParseAlgorithm(s string, def Algorithm) (Algorithm, error) {
	switch Algorithm(s) {
	case "":
		return def, nil
	case AlgorithmBFS, AlgorithmBidirectional:
		return Algorithm(s), nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownAlgorithm)
	}
}
