package client

// Algorithm names accepted by PathService.Single.
const (
	AlgorithmBFS           = "bfs"
	AlgorithmBidirectional = "bidirectional"
)

// Article is a node of the link graph.
type Article struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// ArticleWrapper is an article on a path, with its reference URL.
type ArticleWrapper struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// ArticlePath is a shortest click path, source first.
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

// ManyArticlePaths maps each destination to a shortest path from Source.
// A nil path means the destination is unreachable.
type ManyArticlePaths struct {
	Source     string                  `json:"source"`
	Paths      map[string]*ArticlePath `json:"paths"`
	Unresolved map[string]string       `json:"unresolved,omitempty"`
}

// DestinationPath is one result of a streamed query. Error is set when the
// destination title could not be resolved.
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

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	Database       string  `json:"database"`
	StreamSessions int     `json:"stream_sessions"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// CreateArticleRequest is one article of a bulk upsert.
type CreateArticleRequest struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// CreateLinkRequest is one link of a bulk insert.
type CreateLinkRequest struct {
	Src int64 `json:"src"`
	Dst int64 `json:"dst"`
}
