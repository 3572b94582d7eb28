// Package models defines data types for the article graph.
package models

// maxTitleLen caps article titles.
const maxTitleLen = 1024

// Article is a node of the link graph.
type Article struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Link is a directed edge from one article to another. Links form a set:
// inserting the same pair twice is a no-op.
type Link struct {
	Src int64 `json:"src"`
	Dst int64 `json:"dst"`
}

// CreateArticleRequest is the payload for upserting an article.
type CreateArticleRequest struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Validate checks that required fields are present and within limits.
func (r *CreateArticleRequest) Validate() error {
	if r.ID <= 0 {
		return ErrInvalidID
	}

	if r.Title == "" {
		return ErrMissingTitle
	}

	if len(r.Title) > maxTitleLen {
		return ErrFieldTooLong("title", maxTitleLen)
	}

	return nil
}

// CreateLinkRequest is the payload for inserting a link.
type CreateLinkRequest struct {
	Src int64 `json:"src"`
	Dst int64 `json:"dst"`
}

// Validate checks CreateLinkRequest fields. Self-links are allowed.
func (r *CreateLinkRequest) Validate() error {
	if r.Src == 0 {
		return ErrMissingSrc
	}

	if r.Dst == 0 {
		return ErrMissingDst
	}

	if r.Src < 0 || r.Dst < 0 {
		return ErrInvalidID
	}

	return nil
}
