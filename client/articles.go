package client

import (
	"context"
	"net/url"
	"strconv"
)

// ArticleService looks up articles.
type ArticleService struct {
	c *Client
}

// Get returns the article with the given id.
func (s *ArticleService) Get(ctx context.Context, id int64) (*Article, error) {
	var resp Article
	if err := s.c.get(ctx, "/api/v1/articles/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resolve returns the single article titled title.
func (s *ArticleService) Resolve(ctx context.Context, title string) (*Article, error) {
	var resp Article
	if err := s.c.get(ctx, "/api/v1/articles", url.Values{"title": {title}}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
