package client

import "context"

// BulkService loads articles and links. It needs the admin API key.
type BulkService struct {
	c *Client
}

// MaxBulkItems is the largest batch the server accepts in one request.
const MaxBulkItems = 5000

// Articles upserts articles by id and returns how many were written.
func (s *BulkService) Articles(ctx context.Context, articles []CreateArticleRequest) (int, error) {
	var resp struct {
		Upserted int `json:"upserted"`
	}
	if err := s.c.post(ctx, "/api/v1/bulk/articles", articles, &resp); err != nil {
		return 0, err
	}
	return resp.Upserted, nil
}

// Links inserts links and returns how many were new.
func (s *BulkService) Links(ctx context.Context, links []CreateLinkRequest) (int, error) {
	var resp struct {
		Inserted int `json:"inserted"`
	}
	if err := s.c.post(ctx, "/api/v1/bulk/links", links, &resp); err != nil {
		return 0, err
	}
	return resp.Inserted, nil
}
