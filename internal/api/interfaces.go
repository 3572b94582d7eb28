package api

import (
	"context"

	"github.com/wikipath/wikipath/internal/domain"
)

// PathService answers path queries. Its method set is domain.PathFinder.
type PathService = domain.PathFinder

// ArticleService serves article lookups and stats.
type ArticleService = domain.ArticleReader

// BulkService loads articles and links in bulk.
type BulkService = domain.BulkLoader

// Pinger checks database connectivity.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// SchemaCheck reports an error when the database schema is not current.
type SchemaCheck func(ctx context.Context) error
