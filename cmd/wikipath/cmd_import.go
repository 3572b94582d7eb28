package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wikipath/wikipath/client"
	"github.com/wikipath/wikipath/internal/dump"
)

func newImportCmd() *cobra.Command {
	var (
		batchSize   int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Upload a graph dump to the server",
		Long: `Upload the articles and links of a YAML or JSON graph dump through the
bulk API. All articles are written before any link. Requires the server's
admin API key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchSize <= 0 || batchSize > client.MaxBulkItems {
				return fmt.Errorf("--batch-size must be between 1 and %d", client.MaxBulkItems)
			}
			if concurrency <= 0 {
				return fmt.Errorf("--concurrency must be positive")
			}

			d, err := dump.Load(args[0])
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			fmt.Fprintf(stderr, "Dump: %d articles, %d links\n", len(d.Articles), len(d.Links))

			articles := make([]client.CreateArticleRequest, 0, len(d.Articles))
			for _, r := range d.ArticleRequests() {
				articles = append(articles, client.CreateArticleRequest(r))
			}

			links := make([]client.CreateLinkRequest, 0, len(d.Links))
			for _, r := range d.LinkRequests() {
				links = append(links, client.CreateLinkRequest(r))
			}

			ctx := cmd.Context()

			upserted, err := uploadBatches(ctx, articles, batchSize, concurrency, apiClient.Bulk.Articles)
			if err != nil {
				return fmt.Errorf("uploading articles: %w", err)
			}

			inserted, err := uploadBatches(ctx, links, batchSize, concurrency, apiClient.Bulk.Links)
			if err != nil {
				return fmt.Errorf("uploading links: %w", err)
			}

			fmt.Fprintf(stderr, "Articles: %d upserted\nLinks: %d inserted\n", upserted, inserted)

			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 500, "Items per bulk request")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Concurrent bulk requests")

	return cmd
}

// uploadBatches sends items in chunks of size with at most concurrency
// requests in flight and returns the summed counts. The first failure
// cancels the remaining uploads.
func uploadBatches[T any](
	ctx context.Context, items []T, size, concurrency int,
	send func(context.Context, []T) (int, error),
) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var total atomic.Int64

	for start := 0; start < len(items); start += size {
		batch := items[start:min(start+size, len(items))]

		g.Go(func() error {
			n, err := send(ctx, batch)
			if err != nil {
				return err
			}

			total.Add(int64(n))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return int(total.Load()), nil
}
