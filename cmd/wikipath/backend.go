package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/client"
	"github.com/wikipath/wikipath/internal/dump"
	"github.com/wikipath/wikipath/internal/models"
	"github.com/wikipath/wikipath/internal/service"
)

// errNoPath is wrapped by path commands when a destination is unreachable.
var errNoPath = errors.New("no path")

// defaultArticleURLBase prefixes local article links.
const defaultArticleURLBase = "https://en.wikipedia.org/"

// pathBackend runs path queries either remotely or on a local dump.
type pathBackend interface {
	Single(ctx context.Context, src, dst, algo string) (*client.ArticlePath, error)
	Many(ctx context.Context, src string, dsts []string) (*client.ManyArticlePaths, error)
	Stream(ctx context.Context, src string, dsts []string, fn func(client.DestinationPath) error) error
}

// newBackend picks the local dump when --graph-file is set.
func newBackend() (pathBackend, error) {
	if flagGraphFile == "" {
		return remoteBackend{c: apiClient}, nil
	}

	d, err := dump.Load(flagGraphFile)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	if os.Getenv("WIKIPATH_DEBUG") != "" {
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.DebugLevel)
	}

	svc := service.NewPathService(dump.NewSource(d), nil, service.PathConfig{ArticleURLBase: defaultArticleURLBase}, log)

	return localBackend{svc: svc}, nil
}

type remoteBackend struct {
	c *client.Client
}

func (b remoteBackend) Single(ctx context.Context, src, dst, algo string) (*client.ArticlePath, error) {
	p, err := b.c.Paths.Single(ctx, src, dst, algo)
	if client.IsNoPath(err) {
		return nil, nil
	}
	return p, err
}

func (b remoteBackend) Many(ctx context.Context, src string, dsts []string) (*client.ManyArticlePaths, error) {
	return b.c.Paths.Many(ctx, src, dsts)
}

func (b remoteBackend) Stream(ctx context.Context, src string, dsts []string, fn func(client.DestinationPath) error) error {
	return b.c.Paths.Stream(ctx, src, dsts, fn)
}

type localBackend struct {
	svc *service.PathService
}

func (b localBackend) Single(ctx context.Context, src, dst, algo string) (*client.ArticlePath, error) {
	a, err := models.ParseAlgorithm(algo, models.AlgorithmBidirectional)
	if err != nil {
		return nil, err
	}

	p, err := b.svc.Single(ctx, src, dst, a)
	if err != nil {
		return nil, err
	}
	return toClientPath(p), nil
}

func (b localBackend) Many(ctx context.Context, src string, dsts []string) (*client.ManyArticlePaths, error) {
	res, err := b.svc.Many(ctx, src, dsts)
	if err != nil {
		return nil, err
	}

	out := &client.ManyArticlePaths{
		Source:     res.Source,
		Paths:      make(map[string]*client.ArticlePath, len(res.Paths)),
		Unresolved: res.Unresolved,
	}
	for dst, p := range res.Paths {
		out.Paths[dst] = toClientPath(p)
	}
	return out, nil
}

func (b localBackend) Stream(ctx context.Context, src string, dsts []string, fn func(client.DestinationPath) error) error {
	return b.svc.Stream(ctx, src, dsts, func(dp models.DestinationPath) error {
		return fn(client.DestinationPath{Destination: dp.Destination, Path: toClientPath(dp.Path), Error: dp.Error})
	})
}

func toClientPath(p *models.ArticlePath) *client.ArticlePath {
	if p == nil {
		return nil
	}
	out := &client.ArticlePath{Articles: make([]client.ArticleWrapper, len(p.Articles))}
	for i, a := range p.Articles {
		out.Articles[i] = client.ArticleWrapper(a)
	}
	return out
}

// noPathError reports an unreachable destination.
func noPathError(src, dst string) error {
	return fmt.Errorf("%w from %q to %q", errNoPath, src, dst)
}
