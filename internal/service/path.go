package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wikipath/wikipath/internal/domain"
	"github.com/wikipath/wikipath/internal/metrics"
	"github.com/wikipath/wikipath/internal/models"
	"github.com/wikipath/wikipath/internal/pathfind"
)

// Compile-time check: *PathService must satisfy domain.PathFinder.
var _ domain.PathFinder = (*PathService)(nil)

// algorithmMulti labels multi-destination searches in metrics.
const algorithmMulti = "multi"

// Search outcomes recorded in metrics.
const (
	outcomeFound  = "found"
	outcomeNoPath = "no_path"
	outcomeError  = "error"
	outcomeDone   = "completed"
)

// PathConfig tunes PathService.
type PathConfig struct {
	// ArticleURLBase prefixes "?curid=<id>" to form article links.
	ArticleURLBase string

	// SearchTimeout bounds each query. Zero means no limit.
	SearchTimeout time.Duration
}

// PathService resolves titles and runs path searches over one snapshot per
// query.
type PathService struct {
	source SnapshotSource
	cache  *TitleCache
	cfg    PathConfig
	log    *logrus.Logger
}

// NewPathService creates a PathService. cache may be nil.
func NewPathService(source SnapshotSource, cache *TitleCache, cfg PathConfig, log *logrus.Logger) *PathService {
	return &PathService{source: source, cache: cache, cfg: cfg, log: log}
}

// countingGraph counts neighbor lookups made through it.
type countingGraph struct {
	pathfind.Graph
	lookups int
}

func (g *countingGraph) ForwardNeighbors(ctx context.Context, id pathfind.NodeID) ([]pathfind.NodeID, error) {
	g.lookups++
	return g.Graph.ForwardNeighbors(ctx, id)
}

func (g *countingGraph) ReverseNeighbors(ctx context.Context, id pathfind.NodeID) ([]pathfind.NodeID, error) {
	g.lookups++
	return g.Graph.ReverseNeighbors(ctx, id)
}

// query opens a snapshot under the search timeout and runs fn with it. The
// snapshot is closed on a context that outlives the timeout.
func (s *PathService) query(ctx context.Context, fn func(ctx context.Context, snap Snapshot) error) error {
	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}

	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}

	defer func() {
		if err := snap.Close(context.WithoutCancel(ctx)); err != nil {
			s.log.WithError(err).Warn("closing snapshot")
		}
	}()

	return fn(ctx, snap)
}

// Single returns a shortest path from src to dst. It returns (nil, nil)
// when dst is unreachable.
func (s *PathService) Single(
	ctx context.Context, src, dst string, algo models.Algorithm,
) (*models.ArticlePath, error) {
	if src == "" {
		return nil, models.ErrMissingSrc
	}

	if dst == "" {
		return nil, models.ErrMissingDst
	}

	search, err := searchFor(algo)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	var (
		result *models.ArticlePath
		g      countingGraph
	)

	err = s.query(ctx, func(ctx context.Context, snap Snapshot) error {
		srcID, err := s.cache.Resolve(ctx, snap, src)
		if err != nil {
			return fmt.Errorf("resolving source: %w", err)
		}

		dstID, err := s.cache.Resolve(ctx, snap, dst)
		if err != nil {
			return fmt.Errorf("resolving destination: %w", err)
		}

		g.Graph = snap

		ids, err := search(ctx, &g, srcID, dstID)
		if err != nil {
			return err
		}

		if ids == nil {
			return nil
		}

		result, err = s.wrap(ctx, snap, ids)

		return err
	})

	outcome := outcomeFound

	switch {
	case err != nil:
		outcome = outcomeError
	case result == nil:
		outcome = outcomeNoPath
	}

	s.observe(string(algo), outcome, start, g.lookups)

	s.log.WithFields(logrus.Fields{
		"src":       src,
		"dst":       dst,
		"algorithm": algo,
		"outcome":   outcome,
		"clicks":    result.Clicks(),
		"lookups":   g.lookups,
		"duration":  time.Since(start).String(),
	}).Debug("single path search")

	if err != nil {
		return nil, err
	}

	return result, nil
}

// Many returns a shortest path from src to every destination in dsts.
// Destinations that cannot be resolved are listed in Unresolved.
func (s *PathService) Many(ctx context.Context, src string, dsts []string) (*models.ManyArticlePaths, error) {
	out := &models.ManyArticlePaths{
		Source: src,
		Paths:  make(map[string]*models.ArticlePath, len(dsts)),
	}

	err := s.Stream(ctx, src, dsts, func(dp models.DestinationPath) error {
		if dp.Error != "" {
			if out.Unresolved == nil {
				out.Unresolved = make(map[string]string)
			}

			out.Unresolved[dp.Destination] = dp.Error

			return nil
		}

		out.Paths[dp.Destination] = dp.Path

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Stream runs one multi-target search from src and emits a result per
// destination, in the order given, as each is reconstructed.
func (s *PathService) Stream(
	ctx context.Context, src string, dsts []string, emit func(models.DestinationPath) error,
) error {
	if src == "" {
		return models.ErrMissingSrc
	}

	if len(dsts) == 0 {
		return models.ErrMissingDst
	}

	start := time.Now()

	var (
		g       countingGraph
		emitted int
	)

	err := s.query(ctx, func(ctx context.Context, snap Snapshot) error {
		srcID, err := s.cache.Resolve(ctx, snap, src)
		if err != nil {
			return fmt.Errorf("resolving source: %w", err)
		}

		g.Graph = snap

		parents, err := pathfind.MultiTarget(ctx, &g, srcID)
		if err != nil {
			return err
		}

		for _, dst := range dsts {
			dp, err := s.destination(ctx, snap, parents, dst)
			if err != nil {
				return err
			}

			if err := emit(dp); err != nil {
				return err
			}

			emitted++
		}

		return nil
	})

	outcome := outcomeDone
	if err != nil {
		outcome = outcomeError
	}

	s.observe(algorithmMulti, outcome, start, g.lookups)

	s.log.WithFields(logrus.Fields{
		"src":          src,
		"destinations": len(dsts),
		"emitted":      emitted,
		"outcome":      outcome,
		"lookups":      g.lookups,
		"duration":     time.Since(start).String(),
	}).Debug("multi path search")

	return err
}

// destination builds the result for one destination of a multi-target
// search. Resolution failures are reported in the result, not as errors.
func (s *PathService) destination(
	ctx context.Context, snap Snapshot, parents *pathfind.ParentMap, dst string,
) (models.DestinationPath, error) {
	dp := models.DestinationPath{Destination: dst}

	dstID, err := s.cache.Resolve(ctx, snap, dst)
	if err != nil {
		if errors.Is(err, models.ErrTitleNotFound) || errors.Is(err, models.ErrAmbiguousTitle) {
			dp.Error = err.Error()

			return dp, nil
		}

		return dp, fmt.Errorf("resolving destination %q: %w", dst, err)
	}

	rec := pathfind.Reconstruct(dstID, parents)

	switch rec.Outcome {
	case pathfind.Unreachable:
		return dp, nil
	case pathfind.Corrupt:
		return dp, fmt.Errorf("destination %q: %w", dst, pathfind.ErrCorruptParentMap)
	}

	dp.Path, err = s.wrap(ctx, snap, rec.Path)

	return dp, err
}

// wrap attaches titles and links to a path of ids.
func (s *PathService) wrap(ctx context.Context, snap Snapshot, ids []pathfind.NodeID) (*models.ArticlePath, error) {
	titles, err := s.cache.Titles(ctx, snap, ids)
	if err != nil {
		return nil, fmt.Errorf("looking up path titles: %w", err)
	}

	p := &models.ArticlePath{Articles: make([]models.ArticleWrapper, len(ids))}

	for i, id := range ids {
		title, ok := titles[id]
		if !ok {
			return nil, fmt.Errorf("article %d on path: %w", id, models.ErrNodeNotFound)
		}

		p.Articles[i] = models.ArticleWrapper{ID: id, Title: title, Link: s.ArticleURL(id)}
	}

	return p, nil
}

// ArticleURL returns the external reference URL of article id.
func (s *PathService) ArticleURL(id int64) string {
	return s.cfg.ArticleURLBase + "?curid=" + strconv.FormatInt(id, 10)
}

func (s *PathService) observe(algorithm, outcome string, start time.Time, lookups int) {
	metrics.SearchesTotal.WithLabelValues(algorithm, outcome).Inc()
	metrics.SearchDuration.WithLabelValues(algorithm).Observe(time.Since(start).Seconds())
	metrics.SearchLookups.WithLabelValues(algorithm).Observe(float64(lookups))
}

type searchFunc func(ctx context.Context, g pathfind.Graph, src, dst pathfind.NodeID) ([]pathfind.NodeID, error)

func searchFor(algo models.Algorithm) (searchFunc, error) {
	switch algo {
	case models.AlgorithmBFS:
		return pathfind.SingleTarget, nil
	case models.AlgorithmBidirectional:
		return pathfind.Bidirectional, nil
	default:
		return nil, fmt.Errorf("%q: %w", algo, models.ErrUnknownAlgorithm)
	}
}
