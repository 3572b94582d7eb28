package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/wikipath/wikipath/internal/models"
)

// TitleCache remembers title -> id and id -> title mappings across
// snapshots. Concurrent misses for the same key share one lookup. Failed
// lookups are not cached. A nil *TitleCache is valid and caches nothing.
type TitleCache struct {
	ids    *expirable.LRU[string, int64]
	titles *expirable.LRU[int64, string]
	group  singleflight.Group
}

// NewTitleCache returns a cache holding up to size entries per direction
// for ttl. A size of zero or less disables caching and returns nil.
func NewTitleCache(size int, ttl time.Duration) *TitleCache {
	if size <= 0 {
		return nil
	}

	return &TitleCache{
		ids:    expirable.NewLRU[string, int64](size, nil, ttl),
		titles: expirable.NewLRU[int64, string](size, nil, ttl),
	}
}

// Resolve returns the article id for title, asking r on a miss.
//
// A lookup shared with a concurrent caller runs on that caller's context
// and snapshot. If it fails for any reason other than a definite answer
// about the title, callers whose own context is still live repeat the
// lookup through their own resolver.
func (c *TitleCache) Resolve(ctx context.Context, r Resolver, title string) (int64, error) {
	if c == nil {
		return r.TitleToID(ctx, title)
	}

	if id, ok := c.ids.Get(title); ok {
		return id, nil
	}

	led := false

	ch := c.group.DoChan("t:"+title, func() (any, error) {
		led = true

		// Double-check cache after winning the singleflight race.
		if id, ok := c.ids.Get(title); ok {
			return id, nil
		}

		return c.lookup(ctx, r, title)
	})

	var res singleflight.Result

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res = <-ch:
	}

	if res.Err != nil {
		if !led && ctx.Err() == nil && !definiteLookupError(res.Err) {
			return c.lookup(ctx, r, title)
		}

		return 0, res.Err
	}

	id, ok := res.Val.(int64)
	if !ok {
		return 0, fmt.Errorf("title cache: unexpected singleflight result type %T", res.Val)
	}

	return id, nil
}

// lookup asks r for title and caches a hit in both directions.
func (c *TitleCache) lookup(ctx context.Context, r Resolver, title string) (int64, error) {
	id, err := r.TitleToID(ctx, title)
	if err != nil {
		return 0, err
	}

	c.ids.Add(title, id)
	c.titles.Add(id, title)

	return id, nil
}

// definiteLookupError reports whether err is an answer about the title
// itself, valid for every caller.
func definiteLookupError(err error) bool {
	return errors.Is(err, models.ErrTitleNotFound) || errors.Is(err, models.ErrAmbiguousTitle)
}

// Titles returns titles for ids, fetching all misses from r in one batch.
// Ids unknown to r are absent from the result.
func (c *TitleCache) Titles(ctx context.Context, r Resolver, ids []int64) (map[int64]string, error) {
	if c == nil {
		return r.Titles(ctx, ids)
	}

	out := make(map[int64]string, len(ids))
	var missing []int64

	for _, id := range ids {
		if t, ok := c.titles.Get(id); ok {
			out[id] = t
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := r.Titles(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, t := range fetched {
		c.titles.Add(id, t)
		out[id] = t
	}

	return out, nil
}

// Purge drops every cached entry. Call it after articles are renamed.
func (c *TitleCache) Purge() {
	if c == nil {
		return
	}

	c.ids.Purge()
	c.titles.Purge()
}

// Len reports the number of cached title -> id entries.
func (c *TitleCache) Len() int {
	if c == nil {
		return 0
	}

	return c.ids.Len()
}
