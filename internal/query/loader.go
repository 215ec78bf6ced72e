package query

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ruminaider/coach-admin/internal/api"
)

// Fetcher performs the network call for one key.
type Fetcher[E any] func(ctx context.Context, key Key) (api.Page[E], error)

// ListFetcher fetches pages of E from the API client.
func ListFetcher[E any](c *api.Client) Fetcher[E] {
	return func(ctx context.Context, key Key) (api.Page[E], error) {
		return api.List[E](ctx, c, key.Resource, key.Params())
	}
}

// Result is the outcome of Loader.Load.
type Result[E any] struct {
	Page api.Page[E]
	// Cached is true when no network call was made.
	Cached bool
	// Skipped is true when the empty-query policy suppressed the fetch.
	Skipped bool
}

// LoaderConfig configures NewLoader.
type LoaderConfig struct {
	// FetchOnEmptyQuery fetches the unfiltered list when the query is blank.
	// When false a blank query yields an empty, skipped result.
	FetchOnEmptyQuery bool
	Logger            *zap.Logger
}

// Loader loads pages of E through the shared cache. Identical keys in flight
// at the same time share one fetch.
type Loader[E any] struct {
	cache *Cache
	fetch Fetcher[E]
	group *singleflight.Group
	cfg   LoaderConfig
	log   *zap.Logger
}

// NewLoader creates a loader backed by cache and fetch.
func NewLoader[E any](cache *Cache, fetch Fetcher[E], cfg LoaderConfig) *Loader[E] {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader[E]{
		cache: cache,
		fetch: fetch,
		group: &singleflight.Group{},
		cfg:   cfg,
		log:   log.Named("query"),
	}
}

// Enabled reports whether key would reach the network or cache.
func (l *Loader[E]) Enabled(key Key) bool {
	return l.cfg.FetchOnEmptyQuery || key.Query != ""
}

// Load returns the page for key. Errors are never cached.
func (l *Loader[E]) Load(ctx context.Context, key Key) (Result[E], error) {
	if err := key.Validate(); err != nil {
		return Result[E]{}, err
	}
	if !l.Enabled(key) {
		return Result[E]{Page: api.Page[E]{TotalPages: 1}, Skipped: true}, nil
	}
	if v, ok := l.cache.Get(key); ok {
		if page, ok := v.(api.Page[E]); ok {
			return Result[E]{Page: page, Cached: true}, nil
		}
	}

	// Loads issued after an invalidation never join a fetch started before it.
	gen := l.cache.Generation(key)
	flight := fmt.Sprintf("%s#%d", key, gen)
	v, err, shared := l.group.Do(flight, func() (any, error) {
		page, err := l.fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		if !l.cache.SetIfCurrent(key, page, gen) {
			l.log.Debug("not caching page invalidated in flight", zap.String("key", key.String()))
		}
		return page, nil
	})
	if err != nil {
		l.log.Warn("fetch failed", zap.String("key", key.String()), zap.Error(err))
		return Result[E]{}, err
	}
	page, ok := v.(api.Page[E])
	if !ok {
		return Result[E]{}, fmt.Errorf("unexpected cached value %T for %s", v, key)
	}
	l.log.Debug("fetched", zap.String("key", key.String()), zap.Int("results", len(page.Results)), zap.Bool("shared", shared))
	return Result[E]{Page: page}, nil
}
