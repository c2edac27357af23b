package search

import (
	"context"
	"fmt"

	"github.com/jonathan/leadgen/internal/normalize"
	"github.com/jonathan/leadgen/internal/query"
	"github.com/jonathan/leadgen/internal/types"
	"github.com/sirupsen/logrus"
)

// Engine holds the per-platform search credentials.
type Engine struct {
	APIKey      string
	EngineID    string
	ImageSearch bool
}

// Gateway turns a filter set into one normalized page of results.
type Gateway struct {
	backend Backend
	engines map[types.Platform]Engine
	cache   PageCache
	logger  logrus.FieldLogger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCache enables page caching.
func WithCache(c PageCache) Option {
	return func(g *Gateway) { g.cache = c }
}

// WithLogger sets the logger used for absorbed failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Gateway) { g.logger = l }
}

// NewGateway creates a gateway over backend. Platforms missing from engines
// fail with ErrEngineNotConfigured.
func NewGateway(backend Backend, engines map[types.Platform]Engine, opts ...Option) *Gateway {
	g := &Gateway{
		backend: backend,
		engines: make(map[types.Platform]Engine, len(engines)),
		logger:  logrus.StandardLogger(),
	}
	for p, e := range engines {
		g.engines[p] = e
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configured reports whether p has usable credentials.
func (g *Gateway) Configured(p types.Platform) bool {
	e, ok := g.engines[p]
	return ok && e.APIKey != "" && e.EngineID != ""
}

// FetchPage retrieves one page and reports every failure to the caller.
// A response with no items is a successful empty page.
func (g *Gateway) FetchPage(ctx context.Context, f types.FilterSet) (*types.ResultPage, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilters, err)
	}
	if !g.Configured(f.Platform) {
		return nil, &Error{Platform: f.Platform, Page: f.Page, Cause: ErrEngineNotConfigured}
	}
	engine := g.engines[f.Platform]

	req := Request{
		APIKey:      engine.APIKey,
		EngineID:    engine.EngineID,
		Query:       query.Build(f),
		Num:         types.PageSize,
		Start:       f.StartIndex(),
		ImageSearch: engine.ImageSearch,
	}

	key := CacheKey(f.Platform, req)
	if g.cache != nil {
		if page, ok := g.cache.Get(ctx, key); ok {
			return page, nil
		}
	}

	resp, err := g.backend.Search(ctx, req)
	if err != nil {
		return nil, &Error{Platform: f.Platform, Page: f.Page, Cause: err}
	}
	if resp == nil || len(resp.Items) == 0 {
		return types.EmptyPage(f.Page), nil
	}

	items := normalize.All(normalize.For(f.Platform), resp.Items)
	page := types.NewResultPage(items, resp.TotalResults, f.Page)

	if g.cache != nil {
		g.cache.Set(ctx, key, page)
	}
	return page, nil
}

// Search is the interactive entry point. It never fails: any error, including
// a panic while normalizing a malformed response, yields an empty page.
func (g *Gateway) Search(ctx context.Context, f types.FilterSet) (page *types.ResultPage) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.WithFields(logrus.Fields{
				"platform": f.Platform,
				"page":     f.Page,
				"panic":    r,
			}).Error("search panicked")
			page = types.EmptyPage(f.Page)
		}
	}()

	page, err := g.FetchPage(ctx, f)
	if err != nil {
		g.logger.WithFields(logrus.Fields{
			"platform": f.Platform,
			"page":     f.Page,
		}).WithError(err).Warn("search failed, returning empty page")
		return types.EmptyPage(f.Page)
	}
	return page
}
