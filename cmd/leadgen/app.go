package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/leadgen/internal/cache"
	"github.com/jonathan/leadgen/internal/config"
	"github.com/jonathan/leadgen/internal/enrich"
	"github.com/jonathan/leadgen/internal/export"
	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/logging"
	"github.com/jonathan/leadgen/internal/search"
	"github.com/jonathan/leadgen/internal/types"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	gateway  *search.Gateway
	exporter *export.Exporter
	enricher *enrich.Enricher
	closers  []io.Closer
}

// loadConfig resolves the configuration and applies the persistent flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if noCache {
		cfg.RedisURL = ""
	}
	return cfg, nil
}

// newApp wires the search gateway, exporter and enricher from cfg.
// Extra client options are passed to the search backend.
func newApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opts ...option.ClientOption) (*app, error) {
	if logger == nil {
		logger = logging.New(cfg.LogLevel, cfg.LogFormat)
	}
	a := &app{cfg: cfg, logger: logger}

	backend, err := search.NewCSEBackend(ctx, cfg.Timeout(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create search backend: %w", err)
	}

	engines := make(map[types.Platform]search.Engine)
	for _, p := range types.AllPlatforms() {
		e, ok := cfg.Engine(p)
		if !ok {
			logger.WithField("platform", p).Debug("no search engine configured")
			continue
		}
		engines[p] = search.Engine{APIKey: e.APIKey, EngineID: e.EngineID, ImageSearch: e.ImageSearchEnabled(p)}
	}
	if len(engines) == 0 {
		logger.Warn("no platform has search credentials; searches will return empty pages")
	}

	gatewayOpts := []search.Option{search.WithLogger(logger)}
	if cfg.RedisURL != "" {
		pageCache, err := cache.NewRedisPageCache(cfg.RedisURL, cfg.CacheTTLDuration(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to configure page cache: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := pageCache.Ping(pingCtx); err != nil {
			logger.WithError(err).Warn("redis unreachable, searches will bypass the cache until it recovers")
		}
		cancel()
		gatewayOpts = append(gatewayOpts, search.WithCache(pageCache))
		a.closers = append(a.closers, pageCache)
	}
	a.gateway = search.NewGateway(backend, engines, gatewayOpts...)
	a.exporter = export.NewExporter(a.gateway, logger)

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Timeout = cfg.Timeout()
	enrichOpts := []enrich.Option{enrich.WithLogger(logger), enrich.WithFetchOptions(fetchOpts)}
	if cfg.UseBrowser {
		enrichOpts = append(enrichOpts, enrich.WithRenderer(fetch.NewBrowserRenderer(2*cfg.Timeout(), logger)))
	}
	a.enricher = enrich.New(enrichOpts...)

	return a, nil
}

// close releases resources held by the app.
func (a *app) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.WithError(err).Warn("failed to release resource")
		}
	}
}

// setup loads configuration and wires the app for a subcommand.
func setup(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, nil)
}
