package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/business-central-sdk/bcschema/internal/cache"
	"github.com/business-central-sdk/bcschema/internal/cli/config"
	"github.com/business-central-sdk/bcschema/internal/cli/ui"
	"github.com/business-central-sdk/bcschema/internal/loader"
	"github.com/business-central-sdk/bcschema/internal/logging"
	"github.com/business-central-sdk/bcschema/internal/metrics"
	"github.com/business-central-sdk/bcschema/internal/policy"
	"github.com/business-central-sdk/bcschema/internal/schema"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// ErrNoMetadata is returned when no metadata document is configured
var ErrNoMetadata = errors.New("no metadata document configured")

// session is the loaded state a subcommand works with
type session struct {
	logger *zap.Logger
	schema *schema.Schema
}

// openSession loads configuration, applies flag overrides and builds the
// schema of the configured metadata document.
func openSession(ctx context.Context, opts *globalOptions) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, &displayError{display: ui.ConfigError(err.Error(), opts.noColor), err: err}
	}
	if opts.metadataPath != "" {
		cfg.Metadata.Path = opts.metadataPath
	}
	if opts.policyPath != "" {
		cfg.Policy.Path = opts.policyPath
	}
	if cfg.Metadata.Path == "" {
		return nil, &displayError{
			display: ui.ConfigError("No metadata document configured. Pass --metadata or set metadata.path.", opts.noColor),
			err:     ErrNoMetadata,
		}
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	table, err := loadPolicy(cfg.Policy.Path)
	if err != nil {
		return nil, err
	}

	snapshots, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeCache()

	reg := prometheus.NewRegistry()
	loaderOpts := []loader.Option{
		loader.WithLogger(logger),
		loader.WithMetrics(metrics.New(reg)),
		loader.WithTTL(cfg.Cache.TTL),
		loader.WithSchemaOptions(
			schema.WithPolicy(table),
			schema.WithMaxDepth(cfg.Schema.MaxDepth),
		),
	}
	if snapshots != nil {
		loaderOpts = append(loaderOpts, loader.WithCache(snapshots))
	}

	s, err := loader.New(loaderOpts...).LoadFile(ctx, cfg.Metadata.Path)
	logMetrics(logger, reg)
	if err != nil {
		return nil, &displayError{display: ui.MetadataError(err, opts.noColor), err: err}
	}

	return &session{logger: logger, schema: s}, nil
}

// logMetrics writes the loader counters at debug level
func logMetrics(logger *zap.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Debug("failed to gather metrics", zap.Error(err))
		return
	}

	for _, family := range families {
		for _, m := range family.GetMetric() {
			fields := []zap.Field{zap.String("metric", family.GetName())}
			for _, label := range m.GetLabel() {
				fields = append(fields, zap.String(label.GetName(), label.GetValue()))
			}
			switch {
			case m.GetCounter() != nil:
				fields = append(fields, zap.Float64("value", m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				fields = append(fields,
					zap.Uint64("count", m.GetHistogram().GetSampleCount()),
					zap.Float64("sum", m.GetHistogram().GetSampleSum()),
				)
			}
			logger.Debug("loader metric", fields...)
		}
	}
}

// loadPolicy merges the built-in model policy with an optional override file
func loadPolicy(path string) (*policy.Table, error) {
	base := policy.Default()
	if path == "" {
		return base, nil
	}

	override, err := policy.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return policy.Merge(base, override), nil
}

// openCache builds the configured snapshot cache. The returned func closes it.
func openCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	cacheConfig := cache.Config{DefaultTTL: cfg.Cache.TTL, Prefix: cfg.Cache.Prefix}

	switch cfg.Cache.Backend {
	case "memory":
		c := cache.NewMemoryCacheWithConfig(cacheConfig)
		return c, func() { c.Close() }, nil
	case "redis":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Config:   cacheConfig,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open snapshot cache: %w", err)
		}
		return c, func() { c.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}

// lookupEntity resolves an entity type or returns a not-found error with
// suggestions.
func (s *session) lookupEntity(name string, noColor bool) (*schema.EntityType, error) {
	et, ok := s.schema.EntityType(name)
	if ok {
		return et, nil
	}

	suggestions := ui.FindSimilar(name, s.schema.EntityTypeNames(), nil)
	return nil, &displayError{
		display: ui.EntityNotFoundError(name, suggestions, noColor),
		err:     fmt.Errorf("entity type %q not found", name),
	}
}
