// Package loader reads metadata documents and builds Schemas, keeping decoded
// snapshots in a cache keyed by document checksum.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/business-central-sdk/bcschema/internal/cache"
	"github.com/business-central-sdk/bcschema/internal/csdl"
	"github.com/business-central-sdk/bcschema/internal/logging"
	"github.com/business-central-sdk/bcschema/internal/metrics"
	"github.com/business-central-sdk/bcschema/internal/schema"
)

// Loader builds Schemas from metadata documents. It is safe for concurrent
// use when its cache is.
type Loader struct {
	cache      cache.Cache
	logger     *zap.Logger
	metrics    *metrics.Metrics
	schemaOpts []schema.Option
	ttl        time.Duration
}

// Option configures a Loader
type Option func(*Loader)

// WithCache sets the snapshot cache. Without one every load decodes.
func WithCache(c cache.Cache) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logging.OrNop(logger)
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithSchemaOptions sets the options passed to schema.Build
func WithSchemaOptions(opts ...schema.Option) Option {
	return func(l *Loader) {
		l.schemaOpts = append(l.schemaOpts, opts...)
	}
}

// WithTTL sets the snapshot TTL; zero uses the cache default
func WithTTL(ttl time.Duration) Option {
	return func(l *Loader) {
		l.ttl = ttl
	}
}

// New creates a Loader
func New(opts ...Option) *Loader {
	l := &Loader{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile builds the Schema of the metadata document at path
func (l *Loader) LoadFile(ctx context.Context, path string) (*schema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("failed to open metadata file: %w", err)
		l.metrics.RecordLoad(err)
		return nil, err
	}
	defer f.Close()

	return l.Load(ctx, f)
}

// Load builds the Schema of the metadata document read from r
func (l *Loader) Load(ctx context.Context, r io.Reader) (*schema.Schema, error) {
	s, err := l.load(ctx, r)
	l.metrics.RecordLoad(err)
	return s, err
}

func (l *Loader) load(ctx context.Context, r io.Reader) (*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata document: %w", err)
	}

	checksum := cache.Checksum(data)
	doc, err := l.document(ctx, checksum, data)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := schema.Build(doc, append([]schema.Option{schema.WithLogger(l.logger)}, l.schemaOpts...)...)
	l.metrics.ObserveBuild(time.Since(start))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// document returns the decoded document, from the cache when possible.
// Cache failures are logged and never fail the load.
func (l *Loader) document(ctx context.Context, checksum string, data []byte) (*csdl.Document, error) {
	key := cache.SnapshotKey(checksum)
	log := l.logger.With(zap.String("checksum", checksum))

	if l.cache != nil {
		var doc csdl.Document
		err := cache.GetJSON(ctx, l.cache, key, &doc)
		switch {
		case err == nil:
			l.metrics.RecordCache(metrics.ResultHit)
			log.Debug("metadata snapshot cache hit")
			return &doc, nil
		case cache.IsCacheMiss(err):
			l.metrics.RecordCache(metrics.ResultMiss)
			log.Debug("metadata snapshot cache miss")
		default:
			l.metrics.RecordCache(metrics.ResultError)
			log.Warn("metadata snapshot cache lookup failed", zap.Error(err))
		}
	}

	doc, err := csdl.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &schema.MetadataError{
			Kind:    schema.ErrMalformedMetadata,
			Element: "document",
			Message: err.Error(),
		}
	}

	if l.cache != nil {
		if err := cache.SetJSON(ctx, l.cache, key, doc, l.ttl); err != nil {
			log.Warn("failed to store metadata snapshot", zap.Error(err))
		}
	}

	return doc, nil
}
