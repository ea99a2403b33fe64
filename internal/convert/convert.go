// Package convert orchestrates the extraction pipeline: raw documentation
// text in, canonical OpenAPI JSON out. The content cache wraps the whole
// pipeline; it is consulted before extraction and populated after assembly.
package convert

import (
	"context"
	"encoding/json"

	"github.com/phuslu/log"

	"github.com/mark3labs/docs2openapi/internal/cache"
	"github.com/mark3labs/docs2openapi/internal/extract"
	"github.com/mark3labs/docs2openapi/internal/spec"
)

// Converter runs the pipeline. The zero value converts without caching and
// logs through the package default logger; use New with options to inject a
// cache store and a logger.
type Converter struct {
	cache  cache.Store
	logger log.Logger
}

// Option mutates a Converter during construction.
type Option func(*Converter)

// WithCache supplies the content cache consulted around the pipeline. A nil
// store disables caching.
func WithCache(store cache.Store) Option {
	return func(c *Converter) { c.cache = store }
}

// WithLogger supplies the structured logger used for advisory events.
func WithLogger(logger log.Logger) Option {
	return func(c *Converter) { c.logger = logger }
}

// New builds a Converter with the given options applied.
func New(opts ...Option) *Converter {
	c := &Converter{logger: log.DefaultLogger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of one conversion. Document holds the canonical JSON
// serialization of the assembled OpenAPI document; CacheHit reports whether
// it was served from the cache instead of recomputed.
type Result struct {
	Document    []byte
	Fingerprint string
	Endpoints   int
	CacheHit    bool
}

// Convert turns raw documentation text into a canonical OpenAPI 3.0 document.
// Extraction anomalies degrade to a best-effort structured result: inputs
// without a single recognized declaration still produce a minimal valid
// document. Cache trouble is advisory only; lookup or store failures fall
// back to full recomputation with a warning.
func (c *Converter) Convert(ctx context.Context, input []byte) (*Result, error) {
	fp := cache.Fingerprint(input)

	if c.cache != nil {
		payload, found, err := c.cache.Lookup(ctx, fp)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Msg("cache unavailable, recomputing")
		case found && json.Valid(payload):
			c.logger.Debug().Str("fingerprint", fp).Msg("cache hit")
			return &Result{Document: payload, Fingerprint: fp, CacheHit: true}, nil
		case found:
			// A corrupt entry counts as a miss; the store below repairs it.
			c.logger.Warn().Str("fingerprint", fp).Msg("discarding corrupt cache entry")
		}
	}

	text := string(input)
	endpoints := extract.Scan(text)
	if len(endpoints) == 0 {
		c.logger.Warn().Msg("no endpoints detected in input")
	}

	doc := spec.BuildDocument(endpoints, extract.Title(text, spec.DefaultTitle))
	payload, err := spec.MarshalCanonical(doc)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Store(ctx, fp, payload); err != nil {
			c.logger.Warn().Err(err).Msg("cache store failed")
		}
	}

	return &Result{Document: payload, Fingerprint: fp, Endpoints: len(endpoints)}, nil
}
