package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/growthchart/pkg/cache"
	"github.com/matzehuels/growthchart/pkg/chart/layout"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/measure"
	"github.com/matzehuels/growthchart/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different options; they share one font measurer.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// LayoutTTL overrides cache.TTLLayout when positive.
	LayoutTTL time.Duration

	measureOnce sync.Once
	opentype    *measure.Opentype
	cached      measure.Measurer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
// A failed layout is not an error: the artifacts carry the failure message
// and [Result.Err] reports it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	raw, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Raw = raw
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Categories = len(raw.Categories)
	result.Stats.Series = len(raw.Groups)

	r.Logger.Debug("loaded data",
		"categories", result.Stats.Categories,
		"series", result.Stats.Series,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	dataHash, err := cache.HashJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("hash data: %w", err)
	}
	result.DataHash = dataHash
	l, layoutHit, err := r.layoutWithHash(ctx, raw, dataHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Columns = len(l.Columns)
	result.Stats.Warnings = len(l.Warnings)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"columns", len(l.Columns),
		"segments", len(l.Segments),
		"indicators", len(l.Indicators),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit
// info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, raw table.Raw, opts Options) (*layout.Layout, bool, error) {
	dataHash, err := cache.HashJSON(raw)
	if err != nil {
		return nil, false, fmt.Errorf("hash data: %w", err)
	}
	return r.layoutWithHash(ctx, raw, dataHash, opts)
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, raw table.Raw, opts Options) (*layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, raw, opts)
	return l, err
}

func (r *Runner) layoutWithHash(ctx context.Context, raw table.Raw, dataHash string, opts Options) (*layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	keyOpts, err := opts.LayoutKeyOpts()
	if err != nil {
		return nil, false, fmt.Errorf("hash config: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(dataHash, keyOpts)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if l, err := layout.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				logLayout(opts, l)
				return l, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l := GenerateLayout(ctx, raw, r.measurer(opts), opts)

	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.layoutTTL()); err != nil {
			r.Logger.Debug("cache layout", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// LayoutTable lays out an already built table without consulting the cache.
// It suits interactive callers that recompute one table under changing
// options.
func (r *Runner) LayoutTable(ctx context.Context, t *table.Table, opts Options) (*layout.Layout, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	return GenerateTableLayout(ctx, t, r.measurer(opts), opts), nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Only formats missing from the cache are rendered; the hit flag is
// true when every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keyOpts, err := opts.ArtifactKeyOpts(format)
		if err != nil {
			return nil, false, fmt.Errorf("hash style: %w", err)
		}
		keys[format] = r.Keyer.ArtifactKey(layoutHash, keyOpts)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, keys[format]); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := renderFormats(ctx, l, missing, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if err := r.Cache.Set(ctx, keys[format], data, cache.TTLArtifact); err != nil {
			r.Logger.Debug("cache artifact", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

func (r *Runner) layoutTTL() time.Duration {
	if r.LayoutTTL > 0 {
		return r.LayoutTTL
	}
	return cache.TTLLayout
}

// measurer returns the text measurer for opts. The opentype measurer is
// created on first use and shared by all runs.
func (r *Runner) measurer(opts Options) measure.Measurer {
	if opts.Measurer != nil {
		return opts.Measurer
	}
	if opts.MeasurerName() == MeasurerHeuristic {
		return measure.Heuristic{}
	}
	r.measureOnce.Do(func() {
		r.opentype = measure.NewOpentype()
		r.cached = measure.NewCached(r.opentype)
	})
	return r.cached
}

// Close releases resources held by the runner: the cache and font faces.
func (r *Runner) Close() error {
	if r.opentype != nil {
		r.opentype.Close()
	}
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
