package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kkpan11/heavydb/pkg/cache"
	"github.com/kkpan11/heavydb/pkg/observability"
	"github.com/kkpan11/heavydb/pkg/plan"
	"github.com/kkpan11/heavydb/pkg/planfile"
)

// cacheKeyType labels cache events reported to observability hooks.
const cacheKeyType = "explain"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the complete load → explain → render pipeline with caching.
// Cache read and write failures are logged and otherwise ignored.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{PlanHash: cache.Hash(opts.Plan)}
	key := r.Keyer.ExplainKey(result.PlanHash, opts.KeyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "err", err)
		case hit:
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			r.Logger.Debug("cache hit", "plan", short(result.PlanHash), "format", opts.Format)
			result.Output = data
			result.CacheHit = true
			return result, nil
		default:
			observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		}
	}

	// Stage 1: Load
	loadStart := time.Now()
	p, err := planfile.Parse(opts.Plan)
	result.Stats.LoadTime = time.Since(loadStart)
	if p != nil {
		result.Stats.NodeCount = plan.Count(p.Root)
	}
	observability.Explain().OnLoadComplete(ctx, result.Stats.NodeCount, result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.Plan = p

	r.Logger.Info("loaded plan",
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.LoadTime)

	// Stages 2 and 3: Explain and render
	explainStart := time.Now()
	observability.Explain().OnExplainStart(ctx, opts.Format)
	out, records, err := Render(ctx, p.Root, opts)
	result.Stats.ExplainTime = time.Since(explainStart)
	observability.Explain().OnExplainComplete(ctx, opts.Format, records, result.Stats.ExplainTime, err)
	if err != nil {
		return nil, err
	}
	result.Output = out
	result.Stats.Records = records

	r.Logger.Info("explained plan",
		"format", opts.Format,
		"records", records,
		"bytes", len(out),
		"duration", result.Stats.ExplainTime)

	if err := r.Cache.Set(ctx, key, out, cache.TTLExplain); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(out))
	}
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
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

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
