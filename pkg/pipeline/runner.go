package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cometsanalytics/heatmatrix/pkg/cache"
	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/io"
	"github.com/cometsanalytics/heatmatrix/pkg/observability"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Cache key types reported to the cache hooks.
const (
	keyTypePlot   = "plot"
	keyTypeImport = "import"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached figures. Zero selects cache.TTLPlot.
	TTL time.Duration
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

// cachedResult is the cache entry of a figure pair.
type cachedResult struct {
	Heatmap    plot.Plot `json:"heatmap"`
	Dendrogram plot.Plot `json:"dendrogram"`
	Stats      Stats     `json:"stats"`
}

// Execute computes both figures of res, serving them from the cache when
// the same results and options were seen before. Cache failures are logged
// and never fail the run.
func (r *Runner) Execute(ctx context.Context, res *results.Results, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if res == nil {
		return nil, errors.New(errors.ErrCodeInvalidResults, "no results object")
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidResults, err, "encode results")
	}
	resultsHash := cache.Hash(data)
	key := r.Keyer.PlotKey(resultsHash, cache.PlotKeyOpts{
		Heatmap:    opts.Heatmap,
		TickBudget: opts.TickBudget,
		Config:     *opts.Config,
		Title:      title(res, opts),
	})
	showDendrogram := opts.Heatmap.ShowDendrogram && res.HasDendrogram()

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			opts.Logger.Debug("figures served from cache", "key", key)
			return &Result{
				Heatmap:        cached.Heatmap,
				Dendrogram:     cached.Dendrogram,
				ShowDendrogram: showDendrogram,
				ResultsHash:    resultsHash,
				Stats:          cached.Stats,
				CacheInfo:      CacheInfo{PlotHit: true},
			}, nil
		}
	}

	out := Build(ctx, res, opts)
	out.ResultsHash = resultsHash
	opts.Logger.Info("computed figures",
		"records", out.Stats.Records,
		"filtered", out.Stats.Filtered,
		"rows", out.Stats.Rows,
		"cols", out.Stats.Cols,
		"dendrogram", !out.Dendrogram.IsEmpty(),
		"duration", out.Stats.Duration)

	r.store(ctx, key, keyTypePlot, cachedResult{
		Heatmap:    out.Heatmap,
		Dendrogram: out.Dendrogram,
		Stats:      out.Stats,
	}, r.plotTTL())
	return out, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedResult, bool) {
	var entry cachedResult
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypePlot)
		return entry, false
	}
	// Numbers stay json.Number so cached figures marshal to the same bytes.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&entry); err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
		observability.Cache().OnCacheMiss(ctx, keyTypePlot)
		return entry, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypePlot)
	return entry, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("cache encode failed", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// LoadOptions configures Load.
type LoadOptions struct {
	// Sheet names the workbook sheet for XLSX input.
	Sheet string

	// Refresh skips cache lookups.
	Refresh bool
}

// Load reads a results object from path. Workbook and CSV imports are
// cached by file content. The returned bool reports a cache hit.
func (r *Runner) Load(ctx context.Context, path string, opts LoadOptions) (*results.Results, bool, error) {
	format, err := errors.DetectFormat(path)
	if err != nil {
		return nil, false, err
	}
	if format == errors.FormatJSON {
		res, err := io.ImportResults(path)
		return res, false, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	key := r.Keyer.ImportKey(cache.Hash(raw), cache.ImportKeyOpts{Format: format, Sheet: opts.Sheet})

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		if err == nil && hit {
			if res, err := io.ReadResults(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeImport)
				return res, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeImport)
	}

	var res *results.Results
	if format == errors.FormatXLSX {
		res, err = io.ReadXLSX(bytes.NewReader(raw), opts.Sheet)
	} else {
		res, err = io.ReadCSV(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	r.Logger.Debug("imported results", "path", path, "format", format, "records", len(res.Effects))

	r.store(ctx, key, keyTypeImport, res, cache.TTLImport)
	return res, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) plotTTL() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLPlot
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
