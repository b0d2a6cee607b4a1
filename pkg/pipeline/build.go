package pipeline

import (
	"context"
	"time"

	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/annotate"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/assemble"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/dendrogram"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/filter"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/matrix"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/ordering"
	"github.com/cometsanalytics/heatmatrix/pkg/observability"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Build computes both figures of res. The options must have passed
// ValidateAndSetDefaults. The returned Result has no cache information.
func Build(ctx context.Context, res *results.Results, opts Options) *Result {
	start := time.Now()
	h, stats := buildHeatmap(ctx, res, opts)
	d := BuildDendrogram(ctx, res, opts)
	stats.Duration = time.Since(start)

	return &Result{
		Heatmap:        h,
		Dendrogram:     d,
		ShowDendrogram: opts.Heatmap.ShowDendrogram && res.HasDendrogram(),
		Stats:          stats,
	}
}

// BuildHeatmap computes the plain heatmap of res. It returns [plot.Empty]
// when res has no heatmap data or the significance filter keeps nothing.
func BuildHeatmap(ctx context.Context, res *results.Results, opts Options) plot.Plot {
	p, _ := buildHeatmap(ctx, res, opts)
	return p
}

func buildHeatmap(ctx context.Context, res *results.Results, opts Options) (plot.Plot, Stats) {
	var stats Stats
	if !res.HasHeatmap() {
		return plot.Empty(), stats
	}
	h := opts.Heatmap
	keys := h.Keys()
	stats.Records = len(res.Effects)

	records := stage(ctx, observability.StageFilter, func() []results.EffectRecord {
		return filter.Apply(res.Effects, h.Bounds(), keys.P)
	})
	stats.Filtered = len(records)
	if len(records) == 0 {
		return plot.Empty(), stats
	}

	xs := stage(ctx, observability.StageIndex, func() ordering.Categories {
		return ordering.Index(records, keys.X)
	})
	ys := stage(ctx, observability.StageSort, func() []string {
		return ordering.SortRows(records, xs.Sorted, h.SortColumn, keys)
	})
	grid := stage(ctx, observability.StageMatrix, func() matrix.Grid {
		return matrix.Build(records, xs.Sorted, ys, keys)
	})
	stats.Rows, stats.Cols, stats.Populated = grid.Rows(), grid.Cols(), grid.Populated()

	annotations := stage(ctx, observability.StageAnnotate, func() []plot.Annotation {
		return annotate.Build(records, keys, h.ShowAnnotations)
	})
	p := stage(ctx, observability.StageAssemble, func() plot.Plot {
		return assemble.Heatmap(grid, annotations, h, title(res, opts), assemble.WithConfig(config(opts)))
	})
	return p, stats
}

// BuildDendrogram computes the clustering figure of res. It returns
// [plot.Empty] when res carries no usable clustering descriptor.
func BuildDendrogram(ctx context.Context, res *results.Results, opts Options) plot.Plot {
	if !res.HasDendrogram() {
		return plot.Empty()
	}
	adapted := stage(ctx, observability.StageDendrogram, func() plot.Plot {
		return dendrogram.Adapt(res.Heatmap.Dendrogram, opts.Heatmap, dendrogram.WithTickBudget(tickBudget(opts)))
	})
	return stage(ctx, observability.StageAssemble, func() plot.Plot {
		return assemble.Dendrogram(adapted, opts.Heatmap, title(res, opts), assemble.WithConfig(config(opts)))
	})
}

// stage runs fn between the pipeline hooks of s.
func stage[T any](ctx context.Context, s observability.Stage, fn func() T) T {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, s)
	start := time.Now()
	v := fn()
	hooks.OnStageComplete(ctx, s, time.Since(start), nil)
	return v
}

func title(res *results.Results, opts Options) string {
	if opts.Title != "" {
		return opts.Title
	}
	return res.Title()
}

func config(opts Options) plot.Config {
	if opts.Config == nil {
		return plot.DefaultConfig()
	}
	return *opts.Config
}

func tickBudget(opts Options) int {
	if opts.TickBudget == 0 {
		return DefaultTickBudget
	}
	return opts.TickBudget
}
