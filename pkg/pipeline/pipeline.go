// Package pipeline computes render-ready figures from a results object.
//
// It is the single caller of the heatmap layout stages, used by every
// command of the CLI. Two figures are computed per results object:
//
//  1. Heatmap: filter → index → sort → matrix → annotate → assemble
//  2. Dendrogram: adapt the precomputed clustering figure → assemble
//
// [Result.Selected] returns the one to hand to the renderer, following
// the dendrogram toggle of the options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Load(ctx, "results.xlsx", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := runner.Execute(ctx, res, pipeline.Options{Heatmap: heatmap.DefaultOptions()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fig := out.Selected()
//
// [BuildHeatmap], [BuildDendrogram] and [Build] compute figures without a
// cache. They never fail and are idempotent: the same inputs always yield
// the same figure.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/dendrogram"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
)

// DefaultTickBudget is the tick label budget used when Options leaves it
// unset.
const DefaultTickBudget = dendrogram.DefaultTickBudget

// Options configures one pipeline run.
type Options struct {
	Heatmap heatmap.Options `json:"heatmap"`

	// TickBudget caps the tick labels per clustering axis. Zero selects
	// DefaultTickBudget.
	TickBudget int `json:"tick_budget,omitempty"`

	// Config is attached to both figures. Nil selects plot.DefaultConfig.
	Config *plot.Config `json:"config,omitempty"`

	// Title overrides the run name of the results object.
	Title string `json:"title,omitempty"`

	// Refresh skips cache lookups. Results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Heatmap is the plain heatmap figure.
	Heatmap plot.Plot

	// Dendrogram is the clustering figure. It is empty when the results
	// object carries no clustering descriptor.
	Dendrogram plot.Plot

	// ShowDendrogram is set when the dendrogram view was requested and is
	// available.
	ShowDendrogram bool

	// ResultsHash is the content hash of the results object.
	ResultsHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Selected returns the figure to render.
func (r *Result) Selected() plot.Plot {
	if r.ShowDendrogram {
		return r.Dendrogram
	}
	return r.Heatmap
}

// Stats contains run statistics.
type Stats struct {
	Records   int           `json:"records"`
	Filtered  int           `json:"filtered"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Populated int           `json:"populated"`
	Duration  time.Duration `json:"duration"`
}

// CacheInfo tracks which steps were served from the cache.
type CacheInfo struct {
	ImportHit bool // Whether the imported results came from cache
	PlotHit   bool // Whether both figures came from cache
}

// ValidateAndSetDefaults checks the options and fills defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Heatmap = o.Heatmap.WithDefaults()
	if err := o.Heatmap.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateTickBudget(o.TickBudget); err != nil {
		return err
	}
	if o.TickBudget == 0 {
		o.TickBudget = DefaultTickBudget
	}
	if o.Config == nil {
		cfg := plot.DefaultConfig()
		o.Config = &cfg
	}
	if err := ValidateExportFormat(o.Config.ToImageButtonOptions.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateExportFormat checks an image export format.
func ValidateExportFormat(format string) error {
	if !plot.ValidExportFormats[format] {
		return errors.NewValidationError("export_format", "must be one of: svg, png, jpeg, webp (got "+format+")")
	}
	return nil
}
