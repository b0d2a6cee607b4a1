package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/io"
	"github.com/cometsanalytics/heatmatrix/pkg/pipeline"
)

const (
	plotSuffix = ".plot.json"  // single figure output
	pairSuffix = ".plots.json" // heatmap and dendrogram output
	stdoutPath = "-"
)

// layoutFlags holds the heatmap flags shared by render and preview. Only
// flags set on the command line override the config file.
type layoutFlags struct {
	xKey, yKey, zKey, pKey string
	sortColumn             string
	pvalueMin, pvalueMax   string
	annotations            bool
	dendrogram             bool
	title                  string
	tickBudget             int
	sheet                  string
	noCache                bool
	refresh                bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.xKey, "x-key", "", "record field mapped to columns (default "+heatmap.DefaultXKey+")")
	cmd.Flags().StringVar(&f.yKey, "y-key", "", "record field mapped to rows (default "+heatmap.DefaultYKey+")")
	cmd.Flags().StringVar(&f.zKey, "z-key", "", "record field holding the effect value (default "+heatmap.DefaultZKey+")")
	cmd.Flags().StringVar(&f.pKey, "p-key", "", "record field holding the significance (default "+heatmap.DefaultPKey+")")
	cmd.Flags().StringVar(&f.sortColumn, "sort-column", "", "column whose values order the rows (default: first column)")
	cmd.Flags().StringVar(&f.pvalueMin, "pvalue-min", "", "lowest significance to keep")
	cmd.Flags().StringVar(&f.pvalueMax, "pvalue-max", "", "highest significance to keep")
	cmd.Flags().BoolVar(&f.annotations, "annotations", false, "print the effect value in each cell")
	cmd.Flags().BoolVar(&f.dendrogram, "dendrogram", false, "select the clustering figure when the results carry one")
	cmd.Flags().StringVar(&f.title, "title", "", "figure title (default: run name of the results)")
	cmd.Flags().IntVar(&f.tickBudget, "tick-budget", 0, "maximum tick labels per clustering axis")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "workbook sheet for XLSX input (default "+io.DefaultSheet+")")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// overrides returns the heatmap options set on the command line.
func (f *layoutFlags) overrides(cmd *cobra.Command) heatmap.Overrides {
	return heatmap.Overrides{
		XKey:            flagRef(cmd, "x-key", f.xKey),
		YKey:            flagRef(cmd, "y-key", f.yKey),
		ZKey:            flagRef(cmd, "z-key", f.zKey),
		PKey:            flagRef(cmd, "p-key", f.pKey),
		SortColumn:      flagRef(cmd, "sort-column", f.sortColumn),
		ShowAnnotations: flagRef(cmd, "annotations", f.annotations),
		ShowDendrogram:  flagRef(cmd, "dendrogram", f.dendrogram),
		PValueMin:       flagRef(cmd, "pvalue-min", f.pvalueMin),
		PValueMax:       flagRef(cmd, "pvalue-max", f.pvalueMax),
	}
}

// flagRef returns a pointer to v when the named flag was set.
func flagRef[T any](cmd *cobra.Command, name string, v T) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// pipelineOptions merges the config file and the command flags.
func (c *CLI) pipelineOptions(cmd *cobra.Command, f *layoutFlags) (pipeline.Options, error) {
	pc := c.Config.PlotConfig()
	opts := pipeline.Options{
		Heatmap:    c.Config.HeatmapOptions().WithOverrides(f.overrides(cmd)),
		TickBudget: c.Config.Render.TickBudget,
		Config:     &pc,
		Title:      f.title,
		Refresh:    f.refresh,
		Logger:     c.Logger,
	}
	if cmd.Flags().Changed("tick-budget") {
		opts.TickBudget = f.tickBudget
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// renderCommand creates the render command for computing figures.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
		both   bool
	)

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Compute heatmap figures from results objects",
		Long: `Compute render-ready heatmap figures from one or more results objects.

Inputs may be results JSON, XLSX workbooks or CSV effect tables. Each input
writes <input>.plot.json next to it, or <input>.plots.json with --both.`,
		Example: `  heatmatrix render results.json
  heatmatrix render effects.xlsx --pvalue-max 0.05 --annotations
  heatmatrix render a.json b.json c.json --both
  heatmatrix render results.json --dendrogram -o -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return errors.NewValidationError("output", "cannot be combined with several inputs")
			}
			opts, err := c.pipelineOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, renderJob{
				opts:    opts,
				load:    pipeline.LoadOptions{Sheet: flags.sheet, Refresh: flags.refresh},
				output:  output,
				both:    both,
				noCache: flags.noCache,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (single input only)")
	cmd.Flags().BoolVar(&both, "both", false, "write the heatmap and dendrogram figures together")

	return cmd
}

type renderJob struct {
	opts    pipeline.Options
	load    pipeline.LoadOptions
	output  string
	both    bool
	noCache bool
}

// rendered is the outcome of one input.
type rendered struct {
	input  string
	path   string
	result *pipeline.Result
	cached bool
}

// runRender computes the figures of every input concurrently and writes
// one output file per input.
func (c *CLI) runRender(ctx context.Context, inputs []string, job renderJob) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, job.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if job.output != stdoutPath {
		spinner = newSpinner(ctx, fmt.Sprintf("Computing figures for %d input(s)...", len(inputs)))
		spinner.Start()
	}

	out := make([]rendered, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, input := range inputs {
		g.Go(func() error {
			r, err := c.renderOne(gctx, runner, input, job)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			out[i] = r
			return nil
		})
	}
	err = g.Wait()
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if job.output == stdoutPath {
		return nil
	}

	for _, r := range out {
		printSuccess("Rendered %s", r.input)
		printStats(r.result.Stats.Rows, r.result.Stats.Cols, r.result.Stats.Populated, r.cached)
		printFile(r.path)
	}
	prog.done(fmt.Sprintf("Rendered %d input(s)", len(inputs)))
	if len(out) == 1 && out[0].result.Dendrogram.IsEmpty() && job.opts.Heatmap.ShowDendrogram {
		printWarning("No clustering figure in %s; wrote the plain heatmap", out[0].input)
	}
	return nil
}

func (c *CLI) renderOne(ctx context.Context, runner *pipeline.Runner, input string, job renderJob) (rendered, error) {
	res, importHit, err := runner.Load(ctx, input, job.load)
	if err != nil {
		return rendered{}, err
	}
	result, err := runner.Execute(ctx, res, job.opts)
	if err != nil {
		return rendered{}, err
	}
	result.CacheInfo.ImportHit = importHit

	path := outputPath(input, job.output, job.both)
	if path == stdoutPath {
		if job.both {
			err = io.WritePair(os.Stdout, pairOf(result))
		} else {
			err = io.WritePlot(os.Stdout, result.Selected())
		}
		return rendered{input: input, path: path, result: result}, err
	}

	if job.both {
		err = io.ExportPair(pairOf(result), path)
	} else {
		err = io.ExportPlot(result.Selected(), path)
	}
	if err != nil {
		return rendered{}, err
	}
	return rendered{
		input:  input,
		path:   path,
		result: result,
		cached: result.CacheInfo.PlotHit,
	}, nil
}

func pairOf(r *pipeline.Result) io.Pair {
	return io.Pair{Heatmap: r.Heatmap, Dendrogram: r.Dendrogram}
}

// outputPath returns output when set, otherwise the input path with its
// extension replaced by the figure suffix.
func outputPath(input, output string, both bool) string {
	if output != "" {
		return output
	}
	suffix := plotSuffix
	if both {
		suffix = pairSuffix
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}
