// Package assemble merges the outputs of the layout stages into the final
// figure handed to the renderer.
//
// Nothing else in the engine builds a [plot.Plot] for rendering; every
// figure, plain or clustered, passes through here.
package assemble

import (
	"strings"

	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/matrix"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
)

// Option configures assembly.
type Option func(*settings)

type settings struct {
	config plot.Config
}

// WithConfig sets the renderer config attached to the figure.
func WithConfig(c plot.Config) Option {
	return func(s *settings) { s.config = c }
}

func newSettings(opts []Option) settings {
	s := settings{config: plot.DefaultConfig()}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Heatmap assembles the plain heatmap figure.
//
// Both axes get automargin so long category labels stay visible, and
// annotations are attached only when opts enables them.
func Heatmap(g matrix.Grid, annotations []plot.Annotation, opts heatmap.Options, title string, options ...Option) plot.Plot {
	s := newSettings(options)
	opts = opts.WithDefaults()

	trace := plot.Trace{
		Type:          plot.TypeHeatmap,
		X:             g.X,
		Y:             g.Y,
		Z:             g.Values,
		CustomData:    g.Meta,
		HoverTemplate: HoverTemplate(opts.Labels, opts.PKey),
		ColorBar:      colorBar(opts.Labels),
	}

	layout := plot.Layout{
		Title: title,
		XAxis: &plot.Axis{AutoMargin: plot.Bool(true)},
		YAxis: &plot.Axis{AutoMargin: plot.Bool(true)},
	}
	if opts.ShowAnnotations {
		layout.Annotations = annotations
	}

	cfg := s.config
	return plot.Plot{Data: []plot.Trace{trace}, Layout: layout, Config: &cfg}
}

// Dendrogram finishes an adapted clustering figure: it attaches the title,
// the color bar label on heatmap traces and the renderer config. An empty
// figure is returned unchanged.
func Dendrogram(p plot.Plot, opts heatmap.Options, title string, options ...Option) plot.Plot {
	if p.IsEmpty() {
		return p
	}
	s := newSettings(options)
	opts = opts.WithDefaults()

	data := make([]plot.Trace, len(p.Data))
	for i, t := range p.Data {
		if t.Type == plot.TypeHeatmap {
			t.ColorBar = colorBar(opts.Labels)
		}
		data[i] = t
	}

	layout := p.Layout
	layout.Title = title
	if !opts.ShowAnnotations {
		layout.Annotations = nil
	}

	cfg := s.config
	return plot.Plot{Data: data, Layout: layout, Config: &cfg}
}

// HoverTemplate returns the per-cell hover template of the plain heatmap.
func HoverTemplate(l heatmap.Labels, pKey string) string {
	return strings.Join([]string{
		"<b>" + l.X + "</b>: %{x}",
		"<b>" + l.Y + "</b>: %{y}",
		"<b>" + l.Z + "</b>: %{z}",
		"<b>" + l.Significance + "</b>: %{customdata." + pKey + "}",
		"<extra></extra>",
	}, "<br>")
}

func colorBar(l heatmap.Labels) *plot.ColorBar {
	return &plot.ColorBar{Title: plot.Title{Text: l.Z}}
}
