package dendrogram

import (
	"slices"
	"strings"

	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Option configures Adapt.
type Option func(*adapter)

// WithTickBudget sets the maximum number of tick labels per category
// axis. A budget of zero or less disables thinning.
func WithTickBudget(n int) Option {
	return func(a *adapter) { a.budget = n }
}

type adapter struct {
	budget int
	labels heatmap.Labels
	layout results.Layout
}

// Adapt converts a clustering figure into a render-ready figure.
// It returns [plot.Empty] when d is nil or has no heatmap trace.
func Adapt(d *results.Descriptor, opts heatmap.Options, options ...Option) plot.Plot {
	h, ok := d.FindHeatmap()
	if !ok {
		return plot.Empty()
	}

	a := adapter{
		budget: DefaultTickBudget,
		labels: opts.WithDefaults().Labels,
		layout: d.Layout,
	}
	for _, o := range options {
		o(&a)
	}

	traces := make([]plot.Trace, 0, len(d.Traces))
	for _, t := range d.Traces {
		switch t := t.(type) {
		case *results.ConnectorTrace:
			if len(t.X) < 2 {
				continue
			}
			traces = append(traces, connector(t))
		case *results.HeatmapTrace:
			traces = append(traces, a.heatmap(t))
		}
	}

	var annotations []plot.Annotation
	if opts.ShowAnnotations {
		annotations = cellAnnotations(h)
	}

	return plot.Plot{
		Data: traces,
		Layout: plot.Layout{
			Annotations: annotations,
			Margin:      margin(a.layout.Margin),
			XAxis:       a.sampledAxis(a.layout.XAxis),
			XAxis2:      projectAxis(a.layout.XAxis2),
			YAxis:       projectAxis(a.layout.YAxis),
			YAxis2:      a.sampledAxis(a.layout.YAxis2),
		},
	}
}

func connector(t *results.ConnectorTrace) plot.Trace {
	return plot.Trace{
		Type:       plot.TypeScatter,
		Mode:       t.Mode,
		X:          slices.Clone(t.X),
		Y:          slices.Clone(t.Y),
		Text:       t.Text,
		HoverInfo:  t.HoverInfo,
		XAxis:      t.XAxis,
		YAxis:      t.YAxis,
		ShowLegend: plot.Bool(false),
	}
}

func (a *adapter) heatmap(t *results.HeatmapTrace) plot.Trace {
	return plot.Trace{
		Type:      plot.TypeHeatmap,
		X:         slices.Clone(t.X),
		Y:         slices.Clone(t.Y),
		Z:         cloneMatrix(t.Z),
		Text:      a.hoverText(t),
		HoverInfo: t.HoverInfo,
		XAxis:     t.XAxis,
		YAxis:     t.YAxis,
	}
}

// hoverText builds one label per cell, rows following t.Y.
func (a *adapter) hoverText(t *results.HeatmapTrace) [][]string {
	text := make([][]string, len(t.Y))
	for i, y := range t.Y {
		yCat := a.layout.YAxis2.Category(y)
		text[i] = make([]string, len(t.X))
		for j, x := range t.X {
			text[i][j] = strings.Join([]string{
				"<b>" + a.labels.X + "</b>: " + a.layout.XAxis.Category(x),
				"<b>" + a.labels.Y + "</b>: " + yCat,
				"<b>" + a.labels.Z + "</b>: " + results.FormatValue(t.At(i, j)),
			}, "<br>")
		}
	}
	return text
}

func cellAnnotations(t *results.HeatmapTrace) []plot.Annotation {
	out := make([]plot.Annotation, 0, len(t.X)*len(t.Y))
	for i, y := range t.Y {
		for j, x := range t.X {
			out = append(out, plot.Annotation{
				X:    x,
				Y:    y,
				Text: results.FormatValue(t.At(i, j)),
				XRef: plot.RefX,
				YRef: plot.RefY2,
			})
		}
	}
	return out
}

// sampledAxis projects a category axis and thins its ticks.
func (a *adapter) sampledAxis(src *results.Axis) *plot.Axis {
	if src == nil {
		return nil
	}
	out := projectAxis(src)
	out.TickVals, out.TickText = SampleTicks(src.TickVals, src.TickText, a.budget)
	return out
}

// projectAxis copies the allowed properties of src. Tick arrays are not
// carried.
func projectAxis(src *results.Axis) *plot.Axis {
	if src == nil {
		return nil
	}
	return &plot.Axis{
		Anchor:         src.Anchor,
		AutoMargin:     src.AutoMargin,
		AutoRange:      src.AutoRange,
		Domain:         slices.Clone(src.Domain),
		Range:          slices.Clone(src.Range),
		CategoryArray:  slices.Clone([]string(src.CategoryArray)),
		CategoryOrder:  src.CategoryOrder,
		ShowGrid:       src.ShowGrid,
		ShowLine:       src.ShowLine,
		ShowTickLabels: src.ShowTickLabels,
		TickColor:      src.TickColor,
		TickLen:        src.TickLen,
		TickMode:       src.TickMode,
		Ticks:          src.Ticks,
		TickWidth:      src.TickWidth,
		Type:           src.Type,
	}
}

func margin(src *results.Margin) *plot.Margin {
	if src == nil {
		return nil
	}
	return &plot.Margin{
		L:          src.L,
		R:          src.R,
		T:          src.T,
		B:          src.B,
		Pad:        src.Pad,
		AutoExpand: src.AutoExpand,
	}
}

func cloneMatrix(z [][]*float64) [][]*float64 {
	if z == nil {
		return nil
	}
	out := make([][]*float64, len(z))
	for i, row := range z {
		out[i] = make([]*float64, len(row))
		for j, v := range row {
			if v != nil {
				c := *v
				out[i][j] = &c
			}
		}
	}
	return out
}
