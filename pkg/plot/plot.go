// Package plot defines the output boundary of the heatmap engine: the
// trace/layout object handed to the charting engine.
//
// The shape follows the figure format of common web charting libraries:
//
//	{"data": [Trace...], "layout": {...}, "config": {...}}
//
// Only the trace and layout properties the engine produces are modelled.
// A [Plot] is plain data; nothing in this package draws.
package plot

import "github.com/cometsanalytics/heatmatrix/pkg/results"

// Trace types produced by the engine.
const (
	TypeHeatmap = "heatmap"
	TypeScatter = "scatter"
)

// Axis references used by annotations.
const (
	RefX  = "x"
	RefY  = "y"
	RefY2 = "y2"
)

// Plot is a render-ready figure.
type Plot struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Config *Config `json:"config,omitempty"`
}

// Empty returns the figure used when there is nothing to draw: no traces
// and an empty layout.
func Empty() Plot {
	return Plot{Data: []Trace{}}
}

// IsEmpty reports whether p has no traces.
func (p Plot) IsEmpty() bool {
	return len(p.Data) == 0
}

// Trace is one series of the figure.
//
// X and Y hold category labels for the plain heatmap and numeric
// coordinates for dendrogram traces. Text holds either a single string or a
// matrix of per-cell hover strings.
type Trace struct {
	Type          string                   `json:"type"`
	Mode          string                   `json:"mode,omitempty"`
	X             any                      `json:"x,omitempty"`
	Y             any                      `json:"y,omitempty"`
	Z             [][]*float64             `json:"z,omitempty"`
	CustomData    [][]results.EffectRecord `json:"customdata,omitempty"`
	Text          any                      `json:"text,omitempty"`
	HoverInfo     string                   `json:"hoverinfo,omitempty"`
	HoverTemplate string                   `json:"hovertemplate,omitempty"`
	XAxis         string                   `json:"xaxis,omitempty"`
	YAxis         string                   `json:"yaxis,omitempty"`
	ColorBar      *ColorBar                `json:"colorbar,omitempty"`
	ShowLegend    *bool                    `json:"showlegend,omitempty"`
}

// ColorBar describes the color scale legend of a heatmap trace.
type ColorBar struct {
	Title Title `json:"title"`
}

// Title is a text label.
type Title struct {
	Text string `json:"text"`
}

// Layout is the figure layout.
type Layout struct {
	Title       string       `json:"title,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	XAxis2      *Axis        `json:"xaxis2,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	YAxis2      *Axis        `json:"yaxis2,omitempty"`
}

// Margin is the figure margin in pixels.
type Margin struct {
	L          *float64 `json:"l,omitempty"`
	R          *float64 `json:"r,omitempty"`
	T          *float64 `json:"t,omitempty"`
	B          *float64 `json:"b,omitempty"`
	Pad        *float64 `json:"pad,omitempty"`
	AutoExpand *bool    `json:"autoexpand,omitempty"`
}

// Axis is the set of axis properties a figure may carry. Every property
// the engine emits is a named field; there is no free-form escape hatch.
type Axis struct {
	Anchor         string    `json:"anchor,omitempty"`
	AutoMargin     *bool     `json:"automargin,omitempty"`
	AutoRange      any       `json:"autorange,omitempty"`
	Domain         []float64 `json:"domain,omitempty"`
	Range          []float64 `json:"range,omitempty"`
	CategoryArray  []string  `json:"categoryarray,omitempty"`
	CategoryOrder  string    `json:"categoryorder,omitempty"`
	ShowGrid       *bool     `json:"showgrid,omitempty"`
	ShowLine       *bool     `json:"showline,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	TickColor      string    `json:"tickcolor,omitempty"`
	TickLen        *float64  `json:"ticklen,omitempty"`
	TickMode       string    `json:"tickmode,omitempty"`
	Ticks          string    `json:"ticks,omitempty"`
	TickWidth      *float64  `json:"tickwidth,omitempty"`
	Type           string    `json:"type,omitempty"`
	TickVals       []float64 `json:"tickvals,omitempty"`
	TickText       []string  `json:"ticktext,omitempty"`
}

// Annotation is a text label placed at data coordinates.
type Annotation struct {
	X         any    `json:"x"`
	Y         any    `json:"y"`
	Text      string `json:"text"`
	XRef      string `json:"xref"`
	YRef      string `json:"yref"`
	ShowArrow bool   `json:"showarrow"`
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
