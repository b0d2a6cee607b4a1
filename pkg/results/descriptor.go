package results

import (
	"encoding/json"
	"fmt"
)

// TraceKind discriminates the trace variants of a [Descriptor].
type TraceKind string

const (
	// KindHeatmap is the clustered value matrix.
	KindHeatmap TraceKind = "heatmap"
	// KindConnector is a linkage segment of the dendrogram tree.
	KindConnector TraceKind = "scatter"
)

// Trace is one trace of a dendrogram figure: either a [*HeatmapTrace] or a
// [*ConnectorTrace].
type Trace interface {
	Kind() TraceKind
}

// HeatmapTrace is the clustered heatmap of a dendrogram figure.
// X and Y are 1-based tick indices into the layout's category arrays, and Z
// is the value matrix in clustering order (rows follow Y, columns follow X).
type HeatmapTrace struct {
	X         []float64    `json:"x"`
	Y         []float64    `json:"y"`
	Z         [][]*float64 `json:"z"`
	Text      any          `json:"text,omitempty"`
	HoverInfo string       `json:"hoverinfo,omitempty"`
	XAxis     string       `json:"xaxis,omitempty"`
	YAxis     string       `json:"yaxis,omitempty"`
}

// Kind implements [Trace].
func (*HeatmapTrace) Kind() TraceKind { return KindHeatmap }

// At returns the matrix value at (row, col), or nil when out of range.
func (t *HeatmapTrace) At(row, col int) *float64 {
	if row < 0 || row >= len(t.Z) {
		return nil
	}
	if col < 0 || col >= len(t.Z[row]) {
		return nil
	}
	return t.Z[row][col]
}

// MarshalJSON writes the trace with its "type" discriminator.
func (t HeatmapTrace) MarshalJSON() ([]byte, error) {
	type alias HeatmapTrace
	return json.Marshal(struct {
		Type TraceKind `json:"type"`
		alias
	}{KindHeatmap, alias(t)})
}

// ConnectorTrace is one linkage segment of the dendrogram tree.
type ConnectorTrace struct {
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Mode      string    `json:"mode,omitempty"`
	Text      any       `json:"text,omitempty"`
	HoverInfo string    `json:"hoverinfo,omitempty"`
	XAxis     string    `json:"xaxis,omitempty"`
	YAxis     string    `json:"yaxis,omitempty"`
}

// Kind implements [Trace].
func (*ConnectorTrace) Kind() TraceKind { return KindConnector }

// MarshalJSON writes the trace with its "type" discriminator.
func (t ConnectorTrace) MarshalJSON() ([]byte, error) {
	type alias ConnectorTrace
	return json.Marshal(struct {
		Type TraceKind `json:"type"`
		alias
	}{KindConnector, alias(t)})
}

// =============================================================================
// Descriptor
// =============================================================================

// Descriptor is an externally computed hierarchical-clustering figure.
type Descriptor struct {
	Traces []Trace
	Layout Layout
}

// Layout is the subset of the figure layout the engine reads.
type Layout struct {
	Margin *Margin `json:"margin,omitempty"`
	XAxis  *Axis   `json:"xaxis,omitempty"`
	XAxis2 *Axis   `json:"xaxis2,omitempty"`
	YAxis  *Axis   `json:"yaxis,omitempty"`
	YAxis2 *Axis   `json:"yaxis2,omitempty"`
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

// Axis is the decoded form of a source axis layout. Properties not named
// here are dropped when the descriptor is decoded.
type Axis struct {
	Anchor         string     `json:"anchor,omitempty"`
	AutoMargin     *bool      `json:"automargin,omitempty"`
	AutoRange      any        `json:"autorange,omitempty"`
	Domain         []float64  `json:"domain,omitempty"`
	Range          []float64  `json:"range,omitempty"`
	CategoryArray  StringList `json:"categoryarray,omitempty"`
	CategoryOrder  string     `json:"categoryorder,omitempty"`
	ShowGrid       *bool      `json:"showgrid,omitempty"`
	ShowLine       *bool      `json:"showline,omitempty"`
	ShowTickLabels *bool      `json:"showticklabels,omitempty"`
	TickColor      string     `json:"tickcolor,omitempty"`
	TickLen        *float64   `json:"ticklen,omitempty"`
	TickMode       string     `json:"tickmode,omitempty"`
	Ticks          string     `json:"ticks,omitempty"`
	TickWidth      *float64   `json:"tickwidth,omitempty"`
	Type           string     `json:"type,omitempty"`
	TickVals       []float64  `json:"tickvals,omitempty"`
	TickText       StringList `json:"ticktext,omitempty"`
}

// Category resolves a 1-based tick index to its category label.
// Indices that are out of range or not whole numbers yield "".
func (a *Axis) Category(index float64) string {
	if a == nil {
		return ""
	}
	i := int(index)
	if float64(i) != index || i < 1 || i > len(a.CategoryArray) {
		return ""
	}
	return a.CategoryArray[i-1]
}

// StringList is a list of labels that also accepts numbers and nulls in
// its JSON form.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(b []byte) error {
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	out := make(StringList, len(raw))
	for i, v := range raw {
		out[i] = FormatValue(v)
	}
	*s = out
	return nil
}

// FindHeatmap returns the first heatmap trace of the descriptor.
func (d *Descriptor) FindHeatmap() (*HeatmapTrace, bool) {
	if d == nil {
		return nil, false
	}
	for _, t := range d.Traces {
		if h, ok := t.(*HeatmapTrace); ok {
			return h, true
		}
	}
	return nil, false
}

// Empty reports whether the descriptor has no traces.
func (d *Descriptor) Empty() bool {
	return d == nil || len(d.Traces) == 0
}

type descriptorJSON struct {
	Data   []json.RawMessage `json:"data"`
	Layout Layout            `json:"layout"`
}

// UnmarshalJSON decodes a figure, resolving each trace to its kind.
// Traces of other kinds are skipped.
func (d *Descriptor) UnmarshalJSON(b []byte) error {
	var raw descriptorJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	traces := make([]Trace, 0, len(raw.Data))
	for i, data := range raw.Data {
		t, err := decodeTrace(data)
		if err != nil {
			return fmt.Errorf("trace %d: %w", i, err)
		}
		if t != nil {
			traces = append(traces, t)
		}
	}
	d.Traces = traces
	d.Layout = raw.Layout
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	traces := d.Traces
	if traces == nil {
		traces = []Trace{}
	}
	return json.Marshal(struct {
		Data   []Trace `json:"data"`
		Layout Layout  `json:"layout"`
	}{traces, d.Layout})
}

func decodeTrace(data []byte) (Trace, error) {
	var head struct {
		Type TraceKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case KindHeatmap:
		var t HeatmapTrace
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return &t, nil
	case KindConnector:
		var t ConnectorTrace
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return &t, nil
	default:
		return nil, nil
	}
}
