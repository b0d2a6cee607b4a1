package results

import (
	"encoding/json"
	"testing"
)

const sampleFigure = `{
  "data": [
    {"type": "scatter", "mode": "lines", "x": [0, 0, 1, 1], "y": [5, 10, 10, 5], "xaxis": "x2", "yaxis": "y2", "hoverinfo": "text"},
    {"type": "bar", "x": [1], "y": [2]},
    {"type": "heatmap", "x": [1, 2], "y": [1, 2], "z": [[0.1, null], [0.3, 0.4]], "xaxis": "x", "yaxis": "y2"}
  ],
  "layout": {
    "margin": {"l": 10, "b": 20},
    "xaxis": {"categoryarray": ["age", "bmi"], "tickvals": [1, 2], "ticktext": ["age", "bmi"], "zeroline": false, "domain": [0.15, 1]},
    "yaxis2": {"categoryarray": ["lactate", 7], "anchor": "x", "showgrid": false}
  }
}`

func TestDescriptorUnmarshal(t *testing.T) {
	var d Descriptor
	if err := json.Unmarshal([]byte(sampleFigure), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(d.Traces) != 2 {
		t.Fatalf("len(Traces) = %d, want 2 (bar trace dropped)", len(d.Traces))
	}
	if d.Traces[0].Kind() != KindConnector {
		t.Errorf("Traces[0].Kind() = %v, want %v", d.Traces[0].Kind(), KindConnector)
	}

	h, ok := d.FindHeatmap()
	if !ok {
		t.Fatal("FindHeatmap() found nothing")
	}
	if h.At(0, 1) != nil {
		t.Errorf("At(0,1) = %v, want nil", *h.At(0, 1))
	}
	if v := h.At(1, 0); v == nil || *v != 0.3 {
		t.Errorf("At(1,0) = %v, want 0.3", v)
	}
	if h.At(5, 5) != nil {
		t.Error("At out of range should be nil")
	}

	if got := d.Layout.YAxis2.CategoryArray; len(got) != 2 || got[1] != "7" {
		t.Errorf("yaxis2.categoryarray = %v, want [lactate 7]", got)
	}
	if d.Layout.Margin == nil || *d.Layout.Margin.L != 10 {
		t.Errorf("margin.l not decoded: %+v", d.Layout.Margin)
	}
}

func TestAxisCategory(t *testing.T) {
	a := &Axis{CategoryArray: StringList{"a", "b", "c"}}
	tests := []struct {
		index float64
		want  string
	}{
		{1, "a"},
		{3, "c"},
		{0, ""},
		{4, ""},
		{1.5, ""},
	}
	for _, tt := range tests {
		if got := a.Category(tt.index); got != tt.want {
			t.Errorf("Category(%v) = %q, want %q", tt.index, got, tt.want)
		}
	}

	var nilAxis *Axis
	if got := nilAxis.Category(1); got != "" {
		t.Errorf("nil axis Category = %q, want empty", got)
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	var d Descriptor
	if err := json.Unmarshal([]byte(sampleFigure), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var again Descriptor
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("Unmarshal round trip: %v", err)
	}
	if len(again.Traces) != len(d.Traces) {
		t.Errorf("round trip traces = %d, want %d", len(again.Traces), len(d.Traces))
	}
	if _, ok := again.FindHeatmap(); !ok {
		t.Error("round trip lost the heatmap trace")
	}
}

func TestResultsGates(t *testing.T) {
	var nilResults *Results
	if nilResults.HasHeatmap() {
		t.Error("nil results should not have a heatmap")
	}

	r := &Results{}
	if r.HasHeatmap() || r.HasDendrogram() {
		t.Error("empty results should have neither view")
	}

	r.Heatmap.Data = []EffectRecord{{"term": "a"}}
	if !r.HasHeatmap() {
		t.Error("HasHeatmap() = false, want true")
	}
	if r.HasDendrogram() {
		t.Error("HasDendrogram() without descriptor = true, want false")
	}

	r.Heatmap.Dendrogram = &Descriptor{}
	if !r.HasDendrogram() {
		t.Error("HasDendrogram() = false, want true")
	}
}
