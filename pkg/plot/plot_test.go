package plot

import (
	"encoding/json"
	"testing"
)

func TestEmptyMarshal(t *testing.T) {
	data, err := json.Marshal(Empty())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"data":[],"layout":{}}`
	if string(data) != want {
		t.Errorf("Marshal(Empty()) = %s, want %s", data, want)
	}
	if !Empty().IsEmpty() {
		t.Error("Empty().IsEmpty() = false")
	}
}

func TestNullCells(t *testing.T) {
	p := Plot{Data: []Trace{{
		Type: TypeHeatmap,
		X:    []string{"a", "b"},
		Y:    []string{"r"},
		Z:    [][]*float64{{Float(1.5), nil}},
	}}}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"data":[{"type":"heatmap","x":["a","b"],"y":["r"],"z":[[1.5,null]]}],"layout":{}}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if !c.DisplayModeBar || c.DisplayLogo {
		t.Errorf("mode bar/logo = %v/%v, want true/false", c.DisplayModeBar, c.DisplayLogo)
	}
	opts := c.ToImageButtonOptions
	if opts.Format != "svg" || opts.Filename != "plot_export" {
		t.Errorf("export = %s/%s, want svg/plot_export", opts.Format, opts.Filename)
	}
	if opts.Width != 1600 || opts.Height != 1600 || opts.Scale != 1 {
		t.Errorf("export size = %dx%d@%v, want 1600x1600@1", opts.Width, opts.Height, opts.Scale)
	}
}
