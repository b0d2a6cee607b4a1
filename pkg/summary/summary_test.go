package summary

import (
	"math"
	"testing"

	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDescribe(t *testing.T) {
	records := []results.EffectRecord{
		{"corr": 1.0},
		{"corr": 2.0},
		{"corr": "3"},
		{"corr": "n/a"},
		{},
		{"corr": 6.0},
	}
	d := Describe(records, "corr")

	if d.Count != 4 {
		t.Errorf("Count = %d, want 4", d.Count)
	}
	if d.Min != 1 || d.Max != 6 {
		t.Errorf("Min/Max = %v/%v, want 1/6", d.Min, d.Max)
	}
	if !approx(d.Median, 2.5) {
		t.Errorf("Median = %v, want 2.5", d.Median)
	}
	if !approx(d.Mean, 3) {
		t.Errorf("Mean = %v, want 3", d.Mean)
	}
	// Sample variance of 1,2,3,6 is 14/3.
	if !approx(d.StdDev, math.Sqrt(14.0/3)) {
		t.Errorf("StdDev = %v, want %v", d.StdDev, math.Sqrt(14.0/3))
	}
}

func TestDescribeEmpty(t *testing.T) {
	if d := Describe(nil, "corr"); d != (Distribution{}) {
		t.Errorf("Describe(nil) = %+v, want zero", d)
	}
}

func TestOf(t *testing.T) {
	effects := []results.EffectRecord{
		{"term": "age", "outcomespec": "lactate", "corr": 0.3, "pvalue": 0.01},
		{"term": "bmi", "outcomespec": "lactate", "corr": -0.2, "pvalue": 0.2},
		{"term": "age", "outcomespec": "glucose", "corr": -0.5, "pvalue": 0.03},
	}
	res := &results.Results{Effects: effects, Heatmap: results.Heatmap{Data: effects}}
	opts := heatmap.DefaultOptions().WithOverrides(heatmap.Overrides{PValueMax: heatmap.Ref("0.05")})

	s := Of(res, opts)
	if s.Records != 3 || s.Filtered != 2 {
		t.Errorf("Records/Filtered = %d/%d, want 3/2", s.Records, s.Filtered)
	}
	if s.XCategories != 2 || s.YCategories != 2 {
		t.Errorf("categories = %dx%d, want 2x2", s.XCategories, s.YCategories)
	}
	if s.Significance.Max != 0.2 {
		t.Errorf("Significance.Max = %v, want 0.2", s.Significance.Max)
	}
	if s.Dendrogram {
		t.Error("Dendrogram should be false without a descriptor")
	}
	if got := Of(nil, opts); got != (Summary{}) {
		t.Errorf("Of(nil) = %+v, want zero", got)
	}
}
