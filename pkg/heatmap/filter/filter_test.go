package filter

import (
	"testing"

	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

func records(pvalues ...any) []results.EffectRecord {
	out := make([]results.EffectRecord, len(pvalues))
	for i, p := range pvalues {
		out[i] = results.EffectRecord{"id": i, "pvalue": p}
	}
	return out
}

func ids(rs []results.EffectRecord) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r["id"].(int)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"0.05", 0.05, true},
		{" 0.05 ", 0.05, true},
		{"1e-4", 0.0001, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseBound(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseBound(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestApply(t *testing.T) {
	input := records(0.01, 0.04, 0.2, 0.5, "n/a", nil)

	tests := []struct {
		name     string
		min, max string
		want     []int
	}{
		{"no bounds keeps everything", "", "", []int{0, 1, 2, 3, 4, 5}},
		{"closed interval", "0.02", "0.3", []int{1, 2}},
		{"inclusive ends", "0.04", "0.2", []int{1, 2}},
		{"min only", "0.2", "", []int{2, 3}},
		{"max only", "", "0.04", []int{0, 1}},
		{"inverted bounds", "0.5", "0.01", []int{}},
		{"unparseable bound ignored", "abc", "0.04", []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(input, ParseBounds(tt.min, tt.max), "pvalue"))
			if !equalInts(got, tt.want) {
				t.Errorf("Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyMissingKey(t *testing.T) {
	input := []results.EffectRecord{{"id": 0}, {"id": 1, "pvalue": 0.1}}

	if got := ids(Apply(input, Bounds{}, "pvalue")); !equalInts(got, []int{0, 1}) {
		t.Errorf("inactive filter = %v, want [0 1]", got)
	}
	if got := ids(Apply(input, ParseBounds("0", "1"), "pvalue")); !equalInts(got, []int{1}) {
		t.Errorf("active filter = %v, want [1]", got)
	}
}

func TestApplyDoesNotAlias(t *testing.T) {
	input := records(0.1, 0.2)
	out := Apply(input, Bounds{}, "pvalue")
	out[0] = results.EffectRecord{"id": 99}
	if input[0]["id"] != 0 {
		t.Error("Apply result aliases the input slice")
	}
}
