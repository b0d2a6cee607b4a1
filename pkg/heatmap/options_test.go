package heatmap

import (
	"testing"

	"github.com/cometsanalytics/heatmatrix/pkg/errors"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.XKey != "term" || o.YKey != "outcomespec" || o.ZKey != "corr" || o.PKey != "pvalue" {
		t.Errorf("DefaultOptions keys = %+v", o.Keys())
	}
	if o.Labels.Z != "Estimate" {
		t.Errorf("Labels.Z = %q, want Estimate", o.Labels.Z)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v", err)
	}
}

func TestWithOverrides(t *testing.T) {
	base := DefaultOptions()
	got := base.WithOverrides(Overrides{
		SortColumn:      Ref("age"),
		ShowAnnotations: Ref(true),
		PValueMax:       Ref("0.05"),
		ZLabel:          Ref("Correlation"),
	})

	if got.SortColumn != "age" || !got.ShowAnnotations || got.PValueMax != "0.05" || got.Labels.Z != "Correlation" {
		t.Errorf("WithOverrides did not apply: %+v", got)
	}
	if got.XKey != base.XKey || got.PValueMin != "" {
		t.Errorf("WithOverrides changed unset fields: %+v", got)
	}

	// The receiver is a value; it must be untouched.
	if base.SortColumn != "" || base.ShowAnnotations || base.Labels.Z != "Estimate" {
		t.Errorf("WithOverrides mutated receiver: %+v", base)
	}
}

func TestWithOverridesEmpty(t *testing.T) {
	base := DefaultOptions()
	if got := base.WithOverrides(Overrides{}); got != base {
		t.Errorf("WithOverrides(empty) = %+v, want %+v", got, base)
	}
}

func TestWithDefaults(t *testing.T) {
	o := Options{XKey: "exposure"}.WithDefaults()
	if o.XKey != "exposure" {
		t.Errorf("XKey = %q, want exposure", o.XKey)
	}
	if o.YKey != DefaultYKey || o.Labels.Significance != DefaultSignificanceLabel {
		t.Errorf("WithDefaults did not fill: %+v", o)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"empty x", DefaultOptions().WithOverrides(Overrides{XKey: Ref("")}), true},
		{"same x and y", DefaultOptions().WithOverrides(Overrides{YKey: Ref("term")}), true},
		{"inverted bounds are fine", DefaultOptions().WithOverrides(Overrides{PValueMin: Ref("1"), PValueMax: Ref("0")}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidOptions) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidOptions)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	o := DefaultOptions().WithOverrides(Overrides{PValueMin: Ref(" 0.01 "), PValueMax: Ref("abc")})
	b := o.Bounds()
	if b.Min == nil || *b.Min != 0.01 {
		t.Errorf("Bounds().Min = %v, want 0.01", b.Min)
	}
	if b.Max != nil {
		t.Errorf("Bounds().Max = %v, want unset", *b.Max)
	}
}
