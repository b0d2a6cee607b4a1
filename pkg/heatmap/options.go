// Package heatmap holds the options shared by the heatmap layout stages.
//
// The stages themselves live in subpackages, one per step of the layout:
//
//	filter     significance range predicate
//	ordering   category indexing and pivot-based row ordering
//	matrix     dense value matrix and cell metadata
//	annotate   per-cell text labels
//	dendrogram adaptation of a precomputed clustering figure
//	assemble   final figure assembly
//
// Every stage is a pure function of its inputs. [Options] is an immutable
// value; callers derive variants with [Options.WithOverrides].
package heatmap

import (
	"fmt"

	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/filter"
)

// Default field names of a COMETS effect record.
const (
	DefaultXKey = "term"
	DefaultYKey = "outcomespec"
	DefaultZKey = "corr"
	DefaultPKey = "pvalue"
)

// Default hover and legend captions.
const (
	DefaultXLabel            = "Exposure"
	DefaultYLabel            = "Outcome"
	DefaultZLabel            = "Estimate"
	DefaultSignificanceLabel = "P-value"
)

// Keys names the record fields mapped onto each axis.
type Keys struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
	P string `json:"p"`
}

// Labels are the human-readable captions used in hover text and the
// color bar.
type Labels struct {
	X            string `json:"x"`
	Y            string `json:"y"`
	Z            string `json:"z"`
	Significance string `json:"significance"`
}

// Options configures one heatmap computation.
type Options struct {
	XKey string `json:"x_key"`
	YKey string `json:"y_key"`
	ZKey string `json:"z_key"`
	PKey string `json:"p_key"`

	// SortColumn is the x category used as the row-ordering pivot. Empty
	// means the first x category in sorted order.
	SortColumn string `json:"sort_column,omitempty"`

	ShowAnnotations bool `json:"show_annotations,omitempty"`
	ShowDendrogram  bool `json:"show_dendrogram,omitempty"`

	// PValueMin and PValueMax are kept as entered. Blank or non-numeric
	// text leaves the bound unset.
	PValueMin string `json:"pvalue_min,omitempty"`
	PValueMax string `json:"pvalue_max,omitempty"`

	Labels Labels `json:"labels"`
}

// DefaultOptions returns the options for a COMETS results object.
func DefaultOptions() Options {
	return Options{
		XKey: DefaultXKey,
		YKey: DefaultYKey,
		ZKey: DefaultZKey,
		PKey: DefaultPKey,
		Labels: Labels{
			X:            DefaultXLabel,
			Y:            DefaultYLabel,
			Z:            DefaultZLabel,
			Significance: DefaultSignificanceLabel,
		},
	}
}

// Overrides is a partial set of options. Nil fields are left unchanged.
type Overrides struct {
	XKey            *string
	YKey            *string
	ZKey            *string
	PKey            *string
	SortColumn      *string
	ShowAnnotations *bool
	ShowDendrogram  *bool
	PValueMin       *string
	PValueMax       *string
	XLabel          *string
	YLabel          *string
	ZLabel          *string
	PLabel          *string
}

// WithOverrides returns a copy of o with every non-nil field of p applied.
// The receiver is not modified.
func (o Options) WithOverrides(p Overrides) Options {
	set(&o.XKey, p.XKey)
	set(&o.YKey, p.YKey)
	set(&o.ZKey, p.ZKey)
	set(&o.PKey, p.PKey)
	set(&o.SortColumn, p.SortColumn)
	set(&o.ShowAnnotations, p.ShowAnnotations)
	set(&o.ShowDendrogram, p.ShowDendrogram)
	set(&o.PValueMin, p.PValueMin)
	set(&o.PValueMax, p.PValueMax)
	set(&o.Labels.X, p.XLabel)
	set(&o.Labels.Y, p.YLabel)
	set(&o.Labels.Z, p.ZLabel)
	set(&o.Labels.Significance, p.PLabel)
	return o
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Ref returns a pointer to v, for building [Overrides] literals.
func Ref[T any](v T) *T { return &v }

// Keys returns the record field names.
func (o Options) Keys() Keys {
	return Keys{X: o.XKey, Y: o.YKey, Z: o.ZKey, P: o.PKey}
}

// Bounds returns the parsed significance interval.
func (o Options) Bounds() filter.Bounds {
	return filter.ParseBounds(o.PValueMin, o.PValueMax)
}

// WithDefaults fills empty keys and labels from [DefaultOptions].
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&o.XKey, d.XKey)
	fill(&o.YKey, d.YKey)
	fill(&o.ZKey, d.ZKey)
	fill(&o.PKey, d.PKey)
	fill(&o.Labels.X, d.Labels.X)
	fill(&o.Labels.Y, d.Labels.Y)
	fill(&o.Labels.Z, d.Labels.Z)
	fill(&o.Labels.Significance, d.Labels.Significance)
	return o
}

// Validate checks that the axis keys are set and distinct.
func (o Options) Validate() error {
	fields := []struct{ name, value string }{
		{"x_key", o.XKey},
		{"y_key", o.YKey},
		{"z_key", o.ZKey},
		{"p_key", o.PKey},
	}
	for _, f := range fields {
		if f.value == "" {
			return errors.NewValidationError(f.name, "must not be empty")
		}
	}
	if o.XKey == o.YKey {
		return errors.NewValidationError("y_key", fmt.Sprintf("must differ from x_key (both %q)", o.XKey))
	}
	return nil
}
