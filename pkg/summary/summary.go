// Package summary describes a results object before it is drawn: how many
// records it holds, how many survive the significance filter, and how the
// effect and significance values are distributed.
package summary

import (
	"github.com/montanaflynn/stats"

	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/filter"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/ordering"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Distribution summarises the numeric values of one record field.
// Count is zero when no record carries a numeric value, in which case the
// other fields are zero too.
type Distribution struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Summary describes a results object under a set of options.
type Summary struct {
	Records      int          `json:"records"`
	Filtered     int          `json:"filtered"`
	XCategories  int          `json:"x_categories"`
	YCategories  int          `json:"y_categories"`
	Effect       Distribution `json:"effect"`
	Significance Distribution `json:"significance"`
	Dendrogram   bool         `json:"dendrogram"`
}

// Of summarises res under opts. Category counts cover every record;
// Filtered counts the records kept by the significance bounds.
func Of(res *results.Results, opts heatmap.Options) Summary {
	if res == nil {
		return Summary{}
	}
	opts = opts.WithDefaults()
	keys := opts.Keys()

	return Summary{
		Records:      len(res.Effects),
		Filtered:     len(filter.Apply(res.Effects, opts.Bounds(), keys.P)),
		XCategories:  ordering.Index(res.Effects, keys.X).Len(),
		YCategories:  ordering.Index(res.Effects, keys.Y).Len(),
		Effect:       Describe(res.Effects, keys.Z),
		Significance: Describe(res.Effects, keys.P),
		Dendrogram:   res.HasDendrogram(),
	}
}

// Describe summarises the numeric values of key across records.
// Missing and non-numeric values are skipped.
func Describe(records []results.EffectRecord, key string) Distribution {
	values := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		if v, ok := r.Float(key); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return Distribution{}
	}

	// The stats functions only fail on empty input, ruled out above.
	d := Distribution{Count: len(values)}
	d.Min, _ = values.Min()
	d.Max, _ = values.Max()
	d.Median, _ = values.Median()
	d.Mean, _ = values.Mean()
	d.StdDev, _ = values.StandardDeviationSample()
	return d
}
