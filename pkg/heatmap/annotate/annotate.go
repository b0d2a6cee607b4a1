// Package annotate produces the per-cell text labels of the plain heatmap.
package annotate

import (
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Build returns one annotation per record, anchored at the record's
// (x, y) categories on the primary axis pair. It returns nil when show is
// false.
//
// Numeric values are written in one canonical form, so 1e-05 read from
// JSON and 0.00001 read from a workbook share a label. Other values are
// shown as they are.
//
// Records sharing a cell each get their own annotation; no deduplication
// is done.
func Build(records []results.EffectRecord, keys heatmap.Keys, show bool) []plot.Annotation {
	if !show {
		return nil
	}
	out := make([]plot.Annotation, 0, len(records))
	for _, r := range records {
		out = append(out, plot.Annotation{
			X:    r.String(keys.X),
			Y:    r.String(keys.Y),
			Text: text(r, keys.Z),
			XRef: plot.RefX,
			YRef: plot.RefY,
		})
	}
	return out
}

func text(r results.EffectRecord, key string) string {
	if v, ok := r.Float(key); ok {
		return results.FormatValue(v)
	}
	return r.String(key)
}
