// Package matrix builds the dense value matrix of a heatmap.
package matrix

import (
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Grid is a row-major matrix with one row per y category and one column
// per x category. Values and Meta always have the same shape.
type Grid struct {
	X []string
	Y []string

	// Values holds the effect value of each cell, or nil when no record
	// matches the cell or its value is not numeric.
	Values [][]*float64

	// Meta holds the source record of each cell, or a sentinel whose
	// significance is NaN when the cell has no record.
	Meta [][]results.EffectRecord
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g.Values) }

// Cols returns the number of columns.
func (g Grid) Cols() int { return len(g.X) }

// Populated counts the non-nil cells.
func (g Grid) Populated() int {
	n := 0
	for _, row := range g.Values {
		for _, v := range row {
			if v != nil {
				n++
			}
		}
	}
	return n
}

type cell struct {
	x, y string
}

// Build fills a Grid for the given column and row order.
//
// Records are indexed by their (x, y) pair before the grid is walked, so
// the cost is linear in records plus cells. When several records share a
// pair the last one wins.
func Build(records []results.EffectRecord, xs, ys []string, keys heatmap.Keys) Grid {
	index := make(map[cell]results.EffectRecord, len(records))
	for _, r := range records {
		index[cell{x: r.String(keys.X), y: r.String(keys.Y)}] = r
	}

	sentinel := results.Sentinel(keys.P)
	values := make([][]*float64, len(ys))
	meta := make([][]results.EffectRecord, len(ys))
	for i, y := range ys {
		values[i] = make([]*float64, len(xs))
		meta[i] = make([]results.EffectRecord, len(xs))
		for j, x := range xs {
			r, ok := index[cell{x: x, y: y}]
			if !ok {
				meta[i][j] = sentinel
				continue
			}
			meta[i][j] = r
			if v, ok := r.Float(keys.Z); ok {
				values[i][j] = &v
			}
		}
	}

	return Grid{X: xs, Y: ys, Values: values, Meta: meta}
}
