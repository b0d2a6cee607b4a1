// Package ordering derives the category order of both heatmap axes.
//
// Columns (the x axis) are always shown in ascending lexical order. Rows
// (the y axis) are ordered by the effect value each row has at a single
// pivot column, the "sort column".
//
// # Row Ordering
//
// Rows start in first-seen order. Rows that have a numeric value at the
// pivot column are sorted ascending by that value with a stable sort, and
// are placed back into the positions occupied by pivot-bearing rows. Rows
// without a pivot value never move. The result is a total, deterministic
// order in which every row appears exactly once.
//
// A row with several records at the pivot column takes its value from the
// last of them, the same record the matrix draws in that cell. This is not
// a first-match rule: with records (p, A, 0), (p, B, 1), (p, A, 5) row A
// sorts after B. A later non-numeric record clears an earlier value.
package ordering

import (
	"cmp"
	"slices"

	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Categories is the set of distinct values of one key field.
type Categories struct {
	// Unique lists each value once, in first-seen order.
	Unique []string
	// Sorted lists the same values in ascending lexical order.
	Sorted []string
}

// Len returns the number of distinct values.
func (c Categories) Len() int { return len(c.Unique) }

// Index collects the distinct values of key across records.
// Records missing key contribute the empty category "".
func Index(records []results.EffectRecord, key string) Categories {
	seen := make(map[string]struct{}, len(records))
	unique := make([]string, 0)
	for _, r := range records {
		v := r.String(key)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	sorted := slices.Clone(unique)
	slices.Sort(sorted)
	return Categories{Unique: unique, Sorted: sorted}
}

// Pivot returns the x category used to order rows: sortColumn when set,
// otherwise the first sorted x category.
func Pivot(xSorted []string, sortColumn string) string {
	if sortColumn != "" {
		return sortColumn
	}
	if len(xSorted) == 0 {
		return ""
	}
	return xSorted[0]
}

// group is one y category and its value at the pivot column.
type group struct {
	name     string
	value    float64
	hasValue bool
}

// SortRows returns the y categories in display order.
//
// The pivot row value of each y category is taken from the last record at
// the pivot column, matching the last-match-wins rule of the matrix.
func SortRows(records []results.EffectRecord, xSorted []string, sortColumn string, keys heatmap.Keys) []string {
	pivot := Pivot(xSorted, sortColumn)

	groups := make([]group, 0)
	byName := make(map[string]int)
	for _, r := range records {
		y := r.String(keys.Y)
		i, ok := byName[y]
		if !ok {
			i = len(groups)
			byName[y] = i
			groups = append(groups, group{name: y})
		}
		if r.String(keys.X) != pivot {
			continue
		}
		v, ok := r.Float(keys.Z)
		groups[i].value, groups[i].hasValue = v, ok
	}

	return order(groups)
}

// order sorts the pivot-bearing groups ascending into their own slots.
func order(groups []group) []string {
	slots := make([]int, 0, len(groups))
	ranked := make([]group, 0, len(groups))
	for i, g := range groups {
		if g.hasValue {
			slots = append(slots, i)
			ranked = append(ranked, g)
		}
	}
	slices.SortStableFunc(ranked, func(a, b group) int {
		return cmp.Compare(a.value, b.value)
	})

	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.name
	}
	for k, slot := range slots {
		out[slot] = ranked[k].name
	}
	return out
}
