// Package filter selects effect records by significance before layout.
package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

// Bounds is a closed significance interval. A nil bound is unset.
type Bounds struct {
	Min *float64
	Max *float64
}

// ParseBound parses a user-entered bound. Blank, non-numeric and
// non-finite input all mean "unset".
func ParseBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseBounds builds Bounds from the textual min and max.
func ParseBounds(min, max string) Bounds {
	var b Bounds
	if v, ok := ParseBound(min); ok {
		b.Min = &v
	}
	if v, ok := ParseBound(max); ok {
		b.Max = &v
	}
	return b
}

// Active reports whether either bound is set.
func (b Bounds) Active() bool {
	return b.Min != nil || b.Max != nil
}

// Contains reports whether v lies within every set bound.
func (b Bounds) Contains(v float64) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

// Apply returns the records whose pKey value lies within b.
//
// With no bound set every record is kept, numeric or not. Once a bound is
// set, records with a missing or non-numeric significance are dropped.
// Inverted bounds are not an error; they simply keep nothing.
//
// The returned slice never aliases records.
func Apply(records []results.EffectRecord, b Bounds, pKey string) []results.EffectRecord {
	out := make([]results.EffectRecord, 0, len(records))
	if !b.Active() {
		return append(out, records...)
	}
	for _, r := range records {
		p, ok := r.Float(pKey)
		if ok && b.Contains(p) {
			out = append(out, r)
		}
	}
	return out
}
