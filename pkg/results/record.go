package results

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EffectRecord is one exposure-outcome statistical result row.
//
// Records are read-only inputs. Nothing in this module writes to a record
// it did not create.
type EffectRecord map[string]any

// Sentinel returns the placeholder metadata used for matrix cells that have
// no source record. Its only field is the significance key, set to NaN.
func Sentinel(pKey string) EffectRecord {
	return EffectRecord{pKey: math.NaN()}
}

// Has reports whether the record carries key.
func (r EffectRecord) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the value at key as a category label.
// Missing keys and nil values yield "".
func (r EffectRecord) String(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Float returns the value at key as a finite float64.
// The second result is false when the key is missing, the value is not
// numeric, or the value is NaN or infinite.
func (r EffectRecord) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// MarshalJSON encodes the record, writing non-finite floats as strings
// ("NaN", "+Inf", "-Inf") since JSON has no representation for them.
func (r EffectRecord) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	out := make(map[string]any, len(r))
	for k, v := range r {
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			out[k] = strconv.FormatFloat(f, 'f', -1, 64)
			continue
		}
		out[k] = v
	}
	return json.Marshal(out)
}

// ToFloat converts v to a finite float64.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatValue renders a record value as display text.
// Floats use the shortest representation that round-trips.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case *float64:
		if t == nil {
			return ""
		}
		return strconv.FormatFloat(*t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
