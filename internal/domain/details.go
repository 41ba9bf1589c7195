package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Details carries the raw facts behind a result. After normalization every
// value is an int64, float64, string or nested Details.
type Details map[string]any

// NormalizeDetails returns a JSON-safe copy of d. Nil becomes an empty map,
// nil values are dropped and bools become "true" / "false".
func NormalizeDetails(d Details) Details {
	out := make(Details, len(d))
	for k, v := range d {
		if nv := normalizeDetail(v); nv != nil {
			out[k] = nv
		}
	}
	return out
}

func normalizeDetail(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Details:
		return NormalizeDetails(t)
	case map[string]any:
		return NormalizeDetails(Details(t))
	case map[string]int:
		out := make(Details, len(t))
		for k, n := range t {
			out[k] = int64(n)
		}
		return out
	case map[string]float64:
		out := make(Details, len(t))
		for k, f := range t {
			out[k] = normalizeFloat(f)
		}
		return out
	case bool:
		return strconv.FormatBool(t)
	case string, int64:
		return t
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		if t > math.MaxInt64 {
			return strconv.FormatUint(t, 10)
		}
		return int64(t)
	case float32:
		return normalizeFloat(float64(t))
	case float64:
		return normalizeFloat(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case time.Duration:
		return t.String()
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// normalizeFloat keeps finite floats and spells out NaN and infinities,
// which have no JSON number form.
func normalizeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}
