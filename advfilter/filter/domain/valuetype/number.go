package valuetype

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber converts v the way a JavaScript Number() call would for the
// values rule payloads carry: blank strings are 0, booleans are 0 or 1,
// and anything unparseable (including nil) is NaN.
func ToNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return math.NaN()
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		return stringToNumber(n)
	}
	if f, ok := numeric(v); ok {
		return f
	}
	return math.NaN()
}

// ParseNumber reports whether v is a number or a non-blank numeric string.
func ParseNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return 0, false
		}
		f := stringToNumber(s)
		return f, !math.IsNaN(f)
	}
	f, ok := numeric(v)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		i, err := strconv.ParseUint(lower[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(i)
	}
	// strconv accepts spellings JavaScript rejects.
	if strings.ContainsAny(lower, "_in") || strings.Contains(lower, "0x") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
