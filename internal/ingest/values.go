package ingest

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// firstOf returns the value under the first key present in m.
func firstOf(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return nil
}

// str reads a string under any of the accepted key spellings. Non-string
// values yield "".
func str(m map[string]any, keys ...string) string {
	v, _ := firstOf(m, keys...).(string)
	return strings.TrimSpace(v)
}

// num reads a numeric value under any of the accepted key spellings,
// coercing invalid input to 0.
func num(m map[string]any, keys ...string) float64 {
	return toFloat(firstOf(m, keys...))
}

// numPtr reads an optional numeric override. A key that is absent or
// explicitly null yields nil, so the fuel-type default stays in force;
// any present value, even 0, is an override.
func numPtr(m map[string]any, keys ...string) *float64 {
	v := firstOf(m, keys...)
	if v == nil {
		return nil
	}
	f := toFloat(v)
	return &f
}

// boolean reads a flag under any of the accepted key spellings. String
// spellings of truth ("true", "1", "yes") count.
func boolean(m map[string]any, keys ...string) bool {
	switch v := firstOf(m, keys...).(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "1" || s == "yes"
	default:
		return false
	}
}

// list reads a slice of objects under any of the accepted key
// spellings, skipping non-object elements.
func list(m map[string]any, keys ...string) []map[string]any {
	raw, _ := firstOf(m, keys...).([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// toFloat coerces a decoded JSON value to a float64. Strings are
// parsed; anything unparseable, non-numeric, or non-finite becomes 0
// so aggregation totals stay well-defined.
func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// sortedKeys returns a map's keys in deterministic order, for the
// object form of block parameters.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
