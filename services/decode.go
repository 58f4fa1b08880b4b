package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"realestate-agent/models"
)

// Tolerant decoding helpers for heterogeneous upstream payloads. Every field
// extraction in the mapper goes through these so malformed data degrades to a
// declared default instead of failing the record.

var numericCleaner = strings.NewReplacer(",", "", "$", "", "+", "")

// SafeFloat coerces an arbitrary JSON value to float64. Strings are cleaned
// of currency symbols, thousands separators and trailing "+" before parsing.
// Unparseable values yield def.
func SafeFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case nil:
		return def
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return def
		}
		return f
	case string:
		s := strings.TrimSpace(numericCleaner.Replace(n))
		if s == "" || strings.EqualFold(s, models.Unknown) {
			return def
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// SafeInt coerces an arbitrary JSON value to int with the same cleaning rules
// as SafeFloat.
func SafeInt(v any, def int) int {
	f := SafeFloat(v, float64(def))
	return int(f)
}

// SafeString returns the trimmed string form of v, or the Unknown marker when
// the value is nil or blank.
func SafeString(v any) string {
	switch s := v.(type) {
	case nil:
		return models.Unknown
	case string:
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
		return models.Unknown
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NestedMap digs into a decoded JSON object along the given keys. A missing
// or mistyped level degrades to an empty map so callers can keep extracting.
func NestedMap(m map[string]any, keys ...string) map[string]any {
	cur := m
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return map[string]any{}
		}
		cur = next
	}
	return cur
}
