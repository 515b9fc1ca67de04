package algo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/madlig/mygameon/schema"
)

// Loosely-typed payloads (JSON bodies, MCP arguments, CSV cells) are sanitized
// here, once, before they reach NormalizeTags or ComputePriority.

// ToNumber converts v to a float64. Strings are trimmed and parsed, booleans
// become 0 or 1, nil becomes 0. Anything that does not convert, or converts to
// NaN, becomes 0.
func ToNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
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
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return f
}

// ToStringSlice returns the string elements of v when v is a slice, and nil
// otherwise. Non-string elements are dropped.
func ToStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// ToString returns v when it is a string, and "" otherwise.
func ToString(v any) string {
	s, _ := v.(string)
	return s
}

// SanitizeTagInput builds a TagInput from an untyped record.
func SanitizeTagInput(raw map[string]any) schema.TagInput {
	if raw == nil {
		return schema.TagInput{}
	}
	return schema.TagInput{
		Tags:  ToStringSlice(raw["tags"]),
		Genre: ToStringSlice(raw["genre"]),
		Name:  ToString(raw["name"]),
	}
}

// SanitizeRequestMetrics builds RequestMetrics from an untyped record.
// A missing record yields zero metrics.
func SanitizeRequestMetrics(raw map[string]any) schema.RequestMetrics {
	if raw == nil {
		return schema.RequestMetrics{}
	}
	return schema.RequestMetrics{
		RequestCount:  ToNumber(raw["requestCount"]),
		EstimatedSize: ToNumber(raw["estimatedSize"]),
	}
}

// SanitizePriorityOverrides picks the recognized config keys out of an
// untyped record. Unknown keys are ignored.
func SanitizePriorityOverrides(raw map[string]any) schema.PriorityOverrides {
	var o schema.PriorityOverrides
	pick := func(key string) *float64 {
		v, ok := raw[key]
		if !ok || v == nil {
			return nil
		}
		f := ToNumber(v)
		return &f
	}
	o.WeightRequestCount = pick("weightRequestCount")
	o.WeightSize = pick("weightSize")
	o.SizeBatchThresholdGB = pick("sizeBatchThresholdGB")
	o.MaxRequestCountNormalizer = pick("maxRequestCountNormalizer")
	o.MaxSizeNormalizerGB = pick("maxSizeNormalizerGB")
	return o
}
