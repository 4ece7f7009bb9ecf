// Package jsonutil provides shared helpers for decoding service payloads and
// flattening loosely typed JSON (component domains) for display.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%s: empty body", context)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// ToString converts a decoded JSON value to a display string.
// Whole numbers are printed without a fraction; objects and arrays are
// re-encoded compactly.
func ToString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FlattenLines renders a JSON object as sorted "key: value" lines.
func FlattenLines(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+ToString(m[k]))
	}
	return lines
}
