package aggregate

import (
	"strconv"
	"strings"

	"github.com/hyunsoo-an/purchase-review/internal/normalize"
)

// Extraction payloads arrive as map[string]any with no type guarantees. The
// coercers below accept the shapes the extraction service is known to emit
// and report ok=false for anything else, so a malformed field is skipped
// rather than failing the file.

func str(m map[string]any, key string) (string, bool) {
	v, exists := m[key]
	if !exists {
		return "", false
	}
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

var (
	truthy = map[string]bool{
		"true": true, "yes": true, "y": true, "1": true,
		"예": true, "있음": true, "적용": true, "정상": true, "o": true,
	}
	falsy = map[string]bool{
		"false": true, "no": true, "n": true, "0": true,
		"아니오": true, "아니요": true, "없음": true, "미적용": true,
		"해당없음": true, "x": true,
	}
)

func boolean(m map[string]any, key string) (bool, bool) {
	v, exists := m[key]
	if !exists {
		return false, false
	}
	switch x := v.(type) {
	case bool:
		return x, true
	case float64:
		return x != 0, true
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		if truthy[s] {
			return true, true
		}
		if falsy[s] {
			return false, true
		}
	}
	return false, false
}

func number(m map[string]any, key string) (float64, bool) {
	v, exists := m[key]
	if !exists {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		return normalize.ParseArea(x)
	}
	return 0, false
}

func integer(m map[string]any, key string) (int, bool) {
	f, ok := number(m, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func sub(m map[string]any, key string) map[string]any {
	if v, exists := m[key]; exists {
		if child, ok := v.(map[string]any); ok {
			return child
		}
	}
	return nil
}

func list(m map[string]any, key string) []any {
	if v, exists := m[key]; exists {
		if items, ok := v.([]any); ok {
			return items
		}
	}
	return nil
}

func stringList(m map[string]any, key string) []string {
	var out []string
	for _, item := range list(m, key) {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// date reads a field and normalizes it to ISO form when parseable; otherwise
// the raw string is kept so the rule layer can still report what was seen.
func date(m map[string]any, key string) (string, bool) {
	raw, ok := str(m, key)
	if !ok {
		return "", false
	}
	if d, parsed := normalize.ParseDate(raw); parsed {
		return d.String(), true
	}
	return raw, true
}
