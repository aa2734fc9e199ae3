// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"encoding/json"
	"sort"
	"strconv"
)

// normalize flattens nested objects into dotted keys. Lists are copied by
// reference and left unflattened.
func normalize(rec map[string]any) Row {
	row := make(Row, len(rec))
	flatten(row, "", rec)
	return row
}

func flatten(dst Row, prefix string, obj map[string]any) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flatten(dst, key, nested)
			continue
		}
		dst[key] = v
	}
}

// orderedKeys returns the keys of a row sorted, so column discovery is
// deterministic despite map iteration order.
func orderedKeys(r Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}
