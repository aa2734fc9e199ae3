// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dimensions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/dimensions-query/internal/table"
)

// Stats holds the service's summary of a query.
type Stats struct {
	TotalCount int `json:"total_count" yaml:"total_count"`
}

// Response is the decoded result of one DSL query.
type Response struct {
	// Kind is the top-level key the records were found under, e.g.
	// "publications".
	Kind     string           `json:"kind" yaml:"kind"`
	Records  []map[string]any `json:"records" yaml:"records"`
	Stats    Stats            `json:"stats" yaml:"stats"`
	Errors   []string         `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Table returns the records in tabular form.
func (r *Response) Table() *table.Table {
	if r == nil {
		return table.FromRecords(nil)
	}
	return table.FromRecords(r.Records)
}

// Clone returns a deep copy of r.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	out := &Response{
		Kind:     r.Kind,
		Stats:    r.Stats,
		Errors:   append([]string(nil), r.Errors...),
		Warnings: append([]string(nil), r.Warnings...),
	}
	if r.Records != nil {
		out.Records = make([]map[string]any, len(r.Records))
		for i, rec := range r.Records {
			out.Records[i] = cloneMap(rec)
		}
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMap(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func decodeResponse(body []byte) (*Response, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing query response: %w", err)
	}

	out := &Response{Errors: errorMessages(payload)}

	if raw, ok := payload["_stats"]; ok {
		if err := json.Unmarshal(raw, &out.Stats); err != nil {
			return nil, fmt.Errorf("parsing _stats: %w", err)
		}
	}
	if raw, ok := payload["_warnings"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &out.Warnings); err != nil {
			return nil, fmt.Errorf("parsing _warnings: %w", err)
		}
	}

	for _, key := range sortedKeys(payload) {
		if strings.HasPrefix(key, "_") || key == "errors" || key == "error" {
			continue
		}
		raw := bytes.TrimSpace(payload[key])
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			continue
		}
		out.Kind = key
		out.Records = make([]map[string]any, 0, len(items))
		for _, item := range items {
			var rec map[string]any
			if json.Unmarshal(item, &rec) == nil && rec != nil {
				out.Records = append(out.Records, rec)
			}
		}
		break
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
