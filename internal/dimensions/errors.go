// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dimensions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ServiceError is a failed call to the Dimensions API: a rejected query,
// an authentication failure, or any other non-200 response.
type ServiceError struct {
	// Op is "login" or "query".
	Op         string
	StatusCode int
	// Messages holds the server's explanation, when it sent one.
	Messages []string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("Dimensions %s failed (HTTP %d)", e.Op, e.StatusCode)
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

func newServiceError(op string, status int, body []byte) *ServiceError {
	e := &ServiceError{Op: op, StatusCode: status}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Messages = errorMessages(payload)
	}
	if len(e.Messages) == 0 {
		if text := strings.TrimSpace(string(body)); text != "" {
			if len(text) > 200 {
				text = text[:197] + "..."
			}
			e.Messages = []string{text}
		}
	}
	return e
}

// errorMessages extracts messages from the "errors" member of a response.
// The service sends {"errors": {"query": {"header": ..., "details": [...]}}};
// a plain string or list under "errors" and a top-level "error" string are
// also accepted.
func errorMessages(payload map[string]json.RawMessage) []string {
	var msgs []string

	if raw, ok := payload["error"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			msgs = append(msgs, s)
		}
	}

	raw, ok := payload["errors"]
	if !ok || string(raw) == "null" {
		return msgs
	}

	var structured map[string]struct {
		Header  string   `json:"header"`
		Details []string `json:"details"`
	}
	if json.Unmarshal(raw, &structured) == nil {
		for _, key := range sortedKeys(structured) {
			e := structured[key]
			if e.Header != "" {
				msgs = append(msgs, e.Header)
			}
			msgs = append(msgs, e.Details...)
		}
		return msgs
	}

	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return append(msgs, list...)
	}

	var s string
	if json.Unmarshal(raw, &s) == nil && s != "" {
		msgs = append(msgs, s)
	}
	return msgs
}
