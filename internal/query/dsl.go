// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"fmt"
	"strings"
)

// DefaultSearch is the record kind searched when none is given.
const DefaultSearch = "publications"

// Spec holds the parameters a DSL query is rendered from.
type Spec struct {
	Topic  string   `json:"topic" yaml:"topic"`
	Where  string   `json:"where,omitempty" yaml:"where,omitempty"`
	Search string   `json:"search" yaml:"search"`
	Return []string `json:"return,omitempty" yaml:"return,omitempty"`
}

// Render produces the DSL string for s. Topic and filter clause are
// inserted verbatim; no quoting or validation is applied.
//
//	search <search> for "<topic>" [where <clause>] return <search>[<f1>+<f2>]
func (s Spec) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "search %s for \"%s\"", s.Search, s.Topic)
	if s.Where != "" {
		fmt.Fprintf(&b, " where %s", s.Where)
	}
	fmt.Fprintf(&b, " return %s", s.Search)
	if len(s.Return) > 0 {
		fmt.Fprintf(&b, "[%s]", strings.Join(s.Return, "+"))
	}
	return b.String()
}

// ParseFields splits a projection list given as "a,b" or "a+b" into field
// names, dropping blanks.
func ParseFields(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '+'
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s Spec) withDefaults() Spec {
	if s.Search == "" {
		s.Search = DefaultSearch
	}
	s.Return = append([]string(nil), s.Return...)
	return s
}
