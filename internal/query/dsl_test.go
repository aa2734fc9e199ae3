// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecRender(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{
			name: "bare",
			spec: Spec{Topic: "machine learning and healthcare", Search: "publications"},
			want: `search publications for "machine learning and healthcare" return publications`,
		},
		{
			name: "filter and projection",
			spec: Spec{Topic: "genomics", Where: "year > 2020", Search: "publications", Return: []string{"id", "title"}},
			want: `search publications for "genomics" where year > 2020 return publications[id+title]`,
		},
		{
			name: "projection without filter",
			spec: Spec{Topic: "x", Search: "grants", Return: []string{"id"}},
			want: `search grants for "x" return grants[id]`,
		},
		{
			name: "filter without projection",
			spec: Spec{Topic: "x", Where: `type="article"`, Search: "publications"},
			want: `search publications for "x" where type="article" return publications`,
		},
		{
			name: "empty projection is omitted",
			spec: Spec{Topic: "x", Search: "publications", Return: []string{}},
			want: `search publications for "x" return publications`,
		},
		{
			name: "topic passed through verbatim",
			spec: Spec{Topic: `"quoted" \ text`, Search: "patents"},
			want: `search patents for ""quoted" \ text" return patents`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.spec.Render()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, tt.spec.Render(), "render must be idempotent")
		})
	}
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"id", []string{"id"}},
		{"id,title", []string{"id", "title"}},
		{"id+title+journal", []string{"id", "title", "journal"}},
		{" id , title,, ", []string{"id", "title"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFields(tt.in))
		})
	}
}
