// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecords = `[
  {
    "id": "pub.1",
    "title": "Deep learning for triage",
    "journal": {"id": "jour.1", "title": "Nature Medicine"},
    "authors": [
      {"researcher_id": "ur.1", "affiliations": [{"name": "MIT", "country": "United States"}]},
      {"researcher_id": "ur.2", "affiliations": []}
    ]
  },
  {
    "id": "pub.2",
    "title": "Federated models",
    "journal": {"id": "jour.2", "title": "The Lancet"},
    "year": 2021,
    "authors": null
  },
  {
    "id": "pub.3",
    "title": "No journal here"
  }
]`

func decode(t *testing.T, s string) []map[string]any {
	t.Helper()
	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &recs))
	return recs
}

func TestFromRecordsFlattensNestedObjects(t *testing.T) {
	tbl := FromRecords(decode(t, sampleRecords))

	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, []any{"Nature Medicine", "The Lancet", nil}, tbl.Column("journal.title"))
	assert.Equal(t, []any{"jour.1", "jour.2", nil}, tbl.Column("journal.id"))
	assert.NotContains(t, tbl.Columns(), "journal", "nested object should not keep its parent column")

	// Lists stay intact for later explosion.
	authors, ok := tbl.Rows()[0].List("authors")
	require.True(t, ok)
	assert.Len(t, authors, 2)
}

func TestColumnsFirstSeenOrder(t *testing.T) {
	tbl := FromRecords(decode(t, sampleRecords))
	cols := tbl.Columns()

	// Row 1 columns come first (sorted within the row), then year from row 2.
	assert.Equal(t, []string{"authors", "id", "journal.id", "journal.title", "title", "year"}, cols)

	cols[0] = "mutated"
	assert.Equal(t, "authors", tbl.Columns()[0], "Columns must return a copy")
}

func TestExplode(t *testing.T) {
	tbl := FromRecords(decode(t, sampleRecords))
	authors := tbl.Explode("authors")

	// pub.1 contributes two authors; null and missing author lists contribute nothing.
	require.Equal(t, 2, authors.Len())

	id, ok := authors.Rows()[0].String("researcher_id")
	require.True(t, ok)
	assert.Equal(t, "ur.1", id)

	affs, ok := authors.Rows()[1].List("affiliations")
	require.True(t, ok)
	assert.Empty(t, affs)
}

func TestExplodeSkipsNonObjects(t *testing.T) {
	tbl := FromRecords([]map[string]any{
		{"authors": []any{"plain string", map[string]any{"researcher_id": "ur.9"}, nil}},
		{"authors": "not a list"},
	})
	authors := tbl.Explode("authors")
	require.Equal(t, 1, authors.Len())
	id, _ := authors.Rows()[0].String("researcher_id")
	assert.Equal(t, "ur.9", id)
}

func TestRowString(t *testing.T) {
	row := normalize(map[string]any{
		"s":     "text",
		"f":     float64(2021),
		"frac":  1.5,
		"b":     true,
		"n":     nil,
		"list":  []any{"a"},
		"empty": map[string]any{},
	})

	tests := []struct {
		col    string
		want   string
		wantOK bool
	}{
		{"s", "text", true},
		{"f", "2021", true},
		{"frac", "1.5", true},
		{"b", "true", true},
		{"n", "", false},
		{"list", "", false},
		{"empty", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.col, func(t *testing.T) {
			got, ok := row.String(tt.col)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNilTableLen(t *testing.T) {
	var tbl *Table
	assert.Equal(t, 0, tbl.Len())
}
