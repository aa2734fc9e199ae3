// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dimensions-query/internal/table"
	"github.com/pdiddy/dimensions-query/pkg/types"
)

// threeRecords: record 1 has a US author and an author without
// affiliations; records 2 and 3 each have one US author.
const threeRecords = `[
  {"id": "p1", "journal": {"title": "Nature"}, "authors": [
    {"researcher_id": "ur.1", "affiliations": [{"name": "MIT", "country": "United States"}]},
    {"researcher_id": "ur.2", "affiliations": []}
  ]},
  {"id": "p2", "journal": {"title": "Science"}, "authors": [
    {"researcher_id": "ur.1", "affiliations": [{"name": "MIT", "country": "United States"}]}
  ]},
  {"id": "p3", "journal": {"title": "Nature"}, "authors": [
    {"researcher_id": "ur.3", "affiliations": [{"name": "Stanford University", "country": "United States"}, {"name": "Oxford", "country": "United Kingdom"}]}
  ]}
]`

func loadTable(t *testing.T, s string) *table.Table {
	t.Helper()
	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &recs))
	return table.FromRecords(recs)
}

func TestCountTruncatesWithStableTies(t *testing.T) {
	// 15 distinct values: v00 appears 3 times, v07 twice, the rest once.
	var values []string
	for i := 0; i < 15; i++ {
		values = append(values, fmt.Sprintf("v%02d", i))
	}
	values = append(values, "v07", "v00", "v00")

	got := Count(values, 10)
	require.Len(t, got, 10)

	assert.Equal(t, types.Frequency{Value: "v00", Count: 3}, got[0])
	assert.Equal(t, types.Frequency{Value: "v07", Count: 2}, got[1])
	want := []string{"v01", "v02", "v03", "v04", "v05", "v06", "v08", "v09"}
	for i, v := range want {
		assert.Equal(t, v, got[i+2].Value, "tie order at %d", i+2)
		assert.Equal(t, 1, got[i+2].Count)
	}
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}
}

func TestCountEdges(t *testing.T) {
	assert.Equal(t, []types.Frequency{}, Count(nil, 10))
	assert.Len(t, Count([]string{"a", "b", "c"}, 0), 3, "top <= 0 keeps everything")
	assert.Equal(t, []types.Frequency{{Value: "b", Count: 2}, {Value: "a", Count: 1}}, Count([]string{"a", "b", "b"}, 5))
}

func TestFirstAffiliation(t *testing.T) {
	extract := FirstAffiliation("country")
	tests := []struct {
		name string
		row  table.Row
		want string
	}{
		{"first entry wins", table.Row{"affiliations": []any{
			map[string]any{"country": "France"}, map[string]any{"country": "Spain"},
		}}, "France"},
		{"empty list", table.Row{"affiliations": []any{}}, NoValue},
		{"missing list", table.Row{"researcher_id": "ur.1"}, NoValue},
		{"null list", table.Row{"affiliations": nil}, NoValue},
		{"field absent", table.Row{"affiliations": []any{map[string]any{"name": "MIT"}}}, NoValue},
		{"field null", table.Row{"affiliations": []any{map[string]any{"country": nil}}}, NoValue},
		{"non-object entry", table.Row{"affiliations": []any{"MIT"}}, NoValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extract(tt.row)
			assert.True(t, ok, "affiliation extraction never drops a row")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOneSentinelPerUnaffiliatedAuthor(t *testing.T) {
	tbl := loadTable(t, `[{"authors": [{"researcher_id": "ur.9", "affiliations": []}]}]`)
	a := New("x", Options{})

	for _, agg := range []Aggregation{Country, Institution} {
		ft := a.Run(agg, tbl)
		assert.Equal(t, []types.Frequency{{Value: NoValue, Count: 1}}, ft.Rows, agg.Name)
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	var out bytes.Buffer
	a := New("genomics", Options{Output: &out, Plotter: NopPlotter{}})

	tables, err := a.Analyze(loadTable(t, threeRecords))
	require.NoError(t, err)
	require.Len(t, tables, 4)

	byName := map[string]types.FrequencyTable{}
	for _, ft := range tables {
		byName[ft.Name] = ft
	}

	assert.Equal(t, []types.Frequency{{Value: "Nature", Count: 2}, {Value: "Science", Count: 1}}, byName["journal"].Rows)
	assert.Equal(t, []types.Frequency{{Value: "ur.1", Count: 2}, {Value: "ur.2", Count: 1}, {Value: "ur.3", Count: 1}}, byName["author"].Rows)
	assert.Equal(t, []types.Frequency{{Value: "United States", Count: 3}, {Value: NoValue, Count: 1}}, byName["country"].Rows)
	assert.Equal(t, []types.Frequency{{Value: "MIT", Count: 2}, {Value: NoValue, Count: 1}, {Value: "Stanford University", Count: 1}}, byName["institution"].Rows)

	assert.Equal(t, "Top 10 Countries in genomics Publications", byName["country"].Title)
	assert.Equal(t, "Researcher ID", byName["author"].Category)

	text := out.String()
	rule := strings.Repeat("#", 40)
	for _, heading := range []string{"Most common Journal", "Publications Per Author", "Publications Per Country", "Publications Per Institutions"} {
		assert.Contains(t, text, rule+"  "+heading+"  "+rule)
	}
	assert.Less(t, strings.Index(text, "Most common Journal"), strings.Index(text, "Publications Per Institutions"))
}

func TestAnalyzeDropsMissingValues(t *testing.T) {
	tbl := loadTable(t, `[
	  {"id": "p1", "journal": {"title": "Nature"}, "authors": [{"affiliations": []}]},
	  {"id": "p2"},
	  {"id": "p3", "authors": null}
	]`)
	a := New("t", Options{Plotter: NopPlotter{}})

	tables, err := a.Analyze(tbl)
	require.NoError(t, err)
	assert.Equal(t, []types.Frequency{{Value: "Nature", Count: 1}}, tables[0].Rows)
	assert.Empty(t, tables[1].Rows, "author without researcher_id is dropped")
	assert.Equal(t, []types.Frequency{{Value: NoValue, Count: 1}}, tables[2].Rows)
}

func TestAnalyzeEmptyTable(t *testing.T) {
	var out bytes.Buffer
	a := New("t", Options{Output: &out, Format: types.FormatJSON, Plotter: TerminalPlotter{Width: 10}})

	tables, err := a.Analyze(nil)
	require.NoError(t, err)
	require.Len(t, tables, 4)
	for _, ft := range tables {
		assert.Empty(t, ft.Rows)
	}
	assert.Contains(t, out.String(), "(no data)")
}

func TestAnalyzeRejectsUnknownFormat(t *testing.T) {
	a := New("t", Options{Format: "xml", Plotter: NopPlotter{}})
	_, err := a.Analyze(loadTable(t, threeRecords))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal")
}

func TestLookup(t *testing.T) {
	agg, ok := Lookup("institution")
	require.True(t, ok)
	assert.Equal(t, "Institution", agg.Category)

	_, ok = Lookup("funder")
	assert.False(t, ok)
}
