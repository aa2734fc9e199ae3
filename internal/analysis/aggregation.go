// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis computes value-frequency aggregations over a result
// table and renders them as bar charts and frequency tables.
//
// Each aggregation follows the same pipeline: pick the source table
// (records or the exploded author table), extract one categorical value
// per row, count the values, keep the top N, then plot and print.
package analysis

import (
	"fmt"

	"github.com/pdiddy/dimensions-query/internal/table"
)

// NoValue replaces a country or institution when an author has no
// affiliation or the first affiliation lacks the field.
const NoValue = "no value"

// Source selects the table an aggregation reads.
type Source int

const (
	// SourceRecords is the normalized record table, one row per record.
	SourceRecords Source = iota
	// SourceAuthors is the exploded author table, one row per record-author pair.
	SourceAuthors
)

// Extractor pulls the categorical value out of a row. Returning false
// drops the row from the count.
type Extractor func(table.Row) (string, bool)

// Aggregation is one frequency analysis.
type Aggregation struct {
	// Name is the short identifier, used as a metric label.
	Name string
	// Heading is printed between the banner rules.
	Heading string
	// Category labels the value axis and table column.
	Category string
	// Plural names the values in the chart title.
	Plural string
	// Color is the bar color as a hex string.
	Color   string
	Source  Source
	Extract Extractor
}

// Title returns the chart title for the top-n values under topic.
func (a Aggregation) Title(n int, topic string) string {
	return fmt.Sprintf("Top %d %s in %s Publications", n, a.Plural, topic)
}

var (
	// Journal counts publications per journal title.
	Journal = Aggregation{
		Name:     "journal",
		Heading:  "Most common Journal",
		Category: "Journal",
		Plural:   "Journals",
		Color:    "#87CEEB", // skyblue
		Source:   SourceRecords,
		Extract:  Field("journal.title"),
	}

	// Author counts publications per researcher ID.
	Author = Aggregation{
		Name:     "author",
		Heading:  "Publications Per Author",
		Category: "Researcher ID",
		Plural:   "Authors",
		Color:    "#FA8072", // salmon
		Source:   SourceAuthors,
		Extract:  Field("researcher_id"),
	}

	// Country counts authors per country of their first affiliation.
	Country = Aggregation{
		Name:     "country",
		Heading:  "Publications Per Country",
		Category: "Country",
		Plural:   "Countries",
		Color:    "#90EE90", // lightgreen
		Source:   SourceAuthors,
		Extract:  FirstAffiliation("country"),
	}

	// Institution counts authors per name of their first affiliation.
	Institution = Aggregation{
		Name:     "institution",
		Heading:  "Publications Per Institutions",
		Category: "Institution",
		Plural:   "Institutions",
		Color:    "#F08080", // lightcoral
		Source:   SourceAuthors,
		Extract:  FirstAffiliation("name"),
	}
)

// Builtins returns the four standard aggregations in display order.
func Builtins() []Aggregation {
	return []Aggregation{Journal, Author, Country, Institution}
}

// Lookup returns the built-in aggregation with the given name.
func Lookup(name string) (Aggregation, bool) {
	for _, a := range Builtins() {
		if a.Name == name {
			return a, true
		}
	}
	return Aggregation{}, false
}

// Field extracts a scalar column. Rows missing the column are dropped.
func Field(col string) Extractor {
	return func(r table.Row) (string, bool) {
		return r.String(col)
	}
}

// FirstAffiliation extracts field from the first element of the row's
// affiliations list. Every row yields exactly one value; NoValue stands in
// when the list is missing or empty, or the first entry lacks field.
func FirstAffiliation(field string) Extractor {
	return func(r table.Row) (string, bool) {
		affs, ok := r.List("affiliations")
		if !ok || len(affs) == 0 {
			return NoValue, true
		}
		first, ok := affs[0].(map[string]any)
		if !ok {
			return NoValue, true
		}
		v, ok := table.Row(first).String(field)
		if !ok {
			return NoValue, true
		}
		return v, true
	}
}
