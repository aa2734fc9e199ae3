// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Frequency is one row of a value count: a categorical value and how many
// times it occurred.
type Frequency struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// FrequencyTable is the output of one aggregation over a result set.
type FrequencyTable struct {
	// Name identifies the aggregation (journal, author, country, institution).
	Name string `json:"name" yaml:"name"`

	// Title is the chart title, e.g. "Top 10 Journals in genomics Publications".
	Title string `json:"title" yaml:"title"`

	// Category labels the value column, e.g. "Journal" or "Researcher ID".
	Category string `json:"category" yaml:"category"`

	// Rows holds the top values in descending count order.
	Rows []Frequency `json:"rows" yaml:"rows"`
}

// CountLabel is the header of the count column in every frequency table.
const CountLabel = "Number of Publications"
