// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/dimensions-query/internal/table"
	"github.com/pdiddy/dimensions-query/pkg/types"
)

// DefaultTopN is the number of values kept per frequency table.
const DefaultTopN = 10

const bannerRule = 40

// Options configures an Analyzer. Zero values select defaults.
type Options struct {
	// TopN truncates each frequency table; <= 0 selects DefaultTopN.
	TopN int

	// Format selects table, json, or yaml output for frequency tables.
	Format types.OutputFormat

	// Plotter draws charts; nil selects a TerminalPlotter.
	Plotter Plotter

	// Output receives banners, charts, and tables; nil discards them.
	Output io.Writer

	// Aggregations to run, in order; nil selects Builtins.
	Aggregations []Aggregation
}

// Analyzer runs aggregations over one result table for one topic.
type Analyzer struct {
	topic string
	opts  Options
}

// New returns an Analyzer for results of a query on topic.
func New(topic string, opts Options) *Analyzer {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Format == "" {
		opts.Format = types.FormatTable
	}
	if opts.Plotter == nil {
		opts.Plotter = TerminalPlotter{}
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	if opts.Aggregations == nil {
		opts.Aggregations = Builtins()
	}
	return &Analyzer{topic: topic, opts: opts}
}

// Analyze runs every aggregation over t and returns the frequency tables
// in aggregation order. The author table is exploded once and shared by
// all author-level aggregations.
func (a *Analyzer) Analyze(t *table.Table) ([]types.FrequencyTable, error) {
	if t == nil {
		t = table.FromRecords(nil)
	}
	var authors *table.Table

	out := make([]types.FrequencyTable, 0, len(a.opts.Aggregations))
	for _, agg := range a.opts.Aggregations {
		src := t
		if agg.Source == SourceAuthors {
			if authors == nil {
				authors = t.Explode("authors")
			}
			src = authors
		}

		ft := a.run(agg, src)
		if err := a.render(agg, ft); err != nil {
			return out, fmt.Errorf("rendering %s aggregation: %w", agg.Name, err)
		}
		out = append(out, ft)
	}
	return out, nil
}

// Run computes a single aggregation without rendering it.
func (a *Analyzer) Run(agg Aggregation, t *table.Table) types.FrequencyTable {
	if t == nil {
		t = table.FromRecords(nil)
	}
	if agg.Source == SourceAuthors {
		t = t.Explode("authors")
	}
	return a.run(agg, t)
}

func (a *Analyzer) run(agg Aggregation, src *table.Table) types.FrequencyTable {
	values := make([]string, 0, src.Len())
	for _, row := range src.Rows() {
		if v, ok := agg.Extract(row); ok {
			values = append(values, v)
		}
	}
	return types.FrequencyTable{
		Name:     agg.Name,
		Title:    agg.Title(a.opts.TopN, a.topic),
		Category: agg.Category,
		Rows:     Count(values, a.opts.TopN),
	}
}

func (a *Analyzer) render(agg Aggregation, ft types.FrequencyTable) error {
	w := a.opts.Output
	rule := strings.Repeat("#", bannerRule)
	if _, err := fmt.Fprintln(w, rule, " "+agg.Heading+" ", rule); err != nil {
		return err
	}
	if err := a.opts.Plotter.Plot(w, ft, agg.Color); err != nil {
		return fmt.Errorf("plotting: %w", err)
	}
	return Write(w, ft, a.opts.Format)
}
