// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dimensions-query/internal/analysis"
	"github.com/pdiddy/dimensions-query/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Submit a query and chart publications per journal, author, country, and institution",
	Long: `Analyze submits the rendered DSL query and summarizes the returned records.
For each of journal, author, country, and institution it prints a heading, a
bar chart of the most frequent values, and the frequency table.

Country and institution come from each author's first affiliation; authors
without one are counted as "no value". Ask for the nested fields explicitly,
for example --return id,title,journal,authors.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	addQueryFlags(analyzeCmd)
	addServiceFlags(analyzeCmd)
	analyzeCmd.Flags().Int("top", 0, "values kept per table (default 10)")
	analyzeCmd.Flags().Int("bar-width", 0, "width of the longest chart bar (default 40)")
	analyzeCmd.Flags().Bool("no-chart", false, "skip bar charts")
	analyzeCmd.Flags().String("format", "", "frequency table output: table, json, or yaml (default table)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format := cfg.Analysis.Format
	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		format = types.OutputFormat(f)
	}
	switch format {
	case types.FormatTable, types.FormatJSON, types.FormatYAML:
	default:
		return fmt.Errorf("unsupported --format %q (want table, json, or yaml)", format)
	}

	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	if _, err := b.Submit(cmd.Context()); err != nil {
		return err
	}

	var plotter analysis.Plotter = analysis.NopPlotter{}
	if cfg.Analysis.Charts {
		plotter = analysis.TerminalPlotter{Width: cfg.Analysis.BarWidth}
	}
	_, err = b.Analyze(analysis.Options{
		TopN:    cfg.Analysis.TopN,
		Format:  format,
		Plotter: plotter,
	})
	return err
}
