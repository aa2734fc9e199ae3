// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dimensions-query/internal/dimensions"
	"github.com/pdiddy/dimensions-query/internal/query"
	"github.com/pdiddy/dimensions-query/internal/secrets"
	"github.com/pdiddy/dimensions-query/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Submit a DSL query and report how many records matched",
	Long: `Query logs in to Dimensions, submits the rendered DSL query, and prints the
total result count and any errors the service reported. With --format json
or --format csl the returned records are written to stdout as well.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	addQueryFlags(queryCmd)
	addServiceFlags(queryCmd)
	queryCmd.Flags().String("format", string(types.FormatNone), "record output: none, json, or csl (CSL-YAML)")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch types.OutputFormat(format) {
	case types.FormatNone, types.FormatJSON, types.FormatCSL:
	default:
		return fmt.Errorf("unsupported --format %q (want none, json, or csl)", format)
	}

	b, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	resp, err := b.Submit(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch types.OutputFormat(format) {
	case types.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case types.FormatCSL:
		return dimensions.FormatCSL(resp, out)
	}
	return nil
}

// newBuilder loads configuration and the API key, then logs in.
func newBuilder(cmd *cobra.Command) (*query.Builder, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	spec, err := specFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	return query.New(cmd.Context(), cfg.Dimensions, secrets.APIKey(loadedSecrets), spec,
		query.WithOutput(cmd.OutOrStdout()),
		query.WithLogger(logger),
		query.WithMetrics(runMetrics),
	)
}
