// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dimensions-query/internal/query"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the DSL query for the given topic, filter, and fields",
	Long: `Render prints the Dimensions DSL string built from the query flags without
contacting the service. No API key is needed. With --save the query is also
written to a YAML spec file that query and analyze accept via --spec-file.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	addQueryFlags(renderCmd)
	renderCmd.Flags().String("save", "", "also save the query to this YAML spec file")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	spec, err := specFromFlags(cmd)
	if err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := query.WriteSpecFile(path, spec); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("saved query spec")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), spec.Render())
	return err
}
