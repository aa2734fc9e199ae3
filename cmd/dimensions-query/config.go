// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dimensions-query/internal/analysis"
	"github.com/pdiddy/dimensions-query/internal/query"
	"github.com/pdiddy/dimensions-query/pkg/types"
)

const (
	defaultTopic   = "machine learning and healthcare"
	defaultTimeout = 60 * time.Second
)

func setDefaults() {
	viper.SetDefault("dimensions.endpoint", types.DefaultEndpoint)
	viper.SetDefault("dimensions.timeout", defaultTimeout)
	viper.SetDefault("dimensions.user_agent", "")
	viper.SetDefault("dimensions.rate_limit", 0.5)
	viper.SetDefault("dimensions.max_retries", 5)

	viper.SetDefault("analysis.top_n", analysis.DefaultTopN)
	viper.SetDefault("analysis.bar_width", analysis.DefaultBarWidth)
	viper.SetDefault("analysis.charts", true)
	viper.SetDefault("analysis.format", string(types.FormatTable))

	viper.SetDefault("logging.level", "warn")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.output", "stderr")

	viper.SetDefault("query.topic", defaultTopic)
	viper.SetDefault("query.where", "")
	viper.SetDefault("query.search", query.DefaultSearch)
	viper.SetDefault("query.return", "")

	viper.SetDefault("metrics_file", "")
}

// loadConfig merges defaults, the config file, DIMENSIONS_QUERY_*
// environment variables, and the flags cmd defines, in rising precedence.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Dimensions.UserAgent == "" {
		cfg.Dimensions.UserAgent = "dimensions-query/" + version
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Dimensions.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("timeout") {
		cfg.Dimensions.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("top") {
		cfg.Analysis.TopN, _ = flags.GetInt("top")
	}
	if flags.Changed("bar-width") {
		cfg.Analysis.BarWidth, _ = flags.GetInt("bar-width")
	}
	if flags.Changed("no-chart") {
		noChart, _ := flags.GetBool("no-chart")
		cfg.Analysis.Charts = !noChart
	}
	return cfg, nil
}

// addQueryFlags registers the flags that describe a DSL query.
func addQueryFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("topic", "", fmt.Sprintf("search phrase (default %q)", defaultTopic))
	f.String("where", "", `filter clause inserted after "where", e.g. 'year > 2020'`)
	f.String("search", "", "record kind to search and return (default publications)")
	f.String("return", "", "fields to return, comma- or plus-separated, e.g. id,title,authors")
	f.String("spec-file", "", "load the query from a YAML file saved with render --save; other query flags override it")
}

// addServiceFlags registers the flags that reach the remote service.
func addServiceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("endpoint", "", "Dimensions base URL (default "+types.DefaultEndpoint+")")
	f.Duration("timeout", 0, "HTTP request timeout (default 60s)")
}

// specFromFlags builds the query spec from configuration and cmd's
// flags. With --spec-file the saved spec replaces the configured one and
// explicitly set flags still override it.
func specFromFlags(cmd *cobra.Command) (query.Spec, error) {
	flags := cmd.Flags()
	spec := query.Spec{
		Topic:  viper.GetString("query.topic"),
		Where:  viper.GetString("query.where"),
		Search: viper.GetString("query.search"),
		Return: query.ParseFields(viper.GetString("query.return")),
	}
	if path, _ := flags.GetString("spec-file"); path != "" {
		saved, err := query.ReadSpecFile(path)
		if err != nil {
			return query.Spec{}, err
		}
		spec = saved
	}

	if flags.Changed("topic") {
		spec.Topic, _ = flags.GetString("topic")
	}
	if flags.Changed("where") {
		spec.Where, _ = flags.GetString("where")
	}
	if flags.Changed("search") {
		spec.Search, _ = flags.GetString("search")
	}
	if flags.Changed("return") {
		fields, _ := flags.GetString("return")
		spec.Return = query.ParseFields(fields)
	}
	return spec, nil
}
