// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dimensions-query CLI: render
// Dimensions DSL queries, submit them, and chart who publishes on a topic.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dimensions-query/internal/logging"
	"github.com/pdiddy/dimensions-query/internal/metrics"
	"github.com/pdiddy/dimensions-query/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds plain-text key files read at startup.
const secretsDir = ".secrets/"

var (
	// loadedSecrets holds keys loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	logger     = zerolog.Nop()
	runMetrics = metrics.New()
)

// rootCmd is the base command for the dimensions-query CLI.
var rootCmd = &cobra.Command{
	Use:   "dimensions-query",
	Short: "Query the Dimensions literature database and chart the results",
	Long: `dimensions-query builds Dimensions DSL queries from a topic, an optional
where clause, a search target, and an optional list of returned fields. It
submits them to the Dimensions Analytics API and summarizes the returned
records by journal, author, country, and institution.

The API key is read from DIMENSIONS_API_KEY (also loaded from the --env-file)
or from .secrets/dimensions-api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.LoadEnvFile(viper.GetString("env_file")); err != nil {
			return err
		}

		s, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		loadedSecrets = s

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger = logging.NewLogger(cfg.Logging)

		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("path", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./dimensions-query.yaml or ~/.config/dimensions-query/config.yaml)")
	pf.String("env-file", ".env", "file of KEY=VALUE pairs loaded into the environment")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error, off (default warn)")
	pf.String("log-format", "", "log format: console or json (default console)")
	pf.String("metrics-file", "", "write Prometheus metrics for this run to a textfile")

	viper.BindPFlag("env_file", pf.Lookup("env-file"))
	viper.BindPFlag("logging.level", pf.Lookup("log-level"))
	viper.BindPFlag("logging.format", pf.Lookup("log-format"))
	viper.BindPFlag("metrics_file", pf.Lookup("metrics-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dimensions-query")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dimensions-query"))
		}
	}

	viper.SetEnvPrefix("DIMENSIONS_QUERY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
		}
	}
}

// exportMetrics writes the run's metrics when --metrics-file is set.
func exportMetrics() {
	path := viper.GetString("metrics_file")
	if path == "" {
		return
	}
	if err := runMetrics.WriteTextfile(path); err != nil {
		logger.Error().Err(err).Msg("exporting metrics")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	exportMetrics()
	if err != nil {
		os.Exit(1)
	}
}
