// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for dimensions-query.
// Configuration structs are populated by the CLI from flags, environment
// (DIMENSIONS_QUERY_*), and the optional YAML config file.
package types

import "time"

// DefaultEndpoint is the public Dimensions SaaS endpoint.
const DefaultEndpoint = "https://app.dimensions.ai"

// HTTPConfig holds shared HTTP settings used for talking to the search service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "dimensions-query/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// DimensionsConfig holds settings for the remote search service.
type DimensionsConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the base URL of the Dimensions instance (default
	// https://app.dimensions.ai).
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// RateLimit is the sustained request rate in requests per second
	// (default 0.5, the service's 30 requests/minute allowance).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// OutputFormat selects how frequency tables and records are written.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatCSL   OutputFormat = "csl"
	FormatNone  OutputFormat = "none"
)

// AnalysisConfig holds settings for the result analyzer.
type AnalysisConfig struct {
	// TopN is the number of rows kept per frequency table (default 10).
	TopN int `json:"top_n" yaml:"top_n" mapstructure:"top_n"`

	// BarWidth is the width in cells of the longest chart bar (default 40).
	BarWidth int `json:"bar_width" yaml:"bar_width" mapstructure:"bar_width"`

	// Charts controls whether bar charts are drawn.
	Charts bool `json:"charts" yaml:"charts" mapstructure:"charts"`

	// Format selects the frequency table output: table, json, or yaml.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output is stdout or stderr.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// Config groups all settings for one CLI invocation.
type Config struct {
	Dimensions DimensionsConfig `json:"dimensions" yaml:"dimensions" mapstructure:"dimensions"`
	Analysis   AnalysisConfig   `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging" mapstructure:"logging"`

	// MetricsFile, when set, receives a Prometheus text exposition of the
	// run's metrics on exit.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" mapstructure:"metrics_file"`
}
