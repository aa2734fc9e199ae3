// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds Dimensions DSL queries from a topic, an optional
// filter clause, a search target, and an optional projection; submits
// them; and hands the results to the analysis pipeline.
//
// A Builder re-renders its query string after every setter call, so the
// string returned by Query always reflects the current fields.
package query

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/dimensions-query/internal/analysis"
	"github.com/pdiddy/dimensions-query/internal/dimensions"
	"github.com/pdiddy/dimensions-query/internal/httputil"
	"github.com/pdiddy/dimensions-query/internal/logging"
	"github.com/pdiddy/dimensions-query/internal/metrics"
	"github.com/pdiddy/dimensions-query/internal/secrets"
	"github.com/pdiddy/dimensions-query/internal/table"
	"github.com/pdiddy/dimensions-query/pkg/types"
)

// DefaultTimeout applies when the configuration leaves the HTTP timeout unset.
const DefaultTimeout = 60 * time.Second

// Searcher executes a rendered DSL query. *dimensions.Client satisfies it.
type Searcher interface {
	Query(ctx context.Context, dsl string) (*dimensions.Response, error)
}

// Builder holds one query specification, its rendered form, and the most
// recent result. It is not safe for concurrent use.
type Builder struct {
	spec     Spec
	rendered string
	searcher Searcher
	results  *dimensions.Response

	out     io.Writer
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// Option configures a Builder.
type Option func(*Builder)

// WithOutput sets where status lines and analysis output are written.
// The default is io.Discard.
func WithOutput(w io.Writer) Option {
	return func(b *Builder) { b.out = w }
}

// WithLogger sets the builder's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithMetrics records submissions and aggregations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// New verifies the credential, logs in to the service at cfg.Endpoint,
// and renders the initial query. An empty apiKey fails with a
// *ConfigurationError before any network traffic.
func New(ctx context.Context, cfg types.DimensionsConfig, apiKey string, spec Spec, opts ...Option) (*Builder, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{
			Setting: secrets.APIKeyEnv,
			Message: "Dimensions API key not found; set it in the environment, the env file, or .secrets/" + secrets.APIKeyFile,
		}
	}

	b := newBuilder(spec, opts)

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = types.DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := logging.WithEndpointContext(b.logger, endpoint)
	retrier := httputil.NewRetrier(&http.Client{Timeout: timeout}, cfg.RateLimit, cfg.MaxRetries, logger)

	clientOpts := []dimensions.Option{dimensions.WithLogger(logger)}
	if cfg.UserAgent != "" {
		clientOpts = append(clientOpts, dimensions.WithUserAgent(cfg.UserAgent))
	}
	client, err := dimensions.Login(ctx, retrier, endpoint, apiKey, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("logging in to %s: %w", endpoint, err)
	}

	b.searcher = client
	b.render()
	return b, nil
}

// NewWithSearcher returns a Builder that submits through an existing
// session.
func NewWithSearcher(spec Spec, searcher Searcher, opts ...Option) *Builder {
	b := newBuilder(spec, opts)
	b.searcher = searcher
	b.render()
	return b
}

func newBuilder(spec Spec, opts []Option) *Builder {
	b := &Builder{
		spec:   spec.withDefaults(),
		out:    io.Discard,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetTopic replaces the topic and re-renders.
func (b *Builder) SetTopic(topic string) {
	b.spec.Topic = topic
	b.render()
}

// SetWhere replaces the filter clause and re-renders. An empty clause
// removes the filter.
func (b *Builder) SetWhere(clause string) {
	b.spec.Where = clause
	b.render()
}

// SetSearch replaces the search target and re-renders.
func (b *Builder) SetSearch(search string) {
	b.spec.Search = search
	b.render()
}

// SetReturn replaces the projection list and re-renders. A nil or empty
// list removes the projection.
func (b *Builder) SetReturn(fields []string) {
	b.spec.Return = append([]string(nil), fields...)
	b.render()
}

// Render returns the DSL string for the current fields without storing it.
func (b *Builder) Render() string {
	return b.spec.Render()
}

// Query returns the most recently rendered DSL string.
func (b *Builder) Query() string {
	return b.rendered
}

// Spec returns a copy of the current fields.
func (b *Builder) Spec() Spec {
	s := b.spec
	s.Return = append([]string(nil), b.spec.Return...)
	return s
}

func (b *Builder) render() {
	b.rendered = b.spec.Render()
}

// Submit sends the current query and retains the response. It prints the
// total result count and any server-reported errors to the output writer,
// and returns a copy of the response. Service and transport errors are
// returned as produced by the client.
func (b *Builder) Submit(ctx context.Context) (*dimensions.Response, error) {
	if b.rendered == "" {
		return nil, &StateError{Op: "submit", Reason: "no query has been rendered"}
	}
	if b.searcher == nil {
		return nil, &StateError{Op: "submit", Reason: "no search session"}
	}

	logger := logging.WithQueryContext(b.logger, b.spec.Search, b.spec.Topic)
	logger.Info().Str("dsl", b.rendered).Msg("submitting query")

	start := time.Now()
	resp, err := b.searcher.Query(ctx, b.rendered)
	elapsed := time.Since(start)

	if b.metrics != nil {
		b.metrics.QueriesSubmitted.WithLabelValues(b.spec.Search).Inc()
		b.metrics.QueryDuration.Observe(elapsed.Seconds())
	}
	if err != nil {
		if b.metrics != nil {
			b.metrics.QueriesFailed.WithLabelValues(b.spec.Search).Inc()
		}
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("query failed")
		return nil, err
	}
	if b.metrics != nil {
		b.metrics.ResultsAvailable.Observe(float64(resp.Stats.TotalCount))
		b.metrics.ServerErrors.Add(float64(len(resp.Errors)))
	}

	b.results = resp
	b.printStatus(resp)

	for _, w := range resp.Warnings {
		logger.Warn().Str("warning", w).Msg("service warning")
	}
	logger.Info().
		Int("total_count", resp.Stats.TotalCount).
		Int("records", len(resp.Records)).
		Int("errors", len(resp.Errors)).
		Dur("elapsed", elapsed).
		Msg("query complete")

	return resp.Clone(), nil
}

// SubmitTable is Submit followed by conversion to table form.
func (b *Builder) SubmitTable(ctx context.Context) (*table.Table, error) {
	resp, err := b.Submit(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Table(), nil
}

// Results returns a copy of the retained response.
func (b *Builder) Results() (*dimensions.Response, error) {
	if b.results == nil {
		return nil, &StateError{Op: "read results", Reason: "no query has been submitted"}
	}
	return b.results.Clone(), nil
}

// Analyze runs the frequency aggregations over the retained response
// using the current topic. Output defaults to the builder's writer.
func (b *Builder) Analyze(opts analysis.Options) ([]types.FrequencyTable, error) {
	if b.results == nil {
		return nil, &StateError{Op: "analyze", Reason: "no query has been submitted"}
	}
	if opts.Output == nil {
		opts.Output = b.out
	}

	tables, err := analysis.New(b.spec.Topic, opts).Analyze(b.results.Table())
	if b.metrics != nil {
		for _, ft := range tables {
			b.metrics.AggregationsRendered.WithLabelValues(ft.Name).Inc()
		}
	}
	if err != nil {
		return tables, err
	}
	b.logger.Debug().Int("aggregations", len(tables)).Msg("analysis complete")
	return tables, nil
}

func (b *Builder) printStatus(resp *dimensions.Response) {
	fmt.Fprintf(b.out, "Done! %d results available\n", resp.Stats.TotalCount)
	if len(resp.Errors) == 0 {
		fmt.Fprintln(b.out, "Errors: none")
		return
	}
	fmt.Fprintf(b.out, "Errors: %v\n", resp.Errors)
}
