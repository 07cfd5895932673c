package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcomes recorded for submissions and history queries.
const (
	OutcomeAccepted    = "accepted"
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// DispatchMetrics records what callers do with the dispatch API: how submissions
// end and how large the history reads are.
type DispatchMetrics interface {
	// RecordSubmit counts one submission and its duration.
	// Outcome is one of accepted, invalid, unavailable or error.
	RecordSubmit(ctx context.Context, outcome string, duration time.Duration)

	// RecordHistoryQuery counts one history read. filtered tells whether any
	// predicate was applied; results is the number of records returned.
	RecordHistoryQuery(ctx context.Context, outcome string, filtered bool, results int, duration time.Duration)
}

type dispatchMetrics struct {
	submissions     metric.Int64Counter
	submitDuration  metric.Float64Histogram
	queries         metric.Int64Counter
	queryDuration   metric.Float64Histogram
	queryResultSize metric.Int64Histogram
}

// NewDispatchMetrics creates DispatchMetrics backed by OpenTelemetry instruments
// named with the given namespace prefix.
func NewDispatchMetrics(meterProvider metric.MeterProvider, namespace string) (DispatchMetrics, error) {
	meter := meterProvider.Meter(namespace)

	submissions, err := meter.Int64Counter(
		fmt.Sprintf("%s_submissions_total", namespace),
		metric.WithDescription("Total number of dispatch submissions by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create submission counter: %w", err)
	}

	submitDuration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_submit_duration_seconds", namespace),
		metric.WithDescription("Time spent validating and enqueuing a submission"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create submit histogram: %w", err)
	}

	queries, err := meter.Int64Counter(
		fmt.Sprintf("%s_history_queries_total", namespace),
		metric.WithDescription("Total number of dispatch history queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create history query counter: %w", err)
	}

	queryDuration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_history_query_duration_seconds", namespace),
		metric.WithDescription("Duration of dispatch history queries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create history query histogram: %w", err)
	}

	queryResultSize, err := meter.Int64Histogram(
		fmt.Sprintf("%s_history_query_results", namespace),
		metric.WithDescription("Number of records returned by a history query"),
		metric.WithUnit("{record}"),
		metric.WithExplicitBucketBoundaries(0, 1, 10, 100, 1000, 10000, 100000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create history result histogram: %w", err)
	}

	return &dispatchMetrics{
		submissions:     submissions,
		submitDuration:  submitDuration,
		queries:         queries,
		queryDuration:   queryDuration,
		queryResultSize: queryResultSize,
	}, nil
}

func (d *dispatchMetrics) RecordSubmit(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	d.submissions.Add(ctx, 1, attrs)
	d.submitDuration.Record(ctx, duration.Seconds(), attrs)
}

func (d *dispatchMetrics) RecordHistoryQuery(
	ctx context.Context,
	outcome string,
	filtered bool,
	results int,
	duration time.Duration,
) {
	d.queries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("filtered", strconv.FormatBool(filtered)),
	))
	d.queryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))
	if outcome == OutcomeSuccess {
		d.queryResultSize.Record(ctx, int64(results))
	}
}

// NoOpDispatchMetrics is a no-op implementation of DispatchMetrics for when metrics are disabled.
type NoOpDispatchMetrics struct{}

// NewNoOpDispatchMetrics creates a no-op DispatchMetrics implementation.
func NewNoOpDispatchMetrics() DispatchMetrics {
	return &NoOpDispatchMetrics{}
}

func (n *NoOpDispatchMetrics) RecordSubmit(context.Context, string, time.Duration) {}

func (n *NoOpDispatchMetrics) RecordHistoryQuery(context.Context, string, bool, int, time.Duration) {}
