package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DeliveryMetrics records what the dispatch workers do with each job.
type DeliveryMetrics interface {
	// RecordDelivery counts one gateway attempt and its duration.
	// Status is "success" or "failure".
	RecordDelivery(ctx context.Context, status string, duration time.Duration)

	// RecordDropped counts a job that produced no record. Reason examples:
	// "decode", "persist".
	RecordDropped(ctx context.Context, reason string)

	// AddInFlight moves the in-flight job gauge by delta.
	AddInFlight(ctx context.Context, delta int64)

	// RecordDequeueError counts a failed read from the queue.
	RecordDequeueError(ctx context.Context)
}

type deliveryMetrics struct {
	deliveryCounter metric.Int64Counter
	durationHisto   metric.Float64Histogram
	droppedCounter  metric.Int64Counter
	inFlight        metric.Int64UpDownCounter
	dequeueErrors   metric.Int64Counter
}

// NewDeliveryMetrics creates DeliveryMetrics backed by OpenTelemetry instruments.
func NewDeliveryMetrics(meterProvider metric.MeterProvider, namespace string) (DeliveryMetrics, error) {
	meter := meterProvider.Meter(namespace)

	deliveryCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_deliveries_total", namespace),
		metric.WithDescription("Total number of delivery attempts"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_delivery_duration_seconds", namespace),
		metric.WithDescription("Duration of delivery attempts in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery histogram: %w", err)
	}

	droppedCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_jobs_dropped_total", namespace),
		metric.WithDescription("Total number of jobs that produced no dispatch record"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dropped counter: %w", err)
	}

	inFlight, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_jobs_in_flight", namespace),
		metric.WithDescription("Number of jobs currently being processed"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-flight gauge: %w", err)
	}

	dequeueErrors, err := meter.Int64Counter(
		fmt.Sprintf("%s_dequeue_errors_total", namespace),
		metric.WithDescription("Total number of failed queue reads"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dequeue error counter: %w", err)
	}

	return &deliveryMetrics{
		deliveryCounter: deliveryCounter,
		durationHisto:   durationHisto,
		droppedCounter:  droppedCounter,
		inFlight:        inFlight,
		dequeueErrors:   dequeueErrors,
	}, nil
}

func (d *deliveryMetrics) RecordDelivery(ctx context.Context, status string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	d.deliveryCounter.Add(ctx, 1, attrs)
	d.durationHisto.Record(ctx, duration.Seconds(), attrs)
}

func (d *deliveryMetrics) RecordDropped(ctx context.Context, reason string) {
	d.droppedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (d *deliveryMetrics) AddInFlight(ctx context.Context, delta int64) {
	d.inFlight.Add(ctx, delta)
}

func (d *deliveryMetrics) RecordDequeueError(ctx context.Context) {
	d.dequeueErrors.Add(ctx, 1)
}

// NoOpDeliveryMetrics is a no-op implementation of DeliveryMetrics for when metrics are disabled.
type NoOpDeliveryMetrics struct{}

// NewNoOpDeliveryMetrics creates a no-op DeliveryMetrics implementation.
func NewNoOpDeliveryMetrics() DeliveryMetrics {
	return &NoOpDeliveryMetrics{}
}

func (n *NoOpDeliveryMetrics) RecordDelivery(context.Context, string, time.Duration) {}

func (n *NoOpDeliveryMetrics) RecordDropped(context.Context, string) {}

func (n *NoOpDeliveryMetrics) AddInFlight(context.Context, int64) {}

func (n *NoOpDeliveryMetrics) RecordDequeueError(context.Context) {}
