package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// NotificationCollector counts Boxcar API calls by operation and outcome.
type NotificationCollector struct {
	notificationCount metric.Int64Counter
}

func NewNotificationCollector(meter metric.Meter) (*NotificationCollector, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("noop")
	}

	notificationCount, err := meter.Int64Counter(
		"boxcar.notifications",
		metric.WithDescription("Boxcar API calls by operation and outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	return &NotificationCollector{
		notificationCount: notificationCount,
	}, nil
}

func (c *NotificationCollector) RecordResult(
	ctx context.Context,
	provider string,
	operation string,
	outcome string,
	code int,
) {
	attrs := []attribute.KeyValue{
		attribute.String("boxcar.provider", provider),
		attribute.String("boxcar.operation", operation),
		attribute.String("boxcar.outcome", outcome),
		attribute.Int("boxcar.code", code),
	}
	c.notificationCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}
