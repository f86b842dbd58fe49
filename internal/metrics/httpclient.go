package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ErrInvalidStatus marks a request that completed with a non-2xx status.
var ErrInvalidStatus = errors.New("response status code not in 2xx range")

// HTTPClientCollector instruments outbound Boxcar calls and the per-host
// circuit breakers guarding them.
type HTTPClientCollector struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	errorCount      metric.Int64Counter
	breakerState    metric.Int64Gauge
	breakerChanges  metric.Int64Counter
}

func NewHTTPClientCollector(meter metric.Meter) (*HTTPClientCollector, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("noop")
	}

	c := &HTTPClientCollector{}
	var err error

	if c.requestCount, err = meter.Int64Counter(
		"http.client.requests",
		metric.WithDescription("Outbound requests to Boxcar"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}

	if c.requestDuration, err = meter.Float64Histogram(
		"http.client.duration",
		metric.WithDescription("Outbound request duration including the buffered body read"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if c.errorCount, err = meter.Int64Counter(
		"http.client.errors",
		metric.WithDescription("Outbound requests that failed or got a non-2xx status"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}

	if c.breakerState, err = meter.Int64Gauge(
		"http.client.circuit_breaker.state",
		metric.WithDescription("Circuit breaker state (0=closed, 1=open, 2=half-open)"),
		metric.WithUnit("{state}"),
	); err != nil {
		return nil, err
	}

	if c.breakerChanges, err = meter.Int64Counter(
		"http.client.circuit_breaker.state_changes",
		metric.WithDescription("Circuit breaker state transitions"),
		metric.WithUnit("{change}"),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RecordRequest counts one outbound call. statusCode is 0 when no response
// was received. The request path is reduced to its Boxcar endpoint so the
// API key never becomes a label.
func (c *HTTPClientCollector) RecordRequest(
	ctx context.Context,
	req *http.Request,
	statusCode int,
	duration time.Duration,
	err error,
) {
	host := req.URL.Host
	attrs := metric.WithAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.host", host),
		attribute.String("boxcar.endpoint", endpointName(req.URL.Path)),
		attribute.Int("http.status_code", statusCode),
	)

	c.requestCount.Add(ctx, 1, attrs)
	c.requestDuration.Record(ctx, duration.Seconds(), attrs)

	if err != nil {
		c.errorCount.Add(ctx, 1, metric.WithAttributes(
			attribute.String("http.host", host),
			attribute.String("error.type", getErrorType(err)),
		))
	}
}

func (c *HTTPClientCollector) RecordBreakerState(ctx context.Context, host string, state gobreaker.State) {
	c.breakerState.Record(ctx, breakerStateValue(state), metric.WithAttributes(
		attribute.String("http.host", host),
		attribute.String("circuit_breaker.state", state.String()),
	))
}

func (c *HTTPClientCollector) RecordBreakerTransition(ctx context.Context, host string, from, to gobreaker.State) {
	c.breakerChanges.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.host", host),
		attribute.String("circuit_breaker.from_state", from.String()),
		attribute.String("circuit_breaker.to_state", to.String()),
	))
}

// endpointName maps .../notifications/{subscribe,broadcast,""} to an
// operation label.
func endpointName(urlPath string) string {
	switch base := path.Base(urlPath); base {
	case "subscribe", "broadcast":
		return base
	case "notifications":
		return "notify"
	default:
		return "other"
	}
}

// open=1 and half-open=2, unlike gobreaker's own ordering.
func breakerStateValue(state gobreaker.State) int64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return -1
	}
}

func getErrorType(err error) string {
	if err == nil {
		return "none"
	}

	var netErr net.Error
	switch {
	case errors.Is(err, ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_breaker_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	default:
		return "unknown"
	}
}
