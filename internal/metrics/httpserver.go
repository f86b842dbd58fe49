package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// HTTPServerCollector instruments the gateway's own routes.
type HTTPServerCollector struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	activeRequests  metric.Int64UpDownCounter
}

func NewHTTPServerCollector(meter metric.Meter) (*HTTPServerCollector, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("noop")
	}

	m := &HTTPServerCollector{}
	var err error

	if m.requestCount, err = meter.Int64Counter(
		"http.server.requests",
		metric.WithDescription("Gateway requests by route and status"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}

	if m.requestDuration, err = meter.Float64Histogram(
		"http.server.duration",
		metric.WithDescription("Gateway request duration"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.activeRequests, err = meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Gateway requests in flight"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// unmatchedRoute labels every request that hit no registered route.
const unmatchedRoute = "unmatched"

// Middleware labels requests with the route template only. Path parameters
// such as the provider name are never used as labels; providers are counted
// by NotificationCollector once their credentials resolve.
func (m *HTTPServerCollector) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		inflight := metric.WithAttributes(attribute.String("http.route", route))
		m.activeRequests.Add(ctx, 1, inflight)
		defer m.activeRequests.Add(ctx, -1, inflight)

		start := time.Now()
		c.Next()

		attrs := metric.WithAttributes(
			attribute.String("http.method", methodLabel(c.Request.Method)),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", c.Writer.Status()),
		)

		m.requestCount.Add(ctx, 1, attrs)
		m.requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}

// methodLabel folds non-standard methods into one label.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return method
	default:
		return "_OTHER"
	}
}
