package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/boxcar-notification-service/internal/metrics"
	"github.com/koungkub/boxcar-notification-service/pkg/boxcar"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -package mockclient -destination ./mock/mockclient.go . HTTPClientProvider
type HTTPClientProvider interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	_ HTTPClientProvider = (*HTTPClient)(nil)
	_ boxcar.Doer        = (*HTTPClient)(nil)
)

type HTTPClient struct {
	httpclient             *http.Client
	circuitBreakerRegistry *CircuitBreakerRegistry
	metricsCollector       *metrics.HTTPClientCollector
	logger                 *zap.Logger
}

type HTTPClientConfig struct {
	Timeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"5s"`
}

type HTTPClientParams struct {
	fx.In

	Config                 HTTPClientConfig
	CircuitBreakerRegistry *CircuitBreakerRegistry
	MetricsCollector       *metrics.HTTPClientCollector
	Logger                 *zap.Logger
}

func NewHTTPClient(params HTTPClientParams) *HTTPClient {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPClient{
		httpclient: &http.Client{
			Timeout: params.Config.Timeout,
		},
		circuitBreakerRegistry: params.CircuitBreakerRegistry,
		metricsCollector:       params.MetricsCollector,
		logger:                 logger,
	}
}

func NewHTTPClientConfig() HTTPClientConfig {
	var cfg HTTPClientConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

// Do sends req through the circuit breaker of its host. Only transport errors
// count against the breaker; every HTTP status is handed back to the caller
// with a fully buffered body. Failures caused by req's own context ending are
// returned but never counted, since the breaker is shared by every provider.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	ctx := req.Context()
	host := req.URL.Host

	circuitBreaker := c.circuitBreakerRegistry.GetOrCreate(host)

	cbState := circuitBreaker.State()
	c.metricsCollector.RecordBreakerState(ctx, host, cbState)

	cbResp, err := circuitBreaker.Execute(func() (CircuitBreakerResponse, error) {
		resp, err := c.httpclient.Do(req)
		if err != nil {
			return CircuitBreakerResponse{}, classifyError(ctx, err)
		}
		defer resp.Body.Close()

		rawBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return CircuitBreakerResponse{}, classifyError(ctx, err)
		}

		return CircuitBreakerResponse{
			Body:       rawBody,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
		}, nil
	})

	duration := time.Since(start)

	var aborted *callerAbortedError
	if errors.As(err, &aborted) {
		err = aborted.err
	}

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("request rejected by circuit breaker",
				zap.String("host", host),
				zap.Stringer("state", cbState),
			)
		}
		c.metricsCollector.RecordRequest(ctx, req, 0, duration, err)
		return nil, err
	}

	var statusErr error
	if cbResp.StatusCode < http.StatusOK || cbResp.StatusCode >= http.StatusMultipleChoices {
		statusErr = fmt.Errorf("%w: %d", metrics.ErrInvalidStatus, cbResp.StatusCode)
		c.logger.Debug("upstream answered with non-success status",
			zap.String("host", host),
			zap.Int("status_code", cbResp.StatusCode),
		)
	}
	c.metricsCollector.RecordRequest(ctx, req, cbResp.StatusCode, duration, statusErr)

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", cbResp.StatusCode, http.StatusText(cbResp.StatusCode)),
		StatusCode:    cbResp.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        cbResp.Header,
		Body:          io.NopCloser(bytes.NewReader(cbResp.Body)),
		ContentLength: int64(len(cbResp.Body)),
		Request:       req,
	}, nil
}

func classifyError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return &callerAbortedError{err: err}
	}
	return err
}
