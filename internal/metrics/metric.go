package metrics

import (
	"context"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/fx"
)

type MetricConfig struct {
	AppName   string `envconfig:"APP_NAME" default:"boxcar-notification-service"`
	Namespace string `envconfig:"METRICS_NAMESPACE"`
}

func NewMetricConfig() MetricConfig {
	var cfg MetricConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

// NewMeterProvider exports through the default Prometheus registry served on
// /metrics and installs itself as the global provider.
func NewMeterProvider(cfg MetricConfig) (*sdkmetric.MeterProvider, error) {
	var opts []prometheus.Option
	if cfg.Namespace != "" {
		opts = append(opts, prometheus.WithNamespace(cfg.Namespace))
	}

	exporter, err := prometheus.New(opts...)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.AppName),
		)),
	)

	otel.SetMeterProvider(provider)
	return provider, nil
}

type MetricParams struct {
	fx.In

	Config        MetricConfig
	MeterProvider *sdkmetric.MeterProvider
}

func NewMetric(lc fx.Lifecycle, params MetricParams) metric.Meter {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.MeterProvider.Shutdown(ctx)
		},
	})

	return params.MeterProvider.Meter(params.Config.AppName)
}
