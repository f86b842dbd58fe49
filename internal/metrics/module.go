package metrics

import "go.uber.org/fx"

var Module = fx.Module("metric",
	fx.Provide(
		NewMeterProvider,
		NewMetric,
		NewMetricConfig,
	),
	collectorModule,
)

var (
	collectorModule = fx.Provide(
		NewHTTPServerCollector,
		NewHTTPClientCollector,
		NewNotificationCollector,
	)
)
