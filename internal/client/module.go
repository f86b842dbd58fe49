package client

import "go.uber.org/fx"

var Module = fx.Module("http_client",
	transportModule,
	breakerModule,
)

var (
	// The breaker-backed client is what the Boxcar library sends through.
	transportModule = fx.Provide(
		fx.Annotate(
			NewHTTPClient,
			fx.As(new(HTTPClientProvider)),
		),
		NewHTTPClientConfig,
	)

	breakerModule = fx.Provide(
		NewCircuitBreakerRegistry,
		NewCircuitBreakerRegistryConfig,
	)
)
