package repository

import "go.uber.org/fx"

var Module = fx.Module("repository",
	credentialStoreModule,
	credentialCacheModule,
)

var (
	credentialStoreModule = fx.Provide(
		fx.Annotate(
			NewPersistent,
			fx.As(new(PersistentProvider)),
		),
		NewPersistentConfig,
	)

	credentialCacheModule = fx.Provide(
		fx.Annotate(
			NewCache,
			fx.As(new(CacheProvider)),
		),
		NewCacheConfig,
	)
)
