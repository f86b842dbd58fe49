package repository

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -package mockrepository -destination ./mock/mockpersistent.go . PersistentProvider
type PersistentProvider interface {
	FindByName(ctx context.Context, name string) (ProviderCredential, error)
}

var _ PersistentProvider = (*Persistent)(nil)

type Persistent struct {
	conn *gorm.DB
}

type PersistentParams struct {
	fx.In

	Config PersistentConfig
	Logger *zap.Logger
}

func NewPersistent(lc fx.Lifecycle, params PersistentParams) (*Persistent, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		params.Config.Host,
		params.Config.Username,
		params.Config.Password,
		params.Config.Name,
		params.Config.Port,
		params.Config.SSLMode,
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if params.Config.AutoMigrate {
		if err := conn.AutoMigrate(&ProviderCredential{}); err != nil {
			return nil, err
		}
		if params.Logger != nil {
			params.Logger.Info("provider credential schema migrated")
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return &Persistent{
		conn: conn,
	}, nil
}

type PersistentConfig struct {
	Host        string `envconfig:"DB_HOST" required:"true"`
	Port        string `envconfig:"DB_PORT" required:"true"`
	Name        string `envconfig:"DB_NAME" required:"true"`
	Username    string `envconfig:"DB_USERNAME" required:"true"`
	Password    string `envconfig:"DB_PASSWORD" required:"true"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

func NewPersistentConfig() PersistentConfig {
	var cfg PersistentConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

// FindByName returns gorm.ErrRecordNotFound when no live provider has that name.
func (p *Persistent) FindByName(ctx context.Context, name string) (ProviderCredential, error) {
	credentials, err := gorm.
		G[ProviderCredential](p.conn).
		Where("name = ?", name).
		Limit(1).
		Find(ctx)
	if err != nil {
		return ProviderCredential{}, err
	}
	if len(credentials) == 0 {
		return ProviderCredential{}, gorm.ErrRecordNotFound
	}

	return credentials[0], nil
}
