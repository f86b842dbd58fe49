package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/boxcar-notification-service/internal/client"
	"github.com/koungkub/boxcar-notification-service/internal/metrics"
	"github.com/koungkub/boxcar-notification-service/internal/repository"
	"github.com/koungkub/boxcar-notification-service/pkg/boxcar"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("service",
	fx.Provide(
		fx.Annotate(
			NewNotificationService,
			fx.As(new(NotificationProvider)),
		),
		NewBoxcarConfig,
	),
)

var ErrProviderNotFound = errors.New("provider not found")

//go:generate mockgen -package mockservice -destination ./mock/mockservice.go . NotificationProvider
type NotificationProvider interface {
	Subscribe(ctx context.Context, provider string, email string) (boxcar.Result, error)
	Notify(ctx context.Context, provider string, email string, message string, opts boxcar.NotificationOptions) (boxcar.Result, error)
	Broadcast(ctx context.Context, provider string, message string, opts boxcar.NotificationOptions) (boxcar.Result, error)
}

var _ NotificationProvider = (*NotificationService)(nil)

type NotificationService struct {
	cacheProvider      repository.CacheProvider
	persistentProvider repository.PersistentProvider
	httpclient         client.HTTPClientProvider
	collector          *metrics.NotificationCollector
	config             BoxcarConfig
	logger             *zap.Logger
}

type NotificationServiceParams struct {
	fx.In

	CacheProvider      repository.CacheProvider
	PersistentProvider repository.PersistentProvider
	HTTPclient         client.HTTPClientProvider
	Collector          *metrics.NotificationCollector
	Config             BoxcarConfig
	Logger             *zap.Logger
}

func NewNotificationService(params NotificationServiceParams) *NotificationService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NotificationService{
		cacheProvider:      params.CacheProvider,
		persistentProvider: params.PersistentProvider,
		httpclient:         params.HTTPclient,
		collector:          params.Collector,
		config:             params.Config,
		logger:             logger,
	}
}

type BoxcarConfig struct {
	BaseURL   string `envconfig:"BOXCAR_BASE_URL" default:"http://boxcar.io"`
	UserAgent string `envconfig:"BOXCAR_USER_AGENT" default:"Boxcar Go API Client"`
}

func NewBoxcarConfig() BoxcarConfig {
	var cfg BoxcarConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

func (s *NotificationService) Subscribe(ctx context.Context, provider string, email string) (boxcar.Result, error) {
	api, err := s.boxcarClient(ctx, provider)
	if err != nil {
		return boxcar.Result{}, err
	}

	result := api.Subscribe(ctx, email)
	s.record(ctx, provider, "subscribe", result)

	return result, nil
}

func (s *NotificationService) Notify(
	ctx context.Context,
	provider string,
	email string,
	message string,
	opts boxcar.NotificationOptions,
) (boxcar.Result, error) {
	api, err := s.boxcarClient(ctx, provider)
	if err != nil {
		return boxcar.Result{}, err
	}

	result := api.NotifyWithOptions(ctx, email, message, opts)
	s.record(ctx, provider, "notify", result)

	return result, nil
}

func (s *NotificationService) Broadcast(
	ctx context.Context,
	provider string,
	message string,
	opts boxcar.NotificationOptions,
) (boxcar.Result, error) {
	api, err := s.boxcarClient(ctx, provider)
	if err != nil {
		return boxcar.Result{}, err
	}

	result := api.BroadcastWithOptions(ctx, message, opts)
	s.record(ctx, provider, "broadcast", result)

	return result, nil
}

// boxcarClient builds a client bound to one provider's credentials on top of
// the shared transport.
func (s *NotificationService) boxcarClient(ctx context.Context, provider string) (*boxcar.Client, error) {
	credential, err := s.getProviderCredential(ctx, provider)
	if err != nil {
		return nil, err
	}

	return boxcar.New(credential.APIKey, credential.APISecret,
		boxcar.WithHTTPClient(s.httpclient),
		boxcar.WithBaseURL(s.config.BaseURL),
		boxcar.WithUserAgent(s.config.UserAgent),
		boxcar.WithLogger(s.logger.With(zap.String("provider", provider))),
	), nil
}

func (s *NotificationService) getProviderCredential(
	ctx context.Context,
	provider string,
) (repository.ProviderCredential, error) {
	credential, err := s.cacheProvider.Get(provider)
	if err == nil {
		return credential, nil
	}
	if errors.Is(err, repository.ErrProviderMissing) {
		return repository.ProviderCredential{}, fmt.Errorf("%w: %s", ErrProviderNotFound, provider)
	}

	credential, err = s.persistentProvider.FindByName(ctx, provider)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.cacheProvider.SetMissing(provider); err != nil {
				s.logger.Debug("missing provider not cached", zap.String("provider", provider), zap.Error(err))
			}
			return repository.ProviderCredential{}, fmt.Errorf("%w: %s", ErrProviderNotFound, provider)
		}
		return repository.ProviderCredential{}, err
	}

	if err := s.cacheProvider.Set(provider, credential); err != nil {
		s.logger.Debug("provider credential not cached", zap.String("provider", provider), zap.Error(err))
	}

	return credential, nil
}

func (s *NotificationService) record(ctx context.Context, provider string, operation string, result boxcar.Result) {
	if s.collector != nil {
		s.collector.RecordResult(ctx, provider, operation, result.Kind.String(), result.Code)
	}

	if !result.Success {
		s.logger.Info("boxcar call failed",
			zap.String("provider", provider),
			zap.String("operation", operation),
			zap.Int("code", result.Code),
			zap.String("description", result.Description),
		)
	}
}
