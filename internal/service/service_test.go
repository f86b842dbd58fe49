package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"

	mockclient "github.com/koungkub/boxcar-notification-service/internal/client/mock"
	"github.com/koungkub/boxcar-notification-service/internal/metrics"
	"github.com/koungkub/boxcar-notification-service/internal/repository"
	mockrepository "github.com/koungkub/boxcar-notification-service/internal/repository/mock"
	"github.com/koungkub/boxcar-notification-service/pkg/boxcar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

var testCredential = repository.ProviderCredential{
	Name:      "ci",
	APIKey:    "ci-key",
	APISecret: "ci-secret",
}

func newResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func readForm(t *testing.T, req *http.Request) url.Values {
	t.Helper()

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	values, err := url.ParseQuery(string(body))
	require.NoError(t, err)

	return values
}

type testDeps struct {
	cache      *mockrepository.MockCacheProvider
	persistent *mockrepository.MockPersistentProvider
	httpClient *mockclient.MockHTTPClientProvider
}

func newTestService(t *testing.T, collector *metrics.NotificationCollector, logger *zap.Logger) (*NotificationService, testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	deps := testDeps{
		cache:      mockrepository.NewMockCacheProvider(ctrl),
		persistent: mockrepository.NewMockPersistentProvider(ctrl),
		httpClient: mockclient.NewMockHTTPClientProvider(ctrl),
	}

	service := NewNotificationService(NotificationServiceParams{
		CacheProvider:      deps.cache,
		PersistentProvider: deps.persistent,
		HTTPclient:         deps.httpClient,
		Collector:          collector,
		Config: BoxcarConfig{
			BaseURL:   "http://boxcar.test",
			UserAgent: boxcar.DefaultUserAgent,
		},
		Logger: logger,
	})

	return service, deps
}

func TestNewNotificationService(t *testing.T) {
	service, deps := newTestService(t, nil, nil)

	assert.Equal(t, deps.cache, service.cacheProvider)
	assert.Equal(t, deps.persistent, service.persistentProvider)
	assert.Equal(t, deps.httpClient, service.httpclient)
	assert.NotNil(t, service.logger)
	assert.Equal(t, "http://boxcar.test", service.config.BaseURL)
}

func TestNewBoxcarConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := NewBoxcarConfig()

		assert.Equal(t, boxcar.DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, boxcar.DefaultUserAgent, cfg.UserAgent)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("BOXCAR_BASE_URL", "https://staging.boxcar.test")
		t.Setenv("BOXCAR_USER_AGENT", "gateway/1.0")

		cfg := NewBoxcarConfig()

		assert.Equal(t, "https://staging.boxcar.test", cfg.BaseURL)
		assert.Equal(t, "gateway/1.0", cfg.UserAgent)
	})
}

func TestNotificationService_Subscribe(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*testing.T, testDeps)
		expectedResult boxcar.Result
		expectedError  error
		expectedErrMsg string
	}{
		{
			name: "credential from cache",
			setupMocks: func(t *testing.T, deps testDeps) {
				deps.cache.EXPECT().Get("ci").Return(testCredential, nil)
				deps.httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
					assert.Equal(t, "http://boxcar.test/devices/providers/ci-key/notifications/subscribe", req.URL.String())
					assert.Equal(t, boxcar.DefaultUserAgent, req.UserAgent())
					form := readForm(t, req)
					assert.Equal(t, "ci-key", form.Get("token"))
					assert.Equal(t, "ci-secret", form.Get("secret"))
					assert.Equal(t, "user@example.com", form.Get("email"))
					return newResponse(http.StatusOK, "OK"), nil
				})
			},
			expectedResult: boxcar.Result{Kind: boxcar.OutcomeSuccess, Success: true, Response: "OK"},
		},
		{
			name: "cache miss loads and caches credential",
			setupMocks: func(t *testing.T, deps testDeps) {
				gomock.InOrder(
					deps.cache.EXPECT().Get("ci").Return(repository.ProviderCredential{}, errors.New("cache miss")),
					deps.persistent.EXPECT().FindByName(gomock.Any(), "ci").Return(testCredential, nil),
					deps.cache.EXPECT().Set("ci", testCredential).Return(nil),
				)
				deps.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusOK, "OK"), nil)
			},
			expectedResult: boxcar.Result{Kind: boxcar.OutcomeSuccess, Success: true, Response: "OK"},
		},
		{
			name: "cache rejection does not fail the call",
			setupMocks: func(t *testing.T, deps testDeps) {
				deps.cache.EXPECT().Get("ci").Return(repository.ProviderCredential{}, errors.New("cache miss"))
				deps.persistent.EXPECT().FindByName(gomock.Any(), "ci").Return(testCredential, nil)
				deps.cache.EXPECT().Set("ci", testCredential).Return(errors.New("rejected"))
				deps.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusOK, ""), nil)
			},
			expectedResult: boxcar.Result{Kind: boxcar.OutcomeSuccess, Success: true},
		},
		{
			name: "unknown provider",
			setupMocks: func(t *testing.T, deps testDeps) {
				deps.cache.EXPECT().Get("ci").Return(repository.ProviderCredential{}, errors.New("cache miss"))
				deps.persistent.EXPECT().FindByName(gomock.Any(), "ci").Return(repository.ProviderCredential{}, gorm.ErrRecordNotFound)
				deps.cache.EXPECT().SetMissing("ci").Return(nil)
			},
			expectedError:  ErrProviderNotFound,
			expectedErrMsg: "provider not found: ci",
		},
		{
			name: "provider cached as missing skips the database",
			setupMocks: func(t *testing.T, deps testDeps) {
				deps.cache.EXPECT().Get("ci").Return(repository.ProviderCredential{}, fmt.Errorf("%w: ci", repository.ErrProviderMissing))
			},
			expectedError:  ErrProviderNotFound,
			expectedErrMsg: "provider not found: ci",
		},
		{
			name: "negative cache rejection still reports not found",
			setupMocks: func(t *testing.T, deps testDeps) {
				deps.cache.EXPECT().Get("ci").Return(repository.ProviderCredential{}, errors.New("cache miss"))
				deps.persistent.EXPECT().FindByName(gomock.Any(), "ci").Return(repository.ProviderCredential{}, gorm.ErrRecordNotFound)
				deps.cache.EXPECT().SetMissing("ci").Return(errors.New("rejected"))
			},
			expectedError:  ErrProviderNotFound,
			expectedErrMsg: "provider not found: ci",
		},
		{
			name: "database failure",
			setupMocks: func(t *testing.T, deps testDeps) {
				deps.cache.EXPECT().Get("ci").Return(repository.ProviderCredential{}, errors.New("cache miss"))
				deps.persistent.EXPECT().FindByName(gomock.Any(), "ci").Return(repository.ProviderCredential{}, errors.New("database error"))
			},
			expectedErrMsg: "database error",
		},
		{
			name: "boxcar rejects the user",
			setupMocks: func(t *testing.T, deps testDeps) {
				deps.cache.EXPECT().Get("ci").Return(testCredential, nil)
				deps.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusNotFound, ""), nil)
			},
			expectedResult: boxcar.Result{
				Kind:        boxcar.OutcomeStatus,
				Code:        http.StatusNotFound,
				Description: boxcar.DescUserNotFound,
			},
		},
		{
			name: "transport failure",
			setupMocks: func(t *testing.T, deps testDeps) {
				deps.cache.EXPECT().Get("ci").Return(testCredential, nil)
				deps.httpClient.EXPECT().Do(gomock.Any()).Return(nil, errors.New("circuit breaker is open"))
			},
			expectedResult: boxcar.Result{
				Kind:        boxcar.OutcomeUnknown,
				Code:        boxcar.UnknownErrorCode,
				Description: "Unknown Error : circuit breaker is open",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestService(t, nil, nil)
			tt.setupMocks(t, deps)

			result, err := service.Subscribe(context.Background(), "ci", "user@example.com")

			if tt.expectedErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErrMsg)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				assert.Equal(t, boxcar.Result{}, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestNotificationService_Notify(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		opts     boxcar.NotificationOptions
		expected map[string]string
		absent   []string
	}{
		{
			name:    "message only",
			message: "Build passed",
			expected: map[string]string{
				"email":                 "user@example.com",
				"notification[message]": "Build passed",
			},
			absent: []string{
				"notification[from_screen_name]",
				"notification[from_remote_service_id]",
				"notification[source_url]",
				"notification[icon_url]",
			},
		},
		{
			name:    "with every option",
			message: "Build failed",
			opts: boxcar.NotificationOptions{
				FromName:  "CI",
				ID:        "build-42",
				SourceURL: "https://ci.example.com/42",
				IconURL:   "https://ci.example.com/icon.png",
			},
			expected: map[string]string{
				"email":                                "user@example.com",
				"notification[message]":                "Build failed",
				"notification[from_screen_name]":       "CI",
				"notification[from_remote_service_id]": "build-42",
				"notification[source_url]":             "https://ci.example.com/42",
				"notification[icon_url]":               "https://ci.example.com/icon.png",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestService(t, nil, nil)
			deps.cache.EXPECT().Get("ci").Return(testCredential, nil)
			deps.httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "http://boxcar.test/devices/providers/ci-key/notifications/", req.URL.String())
				form := readForm(t, req)
				for key, value := range tt.expected {
					assert.Equal(t, value, form.Get(key), key)
				}
				for _, key := range tt.absent {
					assert.NotContains(t, form, key)
				}
				return newResponse(http.StatusOK, "OK"), nil
			})

			result, err := service.Notify(context.Background(), "ci", "user@example.com", tt.message, tt.opts)

			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.Equal(t, "OK", result.Response)
		})
	}
}

func TestNotificationService_Notify_UnknownProvider(t *testing.T) {
	service, deps := newTestService(t, nil, nil)
	deps.cache.EXPECT().Get("missing").Return(repository.ProviderCredential{}, errors.New("cache miss"))
	deps.persistent.EXPECT().FindByName(gomock.Any(), "missing").Return(repository.ProviderCredential{}, gorm.ErrRecordNotFound)
	deps.cache.EXPECT().SetMissing("missing").Return(nil)

	_, err := service.Notify(context.Background(), "missing", "user@example.com", "hi", boxcar.NotificationOptions{})

	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestNotificationService_Broadcast(t *testing.T) {
	t.Run("sends to the broadcast endpoint without email", func(t *testing.T) {
		service, deps := newTestService(t, nil, nil)
		deps.cache.EXPECT().Get("ci").Return(testCredential, nil)
		deps.httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "http://boxcar.test/devices/providers/ci-key/notifications/broadcast", req.URL.String())
			form := readForm(t, req)
			assert.NotContains(t, form, "email")
			assert.Equal(t, "Deploy finished", form.Get("notification[message]"))
			assert.Equal(t, "deploy-7", form.Get("notification[from_remote_service_id]"))
			return newResponse(http.StatusOK, "OK"), nil
		})

		result, err := service.Broadcast(context.Background(), "ci", "Deploy finished", boxcar.NotificationOptions{ID: "deploy-7"})

		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("unauthorized provider", func(t *testing.T) {
		service, deps := newTestService(t, nil, nil)
		deps.cache.EXPECT().Get("ci").Return(testCredential, nil)
		deps.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusUnauthorized, "denied"), nil)

		result, err := service.Broadcast(context.Background(), "ci", "Deploy finished", boxcar.NotificationOptions{})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, http.StatusUnauthorized, result.Code)
		assert.Equal(t, boxcar.DescUnauthorized, result.Description)
		assert.Empty(t, result.Response)
	})
}

func TestNotificationService_RecordsMetricsAndLogs(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	collector, err := metrics.NewNotificationCollector(provider.Meter("test"))
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	service, deps := newTestService(t, collector, zap.New(core))

	deps.cache.EXPECT().Get("ci").Return(testCredential, nil).Times(2)
	gomock.InOrder(
		deps.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusOK, "OK"), nil),
		deps.httpClient.EXPECT().Do(gomock.Any()).Return(newResponse(http.StatusForbidden, ""), nil),
	)

	_, err = service.Subscribe(context.Background(), "ci", "user@example.com")
	require.NoError(t, err)
	_, err = service.Broadcast(context.Background(), "ci", "hello", boxcar.NotificationOptions{})
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	sum := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 2)

	outcomes := map[string]string{}
	for _, dp := range sum.DataPoints {
		operation, _ := dp.Attributes.Value(attribute.Key("boxcar.operation"))
		outcome, _ := dp.Attributes.Value(attribute.Key("boxcar.outcome"))
		outcomes[operation.AsString()] = outcome.AsString()
	}
	assert.Equal(t, map[string]string{"subscribe": "success", "broadcast": "status"}, outcomes)

	entries := logs.FilterMessage("boxcar call failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broadcast", entries[0].ContextMap()["operation"])
	assert.Equal(t, int64(http.StatusForbidden), entries[0].ContextMap()["code"])
}
