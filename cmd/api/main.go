package main

import (
	"github.com/koungkub/boxcar-notification-service/internal/client"
	"github.com/koungkub/boxcar-notification-service/internal/handler"
	"github.com/koungkub/boxcar-notification-service/internal/metrics"
	"github.com/koungkub/boxcar-notification-service/internal/repository"
	"github.com/koungkub/boxcar-notification-service/internal/server"
	"github.com/koungkub/boxcar-notification-service/internal/service"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	fx.New(
		fx.Supply(logger),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		metrics.Module,
		client.Module,
		repository.Module,
		service.Module,
		handler.Module,
		server.Module,
		fx.Invoke(func(*server.HTTPServer) {}),
	).Run()
}
