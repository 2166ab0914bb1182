//go:build wireinject
// +build wireinject

package main

import (
	"net/http"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/logger"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/repository"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/server"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

// Application is everything main needs to run and stop the service.
type Application struct {
	Server  *http.Server
	Config  *config.Config
	Cleanup func()
}

func initializeApplication() (*Application, error) {
	wire.Build(
		// Infrastructure layer ProviderSets
		config.ProviderSet,

		// Business layer ProviderSets
		repository.ProviderSet,
		service.ProviderSet,
		handler.ProviderSet,

		// Server layer ProviderSet
		server.ProviderSet,

		// Cleanup function provider
		provideCleanup,

		// Application struct
		wire.Struct(new(Application), "Server", "Config", "Cleanup"),
	)
	return nil, nil
}

func provideCleanup(rdb *redis.Client) func() {
	return func() {
		if err := rdb.Close(); err != nil {
			logger.L().Warn("failed to close redis client", zap.Error(err))
		}
	}
}
