package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Bootstrap logging so config loading failures are visible; the full
	// logger is configured once the config is in hand.
	logger.InitBootstrap()
	defer logger.Sync()

	app, err := initializeApplication()
	if err != nil {
		logger.L().Fatal("failed to initialise application", zap.Error(err))
	}
	defer app.Cleanup()

	if err := logger.Init(logger.OptionsFromConfig(app.Config.Log)); err != nil {
		logger.L().Fatal("failed to initialise logger", zap.Error(err))
	}

	go func() {
		logger.L().Info("server listening", zap.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(ctx); err != nil {
		logger.L().Error("forced shutdown", zap.Error(err))
	}

	logger.L().Info("server stopped")
}
