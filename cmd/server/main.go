// FileBridge exposes workspace file tools to AI clients over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/FileBridge/internal/infrastructure/server"
)

func main() {
	cfg := config.LoadOrDefault()

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log = logging.NewDefault()
		log.Warn("invalid log level, using defaults", zap.String("level", cfg.Logging.Level))
	}
	defer log.Sync()

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatal("failed to build server", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("signal received", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}
}
