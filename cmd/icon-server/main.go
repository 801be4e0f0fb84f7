// cmd/icon-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"icon-registry/internal/common/config"
	"icon-registry/internal/common/logger"
	"icon-registry/internal/common/observability"
	"icon-registry/internal/icons/dispatch"
	"icon-registry/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting icon server...")

	obs := observability.New("icon-server")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, origin := server.StaticRegistry(ctx, cfg.Generator.RegistryPath, log)

	live, closeLive := server.LiveSource(ctx, cfg, log)
	defer closeLive()

	d := dispatch.New(reg,
		dispatch.WithLive(live),
		dispatch.WithLiveTimeout(config.GetDuration(cfg.Dispatch.LiveTimeout)),
		dispatch.WithLogger(log),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.New(d, reg, origin, obs, log).Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("Icon server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Icon server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Icon server stopped gracefully")
}
