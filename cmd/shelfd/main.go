package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"shelf/internal/catalog"
	"shelf/internal/config"
	"shelf/internal/daemon"
	"shelf/internal/logging"
	"shelf/internal/notifications"
	"shelf/internal/resolve"
	"shelf/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := catalog.Open(cfg)
	if err != nil {
		logger.Error("open catalog store", slog.String("error", err.Error()))
		return
	}

	resolver, err := resolve.New(cfg, logger)
	if err != nil {
		logger.Warn("metadata lookup disabled", slog.String("error", err.Error()))
	}

	notifier := notifications.NewService(cfg)

	apiServer, err := server.New(cfg, store, resolver, notifier, logger)
	if err != nil {
		logger.Error("create api server", slog.String("error", err.Error()))
		store.Close()
		return
	}

	d, err := daemon.New(cfg, store, apiServer, logger)
	if err != nil {
		logger.Error("create daemon", slog.String("error", err.Error()))
		store.Close()
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("start daemon", slog.String("error", err.Error()))
		return
	}

	<-ctx.Done()
	logger.Info("shelfd shutting down")
	d.Stop()
}
