package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrox/fieldops/internal/app"
	"github.com/agrox/fieldops/internal/config"
	"github.com/agrox/fieldops/internal/logger"
	"github.com/agrox/fieldops/internal/probe"
)

func main() {
	// graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: load config: %v", err)
	}

	if cfg.IsProduction() {
		logger.Init(cfg.LogLevel)
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}

	catalog, err := probe.LoadCatalog(cfg.AdaptersFile)
	if err != nil {
		log.Fatalf("main: load adapter catalog: %v", err)
	}

	stores, err := app.OpenStores(ctx, cfg, catalog)
	if err != nil {
		log.Fatalf("main: open backend: %v", err)
	}
	defer stores.Close()

	gateway, err := app.New(cfg, catalog, stores)
	if err != nil {
		log.Fatalf("main: build gateway: %v", err)
	}
	defer gateway.Close()

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           gateway.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.L().WithError(err).Error("main: http server shutdown")
		}
	}()

	logger.L().Infof("main: http server listening on port %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: http server: %v", err)
	}
}
