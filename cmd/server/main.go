package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	webAdapter "choconati/internal/adapters/web"
	"choconati/internal/app"
	"choconati/internal/config"
	"choconati/internal/logger"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CHOCONATI_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := app.Build(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer cleanup()

	opts := webAdapter.Options{AllowedOrigins: cfg.HTTP.AllowedOrigins, Log: lg}
	if cfg.Metrics.Enabled {
		opts.Metrics = promhttp.Handler()
	}
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           webAdapter.NewHandler(svc, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("server starting", "addr", cfg.HTTP.Addr, "backend", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", "err", err)
	}
	if err := svc.Close(shutdownCtx); err != nil {
		lg.Error("flush stores", "err", err)
	}
}
