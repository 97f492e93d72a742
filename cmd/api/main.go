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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/lumafood/storefront-api/pkg/config"
	"github.com/lumafood/storefront-api/pkg/env"
	"github.com/lumafood/storefront-api/pkg/logger"
	"github.com/lumafood/storefront-api/pkg/metrics"
	"github.com/lumafood/storefront-api/pkg/redis"
	"github.com/lumafood/storefront-api/pkg/stripe"

	"github.com/lumafood/storefront-api/api/routes"
	"github.com/lumafood/storefront-api/internal/checkout"
	"github.com/lumafood/storefront-api/internal/prices"
)

const shutdownGrace = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "server exited", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
	if err != nil {
		return err
	}

	var cache *redis.Client
	if cfg.Redis.Enabled() {
		cache, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
	} else {
		logg.Info(ctx, "price snapshot cache disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := routes.NewRouter(routes.Deps{
		Logger:   logg,
		Metrics:  metrics.NewHTTPMetrics(registry),
		Registry: registry,
		Cache:    cache,
		Prices:   prices.NewService(stripeClient, cache, cfg.Cache.PriceTTL, logg),
		Checkout: checkout.NewService(stripeClient, logg),
	})

	// Hosting platforms inject PORT; the config default applies elsewhere.
	port := env.Get("PORT", cfg.App.Port)
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", port), "storefront api listening")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return multierr.Append(err, cache.Close())
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var closeErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		closeErr = multierr.Append(closeErr, err)
	}
	if err := cache.Close(); err != nil {
		closeErr = multierr.Append(closeErr, err)
	}
	if err := <-serverErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		closeErr = multierr.Append(closeErr, err)
	}
	return closeErr
}
