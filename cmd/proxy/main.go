package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "hotelmap/internal/adapters/http_server"
	"hotelmap/internal/adapters/observability"
	redisad "hotelmap/internal/adapters/redis"
	"hotelmap/internal/adapters/upstream"
	"hotelmap/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	up, err := upstream.New(cfg.LiteAPIBase, cfg.LiteAPIKey, cfg.UpstreamRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upstream client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()

	reg := observability.InitRegistry()
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Upstream: up,
		Cache:    cache,
		MapToken: cfg.MapToken,
		CacheTTL: cfg.CacheTTL,
	})

	api := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", observability.MetricsHandler(reg))
	metrics := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("proxy listening")
		if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metrics.Shutdown(shutdownCtx)
		return api.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("proxy failed")
	}
	log.Info().Msg("proxy stopped")
}
