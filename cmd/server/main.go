package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	handler "github.com/pushsumo/signaling/internal/adapter/driving/http"
	"github.com/pushsumo/signaling/internal/config"
	"github.com/pushsumo/signaling/internal/core/service"
	"github.com/pushsumo/signaling/internal/observability"
)

func main() {
	// Local .env, dev only.
	_ = godotenv.Load()

	cfg := config.Load()
	l := observability.InitLogger(cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := service.NewRegistry()
	rooms := service.NewRoomTable()
	session := service.NewSession(registry, rooms)
	observability.RegisterSessionGauges(session.RoomCount, session.ConnectionCount)

	sweeper := &service.Sweeper{Table: rooms, TTL: cfg.RoomTTL, Interval: cfg.SweepInterval}
	go sweeper.Run(ctx)

	h := handler.NewHandler(cfg, session)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info().Str("addr", cfg.Addr).Msg("starting signaling server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	l.Info().Msg("shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}

	session.Shutdown()
	l.Info().Msg("server exited")
}
