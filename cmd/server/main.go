package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/config"
	"appointment-booking-api/internal/handler"
	"appointment-booking-api/internal/store"
)

func main() {
	cfg := config.MustLoad()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Info("starting appointment-booking-api", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db", slog.Any("err", err))
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Error("db ping", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile(cfg.MigrationsFile); err != nil {
		log.Warn("migration file not found, skipping", slog.Any("err", err))
	} else if _, err := pool.Exec(ctx, string(migration)); err != nil {
		log.Warn("migration warning", slog.Any("err", err))
	} else {
		log.Info("migration applied")
	}

	st := store.New(pool)
	tokens := auth.NewTokenMaker(cfg.JWTSecret, cfg.TokenTTL)
	h := handler.New(log, st, tokens, cfg.PasswordMinLen)
	defer h.Close()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: h.Routes(),
	}
	go func() {
		log.Info("http server listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http", slog.Any("err", err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", slog.Any("err", err))
	}
}
