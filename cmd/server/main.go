package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"appointment-planner-api/internal/config"
	"appointment-planner-api/internal/fixtures"
	"appointment-planner-api/internal/handler"
	"appointment-planner-api/internal/httpserver"
	"appointment-planner-api/internal/logger"
	"appointment-planner-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("db")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("db ping")
	}
	logger.Info().Msg("connected to postgres")

	runMigrations(ctx, pool, cfg.MigrationsDir)

	st := store.New(pool)
	if cfg.SeedDemoData {
		if err := fixtures.Load(ctx, st); err != nil {
			logger.Fatal().Err(err).Msg("seed demo data")
		}
	}

	h := handler.New(st, cfg.JWTSecret)
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      httpserver.NewRouter(cfg, st, h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, dir string) {
	migration, err := os.ReadFile(filepath.Join(dir, "001_init.sql"))
	if err != nil {
		logger.Warn().Err(err).Msg("migration file not found, skipping")
		return
	}
	if _, err := pool.Exec(ctx, string(migration)); err != nil {
		logger.Warn().Err(err).Msg("migration")
		return
	}
	logger.Info().Msg("migration applied")
}
