package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sketchwars/sketchwars-backend/internal/config"
	"github.com/sketchwars/sketchwars-backend/internal/game"
	"github.com/sketchwars/sketchwars-backend/internal/logger"
	"github.com/sketchwars/sketchwars-backend/internal/server"
	"github.com/sketchwars/sketchwars-backend/internal/storage"
	"github.com/sketchwars/sketchwars-backend/internal/storage/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.IsDevelopment())

	log.Info().
		Str("env", cfg.Server.Env).
		Str("addr", cfg.GetAddr()).
		Msg("starting sketchwars server")

	if err := migrations.Up(cfg.Store.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	ctx := context.Background()
	store, err := storage.New(ctx, cfg.Store.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database unreachable")
	}
	defer store.Close()

	if cfg.Store.WordsFile != "" {
		if _, err := store.SeedWordsFromCSV(ctx, cfg.Store.WordsFile); err != nil {
			log.Fatal().Err(err).Str("file", cfg.Store.WordsFile).Msg("seeding dictionary failed")
		}
	}
	if err := store.SeedDefaultWords(ctx); err != nil {
		log.Fatal().Err(err).Msg("seeding dictionary failed")
	}
	if cfg.IsDevelopment() {
		if err := store.SeedDemoUsers(ctx); err != nil {
			log.Fatal().Err(err).Msg("seeding demo users failed")
		}
	}

	hub := game.NewHub(
		cfg.Settings(),
		game.NewScheduler(time.Second, nil),
		store,
		store,
		log,
	)
	defer hub.Close()

	srv := server.New(cfg, hub, log).HTTPServer()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
