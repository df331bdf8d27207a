// filmlog is a small personal movie-tracking service: a movie list kept
// in SQLite, enriched from TMDb, served as JSON over HTTP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filmlog/internal/config"
	"filmlog/internal/database"
	"filmlog/internal/logger"
	"filmlog/internal/movies"
	"filmlog/internal/server"
	"filmlog/internal/tmdb"
)

func main() {
	log := logger.Root()

	configPath := os.Getenv("FILMLOG_CONFIG_PATH")
	if configPath == "" {
		if _, err := os.Stat("./filmlog.yaml"); err == nil {
			configPath = "./filmlog.yaml"
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load configuration", "path", configPath, "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Logging.Level)

	if configPath != "" {
		log.Info("configuration loaded", "path", configPath)
	} else {
		log.Info("using default configuration")
	}
	if cfg.TMDb.APIKey == "" {
		log.Warn("no TMDb API key configured; movie search will fail")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}

	repo := movies.NewRepository(db)
	tmdbClient := tmdb.NewClient(cfg.TMDb, logger.Named("tmdb"))
	srv := server.New(cfg, repo, tmdbClient, logger.Named("server"))

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown error", "error", err)
		}
	}()

	log.Info("starting filmlog server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	log.Info("server shutdown complete")
}
