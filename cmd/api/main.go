package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adoptme-api/docs"
	"adoptme-api/internal/adapters/storage/postgres"
	"adoptme-api/internal/config"
	"adoptme-api/internal/platform/logger"
	"adoptme-api/internal/router"
)

// @title        AdoptMe API
// @version      1.0
// @description  Backend de adopción de mascotas: users, pets y adoptions.
// @BasePath     /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
	})

	if cfg.Swagger.ServerURL != "" {
		docs.SwaggerInfo.Host = cfg.Swagger.ServerURL
	}

	opts := router.Options{Log: log, Prod: cfg.IsProduction()}

	if cfg.DB.URL != "" {
		db, err := postgres.Open(cfg.DB.URL)
		if err != nil {
			log.Error("open database", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if err := postgres.Migrate(db); err != nil {
			log.Error("migrate database", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.DB = db
		log.Info("storage: postgres", nil)
	} else {
		log.Info("storage: in-memory (DATABASE_URL vacío)", nil)
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		log.Error("build router", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	case sig := <-stop:
		log.Info("shutting down", map[string]any{"signal": sig.String()})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}
}
