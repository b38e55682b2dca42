// @title Scheduling Platform API
// @version 1.0
// @description User registration, login, profiles and appointment scheduling

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	_ "SCHEDULING_PLATFORM_BACK-END/docs" // This is required for swagger
	"SCHEDULING_PLATFORM_BACK-END/internal/config"
	"SCHEDULING_PLATFORM_BACK-END/internal/database"
	"SCHEDULING_PLATFORM_BACK-END/internal/logging"
	"SCHEDULING_PLATFORM_BACK-END/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(cfg.Log, os.Stdout)

	pool, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if cfg.Database.AutoSchema {
		if err := database.EnsureSchema(context.Background(), pool); err != nil {
			log.Fatalf("schema: %v", err)
		}
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	// --- HTTP Handlers ---
	handler := routes.NewRouter(cfg, routes.NewHandlers(pool, cfg))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.WithFields(log.Fields{
			"port":   cfg.Server.Port,
			"origin": cfg.CORS.AllowedOrigin,
		}).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	log.Info("Server stopped.")
}
