package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/lendora/server/internal/config"
	"codeberg.org/lendora/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// @title Lendora API
// @version 1.0
// @description Sign-in, session and onboarding profile API for the Lendora lending platform

// @contact.name API Support
// @contact.url https://codeberg.org/lendora/server

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description HTTP-only session cookie set by /auth/login

func main() {
	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Init(cfg.Environment, cfg.LogLevel)
	logger.Info("starting lendora server", "environment", cfg.Environment)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// create server with all dependencies
	srv, err := NewServer(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// start revocation cleanup when revocations live in memory
	if srv.cleanupService != nil {
		go srv.cleanupService.Start(ctx)
	}

	// wait for interrupt signal for graceful shutdown
	<-ctx.Done()

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
