package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/lendora/server/api/rest/health"
	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/config"
	"codeberg.org/lendora/server/internal/database"
	"codeberg.org/lendora/server/internal/logger"
	"codeberg.org/lendora/server/lendora/sessions"
	"codeberg.org/lendora/server/lendora/users"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// how often expired in-memory revocations are dropped
const cleanupCheckInterval = 5 * time.Minute

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, err
	}

	db, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	verifier, err := auth.NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.GoogleClientID)
	if err != nil {
		db.Close()
		return nil, err
	}

	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		store, err := sessions.NewRedisRevocationsFromURL(ctx, cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, err
		}

		redisClient = store.Client()
	} else {
		logger.Warn("REDIS_URL not set, revocations and rate limits are kept in process memory")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	services, err := InitializeServices(cfg, Dependencies{
		Directory: users.NewRepository(db),
		Verifier:  verifier,
		Redis:     redisClient,
		Registry:  registry,
	})
	if err != nil {
		if redisClient != nil {
			redisClient.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		}
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	server := &Server{
		db:       db,
		redis:    redisClient,
		config:   cfg,
		services: services,
		registry: registry,
		router:   gin.New(),
	}

	// redis entries expire on their own
	if purger, ok := services.Revocations.(sessions.Purger); ok {
		server.cleanupService = sessions.NewCleanupService(purger, cleanupCheckInterval)
	}

	checks := []health.Check{{Name: "database", Ping: db.Ping}}
	if redisClient != nil {
		checks = append(checks, health.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}

	RegisterRoutes(server.router, server, checks...)

	return server, nil
}

// releases connections held by the server
func (s *Server) Close() {
	s.services.ProfileLimiter.Stop()

	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	s.db.Close()
}
