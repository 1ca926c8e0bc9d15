package main

import (
	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/config"
	"codeberg.org/lendora/server/internal/metrics"
	"codeberg.org/lendora/server/internal/ratelimit"
	"codeberg.org/lendora/server/lendora/profiles"
	"codeberg.org/lendora/server/lendora/sessions"
	"codeberg.org/lendora/server/lendora/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	db             *pgxpool.Pool
	redis          *redis.Client
	config         *config.Config
	services       *Services
	registry       *prometheus.Registry
	router         *gin.Engine
	cleanupService *sessions.CleanupService
}

// external collaborators the services are built on
type Dependencies struct {
	Directory users.Directory
	Verifier  auth.Verifier
	Redis     *redis.Client // nil keeps revocations and limiter counters in memory
	Registry  prometheus.Registerer
}

// holds the session, profile and admin services plus their guards
type Services struct {
	Issuer         *sessions.Issuer
	Profiles       *profiles.Service
	Metrics        *metrics.Collector
	AdminAuth      *auth.AdminAuth
	Revocations    sessions.Revocations
	LoginLimiter   gin.HandlerFunc
	ProfileLimiter *ratelimit.UserLimiter
}
