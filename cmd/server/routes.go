package main

import (
	"time"

	"codeberg.org/lendora/server/api/rest/admin"
	"codeberg.org/lendora/server/api/rest/auth"
	"codeberg.org/lendora/server/api/rest/health"
	"codeberg.org/lendora/server/api/rest/users"
	"codeberg.org/lendora/server/internal/logger"
	"codeberg.org/lendora/server/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server, checks ...health.Check) {
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())
	router.Use(server.services.Metrics.Middleware())
	router.Use(CORSMiddleware(server.config.AllowedOrigins))

	router.GET("/health", health.Handler(checks...))
	router.GET("/ping", health.PingHandler)
	router.GET("/metrics", gin.WrapH(metrics.Handler(gathererOf(server))))

	// the browser client talks to /api, other clients to the root
	for _, group := range []*gin.RouterGroup{&router.RouterGroup, router.Group("/api")} {
		registerAPI(group, server)
	}
}

func registerAPI(group *gin.RouterGroup, server *Server) {
	svc := server.services
	secure := server.config.IsProduction()

	auth.RegisterRoutes(group, svc.Issuer, svc.LoginLimiter, secure)
	users.RegisterRoutes(group, svc.Profiles, svc.Issuer, svc.ProfileLimiter.Middleware(), secure)
	admin.RegisterRoutes(group, svc.AdminAuth, svc.LoginLimiter)
}

// allows the configured browser origins to send the session cookie
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func gathererOf(server *Server) prometheus.Gatherer {
	if server.registry != nil {
		return server.registry
	}

	return prometheus.DefaultGatherer
}
