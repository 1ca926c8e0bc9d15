package health

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/lendora/server/internal/logger"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// a dependency the server cannot work without
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// returns the server health status; 503 when any check fails
func Handler(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		response := Response{
			Status:  "healthy",
			Service: "lendora",
			Version: Version,
		}
		status := http.StatusOK

		if len(checks) > 0 {
			response.Checks = make(map[string]string, len(checks))
		}

		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				logger.ErrorErr(err, "health check failed", "check", check.Name)
				response.Checks[check.Name] = "unavailable"
				response.Status = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}

			response.Checks[check.Name] = "ok"
		}

		c.JSON(status, response)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
