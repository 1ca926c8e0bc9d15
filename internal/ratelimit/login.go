package ratelimit

import (
	"fmt"

	apierrors "codeberg.org/lendora/server/internal/errors"
	"codeberg.org/lendora/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const loginKeyPrefix = "lendora:ratelimit:login"

// limits login attempts per client ip. formatted follows the limiter
// notation, e.g. "10-M" for ten requests per minute. a nil client keeps
// counters in process memory.
func NewLoginLimiter(formatted string, client *redis.Client) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid login rate limit %q: %w", formatted, err)
	}

	var store limiter.Store

	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix:   loginKeyPrefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          loginKeyPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("login rate limit exceeded", "ip", c.ClientIP())
			apierrors.TooManyRequests(c, "too many login attempts, try again later")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// a broken limiter store must not lock everyone out
			logger.ErrorErr(err, "login rate limiter failed")
			c.Next()
		}),
	), nil
}
