package ratelimit

import (
	"sync"
	"time"

	"codeberg.org/lendora/server/internal/auth"
	apierrors "codeberg.org/lendora/server/internal/errors"
	"codeberg.org/lendora/server/internal/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type UserLimiterConfig struct {
	Rate            rate.Limit
	Burst           int
	CleanupInterval time.Duration
}

// 30 profile mutations per minute per user
func DefaultUserLimiterConfig() UserLimiterConfig {
	return UserLimiterConfig{
		Rate:            rate.Limit(30.0 / 60.0),
		Burst:           10,
		CleanupInterval: 5 * time.Minute,
	}
}

type userEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// per-user token buckets for authenticated mutations
type UserLimiter struct {
	config UserLimiterConfig

	mu       sync.Mutex
	limiters map[string]*userEntry

	stopOnce sync.Once
	stopCh   chan struct{}
}

// creates the limiter and starts its background cleanup
func NewUserLimiter(config UserLimiterConfig) *UserLimiter {
	l := &UserLimiter{
		config:   config,
		limiters: make(map[string]*userEntry),
		stopCh:   make(chan struct{}),
	}

	go l.cleanupLoop()

	return l
}

func (l *UserLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// must run after auth.SessionMiddleware
func (l *UserLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		if !l.Allow(userID) {
			logger.Warn("rate limit exceeded", "user_id", userID, "limit_type", "profile")
			apierrors.TooManyRequests(c, "")
			return
		}

		c.Next()
	}
}

func (l *UserLimiter) Allow(userID string) bool {
	return l.get(userID).Allow()
}

// number of tracked users
func (l *UserLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *UserLimiter) get(userID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[userID]
	if !ok {
		entry = &userEntry{limiter: rate.NewLimiter(l.config.Rate, l.config.Burst)}
		l.limiters[userID] = entry
	}

	entry.lastAccess = time.Now()

	return entry.limiter
}

func (l *UserLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now())
		case <-l.stopCh:
			return
		}
	}
}

// drops users idle for more than two cleanup intervals
func (l *UserLimiter) cleanup(now time.Time) {
	ttl := l.config.CleanupInterval * 2

	l.mu.Lock()
	defer l.mu.Unlock()

	for userID, entry := range l.limiters {
		if now.Sub(entry.lastAccess) > ttl {
			delete(l.limiters, userID)
		}
	}
}
