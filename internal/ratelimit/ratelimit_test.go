package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLoginLimiter_RejectsAfterLimit(t *testing.T) {
	mw, err := NewLoginLimiter("2-M", nil)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/auth/login", mw, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLoginLimiter_InvalidFormat(t *testing.T) {
	_, err := NewLoginLimiter("lots", nil)
	assert.Error(t, err)
}

func TestUserLimiter_PerUserBuckets(t *testing.T) {
	l := NewUserLimiter(UserLimiterConfig{
		Rate:            rate.Limit(0.001),
		Burst:           1,
		CleanupInterval: time.Hour,
	})
	defer l.Stop()

	assert.True(t, l.Allow("alice"))
	assert.False(t, l.Allow("alice"))
	assert.True(t, l.Allow("bob"))
	assert.Equal(t, 2, l.Len())
}

func TestUserLimiter_Middleware(t *testing.T) {
	l := NewUserLimiter(UserLimiterConfig{
		Rate:            rate.Limit(0.001),
		Burst:           1,
		CleanupInterval: time.Hour,
	})
	defer l.Stop()

	router := gin.New()
	router.PUT("/user/profile", func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("user_id", id)
		}
		c.Next()
	}, l.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/user/profile", nil)
		if user != "" {
			req.Header.Set("X-Test-User", user)
		}
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send(""))
	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
}

func TestUserLimiter_CleanupDropsIdleUsers(t *testing.T) {
	l := NewUserLimiter(UserLimiterConfig{
		Rate:            rate.Inf,
		Burst:           1,
		CleanupInterval: time.Minute,
	})
	defer l.Stop()

	l.Allow("alice")
	l.cleanup(time.Now().Add(time.Minute))
	assert.Equal(t, 1, l.Len())

	l.cleanup(time.Now().Add(3 * time.Minute))
	assert.Equal(t, 0, l.Len())
}
