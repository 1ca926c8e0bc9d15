package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/lendora/server/lendora/users"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_SessionCounters(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordLogin(true)
	c.RecordLogin(false)
	c.RecordLogin(false)
	c.RecordLoginFailure("invalid_credential")
	c.RecordLogout()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.logins.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.loginFailures.WithLabelValues("invalid_credential")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.logouts))
}

func TestCollector_ProfileCounters(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordProfileUpdate(users.StatusComplete)
	c.RecordProfileRejected()
	c.RecordProfileRejected()
	c.RecordProfileDelete()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.profileUpdates.WithLabelValues("complete")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.profileUpdates.WithLabelValues("pending")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.profileRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.profileDeletes))
}

func TestCollector_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	router := gin.New()
	router.Use(c.Middleware())
	router.GET("/auth/status", func(ctx *gin.Context) {
		ctx.Status(http.StatusUnauthorized)
	})
	router.GET("/metrics", gin.WrapH(Handler(reg)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/status", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/auth/status", "GET", "401")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "lendora_http_requests_total")
}
