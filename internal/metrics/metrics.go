// Package metrics collects and exposes prometheus metrics for the session
// and profile flows.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"codeberg.org/lendora/server/lendora/users"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements sessions.Metrics and profiles.Metrics
type Collector struct {
	logins          *prometheus.CounterVec
	loginFailures   *prometheus.CounterVec
	logouts         prometheus.Counter
	profileUpdates  *prometheus.CounterVec
	profileRejected prometheus.Counter
	profileDeletes  prometheus.Counter
	requests        *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
}

// creates a collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lendora_logins_total",
			Help: "successful logins, split by whether the user record was created",
		}, []string{"created"}),
		loginFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lendora_login_failures_total",
			Help: "rejected or failed logins by reason",
		}, []string{"reason"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lendora_logouts_total",
			Help: "logout requests",
		}),
		profileUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lendora_profile_updates_total",
			Help: "applied profile updates by resulting profile status",
		}, []string{"status"}),
		profileRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lendora_profile_validation_failures_total",
			Help: "profile updates rejected by validation",
		}),
		profileDeletes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lendora_profile_deletes_total",
			Help: "deleted user records",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lendora_http_requests_total",
			Help: "http requests by route, method and status code",
		}, []string{"route", "method", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lendora_http_request_duration_seconds",
			Help:    "http request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		c.logins,
		c.loginFailures,
		c.logouts,
		c.profileUpdates,
		c.profileRejected,
		c.profileDeletes,
		c.requests,
		c.requestLatency,
	)

	return c
}

func (c *Collector) RecordLogin(created bool) {
	c.logins.WithLabelValues(strconv.FormatBool(created)).Inc()
}

func (c *Collector) RecordLoginFailure(reason string) {
	c.loginFailures.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordLogout() {
	c.logouts.Inc()
}

func (c *Collector) RecordProfileUpdate(status users.ProfileStatus) {
	c.profileUpdates.WithLabelValues(string(status)).Inc()
}

func (c *Collector) RecordProfileRejected() {
	c.profileRejected.Inc()
}

func (c *Collector) RecordProfileDelete() {
	c.profileDeletes.Inc()
}

// records request count and latency per matched route
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		c.requests.WithLabelValues(route, method, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.requestLatency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// returns the prometheus scrape handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
