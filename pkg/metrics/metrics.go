package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bouncy_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bouncy_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	simulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bouncy_simulations_total",
			Help: "Total number of simulated drops.",
		},
		[]string{"kind"},
	)

	rejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bouncy_rejected_inputs_total",
			Help: "Total number of rejected inputs by field.",
		},
		[]string{"field"},
	)

	bouncesObserved = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bouncy_bounces",
			Help:    "Bounces above height_min per simulated drop.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(simulationsTotal)
	prometheus.MustRegister(rejectedTotal)
	prometheus.MustRegister(bouncesObserved)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveSimulation records one simulated drop of the given kind
// ("bounces" or "trajectory").
func ObserveSimulation(kind string, bounces int) {
	simulationsTotal.WithLabelValues(kind).Inc()
	bouncesObserved.Observe(float64(bounces))
}

// ObserveRejected records one input rejected for field.
func ObserveRejected(field string) {
	rejectedTotal.WithLabelValues(field).Inc()
}

// Middleware records request count and duration for each request. Routes are
// labelled by their pattern; unmatched paths collapse to "other".
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "other"
		}
		duration := time.Since(start).Seconds()
		code := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(path, c.Request.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, c.Request.Method).Observe(duration)
	}
}
