package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	markedStudentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "attendance_marked_students_total",
			Help: "Attendance records written by marking runs.",
		},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, markedStudentsTotal)
}

// CountMarkedStudents adds to the marking counter.
func CountMarkedStudents(n int) {
	markedStudentsTotal.Add(float64(n))
}

// Metrics records per-request Prometheus metrics keyed by route pattern,
// not raw path, so IDs do not explode the label space.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
