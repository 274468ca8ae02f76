package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 上游生成模型调用情况，kind 区分 assessment/evaluation/curation/content/quiz
	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ollama_calls_total",
			Help: "Total number of upstream generation calls",
		},
		[]string{"kind", "outcome"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ollama_call_duration_seconds",
			Help:    "Duration of upstream generation calls",
			Buckets: []float64{1, 5, 10, 20, 60, 120, 300},
		},
		[]string{"kind"},
	)

	ExtractionOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_outcomes_total",
			Help: "Outcomes of model output extraction attempts",
		},
		[]string{"shape", "outcome"},
	)

	FallbackCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_content_total",
			Help: "Times template fallback content was served",
		},
		[]string{"kind"},
	)

	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "singleflight_inflight_keys",
			Help: "Number of logical keys with an upstream call in flight",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(UpstreamCalls)
	prometheus.MustRegister(UpstreamDuration)
	prometheus.MustRegister(ExtractionOutcomes)
	prometheus.MustRegister(FallbackCounter)
	prometheus.MustRegister(InFlight)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
