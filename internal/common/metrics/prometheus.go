// Package metrics 提供 Prometheus 指标收集
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标收集器
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge
	operationsTotal      *prometheus.CounterVec
	operationDuration    *prometheus.HistogramVec
	conflictsTotal       prometheus.Counter
	retriesTotal         *prometheus.CounterVec
	eventsTotal          *prometheus.CounterVec
	roomsOccupied        prometheus.Gauge
}

var (
	defaultMetrics *Metrics
	initOnce       sync.Once
)

// Init 初始化默认指标收集器并注册到全局 Registry，重复调用返回同一实例
func Init(namespace string) *Metrics {
	initOnce.Do(func() {
		defaultMetrics = New(namespace, prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// New 在指定 Registerer 上创建指标收集器
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "hotel"
	}
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		httpRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservation_operations_total",
				Help:      "Total number of reservation lifecycle operations",
			},
			[]string{"operation", "result"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reservation_operation_duration_seconds",
				Help:      "Reservation lifecycle operation duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
		conflictsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservation_conflicts_total",
				Help:      "Total number of rejected bookings due to an overlapping active reservation",
			},
		),
		retriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservation_retries_total",
				Help:      "Total number of retried attempts after a concurrency conflict",
			},
			[]string{"operation"},
		),
		eventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservation_events_published_total",
				Help:      "Total number of reservation events handed to the broker",
			},
			[]string{"type", "result"},
		),
		roomsOccupied: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "rooms_occupied",
				Help:      "Number of rooms currently occupied",
			},
		),
	}
}

// Middleware 返回 Gin 中间件
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 跳过 metrics 端点本身
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		m.httpRequestsInFlight.Inc()

		c.Next()

		m.httpRequestsInFlight.Dec()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// Handler 返回 Prometheus HTTP 处理器
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordOperation 记录一次预订操作的结果与耗时
func (m *Metrics) RecordOperation(operation, result string, duration time.Duration) {
	m.operationsTotal.WithLabelValues(operation, result).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordConflict 记录一次房态冲突
func (m *Metrics) RecordConflict() {
	m.conflictsTotal.Inc()
}

// RecordRetry 记录一次并发冲突重试
func (m *Metrics) RecordRetry(operation string) {
	m.retriesTotal.WithLabelValues(operation).Inc()
}

// RecordEvent 记录一次事件发布
func (m *Metrics) RecordEvent(eventType, result string) {
	m.eventsTotal.WithLabelValues(eventType, result).Inc()
}

// SetRoomsOccupied 设置在住房间数
func (m *Metrics) SetRoomsOccupied(count float64) {
	m.roomsOccupied.Set(count)
}
