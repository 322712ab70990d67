// Package metrics 提供 Prometheus 指标收集单元测试
package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// readValue 读取单个指标的当前值
func readValue(t *testing.T, metric prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, metric.Write(&out))
	switch {
	case out.Counter != nil:
		return out.Counter.GetValue()
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	case out.Histogram != nil:
		return float64(out.Histogram.GetSampleCount())
	}
	return 0
}

func TestInit_Idempotent(t *testing.T) {
	m1 := Init("")
	m2 := Init("")
	require.NotNil(t, m1)
	assert.Same(t, m1, m2)
}

func TestRecordOperation(t *testing.T) {
	m := New("test_ops", prometheus.NewRegistry())

	m.RecordOperation("create", "success", 10*time.Millisecond)
	m.RecordOperation("create", "success", 20*time.Millisecond)
	m.RecordOperation("create", "room_unavailable", time.Millisecond)

	assert.Equal(t, 2.0, readValue(t, m.operationsTotal.WithLabelValues("create", "success")))
	assert.Equal(t, 1.0, readValue(t, m.operationsTotal.WithLabelValues("create", "room_unavailable")))

	hist, err := m.operationDuration.GetMetricWithLabelValues("create")
	require.NoError(t, err)
	assert.Equal(t, 3.0, readValue(t, hist.(prometheus.Metric)))
}

func TestRecordConflictAndRetry(t *testing.T) {
	m := New("test_conflict", prometheus.NewRegistry())

	m.RecordConflict()
	m.RecordConflict()
	m.RecordRetry("check_in")

	assert.Equal(t, 2.0, readValue(t, m.conflictsTotal))
	assert.Equal(t, 1.0, readValue(t, m.retriesTotal.WithLabelValues("check_in")))
}

func TestRecordEventAndGauge(t *testing.T) {
	m := New("test_gauge", prometheus.NewRegistry())

	m.RecordEvent("reservation.created", "ok")
	m.SetRoomsOccupied(12)
	m.SetRoomsOccupied(11)

	assert.Equal(t, 1.0, readValue(t, m.eventsTotal.WithLabelValues("reservation.created", "ok")))
	assert.Equal(t, 11.0, readValue(t, m.roomsOccupied))
}

func TestMiddleware(t *testing.T) {
	m := New("test_http", prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/reservations/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/metrics", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/api/v1/reservations/1", "/api/v1/reservations/2", "/metrics"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2.0, readValue(t, m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/reservations/:id", "200")))
	assert.Equal(t, 0.0, readValue(t, m.httpRequestsInFlight))
}

func TestHandler(t *testing.T) {
	Init("")

	r := gin.New()
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hotel_rooms_occupied")
}
