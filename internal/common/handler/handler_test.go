package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumeirei/hotel-backoffice/internal/common/errors"
	"github.com/dumeirei/hotel-backoffice/internal/common/response"
	"github.com/dumeirei/hotel-backoffice/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// 辅助函数：创建测试上下文
func createTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

// 辅助函数：解析响应
func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleError(t *testing.T) {
	t.Run("无错误", func(t *testing.T) {
		c, w := createTestContext("/")
		assert.False(t, HandleError(c, nil))
		assert.Equal(t, 0, w.Body.Len())
	})

	t.Run("业务错误携带数据", func(t *testing.T) {
		c, w := createTestContext("/")
		err := errors.ErrRoomUnavailable.WithData(map[string]interface{}{"conflicting_reservation_id": 12})
		assert.True(t, HandleError(c, err))

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, errors.ErrRoomUnavailable.Code, resp.Code)
		assert.Equal(t, float64(12), resp.Data.(map[string]interface{})["conflicting_reservation_id"])
	})

	t.Run("繁忙返回 503", func(t *testing.T) {
		c, w := createTestContext("/")
		HandleError(c, errors.ErrReservationBusy)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, errors.ErrReservationBusy.Code, parseResponse(t, w).Code)
	})

	t.Run("非业务错误不暴露细节", func(t *testing.T) {
		c, w := createTestContext("/")
		HandleError(c, stderrors.New("dial tcp: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, errors.ErrUnknown.Code, resp.Code)
		assert.NotContains(t, resp.Message, "connection refused")
	})
}

func TestMustSucceed(t *testing.T) {
	c, w := createTestContext("/")
	MustSucceed(c, nil, gin.H{"booking_ref": "HTL-1"})
	resp := parseResponse(t, w)
	assert.Equal(t, 0, resp.Code)

	c, w = createTestContext("/")
	MustSucceedPage(c, errors.ErrInvalidParams, nil, 0, 1, 10)
	assert.Equal(t, errors.ErrInvalidParams.Code, parseResponse(t, w).Code)
}

func TestRequireStaffID(t *testing.T) {
	c, w := createTestContext("/")
	_, ok := RequireStaffID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, _ = createTestContext("/")
	c.Set(middleware.ContextKeyStaffID, int64(5))
	id, ok := RequireStaffID(c)
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
		ok    bool
	}{
		{"正常", "42", 42, true},
		{"非数字", "abc", 0, false},
		{"零", "0", 0, false},
		{"负数", "-3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := createTestContext("/")
			c.Params = gin.Params{{Key: "id", Value: tt.value}}
			id, ok := ParseID(c, "预订")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, parseResponse(t, w).Message, "预订")
			}
		})
	}
}

func TestRequireStaffAndParseID(t *testing.T) {
	c, _ := createTestContext("/")
	c.Set(middleware.ContextKeyStaffID, int64(3))
	c.Params = gin.Params{{Key: "id", Value: "8"}}

	staffID, id, ok := RequireStaffAndParseID(c, "预订")
	assert.True(t, ok)
	assert.Equal(t, int64(3), staffID)
	assert.Equal(t, int64(8), id)
}

func TestParseQueryID(t *testing.T) {
	c, _ := createTestContext("/")
	id, ok := ParseQueryID(c, "room_id", "房间")
	assert.True(t, ok)
	assert.Nil(t, id)

	c, _ = createTestContext("/?room_id=301")
	id, ok = ParseQueryID(c, "room_id", "房间")
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, int64(301), *id)

	c, w := createTestContext("/?room_id=x")
	_, ok = ParseQueryID(c, "room_id", "房间")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/01/2026")
	assert.True(t, stderrors.Is(err, errors.ErrInvalidParams))
}

func TestParseQueryDate(t *testing.T) {
	c, _ := createTestContext("/?check_in=2026-01-15")
	d, ok := ParseRequiredQueryDate(c, "check_in")
	assert.True(t, ok)
	assert.Equal(t, 15, d.Day())

	c, w := createTestContext("/")
	_, ok = ParseRequiredQueryDate(c, "check_in")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = createTestContext("/?check_out=bad")
	_, ok = ParseQueryDate(c, "check_out")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBindPagination(t *testing.T) {
	c, _ := createTestContext("/?page=2&page_size=500")
	p := BindPagination(c)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 100, p.PageSize)

	c, _ = createTestContext("/")
	p = BindPagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
}
