package reservation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-backoffice/internal/common/errors"
	"github.com/dumeirei/hotel-backoffice/internal/common/jwt"
	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
	"github.com/dumeirei/hotel-backoffice/internal/middleware"
	"github.com/dumeirei/hotel-backoffice/internal/models"
	"github.com/dumeirei/hotel-backoffice/internal/repository"
	reservationService "github.com/dumeirei/hotel-backoffice/internal/service/reservation"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.SetLogger(zap.NewNop())
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t       *testing.T
	db      *gorm.DB
	router  *gin.Engine
	jwt     *jwt.Manager
	staff   string
	manager string
}

// setupServer 组装内存数据库、预订服务与路由
func setupServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	svc := reservationService.NewService(db,
		repository.NewRoomRepository(db),
		repository.NewGuestRepository(db),
		repository.NewReservationRepository(db),
		nil, nil, nil,
		reservationService.Options{
			TaxRate:           0.10,
			CurrencyPrecision: 2,
			BookingRefPrefix:  "HTL",
			AutoConfirm:       true,
			MaxRetries:        3,
			PendingExpire:     24 * time.Hour,
		},
	)

	mgr := jwt.NewManager(&jwt.Config{Secret: "test-secret", AccessExpireTime: time.Hour, Issuer: "hotel-test"})
	staffToken, _, err := mgr.GenerateAccessToken(11, jwt.RoleFrontDesk)
	require.NoError(t, err)
	managerToken, _, err := mgr.GenerateAccessToken(12, jwt.RoleManager)
	require.NoError(t, err)

	r := gin.New()
	v1 := r.Group("/api/v1", middleware.StaffAuth(mgr))
	NewHandler(svc).RegisterRoutes(v1, middleware.RequireManager())

	return &testServer{t: t, db: db, router: r, jwt: mgr, staff: staffToken, manager: managerToken}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *testServer) seedRoom(roomNo string, capacity int, rate float64) *models.Room {
	s.t.Helper()
	rt := &models.RoomType{Name: "type-" + roomNo, Capacity: capacity, NightlyRate: rate}
	require.NoError(s.t, s.db.Create(rt).Error)
	room := &models.Room{RoomNo: roomNo, RoomTypeID: rt.ID, Status: models.RoomStatusAvailable}
	require.NoError(s.t, s.db.Create(room).Error)
	return room
}

func (s *testServer) seedGuest(name string) *models.Guest {
	s.t.Helper()
	g := &models.Guest{Name: name}
	require.NoError(s.t, s.db.Create(g).Error)
	return g
}

func (s *testServer) create(roomID, guestID int64, in, out string) models.Reservation {
	s.t.Helper()
	w, resp := s.do(http.MethodPost, "/api/v1/reservations", s.staff, gin.H{
		"guest_id": guestID, "room_id": roomID,
		"check_in_date": in, "check_out_date": out, "party_size": 1,
	})
	require.Equal(s.t, http.StatusOK, w.Code)
	require.Equal(s.t, 0, resp.Code, resp.Message)
	var r models.Reservation
	require.NoError(s.t, json.Unmarshal(resp.Data, &r))
	return r
}

func TestReservationHandler_Auth(t *testing.T) {
	s := setupServer(t)

	w, _ := s.do(http.MethodGet, "/api/v1/reservations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReservationHandler_Create(t *testing.T) {
	s := setupServer(t)
	room := s.seedRoom("101", 2, 500)
	guest := s.seedGuest("张三")

	t.Run("创建成功", func(t *testing.T) {
		r := s.create(room.ID, guest.ID, "2026-03-01", "2026-03-03")
		assert.Equal(t, models.ReservationStatusConfirmed, r.Status)
		assert.Equal(t, 2, r.Nights)
		assert.InDelta(t, 1100.0, r.TotalPrice, 0.001)
		assert.NotEmpty(t, r.BookingRef)
	})

	t.Run("时段冲突", func(t *testing.T) {
		w, resp := s.do(http.MethodPost, "/api/v1/reservations", s.staff, gin.H{
			"guest_id": guest.ID, "room_id": room.ID,
			"check_in_date": "2026-03-02", "check_out_date": "2026-03-04", "party_size": 1,
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, errors.ErrRoomUnavailable.Code, resp.Code)
		assert.Contains(t, string(resp.Data), "booking_ref")
	})

	t.Run("日期格式错误", func(t *testing.T) {
		_, resp := s.do(http.MethodPost, "/api/v1/reservations", s.staff, gin.H{
			"guest_id": guest.ID, "room_id": room.ID,
			"check_in_date": "03/01/2026", "check_out_date": "2026-03-04", "party_size": 1,
		})
		assert.Equal(t, errors.ErrInvalidParams.Code, resp.Code)
	})

	t.Run("缺少参数", func(t *testing.T) {
		w, _ := s.do(http.MethodPost, "/api/v1/reservations", s.staff, gin.H{"room_id": room.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("超出容量", func(t *testing.T) {
		_, resp := s.do(http.MethodPost, "/api/v1/reservations", s.staff, gin.H{
			"guest_id": guest.ID, "room_id": room.ID,
			"check_in_date": "2026-04-01", "check_out_date": "2026-04-02", "party_size": 3,
		})
		assert.Equal(t, errors.ErrCapacityExceeded.Code, resp.Code)
	})
}

func TestReservationHandler_Lifecycle(t *testing.T) {
	s := setupServer(t)
	room := s.seedRoom("201", 2, 300)
	guest := s.seedGuest("李四")
	r := s.create(room.ID, guest.ID, "2026-05-01", "2026-05-02")
	base := fmt.Sprintf("/api/v1/reservations/%d", r.ID)

	_, resp := s.do(http.MethodPost, base+"/check-in", s.staff, nil)
	require.Equal(t, 0, resp.Code, resp.Message)

	var got models.Reservation
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, models.ReservationStatusCheckedIn, got.Status)

	w, resp := s.do(http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d", room.ID), s.staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rm models.Room
	require.NoError(t, json.Unmarshal(resp.Data, &rm))
	assert.Equal(t, models.RoomStatusOccupied, rm.Status)

	_, resp = s.do(http.MethodPost, base+"/cancel", s.staff, gin.H{"reason": "误操作"})
	assert.Equal(t, errors.ErrInvalidTransition.Code, resp.Code)

	_, resp = s.do(http.MethodPost, base+"/check-out", s.staff, nil)
	require.Equal(t, 0, resp.Code, resp.Message)

	_, resp = s.do(http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d", room.ID), s.staff, nil)
	require.NoError(t, json.Unmarshal(resp.Data, &rm))
	assert.Equal(t, models.RoomStatusCleaning, rm.Status)

	t.Run("前台无权删除", func(t *testing.T) {
		w, _ := s.do(http.MethodDelete, base, s.staff, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("经理删除已退房预订", func(t *testing.T) {
		_, resp := s.do(http.MethodDelete, base, s.manager, nil)
		assert.Equal(t, 0, resp.Code, resp.Message)

		_, resp = s.do(http.MethodGet, base, s.staff, nil)
		assert.Equal(t, errors.ErrReservationNotFound.Code, resp.Code)
	})
}

func TestReservationHandler_Cancel(t *testing.T) {
	s := setupServer(t)
	room := s.seedRoom("301", 2, 300)
	guest := s.seedGuest("王五")
	r := s.create(room.ID, guest.ID, "2026-06-01", "2026-06-03")
	path := fmt.Sprintf("/api/v1/reservations/%d/cancel", r.ID)

	_, resp := s.do(http.MethodPost, path, s.staff, gin.H{"reason": "行程变更"})
	require.Equal(t, 0, resp.Code, resp.Message)
	var got models.Reservation
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, models.ReservationStatusCancelled, got.Status)
	require.NotNil(t, got.CancelReason)
	assert.Equal(t, "行程变更", *got.CancelReason)

	_, resp = s.do(http.MethodPost, path, s.staff, nil)
	assert.Equal(t, errors.ErrAlreadyCancelled.Code, resp.Code)

	// 取消后时段释放
	s.create(room.ID, guest.ID, "2026-06-01", "2026-06-03")
}

func TestReservationHandler_Modify(t *testing.T) {
	s := setupServer(t)
	room := s.seedRoom("401", 2, 200)
	guest := s.seedGuest("赵六")
	r := s.create(room.ID, guest.ID, "2026-07-01", "2026-07-02")

	_, resp := s.do(http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d", r.ID), s.staff, gin.H{
		"check_out_date": "2026-07-04",
	})
	require.Equal(t, 0, resp.Code, resp.Message)

	var got models.Reservation
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, 3, got.Nights)
	assert.InDelta(t, 660.0, got.TotalPrice, 0.001)
	assert.Equal(t, r.Version+1, got.Version)

	_, resp = s.do(http.MethodPatch, "/api/v1/reservations/abc", s.staff, gin.H{})
	assert.Equal(t, 400, resp.Code)
}

func TestReservationHandler_Queries(t *testing.T) {
	s := setupServer(t)
	room := s.seedRoom("501", 2, 100)
	other := s.seedRoom("502", 4, 150)
	guest := s.seedGuest("钱七")
	r := s.create(room.ID, guest.ID, "2026-08-10", "2026-08-12")

	t.Run("按预订号查询", func(t *testing.T) {
		_, resp := s.do(http.MethodGet, "/api/v1/reservations/ref/"+r.BookingRef, s.staff, nil)
		require.Equal(t, 0, resp.Code, resp.Message)
		var got models.Reservation
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, r.ID, got.ID)
	})

	t.Run("分页列表", func(t *testing.T) {
		_, resp := s.do(http.MethodGet, fmt.Sprintf("/api/v1/reservations?room_id=%d&page=1&page_size=5", room.ID), s.staff, nil)
		require.Equal(t, 0, resp.Code, resp.Message)
		var page struct {
			Total    int64             `json:"total"`
			PageSize int               `json:"page_size"`
			List     []json.RawMessage `json:"list"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 5, page.PageSize)
		assert.Len(t, page.List, 1)
	})

	t.Run("无效查询参数", func(t *testing.T) {
		w, _ := s.do(http.MethodGet, "/api/v1/reservations?from=yesterday", s.staff, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("可订房间", func(t *testing.T) {
		_, resp := s.do(http.MethodGet, "/api/v1/rooms/availability?check_in=2026-08-11&check_out=2026-08-13&party_size=1", s.staff, nil)
		require.Equal(t, 0, resp.Code, resp.Message)
		var rooms []reservationService.AvailableRoom
		require.NoError(t, json.Unmarshal(resp.Data, &rooms))
		require.Len(t, rooms, 1)
		assert.Equal(t, other.ID, rooms[0].RoomID)
	})

	t.Run("缺少日期", func(t *testing.T) {
		w, _ := s.do(http.MethodGet, "/api/v1/rooms/availability?check_in=2026-08-11", s.staff, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("报价", func(t *testing.T) {
		_, resp := s.do(http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d/quote?check_in=2026-08-11&check_out=2026-08-12", room.ID), s.staff, nil)
		require.Equal(t, 0, resp.Code, resp.Message)
		var q reservationService.Quote
		require.NoError(t, json.Unmarshal(resp.Data, &q))
		assert.False(t, q.Available)
		require.NotNil(t, q.Conflict)
		assert.Equal(t, r.BookingRef, q.Conflict.BookingRef)
	})
}

func TestReservationHandler_QRCode(t *testing.T) {
	s := setupServer(t)
	room := s.seedRoom("601", 2, 100)
	guest := s.seedGuest("孙八")
	r := s.create(room.ID, guest.ID, "2026-09-01", "2026-09-02")

	t.Run("PNG", func(t *testing.T) {
		w, _ := s.do(http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d/qrcode", r.ID), s.staff, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
	})

	t.Run("DataURL", func(t *testing.T) {
		_, resp := s.do(http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d/qrcode?format=data_url", r.ID), s.staff, nil)
		require.Equal(t, 0, resp.Code, resp.Message)
		assert.Contains(t, string(resp.Data), "data:image/png;base64,")
	})

	t.Run("预订不存在", func(t *testing.T) {
		_, resp := s.do(http.MethodGet, "/api/v1/reservations/9999/qrcode", s.staff, nil)
		assert.Equal(t, errors.ErrReservationNotFound.Code, resp.Code)
	})

	t.Run("扫码查找", func(t *testing.T) {
		_, resp := s.do(http.MethodGet, "/api/v1/reservations/scan?content=HTLRES:"+r.BookingRef, s.staff, nil)
		require.Equal(t, 0, resp.Code, resp.Message)
		var got models.Reservation
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, r.ID, got.ID)

		w, _ := s.do(http.MethodGet, "/api/v1/reservations/scan?content=garbage", s.staff, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRoomHandler_ListRooms(t *testing.T) {
	s := setupServer(t)
	room := s.seedRoom("701", 2, 100)
	s.seedRoom("702", 2, 100)
	guest := s.seedGuest("周九")
	r := s.create(room.ID, guest.ID, "2026-10-01", "2026-10-02")
	_, resp := s.do(http.MethodPost, fmt.Sprintf("/api/v1/reservations/%d/check-in", r.ID), s.staff, nil)
	require.Equal(t, 0, resp.Code, resp.Message)

	_, resp = s.do(http.MethodGet, "/api/v1/rooms?status=occupied", s.staff, nil)
	require.Equal(t, 0, resp.Code, resp.Message)
	var page struct {
		Total int64         `json:"total"`
		List  []models.Room `json:"list"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.List, 1)
	assert.Equal(t, "701", page.List[0].RoomNo)

	_, resp = s.do(http.MethodGet, "/api/v1/rooms?status=flooded", s.staff, nil)
	assert.Equal(t, errors.ErrInvalidParams.Code, resp.Code)

	w, _ := s.do(http.MethodGet, "/api/v1/rooms?floor=top", s.staff, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
