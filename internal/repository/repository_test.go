package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-backoffice/internal/models"
)

// setupTestDB 创建内存数据库并迁移预订相关表
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// date 构造 UTC 日期
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedRoom 创建房型与房间
func seedRoom(t *testing.T, db *gorm.DB, roomNo string, capacity int, rate float64) *models.Room {
	t.Helper()
	rt := &models.RoomType{Name: "type-" + roomNo, Capacity: capacity, NightlyRate: rate}
	require.NoError(t, db.Create(rt).Error)
	room := &models.Room{RoomNo: roomNo, RoomTypeID: rt.ID, Status: models.RoomStatusAvailable}
	require.NoError(t, db.Create(room).Error)
	return room
}

// seedGuest 创建客人
func seedGuest(t *testing.T, db *gorm.DB, name string) *models.Guest {
	t.Helper()
	g := &models.Guest{Name: name}
	require.NoError(t, db.Create(g).Error)
	return g
}

// seedReservation 直接写入一条预订
func seedReservation(t *testing.T, db *gorm.DB, ref string, roomID, guestID int64, in, out time.Time, status models.ReservationStatus) *models.Reservation {
	t.Helper()
	r := &models.Reservation{
		BookingRef:   ref,
		GuestID:      guestID,
		RoomID:       roomID,
		CheckInDate:  in,
		CheckOutDate: out,
		PartySize:    1,
		Status:       status,
		Source:       models.ReservationSourceFrontDesk,
		RoomRate:     100,
		Nights:       int(out.Sub(in).Hours() / 24),
		Subtotal:     100,
		TotalPrice:   110,
		Version:      1,
	}
	require.NoError(t, NewReservationRepository(db).Create(context.Background(), r))
	return r
}
