package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-backoffice/internal/models"
)

func TestReservationRepository_ListActiveOverlapping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "301", 2, 500000)
	other := seedRoom(t, db, "302", 2, 500000)
	guest := seedGuest(t, db, "李四")

	booked := seedReservation(t, db, "HTL-A", room.ID, guest.ID, date(2026, 1, 15), date(2026, 1, 17), models.ReservationStatusConfirmed)
	seedReservation(t, db, "HTL-B", room.ID, guest.ID, date(2026, 1, 15), date(2026, 1, 17), models.ReservationStatusCancelled)
	seedReservation(t, db, "HTL-C", room.ID, guest.ID, date(2026, 1, 15), date(2026, 1, 17), models.ReservationStatusPending)
	seedReservation(t, db, "HTL-D", other.ID, guest.ID, date(2026, 1, 15), date(2026, 1, 17), models.ReservationStatusCheckedIn)

	tests := []struct {
		name      string
		in, out   int
		excludeID int64
		wantRefs  []string
	}{
		{"部分重叠", 16, 18, 0, []string{"HTL-A"}},
		{"包含", 14, 20, 0, []string{"HTL-A"}},
		{"离店日相邻", 17, 19, 0, nil},
		{"入住日相邻", 13, 15, 0, nil},
		{"排除自身", 15, 17, booked.ID, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.ListActiveOverlapping(ctx, room.ID, date(2026, 1, tt.in), date(2026, 1, tt.out), tt.excludeID)
			require.NoError(t, err)
			refs := make([]string, 0, len(list))
			for _, r := range list {
				refs = append(refs, r.BookingRef)
			}
			if tt.wantRefs == nil {
				assert.Empty(t, refs)
			} else {
				assert.Equal(t, tt.wantRefs, refs)
			}
		})
	}
}

func TestReservationRepository_UpdateIfVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "301", 2, 100)
	guest := seedGuest(t, db, "王五")
	r := seedReservation(t, db, "HTL-V", room.ID, guest.ID, date(2026, 2, 1), date(2026, 2, 3), models.ReservationStatusConfirmed)

	require.NoError(t, repo.UpdateIfVersion(ctx, r.ID, 1, map[string]interface{}{
		"status": models.ReservationStatusCheckedIn,
	}))

	// 旧版本号再次更新失败
	err := repo.UpdateIfVersion(ctx, r.ID, 1, map[string]interface{}{
		"status": models.ReservationStatusCheckedIn,
	})
	assert.ErrorIs(t, err, ErrVersionConflict)

	found, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedIn, found.Status)
	assert.Equal(t, int64(2), found.Version)
}

func TestReservationRepository_SoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "301", 2, 100)
	guest := seedGuest(t, db, "赵六")
	r := seedReservation(t, db, "HTL-DEL", room.ID, guest.ID, date(2026, 2, 1), date(2026, 2, 3), models.ReservationStatusCancelled)

	require.NoError(t, repo.SoftDeleteIfVersion(ctx, r.ID, r.Version, 7))

	_, err := repo.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 已删除的预订号仍视为占用
	exists, err := repo.ExistsByBookingRef(ctx, "HTL-DEL")
	require.NoError(t, err)
	assert.True(t, exists)

	// 再次删除视为版本冲突
	assert.ErrorIs(t, repo.SoftDeleteIfVersion(ctx, r.ID, r.Version+1, 7), ErrVersionConflict)
}

func TestReservationRepository_GetByBookingRef(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "301", 2, 100)
	guest := seedGuest(t, db, "钱七")
	r := seedReservation(t, db, "HTL-REF", room.ID, guest.ID, date(2026, 2, 1), date(2026, 2, 3), models.ReservationStatusConfirmed)

	found, err := repo.GetByBookingRef(ctx, "HTL-REF")
	require.NoError(t, err)
	assert.Equal(t, r.ID, found.ID)
	require.NotNil(t, found.Guest)
	assert.Equal(t, "钱七", found.Guest.Name)

	detail, err := repo.GetByIDWithDetails(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Room)
	require.NotNil(t, detail.Room.RoomType)

	_, err = repo.GetByBookingRef(ctx, "HTL-NONE")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReservationRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, "301", 2, 100)
	guest := seedGuest(t, db, "孙八")
	seedReservation(t, db, "HTL-1", room.ID, guest.ID, date(2026, 3, 1), date(2026, 3, 3), models.ReservationStatusConfirmed)
	seedReservation(t, db, "HTL-2", room.ID, guest.ID, date(2026, 3, 5), date(2026, 3, 7), models.ReservationStatusCancelled)
	seedReservation(t, db, "HTL-3", room.ID, guest.ID, date(2026, 4, 1), date(2026, 4, 2), models.ReservationStatusPending)

	list, total, err := repo.List(ctx, 1, 10, map[string]interface{}{"room_id": room.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, "HTL-1", list[0].BookingRef)

	_, total, err = repo.List(ctx, 1, 10, map[string]interface{}{"status": models.ReservationStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	list, total, err = repo.List(ctx, 1, 10, map[string]interface{}{
		"from": date(2026, 3, 2),
		"to":   date(2026, 3, 31),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "HTL-2", list[1].BookingRef)

	stale, err := repo.ListStalePending(ctx, date(2026, 4, 2), 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "HTL-3", stale[0].BookingRef)

	count, err := repo.CountByStatus(ctx, models.ReservationStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
