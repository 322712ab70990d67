package reservation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
	"github.com/dumeirei/hotel-backoffice/internal/models"
	"github.com/dumeirei/hotel-backoffice/internal/repository"
)

// RoomStatusSynchronizer 房态同步器
// 房间的 status、current_guest_id、last_checkout_at 只通过这里写入
// 不读取也不校验预订状态，由生命周期在正确的转换点调用
type RoomStatusSynchronizer struct {
	rooms *repository.RoomRepository
	now   func() time.Time
}

// NewRoomStatusSynchronizer 创建房态同步器
func NewRoomStatusSynchronizer(rooms *repository.RoomRepository) *RoomStatusSynchronizer {
	return &RoomStatusSynchronizer{
		rooms: rooms,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// OnCheckIn 入住：房间置为在住并记录当前客人
func (s *RoomStatusSynchronizer) OnCheckIn(ctx context.Context, tx *gorm.DB, roomID, guestID, actorID int64) error {
	return s.apply(ctx, tx, roomID, actorID, map[string]interface{}{
		"status":           models.RoomStatusOccupied,
		"current_guest_id": guestID,
	})
}

// OnCheckOut 退房：房间置为待清扫，清空当前客人并记录退房时间
func (s *RoomStatusSynchronizer) OnCheckOut(ctx context.Context, tx *gorm.DB, roomID, actorID int64) error {
	return s.release(ctx, tx, roomID, actorID)
}

// OnVacate 在住取消：与退房一致地腾空房间
func (s *RoomStatusSynchronizer) OnVacate(ctx context.Context, tx *gorm.DB, roomID, actorID int64) error {
	return s.release(ctx, tx, roomID, actorID)
}

func (s *RoomStatusSynchronizer) release(ctx context.Context, tx *gorm.DB, roomID, actorID int64) error {
	return s.apply(ctx, tx, roomID, actorID, map[string]interface{}{
		"status":           models.RoomStatusCleaning,
		"current_guest_id": nil,
		"last_checkout_at": s.now(),
	})
}

func (s *RoomStatusSynchronizer) apply(ctx context.Context, tx *gorm.DB, roomID, actorID int64, fields map[string]interface{}) error {
	if actorID > 0 {
		fields["last_updated_by"] = actorID
	}
	if err := s.rooms.WithTx(tx).UpdateOccupancy(ctx, roomID, fields); err != nil {
		return err
	}
	logger.Ctx(ctx).Debug("房态已同步",
		logger.RoomID(roomID),
		logger.Status(string(fields["status"].(models.RoomStatus))),
		logger.ActorID(actorID),
	)
	return nil
}
