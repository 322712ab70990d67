package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-backoffice/internal/common/database"
	"github.com/dumeirei/hotel-backoffice/internal/common/utils"
	"github.com/dumeirei/hotel-backoffice/internal/models"
)

// RoomRepository 房间仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房间仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *RoomRepository) WithTx(tx *gorm.DB) *RoomRepository {
	return &RoomRepository{db: tx}
}

// GetByID 根据 ID 获取房间
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByIDWithType 根据 ID 获取房间（包含房型）
func (r *RoomRepository) GetByIDWithType(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).Preload("RoomType").First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// LockByIDs 按 ID 升序锁定房间行并返回（包含房型）
// 必须在事务中调用；任一房间不存在时返回 gorm.ErrRecordNotFound
func (r *RoomRepository) LockByIDs(ctx context.Context, ids ...int64) (map[int64]*models.Room, error) {
	rooms := make(map[int64]*models.Room, len(ids))
	for _, id := range utils.SortedUnique(ids) {
		var room models.Room
		if err := forUpdate(r.db.WithContext(ctx)).First(&room, id).Error; err != nil {
			return nil, err
		}
		rooms[id] = &room
	}
	if len(rooms) == 0 {
		return rooms, nil
	}

	// 房型不加锁，价格以加锁时读到的快照为准
	typeIDs := make([]int64, 0, len(rooms))
	for _, room := range rooms {
		typeIDs = append(typeIDs, room.RoomTypeID)
	}
	var types []*models.RoomType
	if err := r.db.WithContext(ctx).Where("id IN ?", utils.SortedUnique(typeIDs)).Find(&types).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.RoomType, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}
	for _, room := range rooms {
		room.RoomType = byID[room.RoomTypeID]
	}
	return rooms, nil
}

// UpdateOccupancy 更新房态字段，仅供房态同步器调用
func (r *RoomRepository) UpdateOccupancy(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(fields).Error
}

// List 获取房间列表
func (r *RoomRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Room{})

	if roomTypeID, ok := filters["room_type_id"].(int64); ok && roomTypeID > 0 {
		query = query.Where("room_type_id = ?", roomTypeID)
	}
	if status, ok := filters["status"].(models.RoomStatus); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if floor, ok := filters["floor"].(int); ok {
		query = query.Where("floor = ?", floor)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("RoomType").Order("room_no ASC").Scopes(database.Paginate(page, pageSize)).Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// ListBookableForParty 获取容量满足人数且不在维修中的房间
func (r *RoomRepository) ListBookableForParty(ctx context.Context, partySize int) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("room_types.capacity >= ?", partySize).
		Where("rooms.status <> ?", models.RoomStatusMaintenance).
		Preload("RoomType").
		Order("rooms.room_no ASC").
		Find(&rooms).Error
	return rooms, err
}

// CountByStatus 统计指定房态的房间数
func (r *RoomRepository) CountByStatus(ctx context.Context, status models.RoomStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
