package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-backoffice/internal/common/database"
	"github.com/dumeirei/hotel-backoffice/internal/models"
)

// ReservationRepository 预订仓储
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建预订仓储
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *ReservationRepository) WithTx(tx *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: tx}
}

// Create 创建预订
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// GetByID 根据 ID 获取预订
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByIDWithDetails 根据 ID 获取预订（包含客人与房间）
func (r *ReservationRepository) GetByIDWithDetails(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Room").
		Preload("Room.RoomType").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByBookingRef 根据预订号获取预订
func (r *ReservationRepository) GetByBookingRef(ctx context.Context, bookingRef string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Room").
		Where("booking_ref = ?", bookingRef).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ExistsByBookingRef 检查预订号是否已占用（含已删除记录）
func (r *ReservationRepository) ExistsByBookingRef(ctx context.Context, bookingRef string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.Reservation{}).
		Where("booking_ref = ?", bookingRef).
		Count(&count).Error
	return count > 0, err
}

// ListActiveOverlapping 获取与区间 [checkIn, checkOut) 重叠的有效预订
// excludeID 大于 0 时排除该预订自身
func (r *ReservationRepository) ListActiveOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	query := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveReservationStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Order("check_in_date ASC").Find(&reservations).Error
	return reservations, err
}

// UpdateIfVersion 按乐观锁版本更新字段，版本号自增
// 版本不匹配或记录已删除时返回 ErrVersionConflict
func (r *ReservationRepository) UpdateIfVersion(ctx context.Context, id, version int64, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["version"] = gorm.Expr("version + 1")

	result := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// SoftDeleteIfVersion 按乐观锁版本软删除预订
func (r *ReservationRepository) SoftDeleteIfVersion(ctx context.Context, id, version, deletedBy int64) error {
	return r.UpdateIfVersion(ctx, id, version, map[string]interface{}{
		"deleted_at": time.Now().UTC(),
		"deleted_by": deletedBy,
	})
}

// List 获取预订列表
func (r *ReservationRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]*models.Reservation, int64, error) {
	var reservations []*models.Reservation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Reservation{})

	if roomID, ok := filters["room_id"].(int64); ok && roomID > 0 {
		query = query.Where("room_id = ?", roomID)
	}
	if guestID, ok := filters["guest_id"].(int64); ok && guestID > 0 {
		query = query.Where("guest_id = ?", guestID)
	}
	if status, ok := filters["status"].(models.ReservationStatus); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if bookingRef, ok := filters["booking_ref"].(string); ok && bookingRef != "" {
		query = query.Where("booking_ref LIKE ?", "%"+bookingRef+"%")
	}
	// 与 [from, to) 有交集的入住区间
	if from, ok := filters["from"].(time.Time); ok {
		query = query.Where("check_out_date > ?", from)
	}
	if to, ok := filters["to"].(time.Time); ok {
		query = query.Where("check_in_date < ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Guest").
		Preload("Room").
		Order("check_in_date ASC, id ASC").
		Scopes(database.Paginate(page, pageSize)).
		Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// ListStalePending 获取入住日早于 before 仍未确认的预订
func (r *ReservationRepository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ReservationStatusPending).
		Where("check_in_date < ?", before).
		Order("id ASC").
		Limit(limit).
		Find(&reservations).Error
	return reservations, err
}

// CountByStatus 统计指定状态的预订数
func (r *ReservationRepository) CountByStatus(ctx context.Context, status models.ReservationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
