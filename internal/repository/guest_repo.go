package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-backoffice/internal/models"
)

// GuestRepository 客人仓储
type GuestRepository struct {
	db *gorm.DB
}

// NewGuestRepository 创建客人仓储
func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Exists 检查客人是否存在
func (r *GuestRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
