package models

import (
	"time"
)

// RoomType 房型模型
type RoomType struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Capacity    int       `gorm:"not null;default:2" json:"capacity"`
	NightlyRate float64   `gorm:"type:decimal(12,2);not null" json:"nightly_rate"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (RoomType) TableName() string {
	return "room_types"
}

// RoomStatus 房态
type RoomStatus string

// 房态枚举
const (
	RoomStatusAvailable   RoomStatus = "available"   // 空闲
	RoomStatusOccupied    RoomStatus = "occupied"    // 在住
	RoomStatusCleaning    RoomStatus = "cleaning"    // 待清扫
	RoomStatusMaintenance RoomStatus = "maintenance" // 维修
)

// Valid 是否为已知房态
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusCleaning, RoomStatusMaintenance:
		return true
	}
	return false
}

// Room 房间模型
// Status / CurrentGuestID / LastCheckoutAt 仅由房态同步器写入
type Room struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomNo         string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"room_no"`
	RoomTypeID     int64      `gorm:"index;not null" json:"room_type_id"`
	Floor          *int       `json:"floor,omitempty"`
	Status         RoomStatus `gorm:"type:varchar(20);not null;default:available" json:"status"`
	CurrentGuestID *int64     `json:"current_guest_id,omitempty"`
	LastCheckoutAt *time.Time `json:"last_checkout_at,omitempty"`
	LastUpdatedBy  *int64     `json:"last_updated_by,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	RoomType *RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

// TableName 表名
func (Room) TableName() string {
	return "rooms"
}

// Guest 客人模型
type Guest struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone         *string   `gorm:"type:varchar(20);index" json:"phone,omitempty"`
	Email         *string   `gorm:"type:varchar(100)" json:"email,omitempty"`
	IsVIP         bool      `gorm:"not null;default:false" json:"is_vip"`
	LoyaltyPoints int64     `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Guest) TableName() string {
	return "guests"
}
