package models

import (
	"time"

	"gorm.io/gorm"
)

// ReservationStatus 预订状态
type ReservationStatus string

// 预订状态枚举
const (
	ReservationStatusPending    ReservationStatus = "pending"     // 待确认
	ReservationStatusConfirmed  ReservationStatus = "confirmed"   // 已确认
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"  // 已入住
	ReservationStatusCheckedOut ReservationStatus = "checked_out" // 已退房
	ReservationStatusCancelled  ReservationStatus = "cancelled"   // 已取消
)

// ActiveReservationStatuses 占用房间的状态
var ActiveReservationStatuses = []ReservationStatus{
	ReservationStatusConfirmed,
	ReservationStatusCheckedIn,
}

// Valid 是否为已知状态
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCheckedIn,
		ReservationStatusCheckedOut, ReservationStatusCancelled:
		return true
	}
	return false
}

// IsActive 是否阻塞同房间的重叠预订
func (s ReservationStatus) IsActive() bool {
	switch s {
	case ReservationStatusConfirmed, ReservationStatusCheckedIn:
		return true
	case ReservationStatusPending, ReservationStatusCheckedOut, ReservationStatusCancelled:
		return false
	}
	return false
}

// IsTerminal 是否为终态
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationStatusCheckedOut, ReservationStatusCancelled:
		return true
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCheckedIn:
		return false
	}
	return false
}

// ReservationSource 预订来源渠道
type ReservationSource string

// 来源渠道枚举
const (
	ReservationSourceFrontDesk ReservationSource = "front_desk" // 前台
	ReservationSourcePhone     ReservationSource = "phone"      // 电话
	ReservationSourceWebsite   ReservationSource = "website"    // 官网
	ReservationSourceOTA       ReservationSource = "ota"        // 在线旅行社
	ReservationSourceWalkIn    ReservationSource = "walk_in"    // 散客
)

// Valid 是否为已知渠道
func (s ReservationSource) Valid() bool {
	switch s {
	case ReservationSourceFrontDesk, ReservationSourcePhone, ReservationSourceWebsite,
		ReservationSourceOTA, ReservationSourceWalkIn:
		return true
	}
	return false
}

// Reservation 预订模型
// 入住区间为左闭右开 [CheckInDate, CheckOutDate)，日期统一为 UTC 零点
type Reservation struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingRef      string            `gorm:"type:varchar(32);uniqueIndex;not null" json:"booking_ref"`
	GuestID         int64             `gorm:"index;not null" json:"guest_id"`
	RoomID          int64             `gorm:"index:idx_reservation_room_dates;not null" json:"room_id"`
	CheckInDate     time.Time         `gorm:"index:idx_reservation_room_dates;not null" json:"check_in_date"`
	CheckOutDate    time.Time         `gorm:"index:idx_reservation_room_dates;not null" json:"check_out_date"`
	PartySize       int               `gorm:"not null;default:1" json:"party_size"`
	Status          ReservationStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	Source          ReservationSource `gorm:"type:varchar(20);not null;default:front_desk" json:"source"`
	RoomRate        float64           `gorm:"type:decimal(12,2);not null" json:"room_rate"`
	Nights          int               `gorm:"not null" json:"nights"`
	DiscountPercent float64           `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	Subtotal        float64           `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount  float64           `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	TaxAmount       float64           `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	TotalPrice      float64           `gorm:"type:decimal(12,2);not null" json:"total_price"`
	SpecialRequests *string           `gorm:"type:text" json:"special_requests,omitempty"`
	CancelReason    *string           `gorm:"type:varchar(255)" json:"cancel_reason,omitempty"`
	ConfirmedAt     *time.Time        `json:"confirmed_at,omitempty"`
	CheckedInAt     *time.Time        `json:"checked_in_at,omitempty"`
	CheckedOutAt    *time.Time        `json:"checked_out_at,omitempty"`
	CancelledAt     *time.Time        `json:"cancelled_at,omitempty"`
	CreatedBy       *int64            `json:"created_by,omitempty"`
	UpdatedBy       *int64            `json:"updated_by,omitempty"`
	DeletedBy       *int64            `json:"-"`
	Version         int64             `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	// 关联
	Guest *Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room  *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName 表名
func (Reservation) TableName() string {
	return "reservations"
}

// NormalizeDate 取 t 所在时区的日历日，以 UTC 零点存储
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AllModels 返回需要迁移的模型
func AllModels() []interface{} {
	return []interface{}{
		&RoomType{},
		&Room{},
		&Guest{},
		&Reservation{},
	}
}
