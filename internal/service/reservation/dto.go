package reservation

import (
	"time"

	"github.com/dumeirei/hotel-backoffice/internal/models"
)

// CreateInput 创建预订参数，日期为日历日
type CreateInput struct {
	GuestID         int64
	RoomID          int64
	CheckIn         time.Time
	CheckOut        time.Time
	PartySize       int
	Source          models.ReservationSource
	DiscountPercent float64
	SpecialRequests *string
}

// ModifyInput 修改预订参数，nil 字段保持不变
type ModifyInput struct {
	RoomID          *int64
	CheckIn         *time.Time
	CheckOut        *time.Time
	PartySize       *int
	DiscountPercent *float64
	SpecialRequests *string
}

// Empty 是否未包含任何修改
func (in *ModifyInput) Empty() bool {
	return in.RoomID == nil && in.CheckIn == nil && in.CheckOut == nil &&
		in.PartySize == nil && in.DiscountPercent == nil && in.SpecialRequests == nil
}

// ListQuery 预订列表查询条件
type ListQuery struct {
	RoomID     int64
	GuestID    int64
	Status     models.ReservationStatus
	BookingRef string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// RoomQuery 房态查询条件
type RoomQuery struct {
	RoomTypeID int64
	Status     models.RoomStatus
	Floor      *int
	Page       int
	PageSize   int
}

// ConflictInfo 冲突预订摘要，随 RoomUnavailable 返回
type ConflictInfo struct {
	BookingRef   string                   `json:"booking_ref"`
	Status       models.ReservationStatus `json:"status"`
	CheckInDate  string                   `json:"check_in_date"`
	CheckOutDate string                   `json:"check_out_date"`
}

func newConflictInfo(r *models.Reservation) *ConflictInfo {
	return &ConflictInfo{
		BookingRef:   r.BookingRef,
		Status:       r.Status,
		CheckInDate:  r.CheckInDate.Format(dateLayout),
		CheckOutDate: r.CheckOutDate.Format(dateLayout),
	}
}

// Quote 报价结果
type Quote struct {
	RoomID       int64           `json:"room_id"`
	RoomNo       string          `json:"room_no"`
	RoomType     string          `json:"room_type"`
	Capacity     int             `json:"capacity"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Available    bool            `json:"available"`
	Conflict     *ConflictInfo   `json:"conflict,omitempty"`
	Price        *PriceBreakdown `json:"price"`
}

// AvailableRoom 可订房间及其报价
type AvailableRoom struct {
	RoomID   int64             `json:"room_id"`
	RoomNo   string            `json:"room_no"`
	Floor    *int              `json:"floor,omitempty"`
	RoomType string            `json:"room_type"`
	Capacity int               `json:"capacity"`
	Status   models.RoomStatus `json:"status"`
	Price    *PriceBreakdown   `json:"price"`
}

const dateLayout = "2006-01-02"
