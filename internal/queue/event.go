// Package queue 定义预订领域事件及其投递
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/dumeirei/hotel-backoffice/internal/models"
)

// EventType 事件类型，同时作为路由键
type EventType string

// 预订生命周期事件
const (
	EventReservationCreated    EventType = "reservation.created"
	EventReservationModified   EventType = "reservation.modified"
	EventReservationConfirmed  EventType = "reservation.confirmed"
	EventReservationCheckedIn  EventType = "reservation.checked_in"
	EventReservationCheckedOut EventType = "reservation.checked_out"
	EventReservationCancelled  EventType = "reservation.cancelled"
	EventReservationDeleted    EventType = "reservation.deleted"
)

// ReservationEvent 预订事件消息体
type ReservationEvent struct {
	ID            string                   `json:"id"`
	Type          EventType                `json:"type"`
	ReservationID int64                    `json:"reservation_id"`
	BookingRef    string                   `json:"booking_ref"`
	RoomID        int64                    `json:"room_id"`
	GuestID       int64                    `json:"guest_id"`
	Status        models.ReservationStatus `json:"status"`
	CheckInDate   string                   `json:"check_in_date"`
	CheckOutDate  string                   `json:"check_out_date"`
	TotalPrice    float64                  `json:"total_price"`
	ActorID       int64                    `json:"actor_id,omitempty"`
	Reason        string                   `json:"reason,omitempty"`
	OccurredAt    time.Time                `json:"occurred_at"`
}

// NewReservationEvent 根据预订快照构建事件
func NewReservationEvent(eventType EventType, r *models.Reservation, actorID int64) *ReservationEvent {
	e := &ReservationEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		ReservationID: r.ID,
		BookingRef:    r.BookingRef,
		RoomID:        r.RoomID,
		GuestID:       r.GuestID,
		Status:        r.Status,
		CheckInDate:   r.CheckInDate.Format("2006-01-02"),
		CheckOutDate:  r.CheckOutDate.Format("2006-01-02"),
		TotalPrice:    r.TotalPrice,
		ActorID:       actorID,
		OccurredAt:    time.Now().UTC(),
	}
	if r.CancelReason != nil {
		e.Reason = *r.CancelReason
	}
	return e
}
