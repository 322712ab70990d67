package reservation

import (
	"context"
	"time"

	"github.com/dumeirei/hotel-backoffice/internal/models"
	"github.com/dumeirei/hotel-backoffice/internal/repository"
)

// Overlaps 判断两个左闭右开区间是否相交
// 一方离店日等于另一方入住日不算冲突
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// AvailabilityChecker 房间可用性检查
type AvailabilityChecker struct {
	reservations *repository.ReservationRepository
}

// NewAvailabilityChecker 创建可用性检查器
func NewAvailabilityChecker(reservations *repository.ReservationRepository) *AvailabilityChecker {
	return &AvailabilityChecker{reservations: reservations}
}

// WithRepo 返回使用指定仓储的检查器，用于在事务内检查
func (a *AvailabilityChecker) WithRepo(reservations *repository.ReservationRepository) *AvailabilityChecker {
	return &AvailabilityChecker{reservations: reservations}
}

// FindConflict 返回与区间重叠的第一条有效预订，无冲突时返回 nil
// 调用方须先保证 checkOut 晚于 checkIn
func (a *AvailabilityChecker) FindConflict(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) (*models.Reservation, error) {
	candidates, err := a.reservations.ListActiveOverlapping(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return nil, err
	}
	for _, r := range candidates {
		if r.ID == excludeID || !r.Status.IsActive() {
			continue
		}
		if Overlaps(checkIn, checkOut, r.CheckInDate, r.CheckOutDate) {
			return r, nil
		}
	}
	return nil, nil
}

// HasConflict 判断房间在区间内是否已被占用
func (a *AvailabilityChecker) HasConflict(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	conflict, err := a.FindConflict(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return false, err
	}
	return conflict != nil, nil
}
