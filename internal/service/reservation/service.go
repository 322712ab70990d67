// Package reservation 提供预订生命周期与房间可用性服务
package reservation

import (
	"context"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-backoffice/internal/common/config"
	"github.com/dumeirei/hotel-backoffice/internal/common/errors"
	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
	"github.com/dumeirei/hotel-backoffice/internal/common/metrics"
	"github.com/dumeirei/hotel-backoffice/internal/common/tracing"
	"github.com/dumeirei/hotel-backoffice/internal/models"
	"github.com/dumeirei/hotel-backoffice/internal/queue"
	"github.com/dumeirei/hotel-backoffice/internal/repository"
)

// 操作名，用于指标、追踪与日志
const (
	opCreate   = "create"
	opModify   = "modify"
	opConfirm  = "confirm"
	opCheckIn  = "check_in"
	opCheckOut = "check_out"
	opCancel   = "cancel"
	opDelete   = "delete"
)

// ExpiredCancelReason 过期未确认预订的取消原因
const ExpiredCancelReason = "expired"

// Options 服务配置
type Options struct {
	TaxRate           float64
	CurrencyPrecision int
	BookingRefPrefix  string
	AutoConfirm       bool
	MaxRetries        int
	PendingExpire     time.Duration
}

// OptionsFromConfig 从酒店业务配置构建服务配置
func OptionsFromConfig(cfg *config.HotelConfig) Options {
	return Options{
		TaxRate:           cfg.TaxRate,
		CurrencyPrecision: cfg.CurrencyPrecision,
		BookingRefPrefix:  cfg.BookingRefPrefix,
		AutoConfirm:       cfg.AutoConfirm,
		MaxRetries:        cfg.MaxRetries,
		PendingExpire:     cfg.PendingExpireDuration(),
	}
}

// Service 预订生命周期服务
type Service struct {
	db           *gorm.DB
	roomRepo     *repository.RoomRepository
	guestRepo    *repository.GuestRepository
	reservations *repository.ReservationRepository
	checker      *AvailabilityChecker
	pricing      *PricingCalculator
	refGen       *BookingReferenceGenerator
	sync         *RoomStatusSynchronizer
	locker       RoomLocker
	publisher    queue.Publisher
	metrics      *metrics.Metrics
	retry        *retryPolicy
	opts         Options
	now          func() time.Time
}

// NewService 创建预订服务
// locker 为空时使用进程内房间锁，publisher 为空时不投递事件
func NewService(
	db *gorm.DB,
	roomRepo *repository.RoomRepository,
	guestRepo *repository.GuestRepository,
	reservationRepo *repository.ReservationRepository,
	locker RoomLocker,
	publisher queue.Publisher,
	m *metrics.Metrics,
	opts Options,
) *Service {
	if locker == nil {
		locker = NewLocalRoomLocker(5 * time.Second)
	}
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &Service{
		db:           db,
		roomRepo:     roomRepo,
		guestRepo:    guestRepo,
		reservations: reservationRepo,
		checker:      NewAvailabilityChecker(reservationRepo),
		pricing:      NewPricingCalculator(opts.TaxRate, opts.CurrencyPrecision),
		refGen:       NewBookingReferenceGenerator(opts.BookingRefPrefix),
		sync:         NewRoomStatusSynchronizer(roomRepo),
		locker:       locker,
		publisher:    publisher,
		metrics:      m,
		retry:        newRetryPolicy(opts.MaxRetries, m),
		opts:         opts,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ==================== 创建 ====================

// Create 创建预订
// 房间锁与行锁内完成可用性检查、计价与写入，冲突返回 ErrRoomUnavailable
func (s *Service) Create(ctx context.Context, actorID int64, in *CreateInput) (result *models.Reservation, err error) {
	ctx, done := s.begin(ctx, opCreate, tracing.WithRoomID(in.RoomID), tracing.WithGuestID(in.GuestID))
	defer func() { done(err) }()

	checkIn, checkOut, err := normalizeRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if in.PartySize <= 0 {
		return nil, errors.ErrInvalidParams.WithMessage("入住人数必须大于 0")
	}
	source := in.Source
	if source == "" {
		source = models.ReservationSourceFrontDesk
	}
	if !source.Valid() {
		return nil, errors.ErrInvalidParams.WithMessage("无效的预订来源")
	}

	exists, err := s.guestRepo.Exists(ctx, in.GuestID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !exists {
		return nil, errors.ErrGuestNotFound
	}

	status := models.ReservationStatusPending
	if s.opts.AutoConfirm {
		status = models.ReservationStatusConfirmed
	}

	err = s.retry.do(ctx, opCreate, func(attempt int) error {
		tracing.SetAttributes(ctx, tracing.WithAttempt(attempt))

		release, err := s.locker.LockRooms(ctx, in.RoomID)
		if err != nil {
			return err
		}
		defer release()

		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			reservationRepo := s.reservations.WithTx(tx)

			room, err := s.lockRoom(ctx, tx, in.RoomID)
			if err != nil {
				return err
			}
			if room.Status == models.RoomStatusMaintenance {
				return errors.ErrRoomUnderMaintenance
			}
			if err := checkCapacity(room, in.PartySize); err != nil {
				return err
			}
			if err := s.ensureAvailable(ctx, reservationRepo, room.ID, checkIn, checkOut, 0); err != nil {
				return err
			}

			price, err := s.pricing.Calculate(room.RoomType.NightlyRate, checkIn, checkOut, in.DiscountPercent)
			if err != nil {
				return err
			}

			ref, err := s.nextBookingRef(ctx, reservationRepo)
			if err != nil {
				return err
			}

			now := s.now()
			r := &models.Reservation{
				BookingRef:      ref,
				GuestID:         in.GuestID,
				RoomID:          room.ID,
				CheckInDate:     checkIn,
				CheckOutDate:    checkOut,
				PartySize:       in.PartySize,
				Status:          status,
				Source:          source,
				SpecialRequests: in.SpecialRequests,
				Version:         1,
			}
			applyPrice(r, price)
			if status == models.ReservationStatusConfirmed {
				r.ConfirmedAt = &now
			}
			if actorID > 0 {
				r.CreatedBy = &actorID
				r.UpdatedBy = &actorID
			}

			if err := reservationRepo.Create(ctx, r); err != nil {
				return err
			}
			r.Room = room
			result = r
			return nil
		})
	})
	if err != nil {
		return nil, s.wrapErr(err)
	}

	logger.Ctx(ctx).Info("预订已创建",
		logger.ReservationID(result.ID),
		logger.BookingRef(result.BookingRef),
		logger.RoomID(result.RoomID),
		logger.GuestID(result.GuestID),
		logger.Status(string(result.Status)),
		logger.ActorID(actorID),
	)
	tracing.SetAttributes(ctx, tracing.WithReservationID(result.ID), tracing.WithBookingRef(result.BookingRef))
	s.publish(ctx, queue.EventReservationCreated, result, actorID)
	return result, nil
}

// ==================== 修改 ====================

// Modify 修改预订
// 房间或日期变化时重新检查可用性并按目标房间当前房价重新计价
// 已入住的预订只允许调整离店日期、人数与特殊要求
func (s *Service) Modify(ctx context.Context, id, actorID int64, in *ModifyInput) (result *models.Reservation, err error) {
	ctx, done := s.begin(ctx, opModify, tracing.WithReservationID(id))
	defer func() { done(err) }()

	if in.Empty() {
		return nil, errors.ErrInvalidParams.WithMessage("未提供任何修改")
	}
	if in.PartySize != nil && *in.PartySize <= 0 {
		return nil, errors.ErrInvalidParams.WithMessage("入住人数必须大于 0")
	}

	err = s.retry.do(ctx, opModify, func(attempt int) error {
		tracing.SetAttributes(ctx, tracing.WithAttempt(attempt))

		current, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			return reservationLookupErr(err)
		}
		if err := checkModifiable(current, in); err != nil {
			return err
		}

		targetRoomID := current.RoomID
		if in.RoomID != nil {
			targetRoomID = *in.RoomID
		}

		release, err := s.locker.LockRooms(ctx, current.RoomID, targetRoomID)
		if err != nil {
			return err
		}
		defer release()

		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			reservationRepo := s.reservations.WithTx(tx)

			rooms, err := s.roomRepo.WithTx(tx).LockByIDs(ctx, current.RoomID, targetRoomID)
			if err != nil {
				return roomLookupErr(err)
			}

			// 锁内重新读取，期间被并发修改则重试
			fresh, err := reservationRepo.GetByID(ctx, id)
			if err != nil {
				return reservationLookupErr(err)
			}
			if fresh.Version != current.Version {
				return repository.ErrVersionConflict
			}

			fields, err := s.planModification(ctx, reservationRepo, fresh, rooms[targetRoomID], in)
			if err != nil {
				return err
			}
			if actorID > 0 {
				fields["updated_by"] = actorID
			}

			if err := reservationRepo.UpdateIfVersion(ctx, id, fresh.Version, fields); err != nil {
				return err
			}
			updated, err := reservationRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			updated.Room = rooms[updated.RoomID]
			result = updated
			return nil
		})
	})
	if err != nil {
		return nil, s.wrapErr(err)
	}

	logger.Ctx(ctx).Info("预订已修改",
		logger.ReservationID(result.ID),
		logger.BookingRef(result.BookingRef),
		logger.RoomID(result.RoomID),
		logger.ActorID(actorID),
	)
	s.publish(ctx, queue.EventReservationModified, result, actorID)
	return result, nil
}

// checkModifiable 终态不可修改，已入住不可换房或改入住日
func checkModifiable(r *models.Reservation, in *ModifyInput) error {
	switch r.Status {
	case models.ReservationStatusPending, models.ReservationStatusConfirmed:
		return nil
	case models.ReservationStatusCheckedIn:
		if in.RoomID != nil && *in.RoomID != r.RoomID {
			return invalidTransition(r, "已入住的预订不能换房")
		}
		if in.CheckIn != nil && !models.NormalizeDate(*in.CheckIn).Equal(r.CheckInDate.UTC()) {
			return invalidTransition(r, "已入住的预订不能修改入住日期")
		}
		return nil
	case models.ReservationStatusCheckedOut, models.ReservationStatusCancelled:
		return invalidTransition(r, "已结束的预订不能修改")
	}
	return invalidTransition(r, "")
}

// planModification 计算修改后的字段，需在事务内调用
func (s *Service) planModification(ctx context.Context, repo *repository.ReservationRepository, r *models.Reservation, target *models.Room, in *ModifyInput) (map[string]interface{}, error) {
	if err := checkModifiable(r, in); err != nil {
		return nil, err
	}
	if target == nil || target.RoomType == nil {
		return nil, errors.ErrRoomNotFound
	}

	checkIn, checkOut := r.CheckInDate, r.CheckOutDate
	if in.CheckIn != nil {
		checkIn = *in.CheckIn
	}
	if in.CheckOut != nil {
		checkOut = *in.CheckOut
	}
	checkIn, checkOut, err := normalizeRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	partySize := r.PartySize
	if in.PartySize != nil {
		partySize = *in.PartySize
	}
	discount := r.DiscountPercent
	if in.DiscountPercent != nil {
		discount = *in.DiscountPercent
	}

	roomChanged := target.ID != r.RoomID
	datesChanged := !checkIn.Equal(r.CheckInDate.UTC()) || !checkOut.Equal(r.CheckOutDate.UTC())
	fields := make(map[string]interface{})

	if roomChanged && target.Status == models.RoomStatusMaintenance {
		return nil, errors.ErrRoomUnderMaintenance
	}
	if err := checkCapacity(target, partySize); err != nil {
		return nil, err
	}
	if partySize != r.PartySize {
		fields["party_size"] = partySize
	}

	if roomChanged || datesChanged {
		if err := s.ensureAvailable(ctx, repo, target.ID, checkIn, checkOut, r.ID); err != nil {
			return nil, err
		}
		fields["room_id"] = target.ID
		fields["check_in_date"] = checkIn
		fields["check_out_date"] = checkOut
	}

	// 换房或改期按目标房间当前房价重算，仅改折扣时沿用原房价快照
	if roomChanged || datesChanged || discount != r.DiscountPercent {
		rate := r.RoomRate
		if roomChanged || datesChanged {
			rate = target.RoomType.NightlyRate
		}
		price, err := s.pricing.Calculate(rate, checkIn, checkOut, discount)
		if err != nil {
			return nil, err
		}
		fields["room_rate"] = price.NightlyRate
		fields["nights"] = price.Nights
		fields["discount_percent"] = price.DiscountPercent
		fields["subtotal"] = price.Subtotal
		fields["discount_amount"] = price.Discount
		fields["tax_amount"] = price.Tax
		fields["total_price"] = price.Total
	}

	if in.SpecialRequests != nil {
		fields["special_requests"] = *in.SpecialRequests
	}
	return fields, nil
}

// ==================== 状态流转 ====================

// Confirm 确认待确认预订，确认前重新检查可用性
func (s *Service) Confirm(ctx context.Context, id, actorID int64) (result *models.Reservation, err error) {
	ctx, done := s.begin(ctx, opConfirm, tracing.WithReservationID(id))
	defer func() { done(err) }()

	err = s.retry.do(ctx, opConfirm, func(attempt int) error {
		tracing.SetAttributes(ctx, tracing.WithAttempt(attempt))

		current, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			return reservationLookupErr(err)
		}
		if current.Status != models.ReservationStatusPending {
			return invalidTransition(current, "仅待确认的预订可以确认")
		}

		release, err := s.locker.LockRooms(ctx, current.RoomID)
		if err != nil {
			return err
		}
		defer release()

		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			reservationRepo := s.reservations.WithTx(tx)

			room, err := s.lockRoom(ctx, tx, current.RoomID)
			if err != nil {
				return err
			}
			fresh, err := reservationRepo.GetByID(ctx, id)
			if err != nil {
				return reservationLookupErr(err)
			}
			if fresh.Version != current.Version || fresh.RoomID != room.ID {
				return repository.ErrVersionConflict
			}
			if err := s.ensureAvailable(ctx, reservationRepo, room.ID, fresh.CheckInDate, fresh.CheckOutDate, fresh.ID); err != nil {
				return err
			}

			now := s.now()
			fields := map[string]interface{}{
				"status":       models.ReservationStatusConfirmed,
				"confirmed_at": now,
			}
			if actorID > 0 {
				fields["updated_by"] = actorID
			}
			if err := reservationRepo.UpdateIfVersion(ctx, id, fresh.Version, fields); err != nil {
				return err
			}

			fresh.Status = models.ReservationStatusConfirmed
			fresh.ConfirmedAt = &now
			fresh.Version++
			fresh.Room = room
			result = fresh
			return nil
		})
	})
	if err != nil {
		return nil, s.wrapErr(err)
	}

	s.logTransition(ctx, "预订已确认", result, actorID)
	s.publish(ctx, queue.EventReservationConfirmed, result, actorID)
	return result, nil
}

// CheckIn 办理入住，仅已确认预订可入住，房间置为在住
// 维修中的房间拒绝入住
func (s *Service) CheckIn(ctx context.Context, id, actorID int64) (*models.Reservation, error) {
	return s.transition(ctx, opCheckIn, id, actorID, func(ctx context.Context, tx *gorm.DB, r *models.Reservation, room *models.Room) (map[string]interface{}, error) {
		if r.Status != models.ReservationStatusConfirmed {
			return nil, invalidTransition(r, "仅已确认的预订可以办理入住")
		}
		if room.Status == models.RoomStatusMaintenance {
			return nil, errors.ErrRoomUnderMaintenance
		}
		if room.Status == models.RoomStatusOccupied && room.CurrentGuestID != nil && *room.CurrentGuestID != r.GuestID {
			logger.Ctx(ctx).Warn("房间仍登记为他人在住，继续办理入住",
				logger.ReservationID(r.ID),
				logger.RoomID(room.ID),
				logger.GuestID(*room.CurrentGuestID),
			)
		}
		if err := s.sync.OnCheckIn(ctx, tx, room.ID, r.GuestID, actorID); err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"status":        models.ReservationStatusCheckedIn,
			"checked_in_at": s.now(),
		}, nil
	})
}

// CheckOut 办理退房，仅已入住预订可退房，房间置为待清扫
func (s *Service) CheckOut(ctx context.Context, id, actorID int64) (*models.Reservation, error) {
	return s.transition(ctx, opCheckOut, id, actorID, func(ctx context.Context, tx *gorm.DB, r *models.Reservation, room *models.Room) (map[string]interface{}, error) {
		if r.Status != models.ReservationStatusCheckedIn {
			return nil, invalidTransition(r, "仅已入住的预订可以退房")
		}
		if err := s.sync.OnCheckOut(ctx, tx, room.ID, actorID); err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"status":         models.ReservationStatusCheckedOut,
			"checked_out_at": s.now(),
		}, nil
	})
}

// Cancel 取消预订
// 已取消返回 ErrAlreadyCancelled，已退房返回 ErrInvalidTransition，在住取消时腾空房间
func (s *Service) Cancel(ctx context.Context, id int64, reason string, actorID int64) (*models.Reservation, error) {
	return s.transition(ctx, opCancel, id, actorID, func(ctx context.Context, tx *gorm.DB, r *models.Reservation, room *models.Room) (map[string]interface{}, error) {
		switch r.Status {
		case models.ReservationStatusCancelled:
			return nil, errors.ErrAlreadyCancelled
		case models.ReservationStatusCheckedOut:
			return nil, invalidTransition(r, "已退房的预订不能取消")
		case models.ReservationStatusCheckedIn:
			if err := s.sync.OnVacate(ctx, tx, room.ID, actorID); err != nil {
				return nil, err
			}
		case models.ReservationStatusPending, models.ReservationStatusConfirmed:
		}

		fields := map[string]interface{}{
			"status":       models.ReservationStatusCancelled,
			"cancelled_at": s.now(),
		}
		if reason != "" {
			fields["cancel_reason"] = reason
		}
		return fields, nil
	})
}

// transitionFunc 校验当前状态并返回需要写入的字段，房态同步在其中完成
type transitionFunc func(ctx context.Context, tx *gorm.DB, r *models.Reservation, room *models.Room) (map[string]interface{}, error)

// transition 入住、退房、取消的公共流程
// 房间行锁串行化房态写入，预订版本号保证同一预订的并发流转只有一个成功
func (s *Service) transition(ctx context.Context, operation string, id, actorID int64, apply transitionFunc) (result *models.Reservation, err error) {
	ctx, done := s.begin(ctx, operation, tracing.WithReservationID(id))
	defer func() { done(err) }()

	err = s.retry.do(ctx, operation, func(attempt int) error {
		tracing.SetAttributes(ctx, tracing.WithAttempt(attempt))

		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			reservationRepo := s.reservations.WithTx(tx)

			r, err := reservationRepo.GetByID(ctx, id)
			if err != nil {
				return reservationLookupErr(err)
			}
			room, err := s.lockRoom(ctx, tx, r.RoomID)
			if err != nil {
				return err
			}

			fields, err := apply(ctx, tx, r, room)
			if err != nil {
				return err
			}
			if actorID > 0 {
				fields["updated_by"] = actorID
			}
			if err := reservationRepo.UpdateIfVersion(ctx, id, r.Version, fields); err != nil {
				return err
			}

			updated, err := reservationRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if updated.Room, err = s.roomRepo.WithTx(tx).GetByID(ctx, r.RoomID); err != nil {
				return err
			}
			result = updated
			return nil
		})
	})
	if err != nil {
		return nil, s.wrapErr(err)
	}

	s.logTransition(ctx, "预订状态已变更", result, actorID)
	s.publish(ctx, eventForStatus(result.Status), result, actorID)
	return result, nil
}

// Delete 软删除预订，仅终态预订可删除
func (s *Service) Delete(ctx context.Context, id, actorID int64) (err error) {
	ctx, done := s.begin(ctx, opDelete, tracing.WithReservationID(id))
	defer func() { done(err) }()

	var deleted *models.Reservation
	err = s.retry.do(ctx, opDelete, func(int) error {
		r, err := s.reservations.GetByID(ctx, id)
		if err != nil {
			return reservationLookupErr(err)
		}
		if !r.Status.IsTerminal() {
			return errors.ErrReservationNotDeletable.WithData(map[string]interface{}{"status": r.Status})
		}
		if err := s.reservations.SoftDeleteIfVersion(ctx, id, r.Version, actorID); err != nil {
			return err
		}
		deleted = r
		return nil
	})
	if err != nil {
		return s.wrapErr(err)
	}

	s.logTransition(ctx, "预订已删除", deleted, actorID)
	s.publish(ctx, queue.EventReservationDeleted, deleted, actorID)
	return nil
}

// ==================== 查询 ====================

// Get 获取预订详情
func (s *Service) Get(ctx context.Context, id int64) (*models.Reservation, error) {
	r, err := s.reservations.GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, s.wrapErr(reservationLookupErr(err))
	}
	return r, nil
}

// GetByBookingRef 根据预订号获取预订
func (s *Service) GetByBookingRef(ctx context.Context, bookingRef string) (*models.Reservation, error) {
	r, err := s.reservations.GetByBookingRef(ctx, bookingRef)
	if err != nil {
		return nil, s.wrapErr(reservationLookupErr(err))
	}
	return r, nil
}

// List 分页查询预订
func (s *Service) List(ctx context.Context, q *ListQuery) ([]*models.Reservation, int64, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, errors.ErrInvalidParams.WithMessage("无效的预订状态")
	}

	filters := map[string]interface{}{
		"room_id":     q.RoomID,
		"guest_id":    q.GuestID,
		"status":      q.Status,
		"booking_ref": q.BookingRef,
	}
	if q.From != nil {
		filters["from"] = models.NormalizeDate(*q.From)
	}
	if q.To != nil {
		filters["to"] = models.NormalizeDate(*q.To)
	}

	list, total, err := s.reservations.List(ctx, q.Page, q.PageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return list, total, nil
}

// Quote 按房间当前房价报价，同时给出该时段是否可订
func (s *Service) Quote(ctx context.Context, roomID int64, checkIn, checkOut time.Time, discountPercent float64) (*Quote, error) {
	checkIn, checkOut, err := normalizeRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByIDWithType(ctx, roomID)
	if err != nil {
		return nil, s.wrapErr(roomLookupErr(err))
	}
	if room.RoomType == nil {
		return nil, errors.ErrRoomTypeNotFound
	}

	price, err := s.pricing.Calculate(room.RoomType.NightlyRate, checkIn, checkOut, discountPercent)
	if err != nil {
		return nil, err
	}

	conflict, err := s.checker.FindConflict(ctx, room.ID, checkIn, checkOut, 0)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	q := &Quote{
		RoomID:       room.ID,
		RoomNo:       room.RoomNo,
		RoomType:     room.RoomType.Name,
		Capacity:     room.RoomType.Capacity,
		CheckInDate:  checkIn.Format(dateLayout),
		CheckOutDate: checkOut.Format(dateLayout),
		Available:    conflict == nil && room.Status != models.RoomStatusMaintenance,
		Price:        price,
	}
	if conflict != nil {
		q.Conflict = newConflictInfo(conflict)
	}
	return q, nil
}

// SearchAvailableRooms 查询时段内容量满足且无冲突的房间
func (s *Service) SearchAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, partySize int) ([]*AvailableRoom, error) {
	checkIn, checkOut, err := normalizeRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if partySize <= 0 {
		partySize = 1
	}

	rooms, err := s.roomRepo.ListBookableForParty(ctx, partySize)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*AvailableRoom, 0, len(rooms))
	for _, room := range rooms {
		if room.RoomType == nil {
			continue
		}
		conflict, err := s.checker.HasConflict(ctx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if conflict {
			continue
		}
		price, err := s.pricing.Calculate(room.RoomType.NightlyRate, checkIn, checkOut, 0)
		if err != nil {
			return nil, err
		}
		result = append(result, &AvailableRoom{
			RoomID:   room.ID,
			RoomNo:   room.RoomNo,
			Floor:    room.Floor,
			RoomType: room.RoomType.Name,
			Capacity: room.RoomType.Capacity,
			Status:   room.Status,
			Price:    price,
		})
	}
	return result, nil
}

// GetRoom 获取房间（包含房型）
func (s *Service) GetRoom(ctx context.Context, roomID int64) (*models.Room, error) {
	room, err := s.roomRepo.GetByIDWithType(ctx, roomID)
	if err != nil {
		return nil, s.wrapErr(roomLookupErr(err))
	}
	return room, nil
}

// ListRooms 分页查询房态
func (s *Service) ListRooms(ctx context.Context, q *RoomQuery) ([]*models.Room, int64, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, errors.ErrInvalidParams.WithMessage("无效的房间状态")
	}

	filters := map[string]interface{}{
		"room_type_id": q.RoomTypeID,
		"status":       q.Status,
	}
	if q.Floor != nil {
		filters["floor"] = *q.Floor
	}

	rooms, total, err := s.roomRepo.List(ctx, q.Page, q.PageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return rooms, total, nil
}

// CountOccupiedRooms 统计在住房间数并刷新指标
func (s *Service) CountOccupiedRooms(ctx context.Context) (int64, error) {
	count, err := s.roomRepo.CountByStatus(ctx, models.RoomStatusOccupied)
	if err != nil {
		return 0, errors.ErrDatabaseError.WithError(err)
	}
	if s.metrics != nil {
		s.metrics.SetRoomsOccupied(float64(count))
	}
	return count, nil
}

// ExpireStalePending 取消入住日已过宽限期仍未确认的预订，返回取消数量
func (s *Service) ExpireStalePending(ctx context.Context, now time.Time, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	before := models.NormalizeDate(now.Add(-s.opts.PendingExpire))

	stale, err := s.reservations.ListStalePending(ctx, before, batchSize)
	if err != nil {
		return 0, errors.ErrDatabaseError.WithError(err)
	}

	expired := 0
	for _, r := range stale {
		if _, err := s.Cancel(ctx, r.ID, ExpiredCancelReason, 0); err != nil {
			// 期间已被人工确认或取消
			if stderrors.Is(err, errors.ErrInvalidTransition) || stderrors.Is(err, errors.ErrAlreadyCancelled) {
				continue
			}
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// ==================== 内部辅助 ====================

// begin 开启 span 并返回结束回调，回调记录操作结果与耗时
func (s *Service) begin(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	attrs = append(attrs, tracing.WithOperation(operation))
	ctx, span := tracing.StartSpan(ctx, "reservation."+operation, attrs...)

	return ctx, func(err error) {
		if s.metrics != nil {
			s.metrics.RecordOperation(operation, resultLabel(err), time.Since(start))
		}
		tracing.EndSpan(span, err)
	}
}

// resultLabel 将错误归类为指标标签
func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	switch errors.GetAppError(err).Code {
	case errors.ErrRoomUnavailable.Code:
		return "room_unavailable"
	case errors.ErrCapacityExceeded.Code:
		return "capacity_exceeded"
	case errors.ErrInvalidTransition.Code, errors.ErrReservationNotDeletable.Code:
		return "invalid_transition"
	case errors.ErrAlreadyCancelled.Code:
		return "already_cancelled"
	case errors.ErrReservationBusy.Code:
		return "busy"
	case errors.ErrReservationNotFound.Code, errors.ErrRoomNotFound.Code,
		errors.ErrGuestNotFound.Code, errors.ErrRoomTypeNotFound.Code:
		return "not_found"
	case errors.ErrInvalidParams.Code, errors.ErrInvalidDateRange.Code, errors.ErrRoomUnderMaintenance.Code:
		return "rejected"
	}
	return "error"
}

// lockRoom 事务内锁定房间行并加载房型
func (s *Service) lockRoom(ctx context.Context, tx *gorm.DB, roomID int64) (*models.Room, error) {
	rooms, err := s.roomRepo.WithTx(tx).LockByIDs(ctx, roomID)
	if err != nil {
		return nil, roomLookupErr(err)
	}
	room := rooms[roomID]
	if room.RoomType == nil {
		return nil, errors.ErrRoomTypeNotFound
	}
	return room, nil
}

// ensureAvailable 存在重叠的有效预订时返回带冲突信息的 ErrRoomUnavailable
func (s *Service) ensureAvailable(ctx context.Context, repo *repository.ReservationRepository, roomID int64, checkIn, checkOut time.Time, excludeID int64) error {
	conflict, err := s.checker.WithRepo(repo).FindConflict(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if conflict == nil {
		return nil
	}
	if s.metrics != nil {
		s.metrics.RecordConflict()
	}
	logger.Ctx(ctx).Info("房间时段冲突",
		logger.RoomID(roomID),
		logger.BookingRef(conflict.BookingRef),
		logger.String("check_in", checkIn.Format(dateLayout)),
		logger.String("check_out", checkOut.Format(dateLayout)),
	)
	return errors.ErrRoomUnavailable.WithData(newConflictInfo(conflict))
}

// nextBookingRef 生成未被占用的预订号，碰撞时交由重试重新生成
func (s *Service) nextBookingRef(ctx context.Context, repo *repository.ReservationRepository) (string, error) {
	ref, err := s.refGen.Generate()
	if err != nil {
		return "", errors.ErrInternalError.WithError(err)
	}
	exists, err := repo.ExistsByBookingRef(ctx, ref)
	if err != nil {
		return "", err
	}
	if exists {
		return "", gorm.ErrDuplicatedKey
	}
	return ref, nil
}

// publish 提交后投递事件，失败只记录日志
func (s *Service) publish(ctx context.Context, eventType queue.EventType, r *models.Reservation, actorID int64) {
	err := s.publisher.Publish(ctx, queue.NewReservationEvent(eventType, r, actorID))
	result := "ok"
	if err != nil {
		result = "error"
		logger.Ctx(ctx).Warn("预订事件投递失败",
			logger.String("type", string(eventType)),
			logger.ReservationID(r.ID),
			logger.Err(err),
		)
	}
	if s.metrics != nil {
		s.metrics.RecordEvent(string(eventType), result)
	}
}

func (s *Service) logTransition(ctx context.Context, msg string, r *models.Reservation, actorID int64) {
	logger.Ctx(ctx).Info(msg,
		logger.ReservationID(r.ID),
		logger.BookingRef(r.BookingRef),
		logger.RoomID(r.RoomID),
		logger.Status(string(r.Status)),
		logger.ActorID(actorID),
	)
}

// wrapErr 业务错误原样返回，其余归为数据库错误
func (s *Service) wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	return errors.ErrDatabaseError.WithError(err)
}

// eventForStatus 流转后状态对应的事件类型
func eventForStatus(status models.ReservationStatus) queue.EventType {
	switch status {
	case models.ReservationStatusPending:
		return queue.EventReservationModified
	case models.ReservationStatusConfirmed:
		return queue.EventReservationConfirmed
	case models.ReservationStatusCheckedIn:
		return queue.EventReservationCheckedIn
	case models.ReservationStatusCheckedOut:
		return queue.EventReservationCheckedOut
	case models.ReservationStatusCancelled:
		return queue.EventReservationCancelled
	}
	return queue.EventReservationModified
}

// normalizeRange 截断为日历日并校验至少一晚
func normalizeRange(checkIn, checkOut time.Time) (time.Time, time.Time, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return time.Time{}, time.Time{}, errors.ErrInvalidParams.WithMessage("请提供入住与离店日期")
	}
	in, out := models.NormalizeDate(checkIn), models.NormalizeDate(checkOut)
	if !out.After(in) {
		return time.Time{}, time.Time{}, errors.ErrInvalidDateRange.WithMessage("离店日期必须晚于入住日期")
	}
	return in, out, nil
}

func checkCapacity(room *models.Room, partySize int) error {
	if partySize > room.RoomType.Capacity {
		return errors.ErrCapacityExceeded.WithData(map[string]interface{}{
			"capacity":   room.RoomType.Capacity,
			"party_size": partySize,
		})
	}
	return nil
}

func applyPrice(r *models.Reservation, price *PriceBreakdown) {
	r.RoomRate = price.NightlyRate
	r.Nights = price.Nights
	r.DiscountPercent = price.DiscountPercent
	r.Subtotal = price.Subtotal
	r.DiscountAmount = price.Discount
	r.TaxAmount = price.Tax
	r.TotalPrice = price.Total
}

func invalidTransition(r *models.Reservation, msg string) error {
	err := errors.ErrInvalidTransition.WithData(map[string]interface{}{"status": r.Status})
	if msg != "" {
		err = err.WithMessage(msg)
	}
	return err
}

func reservationLookupErr(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrReservationNotFound
	}
	return err
}

func roomLookupErr(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrRoomNotFound
	}
	return err
}
