package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReservationMaintainer 定时任务依赖的预订服务能力
type ReservationMaintainer interface {
	ExpireStalePending(ctx context.Context, now time.Time, batchSize int) (int, error)
	CountOccupiedRooms(ctx context.Context) (int64, error)
}

// TaskHandler 任务处理器
type TaskHandler struct {
	reservations ReservationMaintainer
	log          *zap.Logger
	batchSize    int
	now          func() time.Time
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(reservations ReservationMaintainer, log *zap.Logger) *TaskHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskHandler{
		reservations: reservations,
		log:          log.Named("task"),
		batchSize:    100,
		now:          time.Now,
	}
}

// ExpireStalePending 取消超过宽限期仍待确认的预订，按批次处理直到清空
func (h *TaskHandler) ExpireStalePending(ctx context.Context) error {
	total := 0
	for {
		n, err := h.reservations.ExpireStalePending(ctx, h.now(), h.batchSize)
		total += n
		if err != nil {
			return err
		}
		if n < h.batchSize {
			break
		}
	}

	if total > 0 {
		h.log.Info("已取消过期待确认预订", zap.Int("count", total))
	}
	return nil
}

// RefreshOccupancy 刷新在住房间数指标
func (h *TaskHandler) RefreshOccupancy(ctx context.Context) error {
	_, err := h.reservations.CountOccupiedRooms(ctx)
	return err
}

// Register 将预订相关任务注册到调度器
func (h *TaskHandler) Register(s *Scheduler, expireInterval, occupancyInterval time.Duration) {
	s.AddTask("expire_stale_pending", expireInterval, h.ExpireStalePending)
	s.AddTask("refresh_occupancy", occupancyInterval, h.RefreshOccupancy)
}
