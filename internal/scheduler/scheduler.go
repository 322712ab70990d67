// Package scheduler 提供定时任务调度
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// 单次执行的超时上限，超过间隔时以间隔为准
const maxTaskTimeout = 5 * time.Minute

// TaskFunc 任务处理函数
type TaskFunc func(ctx context.Context) error

// Task 定时任务
type Task struct {
	Name     string
	Interval time.Duration
	Handler  TaskFunc
}

// Scheduler 按固定间隔运行后台任务，每个任务一个 goroutine，同一任务不会并发执行
type Scheduler struct {
	tasks []*Task
	log   *zap.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewScheduler 创建调度器
func NewScheduler(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		log:    log.Named("scheduler"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddTask 添加任务，需在 Start 之前调用；interval 不大于 0 的任务被忽略
func (s *Scheduler) AddTask(name string, interval time.Duration, handler TaskFunc) {
	if interval <= 0 {
		s.log.Warn("任务间隔无效，已跳过", zap.String("task", name))
		return
	}
	s.tasks = append(s.tasks, &Task{Name: name, Interval: interval, Handler: handler})
}

// Start 启动全部任务，重复调用无效果
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		s.log.Info("调度器启动", zap.Int("tasks", len(s.tasks)))
		for _, task := range s.tasks {
			s.wg.Add(1)
			go s.loop(task)
		}
	})
}

// Stop 取消运行中的任务并等待退出
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
		s.log.Info("调度器已停止")
	})
}

func (s *Scheduler) loop(task *Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	// 启动后立即执行一次
	for {
		s.run(task)
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) run(task *Task) {
	ctx, cancel := context.WithTimeout(s.ctx, min(task.Interval, maxTaskTimeout))
	defer cancel()

	log := s.log.With(zap.String("task", task.Name))
	start := time.Now()
	if err := safeCall(ctx, task.Handler); err != nil {
		log.Error("任务执行失败", zap.Error(err), zap.Duration("latency", time.Since(start)))
		return
	}
	log.Debug("任务执行完成", zap.Duration("latency", time.Since(start)))
}

// safeCall 执行任务，panic 转为错误，避免单个任务拖垮进程
func safeCall(ctx context.Context, fn TaskFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panic: %v", r)
		}
	}()
	return fn(ctx)
}
