package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeMaintainer struct {
	mu       sync.Mutex
	batches  []int
	calls    int
	occupied int64
	err      error
}

func (f *fakeMaintainer) ExpireStalePending(_ context.Context, _ time.Time, batchSize int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	if f.calls >= len(f.batches) {
		return 0, nil
	}
	n := f.batches[f.calls]
	f.calls++
	if n > batchSize {
		n = batchSize
	}
	return n, nil
}

func (f *fakeMaintainer) CountOccupiedRooms(context.Context) (int64, error) {
	return f.occupied, f.err
}

func TestTaskHandler_ExpireStalePending(t *testing.T) {
	t.Run("按批次处理直到不足一批", func(t *testing.T) {
		m := &fakeMaintainer{batches: []int{2, 2, 1}}
		h := NewTaskHandler(m, zap.NewNop())
		h.batchSize = 2

		require.NoError(t, h.ExpireStalePending(context.Background()))
		assert.Equal(t, 3, m.calls)
	})

	t.Run("无过期预订", func(t *testing.T) {
		m := &fakeMaintainer{}
		h := NewTaskHandler(m, nil)

		require.NoError(t, h.ExpireStalePending(context.Background()))
		assert.Equal(t, 0, m.calls)
	})

	t.Run("错误透传", func(t *testing.T) {
		m := &fakeMaintainer{err: errors.New("db down")}
		h := NewTaskHandler(m, nil)

		assert.Error(t, h.ExpireStalePending(context.Background()))
		assert.Error(t, h.RefreshOccupancy(context.Background()))
	})
}

func TestScheduler_RunsAndStops(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScheduler(zap.New(core))

	var runs atomic.Int32
	s.AddTask("tick", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	s.AddTask("broken", time.Hour, func(context.Context) error {
		return errors.New("boom")
	})
	s.AddTask("panicky", time.Hour, func(context.Context) error {
		panic("nil room")
	})
	s.AddTask("ignored", 0, func(context.Context) error {
		t.Error("间隔为 0 的任务不应执行")
		return nil
	})

	s.Start()
	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()

	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())

	assert.Equal(t, 2, logs.FilterMessage("任务执行失败").Len())
	assert.Equal(t, 1, logs.FilterMessage("任务间隔无效，已跳过").Len())
}

func TestTaskHandler_Register(t *testing.T) {
	m := &fakeMaintainer{occupied: 3}
	h := NewTaskHandler(m, nil)
	s := NewScheduler(nil)

	h.Register(s, time.Minute, time.Minute)
	require.Len(t, s.tasks, 2)
	assert.Equal(t, "expire_stale_pending", s.tasks[0].Name)
	assert.Equal(t, "refresh_occupancy", s.tasks[1].Name)
	assert.NoError(t, s.tasks[1].Handler(context.Background()))
}
