package reservation

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dumeirei/hotel-backoffice/internal/common/cache"
	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
	"github.com/dumeirei/hotel-backoffice/internal/common/utils"
)

// RoomLocker 房间级互斥，保证同一房间的可用性检查与写入串行执行
// 数据库行锁仍是最终保障，这里只减少事务内的锁等待与重试
type RoomLocker interface {
	// LockRooms 按 ID 升序锁定房间，返回释放函数
	LockRooms(ctx context.Context, roomIDs ...int64) (release func(), err error)
}

// ==================== 进程内实现 ====================

// LocalRoomLocker 进程内房间锁，适用于单实例部署与测试
type LocalRoomLocker struct {
	mu    sync.Mutex
	slots map[int64]*roomSlot
	wait  time.Duration
}

type roomSlot struct {
	ch   chan struct{}
	refs int
}

// NewLocalRoomLocker 创建进程内房间锁，wait 为单个房间的最长等待时间
func NewLocalRoomLocker(wait time.Duration) *LocalRoomLocker {
	return &LocalRoomLocker{
		slots: make(map[int64]*roomSlot),
		wait:  wait,
	}
}

// LockRooms 实现 RoomLocker
func (l *LocalRoomLocker) LockRooms(ctx context.Context, roomIDs ...int64) (func(), error) {
	ids := utils.SortedUnique(roomIDs)
	held := make([]int64, 0, len(ids))

	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.unlock(held[i])
		}
	}

	for _, id := range ids {
		if err := l.lock(ctx, id); err != nil {
			release()
			return nil, err
		}
		held = append(held, id)
	}
	return release, nil
}

func (l *LocalRoomLocker) lock(ctx context.Context, id int64) error {
	l.mu.Lock()
	slot, ok := l.slots[id]
	if !ok {
		slot = &roomSlot{ch: make(chan struct{}, 1)}
		l.slots[id] = slot
	}
	slot.refs++
	l.mu.Unlock()

	var timeout <-chan time.Time
	if l.wait > 0 {
		timer := time.NewTimer(l.wait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case slot.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.drop(id)
		return ctx.Err()
	case <-timeout:
		l.drop(id)
		return cache.ErrLockNotAcquired
	}
}

func (l *LocalRoomLocker) unlock(id int64) {
	l.mu.Lock()
	slot := l.slots[id]
	l.mu.Unlock()
	if slot == nil {
		return
	}
	<-slot.ch
	l.drop(id)
}

// drop 减少引用计数，无人等待时回收
func (l *LocalRoomLocker) drop(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[id]
	if !ok {
		return
	}
	slot.refs--
	if slot.refs <= 0 {
		delete(l.slots, id)
	}
}

// ==================== Redis 实现 ====================

// RedisRoomLocker 基于 Redis 的跨实例房间锁
type RedisRoomLocker struct {
	locker *cache.Locker
}

// NewRedisRoomLocker 创建 Redis 房间锁
func NewRedisRoomLocker(locker *cache.Locker) *RedisRoomLocker {
	return &RedisRoomLocker{locker: locker}
}

// LockRooms 实现 RoomLocker
func (l *RedisRoomLocker) LockRooms(ctx context.Context, roomIDs ...int64) (func(), error) {
	type heldLock struct {
		key   string
		token string
	}
	held := make([]heldLock, 0, len(roomIDs))

	release := func() {
		// 请求上下文可能已取消，释放使用独立超时
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for i := len(held) - 1; i >= 0; i-- {
			if err := l.locker.Release(releaseCtx, held[i].key, held[i].token); err != nil {
				logger.Warn("释放房间锁失败", logger.String("key", held[i].key), logger.Err(err))
			}
		}
	}

	for _, id := range utils.SortedUnique(roomIDs) {
		key := cache.BuildKey(cache.KeyPrefixRoomLock, strconv.FormatInt(id, 10))
		token, err := l.locker.Acquire(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		held = append(held, heldLock{key: key, token: token})
	}
	return release, nil
}
