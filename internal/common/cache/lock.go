package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotAcquired 在等待期内未能获得锁
var ErrLockNotAcquired = errors.New("cache: lock not acquired")

// unlockScript 仅当持有者令牌匹配时删除锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker 基于 SET NX PX 的互斥锁
type Locker struct {
	client        *redis.Client
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
}

// NewLocker 创建分布式锁
// ttl 为锁自动过期时间，wait 为获取锁的最长等待时间
func NewLocker(client *redis.Client, ttl, wait time.Duration) *Locker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Locker{
		client:        client,
		ttl:           ttl,
		wait:          wait,
		retryInterval: 20 * time.Millisecond,
	}
}

// Acquire 获取锁，返回持有者令牌
func (l *Locker) Acquire(ctx context.Context, key string) (string, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}
		if !time.Now().Before(deadline) {
			return "", ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
}

// Release 释放锁，令牌不匹配时不做任何事
func (l *Locker) Release(ctx context.Context, key, token string) error {
	return unlockScript.Run(ctx, l.client, []string{key}, token).Err()
}
