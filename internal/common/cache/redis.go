// Package cache 提供 Redis 客户端和分布式锁
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dumeirei/hotel-backoffice/internal/common/config"
)

// 缓存键前缀
const (
	KeyPrefixRateLimit = "hotel:ratelimit:"
	KeyPrefixRoomLock  = "hotel:lock:room:"
)

// Open 创建 Redis 客户端并在 ctx 期限内确认连通
func Open(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	seconds := func(n int) time.Duration { return time.Duration(n) * time.Second }

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  seconds(cfg.DialTimeout),
		ReadTimeout:  seconds(cfg.ReadTimeout),
		WriteTimeout: seconds(cfg.WriteTimeout),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// BuildKey 以冒号拼接缓存键
func BuildKey(prefix string, parts ...string) string {
	return prefix + strings.Join(parts, ":")
}
