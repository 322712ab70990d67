package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dumeirei/hotel-backoffice/internal/common/cache"
	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
	"github.com/dumeirei/hotel-backoffice/internal/common/response"
)

// StaffRateLimit 按员工固定窗口限流，未登录时按 IP 计数
// Redis 不可用时放行，限流不能影响前台办理入住
func StaffRateLimit(client *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rateLimitKey(c)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Ctx(ctx).Warn("限流计数失败，放行请求", logger.Err(err))
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		remaining := limit - int(count)
		if remaining >= 0 {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			c.Next()
			return
		}

		ttl, _ := client.TTL(ctx, key).Result()
		if ttl <= 0 {
			ttl = window
		}
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
		response.TooManyRequests(c, "请求过于频繁，请稍后再试")
	}
}

func rateLimitKey(c *gin.Context) string {
	if staffID := GetStaffID(c); staffID > 0 {
		return cache.BuildKey(cache.KeyPrefixRateLimit, "staff", strconv.FormatInt(staffID, 10))
	}
	return cache.BuildKey(cache.KeyPrefixRateLimit, "ip", c.ClientIP())
}
