// Package main 是应用程序入口
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const readyCheckTimeout = 3 * time.Second

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Timestamp int64             `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// dependencyCheck 就绪检查项，ping 为 nil 表示未启用
type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

func databaseCheck(db *gorm.DB) dependencyCheck {
	return dependencyCheck{name: "database", ping: func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}
}

func redisCheck(client *redis.Client) dependencyCheck {
	check := dependencyCheck{name: "redis"}
	if client != nil {
		check.ping = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}
	return check
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   version,
		Timestamp: time.Now().Unix(),
	})
}

func pingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// readyHandler 就绪检查，数据库不可用时前台无法办理业务
func readyHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	checks := []dependencyCheck{databaseCheck(db), redisCheck(redisClient)}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyCheckTimeout)
		defer cancel()

		resp := HealthResponse{
			Status:    "ready",
			Version:   version,
			Timestamp: time.Now().Unix(),
			Checks:    make(map[string]string, len(checks)),
		}
		status := http.StatusOK

		for _, check := range checks {
			if check.ping == nil {
				resp.Checks[check.name] = "disabled"
				continue
			}
			if err := check.ping(ctx); err != nil {
				resp.Checks[check.name] = "error: " + err.Error()
				resp.Status = "not ready"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[check.name] = "ok"
		}

		c.JSON(status, resp)
	}
}
