// Package main 是应用程序入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dumeirei/hotel-backoffice/internal/common/cache"
	"github.com/dumeirei/hotel-backoffice/internal/common/config"
	"github.com/dumeirei/hotel-backoffice/internal/common/database"
	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
	"github.com/dumeirei/hotel-backoffice/internal/common/tracing"
	"github.com/dumeirei/hotel-backoffice/internal/models"
	"github.com/dumeirei/hotel-backoffice/internal/queue"
)

const version = "1.0.0"

// @title Hotel Backoffice API
// @version 1.0
// @description 酒店后台预订与房态接口
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	// 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.GetLogger()

	log.Info("Starting Hotel Backoffice",
		zap.String("version", version),
		zap.String("env", cfg.Server.Mode),
	)

	// 初始化链路追踪
	tracer, err := tracing.Init(context.Background(), &tracing.Config{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Server.Mode,
		Endpoint:       cfg.Tracing.Endpoint,
		SampleRate:     cfg.Tracing.SampleRate,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		log.Fatal("Failed to init tracing", zap.Error(err))
	}

	// 初始化数据库连接
	db, err := database.Init(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(models.AllModels()...); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Redis 可选，未启用时房间锁退化为进程内锁
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = cache.Open(pingCtx, &cfg.Redis)
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("Redis connected successfully")
	}

	// 预订事件发布
	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.Messaging.Enabled {
		amqpPublisher, err := queue.NewAMQPPublisher(&cfg.Messaging)
		if err != nil {
			log.Fatal("Failed to connect to message broker", zap.Error(err))
		}
		publisher = amqpPublisher
		log.Info("Message broker connected", zap.String("exchange", cfg.Messaging.Exchange))
	}
	defer publisher.Close()

	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case config.ModeProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.ModeTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 设置路由与后台任务
	app := setupRouter(engine, cfg, log, db, redisClient, publisher)
	app.scheduler.Start()

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 在 goroutine 中启动服务器
	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	app.scheduler.Stop()

	if err := tracer.Shutdown(ctx); err != nil {
		log.Warn("Tracer shutdown failed", zap.Error(err))
	}

	// 关闭数据库连接
	if err := database.Close(db); err != nil {
		log.Warn("Database close failed", zap.Error(err))
	}

	log.Info("Server exited")
}
