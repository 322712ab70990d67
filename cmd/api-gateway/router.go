// Package main 是应用程序入口
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-backoffice/docs"
	"github.com/dumeirei/hotel-backoffice/internal/common/cache"
	"github.com/dumeirei/hotel-backoffice/internal/common/config"
	"github.com/dumeirei/hotel-backoffice/internal/common/jwt"
	"github.com/dumeirei/hotel-backoffice/internal/common/metrics"
	"github.com/dumeirei/hotel-backoffice/internal/common/response"
	reservationHandler "github.com/dumeirei/hotel-backoffice/internal/handler/reservation"
	"github.com/dumeirei/hotel-backoffice/internal/middleware"
	"github.com/dumeirei/hotel-backoffice/internal/queue"
	"github.com/dumeirei/hotel-backoffice/internal/repository"
	"github.com/dumeirei/hotel-backoffice/internal/scheduler"
	reservationService "github.com/dumeirei/hotel-backoffice/internal/service/reservation"
)

// application 路由装配产生的需要随进程启停的组件
type application struct {
	scheduler *scheduler.Scheduler
}

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	publisher queue.Publisher,
) *application {
	hotelCfg := &cfg.Business.Hotel

	// 创建 JWT 管理器
	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:           cfg.JWT.Secret,
		AccessExpireTime: cfg.JWT.AccessTokenDuration(),
		Issuer:           cfg.JWT.Issuer,
	})

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.Init("hotel")
	}

	// 初始化仓储
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// 房间锁：多实例部署依赖 Redis
	var locker reservationService.RoomLocker
	if redisClient != nil {
		locker = reservationService.NewRedisRoomLocker(
			cache.NewLocker(redisClient, hotelCfg.LockTTLDuration(), hotelCfg.LockWaitDuration()),
		)
	} else {
		locker = reservationService.NewLocalRoomLocker(hotelCfg.LockWaitDuration())
	}

	// 初始化服务
	reservationSvc := reservationService.NewService(db, roomRepo, guestRepo, reservationRepo,
		locker, publisher, m, reservationService.OptionsFromConfig(hotelCfg))

	// 定时任务
	sched := scheduler.NewScheduler(logger)
	tasks := scheduler.NewTaskHandler(reservationSvc, logger)
	tasks.Register(sched, hotelCfg.ExpireIntervalDuration(), time.Minute)

	// 初始化处理器
	reservationH := reservationHandler.NewHandler(reservationSvc)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORSFromConfig(&cfg.CORS))
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName, "/health", "/ready", "/ping"))
	}
	if m != nil {
		r.Use(m.Middleware())
	}
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.RequestSizeLimiter(1 << 20))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	if m != nil {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, metrics.Handler())
	}

	// Swagger 文档
	if !cfg.IsProduction() {
		docs.SwaggerInfo.Version = version
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// API v1 路由组，全部接口需要员工认证
	v1 := r.Group("/api/v1")
	v1.Use(middleware.StaffAuth(jwtManager))
	if cfg.RateLimit.Enabled && redisClient != nil {
		v1.Use(middleware.StaffRateLimit(redisClient, cfg.RateLimit.RequestsPerSecond, time.Second))
	}
	{
		reservationH.RegisterRoutes(v1, middleware.RequireManager())
	}

	return &application{scheduler: sched}
}
