package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
	"github.com/dumeirei/hotel-backoffice/internal/common/response"
)

// 探针与监控抓取不记访问日志
var defaultSkipPaths = []string{"/health", "/ping", "/ready", "/metrics"}

// AccessLog 访问日志中间件
// 5xx 记 error，4xx 记 warn，业务失败（HTTP 200 + 非零 code）记 info 并带 biz_code
func AccessLog(log *zap.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(defaultSkipPaths)+len(skipPaths))
	for _, p := range append(defaultSkipPaths, skipPaths...) {
		skip[p] = struct{}{}
	}
	log = log.With(logger.Module("http"))

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			logger.RequestID(GetRequestID(c)),
			logger.Method(c.Request.Method),
			logger.Path(path),
			logger.StatusCode(status),
			logger.Latency(time.Since(start)),
			logger.IP(c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if route := c.FullPath(); route != "" && route != path {
			fields = append(fields, zap.String("route", route))
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if staffID := GetStaffID(c); staffID > 0 {
			fields = append(fields, logger.ActorID(staffID))
		}
		if code := c.GetInt(response.ContextKeyBizCode); code != 0 {
			fields = append(fields, zap.Int("biz_code", code))
		}
		if traceID := GetTraceID(c); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("HTTP Request", fields...)
		case status >= 400:
			log.Warn("HTTP Request", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	}
}
