// Package logger 提供结构化日志功能
package logger

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dumeirei/hotel-backoffice/internal/common/config"
)

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// Init 按配置初始化全局日志器
// output: stdout | file | both，file 模式需要 file_path
func Init(cfg *config.LoggerConfig) error {
	core := zapcore.NewCore(newEncoder(cfg.Format), newWriter(cfg), parseLevel(cfg.Level))

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Caller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	SetLogger(zap.New(core, opts...))
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	ec.EncodeDuration = zapcore.MillisDurationEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func newWriter(cfg *config.LoggerConfig) zapcore.WriteSyncer {
	toFile := cfg.FilePath != "" && (cfg.Output == "file" || cfg.Output == "both")
	toStdout := !toFile || cfg.Output == "both"

	var writers []zapcore.WriteSyncer
	if toStdout {
		writers = append(writers, zapcore.Lock(os.Stdout))
	}
	if toFile {
		writers = append(writers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}))
	}
	return zapcore.NewMultiWriteSyncer(writers...)
}

// parseLevel 无法识别的级别按 info 处理
func parseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil || level == "" {
		return zapcore.InfoLevel
	}
	return l
}

// SetLogger 替换全局日志器，测试中配合 zaptest/observer 使用
func SetLogger(l *zap.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
}

// GetLogger 获取全局日志器，未初始化时使用开发模式
func GetLogger() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log, _ = zap.NewDevelopment()
	}
	return log
}

// Sync 刷新缓冲区
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if log == nil {
		return nil
	}
	return log.Sync()
}

// Debug 调试日志
func Debug(msg string, fields ...zap.Field) { GetLogger().Debug(msg, fields...) }

// Info 信息日志
func Info(msg string, fields ...zap.Field) { GetLogger().Info(msg, fields...) }

// Warn 警告日志
func Warn(msg string, fields ...zap.Field) { GetLogger().Warn(msg, fields...) }

// Error 错误日志
func Error(msg string, fields ...zap.Field) { GetLogger().Error(msg, fields...) }

// Named 返回命名日志器
func Named(name string) *zap.Logger {
	return GetLogger().Named(name)
}

type requestIDKey struct{}

// WithRequestID 将请求 ID 写入 context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext 从 context 读取请求 ID
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Ctx 返回携带请求 ID 的日志器
func Ctx(ctx context.Context) *zap.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return GetLogger().With(RequestID(id))
	}
	return GetLogger()
}
