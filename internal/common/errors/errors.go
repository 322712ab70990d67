// Package errors 定义业务错误码和错误处理
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError 应用错误
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Err     error       `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使 errors.Is(err, ErrXxx) 对派生出的错误同样成立
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Data:    e.Data,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Data:    e.Data,
		Err:     err,
	}
}

// WithData 附加返回给调用方的上下文数据
func (e *AppError) WithData(data interface{}) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Data:    data,
		Err:     e.Err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, "未知错误")
	ErrInvalidParams   = New(1001, "参数错误")
	ErrNotFound        = New(1002, "资源不存在")
	ErrAlreadyExists   = New(1003, "资源已存在")
	ErrDatabaseError   = New(1004, "数据库错误")
	ErrCacheError      = New(1005, "缓存错误")
	ErrInternalError   = New(1006, "内部错误")
	ErrExternalService = New(1007, "外部服务错误")
	ErrRateLimitExceed = New(1008, "请求过于频繁")
	ErrOperationFailed = New(1009, "操作失败")
)

// 认证错误码 (2000-2999)
var (
	ErrUnauthorized     = New(2000, "未登录")
	ErrTokenExpired     = New(2001, "登录已过期")
	ErrTokenInvalid     = New(2002, "无效的令牌")
	ErrPermissionDenied = New(2004, "权限不足")
)

// 预订错误码 (8000-8999)
var (
	ErrReservationNotFound     = New(8000, "预订不存在")
	ErrInvalidTransition       = New(8001, "预订状态不允许该操作")
	ErrRoomUnavailable         = New(8002, "房间在该时段已被预订")
	ErrAlreadyCancelled        = New(8003, "预订已取消")
	ErrCapacityExceeded        = New(8004, "入住人数超过房型容量")
	ErrReservationBusy         = New(8005, "系统繁忙，请稍后重试")
	ErrInvalidDateRange        = New(8006, "无效的入住日期区间")
	ErrRoomNotFound            = New(8007, "房间不存在")
	ErrGuestNotFound           = New(8008, "客人不存在")
	ErrRoomTypeNotFound        = New(8009, "房型不存在")
	ErrReservationNotDeletable = New(8010, "仅已退房或已取消的预订可删除")
	ErrRoomUnderMaintenance    = New(8011, "房间维护中")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrUnknown.WithError(err)
}

// HTTPStatus 返回错误对应的 HTTP 状态码
// 业务错误沿用 200 + 业务码，基础设施错误返回 5xx
func HTTPStatus(err *AppError) int {
	switch err.Code {
	case ErrUnauthorized.Code, ErrTokenExpired.Code, ErrTokenInvalid.Code:
		return http.StatusUnauthorized
	case ErrPermissionDenied.Code:
		return http.StatusForbidden
	case ErrRateLimitExceed.Code:
		return http.StatusTooManyRequests
	case ErrReservationBusy.Code:
		return http.StatusServiceUnavailable
	case ErrUnknown.Code, ErrDatabaseError.Code, ErrCacheError.Code, ErrInternalError.Code, ErrExternalService.Code:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
