// Package response 提供统一的 API 响应格式
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// gin 上下文键
const (
	ContextKeyRequestID = "request_id"
	// ContextKeyBizCode 非零业务码，供访问日志记录
	ContextKeyBizCode = "biz_code"
)

// Response API 统一响应结构
// 业务错误使用 HTTP 200 + 非零 code，只有协议层错误才改变 HTTP 状态码
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// PageData 分页数据结构
type PageData struct {
	List     interface{} `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// 协议层错误的默认提示
var defaultMessages = map[int]string{
	http.StatusBadRequest:          "请求参数错误",
	http.StatusUnauthorized:        "未登录或登录已过期",
	http.StatusForbidden:           "权限不足",
	http.StatusNotFound:            "接口不存在",
	http.StatusTooManyRequests:     "请求过于频繁",
	http.StatusInternalServerError: "服务器内部错误",
}

func write(c *gin.Context, status, code int, message string, data interface{}) {
	if code != 0 {
		c.Set(ContextKeyBizCode, code)
	}
	c.JSON(status, Response{
		Code:      code,
		Message:   message,
		Data:      data,
		RequestID: c.GetString(ContextKeyRequestID),
	})
}

// abortStatus 以 HTTP 状态码作为业务码输出并中止后续处理
func abortStatus(c *gin.Context, status int, message string) {
	if message == "" {
		message = defaultMessages[status]
	}
	write(c, status, status, message, nil)
	c.Abort()
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, 0, "success", data)
}

// SuccessWithMessage 成功响应（带消息）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, 0, message, data)
}

// SuccessPage 分页成功响应
func SuccessPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	write(c, http.StatusOK, 0, "success", PageData{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// ErrorWithStatus 错误响应（指定 HTTP 状态码）
func ErrorWithStatus(c *gin.Context, status, code int, message string, data interface{}) {
	write(c, status, code, message, data)
}

// BadRequest 请求参数错误
func BadRequest(c *gin.Context, message string) {
	abortStatus(c, http.StatusBadRequest, message)
}

// Unauthorized 未授权
func Unauthorized(c *gin.Context, message string) {
	abortStatus(c, http.StatusUnauthorized, message)
}

// Forbidden 禁止访问
func Forbidden(c *gin.Context, message string) {
	abortStatus(c, http.StatusForbidden, message)
}

// NotFound 路由不存在
func NotFound(c *gin.Context, message string) {
	abortStatus(c, http.StatusNotFound, message)
}

// InternalError 服务器内部错误
func InternalError(c *gin.Context, message string) {
	abortStatus(c, http.StatusInternalServerError, message)
}

// TooManyRequests 请求过于频繁
func TooManyRequests(c *gin.Context, message string) {
	abortStatus(c, http.StatusTooManyRequests, message)
}
