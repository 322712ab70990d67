// Package handler 提供 API Handler 的通用辅助函数
// 统一错误响应、操作员检查、路径与查询参数解析
package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-backoffice/internal/common/errors"
	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
	"github.com/dumeirei/hotel-backoffice/internal/common/response"
	"github.com/dumeirei/hotel-backoffice/internal/common/utils"
	"github.com/dumeirei/hotel-backoffice/internal/middleware"
)

// ============================================================================
// 统一错误处理
// ============================================================================

// HandleError 处理错误并发送适当的响应
// err 为 nil 返回 false；否则写入错误响应并返回 true，调用方应直接 return
//
// 使用示例:
//
//	result, err := service.DoSomething(ctx)
//	if handler.HandleError(c, err) {
//	    return
//	}
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	appErr := errors.GetAppError(err)
	status := errors.HTTPStatus(appErr)
	if status >= 500 {
		// 内部错误细节只进日志
		logger.Ctx(c.Request.Context()).Error("请求处理失败",
			logger.Path(c.FullPath()),
			logger.Err(err),
		)
	}

	response.ErrorWithStatus(c, status, appErr.Code, appErr.Message, appErr.Data)
	return true
}

// MustSucceed 有错误返回错误响应，否则返回成功响应
// 调用后必须 return
func MustSucceed(c *gin.Context, err error, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.Success(c, data)
}

// MustSucceedWithMessage 带自定义成功消息
func MustSucceedWithMessage(c *gin.Context, err error, message string, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.SuccessWithMessage(c, message, data)
}

// MustSucceedPage 分页响应版本
func MustSucceedPage(c *gin.Context, err error, list interface{}, total int64, page, pageSize int) {
	if HandleError(c, err) {
		return
	}
	response.SuccessPage(c, list, total, page, pageSize)
}

// ============================================================================
// 操作员检查
// ============================================================================

// RequireStaffID 获取当前操作员工 ID，未登录时返回 401
//
//	staffID, ok := handler.RequireStaffID(c)
//	if !ok {
//	    return
//	}
func RequireStaffID(c *gin.Context) (int64, bool) {
	staffID := middleware.GetStaffID(c)
	if staffID == 0 {
		response.Unauthorized(c, "请先登录")
		return 0, false
	}
	return staffID, true
}

// ============================================================================
// ID 参数解析
// ============================================================================

// ParseID 解析路径参数 "id" 为正整数
func ParseID(c *gin.Context, resourceName string) (int64, bool) {
	return ParseParamID(c, "id", resourceName)
}

// ParseParamID 解析指定路径参数为正整数，失败时返回 400
func ParseParamID(c *gin.Context, paramName, resourceName string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "无效的"+resourceName+"ID")
		return 0, false
	}
	return id, true
}

// ParseQueryID 解析可选的查询参数 ID
// 参数为空返回 (nil, true)，解析失败返回 (nil, false) 且已发送 400
func ParseQueryID(c *gin.Context, paramName, resourceName string) (*int64, bool) {
	idStr := c.Query(paramName)
	if idStr == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "无效的"+resourceName+"ID")
		return nil, false
	}
	return &id, true
}

// RequireStaffAndParseID 组合：检查登录 + 解析路径 ID
func RequireStaffAndParseID(c *gin.Context, resourceName string) (staffID, resourceID int64, ok bool) {
	staffID, ok = RequireStaffID(c)
	if !ok {
		return 0, 0, false
	}
	resourceID, ok = ParseID(c, resourceName)
	if !ok {
		return 0, 0, false
	}
	return staffID, resourceID, true
}

// ============================================================================
// 日期解析
// ============================================================================

// DateFormat 入住/离店日期格式
const DateFormat = "2006-01-02"

// ParseDate 解析 YYYY-MM-DD，结果为 UTC 零点
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.ErrInvalidParams.WithMessage("日期格式应为 YYYY-MM-DD")
	}
	return t, nil
}

// ParseQueryDate 从查询参数解析可选日期
// 参数为空返回 (nil, true)，解析失败返回 (nil, false) 且已发送 400
func ParseQueryDate(c *gin.Context, paramName string) (*time.Time, bool) {
	s := c.Query(paramName)
	if s == "" {
		return nil, true
	}
	t, err := ParseDate(s)
	if err != nil {
		response.BadRequest(c, "无效的日期参数: "+paramName)
		return nil, false
	}
	return &t, true
}

// ParseRequiredQueryDate 从查询参数解析必填日期
func ParseRequiredQueryDate(c *gin.Context, paramName string) (time.Time, bool) {
	if c.Query(paramName) == "" {
		response.BadRequest(c, "请提供日期参数: "+paramName)
		return time.Time{}, false
	}
	t, ok := ParseQueryDate(c, paramName)
	if !ok {
		return time.Time{}, false
	}
	return *t, true
}

// ============================================================================
// 分页
// ============================================================================

// BindPagination 从查询参数绑定并规范化分页参数
// 默认 page=1, page_size=10, 最大 page_size=100
func BindPagination(c *gin.Context) utils.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return utils.NewPagination(page, pageSize)
}
