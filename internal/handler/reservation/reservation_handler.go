// Package reservation 提供预订与房态相关的 HTTP Handler
package reservation

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-backoffice/internal/common/handler"
	"github.com/dumeirei/hotel-backoffice/internal/common/qrcode"
	"github.com/dumeirei/hotel-backoffice/internal/common/response"
	"github.com/dumeirei/hotel-backoffice/internal/models"
	reservationService "github.com/dumeirei/hotel-backoffice/internal/service/reservation"
)

// Handler 预订处理器
type Handler struct {
	service *reservationService.Service
	qr      *qrcode.Generator
}

// NewHandler 创建预订处理器
func NewHandler(svc *reservationService.Service) *Handler {
	return &Handler{
		service: svc,
		qr:      qrcode.NewGenerator(qrcode.WithHighRecovery()),
	}
}

// CreateRequest 创建预订请求
type CreateRequest struct {
	GuestID         int64   `json:"guest_id" binding:"required"`
	RoomID          int64   `json:"room_id" binding:"required"`
	CheckInDate     string  `json:"check_in_date" binding:"required"`
	CheckOutDate    string  `json:"check_out_date" binding:"required"`
	PartySize       int     `json:"party_size" binding:"required,min=1"`
	Source          string  `json:"source"`
	DiscountPercent float64 `json:"discount_percent" binding:"min=0,max=100"`
	SpecialRequests *string `json:"special_requests" binding:"omitempty,max=1000"`
}

// ModifyRequest 修改预订请求，未提供的字段保持不变
type ModifyRequest struct {
	RoomID          *int64   `json:"room_id"`
	CheckInDate     *string  `json:"check_in_date"`
	CheckOutDate    *string  `json:"check_out_date"`
	PartySize       *int     `json:"party_size" binding:"omitempty,min=1"`
	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	SpecialRequests *string  `json:"special_requests" binding:"omitempty,max=1000"`
}

// CancelRequest 取消预订请求
type CancelRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// Create 创建预订
// @Summary 创建预订
// @Tags 预订
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations [post]
func (h *Handler) Create(c *gin.Context) {
	staffID, ok := handler.RequireStaffID(c)
	if !ok {
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	checkIn, checkOut, ok := parseRange(c, req.CheckInDate, req.CheckOutDate)
	if !ok {
		return
	}

	reservation, err := h.service.Create(c.Request.Context(), staffID, &reservationService.CreateInput{
		GuestID:         req.GuestID,
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		PartySize:       req.PartySize,
		Source:          models.ReservationSource(req.Source),
		DiscountPercent: req.DiscountPercent,
		SpecialRequests: req.SpecialRequests,
	})
	handler.MustSucceedWithMessage(c, err, "预订成功", reservation)
}

// List 获取预订列表
// @Summary 获取预订列表
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param room_id query int false "房间ID"
// @Param guest_id query int false "客人ID"
// @Param status query string false "状态"
// @Param booking_ref query string false "预订号"
// @Param from query string false "起始日期 YYYY-MM-DD"
// @Param to query string false "截止日期 YYYY-MM-DD"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/reservations [get]
func (h *Handler) List(c *gin.Context) {
	roomID, ok := handler.ParseQueryID(c, "room_id", "房间")
	if !ok {
		return
	}
	guestID, ok := handler.ParseQueryID(c, "guest_id", "客人")
	if !ok {
		return
	}
	from, ok := handler.ParseQueryDate(c, "from")
	if !ok {
		return
	}
	to, ok := handler.ParseQueryDate(c, "to")
	if !ok {
		return
	}
	p := handler.BindPagination(c)

	query := &reservationService.ListQuery{
		Status:     models.ReservationStatus(c.Query("status")),
		BookingRef: strings.TrimSpace(c.Query("booking_ref")),
		From:       from,
		To:         to,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
	if roomID != nil {
		query.RoomID = *roomID
	}
	if guestID != nil {
		query.GuestID = *guestID
	}

	list, total, err := h.service.List(c.Request.Context(), query)
	handler.MustSucceedPage(c, err, list, total, p.Page, p.PageSize)
}

// Get 获取预订详情
// @Summary 获取预订详情
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.service.Get(c.Request.Context(), id)
	handler.MustSucceed(c, err, reservation)
}

// GetByBookingRef 根据预订号获取预订
// @Summary 根据预订号获取预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param booking_ref path string true "预订号"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/ref/{booking_ref} [get]
func (h *Handler) GetByBookingRef(c *gin.Context) {
	ref := strings.ToUpper(strings.TrimSpace(c.Param("booking_ref")))
	if ref == "" {
		response.BadRequest(c, "预订号不能为空")
		return
	}

	reservation, err := h.service.GetByBookingRef(c.Request.Context(), ref)
	handler.MustSucceed(c, err, reservation)
}

// QRCode 获取预订凭证二维码
// @Summary 获取预订凭证二维码
// @Tags 预订
// @Produce png
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Param format query string false "png 或 data_url" default(png)
// @Success 200 {file} binary
// @Router /api/v1/reservations/{id}/qrcode [get]
func (h *Handler) QRCode(c *gin.Context) {
	id, ok := handler.ParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.service.Get(c.Request.Context(), id)
	if handler.HandleError(c, err) {
		return
	}

	if c.Query("format") == "data_url" {
		url, err := h.qr.BookingDataURL(reservation.BookingRef)
		if err != nil {
			response.InternalError(c, "生成二维码失败")
			return
		}
		response.Success(c, gin.H{"booking_ref": reservation.BookingRef, "qrcode": url})
		return
	}

	data, err := h.qr.BookingPNG(reservation.BookingRef)
	if err != nil {
		response.InternalError(c, "生成二维码失败")
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

// Scan 根据扫码内容查找预订
// @Summary 前台扫码查找预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param content query string true "二维码内容"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/scan [get]
func (h *Handler) Scan(c *gin.Context) {
	ref, err := qrcode.ParsePayload(c.Query("content"))
	if err != nil {
		response.BadRequest(c, "无效的预订二维码")
		return
	}

	reservation, err := h.service.GetByBookingRef(c.Request.Context(), ref)
	handler.MustSucceed(c, err, reservation)
}

// Modify 修改预订
// @Summary 修改预订
// @Tags 预订
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Param request body ModifyRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id} [patch]
func (h *Handler) Modify(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}

	var req ModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	in := &reservationService.ModifyInput{
		RoomID:          req.RoomID,
		PartySize:       req.PartySize,
		DiscountPercent: req.DiscountPercent,
		SpecialRequests: req.SpecialRequests,
	}
	if req.CheckInDate != nil {
		t, err := handler.ParseDate(*req.CheckInDate)
		if handler.HandleError(c, err) {
			return
		}
		in.CheckIn = &t
	}
	if req.CheckOutDate != nil {
		t, err := handler.ParseDate(*req.CheckOutDate)
		if handler.HandleError(c, err) {
			return
		}
		in.CheckOut = &t
	}

	reservation, err := h.service.Modify(c.Request.Context(), id, staffID, in)
	handler.MustSucceedWithMessage(c, err, "修改成功", reservation)
}

// Confirm 确认预订
// @Summary 确认待确认预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id}/confirm [post]
func (h *Handler) Confirm(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.service.Confirm(c.Request.Context(), id, staffID)
	handler.MustSucceedWithMessage(c, err, "确认成功", reservation)
}

// CheckIn 办理入住
// @Summary 办理入住
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id}/check-in [post]
func (h *Handler) CheckIn(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.service.CheckIn(c.Request.Context(), id, staffID)
	handler.MustSucceedWithMessage(c, err, "入住成功", reservation)
}

// CheckOut 办理退房
// @Summary 办理退房
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id}/check-out [post]
func (h *Handler) CheckOut(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.service.CheckOut(c.Request.Context(), id, staffID)
	handler.MustSucceedWithMessage(c, err, "退房成功", reservation)
}

// Cancel 取消预订
// @Summary 取消预订
// @Tags 预订
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Param request body CancelRequest false "取消原因"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/{id}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}

	var req CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "参数错误")
			return
		}
	}

	reservation, err := h.service.Cancel(c.Request.Context(), id, strings.TrimSpace(req.Reason), staffID)
	handler.MustSucceedWithMessage(c, err, "取消成功", reservation)
}

// Delete 删除预订
// @Summary 删除已结束的预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response
// @Router /api/v1/reservations/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	staffID, id, ok := handler.RequireStaffAndParseID(c, "预订")
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), id, staffID)
	handler.MustSucceedWithMessage(c, err, "删除成功", nil)
}

// parseRange 解析入住与离店日期，失败时已写入响应
func parseRange(c *gin.Context, checkIn, checkOut string) (time.Time, time.Time, bool) {
	in, err := handler.ParseDate(checkIn)
	if handler.HandleError(c, err) {
		return time.Time{}, time.Time{}, false
	}
	out, err := handler.ParseDate(checkOut)
	if handler.HandleError(c, err) {
		return time.Time{}, time.Time{}, false
	}
	return in, out, true
}
