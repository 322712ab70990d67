package reservation

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-backoffice/internal/common/handler"
	"github.com/dumeirei/hotel-backoffice/internal/common/response"
	"github.com/dumeirei/hotel-backoffice/internal/models"
	reservationService "github.com/dumeirei/hotel-backoffice/internal/service/reservation"
)

// ListRooms 房态列表
// @Summary 获取房态列表
// @Tags 房间
// @Produce json
// @Security Bearer
// @Param status query string false "房间状态"
// @Param room_type_id query int false "房型ID"
// @Param floor query int false "楼层"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	roomTypeID, ok := handler.ParseQueryID(c, "room_type_id", "房型")
	if !ok {
		return
	}
	query := &reservationService.RoomQuery{
		Status: models.RoomStatus(c.Query("status")),
	}
	if roomTypeID != nil {
		query.RoomTypeID = *roomTypeID
	}
	if f := c.Query("floor"); f != "" {
		floor, err := strconv.Atoi(f)
		if err != nil {
			response.BadRequest(c, "无效的楼层")
			return
		}
		query.Floor = &floor
	}
	p := handler.BindPagination(c)
	query.Page, query.PageSize = p.Page, p.PageSize

	rooms, total, err := h.service.ListRooms(c.Request.Context(), query)
	handler.MustSucceedPage(c, err, rooms, total, p.Page, p.PageSize)
}

// SearchAvailable 查询可订房间
// @Summary 查询时段内可订房间
// @Tags 房间
// @Produce json
// @Security Bearer
// @Param check_in query string true "入住日期 YYYY-MM-DD"
// @Param check_out query string true "离店日期 YYYY-MM-DD"
// @Param party_size query int false "入住人数"
// @Success 200 {object} response.Response{data=[]reservationService.AvailableRoom}
// @Router /api/v1/rooms/availability [get]
func (h *Handler) SearchAvailable(c *gin.Context) {
	checkIn, ok := handler.ParseRequiredQueryDate(c, "check_in")
	if !ok {
		return
	}
	checkOut, ok := handler.ParseRequiredQueryDate(c, "check_out")
	if !ok {
		return
	}
	partySize, err := strconv.Atoi(c.DefaultQuery("party_size", "1"))
	if err != nil || partySize < 1 {
		response.BadRequest(c, "无效的入住人数")
		return
	}

	rooms, err := h.service.SearchAvailableRooms(c.Request.Context(), checkIn, checkOut, partySize)
	handler.MustSucceed(c, err, rooms)
}

// GetRoom 获取房间详情
// @Summary 获取房间详情
// @Tags 房间
// @Produce json
// @Security Bearer
// @Param id path int true "房间ID"
// @Success 200 {object} response.Response{data=models.Room}
// @Router /api/v1/rooms/{id} [get]
func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), id)
	handler.MustSucceed(c, err, room)
}

// Quote 房费报价
// @Summary 按当前房价报价
// @Tags 房间
// @Produce json
// @Security Bearer
// @Param id path int true "房间ID"
// @Param check_in query string true "入住日期 YYYY-MM-DD"
// @Param check_out query string true "离店日期 YYYY-MM-DD"
// @Param discount_percent query number false "折扣百分比"
// @Success 200 {object} response.Response{data=reservationService.Quote}
// @Router /api/v1/rooms/{id}/quote [get]
func (h *Handler) Quote(c *gin.Context) {
	id, ok := handler.ParseID(c, "房间")
	if !ok {
		return
	}
	checkIn, ok := handler.ParseRequiredQueryDate(c, "check_in")
	if !ok {
		return
	}
	checkOut, ok := handler.ParseRequiredQueryDate(c, "check_out")
	if !ok {
		return
	}
	discount, err := strconv.ParseFloat(c.DefaultQuery("discount_percent", "0"), 64)
	if err != nil {
		response.BadRequest(c, "无效的折扣")
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), id, checkIn, checkOut, discount)
	handler.MustSucceed(c, err, quote)
}
