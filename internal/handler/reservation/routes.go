package reservation

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册预订与房间路由
// staff 组需已挂载员工认证，manager 为删除等敏感操作追加的中间件
func (h *Handler) RegisterRoutes(staff *gin.RouterGroup, manager ...gin.HandlerFunc) {
	reservations := staff.Group("/reservations")
	{
		reservations.POST("", h.Create)
		reservations.GET("", h.List)
		reservations.GET("/ref/:booking_ref", h.GetByBookingRef)
		reservations.GET("/scan", h.Scan)
		reservations.GET("/:id", h.Get)
		reservations.GET("/:id/qrcode", h.QRCode)
		reservations.PATCH("/:id", h.Modify)
		reservations.POST("/:id/confirm", h.Confirm)
		reservations.POST("/:id/check-in", h.CheckIn)
		reservations.POST("/:id/check-out", h.CheckOut)
		reservations.POST("/:id/cancel", h.Cancel)
		reservations.DELETE("/:id", append(manager, h.Delete)...)
	}

	rooms := staff.Group("/rooms")
	{
		rooms.GET("", h.ListRooms)
		rooms.GET("/availability", h.SearchAvailable)
		rooms.GET("/:id", h.GetRoom)
		rooms.GET("/:id/quote", h.Quote)
	}
}
