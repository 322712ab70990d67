package logger

import (
	"time"

	"go.uber.org/zap"
)

// 常用字段构造函数
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Err      = zap.Error
	Duration = zap.Duration
)

// RequestID 请求ID字段
func RequestID(id string) zap.Field { return zap.String("request_id", id) }

// ActorID 操作员工字段
func ActorID(id int64) zap.Field { return zap.Int64("actor_id", id) }

// ReservationID 预订ID字段
func ReservationID(id int64) zap.Field { return zap.Int64("reservation_id", id) }

// BookingRef 预订号字段
func BookingRef(ref string) zap.Field { return zap.String("booking_ref", ref) }

// RoomID 房间ID字段
func RoomID(id int64) zap.Field { return zap.Int64("room_id", id) }

// GuestID 客人ID字段
func GuestID(id int64) zap.Field { return zap.Int64("guest_id", id) }

// Status 预订或房态字段
func Status(status string) zap.Field { return zap.String("status", status) }

// Module 模块字段
func Module(name string) zap.Field { return zap.String("module", name) }

// Action 操作字段
func Action(name string) zap.Field { return zap.String("action", name) }

// HTTP 访问日志字段

func Latency(d time.Duration) zap.Field { return zap.Duration("latency", d) }
func StatusCode(code int) zap.Field     { return zap.Int("status_code", code) }
func Method(method string) zap.Field    { return zap.String("method", method) }
func Path(path string) zap.Field        { return zap.String("path", path) }
func IP(ip string) zap.Field            { return zap.String("ip", ip) }
