// Package qrcode 生成预订凭证二维码，前台扫码即可定位预订
package qrcode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// 预订凭证内容前缀
const payloadPrefix = "HTLRES:"

// Generator 二维码生成器
type Generator struct {
	size  int
	level qrcode.RecoveryLevel
}

// Option 生成器选项
type Option func(*Generator)

// WithSize 设置二维码边长（像素）
func WithSize(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.size = size
		}
	}
}

// WithHighRecovery 使用 25% 纠错，适合打印后可能污损的入住卡
func WithHighRecovery() Option {
	return func(g *Generator) {
		g.level = qrcode.High
	}
}

// NewGenerator 创建二维码生成器
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		size:  256,
		level: qrcode.Medium,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Payload 返回预订号对应的二维码内容
func Payload(bookingRef string) string {
	return payloadPrefix + bookingRef
}

// ParsePayload 从扫码内容中取回预订号
func ParsePayload(content string) (string, error) {
	ref, ok := strings.CutPrefix(strings.TrimSpace(content), payloadPrefix)
	if !ok || ref == "" {
		return "", fmt.Errorf("无法识别的预订二维码: %q", content)
	}
	return ref, nil
}

// BookingPNG 生成预订凭证 PNG
func (g *Generator) BookingPNG(bookingRef string) ([]byte, error) {
	if bookingRef == "" {
		return nil, fmt.Errorf("预订号为空")
	}
	data, err := qrcode.Encode(Payload(bookingRef), g.level, g.size)
	if err != nil {
		return nil, fmt.Errorf("创建二维码失败: %w", err)
	}
	return data, nil
}

// BookingDataURL 生成 Data URL 形式的预订凭证，便于前端直接嵌入
func (g *Generator) BookingDataURL(bookingRef string) (string, error) {
	data, err := g.BookingPNG(bookingRef)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
