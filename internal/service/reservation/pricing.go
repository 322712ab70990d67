package reservation

import (
	"math"
	"time"

	"github.com/dumeirei/hotel-backoffice/internal/common/errors"
	"github.com/dumeirei/hotel-backoffice/internal/models"
)

// PriceBreakdown 价格明细
type PriceBreakdown struct {
	NightlyRate     float64 `json:"nightly_rate"`
	Nights          int     `json:"nights"`
	DiscountPercent float64 `json:"discount_percent"`
	Subtotal        float64 `json:"subtotal"`
	Discount        float64 `json:"discount"`
	Tax             float64 `json:"tax"`
	Total           float64 `json:"total"`
}

// PricingCalculator 房费计算器
// 无状态，税率与币种精度在创建时固定
type PricingCalculator struct {
	taxRate   float64
	precision int
}

// NewPricingCalculator 创建房费计算器
func NewPricingCalculator(taxRate float64, precision int) *PricingCalculator {
	if precision < 0 {
		precision = 0
	}
	return &PricingCalculator{taxRate: taxRate, precision: precision}
}

// Calculate 计算 [checkIn, checkOut) 的房费
// 总价由未取整的折扣与税额计算后再按币种精度四舍五入，明细各项单独取整用于展示
func (p *PricingCalculator) Calculate(nightlyRate float64, checkIn, checkOut time.Time, discountPercent float64) (*PriceBreakdown, error) {
	if nightlyRate < 0 || math.IsNaN(nightlyRate) || math.IsInf(nightlyRate, 0) {
		return nil, errors.ErrInvalidParams.WithMessage("房价无效")
	}
	if discountPercent < 0 || discountPercent > 100 || math.IsNaN(discountPercent) {
		return nil, errors.ErrInvalidParams.WithMessage("折扣比例须在 0-100 之间")
	}

	nights := Nights(checkIn, checkOut)
	if nights < 1 {
		return nil, errors.ErrInvalidDateRange.WithMessage("至少需要入住一晚")
	}

	subtotal := float64(nights) * nightlyRate
	discount := subtotal * discountPercent / 100
	tax := (subtotal - discount) * p.taxRate

	return &PriceBreakdown{
		NightlyRate:     nightlyRate,
		Nights:          nights,
		DiscountPercent: discountPercent,
		Subtotal:        p.round(subtotal),
		Discount:        p.round(discount),
		Tax:             p.round(tax),
		Total:           p.round(subtotal - discount + tax),
	}, nil
}

// TaxRate 返回税率
func (p *PricingCalculator) TaxRate() float64 {
	return p.taxRate
}

// round 按币种最小单位四舍五入
func (p *PricingCalculator) round(v float64) float64 {
	scale := math.Pow10(p.precision)
	return math.Round(v*scale) / scale
}

// Nights 计算晚数，忽略时分秒，不足一天按一天计
func Nights(checkIn, checkOut time.Time) int {
	days := models.NormalizeDate(checkOut).Sub(models.NormalizeDate(checkIn)).Hours() / 24
	return int(math.Ceil(days))
}
