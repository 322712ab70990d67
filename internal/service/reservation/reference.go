package reservation

import (
	"crypto/rand"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	base36Alphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	refSuffixLength = 6
)

// BookingReferenceGenerator 预订号生成器
// 格式 <PREFIX>-<base36 毫秒时间戳>-<6 位随机 base36>，唯一性由数据库唯一索引兜底
type BookingReferenceGenerator struct {
	prefix string
	now    func() time.Time
	random io.Reader
}

// NewBookingReferenceGenerator 创建预订号生成器
func NewBookingReferenceGenerator(prefix string) *BookingReferenceGenerator {
	if prefix == "" {
		prefix = "HTL"
	}
	return &BookingReferenceGenerator{
		prefix: strings.ToUpper(prefix),
		now:    time.Now,
		random: rand.Reader,
	}
}

// Generate 生成预订号
func (g *BookingReferenceGenerator) Generate() (string, error) {
	suffix, err := g.randomSuffix()
	if err != nil {
		return "", err
	}
	ts := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))
	return g.prefix + "-" + ts + "-" + suffix, nil
}

// randomSuffix 生成随机后缀，拒绝采样避免取模偏差
func (g *BookingReferenceGenerator) randomSuffix() (string, error) {
	const limit = 256 - 256%len(base36Alphabet)

	out := make([]byte, 0, refSuffixLength)
	buf := make([]byte, refSuffixLength*2)
	for len(out) < refSuffixLength {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, base36Alphabet[int(b)%len(base36Alphabet)])
			if len(out) == refSuffixLength {
				break
			}
		}
	}
	return string(out), nil
}
