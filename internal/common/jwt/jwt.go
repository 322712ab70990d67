// Package jwt 提供员工访问令牌的签发与校验
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 员工角色
const (
	RoleFrontDesk = "front_desk"
	RoleManager   = "manager"
)

// ValidRole 判断角色是否受支持
func ValidRole(role string) bool {
	return role == RoleFrontDesk || role == RoleManager
}

// Claims 员工令牌声明，Subject 为员工 ID
type Claims struct {
	StaffID int64  `json:"staff_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Config JWT 配置
type Config struct {
	Secret           string
	AccessExpireTime time.Duration
	Issuer           string
}

// 预定义错误
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenNotActive = errors.New("token not active yet")
)

// Manager 签发与校验员工令牌
type Manager struct {
	config *Config
	parser *jwt.Parser
}

// NewManager 创建 JWT 管理器，仅接受 HS256 签名
func NewManager(config *Config) *Manager {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(5 * time.Second),
	}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}
	return &Manager{config: config, parser: jwt.NewParser(opts...)}
}

// GenerateAccessToken 生成访问令牌，返回令牌与过期时间戳
func (m *Manager) GenerateAccessToken(staffID int64, role string) (string, int64, error) {
	if !ValidRole(role) {
		return "", 0, fmt.Errorf("unknown staff role %q", role)
	}

	now := time.Now()
	expireAt := now.Add(m.config.AccessExpireTime)
	claims := &Claims{
		StaffID: staffID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   strconv.FormatInt(staffID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expireAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.config.Secret))
	return signed, expireAt.Unix(), err
}

// ParseToken 校验令牌并返回声明
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(m.config.Secret), nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return nil, ErrTokenNotActive
	default:
		return nil, ErrTokenInvalid
	}

	if !ValidRole(claims.Role) || claims.Subject != strconv.FormatInt(claims.StaffID, 10) {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
