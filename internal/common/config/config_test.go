// Package config 配置管理单元测试
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== Load 测试 ====================

func TestLoad_WithDefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "hotel-backoffice", cfg.Server.Name)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoad_WithConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")

	configContent := `
server:
  name: "test-server"
  port: 9000
business:
  hotel:
    tax_rate: 0.08
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "test-server", cfg.Server.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 0.08, cfg.Business.Hotel.TaxRate)
	// 文件未配置的项沿用默认值
	assert.Equal(t, "HTL", cfg.Business.Hotel.BookingRefPrefix)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOTEL_SERVER_PORT", "9100")
	t.Setenv("HOTEL_BUSINESS_HOTEL_BOOKING_REF_PREFIX", "RSV")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "RSV", cfg.Business.Hotel.BookingRefPrefix)
}

func TestLoad_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server: [\n"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoad_InvalidBusinessConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad_tax.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("business:\n  hotel:\n    tax_rate: 1.5\n"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tax_rate")
}

// ==================== DatabaseConfig 测试 ====================

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name   string
		config DatabaseConfig
		want   string
	}{
		{
			name: "postgres",
			config: DatabaseConfig{
				Driver:   "postgres",
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "secret",
				Name:     "hotel",
				SSLMode:  "disable",
				Timezone: "UTC",
			},
			want: "host=localhost port=5432 user=postgres password=secret dbname=hotel sslmode=disable TimeZone=UTC",
		},
		{
			name: "mysql",
			config: DatabaseConfig{
				Driver:   "mysql",
				Host:     "db.example.com",
				Port:     3306,
				User:     "root",
				Password: "p@ss",
				Name:     "hotel",
			},
			want: "root:p@ss@tcp(db.example.com:3306)/hotel?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name:   "sqlite",
			config: DatabaseConfig{Driver: "sqlite", Name: "./data/hotel.db"},
			want:   "./data/hotel.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.DSN())
		})
	}
}

// ==================== RedisConfig 测试 ====================

func TestRedisConfig_Addr(t *testing.T) {
	config := RedisConfig{Host: "redis.example.com", Port: 6380}
	assert.Equal(t, "redis.example.com:6380", config.Addr())
}

// ==================== 时长换算测试 ====================

func TestDurations(t *testing.T) {
	t.Run("访问令牌有效期", func(t *testing.T) {
		config := JWTConfig{AccessTokenExpire: 12}
		assert.Equal(t, 12*time.Hour, config.AccessTokenDuration())
	})

	t.Run("消息发布超时", func(t *testing.T) {
		config := MessagingConfig{PublishTimeout: 5}
		assert.Equal(t, 5*time.Second, config.PublishTimeoutDuration())
	})

	t.Run("房间锁时长", func(t *testing.T) {
		config := HotelConfig{LockTTL: 10, LockWait: 3, PendingExpireHours: 24, ExpireInterval: 10}
		assert.Equal(t, 10*time.Second, config.LockTTLDuration())
		assert.Equal(t, 3*time.Second, config.LockWaitDuration())
		assert.Equal(t, 24*time.Hour, config.PendingExpireDuration())
		assert.Equal(t, 10*time.Minute, config.ExpireIntervalDuration())
	})
}

// ==================== 校验测试 ====================

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"默认配置", func(c *Config) {}, ""},
		{"税率为负", func(c *Config) { c.Business.Hotel.TaxRate = -0.1 }, "tax_rate"},
		{"精度过大", func(c *Config) { c.Business.Hotel.CurrencyPrecision = 6 }, "currency_precision"},
		{"预订号前缀为空", func(c *Config) { c.Business.Hotel.BookingRefPrefix = " " }, "booking_ref_prefix"},
		{"重试次数为负", func(c *Config) { c.Business.Hotel.MaxRetries = -1 }, "max_retries"},
		{"不支持的驱动", func(c *Config) { c.Database.Driver = "oracle" }, "oracle"},
		{"生产环境默认密钥", func(c *Config) { c.Server.Mode = ModeProduction }, "jwt.secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Server: ServerConfig{Mode: ModeProduction}}).IsProduction())
	assert.False(t, (&Config{Server: ServerConfig{Mode: ModeDebug}}).IsProduction())
}

// ==================== 默认值测试 ====================

func loadDefaults(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load("")
	require.NoError(t, err)
	return cfg
}

func TestHotelConfig_Defaults(t *testing.T) {
	cfg := loadDefaults(t)

	assert.Equal(t, 0.10, cfg.Business.Hotel.TaxRate)
	assert.Equal(t, 2, cfg.Business.Hotel.CurrencyPrecision)
	assert.Equal(t, "HTL", cfg.Business.Hotel.BookingRefPrefix)
	assert.True(t, cfg.Business.Hotel.AutoConfirm)
	assert.Equal(t, 3, cfg.Business.Hotel.MaxRetries)
	assert.Equal(t, 24, cfg.Business.Hotel.PendingExpireHours)
}

func TestMessagingConfig_Defaults(t *testing.T) {
	cfg := loadDefaults(t)

	assert.False(t, cfg.Messaging.Enabled)
	assert.Equal(t, "reservation.events", cfg.Messaging.Exchange)
	assert.NotEmpty(t, cfg.Messaging.URL)
}

func TestConfig_AllFieldsPopulated(t *testing.T) {
	cfg := loadDefaults(t)

	assert.NotEmpty(t, cfg.Server.Name)
	assert.NotZero(t, cfg.Server.Port)
	assert.NotEmpty(t, cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Redis.Host)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.NotZero(t, cfg.JWT.AccessTokenExpire)
	assert.NotEmpty(t, cfg.Logger.Level)
	assert.Contains(t, cfg.CORS.AllowedMethods, "PATCH")
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
}
