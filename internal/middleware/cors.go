package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-backoffice/internal/common/config"
)

var (
	defaultCORSMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	defaultCORSHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization", headerRequestID,
	}
	defaultCORSExposed = []string{
		headerRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After",
	}
)

// CORSFromConfig 跨域中间件，未配置的项使用前台系统的默认值
// AllowedOrigins 为空或为 ["*"] 时允许任意源
func CORSFromConfig(cfg *config.CORSConfig) gin.HandlerFunc {
	if cfg == nil {
		cfg = &config.CORSConfig{}
	}
	pick := func(v, def []string) string {
		if len(v) == 0 {
			v = def
		}
		return strings.Join(v, ", ")
	}

	origins := cfg.AllowedOrigins
	anyOrigin := len(origins) == 0 || slices.Contains(origins, "*")
	methods := pick(cfg.AllowedMethods, defaultCORSMethods)
	headers := pick(cfg.AllowedHeaders, defaultCORSHeaders)
	exposed := pick(cfg.ExposedHeaders, defaultCORSExposed)
	maxAge := ""
	if cfg.MaxAge > 0 {
		maxAge = strconv.Itoa(cfg.MaxAge)
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (anyOrigin || slices.Contains(origins, origin)) {
			h := c.Writer.Header()
			// 携带凭证时不能返回 *
			if anyOrigin && !cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Expose-Headers", exposed)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if maxAge != "" {
				h.Set("Access-Control-Max-Age", maxAge)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
