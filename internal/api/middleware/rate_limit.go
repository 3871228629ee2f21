package middleware

import (
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/pkg/response"
	"CommandCenter/internal/service"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit 按客户端 IP 做固定窗口限流，redis 不可用时放行
func RateLimit(prefix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		count, err := redis.IncrWithin(c.Request.Context(), prefix+c.ClientIP(), window)
		if err != nil {
			log.WarnContext(c.Request.Context(), "rate limit check failed", "err", err)
			c.Next()
			return
		}
		if count > int64(limit) {
			c.Header("Retry-After", "60")
			response.Fail(c, response.TooManyRequests, service.ErrRateLimited.Error())
			return
		}

		c.Next()
	}
}
