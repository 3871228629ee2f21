package middleware

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/pkg/response"
	"CommandCenter/internal/pkg/security"
	"CommandCenter/internal/service"
	"context"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserToucher 请求通过鉴权后同步用户记录
type UserToucher interface {
	Touch(ctx context.Context, actor dto.Actor)
}

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(users UserToucher) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Fail(c, response.Unauthorized, service.ErrUnauthorized.Error())
			return
		}

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, service.ErrUnauthorized.Error())
			return
		}

		value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
		if err != nil {
			log.ErrorContext(c.Request.Context(), "check token blacklist failed", "err", err)
			response.Fail(c, response.InternalServerError, service.UnExpectedError.Error())
			return
		}
		if value != "" {
			response.Fail(c, response.Unauthorized, service.ErrUnauthorized.Error())
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, service.ErrUnauthorized.Error())
			return
		}

		role := claims.EffectiveRole()
		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("role", role)
		c.Set("roles", []string{role})
		c.Set("claims", claims)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.Subject)
		c.Request = c.Request.WithContext(newCtx)

		if users != nil {
			users.Touch(newCtx, dto.Actor{UserID: claims.Subject, Email: claims.Email, Role: role})
		}

		c.Next()
	}
}

// bearerToken 浏览器无法为 websocket 设置请求头，升级请求允许通过 query 传递 token
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if authHeader == "" && strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return c.Query("token")
	}
	return ""
}

// CurrentActor 读取鉴权中间件写入的操作人
func CurrentActor(c *gin.Context) dto.Actor {
	return dto.Actor{
		UserID: c.GetString("user_id"),
		Email:  c.GetString("email"),
		Role:   c.GetString("role"),
	}
}
