package security

import (
	"CommandCenter/internal/pkg/consts"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AppMetadata 身份提供方写入的应用级元数据，角色以此为准
type AppMetadata struct {
	Role string `json:"role,omitempty"`
}

// UserClaims 身份提供方签发的 access token，sub 为用户 ID
type UserClaims struct {
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	AppMetadata AppMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

// EffectiveRole 优先取 app_metadata.role，平台默认角色 authenticated 视为普通用户
func (c *UserClaims) EffectiveRole() string {
	role := c.AppMetadata.Role
	if role == "" {
		role = c.Role
	}
	role = strings.ToUpper(strings.TrimSpace(role))
	switch role {
	case consts.RoleAdmin, consts.RoleEditor:
		return role
	}
	return consts.RoleUser
}
