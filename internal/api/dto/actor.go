package dto

import "CommandCenter/internal/pkg/consts"

// Actor 当前请求的操作人
type Actor struct {
	UserID string
	Email  string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == consts.RoleAdmin
}

// CanAccess 本人或管理员
func (a Actor) CanAccess(ownerID string) bool {
	return a.UserID == ownerID || a.IsAdmin()
}
