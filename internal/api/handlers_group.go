package api

import (
	"CommandCenter/internal/api/handler"
	"CommandCenter/internal/api/middleware"
	"net/http"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	IdeaHandler      *handler.IdeaHandler
	AIHandler        *handler.AIHandler
	MediaHandler     *handler.MediaHandler
	PostHandler      *handler.PostHandler
	LeadHandler      *handler.LeadHandler
	DashboardHandler *handler.DashboardHandler
	SysBoxHandler    *handler.SysBoxHandler
	WsHandler        *handler.WsHandler
	AuthHandler      *handler.AuthHandler

	// Users 鉴权通过后同步用户
	Users middleware.UserToucher
	// LocalMedia 本地 provider 的静态文件，未启用时为 nil
	LocalMedia http.FileSystem
}
