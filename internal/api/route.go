package api

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/api/middleware"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const localMediaPath = "/uploads"

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(config.Cfg.Server.AllowOrigins))
	logger.SetupGin(r)

	if group.LocalMedia != nil {
		r.StaticFS(localMediaPath, group.LocalMedia)
	}

	auth := middleware.AuthMiddleware(group.Users)
	staff := middleware.CheckRoles(consts.RoleAdmin, consts.RoleEditor)
	adminOnly := middleware.CheckRoles(consts.RoleAdmin)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		// 公开的线索表单，按 IP 限流
		apiGroup.POST("/leads",
			middleware.RateLimit(consts.LeadRateLimitKey, config.Cfg.Server.LeadRateLimit, time.Minute),
			group.LeadHandler.Capture)

		authGroup := apiGroup.Group("/auth")
		authGroup.Use(auth)
		{
			authGroup.POST("/logout", group.AuthHandler.Logout)
		}

		ideaGroup := apiGroup.Group("/ideas")
		ideaGroup.Use(auth)
		{
			ideaGroup.POST("/generate", group.IdeaHandler.Generate)
			ideaGroup.GET("/generate", group.IdeaHandler.List)
		}

		aiGroup := apiGroup.Group("/ai")
		aiGroup.Use(auth)
		{
			aiGroup.POST("/outline", group.AIHandler.GenerateOutline)
			aiGroup.GET("/outline", group.AIHandler.ListOutlines)
			aiGroup.POST("/outline/choose", group.AIHandler.ChooseOutline)
			aiGroup.GET("/outline/choose", group.AIHandler.PendingOutlines)

			aiGroup.POST("/facts", group.AIHandler.GenerateFacts)
			aiGroup.GET("/facts", group.AIHandler.ListFacts)
			aiGroup.POST("/facts/approve", group.AIHandler.ApproveFacts)
			aiGroup.GET("/facts/approve", group.AIHandler.PendingFacts)

			aiGroup.POST("/tasks", group.AIHandler.RunTask)
			aiGroup.GET("/artifacts/:id", group.AIHandler.GetArtifact)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(auth)
		{
			mediaGroup.GET("", group.MediaHandler.List)
			mediaGroup.POST("", group.MediaHandler.Upload)
			mediaGroup.GET("/providers", group.MediaHandler.Providers)
			mediaGroup.GET("/:id/url", group.MediaHandler.GetURL)
			mediaGroup.DELETE("", staff, group.MediaHandler.Delete)
		}

		// 需要登录 & 拥有 ADMIN 或 EDITOR 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(auth, staff)
		{
			adminGroup.GET("/dashboard", group.DashboardHandler.Overview)
			adminGroup.GET("/health", group.DashboardHandler.Health)

			adminGroup.GET("/posts", group.PostHandler.List)
			adminGroup.POST("/posts", group.PostHandler.Create)
			adminGroup.PUT("/posts/:id", group.PostHandler.Update)
			adminGroup.DELETE("/posts/:id", adminOnly, group.PostHandler.Delete)

			adminGroup.GET("/leads", adminOnly, group.LeadHandler.List)
			adminGroup.GET("/leads/export", adminOnly, group.LeadHandler.Export)
			adminGroup.PUT("/leads/:id", adminOnly, group.LeadHandler.Update)

			adminGroup.GET("/notifications", group.SysBoxHandler.GetNotificationList)
			adminGroup.GET("/notifications/unread", group.SysBoxHandler.GetUnreadCount)
			adminGroup.POST("/notifications/read", group.SysBoxHandler.MarkRead)
			adminGroup.POST("/notifications/read/all", group.SysBoxHandler.MarkAllRead)

			adminGroup.GET("/ws", group.WsHandler.Connect)
		}
	}

	return r
}
