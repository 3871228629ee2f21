package handler

import (
	"CommandCenter/internal/pkg/response"
	"CommandCenter/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	healthService    service.HealthService
}

func NewDashboardHandler(dashboardService service.DashboardService, healthService service.HealthService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		healthService:    healthService,
	}
}

func (s *DashboardHandler) Overview(c *gin.Context) {
	res, err := s.dashboardService.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Health 最近一次健康快照，?refresh=true 时实时探测
func (s *DashboardHandler) Health(c *gin.Context) {
	if c.Query("refresh") == "true" {
		response.Success(c, s.healthService.Refresh(c.Request.Context()))
		return
	}
	response.Success(c, s.healthService.Snapshot(c.Request.Context()))
}
