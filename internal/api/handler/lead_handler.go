package handler

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/api/middleware"
	"CommandCenter/internal/pkg/response"
	"CommandCenter/internal/service"
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leadService service.LeadService
}

func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// Capture 公开的线索表单
func (s *LeadHandler) Capture(c *gin.Context) {
	var req dto.LeadCaptureDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.leadService.Capture(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *LeadHandler) List(c *gin.Context) {
	var query dto.LeadListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.leadService.ListLeads(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *LeadHandler) Update(c *gin.Context) {
	var req dto.LeadUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.leadService.UpdateLead(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Export 导出 CSV，先写入缓冲区以便出错时仍能返回 JSON
func (s *LeadHandler) Export(c *gin.Context) {
	var query dto.LeadListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var buf bytes.Buffer
	if err := s.leadService.ExportCSV(c.Request.Context(), &query, &buf); err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("leads-export-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
