package handler

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/api/middleware"
	"CommandCenter/internal/pkg/response"
	"CommandCenter/internal/service"

	"github.com/gin-gonic/gin"
)

type IdeaHandler struct {
	generationService service.GenerationService
}

func NewIdeaHandler(generationService service.GenerationService) *IdeaHandler {
	return &IdeaHandler{
		generationService: generationService,
	}
}

// Generate 创建选题并生成大纲
func (s *IdeaHandler) Generate(c *gin.Context) {
	var req dto.OutlineRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	// 选题生成不接受外部关联
	req.IdeaID, req.PostID = nil, nil

	res, err := s.generationService.GenerateIdea(c.Request.Context(), middleware.CurrentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// List 当前用户的选题
func (s *IdeaHandler) List(c *gin.Context) {
	var query dto.IdeaListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.generationService.ListIdeas(c.Request.Context(), middleware.CurrentActor(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
