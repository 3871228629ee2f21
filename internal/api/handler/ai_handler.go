package handler

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/api/middleware"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/response"
	"CommandCenter/internal/service"

	"github.com/gin-gonic/gin"
)

// AIHandler AI 产出物的生成与人工审核
type AIHandler struct {
	generationService service.GenerationService
	reviewService     service.ReviewService
}

func NewAIHandler(generationService service.GenerationService, reviewService service.ReviewService) *AIHandler {
	return &AIHandler{
		generationService: generationService,
		reviewService:     reviewService,
	}
}

func (s *AIHandler) GenerateOutline(c *gin.Context) {
	var req dto.OutlineRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.generationService.GenerateOutline(c.Request.Context(), middleware.CurrentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AIHandler) ListOutlines(c *gin.Context) {
	s.listArtifacts(c, model.ArtifactOutline, "outlines")
}

// ChooseOutline 通过或驳回大纲
func (s *AIHandler) ChooseOutline(c *gin.Context) {
	var req dto.OutlineChoiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.reviewService.ChooseOutline(c.Request.Context(), middleware.CurrentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AIHandler) PendingOutlines(c *gin.Context) {
	s.pendingQueue(c, model.ArtifactOutline, "pendingOutlines")
}

func (s *AIHandler) GenerateFacts(c *gin.Context) {
	var req dto.FactsRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.generationService.GenerateFacts(c.Request.Context(), middleware.CurrentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AIHandler) ListFacts(c *gin.Context) {
	s.listArtifacts(c, model.ArtifactFacts, "facts")
}

// ApproveFacts 逐条审核事实
func (s *AIHandler) ApproveFacts(c *gin.Context) {
	var req dto.FactsApprovalDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.reviewService.ApproveFacts(c.Request.Context(), middleware.CurrentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AIHandler) PendingFacts(c *gin.Context) {
	s.pendingQueue(c, model.ArtifactFacts, "pendingFacts")
}

func (s *AIHandler) GetArtifact(c *gin.Context) {
	res, err := s.reviewService.GetArtifact(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// RunTask 正文、SEO、摘要等其余任务
func (s *AIHandler) RunTask(c *gin.Context) {
	var req dto.TaskRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.generationService.RunTask(c.Request.Context(), middleware.CurrentActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AIHandler) listArtifacts(c *gin.Context, artifactType model.ArtifactType, key string) {
	var query dto.ArtifactListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	list, err := s.reviewService.ListArtifacts(c.Request.Context(), middleware.CurrentActor(c), artifactType, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{key: list})
}

func (s *AIHandler) pendingQueue(c *gin.Context, artifactType model.ArtifactType, key string) {
	queue, err := s.reviewService.PendingQueue(c.Request.Context(), middleware.CurrentActor(c), artifactType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		key:     queue.Artifacts,
		"count": queue.Count,
	})
}
