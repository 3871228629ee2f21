package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/util"
	"CommandCenter/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// ReviewService 人工审核 AI 产出物
type ReviewService interface {
	ChooseOutline(ctx context.Context, actor dto.Actor, req *dto.OutlineChoiceDTO) (*dto.ReviewResultDTO, error)
	ApproveFacts(ctx context.Context, actor dto.Actor, req *dto.FactsApprovalDTO) (*dto.ReviewResultDTO, error)
	PendingQueue(ctx context.Context, actor dto.Actor, artifactType model.ArtifactType) (*dto.ReviewQueueDTO, error)
	ListArtifacts(ctx context.Context, actor dto.Actor, artifactType model.ArtifactType, query *dto.ArtifactListQuery) ([]*dto.ArtifactDTO, error)
	GetArtifact(ctx context.Context, actor dto.Actor, id string) (*dto.ArtifactDTO, error)
}

type reviewServiceImpl struct {
	artifactRepo repository.ArtifactRepo
	events       EventBus
}

func NewReviewService(artifactRepo repository.ArtifactRepo, events EventBus) ReviewService {
	return &reviewServiceImpl{
		artifactRepo: artifactRepo,
		events:       events,
	}
}

// factsReviewContent 事实审核后改写的产出物内容
type factsReviewContent struct {
	OriginalFacts      json.RawMessage       `json:"originalFacts"`
	ReviewedFacts      []dto.ReviewedFactDTO `json:"reviewedFacts"`
	ApprovedFactsCount int                   `json:"approvedFactsCount"`
	TotalFactsCount    int                   `json:"totalFactsCount"`
}

// ChooseOutline 通过或驳回大纲
func (s *reviewServiceImpl) ChooseOutline(ctx context.Context, actor dto.Actor, req *dto.OutlineChoiceDTO) (*dto.ReviewResultDTO, error) {
	artifact, err := s.loadForReview(ctx, actor, req.ArtifactID, model.ArtifactOutline, ErrOutlineNotFound)
	if err != nil {
		return nil, err
	}

	approved := *req.Approved
	updated, err := s.review(ctx, actor, artifact, approved, nil, reviewMetadata(artifact, actor, req.Feedback, nil))
	if err != nil {
		return nil, err
	}

	message := "Outline rejected"
	if approved {
		message = "Outline approved successfully"
	}
	return &dto.ReviewResultDTO{
		Success:  true,
		Artifact: toArtifactDTO(updated),
		Message:  message,
	}, nil
}

// ApproveFacts 逐条审核事实，至少一条通过即整体通过
func (s *reviewServiceImpl) ApproveFacts(ctx context.Context, actor dto.Actor, req *dto.FactsApprovalDTO) (*dto.ReviewResultDTO, error) {
	artifact, err := s.loadForReview(ctx, actor, req.ArtifactID, model.ArtifactFacts, ErrFactsNotFound)
	if err != nil {
		return nil, err
	}

	approvedCount := 0
	for _, f := range req.ApprovedFacts {
		if f.Approved {
			approvedCount++
		}
	}
	total := len(req.ApprovedFacts)
	approved := approvedCount > 0

	original := json.RawMessage(artifact.Content)
	if len(original) == 0 {
		original = json.RawMessage("null")
	}
	content, err := json.Marshal(&factsReviewContent{
		OriginalFacts:      original,
		ReviewedFacts:      req.ApprovedFacts,
		ApprovedFactsCount: approvedCount,
		TotalFactsCount:    total,
	})
	if err != nil {
		return nil, err
	}

	stats := map[string]any{
		"approved": approvedCount,
		"rejected": total - approvedCount,
		"total":    total,
	}
	updated, err := s.review(ctx, actor, artifact, approved, content, reviewMetadata(artifact, actor, req.Feedback, stats))
	if err != nil {
		return nil, err
	}

	message := "All facts rejected"
	if approved {
		message = fmt.Sprintf("%d facts approved successfully", approvedCount)
	}
	return &dto.ReviewResultDTO{
		Success:       true,
		Artifact:      toArtifactDTO(updated),
		Message:       message,
		ApprovedCount: util.PtrInt(approvedCount),
		TotalCount:    util.PtrInt(total),
	}, nil
}

// PendingQueue 待审核队列，最早提交的排在最前；管理员可见全部
func (s *reviewServiceImpl) PendingQueue(ctx context.Context, actor dto.Actor, artifactType model.ArtifactType) (*dto.ReviewQueueDTO, error) {
	filter := repository.ArtifactFilter{
		Types:       []model.ArtifactType{artifactType},
		Status:      model.ArtifactPendingReview,
		OldestFirst: true,
	}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}
	list, err := s.artifactRepo.ListArtifacts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ReviewQueueDTO{
		Artifacts: toArtifactDTOs(list),
		Count:     len(list),
	}, nil
}

// ListArtifacts 当前用户某类产出物，最新的在前，默认只看待审核
func (s *reviewServiceImpl) ListArtifacts(ctx context.Context, actor dto.Actor, artifactType model.ArtifactType, query *dto.ArtifactListQuery) ([]*dto.ArtifactDTO, error) {
	filter := repository.ArtifactFilter{
		UserID: actor.UserID,
		Types:  []model.ArtifactType{artifactType},
		Status: model.ArtifactPendingReview,
	}
	if query != nil {
		if query.Status != "" {
			filter.Status = model.ArtifactStatus(query.Status)
		}
		filter.TitleContains = query.Topic
	}
	list, err := s.artifactRepo.ListArtifacts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toArtifactDTOs(list), nil
}

// GetArtifact 本人或管理员可查看
func (s *reviewServiceImpl) GetArtifact(ctx context.Context, actor dto.Actor, id string) (*dto.ArtifactDTO, error) {
	artifact, err := s.artifactRepo.GetArtifact(ctx, id)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		return nil, ErrArtifactNotFound
	}
	if !actor.CanAccess(artifact.UserID) {
		return nil, ErrForbidden
	}
	return toArtifactDTO(artifact), nil
}

// loadForReview 不存在与无权限统一返回 notFound
func (s *reviewServiceImpl) loadForReview(ctx context.Context, actor dto.Actor, id string, want model.ArtifactType, notFound error) (*model.AIArtifact, error) {
	artifact, err := s.artifactRepo.GetArtifact(ctx, id)
	if err != nil {
		return nil, err
	}
	if artifact == nil || !actor.CanAccess(artifact.UserID) {
		return nil, notFound
	}
	if artifact.Type != want {
		return nil, ErrInvalidArtifactType
	}
	return artifact, nil
}

func (s *reviewServiceImpl) review(ctx context.Context, actor dto.Actor, artifact *model.AIArtifact, approved bool, content []byte, metadata datatypes.JSONMap) (*model.AIArtifact, error) {
	next, err := artifact.Status.Review(approved)
	if err != nil {
		return nil, ErrArtifactAlreadyReviewed
	}

	var approvedAt *time.Time
	if approved {
		now := time.Now()
		approvedAt = &now
	}

	updated, err := s.artifactRepo.ReviewArtifact(ctx, artifact.ID, repository.ArtifactReview{
		Status:     next,
		ApprovedAt: approvedAt,
		Content:    content,
		Metadata:   metadata,
	})
	if err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, ErrArtifactAlreadyReviewed
		}
		return nil, err
	}

	log.InfoContext(ctx, "artifact reviewed",
		"artifact_id", updated.ID,
		"type", updated.Type,
		"status", updated.Status,
		"reviewer", actor.UserID)

	s.events.Publish(ctx, dto.NewEvent(dto.EventArtifactReviewed, updated.ID, actor.UserID, map[string]any{
		"type":   updated.Type,
		"status": updated.Status,
		"title":  updated.Title,
		"ideaId": updated.IdeaID,
	}))
	return updated, nil
}

func reviewMetadata(artifact *model.AIArtifact, actor dto.Actor, feedback *string, stats map[string]any) datatypes.JSONMap {
	metadata := datatypes.JSONMap{}
	for k, v := range artifact.Metadata {
		metadata[k] = v
	}
	if feedback != nil {
		metadata["feedback"] = *feedback
	}
	metadata["reviewedAt"] = time.Now().UTC().Format(time.RFC3339)
	metadata["reviewedBy"] = actor.UserID
	if stats != nil {
		metadata["approvalStats"] = stats
	}
	return metadata
}
