package dto

import (
	"time"

	"github.com/goccy/go-json"
)

// ArtifactDTO AI 产出物
type ArtifactDTO struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	Status     string          `json:"status"`
	Approved   bool            `json:"approved"`
	ApprovedAt *time.Time      `json:"approvedAt"`
	Metadata   map[string]any  `json:"metadata"`
	UserID     string          `json:"userId"`
	IdeaID     *string         `json:"ideaId"`
	PostID     *string         `json:"postId"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// OutlineChoiceDTO 大纲审核请求
type OutlineChoiceDTO struct {
	ArtifactID string  `json:"artifactId" binding:"required"`
	Approved   *bool   `json:"approved" binding:"required"`
	Feedback   *string `json:"feedback" binding:"omitempty,max=2000"`
}

// ReviewedFactDTO 审核后的单条事实
type ReviewedFactDTO struct {
	ID         *string  `json:"id,omitempty"`
	Statement  string   `json:"statement" binding:"required"`
	Source     *string  `json:"source,omitempty"`
	Confidence *float64 `json:"confidence" binding:"required,min=0,max=1"`
	Category   string   `json:"category" binding:"required"`
	Approved   bool     `json:"approved"`
}

// FactsApprovalDTO 事实审核请求
type FactsApprovalDTO struct {
	ArtifactID    string            `json:"artifactId" binding:"required"`
	ApprovedFacts []ReviewedFactDTO `json:"approvedFacts" binding:"required,dive"`
	Feedback      *string           `json:"feedback" binding:"omitempty,max=2000"`
}

// ReviewResultDTO 审核结果
type ReviewResultDTO struct {
	Success       bool         `json:"success"`
	Artifact      *ArtifactDTO `json:"artifact"`
	Message       string       `json:"message"`
	ApprovedCount *int         `json:"approvedCount,omitempty"`
	TotalCount    *int         `json:"totalCount,omitempty"`
}

// ReviewQueueDTO 待审核队列
type ReviewQueueDTO struct {
	Artifacts []*ArtifactDTO `json:"artifacts"`
	Count     int            `json:"count"`
}

// ArtifactListQuery 产出物筛选
type ArtifactListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING_REVIEW APPROVED REJECTED"`
	Topic  string `form:"topic" binding:"omitempty,max=255"`
}
