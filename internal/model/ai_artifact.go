package model

import (
	"time"

	"gorm.io/datatypes"
)

type ArtifactType string

const (
	ArtifactOutline    ArtifactType = "OUTLINE"
	ArtifactFacts      ArtifactType = "FACTS"
	ArtifactFactsFinal ArtifactType = "FACTS_final"
	ArtifactContent    ArtifactType = "CONTENT"
	ArtifactSEO        ArtifactType = "SEO"
	ArtifactSummary    ArtifactType = "SUMMARY"
)

type ArtifactStatus string

const (
	ArtifactPendingReview ArtifactStatus = "PENDING_REVIEW"
	ArtifactApproved      ArtifactStatus = "APPROVED"
	ArtifactRejected      ArtifactStatus = "REJECTED"
)

// artifactTransitions 审核状态机，终态没有出边
var artifactTransitions = map[ArtifactStatus][]ArtifactStatus{
	ArtifactPendingReview: {ArtifactApproved, ArtifactRejected},
}

// CanTransitionTo 判断迁移是否合法
func (s ArtifactStatus) CanTransitionTo(next ArtifactStatus) bool {
	for _, to := range artifactTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Review 按审核结论计算下一个状态
func (s ArtifactStatus) Review(approved bool) (ArtifactStatus, error) {
	next := ArtifactRejected
	if approved {
		next = ArtifactApproved
	}
	if !s.CanTransitionTo(next) {
		return s, ErrInvalidTransition
	}
	return next, nil
}

// IsTerminal 是否已审核完成
func (s ArtifactStatus) IsTerminal() bool {
	return len(artifactTransitions[s]) == 0
}

// AIArtifact AI 产出物 (大纲、事实、草稿等)，Content 为任务原始输出
type AIArtifact struct {
	ID         string         `gorm:"primaryKey;type:varchar(36)"`
	Type       ArtifactType   `gorm:"type:varchar(20);not null;index:idx_artifact_type_status,priority:1"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Content    datatypes.JSON `gorm:"type:json"`
	Status     ArtifactStatus `gorm:"type:varchar(20);not null;default:'PENDING_REVIEW';index:idx_artifact_type_status,priority:2"`
	Approved   bool           `gorm:"not null;default:false"`
	ApprovedAt *time.Time
	Metadata   datatypes.JSONMap `gorm:"type:json"`
	UserID     string            `gorm:"type:varchar(36);not null;index:idx_artifact_user"`
	IdeaID     *string           `gorm:"type:varchar(36);index:idx_artifact_idea"`
	PostID     *string           `gorm:"type:varchar(36);index:idx_artifact_post"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (AIArtifact) TableName() string {
	return "ai_artifacts"
}
