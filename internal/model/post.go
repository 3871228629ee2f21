package model

import (
	"time"
)

type PostStatus string

const (
	PostDraft     PostStatus = "DRAFT"
	PostReady     PostStatus = "READY"
	PostScheduled PostStatus = "SCHEDULED"
	PostPublished PostStatus = "PUBLISHED"
	PostArchived  PostStatus = "ARCHIVED"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

var postTransitions = map[PostStatus][]PostStatus{
	PostDraft:     {PostReady, PostArchived},
	PostReady:     {PostDraft, PostScheduled, PostPublished, PostArchived},
	PostScheduled: {PostReady, PostPublished, PostArchived},
	PostPublished: {PostArchived},
	PostArchived:  {PostDraft},
}

// CanTransitionTo 同状态视为无变化
func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	if s == next {
		return true
	}
	for _, to := range postTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Valid 是否为已知状态
func (s PostStatus) Valid() bool {
	_, ok := postTransitions[s]
	return ok
}

type Post struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)"`
	AuthorID    string     `gorm:"type:varchar(36);not null;index:idx_post_author"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Content     string     `gorm:"type:text"`
	Status      PostStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_post_status"`
	RiskLevel   RiskLevel  `gorm:"type:varchar(10);not null;default:'LOW'"`
	IdeaID      *string    `gorm:"type:varchar(36);index:idx_post_idea"`
	ScheduledAt *time.Time
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Artifacts []AIArtifact `gorm:"foreignKey:PostID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}

// ApprovedArtifacts 返回是否已有通过审核的大纲与事实
func (p *Post) ApprovedArtifacts() (hasOutline bool, hasFacts bool) {
	for _, a := range p.Artifacts {
		if a.Status != ArtifactApproved {
			continue
		}
		switch a.Type {
		case ArtifactOutline:
			hasOutline = true
		case ArtifactFacts, ArtifactFactsFinal:
			hasFacts = true
		}
	}
	return hasOutline, hasFacts
}
