package model

import (
	"time"

	"gorm.io/datatypes"
)

type IdeaStatus string

const (
	IdeaStatusDraft    IdeaStatus = "DRAFT"
	IdeaStatusActive   IdeaStatus = "ACTIVE"
	IdeaStatusArchived IdeaStatus = "ARCHIVED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

type Idea struct {
	ID          string                      `gorm:"primaryKey;type:varchar(36)"`
	UserID      string                      `gorm:"type:varchar(36);not null;index:idx_idea_user"`
	Title       string                      `gorm:"type:varchar(255);not null"`
	Description string                      `gorm:"type:text"`
	Status      IdeaStatus                  `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_idea_status"`
	Priority    string                      `gorm:"type:varchar(10);not null;default:'MEDIUM'"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Artifacts []AIArtifact `gorm:"foreignKey:IdeaID;references:ID"`
}

func (Idea) TableName() string {
	return "ideas"
}
