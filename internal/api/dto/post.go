package dto

import "time"

type PostDTO struct {
	ID          string         `json:"id"`
	AuthorID    string         `json:"authorId"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Status      string         `json:"status"`
	RiskLevel   string         `json:"riskLevel"`
	IdeaID      *string        `json:"ideaId"`
	ScheduledAt *time.Time     `json:"scheduledAt"`
	PublishedAt *time.Time     `json:"publishedAt"`
	Artifacts   []*ArtifactDTO `json:"artifacts,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type PostCreateDTO struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Content     string   `json:"content" binding:"omitempty,max=200000"`
	RiskLevel   string   `json:"riskLevel" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	IdeaID      *string  `json:"ideaId" binding:"omitempty,uuid"`
	ArtifactIDs []string `json:"artifactIds" binding:"omitempty,max=50,dive,uuid"`
}

type PostUpdateDTO struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Content     *string    `json:"content" binding:"omitempty,max=200000"`
	RiskLevel   *string    `json:"riskLevel" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *string    `json:"status" binding:"omitempty,oneof=DRAFT READY SCHEDULED PUBLISHED ARCHIVED"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// PostResultDTO 写操作结果，Warnings 为非阻断提示 (如 SEO)
type PostResultDTO struct {
	Post     *PostDTO `json:"post"`
	Warnings []string `json:"warnings,omitempty"`
}

type PostListQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=DRAFT READY SCHEDULED PUBLISHED ARCHIVED"`
}

type PostPageDTO struct {
	Posts      []*PostDTO `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// ReadinessDetails 高风险文章就绪检查的明细
type ReadinessDetails struct {
	HasApprovedOutline bool `json:"hasApprovedOutline"`
	HasApprovedFacts   bool `json:"hasApprovedFacts"`
}
