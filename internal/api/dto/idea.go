package dto

import "time"

type IdeaDTO struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority"`
	Tags        []string       `json:"tags"`
	UserID      string         `json:"userId"`
	Artifacts   []*ArtifactDTO `json:"artifacts,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// IdeaGenerateResultDTO 选题生成结果
type IdeaGenerateResultDTO struct {
	Idea     *IdeaDTO     `json:"idea"`
	Task     *TaskDTO     `json:"task"`
	Artifact *ArtifactDTO `json:"artifact"`
	Created  int          `json:"created"`
}

type IdeaListQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=DRAFT ACTIVE ARCHIVED"`
}

type IdeaPageDTO struct {
	Ideas      []*IdeaDTO `json:"ideas"`
	Pagination Pagination `json:"pagination"`
}
