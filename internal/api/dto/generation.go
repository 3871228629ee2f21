package dto

// OutlineRequestDTO 生成大纲
type OutlineRequestDTO struct {
	Topic          string   `json:"topic" binding:"required,min=1,max=255"`
	Keywords       []string `json:"keywords" binding:"omitempty,max=20,dive,max=64"`
	TargetAudience string   `json:"targetAudience" binding:"omitempty,max=255"`
	Tone           string   `json:"tone" binding:"omitempty,oneof=professional casual technical friendly"`
	Length         string   `json:"length" binding:"omitempty,oneof=short medium long"`
	IdeaID         *string  `json:"ideaId" binding:"omitempty,uuid"`
	PostID         *string  `json:"postId" binding:"omitempty,uuid"`
}

// FactsRequestDTO 生成事实
type FactsRequestDTO struct {
	Topic     string   `json:"topic" binding:"required,min=1,max=255"`
	Outline   string   `json:"outline" binding:"omitempty,max=20000"`
	Sources   []string `json:"sources" binding:"omitempty,max=10,dive,url"`
	FactCount int      `json:"factCount" binding:"omitempty,min=1,max=20"`
	IdeaID    *string  `json:"ideaId" binding:"omitempty,uuid"`
	PostID    *string  `json:"postId" binding:"omitempty,uuid"`
}

// TaskRequestDTO 通用 AI 任务 (正文、SEO、摘要)，字段按任务类型取用
type TaskRequestDTO struct {
	Type          string   `json:"type" binding:"required,oneof=generate-content generate-seo summarize"`
	Title         string   `json:"title" binding:"omitempty,max=255"`
	Outline       string   `json:"outline" binding:"omitempty,max=20000"`
	Facts         []string `json:"facts" binding:"omitempty,max=50"`
	Content       string   `json:"content" binding:"omitempty,max=200000"`
	Keywords      []string `json:"keywords" binding:"omitempty,max=20,dive,max=64"`
	TargetKeyword string   `json:"targetKeyword" binding:"omitempty,max=64"`
	Tone          string   `json:"tone" binding:"omitempty,oneof=professional casual technical friendly"`
	WordCount     int      `json:"wordCount" binding:"omitempty,min=100,max=5000"`
	Length        string   `json:"length" binding:"omitempty,oneof=short medium long"`
	Format        string   `json:"format" binding:"omitempty,oneof=paragraph bullets outline"`
	IdeaID        *string  `json:"ideaId" binding:"omitempty,uuid"`
	PostID        *string  `json:"postId" binding:"omitempty,uuid"`
}

// TaskDTO AI 任务执行记录
type TaskDTO struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// GenerationResultDTO 生成结果
type GenerationResultDTO struct {
	Task     *TaskDTO     `json:"task"`
	Artifact *ArtifactDTO `json:"artifact"`
}
