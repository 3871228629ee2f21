package dto

import "time"

type LeadDTO struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        *string   `json:"name"`
	Company     *string   `json:"company"`
	Message     *string   `json:"message"`
	Source      string    `json:"source"`
	UTMSource   *string   `json:"utmSource"`
	UTMMedium   *string   `json:"utmMedium"`
	UTMCampaign *string   `json:"utmCampaign"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LeadCaptureDTO 公开表单提交
type LeadCaptureDTO struct {
	Email       string  `json:"email" binding:"required,email,max=255"`
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Company     *string `json:"company" binding:"omitempty,max=150"`
	Message     *string `json:"message" binding:"omitempty,max=5000"`
	Source      *string `json:"source" binding:"omitempty,max=50"`
	UTMSource   *string `json:"utmSource" binding:"omitempty,max=100"`
	UTMMedium   *string `json:"utmMedium" binding:"omitempty,max=100"`
	UTMCampaign *string `json:"utmCampaign" binding:"omitempty,max=100"`
}

type LeadUpdateDTO struct {
	Status *string `json:"status" binding:"omitempty,oneof=NEW CONTACTED QUALIFIED CONVERTED LOST"`
	Notes  *string `json:"notes" binding:"omitempty,max=5000"`
}

type LeadListQuery struct {
	PageQuery
	Status  string `form:"status" binding:"omitempty,oneof=NEW CONTACTED QUALIFIED CONVERTED LOST"`
	Source  string `form:"source" binding:"omitempty,max=50"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}

type LeadPageDTO struct {
	Leads      []*LeadDTO `json:"leads"`
	Pagination Pagination `json:"pagination"`
}
