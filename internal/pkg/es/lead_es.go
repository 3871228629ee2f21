package es

import "time"

// LeadES 写入 ES 的线索文档
type LeadES struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Message     string    `json:"message"`
	Source      string    `json:"source"`
	UTMCampaign string    `json:"utm_campaign"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
