package dto

import "time"

type DashboardMetrics struct {
	TotalIdeas      int64 `json:"totalIdeas"`
	PendingOutlines int64 `json:"pendingOutlines"`
	PendingFacts    int64 `json:"pendingFacts"`
	PublishedPosts  int64 `json:"publishedPosts"`
	TotalLeads      int64 `json:"totalLeads"`
	MediaFiles      int64 `json:"mediaFiles"`
}

// ActivityDTO 最近动态
type ActivityDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type DashboardDTO struct {
	Metrics        DashboardMetrics `json:"metrics"`
	RecentActivity []*ActivityDTO   `json:"recentActivity"`
	SystemHealth   map[string]bool  `json:"systemHealth"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

// HealthDTO 组件健康快照
type HealthDTO struct {
	Healthy    bool            `json:"healthy"`
	Components map[string]bool `json:"components"`
	Media      map[string]bool `json:"media"`
	CheckedAt  time.Time       `json:"checkedAt"`
}
