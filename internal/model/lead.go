package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

type LeadStatus string

const (
	LeadNew       LeadStatus = "NEW"
	LeadContacted LeadStatus = "CONTACTED"
	LeadQualified LeadStatus = "QUALIFIED"
	LeadConverted LeadStatus = "CONVERTED"
	LeadLost      LeadStatus = "LOST"
)

// HighValueScore 达到该分数的线索需要通知管理员
const HighValueScore = 2

var highValueKeywords = []string{"enterprise", "budget", "users", "team", "solution"}

type Lead struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_lead_email"`
	Name        *string    `gorm:"type:varchar(100)"`
	Company     *string    `gorm:"type:varchar(150)"`
	Message     *string    `gorm:"type:text"`
	Source      string     `gorm:"type:varchar(50);not null;default:'website';index:idx_lead_source"`
	UTMSource   *string    `gorm:"type:varchar(100)"`
	UTMMedium   *string    `gorm:"type:varchar(100)"`
	UTMCampaign *string    `gorm:"type:varchar(100)"`
	Status      LeadStatus `gorm:"type:varchar(20);not null;default:'NEW';index:idx_lead_status"`
	Notes       *string    `gorm:"type:text"`
	Score       int        `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Lead) TableName() string {
	return "leads"
}

// ValidLeadStatus 校验线索状态
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadConverted, LeadLost:
		return true
	}
	return false
}

// ComputeScore 公司信息、详细留言、意向关键词各计一分
func (l *Lead) ComputeScore() int {
	score := 0
	if l.Company != nil && strings.TrimSpace(*l.Company) != "" {
		score++
	}
	if l.Message != nil {
		msg := strings.ToLower(*l.Message)
		if utf8.RuneCountInString(msg) >= 80 {
			score++
		}
		for _, kw := range highValueKeywords {
			if strings.Contains(msg, kw) {
				score++
				break
			}
		}
	}
	return score
}

// IsHighValue 是否为高价值线索
func (l *Lead) IsHighValue() bool {
	return l.Score >= HighValueScore
}

// DisplayName 通知中展示的名称
func (l *Lead) DisplayName() string {
	if l.Name != nil && strings.TrimSpace(*l.Name) != "" {
		return strings.TrimSpace(*l.Name)
	}
	return l.Email
}
