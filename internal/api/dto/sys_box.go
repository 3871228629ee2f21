package dto

// SysBoxDTO 站内通知
type SysBoxDTO struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	TargetID  string         `json:"targetId"`
	Content   string         `json:"content"`
	Payload   map[string]any `json:"payload"`
	IsRead    bool           `json:"isRead"`
	CreatedAt string         `json:"createdAt"`
}

// SysBoxUnreadDTO 未读数
type SysBoxUnreadDTO struct {
	UnreadCount int64 `json:"unreadCount"`
}

type SysBoxReadDTO struct {
	MsgID string `json:"msgId" binding:"required"`
}

type SysBoxListQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}
