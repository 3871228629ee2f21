package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 通知类型
const (
	SysBoxTypeLead     = "HIGH_VALUE_LEAD"
	SysBoxTypeReview   = "STALE_REVIEW"
	SysBoxTypeArtifact = "ARTIFACT_REVIEWED"
)

// SysBoxModel 后台站内通知
type SysBoxModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID string             `bson:"receiver_id" json:"receiverId"` // 接收者 (身份提供方 sub)
	Type       string             `bson:"type" json:"type"`
	TargetID   string             `bson:"target_id" json:"targetId"` // 关联对象ID (线索、产物)
	Content    string             `bson:"content" json:"content"`
	Payload    map[string]any     `bson:"payload" json:"payload"`
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
