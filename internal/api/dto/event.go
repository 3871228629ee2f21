package dto

import "time"

// 领域事件类型
const (
	EventLeadCaptured     = "lead.captured"
	EventLeadUpdated      = "lead.updated"
	EventArtifactCreated  = "artifact.created"
	EventArtifactReviewed = "artifact.reviewed"
	EventPostUpdated      = "post.updated"
	EventMediaUploaded    = "media.uploaded"
	EventMediaDeleted     = "media.deleted"
	EventNotification     = "notification.created"
)

// Event 领域事件，同时投递 kafka 与 websocket 广播
type Event struct {
	Type       string         `json:"type" validate:"required"`
	ID         string         `json:"id" validate:"required"`
	ActorID    string         `json:"actorId,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

func NewEvent(eventType, id, actorID string, payload map[string]any) *Event {
	return &Event{
		Type:       eventType,
		ID:         id,
		ActorID:    actorID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}
