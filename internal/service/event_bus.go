package service

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/redis"
	"context"
	log "log/slog"
	"strings"

	"github.com/goccy/go-json"
)

// EventPublisher 消息队列生产者
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}

// EventHandlerFunc 未启用消息队列时在进程内处理事件
type EventHandlerFunc func(ctx context.Context, event *dto.Event) error

// EventBus 领域事件总线，发布失败只记录日志不影响主流程
type EventBus interface {
	Publish(ctx context.Context, event *dto.Event)
}

type EventBusImpl struct {
	producer  EventPublisher
	topics    config.KafkaTopics
	inline    map[string][]EventHandlerFunc
	broadcast func(ctx context.Context, payload []byte) error
}

// NewEventBus producer 为 nil 时事件走进程内处理器
func NewEventBus(producer EventPublisher, topics config.KafkaTopics) *EventBusImpl {
	return &EventBusImpl{
		producer: producer,
		topics:   topics,
		inline:   make(map[string][]EventHandlerFunc),
		broadcast: func(ctx context.Context, payload []byte) error {
			if redis.Rdb == nil {
				return nil
			}
			return redis.Publish(ctx, consts.EventChannel, payload)
		},
	}
}

// Handle 注册进程内处理器，仅在没有 producer 或事件没有对应 topic 时生效
func (b *EventBusImpl) Handle(eventType string, fn EventHandlerFunc) {
	b.inline[eventType] = append(b.inline[eventType], fn)
}

func (b *EventBusImpl) Publish(ctx context.Context, event *dto.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "marshal event failed", "type", event.Type, "err", err)
		return
	}

	if err = b.broadcast(ctx, payload); err != nil {
		log.WarnContext(ctx, "broadcast event failed", "type", event.Type, "err", err)
	}

	topic := b.topicFor(event.Type)
	if b.producer != nil && topic != "" {
		if err = b.producer.Publish(ctx, topic, event.ID, payload); err != nil {
			log.ErrorContext(ctx, "publish event failed", "type", event.Type, "topic", topic, "err", err)
		}
		return
	}

	for _, fn := range b.inline[event.Type] {
		if err = fn(ctx, event); err != nil {
			log.ErrorContext(ctx, "inline event handler failed", "type", event.Type, "id", event.ID, "err", err)
		}
	}
}

func (b *EventBusImpl) topicFor(eventType string) string {
	prefix, _, _ := strings.Cut(eventType, ".")
	switch prefix {
	case "lead":
		return b.topics.LeadEvents
	case "artifact", "post":
		return b.topics.ArtifactEvents
	case "media":
		return b.topics.MediaEvents
	}
	return ""
}
