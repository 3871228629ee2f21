package kafka

import (
	"CommandCenter/internal/api/dto"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// LeadEventProcessor 线索事件的业务处理 (索引、通知、广播)
type LeadEventProcessor interface {
	ProcessLeadEvent(ctx context.Context, event *dto.Event) error
}

type LeadEventsHandler struct {
	processor LeadEventProcessor
}

func NewLeadEventsHandler(processor LeadEventProcessor) *LeadEventsHandler {
	return &LeadEventsHandler{
		processor: processor,
	}
}

func (s *LeadEventsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("lead consumer setup")
	return nil
}

func (s *LeadEventsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("lead consumer cleanup")
	return nil
}

func (s *LeadEventsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-lead consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-lead process batch error", "err", err)
		return err
	}
	log.Info("topic-lead consume claim end")
	return nil
}

func (s *LeadEventsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToEvent(msg)
	if err != nil {
		return err
	}

	switch event.Type {
	case dto.EventLeadCaptured, dto.EventLeadUpdated:
		if err = s.processor.ProcessLeadEvent(ctx, event); err != nil {
			return errors.Wrapf(err, "lead event %s for %s", event.Type, event.ID)
		}
	default:
		log.Debug("ignore non-lead event", "type", event.Type)
	}
	return nil
}
