package kafka

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/pkg/util"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
	maxRetry     = 5
)

// ErrMalformedMessage 无法解析的消息，直接确认不再重试
var ErrMalformedMessage = errors.New("malformed event message")

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，失败按指数退避重试，超过次数后丢弃
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)

		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			runWithRetry(session.Context(), m, logic)
		}(msg)
	}

	wg.Wait()

	if len(messages) > 0 {
		lastMsg := messages[len(messages)-1]
		session.MarkMessage(lastMsg, "")
	}
}

func runWithRetry(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) {
	var retryInterval = 100 * time.Millisecond

	for attempt := 1; ; attempt++ {
		err := logic(ctx, m)
		if err == nil {
			return
		}
		if errors.Is(err, ErrMalformedMessage) {
			log.Warn("drop malformed message", "topic", m.Topic, "offset", m.Offset, "err", err)
			return
		}
		if attempt >= maxRetry {
			log.Error("drop message after retries", "topic", m.Topic, "offset", m.Offset, "err", err)
			return
		}

		log.Error("process message error", "topic", m.Topic, "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryInterval):
		}

		retryInterval *= 2
		if retryInterval > 5*time.Second {
			retryInterval = 5 * time.Second
		}
	}
}

// ToEvent 将 kafka 消息解析为领域事件
func ToEvent(msg *sarama.ConsumerMessage) (*dto.Event, error) {
	var event dto.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, errors.Wrapf(ErrMalformedMessage, "offset %d: %v", msg.Offset, err)
	}
	if err := util.ValidateDTO(&event); err != nil {
		return nil, errors.Wrapf(ErrMalformedMessage, "offset %d: %v", msg.Offset, err)
	}
	return &event, nil
}
