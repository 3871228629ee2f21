package kafka

import (
	"CommandCenter/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	leadConsumer sarama.ConsumerGroup
	leadHandler  sarama.ConsumerGroupHandler
	leadTopic    string
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, leadProcessor LeadEventProcessor) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	leadConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaLeadConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	topic := cfg.KafkaLeadConsumer.Topic
	if topic == "" {
		topic = cfg.Kafka.Topics.LeadEvents
	}

	return &ConsumerManager{
		leadConsumer: leadConsumer,
		leadHandler:  NewLeadEventsHandler(leadProcessor),
		leadTopic:    topic,
	}, nil
}

// Start 启动所有消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		log.Info("Lead consumer started", "topic", m.leadTopic)
		for {
			if err := m.leadConsumer.Consume(ctx, []string{m.leadTopic}, m.leadHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range m.leadConsumer.Errors() {
			log.Error("Lead consumer group error", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.leadConsumer.Close(); err != nil {
		log.Error("Failed to close lead consumer", "err", err)
	}

	return nil
}
