package kafka

import (
	"CommandCenter/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// Producer 同步生产者，按聚合ID作为 key 保证同一对象的事件有序
type Producer struct {
	producer sarama.SyncProducer
}

func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	p, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	log.Info("Kafka producer initialized", "brokers", cfg.Brokers)
	return &Producer{producer: p}, nil
}

// NewProducerWith 使用已有的 SyncProducer (测试时传入 mocks)
func NewProducerWith(p sarama.SyncProducer) *Producer {
	return &Producer{producer: p}
}

func (p *Producer) Publish(_ context.Context, topic, key string, value []byte) error {
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return errors.Wrapf(err, "publish to %s", topic)
	}
	log.Debug("event published", "topic", topic, "key", key, "partition", partition, "offset", offset)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
