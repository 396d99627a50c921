package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"academic-service/internal/events"

	"github.com/IBM/sarama"
)

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

func NewProducer(brokers []string, topic string, logger *slog.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.ClientID = "academic-service"
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return newProducer(producer, topic, logger, brokers), nil
}

func newProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger, brokers []string) *Producer {
	logger.Info("kafka producer initialized", "brokers", brokers, "topic", topic)
	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends the event keyed by entity and record id so that changes to
// one record land on one partition.
func (p *Producer) Publish(ctx context.Context, event events.Event) error {
	valueBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal event", "error", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.Key()),
		Value: sarama.ByteEncoder(valueBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("entity"), Value: []byte(event.Entity)},
			{Key: []byte("action"), Value: []byte(event.Action)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to send event to kafka", "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "event sent to kafka", "topic", p.topic, "partition", partition, "offset", offset, "key", event.Key())
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
