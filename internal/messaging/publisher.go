package messaging

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher delivers integration events to an external sink.
type Publisher interface {
	Publish(ctx context.Context, event IntegrationEvent) error
	Close() error
}

// KafkaPublisher writes events to a single topic, keyed so that all events
// of one reservation land on the same partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event IntegrationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.EventName(), err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-name", Value: []byte(event.EventName())},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", event.EventName(), err)
	}

	p.logger.Debug("integration event published",
		zap.String("event", event.EventName()),
		zap.String("key", event.Key()),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured; events are dropped
// with a debug log so local setups run without Kafka.
type NopPublisher struct {
	logger *zap.Logger
}

func NewNopPublisher(logger *zap.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) Publish(_ context.Context, event IntegrationEvent) error {
	p.logger.Debug("event publishing disabled, dropping event",
		zap.String("event", event.EventName()),
	)
	return nil
}

func (p *NopPublisher) Close() error { return nil }
