package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/rafaelleal24/aceitera/internal/adapters/config"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/port"
)

const (
	headerEventName = "event-name"
	headerEventID   = "event-id"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes every event to "<prefix><entity>", keyed by product id so
// all events of one product land on the same partition in order.
type Producer struct {
	writer  messageWriter
	brokers []string
	prefix  string
}

var _ port.BrokerPort = (*Producer)(nil)

func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}

	return newProducer(writer, cfg.Brokers, cfg.TopicPrefix), nil
}

func newProducer(writer messageWriter, brokers []string, prefix string) *Producer {
	return &Producer{writer: writer, brokers: brokers, prefix: prefix}
}

func (p *Producer) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.GetName(), err)
	}
	return p.PublishRaw(ctx, event.GetName(), event.GetEntityName(), body)
}

func (p *Producer) PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error {
	msg := p.message(eventName, entityName, data)
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error(ctx, "kafka: write failed", err, map[string]any{
			"topic":      msg.Topic,
			"event_name": eventName,
		})
		return fmt.Errorf("failed to write %s to %s: %w", eventName, msg.Topic, err)
	}
	return nil
}

func (p *Producer) message(eventName, entityName string, data []byte) kafka.Message {
	return kafka.Message{
		Topic: p.prefix + entityName,
		Key:   []byte(partitionKey(entityName, data)),
		Value: data,
		Headers: []kafka.Header{
			{Key: headerEventName, Value: []byte(eventName)},
			{Key: headerEventID, Value: []byte(uuid.NewString())},
		},
		Time: time.Now().UTC(),
	}
}

func partitionKey(entityName string, data []byte) string {
	var payload struct {
		ProductID string `json:"product_id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.ProductID == "" {
		return entityName
	}
	return payload.ProductID
}

func (p *Producer) Ping(ctx context.Context) error {
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("kafka: dial %s: %w", p.brokers[0], err)
	}
	return conn.Close()
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
