package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rafaelleal24/aceitera/internal/adapters/config"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/port"
)

var ErrUnknownEntity = errors.New("no exchange configured for entity")

// Publisher routes each event to the exchange configured for its entity, with
// the event name as routing key. Every publish waits for the broker confirm.
type Publisher struct {
	mu        sync.Mutex
	conn      *amqp.Connection
	channel   *amqp.Channel
	config    config.RabbitMQConfig
	exchanges map[string]string
}

var _ port.BrokerPort = (*Publisher)(nil)

func NewPublisher(cfg config.RabbitMQConfig) (*Publisher, error) {
	publisher := &Publisher{
		config:    cfg,
		exchanges: make(map[string]string, len(cfg.ExchangeConfigs)),
	}
	for _, ec := range cfg.ExchangeConfigs {
		publisher.exchanges[ec.Entity] = ec.Name
	}

	if err := publisher.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	return publisher, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	for _, ec := range p.config.ExchangeConfigs {
		if err := ch.ExchangeDeclare(ec.Name, ec.Type, ec.Durable, ec.AutoDelete, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return fmt.Errorf("failed to declare exchange %s: %w", ec.Name, err)
		}
	}

	p.conn = conn
	p.channel = ch
	return nil
}

func (p *Publisher) reset() {
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.GetName(), err)
	}
	return p.PublishRaw(ctx, event.GetName(), event.GetEntityName(), body)
}

func (p *Publisher) PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error {
	exchange, ok := p.exchanges[entityName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, entityName)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		Type:         eventName,
		Body:         data,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
	}

	var lastErr error
	for attempt := 0; attempt <= p.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.config.RetryDelay):
			}
		}

		if lastErr = p.publishOnce(ctx, exchange, eventName, msg); lastErr == nil {
			return nil
		}
		logger.Error(ctx, "publish: failed", lastErr, map[string]any{
			"attempt":    attempt + 1,
			"event_name": eventName,
			"exchange":   exchange,
		})
	}

	return fmt.Errorf("failed to publish after %d attempts: %w", p.config.MaxRetries+1, lastErr)
}

func (p *Publisher) publishOnce(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		p.reset()
		if err := p.connect(); err != nil {
			return fmt.Errorf("reconnect failed: %w", err)
		}
	}

	confirmation, err := p.channel.PublishWithDeferredConfirmWithContext(ctx, exchange, routingKey, false, false, msg)
	if err != nil {
		p.reset()
		return err
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return fmt.Errorf("broker nacked message %s", msg.MessageId)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing channel: %w", err))
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing connection: %w", err))
		}
		p.conn = nil
	}
	return errors.Join(errs...)
}

func (p *Publisher) Ping(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq: connection is closed")
	}
	if p.channel == nil || p.channel.IsClosed() {
		return errors.New("rabbitmq: channel is closed")
	}
	return nil
}
