package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/port"
)

type PublishedEvent struct {
	EventName  string
	EntityName string
	Data       []byte
}

// LogBroker logs every event instead of delivering it and keeps them for
// inspection.
type LogBroker struct {
	mu     sync.Mutex
	events []PublishedEvent
}

func NewLogBroker() *LogBroker {
	return &LogBroker{}
}

var _ port.BrokerPort = (*LogBroker)(nil)

func (b *LogBroker) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.PublishRaw(ctx, event.GetName(), event.GetEntityName(), data)
}

func (b *LogBroker) PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error {
	b.mu.Lock()
	b.events = append(b.events, PublishedEvent{EventName: eventName, EntityName: entityName, Data: data})
	b.mu.Unlock()

	logger.Info(ctx, "broker: event published", map[string]any{
		"event_name":  eventName,
		"entity_name": entityName,
		"event_data":  string(data),
	})
	return nil
}

func (b *LogBroker) Events() []PublishedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := make([]PublishedEvent, len(b.events))
	copy(events, b.events)
	return events
}

func (b *LogBroker) Ping(context.Context) error {
	return nil
}

func (b *LogBroker) Close() error {
	return nil
}
