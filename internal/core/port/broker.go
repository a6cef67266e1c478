package port

import (
	"context"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// BrokerPort delivers domain events to downstream consumers, routed by the
// event's entity name.
type BrokerPort interface {
	Publish(ctx context.Context, event domain.Event) error
	// PublishRaw sends an already serialized event, as stored in the outbox.
	PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error
	Ping(ctx context.Context) error
	Close() error
}
