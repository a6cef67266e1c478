package outbox

import (
	"context"
	"time"

	"github.com/rafaelleal24/aceitera/internal/adapters/config"
	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/port"
)

const (
	defaultBatchSize = 100
	defaultInterval  = 500 * time.Millisecond
)

// Handler relays committed events from the outbox to the broker. Delivery is
// at least once: an event whose delete fails is published again.
type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	if config.BatchSize <= 0 {
		config.BatchSize = defaultBatchSize
	}
	if config.Interval <= 0 {
		config.Interval = defaultInterval
	}
	return &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    config.BatchSize,
	}
}

// Start relays on every tick until ctx is done. A full batch is followed by
// another one right away.
func (h *Handler) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.drain(ctx)
		}
	}
}

func (h *Handler) drain(ctx context.Context) {
	for ctx.Err() == nil {
		if h.Relay(ctx) < h.batch {
			return
		}
	}
}

// Relay publishes one batch of pending events in insertion order and returns
// how many were published and removed. It stops at the first publish failure
// so later events never overtake an earlier one.
func (h *Handler) Relay(ctx context.Context) int {
	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": h.batch,
		})
		return 0
	}

	relayed := 0
	for _, entry := range entries {
		attrs := map[string]any{
			"event_id":    entry.ID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
		}
		if err := h.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			attrs["pending"] = len(entries) - relayed
			logger.Error(ctx, "outbox: failed to publish event", err, attrs)
			return relayed
		}

		logger.Debug(ctx, "outbox: event published", attrs)

		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, attrs)
			continue
		}
		relayed++
	}
	return relayed
}
