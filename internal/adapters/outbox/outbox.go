package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/port"
)

type Entry struct {
	ID         string
	EventName  string
	EntityName string
	EventData  []byte
}

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}

// Writer serializes domain events into outbox entries. The entry is written
// with the caller's context, so it joins the caller's transaction.
type Writer struct {
	repository Repository
}

func NewWriter(repository Repository) port.OutboxPort {
	return &Writer{repository: repository}
}

func (w *Writer) Insert(ctx context.Context, event domain.Event) error {
	entry, err := NewEntry(event)
	if err != nil {
		return err
	}
	return w.repository.Insert(ctx, entry)
}

func NewEntry(event domain.Event) (Entry, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal event %s: %w", event.GetName(), err)
	}
	return Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  data,
	}, nil
}
