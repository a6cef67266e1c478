package port

import (
	"context"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// OutboxPort stores an event inside the caller's unit of work.
type OutboxPort interface {
	Insert(ctx context.Context, event domain.Event) error
}
