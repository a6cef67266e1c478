package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/mongo"
)

const unknownCommitResultLabel = "UnknownTransactionCommitResult"

type TransactionManager struct {
	client *mongo.Client
}

func NewTransactionManager(client *mongo.Client) port.TransactionManager {
	return &TransactionManager{client: client}
}

// WithTransaction runs fn in a session transaction, or inside the caller's
// session when one is already active on ctx.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := tm.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})

	if isUnknownCommitResult(err) {
		return fmt.Errorf("%w: %w", serviceerrors.ErrCommitOutcomeUnknown, err)
	}
	return err
}

func isUnknownCommitResult(err error) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel(unknownCommitResultLabel)
	}
	return false
}
