package repository

import (
	"context"
	"time"

	"github.com/rafaelleal24/aceitera/internal/adapters/mongo/document"
	"github.com/rafaelleal24/aceitera/internal/adapters/outbox"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OutboxRepository struct {
	*BaseRepository[document.OutboxDocument]
	collection *mongo.Collection
}

func NewOutboxRepository(db *mongo.Database) outbox.Repository {
	return &OutboxRepository{
		BaseRepository: NewBaseRepository[document.OutboxDocument](db, document.OutboxCollection),
		collection:     db.Collection(document.OutboxCollection),
	}
}

// Insert joins the caller's session when ctx carries one, so the event
// commits or rolls back with the sale that produced it.
func (r *OutboxRepository) Insert(ctx context.Context, entry outbox.Entry) error {
	doc := document.OutboxDocument{
		EventName:  entry.EventName,
		EntityName: entry.EntityName,
		EventData:  string(entry.EventData),
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return parseError(err)
	}
	return nil
}

// FetchPending returns the oldest entries first. ObjectIDs grow with
// insertion time, so _id order is insertion order.
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	docs, err := r.Find(ctx, bson.M{}, options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	entries := make([]outbox.Entry, len(docs))
	for i, doc := range docs {
		entries[i] = outbox.Entry{
			ID:         doc.ID.Hex(),
			EventName:  doc.EventName,
			EntityName: doc.EntityName,
			EventData:  []byte(doc.EventData),
		}
	}
	return entries, nil
}

// Delete is a no-op for entries another relay already removed.
func (r *OutboxRepository) Delete(ctx context.Context, id string) error {
	objectID, err := toObjectID(id)
	if err != nil {
		return err
	}
	_, err = r.DeleteMany(ctx, bson.M{"_id": objectID})
	return err
}
