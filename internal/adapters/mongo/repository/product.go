package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rafaelleal24/aceitera/internal/adapters/mongo/document"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) port.ProductPort {
	return &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, document.ProductsCollection),
		collection:     db.Collection(document.ProductsCollection),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	doc := document.ToProductDocument(product)

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return parseError(err)
	}

	product.ID = domain.ID(result.InsertedID.(primitive.ObjectID).Hex())
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []domain.ID) ([]*domain.Product, error) {
	// ids that cannot exist in this store are skipped, not rejected
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objectID, err := toObjectID(string(id)); err == nil {
			objectIDs = append(objectIDs, objectID)
		}
	}
	if len(objectIDs) == 0 {
		return []*domain.Product{}, nil
	}

	docs, err := r.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, err
	}
	return toProducts(docs), nil
}

// DeductStock matches only while stock covers the quantity, so two racing
// sales can never both pass the guard.
func (r *ProductRepository) DeductStock(ctx context.Context, id domain.ID, quantity int) (*domain.Product, error) {
	objectID, err := toObjectID(string(id))
	if err != nil {
		return nil, err
	}

	var doc document.ProductDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID, "stock": bson.M{"$gte": quantity}},
		bson.M{
			"$inc": bson.M{"stock": -quantity},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.ToDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, parseError(err)
	}

	current, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}
	return nil, serviceerrors.NewInsufficientInventoryError(
		fmt.Sprintf("insufficient inventory for product %s: requested %d, available %d", id, quantity, current.Stock),
		map[string]any{
			"product_id": string(id),
			"requested":  quantity,
			"available":  current.Stock,
		},
	)
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	docs, err := r.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return toProducts(docs), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.DeleteByID(ctx, string(id))
}

func toProducts(docs []document.ProductDocument) []*domain.Product {
	products := make([]*domain.Product, len(docs))
	for i := range docs {
		products[i] = docs[i].ToDomain()
	}
	return products
}
