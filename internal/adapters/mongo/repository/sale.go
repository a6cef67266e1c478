package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rafaelleal24/aceitera/internal/adapters/mongo/document"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SaleRepository struct {
	*BaseRepository[document.SaleDocument]
	collection *mongo.Collection
}

func NewSaleRepository(db *mongo.Database) port.SalePort {
	return &SaleRepository{
		BaseRepository: NewBaseRepository[document.SaleDocument](db, document.SalesCollection),
		collection:     db.Collection(document.SalesCollection),
	}
}

func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	if sale.ID != "" {
		return errors.New("cannot create sale with existing ID")
	}

	doc, err := document.ToSaleDocument(sale)
	if err != nil {
		return errInvalidID
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return parseError(err)
	}

	sale.ID = domain.ID(result.InsertedID.(primitive.ObjectID).Hex())
	sale.CreatedAt = doc.CreatedAt
	return nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Sale, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *SaleRepository) GetAll(ctx context.Context) ([]*domain.Sale, error) {
	return r.find(ctx, bson.M{})
}

func (r *SaleRepository) GetByProductID(ctx context.Context, productID domain.ID) ([]*domain.Sale, error) {
	objectID, err := toObjectID(string(productID))
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"product_id": objectID})
}

func (r *SaleRepository) CountByProductID(ctx context.Context, productID domain.ID) (int64, error) {
	objectID, err := toObjectID(string(productID))
	if err != nil {
		return 0, err
	}
	return r.Count(ctx, bson.M{"product_id": objectID})
}

func (r *SaleRepository) DeleteByProductID(ctx context.Context, productID domain.ID) (int64, error) {
	objectID, err := toObjectID(string(productID))
	if err != nil {
		return 0, err
	}
	return r.DeleteMany(ctx, bson.M{"product_id": objectID})
}

func (r *SaleRepository) find(ctx context.Context, filter bson.M) ([]*domain.Sale, error) {
	docs, err := r.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	sales := make([]*domain.Sale, len(docs))
	for i, doc := range docs {
		sales[i] = doc.ToDomain()
	}
	return sales, nil
}
