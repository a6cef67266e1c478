package document

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	ProductsCollection = "products"
	SalesCollection    = "sales"
	OutboxCollection   = "outbox"
)

type Document interface {
	GetID() primitive.ObjectID
}

// Indexes lists the secondary indexes of every collection. The outbox is
// read in _id order and needs none.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		ProductsCollection: {
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		SalesCollection: {
			{Keys: bson.D{{Key: "product_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		},
	}
}
