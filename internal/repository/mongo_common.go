package repository

import (
	"context"
	"errors"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	oldestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
)

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

// findOne decodes the first match of filter, mapping a miss to a not-found error named after what.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, what string) (*T, error) {
	doc := new(T)
	err := coll.FindOne(ctx, filter).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFoundError("%s not found", what)
	}
	if err != nil {
		return nil, domain.StorageError(err, "could not load %s", what)
	}
	return doc, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions, what string) ([]*T, error) {
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.StorageError(err, "could not list %s", what)
	}
	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, domain.StorageError(err, "could not read %s", what)
	}
	return out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}, what string) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ConflictError("%s already exists", what)
		}
		return domain.StorageError(err, "could not create %s", what)
	}
	return nil
}

func replaceOne(ctx context.Context, coll *mongo.Collection, id string, doc interface{}, what string) error {
	res, err := coll.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		return domain.StorageError(err, "could not save %s", what)
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError("%s not found", what)
	}
	return nil
}
