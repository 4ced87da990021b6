package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	ProductCollection = "product"
	RecipeCollection  = "recipe"
)

// NewMongoStore builds a Store over db and ensures its indexes exist.
func NewMongoStore(ctx context.Context, db *mongo.Database, logger zerolog.Logger) (*Store, error) {
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		return nil, err
	}

	client := db.Client()
	return &Store{
		Products: NewMongoProductRepository(db, logger),
		Recipes:  NewMongoRecipeRepository(db, logger),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}, nil
}

// EnsureMongoIndexes creates the unique recipe name index and the product
// type/expiry index used for ordering and type lookups.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(RecipeCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create recipe name index: %w", err)
	}

	_, err = db.Collection(ProductCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "prodType", Value: 1}, {Key: "expDate", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product type index: %w", err)
	}

	return nil
}

// listObjectIDs returns the hex IDs of every document in coll, in natural order.
func listObjectIDs(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID.Hex())
	}
	return ids, nil
}

// deleteObjectID deletes the document with the given hex ID. IDs that are
// not valid ObjectIDs cannot match any document.
func deleteObjectID(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
