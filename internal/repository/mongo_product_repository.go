package repository

import (
	"context"
	"fmt"
	"time"

	"pantry/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDocument is the stored form of a product.
type productDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	ProdType string             `bson:"prodType"`
	ExpDate  time.Time          `bson:"expDate"`
	Note     *string            `bson:"note,omitempty"`
}

func (d productDocument) toModel() model.Product {
	return model.Product{
		ID:       d.ID.Hex(),
		ProdType: d.ProdType,
		ExpDate:  d.ExpDate.UTC(),
		Note:     d.Note,
	}
}

// mongoProductRepository implements the ProductRepository interface using MongoDB.
type mongoProductRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewMongoProductRepository creates a new MongoDB-backed product repository.
func NewMongoProductRepository(db *mongo.Database, logger zerolog.Logger) ProductRepository {
	return &mongoProductRepository{
		coll:   db.Collection(ProductCollection),
		logger: logger.With().Str("repository", "product").Str("backend", "mongodb").Logger(),
	}
}

// List retrieves all products ordered by prodType, then expDate.
func (r *mongoProductRepository) List(ctx context.Context) ([]model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "prodType", Value: 1}, {Key: "expDate", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode products")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]model.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toModel())
	}
	return products, nil
}

// ListIDs retrieves the IDs of all products in natural order.
func (r *mongoProductRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := listObjectIDs(ctx, r.coll)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list product IDs")
		return nil, fmt.Errorf("failed to list product IDs: %w", err)
	}
	return ids, nil
}

// Create inserts a product and sets its generated ID.
func (r *mongoProductRepository) Create(ctx context.Context, product *model.Product) error {
	doc := productDocument{
		ProdType: product.ProdType,
		ExpDate:  product.ExpDate,
		Note:     product.Note,
	}

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error().Err(err).Str("prod_type", product.ProdType).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid.Hex()
	}
	return nil
}

// Count returns the number of stored products.
func (r *mongoProductRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// CountByType returns the number of products with the given prodType.
func (r *mongoProductRepository) CountByType(ctx context.Context, prodType string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"prodType": prodType})
	if err != nil {
		r.logger.Error().Err(err).Str("prod_type", prodType).Msg("failed to count products by type")
		return 0, fmt.Errorf("failed to count products of type %s: %w", prodType, err)
	}
	return n, nil
}

// DeleteByID deletes a single product.
func (r *mongoProductRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	deleted, err := deleteObjectID(ctx, r.coll, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return deleted, nil
}

// DeleteAll deletes every product.
func (r *mongoProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete all products")
		return 0, fmt.Errorf("failed to delete all products: %w", err)
	}
	return result.DeletedCount, nil
}

// DeleteByType deletes every product with the given prodType.
func (r *mongoProductRepository) DeleteByType(ctx context.Context, prodType string) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"prodType": prodType})
	if err != nil {
		r.logger.Error().Err(err).Str("prod_type", prodType).Msg("failed to delete products by type")
		return 0, fmt.Errorf("failed to delete products of type %s: %w", prodType, err)
	}
	return result.DeletedCount, nil
}

// DeleteOneByType deletes an arbitrary product with the given prodType.
func (r *mongoProductRepository) DeleteOneByType(ctx context.Context, prodType string) (bool, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"prodType": prodType})
	if err != nil {
		r.logger.Error().Err(err).Str("prod_type", prodType).Msg("failed to delete product by type")
		return false, fmt.Errorf("failed to delete product of type %s: %w", prodType, err)
	}
	return result.DeletedCount > 0, nil
}
