package repository

import (
	"context"
	"errors"
	"fmt"

	"pantry/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// recipeDocument is the stored form of a recipe.
type recipeDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Ingredients  map[string]int     `bson:"ingredients"`
	Instructions string             `bson:"instructions"`
}

func (d recipeDocument) toModel() model.Recipe {
	ingredients := d.Ingredients
	if ingredients == nil {
		ingredients = map[string]int{}
	}
	return model.Recipe{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Ingredients:  ingredients,
		Instructions: d.Instructions,
	}
}

// mongoRecipeRepository implements the RecipeRepository interface using MongoDB.
type mongoRecipeRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewMongoRecipeRepository creates a new MongoDB-backed recipe repository.
func NewMongoRecipeRepository(db *mongo.Database, logger zerolog.Logger) RecipeRepository {
	return &mongoRecipeRepository{
		coll:   db.Collection(RecipeCollection),
		logger: logger.With().Str("repository", "recipe").Str("backend", "mongodb").Logger(),
	}
}

// List retrieves all recipes ordered by name.
func (r *mongoRecipeRepository) List(ctx context.Context) ([]model.Recipe, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query recipes")
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []recipeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode recipes")
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}

	recipes := make([]model.Recipe, 0, len(docs))
	for _, d := range docs {
		recipes = append(recipes, d.toModel())
	}
	return recipes, nil
}

// ListIDs retrieves the IDs of all recipes in natural order.
func (r *mongoRecipeRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := listObjectIDs(ctx, r.coll)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list recipe IDs")
		return nil, fmt.Errorf("failed to list recipe IDs: %w", err)
	}
	return ids, nil
}

// GetByName retrieves a recipe by its unique name.
func (r *mongoRecipeRepository) GetByName(ctx context.Context, name string) (*model.Recipe, error) {
	var doc recipeDocument
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("recipe_name", name).Msg("recipe not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("recipe_name", name).Msg("failed to query recipe")
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}

	recipe := doc.toModel()
	return &recipe, nil
}

// Create inserts a recipe and sets its generated ID.
func (r *mongoRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	doc := recipeDocument{
		Name:         recipe.Name,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
	}

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Debug().Str("recipe_name", recipe.Name).Msg("recipe name already exists")
			return model.ErrRecipeExists
		}
		r.logger.Error().Err(err).Str("recipe_name", recipe.Name).Msg("failed to insert recipe")
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		recipe.ID = oid.Hex()
	}
	return nil
}

// Count returns the number of stored recipes.
func (r *mongoRecipeRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count recipes")
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return n, nil
}

// DeleteByID deletes a single recipe.
func (r *mongoRecipeRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	deleted, err := deleteObjectID(ctx, r.coll, id)
	if err != nil {
		r.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to delete recipe")
		return false, fmt.Errorf("failed to delete recipe: %w", err)
	}
	return deleted, nil
}

// DeleteAll deletes every recipe.
func (r *mongoRecipeRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete all recipes")
		return 0, fmt.Errorf("failed to delete all recipes: %w", err)
	}
	return result.DeletedCount, nil
}
