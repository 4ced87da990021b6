package repository

import (
	"context"

	"pantry/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves all products ordered by prodType, then expDate.
	List(ctx context.Context) ([]model.Product, error)

	// ListIDs retrieves the IDs of all products in storage order.
	ListIDs(ctx context.Context) ([]string, error)

	// Create inserts a product and sets its generated ID.
	Create(ctx context.Context, product *model.Product) error

	// Count returns the number of stored products.
	Count(ctx context.Context) (int64, error)

	// CountByType returns the number of products with the given prodType.
	CountByType(ctx context.Context, prodType string) (int64, error)

	// DeleteByID deletes a single product. It reports false when no product
	// has that ID.
	DeleteByID(ctx context.Context, id string) (bool, error)

	// DeleteAll deletes every product and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// DeleteByType deletes every product with the given prodType.
	DeleteByType(ctx context.Context, prodType string) (int64, error)

	// DeleteOneByType deletes an arbitrary product with the given prodType.
	// It reports false when none is left.
	DeleteOneByType(ctx context.Context, prodType string) (bool, error)
}

// RecipeRepository defines the interface for recipe data access operations.
type RecipeRepository interface {
	// List retrieves all recipes ordered by name.
	List(ctx context.Context) ([]model.Recipe, error)

	// ListIDs retrieves the IDs of all recipes in storage order.
	ListIDs(ctx context.Context) ([]string, error)

	// GetByName retrieves a recipe by its unique name.
	// Returns nil without error when it does not exist.
	GetByName(ctx context.Context, name string) (*model.Recipe, error)

	// Create inserts a recipe and sets its generated ID.
	// Returns model.ErrRecipeExists when the name is taken.
	Create(ctx context.Context, recipe *model.Recipe) error

	// Count returns the number of stored recipes.
	Count(ctx context.Context) (int64, error)

	// DeleteByID deletes a single recipe. It reports false when no recipe
	// has that ID.
	DeleteByID(ctx context.Context, id string) (bool, error)

	// DeleteAll deletes every recipe and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// Store bundles the repositories of one storage backend.
type Store struct {
	Products ProductRepository
	Recipes  RecipeRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backing database connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
