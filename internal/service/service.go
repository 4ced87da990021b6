package service

import (
	"context"
	"time"

	"pantry/internal/model"
)

// ProductService defines operations for inventory management.
type ProductService interface {
	// List retrieves all products ordered by type, then expiration date.
	List(ctx context.Context) ([]model.Product, error)

	// Expired retrieves the products whose expiration date has passed.
	Expired(ctx context.Context) ([]model.Product, error)

	// Expiring retrieves the products that will expire within three days.
	Expiring(ctx context.Context) ([]model.Product, error)

	// Add normalises and stores a new product.
	Add(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Delete removes every product when target is "all", otherwise the
	// product whose ID ends with (or equals) target.
	Delete(ctx context.Context, target string) error
}

// RecipeService defines operations for recipe management.
type RecipeService interface {
	// List retrieves all recipes ordered by name.
	List(ctx context.Context) ([]model.Recipe, error)

	// Add stores a new recipe. Names must be unique.
	Add(ctx context.Context, req *model.RecipeRequest) (*model.Recipe, error)

	// Delete removes every recipe when target is "all", otherwise the
	// recipe whose ID ends with (or equals) target.
	Delete(ctx context.Context, target string) error

	// CanMake reports whether the inventory holds enough of every ingredient.
	CanMake(ctx context.Context, recipe *model.Recipe) (bool, error)

	// ClearIngredients removes the recipe's ingredients from the inventory.
	ClearIngredients(ctx context.Context, recipe *model.Recipe) error

	// Makeable retrieves the recipes that can be made with the current inventory.
	Makeable(ctx context.Context) ([]model.Recipe, error)

	// Cook consumes the ingredients of the named recipe.
	Cook(ctx context.Context, name string) error
}

// Clock returns the current time. Services take one so expiry checks can be
// pinned in tests.
type Clock func() time.Time

// idSuffixLen is how many trailing ID characters identify a record.
const idSuffixLen = 4

// idSuffix returns the last idSuffixLen characters of id.
func idSuffix(id string) string {
	if len(id) <= idSuffixLen {
		return id
	}
	return id[len(id)-idSuffixLen:]
}

// deleteMatching deletes the record identified by target. Targets longer than
// a suffix are resolved as full IDs; otherwise ids are scanned in order and
// the first one whose suffix equals target is deleted.
func deleteMatching(
	ctx context.Context,
	target string,
	listIDs func(context.Context) ([]string, error),
	deleteByID func(context.Context, string) (bool, error),
) (bool, error) {
	if len(target) > idSuffixLen {
		return deleteByID(ctx, target)
	}

	ids, err := listIDs(ctx)
	if err != nil {
		return false, err
	}

	for _, id := range ids {
		if idSuffix(id) == target {
			return deleteByID(ctx, id)
		}
	}
	return false, nil
}
