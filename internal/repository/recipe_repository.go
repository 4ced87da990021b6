package repository

import (
	"context"
	"errors"
	"fmt"

	"pantry/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// recipeRepository implements the RecipeRepository interface using PostgreSQL.
type recipeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRecipeRepository creates a new PostgreSQL-backed recipe repository.
func NewRecipeRepository(pool *pgxpool.Pool, logger zerolog.Logger) RecipeRepository {
	return &recipeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "recipe").Str("backend", "postgres").Logger(),
	}
}

// List retrieves all recipes ordered by name, compared byte-wise.
func (r *recipeRepository) List(ctx context.Context) ([]model.Recipe, error) {
	query := `
		SELECT id, name, ingredients, instructions
		FROM recipes
		ORDER BY name COLLATE "C"
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query recipes")
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	for rows.Next() {
		rcp, err := scanRecipe(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan recipe row")
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *rcp)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating recipe rows")
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

// ListIDs retrieves the IDs of all recipes in insertion order.
func (r *recipeRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := listUUIDs(ctx, r.pool, `SELECT id FROM recipes ORDER BY created_at, id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list recipe IDs")
		return nil, fmt.Errorf("failed to list recipe IDs: %w", err)
	}
	return ids, nil
}

// GetByName retrieves a recipe by its unique name.
func (r *recipeRepository) GetByName(ctx context.Context, name string) (*model.Recipe, error) {
	query := `
		SELECT id, name, ingredients, instructions
		FROM recipes
		WHERE name = $1
	`

	rcp, err := scanRecipe(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("recipe_name", name).Msg("recipe not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("recipe_name", name).Msg("failed to query recipe")
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}

	return rcp, nil
}

// Create inserts a recipe and sets its generated ID.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	id := uuid.New()

	query := `
		INSERT INTO recipes (id, name, ingredients, instructions)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, id, recipe.Name, recipe.Ingredients, recipe.Instructions)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().Str("recipe_name", recipe.Name).Msg("recipe name already exists")
			return model.ErrRecipeExists
		}
		r.logger.Error().Err(err).Str("recipe_name", recipe.Name).Msg("failed to insert recipe")
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	recipe.ID = id.String()
	return nil
}

// Count returns the number of stored recipes.
func (r *recipeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&n); err != nil {
		r.logger.Error().Err(err).Msg("failed to count recipes")
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return n, nil
}

// DeleteByID deletes a single recipe.
func (r *recipeRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, parsed)
	if err != nil {
		r.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to delete recipe")
		return false, fmt.Errorf("failed to delete recipe: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAll deletes every recipe.
func (r *recipeRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete all recipes")
		return 0, fmt.Errorf("failed to delete all recipes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanRecipe scans one recipes row selected as id, name, ingredients, instructions.
func scanRecipe(row pgx.Row) (*model.Recipe, error) {
	var (
		rcp model.Recipe
		id  uuid.UUID
	)
	if err := row.Scan(&id, &rcp.Name, &rcp.Ingredients, &rcp.Instructions); err != nil {
		return nil, err
	}
	rcp.ID = id.String()
	if rcp.Ingredients == nil {
		rcp.Ingredients = map[string]int{}
	}
	return &rcp, nil
}
