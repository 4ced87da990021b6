package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schema creates the PostgreSQL tables when they do not exist yet.
const schema = `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		prod_type VARCHAR(50) NOT NULL,
		exp_date TIMESTAMPTZ NOT NULL,
		note VARCHAR(50),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_products_type_exp ON products(prod_type, exp_date);

	CREATE TABLE IF NOT EXISTS recipes (
		id UUID PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE,
		ingredients JSONB NOT NULL,
		instructions TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// EnsureSchema creates the products and recipes tables.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// NewPostgresStore builds a Store over pool and ensures the schema exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) (*Store, error) {
	if err := EnsureSchema(ctx, pool); err != nil {
		return nil, err
	}

	return &Store{
		Products: NewProductRepository(pool, logger),
		Recipes:  NewRecipeRepository(pool, logger),
		ping:     pool.Ping,
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}
