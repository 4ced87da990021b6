package repository

import (
	"context"
	"fmt"

	"pantry/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Str("backend", "postgres").Logger(),
	}
}

// List retrieves all products ordered by prodType, then expDate. Types
// compare byte-wise so the order matches the Mongo backend.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, prod_type, exp_date, note
		FROM products
		ORDER BY prod_type COLLATE "C", exp_date
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var (
			p  model.Product
			id uuid.UUID
		)
		if err := rows.Scan(&id, &p.ProdType, &p.ExpDate, &p.Note); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.ID = id.String()
		p.ExpDate = p.ExpDate.UTC()
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ListIDs retrieves the IDs of all products in insertion order.
func (r *productRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := listUUIDs(ctx, r.pool, `SELECT id FROM products ORDER BY created_at, id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list product IDs")
		return nil, fmt.Errorf("failed to list product IDs: %w", err)
	}
	return ids, nil
}

// Create inserts a product and sets its generated ID.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	id := uuid.New()

	query := `
		INSERT INTO products (id, prod_type, exp_date, note)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.pool.Exec(ctx, query, id, product.ProdType, product.ExpDate, product.Note); err != nil {
		r.logger.Error().Err(err).Str("prod_type", product.ProdType).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	product.ID = id.String()
	return nil
}

// Count returns the number of stored products.
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// CountByType returns the number of products with the given prodType.
func (r *productRepository) CountByType(ctx context.Context, prodType string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE prod_type = $1`, prodType).Scan(&n)
	if err != nil {
		r.logger.Error().Err(err).Str("prod_type", prodType).Msg("failed to count products by type")
		return 0, fmt.Errorf("failed to count products of type %s: %w", prodType, err)
	}
	return n, nil
}

// DeleteByID deletes a single product.
func (r *productRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, parsed)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAll deletes every product.
func (r *productRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete all products")
		return 0, fmt.Errorf("failed to delete all products: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByType deletes every product with the given prodType.
func (r *productRepository) DeleteByType(ctx context.Context, prodType string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE prod_type = $1`, prodType)
	if err != nil {
		r.logger.Error().Err(err).Str("prod_type", prodType).Msg("failed to delete products by type")
		return 0, fmt.Errorf("failed to delete products of type %s: %w", prodType, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOneByType deletes an arbitrary product with the given prodType.
func (r *productRepository) DeleteOneByType(ctx context.Context, prodType string) (bool, error) {
	query := `
		DELETE FROM products
		WHERE id = (SELECT id FROM products WHERE prod_type = $1 LIMIT 1)
	`

	tag, err := r.pool.Exec(ctx, query, prodType)
	if err != nil {
		r.logger.Error().Err(err).Str("prod_type", prodType).Msg("failed to delete product by type")
		return false, fmt.Errorf("failed to delete product of type %s: %w", prodType, err)
	}
	return tag.RowsAffected() > 0, nil
}

// listUUIDs runs query, which must select a single UUID column, and returns
// the values as strings.
func listUUIDs(ctx context.Context, pool *pgxpool.Pool, query string) ([]string, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	uuids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(uuids))
	for _, id := range uuids {
		ids = append(ids, id.String())
	}
	return ids, nil
}
