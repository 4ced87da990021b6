package service

import (
	"context"
	"fmt"
	"time"

	"pantry/internal/model"
	"pantry/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	now         Clock
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return newProductService(productRepo, time.Now, logger)
}

func newProductService(productRepo repository.ProductRepository, now Clock, logger zerolog.Logger) *productService {
	return &productService{
		productRepo: productRepo,
		now:         now,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves all products ordered by type, then expiration date.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// Expired retrieves the products whose expiration date has passed.
func (s *productService) Expired(ctx context.Context) ([]model.Product, error) {
	return s.filter(ctx, model.Product.IsExpired)
}

// Expiring retrieves the products that will expire within three days.
func (s *productService) Expiring(ctx context.Context) ([]model.Product, error) {
	return s.filter(ctx, model.Product.WillExpireSoon)
}

// filter scans the whole inventory and keeps the products matching keep.
func (s *productService) filter(ctx context.Context, keep func(model.Product, time.Time) bool) ([]model.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if keep(p, now) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Add normalises and stores a new product.
func (s *productService) Add(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, fmt.Errorf("product request is nil")
	}

	expDate, err := model.ParseExpDate(req.ExpDate)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		ProdType: model.NormaliseProdType(req.ProdType),
		ExpDate:  expDate,
		Note:     req.Note,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("prod_type", product.ProdType).Msg("failed to add product")
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("prod_type", product.ProdType).
		Time("exp_date", product.ExpDate).
		Msg("product added")

	return product, nil
}

// Delete removes every product when target is "all", otherwise the product
// whose ID ends with (or equals) target.
func (s *productService) Delete(ctx context.Context, target string) error {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if count == 0 {
		return model.ErrNoProducts
	}

	if target == model.DeleteAll {
		n, err := s.productRepo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete all products: %w", err)
		}
		s.logger.Info().Int64("deleted", n).Msg("all products deleted")
		return nil
	}

	deleted, err := deleteMatching(ctx, target, s.productRepo.ListIDs, s.productRepo.DeleteByID)
	if err != nil {
		s.logger.Error().Err(err).Str("target", target).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		s.logger.Debug().Str("target", target).Msg("no product matches ID")
		return model.ErrInvalidID
	}

	s.logger.Info().Str("target", target).Msg("product deleted")
	return nil
}
