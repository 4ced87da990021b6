package service

import (
	"context"
	"errors"
	"fmt"

	"pantry/internal/model"
	"pantry/internal/repository"

	"github.com/rs/zerolog"
)

// recipeService implements RecipeService.
type recipeService struct {
	recipeRepo  repository.RecipeRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewRecipeService creates a new recipe service. Ingredient checks and
// consumption go through productRepo.
func NewRecipeService(recipeRepo repository.RecipeRepository, productRepo repository.ProductRepository, logger zerolog.Logger) RecipeService {
	return &recipeService{
		recipeRepo:  recipeRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "recipe").Logger(),
	}
}

// List retrieves all recipes ordered by name.
func (s *recipeService) List(ctx context.Context) ([]model.Recipe, error) {
	recipes, err := s.recipeRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list recipes")
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	s.logger.Debug().Int("count", len(recipes)).Msg("retrieved recipes")

	return recipes, nil
}

// Add stores a new recipe.
func (s *recipeService) Add(ctx context.Context, req *model.RecipeRequest) (*model.Recipe, error) {
	if req == nil {
		return nil, fmt.Errorf("recipe request is nil")
	}

	recipe := &model.Recipe{
		Name:         req.RcpName,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		if errors.Is(err, model.ErrRecipeExists) {
			s.logger.Warn().Str("recipe_name", recipe.Name).Msg("recipe name already exists")
			return nil, err
		}
		s.logger.Error().Err(err).Str("recipe_name", recipe.Name).Msg("failed to add recipe")
		return nil, fmt.Errorf("failed to add recipe: %w", err)
	}

	s.logger.Info().
		Str("recipe_id", recipe.ID).
		Str("recipe_name", recipe.Name).
		Int("ingredients", len(recipe.Ingredients)).
		Msg("recipe added")

	return recipe, nil
}

// Delete removes every recipe when target is "all", otherwise the recipe
// whose ID ends with (or equals) target.
func (s *recipeService) Delete(ctx context.Context, target string) error {
	count, err := s.recipeRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count recipes")
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if count == 0 {
		return model.ErrNoRecipes
	}

	if target == model.DeleteAll {
		n, err := s.recipeRepo.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete all recipes: %w", err)
		}
		s.logger.Info().Int64("deleted", n).Msg("all recipes deleted")
		return nil
	}

	deleted, err := deleteMatching(ctx, target, s.recipeRepo.ListIDs, s.recipeRepo.DeleteByID)
	if err != nil {
		s.logger.Error().Err(err).Str("target", target).Msg("failed to delete recipe")
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if !deleted {
		s.logger.Debug().Str("target", target).Msg("no recipe matches ID")
		return model.ErrInvalidID
	}

	s.logger.Info().Str("target", target).Msg("recipe deleted")
	return nil
}

// CanMake reports whether the inventory holds at least the required quantity
// of every ingredient. Ingredient names match product types exactly.
func (s *recipeService) CanMake(ctx context.Context, recipe *model.Recipe) (bool, error) {
	for ingredient, qty := range recipe.Ingredients {
		have, err := s.productRepo.CountByType(ctx, ingredient)
		if err != nil {
			return false, fmt.Errorf("failed to check ingredient %s: %w", ingredient, err)
		}
		if have < int64(qty) {
			s.logger.Debug().
				Str("recipe_name", recipe.Name).
				Str("ingredient", ingredient).
				Int("required", qty).
				Int64("available", have).
				Msg("missing ingredient")
			return false, nil
		}
	}
	return true, nil
}

// ClearIngredients removes the recipe's ingredients from the inventory. An
// ingredient needed once removes every product of that type; otherwise one
// product is removed per unit, stopping early when none are left. Deletes are
// independent, so a failure can leave the inventory partially cleared.
func (s *recipeService) ClearIngredients(ctx context.Context, recipe *model.Recipe) error {
	for ingredient, qty := range recipe.Ingredients {
		if qty == 1 {
			if _, err := s.productRepo.DeleteByType(ctx, ingredient); err != nil {
				return fmt.Errorf("failed to clear ingredient %s: %w", ingredient, err)
			}
			continue
		}

		for i := 0; i < qty; i++ {
			deleted, err := s.productRepo.DeleteOneByType(ctx, ingredient)
			if err != nil {
				return fmt.Errorf("failed to clear ingredient %s: %w", ingredient, err)
			}
			if !deleted {
				s.logger.Warn().
					Str("recipe_name", recipe.Name).
					Str("ingredient", ingredient).
					Int("required", qty).
					Int("removed", i).
					Msg("ran out of ingredient while clearing")
				break
			}
		}
	}

	s.logger.Info().Str("recipe_name", recipe.Name).Msg("ingredients cleared")
	return nil
}

// Makeable retrieves the recipes that can be made with the current inventory.
func (s *recipeService) Makeable(ctx context.Context) ([]model.Recipe, error) {
	recipes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	makeable := make([]model.Recipe, 0, len(recipes))
	for i := range recipes {
		ok, err := s.CanMake(ctx, &recipes[i])
		if err != nil {
			s.logger.Error().Err(err).Str("recipe_name", recipes[i].Name).Msg("failed to check recipe")
			return nil, err
		}
		if ok {
			makeable = append(makeable, recipes[i])
		}
	}
	return makeable, nil
}

// Cook consumes the ingredients of the named recipe.
func (s *recipeService) Cook(ctx context.Context, name string) error {
	recipe, err := s.recipeRepo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return model.ErrRecipeNotFound
	}

	ok, err := s.CanMake(ctx, recipe)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrMissingIngredients
	}

	return s.ClearIngredients(ctx, recipe)
}
