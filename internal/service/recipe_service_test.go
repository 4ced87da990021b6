package service

import (
	"context"
	"errors"
	"testing"

	"pantry/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecipeService_Add(t *testing.T) {
	ctx := context.Background()
	req := &model.RecipeRequest{
		RcpName:      "Omelette",
		Ingredients:  map[string]int{"egg": 2},
		Instructions: "Whisk and fry.",
	}

	tests := []struct {
		name        string
		mockError   error
		expectedErr error
		expectError bool
	}{
		{name: "Success"},
		{name: "Duplicate name", mockError: model.ErrRecipeExists, expectedErr: model.ErrRecipeExists},
		{name: "Repository error", mockError: errors.New("insert failed"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipeRepo := new(MockRecipeRepository)
			svc := NewRecipeService(recipeRepo, new(MockProductRepository), zerolog.Nop())

			recipeRepo.On("Create", ctx, mock.MatchedBy(func(r *model.Recipe) bool {
				return r.Name == "Omelette" && r.Ingredients["egg"] == 2 && r.Instructions == "Whisk and fry."
			})).Return(tt.mockError)

			recipe, err := svc.Add(ctx, req)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, recipe)
			case tt.expectError:
				require.Error(t, err)
				assert.Nil(t, recipe)
			default:
				require.NoError(t, err)
				assert.Equal(t, "Omelette", recipe.Name)
			}

			recipeRepo.AssertExpectations(t)
		})
	}
}

func TestRecipeService_Delete(t *testing.T) {
	ctx := context.Background()
	ids := []string{"665f1c2a9b1e8a0001a10001", "665f1c2a9b1e8a0001a10002"}

	tests := []struct {
		name        string
		target      string
		setup       func(m *MockRecipeRepository)
		expectedErr error
	}{
		{
			name:   "Empty collection",
			target: "0001",
			setup: func(m *MockRecipeRepository) {
				m.On("Count", ctx).Return(int64(0), nil)
			},
			expectedErr: model.ErrNoRecipes,
		},
		{
			name:   "Delete all",
			target: "all",
			setup: func(m *MockRecipeRepository) {
				m.On("Count", ctx).Return(int64(2), nil)
				m.On("DeleteAll", ctx).Return(int64(2), nil)
			},
		},
		{
			name:   "Suffix match",
			target: "0002",
			setup: func(m *MockRecipeRepository) {
				m.On("Count", ctx).Return(int64(2), nil)
				m.On("ListIDs", ctx).Return(ids, nil)
				m.On("DeleteByID", ctx, ids[1]).Return(true, nil)
			},
		},
		{
			name:   "Unknown suffix",
			target: "9999",
			setup: func(m *MockRecipeRepository) {
				m.On("Count", ctx).Return(int64(2), nil)
				m.On("ListIDs", ctx).Return(ids, nil)
			},
			expectedErr: model.ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipeRepo := new(MockRecipeRepository)
			tt.setup(recipeRepo)
			svc := NewRecipeService(recipeRepo, new(MockProductRepository), zerolog.Nop())

			err := svc.Delete(ctx, tt.target)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			recipeRepo.AssertExpectations(t)
		})
	}
}

func TestRecipeService_CanMake(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		recipe   *model.Recipe
		counts   map[string]int64
		expected bool
	}{
		{
			name:     "No eggs in inventory",
			recipe:   &model.Recipe{Name: "Omelette", Ingredients: map[string]int{"egg": 2}},
			counts:   map[string]int64{"egg": 0},
			expected: false,
		},
		{
			name:     "Exactly enough",
			recipe:   &model.Recipe{Name: "Omelette", Ingredients: map[string]int{"egg": 2}},
			counts:   map[string]int64{"egg": 2},
			expected: true,
		},
		{
			name:     "One ingredient short",
			recipe:   &model.Recipe{Name: "Pancakes", Ingredients: map[string]int{"egg": 2, "milk": 1}},
			counts:   map[string]int64{"egg": 5, "milk": 0},
			expected: false,
		},
		{
			name:     "Case mismatch never matches",
			recipe:   &model.Recipe{Name: "Toast", Ingredients: map[string]int{"Bread": 1}},
			counts:   map[string]int64{"Bread": 0},
			expected: false,
		},
		{
			name:     "No ingredients",
			recipe:   &model.Recipe{Name: "Water", Ingredients: map[string]int{}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := new(MockProductRepository)
			for prodType, n := range tt.counts {
				productRepo.On("CountByType", ctx, prodType).Return(n, nil).Maybe()
			}
			svc := NewRecipeService(new(MockRecipeRepository), productRepo, zerolog.Nop())

			ok, err := svc.CanMake(ctx, tt.recipe)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestRecipeService_CanMake_RepositoryError(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("CountByType", ctx, "egg").Return(int64(0), errors.New("database error"))
	svc := NewRecipeService(new(MockRecipeRepository), productRepo, zerolog.Nop())

	ok, err := svc.CanMake(ctx, &model.Recipe{Ingredients: map[string]int{"egg": 1}})

	require.Error(t, err)
	assert.False(t, ok)
}

func TestRecipeService_ClearIngredients(t *testing.T) {
	ctx := context.Background()

	t.Run("Quantity one removes every product of the type", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("DeleteByType", ctx, "milk").Return(int64(3), nil).Once()
		svc := NewRecipeService(new(MockRecipeRepository), productRepo, zerolog.Nop())

		err := svc.ClearIngredients(ctx, &model.Recipe{Ingredients: map[string]int{"milk": 1}})

		require.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("Larger quantity removes one product per unit", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("DeleteOneByType", ctx, "egg").Return(true, nil).Times(3)
		svc := NewRecipeService(new(MockRecipeRepository), productRepo, zerolog.Nop())

		err := svc.ClearIngredients(ctx, &model.Recipe{Ingredients: map[string]int{"egg": 3}})

		require.NoError(t, err)
		productRepo.AssertExpectations(t)
		productRepo.AssertNumberOfCalls(t, "DeleteOneByType", 3)
	})

	t.Run("Running out is a no-op, not an error", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("DeleteOneByType", ctx, "egg").Return(true, nil).Once()
		productRepo.On("DeleteOneByType", ctx, "egg").Return(false, nil).Once()
		svc := NewRecipeService(new(MockRecipeRepository), productRepo, zerolog.Nop())

		err := svc.ClearIngredients(ctx, &model.Recipe{Ingredients: map[string]int{"egg": 4}})

		require.NoError(t, err)
		productRepo.AssertNumberOfCalls(t, "DeleteOneByType", 2)
	})

	t.Run("Repository error stops clearing", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("DeleteOneByType", ctx, "egg").Return(false, errors.New("database error"))
		svc := NewRecipeService(new(MockRecipeRepository), productRepo, zerolog.Nop())

		err := svc.ClearIngredients(ctx, &model.Recipe{Ingredients: map[string]int{"egg": 2}})

		require.Error(t, err)
		productRepo.AssertNumberOfCalls(t, "DeleteOneByType", 1)
	})
}

func TestRecipeService_Makeable(t *testing.T) {
	ctx := context.Background()

	recipes := []model.Recipe{
		{ID: "r1", Name: "Omelette", Ingredients: map[string]int{"egg": 2}},
		{ID: "r2", Name: "Pancakes", Ingredients: map[string]int{"egg": 1, "flour": 1}},
		{ID: "r3", Name: "Toast", Ingredients: map[string]int{"bread": 1}},
	}

	recipeRepo := new(MockRecipeRepository)
	recipeRepo.On("List", ctx).Return(recipes, nil)

	productRepo := new(MockProductRepository)
	productRepo.On("CountByType", ctx, "egg").Return(int64(2), nil)
	productRepo.On("CountByType", ctx, "flour").Return(int64(0), nil)
	productRepo.On("CountByType", ctx, "bread").Return(int64(1), nil)

	svc := NewRecipeService(recipeRepo, productRepo, zerolog.Nop())

	makeable, err := svc.Makeable(ctx)

	require.NoError(t, err)
	require.Len(t, makeable, 2)
	assert.Equal(t, "Omelette", makeable[0].Name)
	assert.Equal(t, "Toast", makeable[1].Name)
}

func TestRecipeService_Cook(t *testing.T) {
	ctx := context.Background()
	omelette := &model.Recipe{ID: "r1", Name: "Omelette", Ingredients: map[string]int{"egg": 2}}

	tests := []struct {
		name        string
		setup       func(r *MockRecipeRepository, p *MockProductRepository)
		expectedErr error
		expectError bool
	}{
		{
			name: "Cooks and consumes ingredients",
			setup: func(r *MockRecipeRepository, p *MockProductRepository) {
				r.On("GetByName", ctx, "Omelette").Return(omelette, nil)
				p.On("CountByType", ctx, "egg").Return(int64(2), nil)
				p.On("DeleteOneByType", ctx, "egg").Return(true, nil).Times(2)
			},
		},
		{
			name: "Unknown recipe",
			setup: func(r *MockRecipeRepository, p *MockProductRepository) {
				r.On("GetByName", ctx, "Omelette").Return(nil, nil)
			},
			expectedErr: model.ErrRecipeNotFound,
		},
		{
			name: "Missing ingredients",
			setup: func(r *MockRecipeRepository, p *MockProductRepository) {
				r.On("GetByName", ctx, "Omelette").Return(omelette, nil)
				p.On("CountByType", ctx, "egg").Return(int64(1), nil)
			},
			expectedErr: model.ErrMissingIngredients,
		},
		{
			name: "Lookup error",
			setup: func(r *MockRecipeRepository, p *MockProductRepository) {
				r.On("GetByName", ctx, "Omelette").Return(nil, errors.New("database error"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipeRepo := new(MockRecipeRepository)
			productRepo := new(MockProductRepository)
			tt.setup(recipeRepo, productRepo)
			svc := NewRecipeService(recipeRepo, productRepo, zerolog.Nop())

			err := svc.Cook(ctx, "Omelette")

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.expectError:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}

			recipeRepo.AssertExpectations(t)
			productRepo.AssertExpectations(t)
		})
	}
}
