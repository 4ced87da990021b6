package repository

import (
	"context"
	"testing"
	"time"

	"pantry/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// testProductRepository exercises a ProductRepository against an empty backend.
func testProductRepository(t *testing.T, repo ProductRepository) {
	ctx := context.Background()

	t.Run("Empty collection", func(t *testing.T) {
		products, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	seed := []model.Product{
		{ProdType: "milk", ExpDate: date(2030, 1, 5)},
		{ProdType: "egg", ExpDate: date(2030, 2, 1), Note: strPtr("free range")},
		{ProdType: "milk", ExpDate: date(2030, 1, 1)},
		{ProdType: "egg", ExpDate: date(2030, 1, 15)},
		{ProdType: "egg", ExpDate: date(2030, 3, 1)},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
		require.NotEmpty(t, seed[i].ID)
	}

	t.Run("List orders by type then expiry", func(t *testing.T) {
		products, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 5)

		got := make([]string, 0, len(products))
		for _, p := range products {
			got = append(got, p.ProdType+"@"+p.ExpDate.Format("2006-01-02"))
		}
		assert.Equal(t, []string{
			"egg@2030-01-15",
			"egg@2030-02-01",
			"egg@2030-03-01",
			"milk@2030-01-01",
			"milk@2030-01-05",
		}, got)

		assert.NotNil(t, products[1].Note)
		assert.Equal(t, "free range", *products[1].Note)
		assert.Nil(t, products[0].Note)
	})

	t.Run("ListIDs returns every ID", func(t *testing.T) {
		ids, err := repo.ListIDs(ctx)
		require.NoError(t, err)
		require.Len(t, ids, 5)
		for _, p := range seed {
			assert.Contains(t, ids, p.ID)
		}
	})

	t.Run("CountByType", func(t *testing.T) {
		n, err := repo.CountByType(ctx, "egg")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		n, err = repo.CountByType(ctx, "Egg")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		deleted, err := repo.DeleteByID(ctx, seed[0].ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.DeleteByID(ctx, seed[0].ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = repo.DeleteByID(ctx, "not-an-id")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("DeleteOneByType", func(t *testing.T) {
		deleted, err := repo.DeleteOneByType(ctx, "egg")
		require.NoError(t, err)
		assert.True(t, deleted)

		n, err := repo.CountByType(ctx, "egg")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		deleted, err = repo.DeleteOneByType(ctx, "butter")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("DeleteByType", func(t *testing.T) {
		n, err := repo.DeleteByType(ctx, "egg")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("DeleteAll", func(t *testing.T) {
		n, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

// testRecipeRepository exercises a RecipeRepository against an empty backend.
func testRecipeRepository(t *testing.T, repo RecipeRepository) {
	ctx := context.Background()

	seed := []model.Recipe{
		{Name: "Pancakes", Ingredients: map[string]int{"egg": 2, "milk": 1}, Instructions: "Mix and fry."},
		{Name: "Omelette", Ingredients: map[string]int{"egg": 3}, Instructions: "Whisk and fry."},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
		require.NotEmpty(t, seed[i].ID)
	}

	t.Run("List orders by name", func(t *testing.T) {
		recipes, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, "Omelette", recipes[0].Name)
		assert.Equal(t, "Pancakes", recipes[1].Name)
		assert.Equal(t, map[string]int{"egg": 2, "milk": 1}, recipes[1].Ingredients)
	})

	t.Run("List sorts names byte-wise", func(t *testing.T) {
		extra := []model.Recipe{
			{Name: "apple crumble", Ingredients: map[string]int{"apple": 4}, Instructions: "Bake."},
			{Name: "Banana bread", Ingredients: map[string]int{"banana": 3}, Instructions: "Bake."},
		}
		for i := range extra {
			require.NoError(t, repo.Create(ctx, &extra[i]))
		}

		recipes, err := repo.List(ctx)
		require.NoError(t, err)
		names := make([]string, 0, len(recipes))
		for _, rcp := range recipes {
			names = append(names, rcp.Name)
		}
		assert.Equal(t, []string{"Banana bread", "Omelette", "Pancakes", "apple crumble"}, names)

		for _, rcp := range extra {
			deleted, err := repo.DeleteByID(ctx, rcp.ID)
			require.NoError(t, err)
			require.True(t, deleted)
		}
	})

	t.Run("Duplicate name rejected", func(t *testing.T) {
		dup := model.Recipe{Name: "Omelette", Ingredients: map[string]int{"egg": 1}, Instructions: "Again."}
		err := repo.Create(ctx, &dup)
		assert.ErrorIs(t, err, model.ErrRecipeExists)
	})

	t.Run("GetByName", func(t *testing.T) {
		rcp, err := repo.GetByName(ctx, "Pancakes")
		require.NoError(t, err)
		require.NotNil(t, rcp)
		assert.Equal(t, seed[0].ID, rcp.ID)
		assert.Equal(t, "Mix and fry.", rcp.Instructions)

		rcp, err = repo.GetByName(ctx, "Waffles")
		require.NoError(t, err)
		assert.Nil(t, rcp)
	})

	t.Run("ListIDs and DeleteByID", func(t *testing.T) {
		ids, err := repo.ListIDs(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{seed[0].ID, seed[1].ID}, ids)

		deleted, err := repo.DeleteByID(ctx, seed[1].ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("DeleteAll", func(t *testing.T) {
		n, err := repo.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		recipes, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})
}
