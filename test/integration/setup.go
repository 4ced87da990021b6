package integration

import (
	"context"
	"testing"
	"time"

	"pantry/internal/config"
	"pantry/internal/database"
	"pantry/internal/model"
	"pantry/internal/repository"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// TestStore represents a test storage instance backed by a MongoDB container.
type TestStore struct {
	Container *mongodb.MongoDBContainer
	Store     *repository.Store
}

// SetupTestStore creates a MongoDB test container and a store connected to it.
func SetupTestStore(t *testing.T) *TestStore {
	t.Helper()

	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongodb container: %v", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	client, err := database.NewMongoClient(ctx, config.MongoConfig{
		DB:      "pantry_test",
		Host:    uri,
		Timeout: 10,
	}, logger)
	if err != nil {
		t.Fatalf("failed to connect to mongodb: %v", err)
	}

	store, err := repository.NewMongoStore(ctx, client.Database("pantry_test"), logger)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(ctx); err != nil {
			t.Logf("failed to close store: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestStore{
		Container: container,
		Store:     store,
	}
}

// SeedProducts inserts test products relative to now and returns them.
func SeedProducts(t *testing.T, store *repository.Store, now time.Time) []model.Product {
	t.Helper()

	ctx := context.Background()
	day := 24 * time.Hour

	products := []model.Product{
		{ProdType: "egg", ExpDate: now.Add(-2 * day)},
		{ProdType: "egg", ExpDate: now.Add(10 * day)},
		{ProdType: "milk", ExpDate: now.Add(day)},
		{ProdType: "flour", ExpDate: now.Add(90 * day)},
	}

	for i := range products {
		if err := store.Products.Create(ctx, &products[i]); err != nil {
			t.Fatalf("failed to seed product %s: %v", products[i].ProdType, err)
		}
	}

	return products
}

// CleanupStore removes every product and recipe.
func CleanupStore(t *testing.T, store *repository.Store) {
	t.Helper()

	ctx := context.Background()

	if _, err := store.Products.DeleteAll(ctx); err != nil {
		t.Logf("failed to clean products: %v", err)
	}
	if _, err := store.Recipes.DeleteAll(ctx); err != nil {
		t.Logf("failed to clean recipes: %v", err)
	}
}
