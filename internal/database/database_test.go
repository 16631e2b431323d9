package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/shopgrid/internal/catalog"
	"github.com/jask/shopgrid/internal/database/repository"
)

func openTestDB(t *testing.T) (context.Context, *repository.ProductRepo, *repository.CategoryRepo) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunMigrations(dbPath))
	// second run is a no-op
	require.NoError(t, RunMigrations(dbPath))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))
	return ctx, repository.NewProductRepo(db), repository.NewCategoryRepo(db)
}

func TestSeedAndList(t *testing.T) {
	t.Parallel()
	ctx, products, categories := openTestDB(t)

	n, err := products.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, SeedCount(), n)

	cats, err := categories.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Shoes", "Hats", "Kitchen", "Garden", "Books", "Snacks"}, repository.Labels(cats))

	list, err := products.List(ctx, repository.ProductFilters{})
	require.NoError(t, err)
	require.Len(t, list, SeedCount())
	require.Equal(t, "Trail Runner", list[0].Name)
	require.Equal(t, []string{"outdoor"}, list[0].Tags)
	require.NotNil(t, list[0].Rating)

	classify := repository.NewClassifier(cats)
	items := repository.Items(list)
	shoes := catalog.FilterCategory(items, "Shoes", classify)
	require.Len(t, shoes, 8)
	require.Equal(t, repository.Uncategorized, classify(catalog.Item{CategoryID: "missing"}))
}

func TestProductUpsertAndGet(t *testing.T) {
	t.Parallel()
	ctx, products, _ := openTestDB(t)

	p := repository.Product{ID: "p-1", Name: "Mystery Box", Price: 5}
	require.NoError(t, products.Upsert(ctx, p))
	got, err := products.Get(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Nil(t, got.CategoryID)
	require.Nil(t, got.Rating)
	require.Empty(t, got.Tags)

	p.Price = 7.5
	p.Rating = catalog.Float(2)
	require.NoError(t, products.Upsert(ctx, p))
	got, err = products.Get(ctx, "p-1")
	require.NoError(t, err)
	require.Equal(t, 7.5, got.Price)
	require.Equal(t, 2.0, *got.Rating)

	missing, err := products.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	found, err := products.List(ctx, repository.ProductFilters{Search: "Mystery"})
	require.NoError(t, err)
	require.Len(t, found, 1)
}
