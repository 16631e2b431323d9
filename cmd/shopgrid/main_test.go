package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/shopgrid/internal/catalog"
	"github.com/jask/shopgrid/internal/database"
	"github.com/jask/shopgrid/internal/prefs"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHOPGRID_CONFIG", "")
	return home
}

func TestListFirstPage(t *testing.T) {
	isolate(t)
	out, err := run(t, "list", "--category", "Kitchen", "--sort", "priceLow", "--initial", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Kitchen\n10 products available")
	require.Regexp(t, `(?s)1\.\s+Measuring Cups.*2\.\s+Éclair Tin.*3\.\s+Salad Spinner`, out)
	require.NotContains(t, out, "Bamboo Board")
	require.Contains(t, out, "3 of 10 shown. Load more with --reveal 1")
}

func TestListReveal(t *testing.T) {
	isolate(t)
	out, err := run(t, "list", "-c", "Kitchen", "--sort", "priceLow", "--initial", "3", "--batch", "4", "--reveal", "1")
	require.NoError(t, err)
	require.Regexp(t, `(?m)^7\.`, out)
	require.NotRegexp(t, `(?m)^8\.`, out)
	require.Contains(t, out, "7 of 10 shown")

	out, err = run(t, "list", "-c", "Kitchen", "--initial", "3", "--batch", "4", "--reveal", "5")
	require.NoError(t, err)
	require.Regexp(t, `(?m)^10\.`, out)
	require.NotContains(t, out, "Load more")
}

func TestListPriceBounds(t *testing.T) {
	isolate(t)
	out, err := run(t, "list", "--min", "20", "--max", "25", "--sort", "nameAZ")
	require.NoError(t, err)
	require.Contains(t, out, "All Products\n6 products available")
	require.Regexp(t, `(?s)Atlas of Remote Islands.*Bamboo Board.*Bucket Hat.*Övergångar.*Salad Spinner.*Winter Soups`, out)
}

func TestListEmptyWithSuggestion(t *testing.T) {
	isolate(t)
	out, err := run(t, "list", "--category", "Kitchn")
	require.NoError(t, err)
	require.Contains(t, out, "0 products available")
	require.Contains(t, out, "No products found")
	require.Contains(t, out, `Did you mean "Kitchen"?`)
}

func TestListWithPreferences(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".config", "shopgrid", "preferences.yaml")
	require.NoError(t, prefs.Save(path, catalog.Preferences{
		PreferredCategories: []string{"Snacks"},
		MaxPrice:            catalog.Float(5),
	}))

	out, err := run(t, "list", "--prefs", "--initial", "50")
	require.NoError(t, err)
	require.Contains(t, out, "4 products available")
	require.Regexp(t, `1\.\s+Sea Salt Crisps`, out)
	require.NotContains(t, out, "Seed Starter Tray")

	out, err = run(t, "list", "--initial", "50")
	require.NoError(t, err)
	require.Contains(t, out, fmt.Sprintf("%d products available", database.SeedCount()))
}

func TestListRejectsUnknownSort(t *testing.T) {
	isolate(t)
	_, err := run(t, "list", "--sort", "cheapest")
	require.Error(t, err)
}

func TestSeedReset(t *testing.T) {
	home := isolate(t)
	out, err := run(t, "seed", "--reset")
	require.NoError(t, err)
	want := fmt.Sprintf("%d products in %s", database.SeedCount(), filepath.Join(home, ".local", "share", "shopgrid", "shopgrid.db"))
	require.Contains(t, out, want)
}
