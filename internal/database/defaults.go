package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/shopgrid/internal/database/repository"
)

type seedProduct struct {
	name   string
	price  float64
	rating float64 // 0 = unrated
	tags   []string
}

var seedCatalog = []struct {
	category string
	products []seedProduct
}{
	{"Shoes", []seedProduct{
		{"Trail Runner", 89.95, 4.6, []string{"outdoor"}},
		{"Canvas Sneaker", 39.5, 4.1, nil},
		{"Leather Boot", 149, 4.8, []string{"winter"}},
		{"House Slipper", 19.99, 0, nil},
		{"Sport Sandal", 34, 3.9, []string{"summer"}},
		{"Court Shoe", 72, 4.2, nil},
		{"Wellington", 45, 3.5, []string{"outdoor", "winter"}},
		{"Espadrille", 29, 0, []string{"summer"}},
	}},
	{"Hats", []seedProduct{
		{"Wool Beanie", 18, 4.4, []string{"winter"}},
		{"Bucket Hat", 22.5, 3.8, []string{"summer"}},
		{"Baseball Cap", 15, 4, nil},
		{"Panama", 65, 4.7, []string{"summer"}},
		{"Flat Cap", 35, 0, nil},
		{"Trapper Hat", 42, 4.1, []string{"winter", "outdoor"}},
	}},
	{"Kitchen", []seedProduct{
		{"Cast Iron Skillet", 54, 4.9, nil},
		{"Chef's Knife", 79, 4.8, nil},
		{"Bamboo Board", 24, 4.3, nil},
		{"Éclair Tin", 12.5, 3.6, []string{"baking"}},
		{"Stand Mixer", 349, 4.5, []string{"baking"}},
		{"Pour-over Kettle", 48, 4.2, nil},
		{"Spice Rack", 27, 0, nil},
		{"Salad Spinner", 21, 3.7, nil},
		{"Dutch Oven", 119, 4.9, nil},
		{"Measuring Cups", 9.5, 4, []string{"baking"}},
	}},
	{"Garden", []seedProduct{
		{"Hand Trowel", 11, 4.1, []string{"outdoor"}},
		{"Pruning Shears", 26, 4.5, []string{"outdoor"}},
		{"Watering Can", 19, 3.9, []string{"outdoor"}},
		{"Raised Bed Kit", 129, 4.4, []string{"outdoor"}},
		{"Seed Starter Tray", 8, 0, nil},
		{"Garden Kneeler", 33, 4, nil},
	}},
	{"Books", []seedProduct{
		{"Atlas of Remote Islands", 24, 4.6, nil},
		{"Bread Baking Basics", 18.5, 4.3, []string{"baking"}},
		{"Field Guide to Birds", 29, 4.7, []string{"outdoor"}},
		{"Zen of Repair", 16, 3.4, nil},
		{"Övergångar", 21, 0, nil},
		{"Knots and Splices", 12, 4.1, []string{"outdoor"}},
		{"Winter Soups", 22, 4.5, []string{"winter"}},
	}},
	{"Snacks", []seedProduct{
		{"Sea Salt Crisps", 3.5, 4.2, nil},
		{"Dark Chocolate Bar", 4.25, 4.8, nil},
		{"Trail Mix", 6, 4, []string{"outdoor"}},
		{"Rice Crackers", 2.75, 3.6, nil},
		{"Dried Mango", 5.5, 4.4, []string{"summer"}},
		{"Honey Roasted Nuts", 7, 4.1, nil},
		{"Oat Bars", 4, 0, nil},
	}},
}

func seedID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+name)).String()
}

// SeedDefaults fills an empty catalog with sample categories and products.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	products := repository.NewProductRepo(db)
	n, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return nil
	}
	categories := repository.NewCategoryRepo(db)
	for idx, group := range seedCatalog {
		catID := seedID("cat", group.category)
		if err := categories.Upsert(ctx, repository.Category{ID: catID, Name: group.category, SortOrder: idx}); err != nil {
			return fmt.Errorf("seed category %s: %w", group.category, err)
		}
		for _, sp := range group.products {
			p := repository.Product{
				ID:         seedID("product", sp.name),
				Name:       sp.name,
				CategoryID: &catID,
				Price:      sp.price,
				Tags:       sp.tags,
			}
			if sp.rating > 0 {
				rating := sp.rating
				p.Rating = &rating
			}
			if err := products.Upsert(ctx, p); err != nil {
				return fmt.Errorf("seed product %s: %w", sp.name, err)
			}
		}
	}
	return nil
}

// SeedCount is the number of products SeedDefaults inserts.
func SeedCount() int {
	n := 0
	for _, g := range seedCatalog {
		n += len(g.products)
	}
	return n
}
