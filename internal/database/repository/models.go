package repository

import (
	"time"

	"github.com/jask/shopgrid/internal/catalog"
)

// Category represents a category row.
type Category struct {
	ID        string
	ParentID  *string
	Name      string
	SortOrder int
}

// Product represents a product row.
type Product struct {
	ID         string
	Name       string
	CategoryID *string
	Price      float64
	Rating     *float64
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item converts the row into the catalog's view of a product.
func (p Product) Item() catalog.Item {
	it := catalog.Item{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Rating: p.Rating,
		Tags:   p.Tags,
	}
	if p.CategoryID != nil {
		it.CategoryID = *p.CategoryID
	}
	return it
}

// Items converts a product list.
func Items(products []Product) []catalog.Item {
	out := make([]catalog.Item, len(products))
	for i, p := range products {
		out[i] = p.Item()
	}
	return out
}
