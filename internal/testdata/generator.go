// Package testdata generates large random catalogs for tests.
package testdata

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jask/shopgrid/internal/catalog"
	"github.com/jask/shopgrid/internal/database/repository"
)

var (
	adjectives = []string{"Classic", "Compact", "Deluxe", "Everyday", "Rugged", "Soft", "Bright", "Ärmel", "Quiet", "Zesty"}
	nouns      = []string{"Basket", "Jacket", "Lamp", "Mug", "Pack", "Scarf", "Tray", "Vase", "Whisk", "Ölglas"}
)

// Catalog returns categories and items built from seed. The same seed always
// yields the same catalog. Roughly a fifth of the items are unrated.
func Catalog(seed int64, categories, perCategory int) ([]repository.Category, []catalog.Item) {
	rng := rand.New(rand.NewSource(seed))
	cats := make([]repository.Category, 0, categories)
	items := make([]catalog.Item, 0, categories*perCategory)
	for c := 0; c < categories; c++ {
		name := fmt.Sprintf("Aisle %02d", c+1)
		cat := repository.Category{ID: id(seed, "cat", name), Name: name, SortOrder: c}
		cats = append(cats, cat)
		for i := 0; i < perCategory; i++ {
			it := catalog.Item{
				Name:       fmt.Sprintf("%s %s %d", adjectives[rng.Intn(len(adjectives))], nouns[rng.Intn(len(nouns))], i),
				CategoryID: cat.ID,
				Price:      float64(rng.Intn(20000)+50) / 100,
			}
			it.ID = id(seed, "product", fmt.Sprintf("%s/%d", name, i))
			if rng.Intn(5) > 0 {
				it.Rating = catalog.Float(float64(rng.Intn(41)+10) / 10)
			}
			items = append(items, it)
		}
	}
	return cats, items
}

func id(seed int64, kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d:%s:%s", seed, kind, name))).String()
}
