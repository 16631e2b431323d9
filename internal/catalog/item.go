package catalog

import "strings"

// AllCategories is the selection that keeps every item.
const AllCategories Selection = "All"

// Item is a catalog entry as read by the grid. The category label is not a
// field: it comes from a Classifier.
type Item struct {
	ID         string
	Name       string
	CategoryID string
	Price      float64
	Rating     *float64
	Tags       []string
}

// Selection is either AllCategories or a concrete category label.
type Selection string

// SortKey names one of the supported orderings.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceLow  SortKey = "priceLow"
	SortPriceHigh SortKey = "priceHigh"
	SortNameAZ    SortKey = "nameAZ"
	SortNameZA    SortKey = "nameZA"
	SortRating    SortKey = "rating"
)

// SortKeys lists the recognised keys in display order.
var SortKeys = []SortKey{SortPriceLow, SortPriceHigh, SortNameAZ, SortNameZA, SortRating}

// ParseSortKey matches s case-insensitively against the known keys.
// Unknown input yields SortNone and false.
func ParseSortKey(s string) (SortKey, bool) {
	s = strings.TrimSpace(s)
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	return SortNone, false
}

// Label returns a short human label for the key.
func (k SortKey) Label() string {
	switch k {
	case SortPriceLow:
		return "Price: low to high"
	case SortPriceHigh:
		return "Price: high to low"
	case SortNameAZ:
		return "Name: A-Z"
	case SortNameZA:
		return "Name: Z-A"
	case SortRating:
		return "Top rated"
	default:
		return "Default"
	}
}

// Criteria holds the filter and sort options applied after the category filter.
// Nil bounds are unset.
type Criteria struct {
	MinPrice           *float64
	MaxPrice           *float64
	SortBy             SortKey
	PreferencesEnabled bool
}

// Preferences belong to the user. The pipeline only hands them to the
// configured PreferenceFilter.
type Preferences struct {
	PreferredCategories []string `json:"preferred_categories,omitempty" yaml:"preferred_categories,omitempty"`
	ExcludedCategories  []string `json:"excluded_categories,omitempty" yaml:"excluded_categories,omitempty"`
	MinRating           *float64 `json:"min_rating,omitempty" yaml:"min_rating,omitempty"`
	MaxPrice            *float64 `json:"max_price,omitempty" yaml:"max_price,omitempty"`
}

// Classifier derives the category label of an item.
type Classifier func(Item) string

// PreferenceFilter receives the category and price filtered list and may drop
// or reorder items.
type PreferenceFilter func([]Item, Preferences) []Item

// ByCategoryID classifies an item by its raw category id.
func ByCategoryID(it Item) string { return it.CategoryID }

// EffectiveRating is the rating used for ordering; a missing rating counts as 0.
func EffectiveRating(it Item) float64 {
	if it.Rating == nil {
		return 0
	}
	return *it.Rating
}

// Float returns a pointer to v, for optional bounds and ratings.
func Float(v float64) *float64 { return &v }
