package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func sampleItems() []Item {
	return []Item{
		{ID: "1", Name: "Boots", CategoryID: "Shoes", Price: 10, Rating: Float(4)},
		{ID: "2", Name: "apron", CategoryID: "Kitchen", Price: 5},
		{ID: "3", Name: "Cap", CategoryID: "Hats", Price: 20, Rating: Float(4.5)},
		{ID: "4", Name: "Éclair tin", CategoryID: "Kitchen", Price: 12, Rating: Float(3)},
		{ID: "5", Name: "Sandals", CategoryID: "Shoes", Price: 10, Rating: Float(4)},
		{ID: "6", Name: "beanie", CategoryID: "Hats", Price: 8},
	}
}

func TestDeriveEndToEnd(t *testing.T) {
	items := []Item{
		{ID: "1", Price: 10, Name: "B", CategoryID: "Shoes"},
		{ID: "2", Price: 5, Name: "A", CategoryID: "Shoes"},
		{ID: "3", Price: 20, Name: "C", CategoryID: "Hats"},
	}
	got := Pipeline{}.Derive(items, "Shoes", Criteria{SortBy: SortPriceLow}, nil)
	require.Equal(t, []string{"2", "1"}, ids(got))
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	before := append([]Item(nil), items...)
	got := Pipeline{}.Derive(items, AllCategories, Criteria{SortBy: SortPriceHigh}, nil)
	if diff := cmp.Diff(before, items); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
	require.Len(t, got, len(items))
	got[0].Name = "changed"
	require.NotEqual(t, "changed", items[0].Name)
}

func TestCategoryFilterExactAndIdempotent(t *testing.T) {
	items := sampleItems()
	once := FilterCategory(items, "Hats", nil)
	twice := FilterCategory(once, "Hats", nil)
	require.Equal(t, []string{"3", "6"}, ids(once))
	require.Equal(t, ids(once), ids(twice))

	require.Empty(t, FilterCategory(items, "hats", nil))
	require.Len(t, FilterCategory(items, AllCategories, nil), len(items))
}

func TestCategoryUsesClassifier(t *testing.T) {
	names := map[string]string{"Shoes": "Footwear", "Hats": "Headwear"}
	classify := func(it Item) string { return names[it.CategoryID] }
	got := Pipeline{Classify: classify}.Derive(sampleItems(), "Footwear", Criteria{}, nil)
	require.Equal(t, []string{"1", "5"}, ids(got))
}

func TestPriceBounds(t *testing.T) {
	items := sampleItems()
	cases := []struct {
		name     string
		min, max *float64
		want     []string
	}{
		{"min only inclusive", Float(10), nil, []string{"1", "3", "4", "5"}},
		{"max only inclusive", nil, Float(10), []string{"1", "2", "5", "6"}},
		{"both", Float(8), Float(12), []string{"1", "4", "5", "6"}},
		{"neither", nil, nil, []string{"1", "2", "3", "4", "5", "6"}},
		{"empty range", Float(13), Float(9), []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Pipeline{}.Derive(items, AllCategories, Criteria{MinPrice: tc.min, MaxPrice: tc.max}, nil)
			require.Equal(t, tc.want, ids(got))
			for _, it := range got {
				if tc.min != nil {
					require.GreaterOrEqual(t, it.Price, *tc.min)
				}
				if tc.max != nil {
					require.LessOrEqual(t, it.Price, *tc.max)
				}
			}
		})
	}
}

func TestSortOrders(t *testing.T) {
	items := sampleItems()
	p := Pipeline{Locale: language.English}

	low := p.Derive(items, AllCategories, Criteria{SortBy: SortPriceLow}, nil)
	for i := 1; i < len(low); i++ {
		require.LessOrEqual(t, low[i-1].Price, low[i].Price)
	}
	// ties keep input order
	require.Equal(t, []string{"2", "6", "1", "5", "4", "3"}, ids(low))

	high := p.Derive(items, AllCategories, Criteria{SortBy: SortPriceHigh}, nil)
	for i := 1; i < len(high); i++ {
		require.GreaterOrEqual(t, high[i-1].Price, high[i].Price)
	}

	rated := p.Derive(items, AllCategories, Criteria{SortBy: SortRating}, nil)
	require.Equal(t, []string{"3", "1", "5", "4", "2", "6"}, ids(rated))
	for i := 1; i < len(rated); i++ {
		require.GreaterOrEqual(t, EffectiveRating(rated[i-1]), EffectiveRating(rated[i]))
	}
}

func TestSortNamesLocaleAware(t *testing.T) {
	p := Pipeline{Locale: language.English}
	az := p.Derive(sampleItems(), AllCategories, Criteria{SortBy: SortNameAZ}, nil)
	require.Equal(t, []string{"apron", "beanie", "Boots", "Cap", "Éclair tin", "Sandals"}, names(az))

	za := p.Derive(sampleItems(), AllCategories, Criteria{SortBy: SortNameZA}, nil)
	require.Equal(t, []string{"Sandals", "Éclair tin", "Cap", "Boots", "beanie", "apron"}, names(za))
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestUnknownSortKeepsOrder(t *testing.T) {
	items := sampleItems()
	got := Pipeline{}.Derive(items, AllCategories, Criteria{SortBy: "popularity"}, nil)
	require.Equal(t, ids(items), ids(got))
}

func TestPreferenceFilterGate(t *testing.T) {
	calls := 0
	onlyHats := func(list []Item, _ Preferences) []Item {
		calls++
		return FilterCategory(list, "Hats", nil)
	}
	p := Pipeline{Prefer: onlyHats}
	items := sampleItems()
	prefs := &Preferences{PreferredCategories: []string{"Hats"}}

	off := Criteria{SortBy: SortPriceLow}
	require.Equal(t, ids(p.Derive(items, AllCategories, off, nil)), ids(p.Derive(items, AllCategories, off, prefs)))
	require.Zero(t, calls)

	on := Criteria{SortBy: SortPriceLow, PreferencesEnabled: true}
	require.Len(t, p.Derive(items, AllCategories, on, nil), len(items))
	require.Zero(t, calls)

	require.Equal(t, []string{"6", "3"}, ids(p.Derive(items, AllCategories, on, prefs)))
	require.Equal(t, 1, calls)
}

func TestPreferenceFilterSeesFilteredList(t *testing.T) {
	var seen []Item
	spy := func(list []Item, _ Preferences) []Item {
		seen = list
		return list
	}
	p := Pipeline{Prefer: spy}
	p.Derive(sampleItems(), "Shoes", Criteria{MaxPrice: Float(10), PreferencesEnabled: true}, &Preferences{})
	require.Equal(t, []string{"1", "5"}, ids(seen))
}

func TestPreferenceOrderSurvivesWithoutSort(t *testing.T) {
	reverse := func(list []Item, _ Preferences) []Item {
		out := make([]Item, 0, len(list))
		for i := len(list) - 1; i >= 0; i-- {
			out = append(out, list[i])
		}
		return out
	}
	p := Pipeline{Prefer: reverse}
	c := Criteria{PreferencesEnabled: true}
	got := p.Derive(sampleItems(), "Shoes", c, &Preferences{})
	require.Equal(t, []string{"5", "1"}, ids(got))

	c.SortBy = SortNameAZ
	got = p.Derive(sampleItems(), "Shoes", c, &Preferences{})
	require.Equal(t, []string{"1", "5"}, ids(got))
}

func TestEmptyResult(t *testing.T) {
	got := Pipeline{}.Derive(sampleItems(), "Gloves", Criteria{}, nil)
	require.NotNil(t, got)
	require.Empty(t, got)
	require.Empty(t, Pipeline{}.Derive(nil, AllCategories, Criteria{SortBy: SortRating}, nil))
}

func TestCategoriesFirstSeen(t *testing.T) {
	require.Equal(t, []string{"Shoes", "Kitchen", "Hats"}, Categories(sampleItems(), nil))
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey(" pricelow ")
	require.True(t, ok)
	require.Equal(t, SortPriceLow, k)

	k, ok = ParseSortKey("cheapest")
	require.False(t, ok)
	require.Equal(t, SortNone, k)
}
