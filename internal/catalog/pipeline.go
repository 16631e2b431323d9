package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Pipeline derives the ordered list shown by the grid. It holds only
// collaborators, never results, so Derive is a pure function of its arguments.
type Pipeline struct {
	Classify Classifier
	Prefer   PreferenceFilter
	// Locale drives name ordering. The zero tag collates with root rules.
	Locale language.Tag
}

// Derive applies, in order: category filter, price bounds, preference filter
// and sort. The input slice is never modified and the result never aliases it.
func (p Pipeline) Derive(items []Item, sel Selection, c Criteria, prefs *Preferences) []Item {
	classify := p.Classify
	if classify == nil {
		classify = ByCategoryID
	}

	list := make([]Item, 0, len(items))
	for _, it := range items {
		if !matchesCategory(it, sel, classify) {
			continue
		}
		if !matchesPrice(it, c) {
			continue
		}
		list = append(list, it)
	}

	if prefs != nil && c.PreferencesEnabled && p.Prefer != nil {
		list = p.Prefer(list, *prefs)
	}

	return p.sortItems(list, c.SortBy)
}

// FilterCategory keeps the items whose label equals sel exactly.
func FilterCategory(items []Item, sel Selection, classify Classifier) []Item {
	if classify == nil {
		classify = ByCategoryID
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if matchesCategory(it, sel, classify) {
			out = append(out, it)
		}
	}
	return out
}

func matchesCategory(it Item, sel Selection, classify Classifier) bool {
	if sel == AllCategories {
		return true
	}
	return classify(it) == string(sel)
}

func matchesPrice(it Item, c Criteria) bool {
	if c.MinPrice != nil && it.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && it.Price > *c.MaxPrice {
		return false
	}
	return true
}

func (p Pipeline) sortItems(list []Item, key SortKey) []Item {
	out := make([]Item, len(list))
	copy(out, list)

	var less func(a, b Item) bool
	switch key {
	case SortPriceLow:
		less = func(a, b Item) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b Item) bool { return a.Price > b.Price }
	case SortNameAZ:
		col := collate.New(p.Locale)
		less = func(a, b Item) bool { return col.CompareString(a.Name, b.Name) < 0 }
	case SortNameZA:
		col := collate.New(p.Locale)
		less = func(a, b Item) bool { return col.CompareString(b.Name, a.Name) < 0 }
	case SortRating:
		less = func(a, b Item) bool { return EffectiveRating(a) > EffectiveRating(b) }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Categories returns the distinct labels of items in first-seen order.
func Categories(items []Item, classify Classifier) []string {
	if classify == nil {
		classify = ByCategoryID
	}
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		label := classify(it)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}
