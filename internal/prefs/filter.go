package prefs

import "github.com/jask/shopgrid/internal/catalog"

// NewFilter returns the pipeline's preference filter. Items in excluded
// categories, rated under MinRating or priced over MaxPrice are dropped;
// items in preferred categories move to the front, keeping relative order.
func NewFilter(classify catalog.Classifier) catalog.PreferenceFilter {
	if classify == nil {
		classify = catalog.ByCategoryID
	}
	return func(items []catalog.Item, p catalog.Preferences) []catalog.Item {
		excluded := toSet(p.ExcludedCategories)
		preferred := toSet(p.PreferredCategories)

		front := make([]catalog.Item, 0, len(items))
		var back []catalog.Item
		for _, it := range items {
			label := classify(it)
			if excluded[label] {
				continue
			}
			if p.MinRating != nil && catalog.EffectiveRating(it) < *p.MinRating {
				continue
			}
			if p.MaxPrice != nil && it.Price > *p.MaxPrice {
				continue
			}
			if preferred[label] {
				front = append(front, it)
			} else {
				back = append(back, it)
			}
		}
		return append(front, back...)
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
