package catalog

import (
	"encoding/json"

	"github.com/google/uuid"
)

var fingerprintSpace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("shopgrid:inputs"))

type fingerprintItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"n"`
	Category string   `json:"c"`
	Price    float64  `json:"p"`
	Rating   *float64 `json:"r,omitempty"`
	Tags     []string `json:"t,omitempty"`
}

type fingerprintInput struct {
	Items     []fingerprintItem `json:"items"`
	Selection Selection         `json:"sel"`
	Criteria  Criteria          `json:"criteria"`
	Prefs     *Preferences      `json:"prefs,omitempty"`
}

// Fingerprint identifies a set of pipeline inputs by value. Inputs that are
// equal field by field, including each item's derived category label, share a
// fingerprint. Inputs that cannot be encoded (NaN prices) get a random one so
// they never compare equal to anything.
func Fingerprint(items []Item, sel Selection, c Criteria, prefs *Preferences, classify Classifier) uuid.UUID {
	if classify == nil {
		classify = ByCategoryID
	}
	in := fingerprintInput{
		Items:     make([]fingerprintItem, len(items)),
		Selection: sel,
		Criteria:  c,
		Prefs:     prefs,
	}
	for i, it := range items {
		in.Items[i] = fingerprintItem{
			ID:       it.ID,
			Name:     it.Name,
			Category: classify(it),
			Price:    it.Price,
			Rating:   it.Rating,
			Tags:     it.Tags,
		}
	}
	data, err := json.Marshal(in)
	if err != nil {
		return uuid.New()
	}
	return uuid.NewSHA1(fingerprintSpace, data)
}
