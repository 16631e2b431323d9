package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestCategory returns the label closest to input when input matches none
// exactly. It only feeds "did you mean" hints; filtering stays exact.
func SuggestCategory(labels []string, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, label := range labels {
		if label == input {
			return "", false
		}
		dist := levenshtein.ComputeDistance(strings.ToUpper(label), strings.ToUpper(input))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = label, dist
		}
	}
	if bestDist < 0 {
		return "", false
	}
	maxlen := len(input)
	if len(best) > maxlen {
		maxlen = len(best)
	}
	if float64(bestDist)/float64(maxlen) >= 0.4 {
		return "", false
	}
	return best, true
}
