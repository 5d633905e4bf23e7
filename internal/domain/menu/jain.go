package menu

import (
	"strings"

	"golang.org/x/text/cases"
)

// jainForbidden lists the onion/garlic keywords, case-folded.
var jainForbidden = []string{"garlic", "onion", "lahsuni", "pyaz"}

// IsJainFriendly guesses whether an item avoids onion and garlic.
// Vegetarian items whose name and description mention none of the keywords
// qualify; non-veg items never do. Indirect references slip through, so the
// result is a default for human review, not a guarantee.
func IsJainFriendly(it *Item) bool {
	if !it.IsVeg() {
		return false
	}
	fold := cases.Fold()
	for _, text := range []string{it.Name(), it.Description()} {
		folded := fold.String(text)
		for _, kw := range jainForbidden {
			if strings.Contains(folded, kw) {
				return false
			}
		}
	}
	return true
}
