// Package menu models menu documents as raw JSON trees so that fields the
// tools do not know about, and the order of keys, survive a round trip.
package menu

import (
	"fmt"

	"github.com/amante/menutools/internal/domain"
)

// Domain selects the enrichment rule set for a document.
type Domain string

// Supported domains.
const (
	DomainFood Domain = "food"
	DomainBar  Domain = "bar"
	DomainCafe Domain = "cafe"
)

// ParseDomain validates a domain name.
func ParseDomain(s string) (Domain, error) {
	switch d := Domain(s); d {
	case DomainFood, DomainBar, DomainCafe:
		return d, nil
	default:
		return "", fmt.Errorf("%q: %w", s, domain.ErrUnknownDomain)
	}
}

// String implements fmt.Stringer.
func (d Domain) String() string { return string(d) }

// Item field names.
const (
	FieldID               = "id"
	FieldName             = "name"
	FieldDescription      = "description"
	FieldPrice            = "price"
	FieldCategory         = "category"
	FieldDietary          = "dietary"
	FieldIsAvailable      = "isAvailable"
	FieldIsChefSpecial    = "isChefSpecial"
	FieldIsRecommended    = "isRecommended"
	FieldSpiceLevel       = "spiceLevel"
	FieldCuisine          = "cuisine"
	FieldSubcuisine       = "subcuisine"
	FieldLocalDescription = "localDescription"
	FieldSimilarTo        = "similarTo"
	FieldTags             = "tags"
	FieldIsJainFriendly   = "isJainFriendly"
	FieldDrinkType        = "drinkType"
	FieldBeverageType     = "beverageType"
	FieldTemperature      = "temperature"
	FieldBottlePrice      = "bottlePrice"
)

// DietaryVeg marks vegetarian items.
const DietaryVeg = "veg"
