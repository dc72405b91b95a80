package item

import (
	"strings"

	"Nutripedia-Backend/entities"
)

// nonConsumableTerms is a denylist, not an allowlist: an ingredient category
// is rejected iff its lowercased text contains one of these substrings, so a
// novel category the list has never seen defaults to consumable. That
// asymmetry is the intended policy: the classifier is a conservative guard
// against obviously non-food records, not an authority on what food is.
var nonConsumableTerms = []string{
	"poison",
	"toxic",
	"toxin",
	"chemical",
	"non-food",
	"nonfood",
	"inedible",
	"toxic substance",
	"metal",
	"mineral ore",
	"drug",
	"narcotic",
	"pesticide",
	"herbicide",
	"fungicide",
	"fertilizer",
	"radioactive",
	"gemstone",
	"plastic",
	"solvent",
	"detergent",
	"cleaning agent",
	"fuel",
	"petroleum",
	"paint",
	"adhesive",
	"glue",
	"cosmetic",
	"explosive",
	"battery",
}

// IsConsumable reports whether an item may be served and persisted. Nutrients
// always pass. Ingredients are judged on the free-text Category field alone
// (empty when absent): a substring match against the denylist anywhere in the
// category text rejects the item.
func IsConsumable(it *entities.Item) bool {
	if it.ItemType == entities.ItemTypeNutrient {
		return true
	}

	category := ""
	if it.Ingredient != nil {
		category = it.Ingredient.Category
	}
	category = strings.ToLower(category)

	for _, term := range nonConsumableTerms {
		if strings.Contains(category, term) {
			return false
		}
	}
	return true
}
