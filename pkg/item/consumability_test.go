package item

import (
	"testing"

	"Nutripedia-Backend/entities"
)

func ingredientWithCategory(category string) *entities.Item {
	return &entities.Item{
		ItemType: entities.ItemTypeIngredient,
		Ingredient: &entities.Ingredient{
			Name:          entities.MultilingualText{English: "Test"},
			Description:   entities.MultilingualText{English: "Test"},
			ThermalNature: entities.ThermalNeutral,
			Category:      category,
			TCM:           entities.TCMProperties{Functions: []string{"none"}},
		},
	}
}

func TestIngredientConsumability(t *testing.T) {
	cases := []struct {
		category string
		want     bool
	}{
		{"root vegetable", true},
		{"leafy green", true},
		{"culinary herb", true},
		{"fermented food", true},
		{"", true}, // absent category defaults to consumable
		{"plastic container", false},
		{"industrial chemical compound", false}, // substring match anywhere in the text
		{"POISONOUS PLANT", false},
		{"heavy metal", false},
		{"gemstone", false},
		{"recreational drug", false},
		{"non-food item", false},
		{"radioactive isotope", false},
	}

	for _, tc := range cases {
		it := ingredientWithCategory(tc.category)
		if got := IsConsumable(it); got != tc.want {
			t.Errorf("IsConsumable(category=%q) = %v, want %v", tc.category, got, tc.want)
		}
	}
}

func TestNutrientIsAlwaysConsumable(t *testing.T) {
	it := &entities.Item{
		ItemType: entities.ItemTypeNutrient,
		Nutrient: &entities.Nutrient{
			Name:        "Arsenic trioxide", // even a hostile name never trips the classifier
			Description: "toxic chemical poison",
			Type:        entities.NutrientTypeOther,
		},
	}

	if !IsConsumable(it) {
		t.Error("nutrients must always be consumable regardless of field content")
	}
}
