package item

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"Nutripedia-Backend/entities"
	"Nutripedia-Backend/internal/utils"
)

// Stage selects which schema a record is checked against. The two stages are
// strictly ordered: a record is valid pre-storage (no system fields) before it
// is valid post-storage (system fields required).
type Stage int

const (
	StagePreStorage Stage = iota
	StagePostStorage
)

var ingredientKeys = map[string]bool{
	"ItemType": true, "Name": true, "AlternateNames": true, "Description": true,
	"ThermalNature": true, "Element": true, "Category": true, "Origin": true,
	"Season": true, "Allergens": true, "FlavorProfile": true,
	"MedicinalProperties": true, "CulinaryUses": true, "PreparationTips": true,
	"DietaryRestrictions": true, "Substitutes": true, "CulinaryTechniques": true,
	"TopFoodSources": true, "NutritionalInfo": true, "StorageMethods": true,
	"CulturalSignificance": true, "HistoricalUsage": true,
	"EnvironmentalImpact": true, "TCM": true,
}

var nutrientKeys = map[string]bool{
	"ItemType": true, "Name": true, "Description": true, "Type": true,
	"Functions": true, "Sources": true, "DeficiencySymptoms": true,
	"ExcessSymptoms": true, "TopFoodSources": true, "RecommendedIntake": true,
}

var systemKeys = []string{"Id", "CreatedAt", "NameLowercase"}

var multilingualKeys = map[string]bool{"English": true, "Chinese": true, "Spanish": true}

var tcmKeys = map[string]bool{"Functions": true, "HerbalFormulations": true, "Meridians": true}

// ValidateItemJSON checks a flat item record against the closed schema of the
// given stage. Both schemas reject any property outside the known set; the
// post-storage schema additionally requires the three system fields. All
// violations found are collected in one pass rather than failing fast; the
// record passes only when the returned list is empty. The decoded item is nil
// when the record is too malformed to decode.
func ValidateItemJSON(raw []byte, stage Stage) (*entities.Item, []string) {
	var violations []string

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, []string{fmt.Sprintf("record is not a JSON object: %v", err)}
	}

	var itemType entities.ItemType
	if rawType, ok := fields["ItemType"]; ok {
		if err := json.Unmarshal(rawType, &itemType); err != nil {
			return nil, []string{"ItemType: must be a string"}
		}
	}

	var allowed map[string]bool
	switch itemType {
	case entities.ItemTypeIngredient:
		allowed = ingredientKeys
	case entities.ItemTypeNutrient:
		allowed = nutrientKeys
	default:
		return nil, []string{fmt.Sprintf("ItemType: must be %q or %q", entities.ItemTypeIngredient, entities.ItemTypeNutrient)}
	}

	violations = append(violations, unknownKeys(fields, allowed, stage)...)

	if itemType == entities.ItemTypeIngredient {
		violations = append(violations, closedObject(fields, "Name", multilingualKeys)...)
		violations = append(violations, closedObject(fields, "Description", multilingualKeys)...)
		violations = append(violations, closedObject(fields, "TCM", tcmKeys)...)
	}

	var it entities.Item
	if err := json.Unmarshal(raw, &it); err != nil {
		violations = append(violations, fmt.Sprintf("record does not decode: %v", err))
		return nil, violations
	}

	violations = append(violations, fieldViolations(&it)...)

	if stage == StagePostStorage {
		violations = append(violations, systemFieldViolations(&it)...)
	}

	return &it, violations
}

// unknownKeys flags every top-level property outside the allowed set. System
// keys are allowed only post-storage; a generator emitting them is a
// pre-storage violation like any other unknown property.
func unknownKeys(fields map[string]json.RawMessage, allowed map[string]bool, stage Stage) []string {
	var unknown []string
	for key := range fields {
		if allowed[key] {
			continue
		}
		if stage == StagePostStorage && isSystemKey(key) {
			continue
		}
		unknown = append(unknown, fmt.Sprintf("unknown property %q", key))
	}
	sort.Strings(unknown)
	return unknown
}

func isSystemKey(key string) bool {
	for _, k := range systemKeys {
		if key == k {
			return true
		}
	}
	return false
}

func closedObject(fields map[string]json.RawMessage, name string, allowed map[string]bool) []string {
	raw, ok := fields[name]
	if !ok {
		return nil
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err != nil {
		return []string{fmt.Sprintf("%s: must be an object", name)}
	}

	var unknown []string
	for key := range nested {
		if !allowed[key] {
			unknown = append(unknown, fmt.Sprintf("unknown property %q in %s", key, name))
		}
	}
	sort.Strings(unknown)
	return unknown
}

func fieldViolations(it *entities.Item) []string {
	var target interface{}
	switch it.ItemType {
	case entities.ItemTypeIngredient:
		target = it.Ingredient
	case entities.ItemTypeNutrient:
		target = it.Nutrient
	}

	err := utils.Validate.Struct(target)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	violations := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		violations = append(violations, fmt.Sprintf("%s: failed %q", fieldError.Namespace(), fieldError.Tag()))
	}
	return violations
}

func systemFieldViolations(it *entities.Item) []string {
	var violations []string
	if it.ID == "" {
		violations = append(violations, "Id: required")
	}
	if it.CreatedAt == "" {
		violations = append(violations, "CreatedAt: required")
	} else if _, err := time.Parse(time.RFC3339, it.CreatedAt); err != nil {
		violations = append(violations, "CreatedAt: must be an ISO-8601 timestamp")
	}
	if it.NameLowercase == "" {
		violations = append(violations, "NameLowercase: required")
	}
	return violations
}
