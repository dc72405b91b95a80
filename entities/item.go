package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ItemType string

const (
	ItemTypeIngredient ItemType = "ingredient"
	ItemTypeNutrient   ItemType = "nutrient"
)

// ThermalNature is the five-valued TCM thermal classification of an ingredient.
type ThermalNature string

const (
	ThermalYinCold  ThermalNature = "Yin-Cold"
	ThermalYinCool  ThermalNature = "Yin-Cool"
	ThermalNeutral  ThermalNature = "Neutral"
	ThermalYangWarm ThermalNature = "Yang-Warm"
	ThermalYangHot  ThermalNature = "Yang-Hot"
)

type NutrientType string

const (
	NutrientTypeVitamin NutrientType = "vitamin"
	NutrientTypeMineral NutrientType = "mineral"
	NutrientTypeOther   NutrientType = "other"
)

type MultilingualText struct {
	English string `json:"English" validate:"required"`
	Chinese string `json:"Chinese,omitempty"`
	Spanish string `json:"Spanish,omitempty"`
}

type TCMProperties struct {
	Functions          []string `json:"Functions" validate:"required,min=1"`
	HerbalFormulations []string `json:"HerbalFormulations,omitempty"`
	Meridians          []string `json:"Meridians,omitempty"`
}

type Ingredient struct {
	Name                 MultilingualText       `json:"Name" validate:"required"`
	AlternateNames       []string               `json:"AlternateNames,omitempty"`
	Description          MultilingualText       `json:"Description" validate:"required"`
	ThermalNature        ThermalNature          `json:"ThermalNature" validate:"required,oneof=Yin-Cold Yin-Cool Neutral Yang-Warm Yang-Hot"`
	Element              string                 `json:"Element,omitempty"`
	Category             string                 `json:"Category,omitempty"`
	Origin               string                 `json:"Origin,omitempty"`
	Season               string                 `json:"Season,omitempty"`
	Allergens            string                 `json:"Allergens,omitempty"`
	FlavorProfile        []string               `json:"FlavorProfile,omitempty"`
	MedicinalProperties  []string               `json:"MedicinalProperties,omitempty"`
	CulinaryUses         []string               `json:"CulinaryUses,omitempty"`
	PreparationTips      []string               `json:"PreparationTips,omitempty"`
	DietaryRestrictions  []string               `json:"DietaryRestrictions,omitempty"`
	Substitutes          []string               `json:"Substitutes,omitempty"`
	CulinaryTechniques   []string               `json:"CulinaryTechniques,omitempty"`
	TopFoodSources       []string               `json:"TopFoodSources,omitempty"`
	NutritionalInfo      map[string]interface{} `json:"NutritionalInfo,omitempty"`
	StorageMethods       map[string]interface{} `json:"StorageMethods,omitempty"`
	CulturalSignificance map[string]interface{} `json:"CulturalSignificance,omitempty"`
	HistoricalUsage      map[string]interface{} `json:"HistoricalUsage,omitempty"`
	EnvironmentalImpact  map[string]interface{} `json:"EnvironmentalImpact,omitempty"`
	TCM                  TCMProperties          `json:"TCM" validate:"required"`
}

type Nutrient struct {
	Name               string       `json:"Name" validate:"required"`
	Description        string       `json:"Description" validate:"required"`
	Type               NutrientType `json:"Type" validate:"required,oneof=vitamin mineral other"`
	Functions          []string     `json:"Functions,omitempty"`
	Sources            []string     `json:"Sources,omitempty"`
	DeficiencySymptoms []string     `json:"DeficiencySymptoms,omitempty"`
	ExcessSymptoms     []string     `json:"ExcessSymptoms,omitempty"`
	TopFoodSources     []string     `json:"TopFoodSources,omitempty"`
	RecommendedIntake  string       `json:"RecommendedIntake,omitempty"`
}

// Item is the tagged variant stored and served by the lookup flow. Exactly one
// of Ingredient or Nutrient is set, selected by ItemType. The system fields
// (Id, CreatedAt, NameLowercase) are empty until AssignSystemFields runs; the
// persisted layout is the flat JSON object produced by MarshalJSON.
type Item struct {
	ItemType   ItemType
	Ingredient *Ingredient
	Nutrient   *Nutrient

	ID            string
	CreatedAt     string
	NameLowercase string
}

// AssignSystemFields stamps the record with its identifier, creation time and
// lookup key. The key always derives from the search input, never from the
// generated name, so cache and store lookups stay stable across runs.
func (i *Item) AssignSystemFields(nameLowercase string) {
	i.ID = uuid.New().String()
	i.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	i.NameLowercase = nameLowercase
}

func (i Item) MarshalJSON() ([]byte, error) {
	var payload []byte
	var err error

	switch i.ItemType {
	case ItemTypeIngredient:
		if i.Ingredient == nil {
			return nil, fmt.Errorf("item type %q has no ingredient payload", i.ItemType)
		}
		payload, err = json.Marshal(i.Ingredient)
	case ItemTypeNutrient:
		if i.Nutrient == nil {
			return nil, fmt.Errorf("item type %q has no nutrient payload", i.ItemType)
		}
		payload, err = json.Marshal(i.Nutrient)
	default:
		return nil, fmt.Errorf("unknown item type %q", i.ItemType)
	}
	if err != nil {
		return nil, err
	}

	flat := make(map[string]interface{})
	if err := json.Unmarshal(payload, &flat); err != nil {
		return nil, err
	}
	flat["ItemType"] = i.ItemType
	if i.ID != "" {
		flat["Id"] = i.ID
	}
	if i.CreatedAt != "" {
		flat["CreatedAt"] = i.CreatedAt
	}
	if i.NameLowercase != "" {
		flat["NameLowercase"] = i.NameLowercase
	}
	return json.Marshal(flat)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var head struct {
		ItemType      ItemType `json:"ItemType"`
		ID            string   `json:"Id"`
		CreatedAt     string   `json:"CreatedAt"`
		NameLowercase string   `json:"NameLowercase"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.ItemType {
	case ItemTypeIngredient:
		var ing Ingredient
		if err := json.Unmarshal(data, &ing); err != nil {
			return err
		}
		i.Ingredient = &ing
		i.Nutrient = nil
	case ItemTypeNutrient:
		var nut Nutrient
		if err := json.Unmarshal(data, &nut); err != nil {
			return err
		}
		i.Nutrient = &nut
		i.Ingredient = nil
	default:
		return fmt.Errorf("unknown item type %q", head.ItemType)
	}

	i.ItemType = head.ItemType
	i.ID = head.ID
	i.CreatedAt = head.CreatedAt
	i.NameLowercase = head.NameLowercase
	return nil
}
