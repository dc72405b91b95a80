package domain

import (
	"errors"

	"Nutripedia-Backend/entities"
)

var (
	MessageItemNameRequired     = "name query parameter is required"
	MessageItemNotFound         = "no valid item could be resolved for this name"
	MessageItemNotConsumable    = "item is not consumable"
	MessageGeneratorUnavailable = "generation service unavailable"
	MessageFailedParseItem      = "failed to parse generated item"
	MessageFailedValidateItem   = "generated item failed validation"
	MessageFailedPersistItem    = "failed to persist item"

	ErrItemNameRequired = errors.New("item name is required")
	ErrItemNotFound     = errors.New("item not found")

	// ErrInvalidItem is the generator explicitly flagging the search term as
	// not a real ingredient or nutrient.
	ErrInvalidItem   = errors.New("generator flagged item as invalid")
	ErrNotConsumable = errors.New("item category matches the non-consumable denylist")

	ErrGeneratorUnavailable = errors.New("generation service call failed")
	ErrGeneratorParse       = errors.New("generator reply has no parsable JSON object")
	ErrSchemaViolation      = errors.New("item failed schema validation")
	ErrItemAlreadyExists    = errors.New("item with the same id already exists")
	ErrPersistFailed        = errors.New("store write failed")
)

type ItemLookupResponse struct {
	// Found is true when the item was resolved from the cache or the store,
	// false when it was generated and persisted by this request.
	Found bool           `json:"found"`
	Item  *entities.Item `json:"item"`
}
