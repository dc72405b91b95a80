package item

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"Nutripedia-Backend/domain"
	"Nutripedia-Backend/internal/logging"
	"Nutripedia-Backend/internal/utils"
	"Nutripedia-Backend/pkg/cache"
	"Nutripedia-Backend/pkg/generator"
)

type (
	ItemService interface {
		// Lookup resolves an item name through cache, store and generator, in
		// that order. Found is true for a cache or store hit, false when the
		// item was generated and persisted by this call. The requestID is the
		// correlation id logged on every failure branch.
		Lookup(ctx context.Context, name, requestID string) (domain.ItemLookupResponse, error)
	}

	itemService struct {
		itemRepository ItemRepository
		generator      generator.GeneratorService
		cache          cache.ItemCache
	}
)

func NewItemService(itemRepository ItemRepository, generatorService generator.GeneratorService, itemCache cache.ItemCache) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		generator:      generatorService,
		cache:          itemCache,
	}
}

// Lookup runs the per-request pipeline to completion or first failure. No
// step before the store write has a side effect, so there is no rollback; no
// step is retried. Two concurrent cold lookups for the same name may both
// reach the generator and persist records with distinct ids (see
// ItemRepository.Insert).
func (s *itemService) Lookup(ctx context.Context, name, requestID string) (domain.ItemLookupResponse, error) {
	key := utils.NormalizeName(name)
	fingerprint := utils.Fingerprint(name)
	log := logging.WithRequest(requestID, key)

	if cached, ok := s.cache.Get(fingerprint); ok {
		log.Debug("cache hit")
		return domain.ItemLookupResponse{Found: true, Item: cached}, nil
	}

	stored, err := s.itemRepository.FindByName(ctx, key)
	if err == nil {
		s.cache.Set(fingerprint, stored)
		log.Debug("store hit")
		return domain.ItemLookupResponse{Found: true, Item: stored}, nil
	}
	if !errors.Is(err, domain.ErrItemNotFound) {
		log.Error("store lookup failed", "error", err)
		return domain.ItemLookupResponse{}, fmt.Errorf("store lookup: %w", err)
	}

	raw, err := s.generator.GenerateItem(ctx, key)
	if err != nil {
		log.Error("generation failed", "error", err)
		return domain.ItemLookupResponse{}, err
	}

	generated, violations := ValidateItemJSON(raw, StagePreStorage)
	if len(violations) > 0 {
		log.Error("generated record failed pre-storage schema", "violations", violations)
		return domain.ItemLookupResponse{}, domain.ErrSchemaViolation
	}

	if !IsConsumable(generated) {
		log.Warn("item rejected as non-consumable", "category", generated.Ingredient.Category)
		return domain.ItemLookupResponse{}, domain.ErrNotConsumable
	}

	generated.AssignSystemFields(key)

	record, err := json.Marshal(generated)
	if err != nil {
		log.Error("failed to encode record for storage validation", "error", err)
		return domain.ItemLookupResponse{}, domain.ErrSchemaViolation
	}
	if _, violations := ValidateItemJSON(record, StagePostStorage); len(violations) > 0 {
		log.Error("record failed post-storage schema", "violations", violations)
		return domain.ItemLookupResponse{}, domain.ErrSchemaViolation
	}

	if err := s.itemRepository.Insert(ctx, generated); err != nil {
		log.Error("store write failed", "error", err)
		if errors.Is(err, domain.ErrItemAlreadyExists) {
			return domain.ItemLookupResponse{}, err
		}
		return domain.ItemLookupResponse{}, fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	s.cache.Set(fingerprint, generated)
	log.Info("item generated and stored", "item_id", generated.ID)
	return domain.ItemLookupResponse{Found: false, Item: generated}, nil
}
