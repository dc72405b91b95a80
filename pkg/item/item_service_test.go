package item

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"Nutripedia-Backend/domain"
	"Nutripedia-Backend/entities"
	"Nutripedia-Backend/pkg/cache"
)

type fakeRepository struct {
	items     map[string]*entities.Item
	findCalls int
	inserted  []*entities.Item
	insertErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: make(map[string]*entities.Item)}
}

func (r *fakeRepository) FindByName(_ context.Context, nameLowercase string) (*entities.Item, error) {
	r.findCalls++
	if it, ok := r.items[nameLowercase]; ok {
		return it, nil
	}
	return nil, domain.ErrItemNotFound
}

func (r *fakeRepository) Insert(_ context.Context, item *entities.Item) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, item)
	r.items[item.NameLowercase] = item
	return nil
}

type fakeGenerator struct {
	raw   []byte
	err   error
	calls int
}

func (g *fakeGenerator) GenerateItem(_ context.Context, _ string) ([]byte, error) {
	g.calls++
	return g.raw, g.err
}

func newService(repo *fakeRepository, gen *fakeGenerator) ItemService {
	return NewItemService(repo, gen, cache.NewItemCache(cache.DefaultTTL))
}

func storedGinger(t *testing.T) *entities.Item {
	t.Helper()
	it, violations := ValidateItemJSON([]byte(validIngredientJSON), StagePreStorage)
	if len(violations) != 0 {
		t.Fatalf("fixture: %v", violations)
	}
	it.AssignSystemFields("ginger")
	return it
}

func TestLookupGeneratesValidatesAndPersists(t *testing.T) {
	repo := newFakeRepository()
	gen := &fakeGenerator{raw: []byte(validIngredientJSON)}
	service := newService(repo, gen)

	res, err := service.Lookup(context.Background(), "ginger", "req-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if res.Found {
		t.Error("freshly generated item must report found:false")
	}
	if res.Item.ID == "" || res.Item.CreatedAt == "" {
		t.Error("expected assigned system fields on the returned item")
	}
	if res.Item.NameLowercase != "ginger" {
		t.Errorf("NameLowercase = %q, want ginger", res.Item.NameLowercase)
	}
	if _, err := time.Parse(time.RFC3339, res.Item.CreatedAt); err != nil {
		t.Errorf("CreatedAt %q is not RFC3339: %v", res.Item.CreatedAt, err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected exactly one insert, got %d", len(repo.inserted))
	}
}

func TestLookupStoreHitSkipsGenerator(t *testing.T) {
	repo := newFakeRepository()
	repo.items["ginger"] = storedGinger(t)
	gen := &fakeGenerator{err: errors.New("must not be called")}
	service := newService(repo, gen)

	// Trailing space and mixed case normalize to the stored key.
	res, err := service.Lookup(context.Background(), "Ginger ", "req-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !res.Found {
		t.Error("store hit must report found:true")
	}
	if gen.calls != 0 {
		t.Error("generator must not run on a store hit")
	}

	// Same item as a plain lookup of "ginger".
	res2, err := service.Lookup(context.Background(), "ginger", "req-2")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res2.Item.ID != res.Item.ID {
		t.Error("case/whitespace variants must resolve to the same item")
	}
}

func TestLookupSecondCallServedFromCache(t *testing.T) {
	repo := newFakeRepository()
	repo.items["ginger"] = storedGinger(t)
	service := newService(repo, &fakeGenerator{})

	if _, err := service.Lookup(context.Background(), "ginger", "req-1"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	res, err := service.Lookup(context.Background(), "GINGER", "req-2")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if !res.Found {
		t.Error("cache hit must report found:true")
	}
	if repo.findCalls != 1 {
		t.Errorf("expected one store query, got %d", repo.findCalls)
	}
}

func TestLookupFreshGenerationIsCached(t *testing.T) {
	repo := newFakeRepository()
	gen := &fakeGenerator{raw: []byte(validIngredientJSON)}
	service := newService(repo, gen)

	if _, err := service.Lookup(context.Background(), "ginger", "req-1"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if _, err := service.Lookup(context.Background(), "ginger", "req-2"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if gen.calls != 1 {
		t.Errorf("expected one generation, got %d", gen.calls)
	}
	if repo.findCalls != 1 {
		t.Errorf("second lookup must be a cache hit, store queried %d times", repo.findCalls)
	}
}

func TestLookupGeneratorFlagsInvalidItem(t *testing.T) {
	service := newService(newFakeRepository(), &fakeGenerator{err: domain.ErrInvalidItem})

	_, err := service.Lookup(context.Background(), "arsenic", "req-1")
	if !errors.Is(err, domain.ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}

func TestLookupRejectsNonConsumableCategory(t *testing.T) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(validIngredientJSON), &obj); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	obj["Category"] = "plastic container"
	raw, _ := json.Marshal(obj)

	repo := newFakeRepository()
	service := newService(repo, &fakeGenerator{raw: raw})

	_, err := service.Lookup(context.Background(), "lego brick", "req-1")
	if !errors.Is(err, domain.ErrNotConsumable) {
		t.Fatalf("expected ErrNotConsumable, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Error("a rejected item must never be persisted")
	}
}

func TestLookupRejectsSchemaViolations(t *testing.T) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(validIngredientJSON), &obj); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	obj["Bogus"] = "extra"
	raw, _ := json.Marshal(obj)

	repo := newFakeRepository()
	service := newService(repo, &fakeGenerator{raw: raw})

	_, err := service.Lookup(context.Background(), "ginger", "req-1")
	if !errors.Is(err, domain.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Error("an invalid record must never be persisted")
	}
}

func TestLookupSurfacesGeneratorUnavailable(t *testing.T) {
	service := newService(newFakeRepository(), &fakeGenerator{err: domain.ErrGeneratorUnavailable})

	_, err := service.Lookup(context.Background(), "ginger", "req-1")
	if !errors.Is(err, domain.ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestLookupSurfacesPersistFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.insertErr = errors.New("table offline")
	service := newService(repo, &fakeGenerator{raw: []byte(validIngredientJSON)})

	_, err := service.Lookup(context.Background(), "ginger", "req-1")
	if !errors.Is(err, domain.ErrPersistFailed) {
		t.Fatalf("expected ErrPersistFailed, got %v", err)
	}
}

func TestLookupSurfacesConditionalInsertConflict(t *testing.T) {
	repo := newFakeRepository()
	repo.insertErr = domain.ErrItemAlreadyExists
	service := newService(repo, &fakeGenerator{raw: []byte(validIngredientJSON)})

	_, err := service.Lookup(context.Background(), "ginger", "req-1")
	if !errors.Is(err, domain.ErrItemAlreadyExists) {
		t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
	}
}
