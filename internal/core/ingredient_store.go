package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientStore holds the shop's ingredients in insertion order.
// Every successful mutation persists the full list under IngredientsKey.
// It is not safe for concurrent use; the application service serializes access.
type IngredientStore interface {
	List() []Ingredient
	Get(id string) (Ingredient, error)
	// Add validates the draft, assigns a fresh id, and appends the ingredient.
	Add(ctx context.Context, draft IngredientDraft) (Ingredient, error)
	// Update replaces every client-editable field of an existing ingredient.
	Update(ctx context.Context, id string, draft IngredientDraft) (Ingredient, error)
	// UpdateStock sets the stock on hand. Fails with ErrNotFound for unknown ids.
	UpdateStock(ctx context.Context, id string, newStock decimal.Decimal) error
	// Remove deletes id. Unknown ids are a no-op.
	Remove(ctx context.Context, id string) error
	// Save writes the current list to the persistence collaborator.
	Save(ctx context.Context)
}

type ingredientStore struct {
	kv    KV
	log   *slog.Logger
	items []Ingredient
}

// NewIngredientStore loads the ingredient list from kv, falling back to the seed dataset.
func NewIngredientStore(ctx context.Context, kv KV, log *slog.Logger) IngredientStore {
	return &ingredientStore{
		kv:    kv,
		log:   log.With("store", "ingredients"),
		items: loadList(ctx, kv, IngredientsKey, SeedIngredients, checkIngredients, log),
	}
}

func (s *ingredientStore) List() []Ingredient {
	out := make([]Ingredient, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ingredientStore) Get(id string) (Ingredient, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Ingredient{}, fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
	}
	return s.items[i], nil
}

func (s *ingredientStore) Add(ctx context.Context, draft IngredientDraft) (Ingredient, error) {
	ing, err := draft.validate()
	if err != nil {
		return Ingredient{}, err
	}
	ing.ID = uuid.NewString()
	s.items = append(s.items, ing)
	s.log.Info("ingredient added", "id", ing.ID, "name", ing.Name)
	s.Save(ctx)
	return ing, nil
}

func (s *ingredientStore) Update(ctx context.Context, id string, draft IngredientDraft) (Ingredient, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Ingredient{}, fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
	}
	ing, err := draft.validate()
	if err != nil {
		return Ingredient{}, err
	}
	ing.ID = id
	s.items[i] = ing
	s.log.Info("ingredient updated", "id", id)
	s.Save(ctx)
	return ing, nil
}

func (s *ingredientStore) UpdateStock(ctx context.Context, id string, newStock decimal.Decimal) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
	}
	if newStock.IsNegative() {
		return invalid("currentStock", "must not be negative")
	}
	s.items[i].CurrentStock = newStock
	s.log.Info("stock updated", "id", id, "stock", newStock.String())
	s.Save(ctx)
	return nil
}

func (s *ingredientStore) Remove(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.log.Info("ingredient removed", "id", id)
	s.Save(ctx)
	return nil
}

func (s *ingredientStore) Save(ctx context.Context) {
	saveList(ctx, s.kv, IngredientsKey, s.items, s.log)
}

func (s *ingredientStore) indexOf(id string) int {
	for i, ing := range s.items {
		if ing.ID == id {
			return i
		}
	}
	return -1
}

// validate checks the draft invariants and returns the ingredient it describes, without an id.
// checkIngredients applies the Add rules to a loaded list, plus unique ids and
// an explicit unit.
func checkIngredients(items []Ingredient) error {
	if err := checkIDs(items, "ingredient", func(ing Ingredient) string { return ing.ID }); err != nil {
		return err
	}
	for _, ing := range items {
		draft := IngredientDraft{
			Name:              ing.Name,
			PackagePrice:      decimal.NewNullDecimal(ing.PackagePrice),
			PackageQuantity:   ing.PackageQuantity,
			Unit:              ing.Unit,
			CurrentStock:      ing.CurrentStock,
			MinStockThreshold: ing.MinStockThreshold,
		}
		if _, err := draft.validate(); err != nil {
			return fmt.Errorf("ingredient %s: %w", ing.ID, err)
		}
		if !ing.Unit.Valid() {
			return fmt.Errorf("ingredient %s: %w", ing.ID, invalid("unit", "is required"))
		}
	}
	return nil
}

func (d IngredientDraft) validate() (Ingredient, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Ingredient{}, invalid("name", "must not be empty")
	}
	if !d.PackagePrice.Valid {
		return Ingredient{}, invalid("packagePrice", "is required")
	}
	if d.PackagePrice.Decimal.IsNegative() {
		return Ingredient{}, invalid("packagePrice", "must not be negative")
	}
	if d.PackageQuantity.IsNegative() {
		return Ingredient{}, invalid("packageQuantity", "must not be negative")
	}
	if d.CurrentStock.IsNegative() {
		return Ingredient{}, invalid("currentStock", "must not be negative")
	}
	if d.MinStockThreshold.IsNegative() {
		return Ingredient{}, invalid("minStockThreshold", "must not be negative")
	}
	unit := d.Unit
	if unit == "" {
		unit = UnitKilogram
	}
	if !unit.Valid() {
		return Ingredient{}, invalid("unit", fmt.Sprintf("%q is not one of kg, g, l, ml, un", d.Unit))
	}
	return Ingredient{
		Name:              name,
		PackagePrice:      d.PackagePrice.Decimal,
		PackageQuantity:   d.PackageQuantity,
		Unit:              unit,
		CurrentStock:      d.CurrentStock,
		MinStockThreshold: d.MinStockThreshold,
	}, nil
}
