package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// RecipeStore holds saved recipes in insertion order and persists them under RecipesKey.
type RecipeStore interface {
	List() []Recipe
	Get(id string) (Recipe, error)
	// Add saves a draft as a new recipe. A draft without a name or without
	// ingredients is rejected here even though it can be edited in that state.
	Add(ctx context.Context, draft RecipeDraft) (Recipe, error)
	// Update replaces an existing recipe's name, ingredient list, labor cost and margin.
	Update(ctx context.Context, id string, draft RecipeDraft) (Recipe, error)
	// Remove deletes id. Unknown ids are a no-op.
	Remove(ctx context.Context, id string) error
	Save(ctx context.Context)
}

type recipeStore struct {
	kv    KV
	log   *slog.Logger
	items []Recipe
}

// NewRecipeStore loads the recipe list from kv, falling back to the seed dataset.
func NewRecipeStore(ctx context.Context, kv KV, log *slog.Logger) RecipeStore {
	return &recipeStore{
		kv:    kv,
		log:   log.With("store", "recipes"),
		items: loadList(ctx, kv, RecipesKey, SeedRecipes, checkRecipes, log),
	}
}

func (s *recipeStore) List() []Recipe {
	out := make([]Recipe, len(s.items))
	for i, r := range s.items {
		out[i] = r.clone()
	}
	return out
}

func (s *recipeStore) Get(id string) (Recipe, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	return s.items[i].clone(), nil
}

func (s *recipeStore) Add(ctx context.Context, draft RecipeDraft) (Recipe, error) {
	r, err := draft.validate()
	if err != nil {
		return Recipe{}, err
	}
	r.ID = uuid.NewString()
	s.items = append(s.items, r)
	s.log.Info("recipe added", "id", r.ID, "name", r.Name, "ingredients", len(r.Ingredients))
	s.Save(ctx)
	return r.clone(), nil
}

func (s *recipeStore) Update(ctx context.Context, id string, draft RecipeDraft) (Recipe, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	r, err := draft.validate()
	if err != nil {
		return Recipe{}, err
	}
	r.ID = id
	s.items[i] = r
	s.log.Info("recipe updated", "id", id)
	s.Save(ctx)
	return r.clone(), nil
}

func (s *recipeStore) Remove(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.log.Info("recipe removed", "id", id)
	s.Save(ctx)
	return nil
}

func (s *recipeStore) Save(ctx context.Context) {
	saveList(ctx, s.kv, RecipesKey, s.items, s.log)
}

func (s *recipeStore) indexOf(id string) int {
	for i, r := range s.items {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (r Recipe) clone() Recipe {
	lines := make([]RecipeIngredient, len(r.Ingredients))
	copy(lines, r.Ingredients)
	r.Ingredients = lines
	return r
}

// Validate reports whether Add would accept the draft.
func (d RecipeDraft) Validate() error {
	_, err := d.validate()
	return err
}

// checkRecipes applies the Add rules to a loaded list, plus unique ids.
// Ingredient references stay weak and are not resolved here.
func checkRecipes(items []Recipe) error {
	if err := checkIDs(items, "recipe", func(r Recipe) string { return r.ID }); err != nil {
		return err
	}
	for _, r := range items {
		draft := RecipeDraft{Name: r.Name, Ingredients: r.Ingredients, LaborCost: r.LaborCost, ProfitMargin: r.ProfitMargin}
		if _, err := draft.validate(); err != nil {
			return fmt.Errorf("recipe %s: %w", r.ID, err)
		}
	}
	return nil
}

func (d RecipeDraft) validate() (Recipe, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Recipe{}, invalid("name", "must not be empty")
	}
	if len(d.Ingredients) == 0 {
		return Recipe{}, invalid("ingredients", "a recipe needs at least one ingredient")
	}
	if d.LaborCost.IsNegative() {
		return Recipe{}, invalid("laborCost", "must not be negative")
	}
	seen := make(map[string]bool, len(d.Ingredients))
	lines := make([]RecipeIngredient, 0, len(d.Ingredients))
	for _, ri := range d.Ingredients {
		if ri.IngredientID == "" {
			return Recipe{}, invalid("ingredients", "ingredient id must not be empty")
		}
		if seen[ri.IngredientID] {
			return Recipe{}, invalid("ingredients", fmt.Sprintf("ingredient %s listed twice", ri.IngredientID))
		}
		if ri.QuantityUsed.IsNegative() {
			return Recipe{}, invalid("quantityUsed", fmt.Sprintf("ingredient %s: must not be negative", ri.IngredientID))
		}
		seen[ri.IngredientID] = true
		lines = append(lines, ri)
	}
	return Recipe{
		Name:         name,
		Ingredients:  lines,
		LaborCost:    d.LaborCost,
		ProfitMargin: d.ProfitMargin,
	}, nil
}
