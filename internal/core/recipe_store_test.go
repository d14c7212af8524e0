package core_test

import (
	"context"
	"testing"

	"choconati/internal/core"
	"choconati/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeStore_Seed(t *testing.T) {
	store := core.NewRecipeStore(context.Background(), kv.NewMemory(), quiet)

	list := store.List()
	require.Len(t, list, 1)
	assert.Equal(t, "r1", list[0].ID)
	assert.Equal(t, "Brigadeiro Gourmet", list[0].Name)
	assert.Len(t, list[0].Ingredients, 3)
}

func TestRecipeStore_SeedFallbackOnInvalidRecords(t *testing.T) {
	const line = `"ingredients":[{"ingredientId":"1","quantityUsed":"10"}],"laborCost":"1","profitMargin":"50"`
	for name, blob := range map[string]string{
		"duplicate id":     `[{"id":"r","name":"A",` + line + `},{"id":"r","name":"B",` + line + `}]`,
		"null record":      `[null]`,
		"empty name":       `[{"id":"r","name":" ",` + line + `}]`,
		"no ingredients":   `[{"id":"r","name":"A","ingredients":[],"laborCost":"1","profitMargin":"50"}]`,
		"negative labor":   `[{"id":"r","name":"A","ingredients":[{"ingredientId":"1","quantityUsed":"1"}],"laborCost":"-1"}]`,
		"repeated line id": `[{"id":"r","name":"A","ingredients":[{"ingredientId":"1","quantityUsed":"1"},{"ingredientId":"1","quantityUsed":"2"}]}]`,
	} {
		t.Run(name, func(t *testing.T) {
			mem := kv.NewMemory()
			require.NoError(t, mem.Set(context.Background(), core.RecipesKey, []byte(blob)))

			store := core.NewRecipeStore(context.Background(), mem, quiet)
			list := store.List()
			require.Len(t, list, 1)
			assert.Equal(t, "Brigadeiro Gourmet", list[0].Name)
		})
	}
}

func TestRecipeStore_LoadKeepsDanglingReferences(t *testing.T) {
	blob := `[{"id":"r","name":"Trufa","ingredients":[{"ingredientId":"gone","quantityUsed":"5"}],"laborCost":"2","profitMargin":"-10"}]`
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(context.Background(), core.RecipesKey, []byte(blob)))

	store := core.NewRecipeStore(context.Background(), mem, quiet)
	got, err := store.Get("r")
	require.NoError(t, err)
	assert.Equal(t, "gone", got.Ingredients[0].IngredientID)
}

func TestRecipeStore_AddFromDraft(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	store := core.NewRecipeStore(ctx, mem, quiet)

	draft := core.NewRecipeDraft()
	draft.Name = "Bolo de Chocolate"
	draft.AddIngredient("1")
	draft.AddIngredient("5")
	draft.SetQuantity("1", d("0.5"))
	draft.SetQuantity("5", d("200"))

	r, err := store.Add(ctx, *draft)
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.True(t, r.ProfitMargin.Equal(d("50")))

	reloaded := core.NewRecipeStore(ctx, mem, quiet)
	got, err := reloaded.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bolo de Chocolate", got.Name)
	require.Len(t, got.Ingredients, 2)
	assert.True(t, got.Ingredients[1].QuantityUsed.Equal(d("200")))
}

func TestRecipeStore_AddValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft core.RecipeDraft
		field string
	}{
		{"no name", core.RecipeDraft{Ingredients: []core.RecipeIngredient{{IngredientID: "1", QuantityUsed: d("1")}}}, "name"},
		{"no ingredients", core.RecipeDraft{Name: "Vazio"}, "ingredients"},
		{"negative labor", core.RecipeDraft{Name: "x", LaborCost: d("-1"), Ingredients: []core.RecipeIngredient{{IngredientID: "1"}}}, "laborCost"},
		{"blank id", core.RecipeDraft{Name: "x", Ingredients: []core.RecipeIngredient{{IngredientID: ""}}}, "ingredients"},
		{"duplicate id", core.RecipeDraft{Name: "x", Ingredients: []core.RecipeIngredient{{IngredientID: "1"}, {IngredientID: "1"}}}, "ingredients"},
		{"negative quantity", core.RecipeDraft{Name: "x", Ingredients: []core.RecipeIngredient{{IngredientID: "1", QuantityUsed: d("-3")}}}, "quantityUsed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := core.NewRecipeStore(ctx, kv.NewMemory(), quiet)

			_, err := store.Add(ctx, tt.draft)
			var ve *core.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Len(t, store.List(), 1)
		})
	}
}

func TestRecipeStore_NegativeMarginAllowed(t *testing.T) {
	ctx := context.Background()
	store := core.NewRecipeStore(ctx, kv.NewMemory(), quiet)

	_, err := store.Add(ctx, core.RecipeDraft{
		Name:         "Queima de estoque",
		Ingredients:  []core.RecipeIngredient{{IngredientID: "4", QuantityUsed: d("1")}},
		ProfitMargin: d("-20"),
	})
	assert.NoError(t, err)
}

func TestRecipeStore_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	store := core.NewRecipeStore(ctx, kv.NewMemory(), quiet)

	seed, err := store.Get("r1")
	require.NoError(t, err)
	draft := seed.Draft()
	draft.ProfitMargin = d("80")
	draft.RemoveIngredient("3")

	updated, err := store.Update(ctx, "r1", *draft)
	require.NoError(t, err)
	assert.Len(t, updated.Ingredients, 2)
	assert.True(t, updated.ProfitMargin.Equal(d("80")))

	_, err = store.Update(ctx, "r404", *draft)
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, store.Remove(ctx, "r1"))
	require.NoError(t, store.Remove(ctx, "r1"))
	assert.Empty(t, store.List())
}

func TestRecipeStore_GetReturnsACopy(t *testing.T) {
	store := core.NewRecipeStore(context.Background(), kv.NewMemory(), quiet)

	r, _ := store.Get("r1")
	r.Ingredients[0].QuantityUsed = d("9999")

	again, _ := store.Get("r1")
	assert.True(t, again.Ingredients[0].QuantityUsed.Equal(d("395")))
}

func TestRecipeStore_KeepsRecipeWhenIngredientDeleted(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	ings := core.NewIngredientStore(ctx, mem, quiet)
	recipes := core.NewRecipeStore(ctx, mem, quiet)

	require.NoError(t, ings.Remove(ctx, "5"))

	r, err := recipes.Get("r1")
	require.NoError(t, err)
	assert.Len(t, r.Ingredients, 3, "references are weak and survive deletion")
}

func TestRecipeDraft_Editing(t *testing.T) {
	draft := core.NewRecipeDraft()
	assert.True(t, draft.LaborCost.IsZero())
	assert.True(t, draft.ProfitMargin.Equal(d("50")))

	draft.AddIngredient("2")
	draft.SetQuantity("2", d("100"))
	draft.AddIngredient("2")
	require.Len(t, draft.Ingredients, 1, "adding twice is a no-op")
	assert.True(t, draft.Ingredients[0].QuantityUsed.Equal(d("100")), "re-adding keeps the quantity")

	draft.SetQuantity("9", d("1"))
	assert.Len(t, draft.Ingredients, 1, "setting an absent id is ignored")

	draft.RemoveIngredient("9")
	draft.RemoveIngredient("2")
	assert.Empty(t, draft.Ingredients)
}

func TestRecipe_DraftIsIndependent(t *testing.T) {
	r := core.SeedRecipes()[0]
	draft := r.Draft()
	draft.SetQuantity("2", d("1"))

	assert.True(t, r.Ingredients[0].QuantityUsed.Equal(d("395")))
}
