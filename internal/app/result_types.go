package app

import (
	"choconati/internal/core"

	"github.com/shopspring/decimal"
)

// IngredientView is an ingredient with the figures derived from it.
type IngredientView struct {
	core.Ingredient
	UnitCost   decimal.Decimal `json:"unitCost"`
	StockValue decimal.Decimal `json:"stockValue"`
	LowStock   bool            `json:"lowStock"`
}

// IngredientResult is returned by single-ingredient operations.
type IngredientResult struct {
	Ingredient IngredientView `json:"ingredient"`
}

// IngredientListResult is returned by ListIngredients.
type IngredientListResult struct {
	Ingredients []IngredientView `json:"ingredients"`
}

// RecipeResult is a recipe with its pricing against the current ingredients.
type RecipeResult struct {
	Recipe          core.Recipe        `json:"recipe"`
	Pricing         core.RecipePricing `json:"pricing"`
	EfficiencyRatio *decimal.Decimal   `json:"efficiencyRatio,omitempty"`
}

// RecipeListResult is returned by ListRecipes.
type RecipeListResult struct {
	Recipes []RecipeResult `json:"recipes"`
}

// QuoteResult is returned by QuoteDraft.
type QuoteResult struct {
	Draft           core.RecipeDraft   `json:"draft"`
	Pricing         core.RecipePricing `json:"pricing"`
	EfficiencyRatio *decimal.Decimal   `json:"efficiencyRatio,omitempty"`
	// Saveable reports whether SaveRecipe would accept the draft's shape.
	Saveable bool `json:"saveable"`
}

// DashboardResult is returned by Dashboard.
type DashboardResult struct {
	core.DashboardStats
	LowStock []IngredientView `json:"lowStock"`
}

// SnapshotResult is returned by Snapshot.
type SnapshotResult struct {
	Snapshot core.Snapshot `json:"snapshot"`
	Text     string        `json:"text"`
}

// AdvisorResult is returned by AskAdvisor.
type AdvisorResult struct {
	Reply string `json:"reply"`
}
