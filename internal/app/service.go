package app

import (
	"context"
	"io"

	"choconati/internal/core"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI, Web) call.
// It decouples presentation from business logic: implementations contain no
// printing and no display logic. It is safe for concurrent use.
type ApplicationService interface {
	// ListIngredients returns every ingredient in insertion order with its stock figures.
	ListIngredients(ctx context.Context) (*IngredientListResult, error)

	// GetIngredient returns one ingredient. Unknown ids wrap core.ErrNotFound.
	GetIngredient(ctx context.Context, id string) (*IngredientResult, error)

	// AddIngredient validates and registers a new ingredient under a fresh id.
	AddIngredient(ctx context.Context, draft core.IngredientDraft) (*IngredientResult, error)

	// UpdateIngredient replaces every editable field of an existing ingredient.
	UpdateIngredient(ctx context.Context, id string, draft core.IngredientDraft) (*IngredientResult, error)

	// UpdateStock sets the stock on hand of one ingredient.
	UpdateStock(ctx context.Context, req UpdateStockRequest) (*IngredientResult, error)

	// RemoveIngredient deletes an ingredient. Recipes that use it keep their
	// reference; the line simply stops costing anything.
	RemoveIngredient(ctx context.Context, id string) error

	// ListRecipes returns saved recipes, each priced against the current ingredients.
	ListRecipes(ctx context.Context) (*RecipeListResult, error)

	// GetRecipe returns one recipe with its live pricing.
	GetRecipe(ctx context.Context, id string) (*RecipeResult, error)

	// SaveRecipe stores a finished draft as a new recipe.
	SaveRecipe(ctx context.Context, draft core.RecipeDraft) (*RecipeResult, error)

	// UpdateRecipe replaces an existing recipe with the contents of draft.
	UpdateRecipe(ctx context.Context, id string, draft core.RecipeDraft) (*RecipeResult, error)

	// RemoveRecipe deletes a recipe. Unknown ids are a no-op.
	RemoveRecipe(ctx context.Context, id string) error

	// QuoteDraft prices a draft without saving it. Incomplete drafts are priced as they are.
	QuoteDraft(ctx context.Context, draft core.RecipeDraft) (*QuoteResult, error)

	// Dashboard returns the inventory overview. topN <= 0 uses the configured default.
	Dashboard(ctx context.Context, topN int) (*DashboardResult, error)

	// Snapshot returns the advisor-facing digest of both stores.
	Snapshot(ctx context.Context) (*SnapshotResult, error)

	// AskAdvisor forwards a question, with the current snapshot, to the advisor.
	// Advisor failures come back as a reply text, never as an error.
	AskAdvisor(ctx context.Context, text string) (*AdvisorResult, error)

	// ExportValuation writes the valuation workbook (xlsx) to w.
	ExportValuation(ctx context.Context, w io.Writer) error

	// Close persists both stores one last time.
	Close(ctx context.Context) error
}
