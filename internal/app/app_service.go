package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"choconati/internal/ai"
	"choconati/internal/core"
	"choconati/internal/metrics"
	"choconati/internal/report"

	"github.com/shopspring/decimal"
)

type appService struct {
	mu          sync.Mutex
	ingredients core.IngredientStore
	recipes     core.RecipeStore
	advisor     ai.AdvisorService
	topN        int
	log         *slog.Logger
	now         func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	ingredients core.IngredientStore,
	recipes core.RecipeStore,
	advisor ai.AdvisorService,
	log *slog.Logger,
	opts Options,
) ApplicationService {
	topN := opts.TopN
	if topN <= 0 {
		topN = core.DefaultTopN
	}
	return &appService{
		ingredients: ingredients,
		recipes:     recipes,
		advisor:     advisor,
		topN:        topN,
		log:         log,
		now:         time.Now,
	}
}

// Mutation result labels.
const (
	resultOK       = "ok"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"
	resultError    = "error"
)

func record(entity, op string, err error) {
	result := resultOK
	switch {
	case err == nil:
	case core.IsValidation(err):
		result = resultInvalid
	case errors.Is(err, core.ErrNotFound):
		result = resultNotFound
	default:
		result = resultError
	}
	metrics.StoreMutations.WithLabelValues(entity, op, result).Inc()
}

func view(ing core.Ingredient) IngredientView {
	return IngredientView{
		Ingredient: ing,
		UnitCost:   core.UnitCost(ing),
		StockValue: core.StockValueOf(ing),
		LowStock:   core.IsLowStock(ing),
	}
}

func ratioPtr(p core.RecipePricing) *decimal.Decimal {
	r, ok := p.EfficiencyRatio()
	if !ok {
		return nil
	}
	return &r
}

func priced(r core.Recipe, ings []core.Ingredient) RecipeResult {
	p := core.Price(r, ings)
	return RecipeResult{Recipe: r, Pricing: p, EfficiencyRatio: ratioPtr(p)}
}

func (s *appService) ListIngredients(ctx context.Context) (*IngredientListResult, error) {
	s.mu.Lock()
	ings := s.ingredients.List()
	s.mu.Unlock()

	out := make([]IngredientView, len(ings))
	for i, ing := range ings {
		out[i] = view(ing)
	}
	return &IngredientListResult{Ingredients: out}, nil
}

func (s *appService) GetIngredient(ctx context.Context, id string) (*IngredientResult, error) {
	s.mu.Lock()
	ing, err := s.ingredients.Get(id)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &IngredientResult{Ingredient: view(ing)}, nil
}

func (s *appService) AddIngredient(ctx context.Context, draft core.IngredientDraft) (*IngredientResult, error) {
	s.mu.Lock()
	ing, err := s.ingredients.Add(ctx, draft)
	s.mu.Unlock()
	record("ingredient", "add", err)
	if err != nil {
		return nil, err
	}
	return &IngredientResult{Ingredient: view(ing)}, nil
}

func (s *appService) UpdateIngredient(ctx context.Context, id string, draft core.IngredientDraft) (*IngredientResult, error) {
	s.mu.Lock()
	ing, err := s.ingredients.Update(ctx, id, draft)
	s.mu.Unlock()
	record("ingredient", "update", err)
	if err != nil {
		return nil, err
	}
	return &IngredientResult{Ingredient: view(ing)}, nil
}

func (s *appService) UpdateStock(ctx context.Context, req UpdateStockRequest) (*IngredientResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.ingredients.UpdateStock(ctx, req.IngredientID, req.CurrentStock)
	record("ingredient", "stock", err)
	if err != nil {
		return nil, err
	}
	ing, err := s.ingredients.Get(req.IngredientID)
	if err != nil {
		return nil, err
	}
	return &IngredientResult{Ingredient: view(ing)}, nil
}

func (s *appService) RemoveIngredient(ctx context.Context, id string) error {
	s.mu.Lock()
	err := s.ingredients.Remove(ctx, id)
	s.mu.Unlock()
	record("ingredient", "remove", err)
	return err
}

func (s *appService) ListRecipes(ctx context.Context) (*RecipeListResult, error) {
	s.mu.Lock()
	recipes := s.recipes.List()
	ings := s.ingredients.List()
	s.mu.Unlock()

	out := make([]RecipeResult, len(recipes))
	for i, r := range recipes {
		out[i] = priced(r, ings)
	}
	return &RecipeListResult{Recipes: out}, nil
}

func (s *appService) GetRecipe(ctx context.Context, id string) (*RecipeResult, error) {
	s.mu.Lock()
	r, err := s.recipes.Get(id)
	ings := s.ingredients.List()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	res := priced(r, ings)
	return &res, nil
}

func (s *appService) SaveRecipe(ctx context.Context, draft core.RecipeDraft) (*RecipeResult, error) {
	s.mu.Lock()
	r, err := s.recipes.Add(ctx, draft)
	ings := s.ingredients.List()
	s.mu.Unlock()
	record("recipe", "add", err)
	if err != nil {
		return nil, err
	}
	s.warnMissing(r, ings)
	res := priced(r, ings)
	return &res, nil
}

func (s *appService) UpdateRecipe(ctx context.Context, id string, draft core.RecipeDraft) (*RecipeResult, error) {
	s.mu.Lock()
	r, err := s.recipes.Update(ctx, id, draft)
	ings := s.ingredients.List()
	s.mu.Unlock()
	record("recipe", "update", err)
	if err != nil {
		return nil, err
	}
	s.warnMissing(r, ings)
	res := priced(r, ings)
	return &res, nil
}

// warnMissing logs recipe lines that reference no current ingredient. Saving
// such a recipe is allowed; the line costs zero until the id exists again.
func (s *appService) warnMissing(r core.Recipe, ings []core.Ingredient) {
	for _, l := range core.Price(r, ings).Lines {
		if l.Missing {
			s.log.Warn("recipe references unknown ingredient", "recipe", r.ID, "ingredient", l.IngredientID)
		}
	}
}

func (s *appService) RemoveRecipe(ctx context.Context, id string) error {
	s.mu.Lock()
	err := s.recipes.Remove(ctx, id)
	s.mu.Unlock()
	record("recipe", "remove", err)
	return err
}

func (s *appService) QuoteDraft(ctx context.Context, draft core.RecipeDraft) (*QuoteResult, error) {
	s.mu.Lock()
	ings := s.ingredients.List()
	s.mu.Unlock()

	p := core.Price(draft, ings)
	return &QuoteResult{
		Draft:           draft,
		Pricing:         p,
		EfficiencyRatio: ratioPtr(p),
		Saveable:        draft.Validate() == nil,
	}, nil
}

func (s *appService) Dashboard(ctx context.Context, topN int) (*DashboardResult, error) {
	if topN <= 0 {
		topN = s.topN
	}
	s.mu.Lock()
	ings := s.ingredients.List()
	recipes := s.recipes.List()
	s.mu.Unlock()

	low := core.LowStock(ings)
	lowViews := make([]IngredientView, len(low))
	for i, ing := range low {
		lowViews[i] = view(ing)
	}
	return &DashboardResult{
		DashboardStats: core.Summarize(ings, recipes, topN),
		LowStock:       lowViews,
	}, nil
}

func (s *appService) snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.BuildSnapshot(s.ingredients.List(), s.recipes.List())
}

func (s *appService) Snapshot(ctx context.Context) (*SnapshotResult, error) {
	snap := s.snapshot()
	return &SnapshotResult{Snapshot: snap, Text: snap.Text()}, nil
}

func (s *appService) AskAdvisor(ctx context.Context, text string) (*AdvisorResult, error) {
	// The call runs outside the lock on a copied snapshot.
	reply := s.advisor.Ask(ctx, text, s.snapshot())
	return &AdvisorResult{Reply: reply}, nil
}

func (s *appService) ExportValuation(ctx context.Context, w io.Writer) error {
	s.mu.Lock()
	v := report.Valuation{
		Ingredients: s.ingredients.List(),
		Recipes:     s.recipes.List(),
		TopN:        s.topN,
		GeneratedAt: s.now(),
	}
	s.mu.Unlock()

	if err := report.WriteValuation(w, v); err != nil {
		return fmt.Errorf("export valuation: %w", err)
	}
	return nil
}

func (s *appService) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients.Save(ctx)
	s.recipes.Save(ctx)
	s.log.Info("stores flushed")
	return nil
}
