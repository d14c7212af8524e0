package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"choconati/internal/app"
	"choconati/internal/core"
	"choconati/internal/kv"
	"choconati/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeAdvisor struct {
	mu    sync.Mutex
	asked []string
	snaps []core.Snapshot
}

func (f *fakeAdvisor) Ask(_ context.Context, text string, snap core.Snapshot) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, text)
	f.snaps = append(f.snaps, snap)
	return "resposta: " + text
}

func newService(t *testing.T) (app.ApplicationService, *kv.Memory, *fakeAdvisor) {
	t.Helper()
	ctx := context.Background()
	mem := kv.NewMemory()
	adv := &fakeAdvisor{}
	svc := app.NewAppService(
		core.NewIngredientStore(ctx, mem, quiet),
		core.NewRecipeStore(ctx, mem, quiet),
		adv, quiet, app.Options{TopN: 3},
	)
	return svc, mem, adv
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestListIngredients_DerivedFigures(t *testing.T) {
	svc, _, _ := newService(t)

	res, err := svc.ListIngredients(context.Background())
	if err != nil {
		t.Fatalf("ListIngredients failed: %v", err)
	}
	if len(res.Ingredients) != 6 {
		t.Fatalf("expected 6 seed ingredients, got %d", len(res.Ingredients))
	}
	nutella := res.Ingredients[5]
	if !nutella.StockValue.Equal(dec("90")) {
		t.Errorf("expected Nutella stock value 90, got %s", nutella.StockValue)
	}
	if nutella.LowStock {
		t.Error("Nutella should not be low on stock")
	}
}

func TestUpdateStock_FlagsLowStock(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	res, err := svc.UpdateStock(ctx, app.UpdateStockRequest{IngredientID: "6", CurrentStock: dec("1")})
	if err != nil {
		t.Fatalf("UpdateStock failed: %v", err)
	}
	if !res.Ingredient.LowStock {
		t.Error("stock equal to the threshold should be low")
	}

	dash, err := svc.Dashboard(ctx, 0)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dash.LowStockCount != 1 || len(dash.LowStock) != 1 || dash.LowStock[0].ID != "6" {
		t.Errorf("unexpected low stock: count=%d list=%v", dash.LowStockCount, dash.LowStock)
	}
	if len(dash.TopByValue) != 3 {
		t.Errorf("expected configured top 3, got %d", len(dash.TopByValue))
	}
}

func TestUpdateStock_Errors(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	notFound := metrics.StoreMutations.WithLabelValues("ingredient", "stock", "not_found")
	before := testutil.ToFloat64(notFound)

	_, err := svc.UpdateStock(ctx, app.UpdateStockRequest{IngredientID: "zz", CurrentStock: dec("1")})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if testutil.ToFloat64(notFound)-before != 1 {
		t.Error("expected not_found mutation to be counted")
	}

	_, err = svc.UpdateStock(ctx, app.UpdateStockRequest{IngredientID: "1", CurrentStock: dec("-1")})
	if !core.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRecipes_PricedLive(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	r, err := svc.GetRecipe(ctx, "r1")
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if got := r.Pricing.SellingPrice.StringFixed(2); got != "53.47" {
		t.Errorf("expected 53.47, got %s", got)
	}
	if r.EfficiencyRatio == nil {
		t.Fatal("expected an efficiency ratio")
	}

	if err := svc.RemoveIngredient(ctx, "5"); err != nil {
		t.Fatalf("RemoveIngredient failed: %v", err)
	}
	r, _ = svc.GetRecipe(ctx, "r1")
	if !r.Pricing.Lines[2].Missing {
		t.Error("expected the deleted chocolate line to be flagged missing")
	}
	if r.Pricing.SellingPrice.GreaterThanOrEqual(dec("53.46")) {
		t.Errorf("price should drop after the chocolate is gone, got %s", r.Pricing.SellingPrice)
	}
}

func TestQuoteDraft(t *testing.T) {
	svc, _, _ := newService(t)

	draft := core.NewRecipeDraft()
	draft.LaborCost = dec("8")
	q, err := svc.QuoteDraft(context.Background(), *draft)
	if err != nil {
		t.Fatalf("QuoteDraft failed: %v", err)
	}
	if !q.Pricing.SellingPrice.Equal(dec("12")) {
		t.Errorf("expected 12, got %s", q.Pricing.SellingPrice)
	}
	if q.Saveable {
		t.Error("a draft without name or ingredients is not saveable")
	}

	draft.Name = "Trufa"
	draft.AddIngredient("5")
	draft.SetQuantity("5", dec("20"))
	q, _ = svc.QuoteDraft(context.Background(), *draft)
	if !q.Saveable {
		t.Error("expected complete draft to be saveable")
	}
}

func TestSaveRecipe_PersistsAndRejects(t *testing.T) {
	svc, mem, _ := newService(t)
	ctx := context.Background()

	draft := core.NewRecipeDraft()
	draft.Name = "Beijinho"
	draft.AddIngredient("2")
	draft.SetQuantity("2", dec("395"))
	saved, err := svc.SaveRecipe(ctx, *draft)
	if err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}

	reloaded := core.NewRecipeStore(ctx, mem, quiet)
	if _, err := reloaded.Get(saved.Recipe.ID); err != nil {
		t.Errorf("saved recipe not persisted: %v", err)
	}

	if _, err := svc.SaveRecipe(ctx, *core.NewRecipeDraft()); !core.IsValidation(err) {
		t.Errorf("expected validation error for empty draft, got %v", err)
	}
	list, _ := svc.ListRecipes(ctx)
	if len(list.Recipes) != 2 {
		t.Errorf("expected 2 recipes, got %d", len(list.Recipes))
	}
}

func TestAskAdvisor_PassesSnapshot(t *testing.T) {
	svc, _, adv := newService(t)

	res, err := svc.AskAdvisor(context.Background(), "O que produzir?")
	if err != nil {
		t.Fatalf("AskAdvisor failed: %v", err)
	}
	if res.Reply != "resposta: O que produzir?" {
		t.Errorf("unexpected reply %q", res.Reply)
	}
	if len(adv.snaps) != 1 || len(adv.snaps[0].Ingredients) != 6 || len(adv.snaps[0].Recipes) != 1 {
		t.Errorf("advisor did not receive the current snapshot: %+v", adv.snaps)
	}
}

func TestExportValuation(t *testing.T) {
	svc, _, _ := newService(t)

	var buf bytes.Buffer
	if err := svc.ExportValuation(context.Background(), &buf); err != nil {
		t.Fatalf("ExportValuation failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("expected a zip-based xlsx payload")
	}
}

func TestConcurrentMutations(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.AddIngredient(ctx, core.IngredientDraft{
				Name:         "Granulado",
				PackagePrice: decimal.NewNullDecimal(dec("4.5")),
			})
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.Dashboard(ctx, 0)
		}()
	}
	wg.Wait()

	res, _ := svc.ListIngredients(ctx)
	if len(res.Ingredients) != 26 {
		t.Errorf("expected 26 ingredients, got %d", len(res.Ingredients))
	}
}

func TestClose_Flushes(t *testing.T) {
	svc, mem, _ := newService(t)
	ctx := context.Background()

	if err := svc.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	for _, key := range []string{core.IngredientsKey, core.RecipesKey} {
		if _, ok, _ := mem.Get(ctx, key); !ok {
			t.Errorf("expected %s to be written on close", key)
		}
	}
}
