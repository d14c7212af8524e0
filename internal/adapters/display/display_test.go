package display_test

import (
	"bytes"
	"strings"
	"testing"

	"choconati/internal/adapters/display"
	"choconati/internal/app"
	"choconati/internal/core"

	"github.com/shopspring/decimal"
)

func TestRecipe_Breakdown(t *testing.T) {
	ings := core.SeedIngredients()
	r := core.SeedRecipes()[0]
	p := core.Price(r, ings[:4]) // chocolate and nutella left out

	var buf bytes.Buffer
	display.Recipe(&buf, &app.RecipeResult{Recipe: r, Pricing: p})
	out := buf.String()

	for _, want := range []string{"Brigadeiro Gourmet", "Leite Condensado", "(deleted ingredient)", "Selling price"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestQuote_UnsaveableHint(t *testing.T) {
	draft := core.NewRecipeDraft()
	var buf bytes.Buffer
	display.Quote(&buf, &app.QuoteResult{Draft: *draft, Pricing: core.Price(*draft, nil)})

	out := buf.String()
	if !strings.Contains(out, "(unnamed)") || !strings.Contains(out, "before it can be saved") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestIngredients_Empty(t *testing.T) {
	var buf bytes.Buffer
	display.Ingredients(&buf, &app.IngredientListResult{})

	if !strings.Contains(buf.String(), "No ingredients registered.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestDashboard_RestockSection(t *testing.T) {
	low := core.SeedIngredients()[4]
	low.CurrentStock = decimal.NewFromInt(1)

	var buf bytes.Buffer
	display.Dashboard(&buf, &app.DashboardResult{
		DashboardStats: core.DashboardStats{LowStockCount: 1},
		LowStock:       []app.IngredientView{{Ingredient: low}},
	})

	if !strings.Contains(buf.String(), "- Chocolate 50%: 1g left (min 1)") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
