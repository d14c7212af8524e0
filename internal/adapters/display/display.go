// Package display renders application results as fixed-width text for the
// terminal adapters.
package display

import (
	"fmt"
	"io"
	"strings"

	"choconati/internal/app"
	"choconati/internal/core"

	"github.com/shopspring/decimal"
)

const width = 78

func money(d decimal.Decimal) string { return "R$ " + d.StringFixed(2) }

func rule(w io.Writer, ch string) { fmt.Fprintln(w, strings.Repeat(ch, width)) }

func title(w io.Writer, text string) {
	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintf(w, "  %s\n", text)
	rule(w, "=")
}

// Ingredients prints the ingredient table with stock value and low-stock flags.
func Ingredients(w io.Writer, res *app.IngredientListResult) {
	title(w, "INGREDIENTS")
	if len(res.Ingredients) == 0 {
		fmt.Fprintln(w, "  No ingredients registered.")
		rule(w, "=")
		return
	}
	fmt.Fprintf(w, "  %-22s %12s %12s %8s %8s %12s %-4s %s\n", "NAME", "PRICE", "PACKAGE", "STOCK", "MIN", "VALUE", "", "ID")
	rule(w, "-")
	for _, ing := range res.Ingredients {
		flag := ""
		if ing.LowStock {
			flag = "LOW"
		}
		pkg := fmt.Sprintf("%s%s", ing.PackageQuantity.String(), ing.Unit)
		fmt.Fprintf(w, "  %-22s %12s %12s %8s %8s %12s %-4s %s\n",
			clip(ing.Name, 22), money(ing.PackagePrice), pkg, ing.CurrentStock.String(),
			ing.MinStockThreshold.String(), money(ing.StockValue), flag, ing.ID)
	}
	rule(w, "=")
}

// Ingredient prints one ingredient after a mutation.
func Ingredient(w io.Writer, res *app.IngredientResult) {
	ing := res.Ingredient
	fmt.Fprintf(w, "%s (%s): %s per %s%s, stock %s, min %s, value %s\n",
		ing.Name, ing.ID, money(ing.PackagePrice), ing.PackageQuantity.String(), ing.Unit,
		ing.CurrentStock.String(), ing.MinStockThreshold.String(), money(ing.StockValue))
	if ing.LowStock {
		fmt.Fprintln(w, "WARNING: stock is at or below the minimum.")
	}
}

// Recipes prints one summary line per recipe.
func Recipes(w io.Writer, res *app.RecipeListResult) {
	title(w, "RECIPES")
	if len(res.Recipes) == 0 {
		fmt.Fprintln(w, "  No recipes registered.")
		rule(w, "=")
		return
	}
	fmt.Fprintf(w, "  %-26s %13s %8s %13s %13s  %s\n", "NAME", "TOTAL COST", "MARGIN", "PRICE", "PROFIT", "ID")
	rule(w, "-")
	for _, r := range res.Recipes {
		fmt.Fprintf(w, "  %-26s %13s %7s%% %13s %13s  %s\n",
			clip(r.Recipe.Name, 26), money(r.Pricing.TotalCost), r.Pricing.ProfitMargin.String(),
			money(r.Pricing.SellingPrice), money(r.Pricing.Profit), r.Recipe.ID)
	}
	rule(w, "=")
}

// Recipe prints the full cost breakdown of a saved recipe.
func Recipe(w io.Writer, res *app.RecipeResult) {
	title(w, fmt.Sprintf("RECIPE %s (%s)", res.Recipe.Name, res.Recipe.ID))
	breakdown(w, res.Pricing, res.EfficiencyRatio)
}

// Quote prints the live pricing of a draft under edit.
func Quote(w io.Writer, res *app.QuoteResult) {
	name := res.Draft.Name
	if name == "" {
		name = "(unnamed)"
	}
	title(w, "DRAFT "+name)
	breakdown(w, res.Pricing, res.EfficiencyRatio)
	if !res.Saveable {
		fmt.Fprintln(w, "  Needs a name and at least one ingredient before it can be saved.")
	}
}

func breakdown(w io.Writer, p core.RecipePricing, ratio *decimal.Decimal) {
	if len(p.Lines) == 0 {
		fmt.Fprintln(w, "  No ingredients yet.")
	} else {
		fmt.Fprintf(w, "  %-24s %12s %14s %13s  %s\n", "INGREDIENT", "QTY", "UNIT COST", "COST", "ID")
		rule(w, "-")
	}
	for _, l := range p.Lines {
		if l.Missing {
			fmt.Fprintf(w, "  %-24s %12s %14s %13s  %s\n",
				"(deleted ingredient)", l.QuantityUsed.String(), "-", money(l.Cost), l.IngredientID)
			continue
		}
		fmt.Fprintf(w, "  %-24s %12s %14s %13s  %s\n",
			clip(l.Name, 24), l.QuantityUsed.String()+string(l.Unit),
			"R$ "+l.UnitCost.StringFixed(4), money(l.Cost), l.IngredientID)
	}
	rule(w, "-")
	fmt.Fprintf(w, "  %-40s %13s\n", "Material cost", money(p.MaterialCost))
	fmt.Fprintf(w, "  %-40s %13s\n", "Labor / overhead", money(p.LaborCost))
	fmt.Fprintf(w, "  %-40s %13s\n", "Total cost", money(p.TotalCost))
	fmt.Fprintf(w, "  %-40s %12s%%\n", "Profit margin", p.ProfitMargin.String())
	fmt.Fprintf(w, "  %-40s %13s\n", "Selling price", money(p.SellingPrice))
	fmt.Fprintf(w, "  %-40s %13s\n", "Profit", money(p.Profit))
	if ratio != nil {
		fmt.Fprintf(w, "  %-40s %12s%%\n", "Material share of price", ratio.Mul(decimal.NewFromInt(100)).StringFixed(1))
	}
	rule(w, "=")
}

// Dashboard prints the inventory overview.
func Dashboard(w io.Writer, res *app.DashboardResult) {
	title(w, "DASHBOARD")
	fmt.Fprintf(w, "  %-30s %s\n", "Total stock value", money(res.TotalStockValue))
	fmt.Fprintf(w, "  %-30s %d\n", "Low-stock ingredients", res.LowStockCount)
	fmt.Fprintf(w, "  %-30s %d\n", "Recipes", res.TotalRecipes)
	rule(w, "-")
	fmt.Fprintln(w, "  Highest stock value:")
	for i, sv := range res.TopByValue {
		fmt.Fprintf(w, "  %2d. %-40s %13s\n", i+1, clip(sv.Name, 40), money(sv.Value))
	}
	if len(res.LowStock) > 0 {
		rule(w, "-")
		fmt.Fprintln(w, "  Restock soon:")
		for _, ing := range res.LowStock {
			fmt.Fprintf(w, "  - %s: %s%s left (min %s)\n", ing.Name, ing.CurrentStock.String(), ing.Unit, ing.MinStockThreshold.String())
		}
	}
	rule(w, "=")
}

// Reply prints an advisor answer.
func Reply(w io.Writer, res *app.AdvisorResult) {
	fmt.Fprintf(w, "\n[Advisor]:\n%s\n", res.Reply)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
