// Package report renders inventory valuation exports.
package report

import (
	"fmt"
	"io"
	"time"

	"choconati/internal/core"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the valuation workbook.
const (
	SheetSummary     = "Resumo"
	SheetIngredients = "Estoque"
	SheetRecipes     = "Receitas"
)

// Valuation is the input of WriteValuation.
type Valuation struct {
	Ingredients []core.Ingredient
	Recipes     []core.Recipe
	TopN        int
	GeneratedAt time.Time
}

// WriteValuation writes an xlsx workbook with a summary sheet, one row per
// ingredient with its stock value, and one row per recipe with its pricing.
func WriteValuation(w io.Writer, v Valuation) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	for _, name := range []string{SheetIngredients, SheetRecipes} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeSummary(f, v); err != nil {
		return err
	}
	if err := writeIngredients(f, v.Ingredients); err != nil {
		return err
	}
	if err := writeRecipes(f, v.Recipes, v.Ingredients); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, v Valuation) error {
	stats := core.Summarize(v.Ingredients, v.Recipes, v.TopN)
	rows := [][]interface{}{
		{"generated_at", v.GeneratedAt.UTC().Format(time.RFC3339)},
		{"total_stock_value", num(stats.TotalStockValue)},
		{"low_stock_count", stats.LowStockCount},
		{"total_recipes", stats.TotalRecipes},
		{},
		{"rank", "ingredient_id", "ingredient_name", "stock_value"},
	}
	for i, sv := range stats.TopByValue {
		rows = append(rows, []interface{}{i + 1, sv.IngredientID, sv.Name, num(sv.Value)})
	}
	return setRows(f, SheetSummary, rows)
}

func writeIngredients(f *excelize.File, ings []core.Ingredient) error {
	rows := [][]interface{}{{
		"id", "name", "unit", "package_price", "package_quantity", "unit_cost",
		"current_stock", "min_stock", "stock_value", "low_stock",
	}}
	for _, ing := range ings {
		rows = append(rows, []interface{}{
			ing.ID,
			ing.Name,
			string(ing.Unit),
			num(ing.PackagePrice),
			num(ing.PackageQuantity),
			num(core.UnitCost(ing)),
			num(ing.CurrentStock),
			num(ing.MinStockThreshold),
			num(core.StockValueOf(ing)),
			core.IsLowStock(ing),
		})
	}
	return setRows(f, SheetIngredients, rows)
}

func writeRecipes(f *excelize.File, recipes []core.Recipe, ings []core.Ingredient) error {
	rows := [][]interface{}{{
		"id", "name", "material_cost", "labor_cost", "total_cost",
		"profit_margin", "selling_price", "profit", "missing_ingredients",
	}}
	for _, r := range recipes {
		p := core.Price(r, ings)
		missing := 0
		for _, l := range p.Lines {
			if l.Missing {
				missing++
			}
		}
		rows = append(rows, []interface{}{
			r.ID,
			r.Name,
			num(p.MaterialCost.Round(2)),
			num(p.LaborCost),
			num(p.TotalCost.Round(2)),
			num(p.ProfitMargin),
			num(p.SellingPrice.Round(2)),
			num(p.Profit.Round(2)),
			missing,
		})
	}
	return setRows(f, SheetRecipes, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// num converts for spreadsheet cells, which hold IEEE doubles.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
