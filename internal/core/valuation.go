package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultTopN is the number of ingredients shown in value rankings when the caller does not choose.
const DefaultTopN = 5

// StockValueOf is CurrentStock × PackagePrice.
//
// This multiplies by the package price, not the unit cost: stock is valued as
// a count of packages, while recipes consume QuantityUsed in base units. The
// two bases disagree for ingredients whose package holds more than one unit
// (395 g of condensed milk), and the formula is kept as is on purpose.
func StockValueOf(ing Ingredient) decimal.Decimal {
	return ing.CurrentStock.Mul(ing.PackagePrice)
}

// TotalStockValue sums StockValueOf over ings. It is zero for an empty list.
func TotalStockValue(ings []Ingredient) decimal.Decimal {
	total := decimal.Zero
	for _, ing := range ings {
		total = total.Add(StockValueOf(ing))
	}
	return total
}

// IsLowStock reports whether stock is at or below the minimum threshold.
func IsLowStock(ing Ingredient) bool {
	return ing.CurrentStock.LessThanOrEqual(ing.MinStockThreshold)
}

// LowStockCount counts the ingredients flagged by IsLowStock.
func LowStockCount(ings []Ingredient) int {
	n := 0
	for _, ing := range ings {
		if IsLowStock(ing) {
			n++
		}
	}
	return n
}

// LowStock returns the low-stock ingredients in list order.
func LowStock(ings []Ingredient) []Ingredient {
	var out []Ingredient
	for _, ing := range ings {
		if IsLowStock(ing) {
			out = append(out, ing)
		}
	}
	return out
}

// RankByValue orders ingredients by descending stock value, keeping list order
// among equal values, and keeps the first n. n <= 0 means DefaultTopN.
func RankByValue(ings []Ingredient, n int) []StockValue {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := make([]StockValue, len(ings))
	for i, ing := range ings {
		ranked[i] = StockValue{IngredientID: ing.ID, Name: ing.Name, Value: StockValueOf(ing)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value.GreaterThan(ranked[j].Value)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Summarize computes the dashboard figures for the current stores.
func Summarize(ings []Ingredient, recipes []Recipe, topN int) DashboardStats {
	return DashboardStats{
		TotalStockValue: TotalStockValue(ings),
		LowStockCount:   LowStockCount(ings),
		TotalRecipes:    len(recipes),
		TopByValue:      RankByValue(ings, topN),
	}
}
