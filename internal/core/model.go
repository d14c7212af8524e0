package core

import (
	"github.com/shopspring/decimal"
)

// Unit is the measurement unit an ingredient is purchased and consumed in.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitCount      Unit = "un"
)

// Units lists the accepted units in display order.
var Units = []Unit{UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitCount}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// Ingredient is a raw material with its purchase and stock attributes.
// CurrentStock is counted in packages for valuation purposes, while recipes
// consume QuantityUsed in the ingredient's Unit (see StockValueOf).
type Ingredient struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	PackagePrice      decimal.Decimal `json:"packagePrice"`
	PackageQuantity   decimal.Decimal `json:"packageQuantity"`
	Unit              Unit            `json:"unit"`
	CurrentStock      decimal.Decimal `json:"currentStock"`
	MinStockThreshold decimal.Decimal `json:"minStockThreshold"`
}

// IngredientDraft carries every client-supplied ingredient field.
// PackagePrice is nullable so that a missing price can be told apart from zero.
type IngredientDraft struct {
	Name              string              `json:"name"`
	PackagePrice      decimal.NullDecimal `json:"packagePrice"`
	PackageQuantity   decimal.Decimal     `json:"packageQuantity"`
	Unit              Unit                `json:"unit"`
	CurrentStock      decimal.Decimal     `json:"currentStock"`
	MinStockThreshold decimal.Decimal     `json:"minStockThreshold"`
}

// RecipeIngredient references an ingredient by ID with the quantity one batch consumes.
// The reference is weak: the ingredient may have been deleted since.
type RecipeIngredient struct {
	IngredientID string          `json:"ingredientId"`
	QuantityUsed decimal.Decimal `json:"quantityUsed"`
}

// Recipe is a saved product formula. Costs are never stored on it; use Price.
type Recipe struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	LaborCost    decimal.Decimal    `json:"laborCost"`
	ProfitMargin decimal.Decimal    `json:"profitMargin"`
}

// RecipeDraft is a recipe under construction. It may be freely edited, including
// into states (no ingredients, no name) that RecipeStore.Add rejects.
type RecipeDraft struct {
	Name         string             `json:"name"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	LaborCost    decimal.Decimal    `json:"laborCost"`
	ProfitMargin decimal.Decimal    `json:"profitMargin"`
}

// PricingInput is what the costing engine needs from a recipe or a draft.
type PricingInput interface {
	Lines() []RecipeIngredient
	FixedCost() decimal.Decimal
	MarginPercent() decimal.Decimal
}

var (
	_ PricingInput = Recipe{}
	_ PricingInput = RecipeDraft{}
)

func (r Recipe) Lines() []RecipeIngredient      { return r.Ingredients }
func (r Recipe) FixedCost() decimal.Decimal     { return r.LaborCost }
func (r Recipe) MarginPercent() decimal.Decimal { return r.ProfitMargin }

func (d RecipeDraft) Lines() []RecipeIngredient      { return d.Ingredients }
func (d RecipeDraft) FixedCost() decimal.Decimal     { return d.LaborCost }
func (d RecipeDraft) MarginPercent() decimal.Decimal { return d.ProfitMargin }

// NewRecipeDraft returns an empty draft with the default 50% margin.
func NewRecipeDraft() *RecipeDraft {
	return &RecipeDraft{
		LaborCost:    decimal.Zero,
		ProfitMargin: decimal.NewFromInt(50),
	}
}

// Draft copies r into an editable draft.
func (r Recipe) Draft() *RecipeDraft {
	lines := make([]RecipeIngredient, len(r.Ingredients))
	copy(lines, r.Ingredients)
	return &RecipeDraft{
		Name:         r.Name,
		Ingredients:  lines,
		LaborCost:    r.LaborCost,
		ProfitMargin: r.ProfitMargin,
	}
}

// AddIngredient appends id with a zero quantity. Adding an id already in the draft is a no-op.
func (d *RecipeDraft) AddIngredient(ingredientID string) {
	if d.indexOf(ingredientID) >= 0 {
		return
	}
	d.Ingredients = append(d.Ingredients, RecipeIngredient{IngredientID: ingredientID, QuantityUsed: decimal.Zero})
}

// RemoveIngredient drops id from the draft if present.
func (d *RecipeDraft) RemoveIngredient(ingredientID string) {
	i := d.indexOf(ingredientID)
	if i < 0 {
		return
	}
	d.Ingredients = append(d.Ingredients[:i], d.Ingredients[i+1:]...)
}

// SetQuantity sets the quantity used for id. Ids not in the draft are ignored.
func (d *RecipeDraft) SetQuantity(ingredientID string, qty decimal.Decimal) {
	if i := d.indexOf(ingredientID); i >= 0 {
		d.Ingredients[i].QuantityUsed = qty
	}
}

func (d *RecipeDraft) indexOf(ingredientID string) int {
	for i, ri := range d.Ingredients {
		if ri.IngredientID == ingredientID {
			return i
		}
	}
	return -1
}

// DashboardStats are the headline figures of the inventory overview.
type DashboardStats struct {
	TotalStockValue decimal.Decimal `json:"totalStockValue"`
	LowStockCount   int             `json:"lowStockCount"`
	TotalRecipes    int             `json:"totalRecipes"`
	TopByValue      []StockValue    `json:"topByValue"`
}

// StockValue pairs an ingredient with the value of its stock on hand.
type StockValue struct {
	IngredientID string          `json:"ingredientId"`
	Name         string          `json:"name"`
	Value        decimal.Decimal `json:"value"`
}
