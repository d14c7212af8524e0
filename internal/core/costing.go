package core

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineCost is the contribution of one recipe line to the material cost.
// Missing is set when the line's ingredient no longer exists; such lines cost zero.
type LineCost struct {
	IngredientID string          `json:"ingredientId"`
	Name         string          `json:"name,omitempty"`
	Unit         Unit            `json:"unit,omitempty"`
	QuantityUsed decimal.Decimal `json:"quantityUsed"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	Cost         decimal.Decimal `json:"cost"`
	Missing      bool            `json:"missing,omitempty"`
}

// RecipePricing is the full cost breakdown of a recipe or draft against the
// ingredient list it was computed from. It is a value, never stored.
type RecipePricing struct {
	Lines        []LineCost      `json:"lines"`
	MaterialCost decimal.Decimal `json:"materialCost"`
	LaborCost    decimal.Decimal `json:"laborCost"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Profit       decimal.Decimal `json:"profit"`
}

// UnitCost is the price of one unit of measure of ing.
// An unconfigured package size (zero quantity) costs zero rather than failing.
func UnitCost(ing Ingredient) decimal.Decimal {
	if ing.PackageQuantity.IsZero() {
		return decimal.Zero
	}
	return ing.PackagePrice.Div(ing.PackageQuantity)
}

// MaterialCost sums unit cost × quantity over the lines of in.
// Lines whose ingredient is not in ings contribute nothing.
func MaterialCost(in PricingInput, ings []Ingredient) decimal.Decimal {
	return Price(in, ings).MaterialCost
}

// TotalCost is the material cost plus the fixed labor cost.
func TotalCost(in PricingInput, ings []Ingredient) decimal.Decimal {
	return Price(in, ings).TotalCost
}

// SellingPrice applies the profit margin percentage to the total cost.
func SellingPrice(in PricingInput, ings []Ingredient) decimal.Decimal {
	return Price(in, ings).SellingPrice
}

// CostEfficiencyRatio is material cost over selling price. ok is false when the
// selling price is zero and the ratio is undefined.
func CostEfficiencyRatio(in PricingInput, ings []Ingredient) (ratio decimal.Decimal, ok bool) {
	return Price(in, ings).EfficiencyRatio()
}

// EfficiencyRatio is MaterialCost / SellingPrice, with ok=false for a zero selling price.
func (p RecipePricing) EfficiencyRatio() (decimal.Decimal, bool) {
	if p.SellingPrice.IsZero() {
		return decimal.Zero, false
	}
	return p.MaterialCost.Div(p.SellingPrice), true
}

// Price computes the complete cost breakdown of in from the current ingredients.
func Price(in PricingInput, ings []Ingredient) RecipePricing {
	byID := make(map[string]Ingredient, len(ings))
	for _, ing := range ings {
		byID[ing.ID] = ing
	}

	lines := in.Lines()
	p := RecipePricing{
		Lines:        make([]LineCost, 0, len(lines)),
		MaterialCost: decimal.Zero,
		LaborCost:    in.FixedCost(),
		ProfitMargin: in.MarginPercent(),
	}
	for _, ri := range lines {
		lc := LineCost{IngredientID: ri.IngredientID, QuantityUsed: ri.QuantityUsed}
		ing, ok := byID[ri.IngredientID]
		if !ok {
			lc.Missing = true
			lc.UnitCost = decimal.Zero
			lc.Cost = decimal.Zero
			p.Lines = append(p.Lines, lc)
			continue
		}
		lc.Name = ing.Name
		lc.Unit = ing.Unit
		lc.UnitCost = UnitCost(ing)
		lc.Cost = lc.UnitCost.Mul(ri.QuantityUsed)
		p.MaterialCost = p.MaterialCost.Add(lc.Cost)
		p.Lines = append(p.Lines, lc)
	}

	p.TotalCost = p.MaterialCost.Add(p.LaborCost)
	p.SellingPrice = p.TotalCost.Mul(decimal.NewFromInt(1).Add(p.ProfitMargin.Div(hundred)))
	p.Profit = p.SellingPrice.Sub(p.TotalCost)
	return p
}
