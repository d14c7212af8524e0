package core

import "github.com/shopspring/decimal"

// SeedIngredients returns the built-in dataset used when nothing usable is persisted.
func SeedIngredients() []Ingredient {
	return []Ingredient{
		seedIngredient("1", "Farinha de Trigo", "2.99", "1", UnitKilogram, "5", "2"),
		seedIngredient("2", "Leite Condensado", "6.99", "395", UnitGram, "12", "5"),
		seedIngredient("3", "Creme de Leite", "3.99", "200", UnitGram, "8", "4"),
		seedIngredient("4", "Açúcar", "3.89", "1", UnitKilogram, "3", "1"),
		seedIngredient("5", "Chocolate 50%", "54.99", "1000", UnitGram, "1.5", "1"), // 1 kg bar
		seedIngredient("6", "Nutella", "45.00", "650", UnitGram, "2", "1"),
	}
}

// SeedRecipes returns the built-in recipe list.
func SeedRecipes() []Recipe {
	return []Recipe{
		{
			ID:           "r1",
			Name:         "Brigadeiro Gourmet",
			LaborCost:    decimal.RequireFromString("15.00"),
			ProfitMargin: decimal.NewFromInt(100),
			Ingredients: []RecipeIngredient{
				{IngredientID: "2", QuantityUsed: decimal.NewFromInt(395)}, // one can
				{IngredientID: "3", QuantityUsed: decimal.NewFromInt(100)}, // half a box
				{IngredientID: "5", QuantityUsed: decimal.NewFromInt(50)},
			},
		},
	}
}

func seedIngredient(id, name, price, qty string, unit Unit, stock, min string) Ingredient {
	return Ingredient{
		ID:                id,
		Name:              name,
		PackagePrice:      decimal.RequireFromString(price),
		PackageQuantity:   decimal.RequireFromString(qty),
		Unit:              unit,
		CurrentStock:      decimal.RequireFromString(stock),
		MinStockThreshold: decimal.RequireFromString(min),
	}
}
