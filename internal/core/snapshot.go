package core

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
)

// IngredientSummary is the advisor-facing view of one ingredient.
type IngredientSummary struct {
	Name            string          `json:"name" jsonschema_description:"Ingredient display name"`
	CurrentStock    decimal.Decimal `json:"currentStock" jsonschema_description:"Stock on hand as a decimal string"`
	Unit            Unit            `json:"unit" jsonschema:"enum=kg,enum=g,enum=l,enum=ml,enum=un"`
	PackagePrice    decimal.Decimal `json:"packagePrice" jsonschema_description:"Price of one package as a decimal string"`
	PackageQuantity decimal.Decimal `json:"packageQuantity" jsonschema_description:"Quantity of unit in one package as a decimal string"`
}

// RecipeSummary is the advisor-facing view of one recipe.
type RecipeSummary struct {
	Name         string          `json:"name" jsonschema_description:"Recipe display name"`
	ProfitMargin decimal.Decimal `json:"profitMargin" jsonschema_description:"Markup over total cost, in percent"`
}

// Snapshot is a read-only digest of both stores handed to the advisor as context.
type Snapshot struct {
	Ingredients []IngredientSummary `json:"ingredients"`
	Recipes     []RecipeSummary     `json:"recipes"`
}

// BuildSnapshot copies the fields the advisor needs out of the current lists.
func BuildSnapshot(ings []Ingredient, recipes []Recipe) Snapshot {
	s := Snapshot{
		Ingredients: make([]IngredientSummary, 0, len(ings)),
		Recipes:     make([]RecipeSummary, 0, len(recipes)),
	}
	for _, ing := range ings {
		s.Ingredients = append(s.Ingredients, IngredientSummary{
			Name:            ing.Name,
			CurrentStock:    ing.CurrentStock,
			Unit:            ing.Unit,
			PackagePrice:    ing.PackagePrice,
			PackageQuantity: ing.PackageQuantity,
		})
	}
	for _, r := range recipes {
		s.Recipes = append(s.Recipes, RecipeSummary{Name: r.Name, ProfitMargin: r.ProfitMargin})
	}
	return s
}

// InventoryText renders one line per ingredient, or a placeholder for an empty store.
func (s Snapshot) InventoryText() string {
	if len(s.Ingredients) == 0 {
		return "- no ingredients registered"
	}
	lines := make([]string, len(s.Ingredients))
	for i, ing := range s.Ingredients {
		lines[i] = fmt.Sprintf("- %s: %s %s in stock (cost: R$%s/%s%s)",
			ing.Name, ing.CurrentStock.String(), ing.Unit,
			ing.PackagePrice.StringFixed(2), ing.PackageQuantity.String(), ing.Unit)
	}
	return strings.Join(lines, "\n")
}

// RecipesText renders one line per recipe, or a placeholder for an empty store.
func (s Snapshot) RecipesText() string {
	if len(s.Recipes) == 0 {
		return "- no recipes registered"
	}
	lines := make([]string, len(s.Recipes))
	for i, r := range s.Recipes {
		lines[i] = fmt.Sprintf("- %s: margin %s%%", r.Name, r.ProfitMargin.String())
	}
	return strings.Join(lines, "\n")
}

// Text is the full plain-text digest.
func (s Snapshot) Text() string {
	return "Current inventory:\n" + s.InventoryText() + "\n\nCurrent recipes:\n" + s.RecipesText()
}

// SnapshotSchema returns the JSON Schema describing the structured Snapshot.
func SnapshotSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(decimal.Decimal{}) {
				return &jsonschema.Schema{Type: "string", Pattern: `^-?[0-9]+(\.[0-9]+)?$`}
			}
			return nil
		},
	}
	return reflector.Reflect(Snapshot{})
}
