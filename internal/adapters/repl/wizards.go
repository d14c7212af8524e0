package repl

import (
	"fmt"
	"strings"

	"choconati/internal/adapters/display"
	"choconati/internal/core"

	"github.com/shopspring/decimal"
)

// prompt asks for one value. ok is false on "cancel" or end of input.
func (s *session) prompt(label string) (string, bool) {
	fmt.Fprintf(s.out, "%s: ", label)
	v, ok := s.readLine()
	if !ok || strings.EqualFold(v, "cancel") {
		return "", false
	}
	return v, true
}

// promptAmount re-asks until the value parses. Blank input yields def when one is given.
func (s *session) promptAmount(label, field string, def *decimal.Decimal) (decimal.Decimal, bool) {
	for {
		raw, ok := s.prompt(label)
		if !ok {
			return decimal.Zero, false
		}
		if raw == "" && def != nil {
			return *def, true
		}
		d, err := core.ParseAmount(field, raw)
		if err != nil {
			fmt.Fprintf(s.out, "  %v\n", err)
			continue
		}
		return d, true
	}
}

func (s *session) addIngredient() error {
	fmt.Fprintln(s.out, "New ingredient. Type 'cancel' at any prompt to abort.")
	zero := decimal.Zero
	cancelled := func() error {
		fmt.Fprintln(s.out, "Ingredient not created.")
		return nil
	}

	name, ok := s.prompt("Name")
	if !ok {
		return cancelled()
	}
	price, ok := s.promptAmount("Package price (R$)", "packagePrice", nil)
	if !ok {
		return cancelled()
	}
	qty, ok := s.promptAmount("Package quantity", "packageQuantity", nil)
	if !ok {
		return cancelled()
	}
	unit, ok := s.prompt("Unit [kg, g, l, ml, un] (blank = kg)")
	if !ok {
		return cancelled()
	}
	stock, ok := s.promptAmount("Current stock (blank = 0)", "currentStock", &zero)
	if !ok {
		return cancelled()
	}
	minStock, ok := s.promptAmount("Minimum stock (blank = 0)", "minStockThreshold", &zero)
	if !ok {
		return cancelled()
	}

	res, err := s.svc.AddIngredient(s.ctx, core.IngredientDraft{
		Name:              name,
		PackagePrice:      decimal.NewNullDecimal(price),
		PackageQuantity:   qty,
		Unit:              core.Unit(strings.ToLower(unit)),
		CurrentStock:      stock,
		MinStockThreshold: minStock,
	})
	if err != nil {
		return err
	}
	display.Ingredient(s.out, res)
	return nil
}

const recipeEditorHelp = `Recipe editor commands:
  name <text>            set the name
  labor <amount>         labor and overhead cost (R$)
  margin <percent>       profit margin over total cost
  add <id> [qty]         add an ingredient (repeat adds are ignored)
  qty <id> <qty>         set the quantity used
  rm <id>                remove an ingredient
  list                   show the available ingredients
  save | cancel`

// editRecipe runs the draft editor. An empty id saves a new recipe, otherwise
// the recipe with that id is replaced.
func (s *session) editRecipe(id string, draft *core.RecipeDraft) error {
	fmt.Fprintln(s.out, recipeEditorHelp)
	s.quote(draft)

	for {
		fmt.Fprint(s.out, "\nrecipe> ")
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out, "Draft discarded.")
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "name":
			draft.Name = strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		case "labor":
			if v, ok := s.amountArg(args, 0, "laborCost"); ok {
				draft.LaborCost = v
			}
		case "margin":
			if v, ok := s.amountArg(args, 0, "profitMargin"); ok {
				draft.ProfitMargin = v
			}
		case "add":
			if len(args) < 1 {
				fmt.Fprintln(s.out, "  Usage: add <ingredient-id> [qty]")
				continue
			}
			if _, err := s.svc.GetIngredient(s.ctx, args[0]); err != nil {
				fmt.Fprintf(s.out, "  %v\n", err)
				continue
			}
			draft.AddIngredient(args[0])
			if len(args) >= 2 {
				if v, ok := s.amountArg(args, 1, "quantityUsed"); ok {
					draft.SetQuantity(args[0], v)
				}
			}
		case "qty":
			if len(args) < 2 {
				fmt.Fprintln(s.out, "  Usage: qty <ingredient-id> <qty>")
				continue
			}
			if v, ok := s.amountArg(args, 1, "quantityUsed"); ok {
				draft.SetQuantity(args[0], v)
			}
		case "rm":
			if len(args) < 1 {
				fmt.Fprintln(s.out, "  Usage: rm <ingredient-id>")
				continue
			}
			draft.RemoveIngredient(args[0])
		case "list":
			res, err := s.svc.ListIngredients(s.ctx)
			if err != nil {
				return err
			}
			display.Ingredients(s.out, res)
			continue
		case "save":
			if err := s.saveDraft(id, draft); err != nil {
				fmt.Fprintf(s.out, "  Not saved: %v\n", err)
				continue
			}
			return nil
		case "cancel":
			fmt.Fprintln(s.out, "Draft discarded.")
			return nil
		case "help":
			fmt.Fprintln(s.out, recipeEditorHelp)
			continue
		default:
			fmt.Fprintf(s.out, "  Unknown editor command %q (type help)\n", cmd)
			continue
		}
		s.quote(draft)
	}
}

// amountArg parses args[i]; a bad value is reported and leaves the draft unchanged.
func (s *session) amountArg(args []string, i int, field string) (decimal.Decimal, bool) {
	if len(args) <= i {
		fmt.Fprintf(s.out, "  missing value for %s\n", field)
		return decimal.Zero, false
	}
	v, err := core.ParseAmount(field, args[i])
	if err != nil {
		fmt.Fprintf(s.out, "  %v\n", err)
		return decimal.Zero, false
	}
	return v, true
}

func (s *session) quote(draft *core.RecipeDraft) {
	res, err := s.svc.QuoteDraft(s.ctx, *draft)
	if err != nil {
		fmt.Fprintf(s.out, "  quote failed: %v\n", err)
		return
	}
	display.Quote(s.out, res)
}

func (s *session) saveDraft(id string, draft *core.RecipeDraft) error {
	if id == "" {
		res, err := s.svc.SaveRecipe(s.ctx, *draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Recipe saved (ID: %s)\n", res.Recipe.ID)
		display.Recipe(s.out, res)
		return nil
	}
	res, err := s.svc.UpdateRecipe(s.ctx, id, *draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Recipe %s updated.\n", id)
	display.Recipe(s.out, res)
	return nil
}
