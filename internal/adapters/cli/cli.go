package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"choconati/internal/adapters/display"
	"choconati/internal/app"
	"choconati/internal/core"

	"github.com/shopspring/decimal"
)

// ErrUsage is returned for unknown commands and missing arguments.
var ErrUsage = errors.New("usage")

const usage = `Commands:
  ingredients
  add-ingredient <name> <price> <package-qty> <unit> [stock] [min-stock]
  stock <ingredient-id> <qty>
  rm-ingredient <ingredient-id>
  recipes
  price <recipe-id>
  rm-recipe <recipe-id>
  dashboard [top-n]
  snapshot [--json|--schema]
  ask "<question>"
  export [file.xlsx]`

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUsage}, args...)...)
}

// Run executes a one-shot CLI command.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string, out io.Writer) error {
	if len(args) == 0 {
		return usageErr("no command\n%s", usage)
	}

	switch args[0] {
	case "ingredients", "ing":
		res, err := svc.ListIngredients(ctx)
		if err != nil {
			return err
		}
		display.Ingredients(out, res)

	case "add-ingredient":
		if len(args) < 5 {
			return usageErr("app add-ingredient <name> <price> <package-qty> <unit> [stock] [min-stock]")
		}
		draft, err := parseIngredient(args[1:])
		if err != nil {
			return err
		}
		res, err := svc.AddIngredient(ctx, draft)
		if err != nil {
			return err
		}
		display.Ingredient(out, res)

	case "stock":
		if len(args) < 3 {
			return usageErr("app stock <ingredient-id> <qty>")
		}
		qty, err := core.ParseAmount("currentStock", args[2])
		if err != nil {
			return err
		}
		res, err := svc.UpdateStock(ctx, app.UpdateStockRequest{IngredientID: args[1], CurrentStock: qty})
		if err != nil {
			return err
		}
		display.Ingredient(out, res)

	case "rm-ingredient":
		if len(args) < 2 {
			return usageErr("app rm-ingredient <ingredient-id>")
		}
		if err := svc.RemoveIngredient(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Ingredient %s removed.\n", args[1])

	case "recipes":
		res, err := svc.ListRecipes(ctx)
		if err != nil {
			return err
		}
		display.Recipes(out, res)

	case "price":
		if len(args) < 2 {
			return usageErr("app price <recipe-id>")
		}
		res, err := svc.GetRecipe(ctx, args[1])
		if err != nil {
			return err
		}
		display.Recipe(out, res)

	case "rm-recipe":
		if len(args) < 2 {
			return usageErr("app rm-recipe <recipe-id>")
		}
		if err := svc.RemoveRecipe(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Recipe %s removed.\n", args[1])

	case "dashboard", "dash":
		top := 0
		if len(args) >= 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return usageErr("top-n must be a positive integer, got %q", args[1])
			}
			top = n
		}
		res, err := svc.Dashboard(ctx, top)
		if err != nil {
			return err
		}
		display.Dashboard(out, res)

	case "snapshot":
		mode := ""
		if len(args) >= 2 {
			mode = args[1]
		}
		return snapshot(ctx, svc, mode, out)

	case "ask":
		if len(args) < 2 {
			return usageErr("app ask \"<question>\"")
		}
		res, err := svc.AskAdvisor(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		display.Reply(out, res)

	case "export":
		path := "valuation.xlsx"
		if len(args) >= 2 {
			path = args[1]
		}
		return export(ctx, svc, path, out)

	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)

	default:
		return usageErr("unknown command %q\n%s", args[0], usage)
	}
	return nil
}

func parseIngredient(args []string) (core.IngredientDraft, error) {
	price, err := core.ParseAmount("packagePrice", args[1])
	if err != nil {
		return core.IngredientDraft{}, err
	}
	qty, err := core.ParseAmount("packageQuantity", args[2])
	if err != nil {
		return core.IngredientDraft{}, err
	}
	draft := core.IngredientDraft{
		Name:            args[0],
		PackagePrice:    decimal.NewNullDecimal(price),
		PackageQuantity: qty,
		Unit:            core.Unit(strings.ToLower(args[3])),
	}
	if len(args) >= 5 {
		if draft.CurrentStock, err = core.ParseAmount("currentStock", args[4]); err != nil {
			return core.IngredientDraft{}, err
		}
	}
	if len(args) >= 6 {
		if draft.MinStockThreshold, err = core.ParseAmount("minStockThreshold", args[5]); err != nil {
			return core.IngredientDraft{}, err
		}
	}
	return draft, nil
}

func snapshot(ctx context.Context, svc app.ApplicationService, mode string, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	switch mode {
	case "":
		res, err := svc.Snapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res.Text)
		return nil
	case "--json":
		res, err := svc.Snapshot(ctx)
		if err != nil {
			return err
		}
		return enc.Encode(res.Snapshot)
	case "--schema":
		return enc.Encode(core.SnapshotSchema())
	default:
		return usageErr("app snapshot [--json|--schema]")
	}
}

func export(ctx context.Context, svc app.ApplicationService, path string, out io.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := svc.ExportValuation(ctx, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	fmt.Fprintf(out, "Valuation written to %s\n", path)
	return nil
}
