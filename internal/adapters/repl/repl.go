package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"choconati/internal/adapters/display"
	"choconati/internal/app"
	"choconati/internal/core"
)

var errExit = errors.New("exit")

type session struct {
	ctx    context.Context
	svc    app.ApplicationService
	reader *bufio.Reader
	out    io.Writer
}

// Run starts the interactive REPL loop.
// It reads commands from reader, dispatches slash commands deterministically,
// and routes free text to the advisor. It returns on /exit or end of input.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, out io.Writer) {
	s := &session{ctx: ctx, svc: svc, reader: reader, out: out}

	fmt.Fprintln(out, "ChocoNati")
	fmt.Fprintln(out, "Ask the advisor anything about your stock and recipes, or use /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for {
		fmt.Fprint(out, "\n> ")
		input, ok := s.readLine()
		if !ok {
			fmt.Fprintln(out, "\nGoodbye!")
			return
		}
		if input == "" {
			continue
		}

		// Slash prefix → deterministic command dispatcher, no advisor call.
		if strings.HasPrefix(input, "/") {
			if err := s.dispatch(input); err != nil {
				if errors.Is(err, errExit) {
					fmt.Fprintln(out, "Goodbye!")
					return
				}
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			continue
		}

		fmt.Fprintln(out, "[Advisor] Thinking...")
		res, err := svc.AskAdvisor(ctx, input)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		display.Reply(out, res)
	}
}

// readLine returns the next trimmed line; ok is false once input is exhausted.
func (s *session) readLine() (string, bool) {
	line, err := s.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (s *session) dispatch(input string) error {
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]
	ctx, svc, out := s.ctx, s.svc, s.out

	switch cmd {
	case "ingredients", "ing":
		res, err := svc.ListIngredients(ctx)
		if err != nil {
			return err
		}
		display.Ingredients(out, res)

	case "add-ingredient":
		return s.addIngredient()

	case "stock":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: /stock <ingredient-id> <qty>")
			return nil
		}
		qty, err := core.ParseAmount("currentStock", args[1])
		if err != nil {
			return err
		}
		res, err := svc.UpdateStock(ctx, app.UpdateStockRequest{IngredientID: args[0], CurrentStock: qty})
		if err != nil {
			return err
		}
		display.Ingredient(out, res)

	case "rm-ingredient":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /rm-ingredient <ingredient-id>")
			return nil
		}
		if err := svc.RemoveIngredient(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Ingredient %s removed. Recipes using it now price that line at zero.\n", args[0])

	case "recipes":
		res, err := svc.ListRecipes(ctx)
		if err != nil {
			return err
		}
		display.Recipes(out, res)

	case "recipe", "price":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /recipe <recipe-id>")
			return nil
		}
		res, err := svc.GetRecipe(ctx, args[0])
		if err != nil {
			return err
		}
		display.Recipe(out, res)

	case "new-recipe":
		return s.editRecipe("", core.NewRecipeDraft())

	case "edit-recipe":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /edit-recipe <recipe-id>")
			return nil
		}
		res, err := svc.GetRecipe(ctx, args[0])
		if err != nil {
			return err
		}
		return s.editRecipe(res.Recipe.ID, res.Recipe.Draft())

	case "rm-recipe":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: /rm-recipe <recipe-id>")
			return nil
		}
		if err := svc.RemoveRecipe(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Recipe %s removed.\n", args[0])

	case "dashboard", "dash":
		res, err := svc.Dashboard(ctx, 0)
		if err != nil {
			return err
		}
		display.Dashboard(out, res)

	case "snapshot":
		res, err := svc.Snapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res.Text)

	case "help", "h":
		printHelp(out)

	case "exit", "quit", "e", "q":
		return errExit

	default:
		fmt.Fprintf(out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
	}
	return nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `Commands:
  /ingredients                    list ingredients with stock value
  /add-ingredient                 register an ingredient (guided)
  /stock <id> <qty>               set stock on hand
  /rm-ingredient <id>             delete an ingredient
  /recipes                        list recipes with live pricing
  /recipe <id>                    full cost breakdown
  /new-recipe                     build a recipe with a live quote
  /edit-recipe <id>               edit a saved recipe
  /rm-recipe <id>                 delete a recipe
  /dashboard                      stock value, low stock, top ingredients
  /snapshot                       what the advisor sees
  /help, /exit
Anything else is sent to the advisor.`)
}
