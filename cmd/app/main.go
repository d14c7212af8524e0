package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"choconati/internal/adapters/cli"
	"choconati/internal/adapters/repl"
	"choconati/internal/app"
	"choconati/internal/config"
	"choconati/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.Load(os.Getenv("CHOCONATI_CONFIG"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// stdout belongs to the user; structured logs go to stderr.
	lg := logger.NewWriter(os.Stderr, cfg.App.Env)

	ctx := context.Background()
	svc, cleanup, err := app.Build(ctx, cfg, lg)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	defer cleanup()
	defer func() { _ = svc.Close(ctx) }()

	if len(args) > 0 {
		return cli.Run(ctx, svc, args, os.Stdout)
	}
	repl.Run(ctx, svc, bufio.NewReader(os.Stdin), os.Stdout)
	return nil
}
