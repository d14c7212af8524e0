// restore-seed is a one-shot tool that overwrites the stored ingredient and
// recipe lists with the built-in seed dataset in the configured backend.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"choconati/internal/config"
	"choconati/internal/core"
	"choconati/internal/kv"
	"choconati/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CHOCONATI_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Storage.Backend == config.BackendMemory {
		log.Fatal("storage.backend is memory; nothing to restore")
	}
	lg := logger.New(cfg.App.Env)

	ctx := context.Background()
	store, cleanup, err := kv.Open(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer cleanup()

	write := func(key string, v any) {
		blob, err := json.Marshal(v)
		if err != nil {
			log.Fatalf("Failed to encode %s: %v", key, err)
		}
		if err := store.Set(ctx, key, blob); err != nil {
			log.Fatalf("Failed to write %s: %v", key, err)
		}
	}

	log.Println("Restoring ingredients...")
	write(core.IngredientsKey, core.SeedIngredients())
	log.Println("Restoring recipes...")
	write(core.RecipesKey, core.SeedRecipes())
	log.Println("Seed restored.")
}
