package app

import (
	"context"
	"log/slog"

	"choconati/internal/ai"
	"choconati/internal/config"
	"choconati/internal/core"
	"choconati/internal/kv"
)

// Build wires storage, stores and advisor from cfg. The returned cleanup
// releases the storage backend and must run after Close.
func Build(ctx context.Context, cfg config.Config, log *slog.Logger) (ApplicationService, func(), error) {
	store, cleanup, err := kv.Open(ctx, cfg, log)
	if err != nil {
		return nil, func() {}, err
	}

	if cfg.Advisor.APIKey == "" {
		log.Debug("advisor credential not set")
	}
	advisor := ai.NewAgent(cfg.Advisor.APIKey, log, ai.Options{
		Model:           cfg.Advisor.Model,
		BaseURL:         cfg.Advisor.BaseURL,
		Shop:            cfg.App.Shop,
		Timeout:         cfg.Advisor.Timeout,
		MaxOutputTokens: cfg.Advisor.MaxOutputTokens,
	})

	svc := NewAppService(
		core.NewIngredientStore(ctx, store, log),
		core.NewRecipeStore(ctx, store, log),
		advisor,
		log,
		Options{TopN: cfg.Dashboard.TopN},
	)
	return svc, cleanup, nil
}
