package kv

import (
	"context"
	"fmt"
	"log/slog"

	"choconati/internal/config"
	"choconati/internal/core"
	"choconati/internal/db"
)

// Open builds the backend named by cfg.Storage.Backend, wrapped in Instrumented.
// The returned close func releases backend resources and is never nil.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (core.KV, func(), error) {
	noop := func() {}
	backend := cfg.Storage.Backend

	var store core.KV
	closeFn := noop
	switch backend {
	case config.BackendMemory:
		store = NewMemory()
	case config.BackendFile:
		f, err := NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		store = f
	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, noop, err
		}
		if cfg.Postgres.Migrate {
			if err := db.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, noop, err
			}
		}
		store = NewPostgres(pool)
		closeFn = pool.Close
	case config.BackendS3:
		s, err := NewS3(ctx, S3Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, noop, err
		}
		store = s
	default:
		return nil, noop, fmt.Errorf("kv: unknown backend %q", backend)
	}

	log.Info("storage ready", "backend", backend)
	return NewInstrumented(store, backend), closeFn, nil
}
