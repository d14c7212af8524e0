package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// loadList reads key from kv and decodes it as a JSON array. Any miss, read
// error, malformed or non-array blob, or a list rejected by check falls back to seed.
func loadList[T any](ctx context.Context, kv KV, key string, seed func() []T, check func([]T) error, log *slog.Logger) []T {
	blob, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Warn("persisted data unavailable, using seed", "key", key, "err", err)
		return seed()
	}
	if !ok {
		log.Debug("no persisted data, using seed", "key", key)
		return seed()
	}
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		log.Warn("persisted data is not an array, using seed", "key", key)
		return seed()
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		log.Warn("persisted data is malformed, using seed", "key", key, "err", err)
		return seed()
	}
	if items == nil {
		items = []T{}
	}
	if err := check(items); err != nil {
		log.Warn("persisted data violates store invariants, using seed", "key", key, "err", err)
		return seed()
	}
	return items
}

// checkIDs rejects empty and repeated ids. label names the record kind in errors.
func checkIDs[T any](items []T, label string, id func(T) string) error {
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		v := id(item)
		if v == "" {
			return fmt.Errorf("%s #%d: empty id", label, i)
		}
		if seen[v] {
			return fmt.Errorf("%s %s: duplicate id", label, v)
		}
		seen[v] = true
	}
	return nil
}

// saveList writes items under key. Failures are logged and swallowed: the
// in-memory state stays authoritative and no retry is attempted.
func saveList[T any](ctx context.Context, kv KV, key string, items []T, log *slog.Logger) {
	blob, err := json.Marshal(items)
	if err != nil {
		log.Error("failed to encode list for persistence", "key", key, "err", err)
		return
	}
	if err := kv.Set(ctx, key, blob); err != nil {
		log.Error("failed to persist list", "key", key, "err", err)
	}
}
