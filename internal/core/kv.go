package core

import "context"

// Keys under which the stores persist their full lists.
const (
	IngredientsKey = "choconati_ingredients"
	RecipesKey     = "choconati_recipes"
)

// KV is the persistence collaborator: an opaque blob per key.
// Get reports ok=false when the key has never been written.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
