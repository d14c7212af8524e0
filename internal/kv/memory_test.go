package kv_test

import (
	"context"
	"testing"

	"choconati/internal/kv"
)

func TestMemory_GetMissing(t *testing.T) {
	m := kv.NewMemory()

	v, ok, err := m.Get(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || v != nil {
		t.Errorf("expected miss, got ok=%v value=%q", ok, v)
	}
}

func TestMemory_SetGetCopies(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	blob := []byte(`[1,2,3]`)
	if err := m.Set(ctx, "k", blob); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	blob[0] = 'X'

	v, ok, err := m.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(v) != `[1,2,3]` {
		t.Errorf("stored value was aliased, got %q", v)
	}

	v[0] = 'Y'
	again, _, _ := m.Get(ctx, "k")
	if string(again) != `[1,2,3]` {
		t.Errorf("returned value was aliased, got %q", again)
	}
}

func TestMemory_Overwrite(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	_ = m.Set(ctx, "k", []byte("first"))
	_ = m.Set(ctx, "k", []byte("second"))

	v, _, _ := m.Get(ctx, "k")
	if string(v) != "second" {
		t.Errorf("expected second, got %q", v)
	}
}
