package kv

import (
	"context"

	"choconati/internal/core"
	"choconati/internal/metrics"
)

var _ core.KV = (*Instrumented)(nil)

// Instrumented counts every operation of the wrapped store by outcome.
type Instrumented struct {
	next    core.KV
	backend string
}

// NewInstrumented wraps next. backend labels the metrics (memory, file, postgres, s3).
func NewInstrumented(next core.KV, backend string) *Instrumented {
	return &Instrumented{next: next, backend: backend}
}

func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok, err := i.next.Get(ctx, key)
	switch {
	case err != nil:
		metrics.KVOperations.WithLabelValues(i.backend, "get", metrics.OutcomeError).Inc()
	case !ok:
		metrics.KVOperations.WithLabelValues(i.backend, "get", metrics.OutcomeMiss).Inc()
	default:
		metrics.KVOperations.WithLabelValues(i.backend, "get", metrics.OutcomeOK).Inc()
	}
	return v, ok, err
}

func (i *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	err := i.next.Set(ctx, key, value)
	if err != nil {
		metrics.KVOperations.WithLabelValues(i.backend, "set", metrics.OutcomeError).Inc()
		return err
	}
	metrics.KVOperations.WithLabelValues(i.backend, "set", metrics.OutcomeOK).Inc()
	metrics.KVBytesWritten.WithLabelValues(i.backend).Add(float64(len(value)))
	return nil
}
