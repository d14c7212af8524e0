// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeOK           = "ok"
	OutcomeMiss         = "miss"
	OutcomeError        = "error"
	OutcomeEmpty        = "empty"
	OutcomeUnconfigured = "unconfigured"
	OutcomeBlank        = "blank"
)

var (
	KVOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "choconati_kv_operations_total",
		Help: "Persistence operations by backend, operation and outcome.",
	}, []string{"backend", "op", "outcome"})

	KVBytesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "choconati_kv_bytes_written_total",
		Help: "Bytes written to the persistence backend.",
	}, []string{"backend"})

	AdvisorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "choconati_advisor_requests_total",
		Help: "Advisor questions by outcome.",
	}, []string{"outcome"})

	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "choconati_store_mutations_total",
		Help: "Accepted and rejected store mutations by entity and operation.",
	}, []string{"entity", "op", "result"})
)
