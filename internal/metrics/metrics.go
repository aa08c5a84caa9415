package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Service holds the prometheus collectors for the transaction pipeline. Each
// Service owns its registry so parallel test servers never collide.
type Service struct {
	Registry *prometheus.Registry

	RelayAttempts  *prometheus.CounterVec
	RelayFallbacks prometheus.Counter
	Submissions    *prometheus.CounterVec
	SignOperations *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Service {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Service{
		Registry: registry,
		RelayAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_attempts_total",
			Help: "Gas relay submission attempts by outcome.",
		}, []string{"outcome"}),
		RelayFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_fallbacks_total",
			Help: "Direct-submission fallbacks after relay exhaustion.",
		}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transaction_submissions_total",
			Help: "Logical transaction submissions by result.",
		}, []string{"result", "sponsored"}),
		SignOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sign_operations_total",
			Help: "Signing operations by wallet source.",
		}, []string{"source"}),
	}

	registry.MustRegister(s.RelayAttempts, s.RelayFallbacks, s.Submissions, s.SignOperations)

	return s
}
