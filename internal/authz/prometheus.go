package authz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// decisions counts authorization decisions by outcome.
	decisions = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Number of authorization decisions, differentiated by outcome.",
		},
		[]string{"outcome"},
	)
)

// recordDecision counts an authorization decision by outcome.
func recordDecision(d Decision) {
	outcome := "allow"
	if !d.Allowed {
		outcome = string(d.Reason)
	}

	decisions.WithLabelValues(outcome).Inc()
}
