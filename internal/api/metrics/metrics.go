// Package metrics defines and registers all custom Prometheus metrics for the
// testimonial API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "testimonial"

// TokensIssuedTotal counts invite tokens minted by admins.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of invite tokens issued.",
	},
)

// TokenValidationsTotal counts public validation checks.
// Label:
//   - outcome: "valid" or "invalid"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of invite token validation checks, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRedemptionsTotal counts testimonial submission attempts.
// Label:
//   - result: "success", "conflict" (token no longer active), or "error"
var TokenRedemptionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_redemptions_total",
		Help:      "Total number of token redemption attempts, by result.",
	},
	[]string{"result"},
)

// ProjectsCreatedTotal counts newly created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)
