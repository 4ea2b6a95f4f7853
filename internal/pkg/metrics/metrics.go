// Package metrics defines and registers all custom Prometheus metrics for the
// Bistro Boss ordering API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package load
// (promauto), so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordering"

// ── Identity metrics ──────────────────────────────────────────────────────────

// TokensIssuedTotal counts bearer tokens minted by POST /jwt.
// Label:
//   - mode: issuance mode ("open" or "verified")
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
	[]string{"mode"},
)

// GateRejectionsTotal counts requests stopped by the auth or role gate.
// Labels:
//   - gate: "auth" or "role"
//   - reason: e.g. "missing_header", "invalid_token", "not_admin"
var GateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_rejections_total",
		Help:      "Total number of requests rejected by the auth and role gates.",
	},
	[]string{"gate", "reason"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentIntentsTotal counts payment intent requests by outcome.
// Label:
//   - outcome: "created", "invalid_price", "price_mismatch", "empty_cart", "processor_error", "error"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intent requests, by outcome.",
	},
	[]string{"outcome"},
)

// PaymentIntentDuration measures the round trip to the payment processor.
var PaymentIntentDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_intent_duration_seconds",
		Help:      "Duration of payment processor intent creation calls.",
		Buckets:   prometheus.DefBuckets,
	},
)

// CheckoutsTotal counts checkout finalizations.
// Labels:
//   - mode: "saga" or "transaction"
//   - outcome: "completed", "cleanup_pending", "duplicate", "failed"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout finalizations, by mode and outcome.",
	},
	[]string{"mode", "outcome"},
)

// CartItemsClearedTotal counts cart items removed by checkouts and cleanup retries.
var CartItemsClearedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_cleared_total",
		Help:      "Total number of cart items removed after payment.",
	},
)

// ── Cleanup worker metrics ────────────────────────────────────────────────────

// CleanupTasksTotal counts cart cleanup task transitions.
// Label:
//   - result: "scheduled", "dropped", "succeeded", "retried", "exhausted"
var CleanupTasksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cleanup_tasks_total",
		Help:      "Total number of cart cleanup task transitions, by result.",
	},
	[]string{"result"},
)

// CleanupQueueDepth tracks the tasks waiting in each cleanup worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var CleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cleanup_queue_depth",
		Help:      "Current number of cleanup tasks pending in each worker channel.",
	},
	[]string{"worker_id"},
)
