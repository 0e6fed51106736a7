// Package metrics defines and registers all custom Prometheus metrics for the
// commission marketplace API. It is the single source of truth for metric
// names, labels, and help strings. Everything registers with the default
// registry at init via promauto; the router exposes it on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Commission metrics ────────────────────────────────────────────────────────

// CommissionsCreatedTotal counts newly created commissions.
var CommissionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commissions_created_total",
		Help:      "Total number of commissions created.",
	},
)

// CommissionStatusTransitionsTotal counts applied status transitions.
// Label:
//   - status: the new status (e.g. "In Progress")
var CommissionStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commission_status_transitions_total",
		Help:      "Total number of commission status transitions, by target status.",
	},
	[]string{"status"},
)

// WriteConflictsTotal counts cross-reference updates that did not match or
// modify the expected record, leaving an entity partially referenced.
// Labels:
//   - entity: record the failed update targeted ("artist", "user", "card")
//   - op: what the update was doing ("add commission", "add review", ...)
var WriteConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "write_conflicts_total",
		Help:      "Total number of cross-reference updates that failed verification.",
	},
	[]string{"entity", "op"},
)

// ── Review metrics ────────────────────────────────────────────────────────────

// ReviewsCreatedTotal counts successfully created reviews.
var ReviewsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created.",
	},
)

// ReviewRatings observes the distribution of submitted ratings.
var ReviewRatings = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "review_ratings",
		Help:      "Distribution of submitted review ratings.",
		Buckets:   []float64{0, 1, 2, 3, 4, 5},
	},
)

// ── Card metrics ──────────────────────────────────────────────────────────────

// CardSyncsTotal counts card snapshot syncs.
// Label:
//   - result: "ok" or "error"
var CardSyncsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "card_syncs_total",
		Help:      "Total number of card snapshot syncs, by result.",
	},
	[]string{"result"},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesSentTotal counts messages accepted past the rate-limit gate.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of direct messages sent.",
	},
)

// RateLimitRejectionsTotal counts sends rejected by the rate limiter.
var RateLimitRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of messages rejected by the per-sender rate limit.",
	},
)
