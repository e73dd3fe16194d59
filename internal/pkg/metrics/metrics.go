// Package metrics defines and registers all custom Prometheus metrics for the
// order desk. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto and served by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "orderdesk"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created service orders.
// Label:
//   - priority: "LOW", "MEDIUM" or "HIGH"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of service orders created, by priority.",
	},
	[]string{"priority"},
)

// OrderStatusChangesTotal counts status updates.
// Label:
//   - status: the status applied (e.g. "IN_PROGRESS")
var OrderStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_changes_total",
		Help:      "Total number of order status changes, by new status.",
	},
	[]string{"status"},
)

// OrderMessagesTotal counts chat messages posted on orders.
// Label:
//   - type: "text" or "file"
var OrderMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_messages_total",
		Help:      "Total number of chat messages appended to orders, by type.",
	},
	[]string{"type"},
)

// OrderErrorsTotal counts failed order mutations.
// Label:
//   - reason: short description of the failure (e.g. "not_found", "persistence")
var OrderErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_errors_total",
		Help:      "Total number of order mutations that failed.",
	},
	[]string{"reason"},
)

// ── View metrics ──────────────────────────────────────────────────────────────

// BoardStreamClients tracks the number of open board event streams.
var BoardStreamClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "board_stream_clients",
		Help:      "Current number of clients connected to the board event stream.",
	},
)

// PollDuration measures how long one poller refresh takes.
var PollDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "poll_duration_seconds",
		Help:      "Duration of a single poller snapshot read and callback.",
		Buckets:   prometheus.DefBuckets,
	},
)
