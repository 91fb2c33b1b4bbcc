// Package metrics defines and registers all custom Prometheus metrics for the
// Dev Manager API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devmanager"

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivitiesRecordedTotal counts audit records successfully persisted.
// Labels:
//   - action: create, update, delete, login, logout, view
//   - entity_type: client, project, user, system
var ActivitiesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_recorded_total",
		Help:      "Total number of audit records successfully persisted.",
	},
	[]string{"action", "entity_type"},
)

// ActivitiesDroppedTotal counts audit records dropped because the dispatcher
// shard buffer was full. Recording never blocks the request path, so drops
// are the pressure-relief valve.
var ActivitiesDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_dropped_total",
		Help:      "Total number of audit records dropped due to a full queue.",
	},
)

// ActivitiesErrorsTotal counts audit records that failed to persist. These
// failures are swallowed (never surfaced to the caller) and visible only here
// and in the operational logs.
var ActivitiesErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_errors_total",
		Help:      "Total number of audit records that failed to persist.",
	},
)

// ActivityQueueDepth tracks the current number of records waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "locked_out", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)
