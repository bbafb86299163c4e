// Package metrics defines and registers all custom Prometheus metrics for the
// realty API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; per-route HTTP metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "realty"

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthFailuresTotal counts requests rejected by the session verifier.
// Label:
//   - reason: "token_missing", "token_invalid", "token_expired" or "misconfigured"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by session verification.",
	},
	[]string{"reason"},
)

// CredentialLocationsTotal counts verified sessions by where the token was found.
// Label:
//   - location: "cookie", "bearer", "header" or "query"
var CredentialLocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_locations_total",
		Help:      "Total number of verified sessions, labelled by credential location.",
	},
	[]string{"location"},
)

// SessionsIssuedTotal counts session tokens issued at signup/signin.
// Label:
//   - role: "buyer", "seller" or "admin"
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued, by role.",
	},
	[]string{"role"},
)

// ForbiddenTotal counts ownership checks that denied an authenticated caller.
var ForbiddenTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forbidden_total",
		Help:      "Total number of requests denied by ownership authorization.",
	},
)

// ── Origin metrics ────────────────────────────────────────────────────────────

// OriginDecisionsTotal counts origin gate outcomes.
// Labels:
//   - result: "allowed", "rejected" or "no_origin"
//   - preflight: "true" or "false"
var OriginDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "origin_decisions_total",
		Help:      "Total number of cross-origin gate decisions.",
	},
	[]string{"result", "preflight"},
)

// ── Cleanup metrics ───────────────────────────────────────────────────────────

// CleanupJobsTotal counts account cleanup jobs.
// Label:
//   - result: "done", "failed" or "dropped"
var CleanupJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cleanup_jobs_total",
		Help:      "Total number of account cleanup jobs, labelled by result.",
	},
	[]string{"result"},
)

// CleanupQueueDepth tracks jobs waiting in each cleanup worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var CleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cleanup_queue_depth",
		Help:      "Current number of cleanup jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// CleanupDuration measures how long purging one account's records takes.
var CleanupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cleanup_duration_seconds",
		Help:      "Duration of a single account cleanup job.",
		Buckets:   prometheus.DefBuckets,
	},
)
