// Package metrics defines the domain Prometheus metrics of the alumni network
// API. HTTP request metrics come from echoprometheus and are not declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alumnet"

// ── Accounts ──────────────────────────────────────────────────────────────────

// RegistrationsTotal counts new accounts.
// Label:
//   - user_type: student, alumni, faculty or recruiter
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered accounts, by user type.",
	},
	[]string{"user_type"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Funding ───────────────────────────────────────────────────────────────────

// ContributionsTotal counts accepted contributions. Idempotent replays are not counted.
var ContributionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contributions_total",
		Help:      "Total number of contributions accepted, by contribution type.",
	},
	[]string{"contribution_type"},
)

// ContributedCentsTotal sums contributed amounts in minor units.
var ContributedCentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contributed_cents_total",
		Help:      "Sum of all accepted contribution amounts, in cents.",
	},
)

// ── Notifications ─────────────────────────────────────────────────────────────

var NotificationsPushedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_pushed_total",
		Help:      "Total number of notifications written to websocket clients.",
	},
)

var WebsocketClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_clients",
		Help:      "Current number of connected notification websocket clients.",
	},
)

// ── Activity log ──────────────────────────────────────────────────────────────

// ActivityRecordsTotal counts activity entries by outcome.
// Label:
//   - result: "written", "failed" (store error) or "dropped" (queue full)
var ActivityRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_records_total",
		Help:      "Total number of activity entries handled by the dispatcher, by result.",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks pending entries in each dispatcher worker channel.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

var ActivityWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_write_duration_seconds",
		Help:      "Duration of a single activity log write.",
		Buckets:   prometheus.DefBuckets,
	},
)
