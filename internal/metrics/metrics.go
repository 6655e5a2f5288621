// Package metrics holds the Prometheus collectors exposed on /metrics by
// smallsteps serve.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smallsteps"

// ─── Ledger ─────────────────────────────────────────────────────────────────

// ProgressRecorded counts completion-percentage writes.
var ProgressRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "progress_recorded_total",
	Help:      "Total progress entries written.",
})

// JournalsRecorded counts journal writes.
var JournalsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "journals_recorded_total",
	Help:      "Total journal entries written.",
})

// ActiveHabits tracks the number of active habits after the last write.
var ActiveHabits = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "habits_active",
	Help:      "Number of active habits.",
})

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgeChecks counts eligibility evaluations.
var BadgeChecks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "badge_checks_total",
	Help:      "Total badge eligibility checks.",
})

// BadgesUnlocked counts newly earned badges by rarity.
var BadgesUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked.",
}, []string{"rarity"})

// NotificationsFailed counts tray notifications that could not be delivered.
var NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "notifications_failed_total",
	Help:      "Total undelivered notifications.",
})

// LimitRejections counts writes refused by the subscription plan.
var LimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "limit_rejections_total",
	Help:      "Total writes refused by plan limits.",
}, []string{"limit"})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests counts API requests by route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "http_requests_total",
	Help:      "Total API requests.",
}, []string{"method", "route", "status"})

// HTTPLatency tracks API request duration in seconds.
var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "http_request_duration_seconds",
	Help:      "API request duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
}, []string{"route"})
