// Package metrics defines all custom Prometheus metrics for the customer
// records service. It is the single source of truth for metric names, labels,
// and help strings; promauto registers everything with the default registry
// at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "customer_system"

// ── Auth metrics ──────────────────────────────────────────────────────────────

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

// RegistrationsTotal counts bootstrap registration attempts.
// Label:
//   - result: "success", "closed", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// SessionsActive tracks the number of sessions established minus sessions
// logged out. Expired sessions are not observed and are therefore still
// counted; treat this as an upper bound.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Sessions established minus sessions explicitly logged out.",
	},
)

// ── Customer metrics ──────────────────────────────────────────────────────────

// CustomersCreatedTotal counts successfully created customer records.
var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customer records created.",
	},
)

// CustomersDeletedTotal counts deleted customer records.
var CustomersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_deleted_total",
		Help:      "Total number of customer records deleted.",
	},
)

// ValidationErrorsTotal counts field validation rejections on customer writes.
// Label:
//   - field: the failing field ("name", "email", "phone", "salary")
var ValidationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_errors_total",
		Help:      "Total number of customer writes rejected by field validation.",
	},
	[]string{"field"},
)
