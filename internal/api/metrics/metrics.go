// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings. Metrics self-register with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts successfully completed checkouts.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// CheckoutFailuresTotal counts checkout attempts that did not produce an
// order, for any reason (empty cart, declined charge, persistence failure).
var CheckoutFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_failures_total",
		Help:      "Total number of failed checkout attempts.",
	},
)

// OrderTotalCents observes the value of each completed order.
var OrderTotalCents = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_total_cents",
		Help:      "Distribution of completed order totals, in cents.",
		Buckets:   prometheus.ExponentialBuckets(500, 4, 8), // $5 … ~$80k
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// SigninsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// ── Cart and search metrics ───────────────────────────────────────────────────

// CartMutationsTotal counts cart changes.
// Label:
//   - op: "add" or "remove"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// SearchesTotal counts item searches served.
var SearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of item search requests served.",
	},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailDeliveriesTotal counts asynchronous mail deliveries.
// Label:
//   - result: "success" or "failure"
var MailDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_deliveries_total",
		Help:      "Total number of asynchronous mail deliveries, by result.",
	},
	[]string{"result"},
)
