// Package metrics defines and registers the business Prometheus metrics for
// the SmartShelf API. HTTP request metrics come from echoprometheus; this
// package is the single source of truth for everything else.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smartshelf"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - action: "login" or "register"
//   - result: "success", "rejected" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login and registration attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// ── Inventory metrics ─────────────────────────────────────────────────────────

// ProductChangesTotal counts successful inventory writes.
// Label:
//   - op: "create", "update" or "delete"
var ProductChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_changes_total",
		Help:      "Total number of product create/update/delete operations.",
	},
	[]string{"op"},
)

// ── Sales metrics ─────────────────────────────────────────────────────────────

// SalesRecordedTotal counts sales accepted by the API.
var SalesRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_recorded_total",
		Help:      "Total number of sales recorded.",
	},
)

// UnitsSoldTotal counts units leaving inventory through recorded sales.
var UnitsSoldTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "units_sold_total",
		Help:      "Total number of product units sold.",
	},
)

// SaleRejectionsTotal counts sales that were refused.
// Label:
//   - reason: "insufficient_stock", "product_not_found", "invalid" or "error"
var SaleRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sale_rejections_total",
		Help:      "Total number of sale submissions that were rejected.",
	},
	[]string{"reason"},
)

// ── Forecast metrics ──────────────────────────────────────────────────────────

// ForecastProducts tracks how many products fall in each stocking status in
// the most recently served forecast.
// Label:
//   - status: "RESTOCK NEEDED", "OVERSTOCKED" or "SUFFICIENT"
var ForecastProducts = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "forecast_products",
		Help:      "Number of products per stocking status in the last forecast.",
	},
	[]string{"status"},
)

// ForecastDuration measures how long serving a forecast takes, cache hits
// included.
var ForecastDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "forecast_duration_seconds",
		Help:      "Duration of forecast requests.",
		Buckets:   prometheus.DefBuckets,
	},
)
