// Package metrics defines the demo backend's custom Prometheus metrics. It
// is the single source of truth for metric names, labels, and help strings;
// request-level HTTP metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "barberbook"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "success" or "rejected"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh token exchanges, by result.",
	},
	[]string{"result"},
)

// ListQueriesTotal counts paginated list requests per resource.
var ListQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_queries_total",
		Help:      "Total number of paginated list queries, by resource.",
	},
	[]string{"resource"},
)

// MutationsTotal counts create/update/delete operations per resource.
// Labels:
//   - resource: collection name (e.g. "bookings")
//   - action: "create", "update" or "delete"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of resource mutations, by resource and action.",
	},
	[]string{"resource", "action"},
)
