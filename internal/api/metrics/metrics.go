// Package metrics defines and registers all custom Prometheus metrics for the
// user directory service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userdir"

// UsersCreatedTotal counts successfully created directory entries.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// UserLookupsTotal counts lookup requests.
// Label:
//   - result: "found", "missing", or "error"
var UserLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_lookups_total",
		Help:      "Total number of user lookups, labelled by result.",
	},
	[]string{"result"},
)

// CacheTotal counts read-through cache decisions on user lookups.
// Label:
//   - result: "hit" (served from Redis) or "miss" (fell through to the store)
var CacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_total",
		Help:      "Total number of cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// StorageErrorsTotal counts storage operations that failed.
// Label:
//   - op: "find_one" or "insert"
var StorageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total number of failed storage operations, labelled by operation.",
	},
	[]string{"op"},
)
