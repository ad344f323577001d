// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsExecutedTotal counts executed actions by kind
	ActionsExecutedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callscript_actions_executed_total",
			Help: "Total number of actions executed",
		},
		[]string{"kind"},
	)

	// ActionErrorsTotal counts actions whose execution returned an error
	ActionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callscript_action_errors_total",
			Help: "Total number of action execution errors",
		},
		[]string{"kind"},
	)

	// RegexpMatchesTotal counts regular expression executions by outcome
	RegexpMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callscript_regexp_matches_total",
			Help: "Total number of regular expression executions",
		},
		[]string{"outcome"},
	)

	// ConfigErrorsTotal counts rejected action configurations by kind
	ConfigErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callscript_config_errors_total",
			Help: "Total number of rejected action configurations",
		},
		[]string{"kind"},
	)

	// MediaCachedFiles tracks the number of media files held in the cache
	MediaCachedFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "callscript_media_cached_files",
			Help: "Number of media files currently cached",
		},
	)
)

// Regexp outcome label values
const (
	OutcomeMatched   = "matched"
	OutcomeUnmatched = "unmatched"
)
