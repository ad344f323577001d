package action

import (
	"log/slog"

	"firestige.xyz/callscript/internal/metrics"
)

// Run executes a and records it in the execution metrics.
func Run(a Action, env *Env) (Result, error) {
	kind := a.Kind().String()

	res, err := a.Execute(env)
	metrics.ActionsExecutedTotal.WithLabelValues(kind).Inc()
	if err != nil {
		metrics.ActionErrorsTotal.WithLabelValues(kind).Inc()
		slog.Debug("action failed", "kind", kind, "error", err)
		return res, err
	}

	if a.Kind() == KindAssignFromRegexp {
		outcome := metrics.OutcomeUnmatched
		if res.Matches > 0 {
			outcome = metrics.OutcomeMatched
		}
		metrics.RegexpMatchesTotal.WithLabelValues(outcome).Inc()
	}

	slog.Debug("action executed", "kind", kind, "matches", res.Matches, "test", res.Test, "failed", res.Failed)
	return res, nil
}
