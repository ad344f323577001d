package action

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/callscript/internal/extract"
	"firestige.xyz/callscript/internal/metrics"
	"firestige.xyz/callscript/pkg/variable"
)

func TestRunRecordsMetrics(t *testing.T) {
	executed := testutil.ToFloat64(metrics.ActionsExecutedTotal.WithLabelValues("ereg"))
	matched := testutil.ToFloat64(metrics.RegexpMatchesTotal.WithLabelValues(metrics.OutcomeMatched))
	unmatched := testutil.ToFloat64(metrics.RegexpMatchesTotal.WithLabelValues(metrics.OutcomeUnmatched))

	a := &AssignFromRegexp{Extractor: extract.Extractor{Pattern: extract.MustCompile("o+"), VarID: 1}}
	env := &Env{Vars: variable.NewMemTable(), Message: "foo"}

	res, err := Run(a, env)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Matches)

	env.Message = "bar"
	res, err = Run(a, env)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Matches)

	assert.Equal(t, executed+2, testutil.ToFloat64(metrics.ActionsExecutedTotal.WithLabelValues("ereg")))
	assert.Equal(t, matched+1, testutil.ToFloat64(metrics.RegexpMatchesTotal.WithLabelValues(metrics.OutcomeMatched)))
	assert.Equal(t, unmatched+1, testutil.ToFloat64(metrics.RegexpMatchesTotal.WithLabelValues(metrics.OutcomeUnmatched)))
}

func TestRunRecordsErrors(t *testing.T) {
	errorsBefore := testutil.ToFloat64(metrics.ActionErrorsTotal.WithLabelValues("todouble"))

	env := &Env{Vars: variable.NewMemTable()}
	env.Vars.Set(1, variable.FromString("not a number"))

	_, err := Run(&ToDouble{VarID: 2, SourceVarID: 1}, env)
	assert.Error(t, err)
	assert.Equal(t, errorsBefore+1, testutil.ToFloat64(metrics.ActionErrorsTotal.WithLabelValues("todouble")))
}
