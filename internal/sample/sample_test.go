package sample

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"firestige.xyz/callscript/internal/core"
)

func mean(d Distribution, n int) float64 {
	src := rand.NewSource(42)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += d.Sample(src)
	}
	return sum / float64(n)
}

func TestNewFromConfigValues(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Distribution
		desc string
	}{
		{"fixed", map[string]any{"distribution": "fixed", "value": 3}, Fixed{Value: 3}, "Fixed(3.000)"},
		{"uniform", map[string]any{"distribution": "uniform", "min": 1, "max": "5"}, Uniform{Min: 1, Max: 5}, "Uniform(1.000, 5.000)"},
		{"normal", map[string]any{"distribution": "normal", "mean": 10.0, "stdev": 2.5}, Normal{Mean: 10, Stdev: 2.5}, "Normal(10.000, 2.500)"},
		{"lognormal", map[string]any{"distribution": "lognormal", "mean": 1, "stdev": 0.5}, LogNormal{Mean: 1, Stdev: 0.5}, "Lognormal(1.000, 0.500)"},
		{"exponential", map[string]any{"distribution": "exponential", "mean": 2}, Exponential{Mean: 2}, "Exponential(2.000)"},
		{"weibull", map[string]any{"distribution": "weibull", "lambda": 3, "k": 1.5}, Weibull{Lambda: 3, K: 1.5}, "Weibull(3.000, 1.500)"},
		{"pareto", map[string]any{"distribution": "pareto", "k": 2, "x_m": 1}, Pareto{K: 2, Xm: 1}, "Pareto(2.000, 1.000)"},
		{"gamma", map[string]any{"distribution": "gamma", "k": 2, "theta": 3}, Gamma{K: 2, Theta: 3}, "Gamma(2.000, 3.000)"},
		{"negbin", map[string]any{"distribution": "negbin", "n": 4, "p": 0.5}, NegBin{N: 4, P: 0.5}, "Negbin(4.000, 0.500)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.desc, d.String())
		})
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"missing name", map[string]any{"value": 1}},
		{"unknown name", map[string]any{"distribution": "zipf"}},
		{"unknown key", map[string]any{"distribution": "fixed", "valeu": 1}},
		{"bad number", map[string]any{"distribution": "fixed", "value": "abc"}},
		{"uniform bounds", map[string]any{"distribution": "uniform", "min": 5, "max": 1}},
		{"negative stdev", map[string]any{"distribution": "normal", "stdev": -1}},
		{"exponential mean", map[string]any{"distribution": "exponential", "mean": 0}},
		{"negbin p", map[string]any{"distribution": "negbin", "n": 1, "p": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidDistribution), "got %v", err)
		})
	}
}

func TestSampleValues(t *testing.T) {
	src := rand.NewSource(1)

	assert.Equal(t, 7.0, Fixed{Value: 7}.Sample(src))
	assert.Equal(t, 4.0, Uniform{Min: 4, Max: 4}.Sample(src))
	assert.Equal(t, 10.0, Normal{Mean: 10, Stdev: 0}.Sample(src))

	u := Uniform{Min: 1, Max: 2}
	for i := 0; i < 100; i++ {
		v := u.Sample(src)
		assert.GreaterOrEqual(t, v, 1.0)
		assert.Less(t, v, 2.0)
	}

	p := Pareto{K: 3, Xm: 2}
	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, p.Sample(src), 2.0)
	}
}

func TestSampleMeans(t *testing.T) {
	const n = 20000
	assert.InDelta(t, 2.0, mean(Exponential{Mean: 2}, n), 0.1)
	assert.InDelta(t, 6.0, mean(Gamma{K: 2, Theta: 3}, n), 0.2)
	assert.InDelta(t, 4.0, mean(NegBin{N: 4, P: 0.5}, n), 0.2)
	assert.InDelta(t, 5.0, mean(Normal{Mean: 5, Stdev: 1}, n), 0.05)
}

func TestSameSeedSameSequence(t *testing.T) {
	d := Normal{Mean: 0, Stdev: 1}
	a, b := rand.NewSource(9), rand.NewSource(9)
	for i := 0; i < 10; i++ {
		assert.Equal(t, d.Sample(a), d.Sample(b))
	}
}

func TestNilSourceUsesGlobal(t *testing.T) {
	v := Uniform{Min: 0, Max: 1}.Sample(nil)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}
