// Package sample provides the probability distributions used by sample
// actions.
package sample

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"firestige.xyz/callscript/internal/core"
)

// Distribution draws values. A nil source uses the shared global source.
type Distribution interface {
	Sample(src rand.Source) float64
	String() string
}

// Params are the decoded distribution settings of an action.
type Params struct {
	Distribution string  `mapstructure:"distribution"`
	Value        float64 `mapstructure:"value"`
	Min          float64 `mapstructure:"min"`
	Max          float64 `mapstructure:"max"`
	Mean         float64 `mapstructure:"mean"`
	Stdev        float64 `mapstructure:"stdev"`
	Lambda       float64 `mapstructure:"lambda"`
	K            float64 `mapstructure:"k"`
	Xm           float64 `mapstructure:"x_m"`
	Theta        float64 `mapstructure:"theta"`
	N            float64 `mapstructure:"n"`
	P            float64 `mapstructure:"p"`
}

// New builds a distribution from raw configuration values.
func New(raw map[string]any) (Distribution, error) {
	var p Params
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &p,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidDistribution, err)
	}
	return FromParams(p)
}

// FromParams validates p and returns the matching distribution.
func FromParams(p Params) (Distribution, error) {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", core.ErrInvalidDistribution, p.Distribution, fmt.Sprintf(format, args...))
	}

	switch strings.ToLower(p.Distribution) {
	case "fixed":
		return Fixed{Value: p.Value}, nil
	case "uniform":
		if p.Min > p.Max {
			return nil, invalid("min %g greater than max %g", p.Min, p.Max)
		}
		return Uniform{Min: p.Min, Max: p.Max}, nil
	case "normal":
		if p.Stdev < 0 {
			return nil, invalid("negative stdev")
		}
		return Normal{Mean: p.Mean, Stdev: p.Stdev}, nil
	case "lognormal":
		if p.Stdev < 0 {
			return nil, invalid("negative stdev")
		}
		return LogNormal{Mean: p.Mean, Stdev: p.Stdev}, nil
	case "exponential":
		if p.Mean <= 0 {
			return nil, invalid("mean must be positive")
		}
		return Exponential{Mean: p.Mean}, nil
	case "weibull":
		if p.Lambda <= 0 || p.K <= 0 {
			return nil, invalid("lambda and k must be positive")
		}
		return Weibull{Lambda: p.Lambda, K: p.K}, nil
	case "pareto":
		if p.K <= 0 || p.Xm <= 0 {
			return nil, invalid("k and x_m must be positive")
		}
		return Pareto{K: p.K, Xm: p.Xm}, nil
	case "gamma":
		if p.K <= 0 || p.Theta <= 0 {
			return nil, invalid("k and theta must be positive")
		}
		return Gamma{K: p.K, Theta: p.Theta}, nil
	case "negbin":
		if p.N <= 0 || p.P <= 0 || p.P >= 1 {
			return nil, invalid("n must be positive and p within (0, 1)")
		}
		return NegBin{N: p.N, P: p.P}, nil
	case "":
		return nil, fmt.Errorf("%w: missing distribution name", core.ErrInvalidDistribution)
	default:
		return nil, fmt.Errorf("%w: unknown distribution %q", core.ErrInvalidDistribution, p.Distribution)
	}
}

// Fixed always returns Value.
type Fixed struct{ Value float64 }

func (d Fixed) Sample(rand.Source) float64 { return d.Value }
func (d Fixed) String() string             { return fmt.Sprintf("Fixed(%.3f)", d.Value) }

// Uniform draws from [Min, Max).
type Uniform struct{ Min, Max float64 }

func (d Uniform) Sample(src rand.Source) float64 {
	if d.Min == d.Max {
		return d.Min
	}
	return distuv.Uniform{Min: d.Min, Max: d.Max, Src: src}.Rand()
}

func (d Uniform) String() string { return fmt.Sprintf("Uniform(%.3f, %.3f)", d.Min, d.Max) }

// Normal is the Gaussian distribution.
type Normal struct{ Mean, Stdev float64 }

func (d Normal) Sample(src rand.Source) float64 {
	return distuv.Normal{Mu: d.Mean, Sigma: d.Stdev, Src: src}.Rand()
}

func (d Normal) String() string { return fmt.Sprintf("Normal(%.3f, %.3f)", d.Mean, d.Stdev) }

// LogNormal takes the mean and deviation of the underlying normal.
type LogNormal struct{ Mean, Stdev float64 }

func (d LogNormal) Sample(src rand.Source) float64 {
	return distuv.LogNormal{Mu: d.Mean, Sigma: d.Stdev, Src: src}.Rand()
}

func (d LogNormal) String() string { return fmt.Sprintf("Lognormal(%.3f, %.3f)", d.Mean, d.Stdev) }

// Exponential is parameterised by its mean.
type Exponential struct{ Mean float64 }

func (d Exponential) Sample(src rand.Source) float64 {
	return distuv.Exponential{Rate: 1 / d.Mean, Src: src}.Rand()
}

func (d Exponential) String() string { return fmt.Sprintf("Exponential(%.3f)", d.Mean) }

// Weibull takes scale Lambda and shape K.
type Weibull struct{ Lambda, K float64 }

func (d Weibull) Sample(src rand.Source) float64 {
	return distuv.Weibull{K: d.K, Lambda: d.Lambda, Src: src}.Rand()
}

func (d Weibull) String() string { return fmt.Sprintf("Weibull(%.3f, %.3f)", d.Lambda, d.K) }

// Pareto takes shape K and scale Xm.
type Pareto struct{ K, Xm float64 }

func (d Pareto) Sample(src rand.Source) float64 {
	return distuv.Pareto{Xm: d.Xm, Alpha: d.K, Src: src}.Rand()
}

func (d Pareto) String() string { return fmt.Sprintf("Pareto(%.3f, %.3f)", d.K, d.Xm) }

// Gamma takes shape K and scale Theta.
type Gamma struct{ K, Theta float64 }

func (d Gamma) Sample(src rand.Source) float64 {
	return distuv.Gamma{Alpha: d.K, Beta: 1 / d.Theta, Src: src}.Rand()
}

func (d Gamma) String() string { return fmt.Sprintf("Gamma(%.3f, %.3f)", d.K, d.Theta) }

// NegBin counts failures before N successes of probability P. It is drawn
// as a Poisson whose rate follows a gamma distribution.
type NegBin struct{ N, P float64 }

func (d NegBin) Sample(src rand.Source) float64 {
	rate := distuv.Gamma{Alpha: d.N, Beta: d.P / (1 - d.P), Src: src}.Rand()
	if rate <= 0 {
		return 0
	}
	return distuv.Poisson{Lambda: rate, Src: src}.Rand()
}

func (d NegBin) String() string { return fmt.Sprintf("Negbin(%.3f, %.3f)", d.N, d.P) }
