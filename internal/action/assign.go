package action

import (
	"sync"

	"firestige.xyz/callscript/internal/extract"
	"firestige.xyz/callscript/internal/sample"
	"firestige.xyz/callscript/internal/sipmsg"
	"firestige.xyz/callscript/pkg/variable"
)

var (
	defaultSelectorOnce sync.Once
	defaultSelector     *sipmsg.Selector
)

func sharedSelector() *sipmsg.Selector {
	defaultSelectorOnce.Do(func() {
		defaultSelector = sipmsg.NewSelector()
	})
	return defaultSelector
}

// AssignFromRegexp captures parts of the last received message.
type AssignFromRegexp struct {
	Extractor      extract.Extractor
	Region         sipmsg.Region
	Header         string
	CheckIt        bool
	CheckItInverse bool
	// Selector extracts header and body regions; nil uses a shared one.
	Selector *sipmsg.Selector
}

func (a *AssignFromRegexp) Kind() Kind { return KindAssignFromRegexp }

func (a *AssignFromRegexp) Execute(env *Env) (Result, error) {
	input := env.Message
	if a.Region != sipmsg.RegionMessage {
		sel := a.Selector
		if sel == nil {
			sel = sharedSelector()
		}
		input = sel.Select(env.Message, a.Region, a.Header)
	}

	n, err := a.Extractor.Execute(input, env.Vars)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Matches: n,
		Failed:  (a.CheckIt && n == 0) || (a.CheckItInverse && n > 0),
	}, nil
}

// AssignFromSample stores a value drawn from a distribution.
type AssignFromSample struct {
	VarID        int
	Distribution sample.Distribution
}

func (a *AssignFromSample) Kind() Kind { return KindAssignFromSample }

func (a *AssignFromSample) Execute(env *Env) (Result, error) {
	env.Vars.Set(a.VarID, variable.FromDouble(a.Distribution.Sample(env.Rand)))
	return Result{}, nil
}

// AssignFromValue stores a literal double.
type AssignFromValue struct {
	VarID int
	Value float64
}

func (a *AssignFromValue) Kind() Kind { return KindAssignFromValue }

func (a *AssignFromValue) Execute(env *Env) (Result, error) {
	env.Vars.Set(a.VarID, variable.FromDouble(a.Value))
	return Result{}, nil
}

// AssignFromString stores a rendered template.
type AssignFromString struct {
	VarID    int
	Template string
}

func (a *AssignFromString) Kind() Kind { return KindAssignFromString }

func (a *AssignFromString) Execute(env *Env) (Result, error) {
	env.Vars.Set(a.VarID, variable.FromString(env.render(a.Template)))
	return Result{}, nil
}

// AssignFromIndex stores the call number.
type AssignFromIndex struct {
	VarID int
}

func (a *AssignFromIndex) Kind() Kind { return KindAssignFromIndex }

func (a *AssignFromIndex) Execute(env *Env) (Result, error) {
	env.Vars.Set(a.VarID, variable.FromDouble(float64(env.CallNumber)))
	return Result{}, nil
}

// AssignFromTimestamp stores the current time split in seconds and
// microseconds.
type AssignFromTimestamp struct {
	SecondsVarID int
	MicrosVarID  int
}

func (a *AssignFromTimestamp) Kind() Kind { return KindAssignFromTimestamp }

func (a *AssignFromTimestamp) Execute(env *Env) (Result, error) {
	now := env.now()
	env.Vars.Set(a.SecondsVarID, variable.FromDouble(float64(now.Unix())))
	env.Vars.Set(a.MicrosVarID, variable.FromDouble(float64(now.Nanosecond()/1000)))
	return Result{}, nil
}
