package action

import (
	"fmt"
	"log/slog"
	"strings"

	"firestige.xyz/callscript/internal/core"
	"firestige.xyz/callscript/pkg/variable"
)

// Add adds the operand to a variable.
type Add struct {
	VarID   int
	Operand Operand
}

func (a *Add) Kind() Kind { return KindAdd }

func (a *Add) Execute(env *Env) (Result, error) {
	v := env.Vars.Get(a.VarID).Float() + a.Operand.Resolve(env.Vars)
	env.Vars.Set(a.VarID, variable.FromDouble(v))
	return Result{}, nil
}

// Multiply multiplies a variable by the operand.
type Multiply struct {
	VarID   int
	Operand Operand
}

func (a *Multiply) Kind() Kind { return KindMultiply }

func (a *Multiply) Execute(env *Env) (Result, error) {
	v := env.Vars.Get(a.VarID).Float() * a.Operand.Resolve(env.Vars)
	env.Vars.Set(a.VarID, variable.FromDouble(v))
	return Result{}, nil
}

// Divide divides a variable by the operand. A literal zero is rejected when
// building; a variable holding zero leaves the destination unchanged.
type Divide struct {
	VarID   int
	Operand Operand
}

func (a *Divide) Kind() Kind { return KindDivide }

func (a *Divide) Execute(env *Env) (Result, error) {
	d := a.Operand.Resolve(env.Vars)
	if d == 0 {
		slog.Warn("action failure: cannot divide by zero", "var", a.VarID, "divisor_var", a.Operand.VarID)
		return Result{}, nil
	}
	v := env.Vars.Get(a.VarID).Float() / d
	env.Vars.Set(a.VarID, variable.FromDouble(v))
	return Result{}, nil
}

// Trim strips surrounding blanks from a string variable. Other types are
// left as they are.
type Trim struct {
	VarID int
}

func (a *Trim) Kind() Kind { return KindTrim }

func (a *Trim) Execute(env *Env) (Result, error) {
	v := env.Vars.Get(a.VarID)
	switch v.Type() {
	case variable.TypeString:
		env.Vars.Set(a.VarID, variable.FromString(strings.Trim(v.String(), " \t\r\n")))
	case variable.TypeMatch:
		env.Vars.Set(a.VarID, variable.FromMatch(strings.Trim(v.String(), " \t\r\n")))
	}
	return Result{}, nil
}

// Test stores the boolean outcome of LHS Comparator RHS.
type Test struct {
	VarID      int
	LHSVarID   int
	Comparator Comparator
	RHS        Operand
}

func (a *Test) Kind() Kind { return KindTest }

func (a *Test) Execute(env *Env) (Result, error) {
	ok, err := a.Comparator.Compare(env.Vars.Get(a.LHSVarID).Float(), a.RHS.Resolve(env.Vars))
	if err != nil {
		return Result{}, err
	}
	env.Vars.Set(a.VarID, variable.FromBool(ok))
	return Result{Test: ok}, nil
}

// ToDouble converts a variable to a double.
type ToDouble struct {
	VarID       int
	SourceVarID int
}

func (a *ToDouble) Kind() Kind { return KindToDouble }

func (a *ToDouble) Execute(env *Env) (Result, error) {
	src := env.Vars.Get(a.SourceVarID)
	var f float64
	switch src.Type() {
	case variable.TypeDouble, variable.TypeBool:
		f = src.Float()
	case variable.TypeMatch, variable.TypeString:
		var ok bool
		if f, ok = variable.ParseFloat(src.String()); !ok {
			return Result{}, fmt.Errorf("%w from variable %d to variable %d: %q", core.ErrNotNumeric, a.SourceVarID, a.VarID, src.String())
		}
	default:
		return Result{}, fmt.Errorf("%w from variable %d to variable %d: not set", core.ErrNotNumeric, a.SourceVarID, a.VarID)
	}
	env.Vars.Set(a.VarID, variable.FromDouble(f))
	return Result{}, nil
}
