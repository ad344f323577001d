package action

import (
	"fmt"
	"math"
	"time"

	"firestige.xyz/callscript/internal/core"
)

// Log requests a log line built from a template.
type Log struct {
	Level    LogLevel
	Template string
}

func (a *Log) Kind() Kind {
	switch a.Level {
	case LogWarning:
		return KindLogWarning
	case LogError:
		return KindLogError
	default:
		return KindLogToFile
	}
}

func (a *Log) Execute(env *Env) (Result, error) {
	return Result{Effect: LogEffect{Level: a.Level, Message: env.render(a.Template)}}, nil
}

// Exec requests an external command built from a template.
type Exec struct {
	Template string
}

func (a *Exec) Kind() Kind { return KindExecCommand }

func (a *Exec) Execute(env *Env) (Result, error) {
	return Result{Effect: CommandEffect{Command: env.render(a.Template)}}, nil
}

// IntCommand requests an internal control command.
type IntCommand struct {
	Command IntCmd
}

func (a *IntCommand) Kind() Kind { return KindIntCmd }

func (a *IntCommand) Execute(*Env) (Result, error) {
	return Result{Effect: ControlEffect{Command: a.Command}}, nil
}

// Jump moves the scenario to the message index given by the operand.
type Jump struct {
	Operand Operand
}

func (a *Jump) Kind() Kind { return KindJump }

func (a *Jump) Execute(env *Env) (Result, error) {
	target, err := jumpTarget(a.Operand.Resolve(env.Vars))
	if err != nil {
		return Result{}, err
	}
	return Result{Effect: JumpEffect{Target: target}}, nil
}

// jumpTarget truncates v to a message index. NaN, infinities, negative
// values and values beyond MaxInt32 are rejected.
func jumpTarget(v float64) (int, error) {
	if math.IsNaN(v) || v < 0 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", core.ErrInvalidJumpTarget, v)
	}
	return int(v), nil
}

// PauseRestore restores a pause whose length in milliseconds is given by
// the operand.
type PauseRestore struct {
	Operand Operand
}

func (a *PauseRestore) Kind() Kind { return KindPauseRestore }

func (a *PauseRestore) Execute(env *Env) (Result, error) {
	ms := a.Operand.Resolve(env.Vars)
	return Result{Effect: PauseRestoreEffect{Duration: time.Duration(ms * float64(time.Millisecond))}}, nil
}
