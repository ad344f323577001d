// Package action implements the scenario actions executed when a call
// receives or sends a message.
//
// Actions are built once from configuration by a Builder and are immutable
// afterwards. All per-call state lives in the Env passed to Execute, so one
// Action value may be executed by many calls concurrently.
package action

import (
	"time"

	"golang.org/x/exp/rand"

	"firestige.xyz/callscript/internal/media/pcapplay"
	"firestige.xyz/callscript/internal/media/rtpstream"
	"firestige.xyz/callscript/pkg/variable"
)

// Action is one executable scenario action.
type Action interface {
	Kind() Kind
	// Execute applies the action to the call described by env. Errors are
	// reserved for data the action cannot process; "no match" and "false"
	// are reported through Result.
	Execute(env *Env) (Result, error)
}

// Renderer expands the keywords of a message template.
type Renderer interface {
	Render(text string, vars variable.Table) string
}

// Env is the per-call execution context.
type Env struct {
	Vars variable.Table
	// Message is the last received message, searched by ereg actions.
	Message string
	// Render expands templates; nil leaves them verbatim.
	Render Renderer
	// CallNumber is the call index assigned by index actions.
	CallNumber int
	// Now defaults to time.Now.
	Now func() time.Time
	// Rand feeds sample actions; nil uses the shared global source.
	Rand rand.Source
}

func (e *Env) render(text string) string {
	if e.Render == nil {
		return text
	}
	return e.Render.Render(text, e.Vars)
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Result is the outcome of one execution.
type Result struct {
	// Matches is the number of variables written by an ereg action.
	Matches int
	// Test is the outcome of a test action.
	Test bool
	// Failed is set when a checked regular expression did not give the
	// expected outcome. The call should be aborted.
	Failed bool
	// Effect is the side effect the caller has to perform, if any.
	Effect Effect
}

// Effect is a side effect requested from the call state machine.
type Effect interface {
	effect()
}

// LogLevel selects the destination of a LogEffect.
type LogLevel int

const (
	LogToFile LogLevel = iota
	LogWarning
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogToFile:
		return "log"
	case LogWarning:
		return "warning"
	case LogError:
		return "error"
	default:
		return "unknown"
	}
}

// LogEffect asks for Message to be logged.
type LogEffect struct {
	Level   LogLevel
	Message string
}

// CommandEffect asks for an external command to be run.
type CommandEffect struct {
	Command string
}

// ControlEffect asks for an internal control command.
type ControlEffect struct {
	Command IntCmd
}

// JumpEffect asks the scenario to continue at message index Target.
type JumpEffect struct {
	Target int
}

// PauseRestoreEffect asks to restore a pause of Duration.
type PauseRestoreEffect struct {
	Duration time.Duration
}

// PlayPcapEffect asks to replay a capture on a media stream.
type PlayPcapEffect struct {
	Media      MediaKind
	Descriptor *pcapplay.Descriptor
}

// RTPStreamEffect asks the RTP streamer to play, pause or resume. Descriptor
// is nil for pause and resume.
type RTPStreamEffect struct {
	Op         RTPStreamOp
	Descriptor *rtpstream.Descriptor
}

func (LogEffect) effect()          {}
func (CommandEffect) effect()      {}
func (ControlEffect) effect()      {}
func (JumpEffect) effect()         {}
func (PauseRestoreEffect) effect() {}
func (PlayPcapEffect) effect()     {}
func (RTPStreamEffect) effect()    {}

// Operand is either a variable or a literal. A non-zero VarID wins.
type Operand struct {
	VarID int
	Value float64
}

// Resolve returns the numeric value of o.
func (o Operand) Resolve(vars variable.Table) float64 {
	if o.VarID != 0 {
		return vars.Get(o.VarID).Float()
	}
	return o.Value
}
