// Package core defines sentinel errors.
package core

import "errors"

// Configuration errors are returned while building actions and abort loading.
var (
	// Regular expression errors
	ErrInvalidRegexp         = errors.New("callscript: invalid regular expression")
	ErrTooManySubExpressions = errors.New("callscript: you can only have nine sub expressions")

	// Expression errors
	ErrInvalidComparator   = errors.New("callscript: invalid comparator")
	ErrInvalidDistribution = errors.New("callscript: invalid distribution")
	ErrDivideByZero        = errors.New("callscript: divide by zero")

	// Media errors
	ErrFilenameTooLong    = errors.New("callscript: filename too long")
	ErrUnknownPayloadType = errors.New("callscript: unknown rtp payload type")
	ErrMediaCache         = errors.New("callscript: cannot read/cache media file")
	ErrMediaParse         = errors.New("callscript: play pcap error")

	// Scenario wiring errors
	ErrUnknownAction   = errors.New("callscript: unknown action type")
	ErrUnknownVariable = errors.New("callscript: unknown variable")

	// Configuration errors
	ErrConfigInvalid = errors.New("callscript: invalid configuration")
)

// Runtime data errors.
var (
	ErrNotNumeric        = errors.New("callscript: invalid double conversion")
	ErrInvalidJumpTarget = errors.New("callscript: invalid jump target")
)
