// Package variable defines the per-call variable store contract consumed by
// actions, together with an in-memory table used by tests and the CLI.
package variable

import (
	"strconv"
	"strings"
)

// Type identifies which representation a Value currently holds.
type Type int

const (
	TypeUndefined Type = iota
	TypeMatch          // set from a regular expression capture
	TypeDouble
	TypeBool
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeMatch:
		return "regexp"
	case TypeDouble:
		return "double"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	default:
		return "undefined"
	}
}

// Value is a call-scoped variable cell. The zero Value is undefined and
// renders as an empty string and 0.
type Value struct {
	typ Type
	str string
	num float64
	b   bool
}

// FromMatch returns a value holding a captured substring.
func FromMatch(s string) Value { return Value{typ: TypeMatch, str: s} }

// FromDouble returns a numeric value.
func FromDouble(f float64) Value { return Value{typ: TypeDouble, num: f} }

// FromBool returns a boolean value.
func FromBool(b bool) Value { return Value{typ: TypeBool, b: b} }

// FromString returns a string value.
func FromString(s string) Value { return Value{typ: TypeString, str: s} }

// Type returns the representation held by v.
func (v Value) Type() Type { return v.typ }

// IsSet reports whether v was ever assigned.
func (v Value) IsSet() bool { return v.typ != TypeUndefined }

// String returns the string view of v.
func (v Value) String() string {
	switch v.typ {
	case TypeMatch, TypeString:
		return v.str
	case TypeDouble:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Float returns the numeric view of v. Strings that do not parse as a
// number yield 0.
func (v Value) Float() float64 {
	switch v.typ {
	case TypeDouble:
		return v.num
	case TypeBool:
		if v.b {
			return 1
		}
		return 0
	case TypeMatch, TypeString:
		f, _ := ParseFloat(v.str)
		return f
	default:
		return 0
	}
}

// Bool returns the boolean view of v.
func (v Value) Bool() bool {
	switch v.typ {
	case TypeBool:
		return v.b
	case TypeDouble:
		return v.num != 0
	case TypeMatch, TypeString:
		return v.str != ""
	default:
		return false
	}
}

// ParseFloat parses s as a double after trimming surrounding whitespace.
func ParseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
