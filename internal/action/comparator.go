package action

import (
	"fmt"
	"strings"

	"firestige.xyz/callscript/internal/core"
)

// Comparator is the relation evaluated by test actions.
type Comparator int

const (
	CompareInvalid Comparator = iota
	CompareEQ
	CompareNE
	CompareGT
	CompareLT
	CompareGEQ
	CompareLEQ
)

var comparatorNames = map[string]Comparator{
	"equal":         CompareEQ,
	"not_equal":     CompareNE,
	"greater":       CompareGT,
	"lower":         CompareLT,
	"greater_equal": CompareGEQ,
	"lower_equal":   CompareLEQ,
	"==":            CompareEQ,
	"!=":            CompareNE,
	">":             CompareGT,
	"<":             CompareLT,
	">=":            CompareGEQ,
	"<=":            CompareLEQ,
}

// ParseComparator resolves a comparator name or symbol.
func ParseComparator(name string) (Comparator, error) {
	if c, ok := comparatorNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, nil
	}
	return CompareInvalid, fmt.Errorf("%w %q", core.ErrInvalidComparator, name)
}

// String returns the comparator symbol.
func (c Comparator) String() string {
	switch c {
	case CompareEQ:
		return "=="
	case CompareNE:
		return "!="
	case CompareGT:
		return ">"
	case CompareLT:
		return "<"
	case CompareGEQ:
		return ">="
	case CompareLEQ:
		return "<="
	default:
		return "invalid"
	}
}

// Compare evaluates lhs c rhs with exact floating point semantics: values
// are never compared within a tolerance and NaN is unequal to everything.
func (c Comparator) Compare(lhs, rhs float64) (bool, error) {
	switch c {
	case CompareEQ:
		return lhs == rhs, nil
	case CompareNE:
		return lhs != rhs, nil
	case CompareGT:
		return lhs > rhs, nil
	case CompareLT:
		return lhs < rhs, nil
	case CompareGEQ:
		return lhs >= rhs, nil
	case CompareLEQ:
		return lhs <= rhs, nil
	default:
		return false, fmt.Errorf("%w: internal comparison type %d", core.ErrInvalidComparator, int(c))
	}
}
