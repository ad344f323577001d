// Package extract implements numbered-capture regular expression extraction
// into call variables.
//
// Patterns use POSIX extended syntax with leftmost-longest matching. A match
// writes the whole match (group 0) to the primary variable and groups 1..k to
// the configured sub variables, in order. At most nine sub variables are
// supported: one whole match plus nine numbered groups.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"firestige.xyz/callscript/internal/core"
	"firestige.xyz/callscript/pkg/variable"
)

// MaxSubVars is the number of numbered groups that can be assigned.
const MaxSubVars = 9

// Pattern is a compiled regular expression together with its source text.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Compile compiles pattern once, at configuration time.
func Compile(pattern string) (*Pattern, error) {
	re, err := regexp.CompilePOSIX(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: regular expression '%s' - error '%v'", core.ErrInvalidRegexp, pattern, err)
	}
	return &Pattern{source: pattern, re: re}, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package level patterns.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the pattern text. Calling it on a nil Pattern is a caller bug.
func (p *Pattern) Source() string {
	if p == nil {
		panic("extract: trying to get a regular expression for an action that does not have one")
	}
	return p.source
}

// NumGroups returns the number of capturing groups in the pattern.
func (p *Pattern) NumGroups() int {
	if p == nil {
		return 0
	}
	return p.re.NumSubexp()
}

// Extractor binds a pattern to its destination variables.
type Extractor struct {
	Pattern   *Pattern
	VarID     int
	SubVarIDs []int
}

// AddSubVar appends a sub destination. The count is checked when executing,
// since sub destinations are appended one by one while configuring.
func (e *Extractor) AddSubVar(id int) {
	e.SubVarIDs = append(e.SubVarIDs, id)
}

// HasPattern reports whether a pattern was configured.
func (e *Extractor) HasPattern() bool {
	return e.Pattern != nil
}

// Execute matches input once and assigns the captures. It returns the number
// of variables written: 0 when nothing matched, otherwise 1 for the whole
// match plus one per participating group, stopping at the first group that
// did not take part in the match.
func (e *Extractor) Execute(input string, vars variable.Table) (int, error) {
	if e.Pattern == nil {
		panic("extract: trying to perform regular expression match on action that does not have one")
	}
	if len(e.SubVarIDs) > MaxSubVars {
		return 0, fmt.Errorf("%w: %d configured for '%s'", core.ErrTooManySubExpressions, len(e.SubVarIDs), e.Pattern.source)
	}

	loc := e.Pattern.re.FindStringSubmatchIndex(input)
	if loc == nil {
		return 0, nil
	}

	groups := len(loc) / 2
	written := 0
	for i := 0; i <= len(e.SubVarIDs); i++ {
		if i >= groups || loc[2*i] < 0 {
			break
		}
		id := e.VarID
		if i > 0 {
			id = e.SubVarIDs[i-1]
		}
		vars.Set(id, variable.FromMatch(substring(input, loc[2*i], loc[2*i+1])))
		written++
	}
	return written, nil
}

// substring returns an owned copy of input[start:stop].
func substring(input string, start, stop int) string {
	if stop <= start {
		return ""
	}
	return strings.Clone(input[start:stop])
}
