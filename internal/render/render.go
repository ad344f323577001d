// Package render expands [$name] keywords in message templates.
package render

import (
	"strings"

	"firestige.xyz/callscript/pkg/variable"
)

// IDLookup resolves a variable name to its id, 0 when unknown.
type IDLookup interface {
	Find(name string, create bool) int
}

// Renderer substitutes [$name] with the string view of the variable. Unknown
// or unset variables expand to the empty string; text that is not a
// complete keyword is copied unchanged.
type Renderer struct {
	names IDLookup
}

// New creates a renderer resolving names with ids.
func New(ids IDLookup) *Renderer {
	return &Renderer{names: ids}
}

// Render implements action.Renderer.
func (r *Renderer) Render(text string, vars variable.Table) string {
	if !strings.Contains(text, "[$") {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for {
		start := strings.Index(text, "[$")
		if start < 0 {
			sb.WriteString(text)
			break
		}
		end := strings.IndexByte(text[start:], ']')
		if end < 0 {
			sb.WriteString(text)
			break
		}
		end += start

		sb.WriteString(text[:start])
		name := text[start+2 : end]
		if id := r.names.Find(name, false); id != 0 && vars != nil {
			sb.WriteString(vars.Get(id).String())
		}
		text = text[end+1:]
	}
	return sb.String()
}
