package resource

import (
	"strings"
	"unicode"
)

// Pass is one pure text rewrite.
type Pass func(string) string

// Pipeline applies its passes in order.
type Pipeline struct {
	Passes []Pass
}

// Apply runs content through every pass.
func (p Pipeline) Apply(content string) string {
	for _, pass := range p.Passes {
		content = pass(content)
	}
	return content
}

// DefaultPipeline substitutes `${name}` tokens, then `@name@` tokens.
func DefaultPipeline(props Lookup) Pipeline {
	return Pipeline{Passes: []Pass{
		TokenPass("${", "}", props),
		TokenPass("@", "@", props),
	}}
}

// TokenPass replaces begin+name+end with the value of name. Names never
// contain whitespace, and a token whose name is unknown is left as written.
func TokenPass(begin, end string, props Lookup) Pass {
	return func(content string) string {
		if !strings.Contains(content, begin) {
			return content
		}
		var out strings.Builder
		out.Grow(len(content))

		rest := content
		for {
			start := strings.Index(rest, begin)
			if start < 0 {
				out.WriteString(rest)
				break
			}
			out.WriteString(rest[:start])
			after := rest[start+len(begin):]

			stop := strings.Index(after, end)
			if stop <= 0 {
				// no terminator, or an empty name
				out.WriteString(begin)
				rest = after
				continue
			}
			name := after[:stop]
			if !validTokenName(name) {
				out.WriteString(begin)
				rest = after
				continue
			}
			value, ok := props.Lookup(name)
			if !ok {
				out.WriteString(begin)
				rest = after
				continue
			}
			out.WriteString(value)
			rest = after[stop+len(end):]
		}
		return out.String()
	}
}

func validTokenName(name string) bool {
	for _, r := range name {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
