package dependency

import (
	"sort"
	"strings"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/types"
)

// ScopeFilter admits artifacts whose scope is in its set.
type ScopeFilter struct {
	allowed map[types.Scope]bool
}

// NewScopeFilter admits exactly the given scopes.
func NewScopeFilter(scopes ...types.Scope) ScopeFilter {
	f := ScopeFilter{allowed: make(map[types.Scope]bool, len(scopes))}
	for _, s := range scopes {
		f.allowed[s.Normalize()] = true
	}
	return f
}

// RuntimeScopeFilter admits what is visible at runtime: compile and runtime.
// Provided and system scoped artifacts are supplied by the container.
func RuntimeScopeFilter() ScopeFilter {
	return NewScopeFilter(types.ScopeCompile, types.ScopeRuntime)
}

// ParseScopeFilter builds a filter from scope names. An empty list yields the
// runtime filter.
func ParseScopeFilter(names []string) (ScopeFilter, error) {
	if len(names) == 0 {
		return RuntimeScopeFilter(), nil
	}
	scopes := make([]types.Scope, 0, len(names))
	for _, name := range names {
		s := types.Scope(strings.TrimSpace(name)).Normalize()
		if !s.Known() {
			return ScopeFilter{}, errors.Newf(errors.ErrInvalidInput, "unknown scope %q", name)
		}
		scopes = append(scopes, s)
	}
	return NewScopeFilter(scopes...), nil
}

// Includes reports whether scope passes the filter.
func (f ScopeFilter) Includes(scope types.Scope) bool {
	return f.allowed[scope.Normalize()]
}

// Scopes lists the admitted scopes in order.
func (f ScopeFilter) Scopes() []string {
	out := make([]string, 0, len(f.allowed))
	for s := range f.allowed {
		out = append(out, string(s))
	}
	sort.Strings(out)
	return out
}
