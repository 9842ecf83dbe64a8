package symtab

import (
	"sync"

	"github.com/xenon-lang/xenonc/diag"
	"github.com/xenon-lang/xenonc/scope"
	"github.com/xenon-lang/xenonc/span"
)

// UseTable is a per-scope mapping: alias name to
// target scope, and a set of glob-imported scopes, both keyed by the
// scope they were declared in.
type UseTable struct {
	mu      sync.RWMutex
	aliases map[string]map[string]scope.Scope
	globs   map[string][]scope.Scope
}

// NewUseTable returns an empty use table.
func NewUseTable() *UseTable {
	return &UseTable{
		aliases: make(map[string]map[string]scope.Scope),
		globs:   make(map[string][]scope.Scope),
	}
}

// AddAlias records "use <target> as <alias>" at declaredIn.
func (u *UseTable) AddAlias(declaredIn scope.Scope, alias string, target scope.Scope) {
	u.mu.Lock()
	defer u.mu.Unlock()
	key := declaredIn.Key()
	if u.aliases[key] == nil {
		u.aliases[key] = make(map[string]scope.Scope)
	}
	u.aliases[key][alias] = target
}

// AddGlob records "use <target>.*" at declaredIn.
func (u *UseTable) AddGlob(declaredIn scope.Scope, target scope.Scope) {
	u.mu.Lock()
	defer u.mu.Unlock()
	key := declaredIn.Key()
	u.globs[key] = append(u.globs[key], target)
}

// Aliases returns the alias map declared at s (name -> target).
func (u *UseTable) Aliases(s scope.Scope) map[string]scope.Scope {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.aliases[s.Key()]
}

// Globs returns the glob targets declared at s.
func (u *UseTable) Globs(s scope.Scope) []scope.Scope {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.globs[s.Key()]
}

// UseEntry is one declared-scope's aliases and glob imports, rendered
// for dumping (`--dump-use`).
type UseEntry struct {
	DeclaredIn string
	Aliases    map[string]string
	Globs      []string
}

// All returns every scope that declared at least one alias or glob
// import, for dumping; iteration order is unspecified like the
// underlying maps, so callers sort for deterministic output.
func (u *UseTable) All() []UseEntry {
	u.mu.RLock()
	defer u.mu.RUnlock()
	seen := make(map[string]bool)
	var out []UseEntry
	collect := func(key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		entry := UseEntry{DeclaredIn: key, Aliases: make(map[string]string)}
		for alias, target := range u.aliases[key] {
			entry.Aliases[alias] = target.String()
		}
		for _, g := range u.globs[key] {
			entry.Globs = append(entry.Globs, g.String())
		}
		out = append(out, entry)
	}
	for key := range u.aliases {
		collect(key)
	}
	for key := range u.globs {
		collect(key)
	}
	return out
}

// ancestors returns s, s.Parent(), ... down to and including the empty
// (root) scope, in that order.
func ancestors(s scope.Scope) []scope.Scope {
	out := []scope.Scope{s}
	cur := s
	for !cur.IsEmpty() {
		cur = cur.Parent()
		out = append(out, cur)
	}
	return out
}

// LookupUseAware implements use-aware lookup: try
// lookup(C ∥ P), then walk up C's ancestors retrying lookup(ancestor ∥
// P); on failure at each ancestor, consult its aliases (where the alias
// is a prefix of P) and glob imports. First hit wins; absence is reported
// as UnknownSymbol{path}.
func (r *RootSymbolTable) LookupUseAware(uses *UseTable, current, target scope.Scope) (*Symbol, *diag.Error) {
	for _, anc := range ancestors(current) {
		if sym, ok := r.Lookup(anc.Extend(target)); ok {
			return sym, nil
		}
		for alias, aliasTarget := range uses.Aliases(anc) {
			if len(target.Segments) == 0 || target.Segments[0].Name != alias {
				continue
			}
			rest := scope.Scope{Segments: append([]scope.ScopeSegment(nil), target.Segments[1:]...)}
			if sym, ok := r.Lookup(aliasTarget.Extend(rest)); ok {
				return sym, nil
			}
		}
		for _, glob := range uses.Globs(anc) {
			if sym, ok := r.Lookup(glob.Extend(target)); ok {
				return sym, nil
			}
		}
	}
	return nil, diag.NewUnknownSymbol(span.Span{}, target.String())
}
