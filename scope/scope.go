// Package scope implements the Language's parameterised scope paths:
// ordered sequences of name + value-parameter-label + generic-argument
// segments used both for symbol-table keys and pass contexts.
package scope

import "strings"

// TypeHandle is the minimal surface scope needs from a resolved type; the
// typesys package's TypeHandle satisfies this without scope importing
// typesys (which itself needs to refer to scopes for path types).
type TypeHandle interface {
	String() string
}

// GenArgKind tags a GenArg as either a resolved type or a value
// placeholder (a const-generic argument not yet evaluated).
type GenArgKind int

const (
	// GenArgType carries a resolved type handle.
	GenArgType GenArgKind = iota
	// GenArgValue carries an unresolved value placeholder (its source text).
	GenArgValue
)

// GenArg is one generic argument attached to a ScopeSegment.
type GenArg struct {
	Kind  GenArgKind
	Type  TypeHandle
	Value string
}

func (g GenArg) String() string {
	if g.Kind == GenArgType && g.Type != nil {
		return g.Type.String()
	}
	return g.Value
}

func genArgsEqual(a, b GenArg) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == GenArgType {
		if a.Type == nil || b.Type == nil {
			return a.Type == b.Type
		}
		return a.Type.String() == b.Type.String()
	}
	return a.Value == b.Value
}

// ScopeSegment is one path component: a name, its ordered value-parameter
// labels (used to disambiguate overloaded functions), and its ordered
// generic arguments.
type ScopeSegment struct {
	Name    string
	Params  []string
	GenArgs []GenArg
}

// NewSegment builds a plain, unparameterised, non-generic segment.
func NewSegment(name string) ScopeSegment {
	return ScopeSegment{Name: name}
}

// WithParams returns a copy of the segment carrying the given
// value-parameter labels.
func (s ScopeSegment) WithParams(params ...string) ScopeSegment {
	s.Params = append([]string(nil), params...)
	return s
}

// WithGenArgs returns a copy of the segment carrying the given generic
// arguments.
func (s ScopeSegment) WithGenArgs(args ...GenArg) ScopeSegment {
	s.GenArgs = append([]GenArg(nil), args...)
	return s
}

// Lookup strips GenArgs, returning a segment with only name + params,
// the normalised form the symbol table keys lookups with.
func (s ScopeSegment) Lookup() ScopeSegment {
	return ScopeSegment{Name: s.Name, Params: append([]string(nil), s.Params...)}
}

// Equal compares name, params, and gen-args structurally.
func (s ScopeSegment) Equal(o ScopeSegment) bool {
	if s.Name != o.Name || len(s.Params) != len(o.Params) || len(s.GenArgs) != len(o.GenArgs) {
		return false
	}
	for i := range s.Params {
		if s.Params[i] != o.Params[i] {
			return false
		}
	}
	for i := range s.GenArgs {
		if !genArgsEqual(s.GenArgs[i], o.GenArgs[i]) {
			return false
		}
	}
	return true
}

// String renders "name[<genargs>](<params>)", e.g. "get[T](x,y)".
func (s ScopeSegment) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if len(s.GenArgs) > 0 {
		b.WriteByte('[')
		for i, g := range s.GenArgs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(g.String())
		}
		b.WriteByte(']')
	}
	if len(s.Params) > 0 {
		b.WriteByte('(')
		for i, p := range s.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(p)
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Scope is an ordered sequence of ScopeSegment, e.g. "a.b[T](x)".
type Scope struct {
	Segments []ScopeSegment
}

// New builds a Scope from the given segments.
func New(segments ...ScopeSegment) Scope {
	return Scope{Segments: append([]ScopeSegment(nil), segments...)}
}

// Push returns a new scope with seg appended.
func (s Scope) Push(seg ScopeSegment) Scope {
	return Scope{Segments: append(append([]ScopeSegment(nil), s.Segments...), seg)}
}

// PushName is a convenience for Push(NewSegment(name)).
func (s Scope) PushName(name string) Scope {
	return s.Push(NewSegment(name))
}

// Pop returns the scope with its last segment removed, and that segment.
// Popping an empty scope returns the empty scope and the zero segment.
func (s Scope) Pop() (Scope, ScopeSegment) {
	if len(s.Segments) == 0 {
		return s, ScopeSegment{}
	}
	last := s.Segments[len(s.Segments)-1]
	return Scope{Segments: append([]ScopeSegment(nil), s.Segments[:len(s.Segments)-1]...)}, last
}

// Extend returns a new scope with other's segments appended after s's.
func (s Scope) Extend(other Scope) Scope {
	return Scope{Segments: append(append([]ScopeSegment(nil), s.Segments...), other.Segments...)}
}

// Parent returns the scope with its last segment dropped (the enclosing
// scope), or the empty scope if s is already empty or has one segment.
func (s Scope) Parent() Scope {
	if len(s.Segments) <= 1 {
		return Scope{}
	}
	return Scope{Segments: append([]ScopeSegment(nil), s.Segments[:len(s.Segments)-1]...)}
}

// SubPath drops the root segment, returning the remaining tail.
func (s Scope) SubPath() Scope {
	if len(s.Segments) == 0 {
		return s
	}
	return Scope{Segments: append([]ScopeSegment(nil), s.Segments[1:]...)}
}

// Root returns the first segment, and whether s is non-empty.
func (s Scope) Root() (ScopeSegment, bool) {
	if len(s.Segments) == 0 {
		return ScopeSegment{}, false
	}
	return s.Segments[0], true
}

// Last returns the final segment, and whether s is non-empty.
func (s Scope) Last() (ScopeSegment, bool) {
	if len(s.Segments) == 0 {
		return ScopeSegment{}, false
	}
	return s.Segments[len(s.Segments)-1], true
}

// Len reports the number of segments.
func (s Scope) Len() int { return len(s.Segments) }

// IsEmpty reports whether s has no segments.
func (s Scope) IsEmpty() bool { return len(s.Segments) == 0 }

// Lookup returns the normalised lookup form: every segment reduced to
// name+params (gen-args stripped). A scope used as a symbol-table key
// never mixes generic arguments with pure-name lookups.
func (s Scope) Lookup() Scope {
	out := make([]ScopeSegment, len(s.Segments))
	for i, seg := range s.Segments {
		out[i] = seg.Lookup()
	}
	return Scope{Segments: out}
}

// Equal compares two scopes structurally, segment by segment.
func (s Scope) Equal(o Scope) bool {
	if len(s.Segments) != len(o.Segments) {
		return false
	}
	for i := range s.Segments {
		if !s.Segments[i].Equal(o.Segments[i]) {
			return false
		}
	}
	return true
}

// Key returns a string uniquely determined by structural equality,
// suitable for use as a map key (hashing surrogate — Go structs
// containing slices aren't comparable, so symbol tables key on this
// instead of the Scope value itself).
func (s Scope) Key() string {
	return s.String()
}

// String renders "seg0.seg1[<genargs>](<params>)".
func (s Scope) String() string {
	var b strings.Builder
	for i, seg := range s.Segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}
