// Package varscope implements per-function lexical variable-scope
// collection: a forest of scopes rooted at each function's top scope,
// with shadow-span tracking on same-scope name redeclaration.
package varscope

import (
	"github.com/xenon-lang/xenonc/span"
	"github.com/xenon-lang/xenonc/typesys"
)

// ScopeId indexes a lexical scope within a single VariableInfo.
type ScopeId int32

// InvalidScopeId is the sentinel for "no parent" (function top scope).
const InvalidScopeId ScopeId = -1

// LexicalScope is one block-level scope: its span and optional parent.
type LexicalScope struct {
	Span   span.Span
	Parent ScopeId // InvalidScopeId for a function's top-level scope
}

// VarEntry is one variable declaration: which scope it lives in, where
// it was declared, and (if a later declaration in the same scope shadows
// it) the span of that shadowing declaration.
type VarEntry struct {
	ScopeID    ScopeId
	DeclSpan   span.Span
	ShadowSpan *span.Span
	Name       string
	IsMut      bool
	IsConst    bool
	Type       *typesys.TypeHandle
}

// VariableInfo is built per function/method: its lexical scope forest
// plus its flat variable-entry list.
type VariableInfo struct {
	Scopes []LexicalScope
	Vars   []VarEntry
}

// VarInfoId identifies a VariableInfo interned in a VarInfoMap.
type VarInfoId int32

// InvalidVarInfoId never equals any id returned by (*Map).Add.
const InvalidVarInfoId VarInfoId = -1

// Map interns VariableInfo values and returns VarInfoIds, the HIR
// function context's stored handle.
type Map struct {
	infos []*VariableInfo
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{}
}

// Add interns info and returns its id.
func (m *Map) Add(info *VariableInfo) VarInfoId {
	id := VarInfoId(len(m.infos))
	m.infos = append(m.infos, info)
	return id
}

// Get returns the VariableInfo for id.
func (m *Map) Get(id VarInfoId) (*VariableInfo, bool) {
	if id < 0 || int(id) >= len(m.infos) {
		return nil, false
	}
	return m.infos[id], true
}

// Builder accumulates one function's scope forest and variable entries
// while a pass walks its body; Finish yields the VariableInfo.
type Builder struct {
	info  *VariableInfo
	stack []ScopeId
}

// NewBuilder returns an empty builder with no scopes pushed yet; the
// caller pushes the function's top scope as the first PushScope call.
func NewBuilder() *Builder {
	return &Builder{info: &VariableInfo{}}
}

// currentParent returns the scope id at the top of the stack, or
// InvalidScopeId if the stack is empty (meaning the next PushScope call
// creates a function-top scope).
func (b *Builder) currentParent() ScopeId {
	if len(b.stack) == 0 {
		return InvalidScopeId
	}
	return b.stack[len(b.stack)-1]
}

// PushScope records a new lexical scope, parented to whatever scope is
// currently open (or the function top if none is), pushes it onto the
// builder's active stack, and returns its id. Nesting is strictly
// lexical: blocks inside blocks produce child scopes, sequential blocks
// produce siblings. Callers achieve the latter by calling PopScope
// between sibling PushScope calls.
func (b *Builder) PushScope(sp span.Span) ScopeId {
	id := ScopeId(len(b.info.Scopes))
	b.info.Scopes = append(b.info.Scopes, LexicalScope{Span: sp, Parent: b.currentParent()})
	b.stack = append(b.stack, id)
	return id
}

// PopScope closes the innermost open scope.
func (b *Builder) PopScope() {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// AddVariable records a declaration of name at declSpan within scopeID.
// If an earlier, not-yet-shadowed entry of the same name exists in the
// same scope, its ShadowSpan is set to declSpan; both entries remain
// present.
func (b *Builder) AddVariable(scopeID ScopeId, name string, declSpan span.Span, isMut, isConst bool, ty *typesys.TypeHandle) {
	for i := len(b.info.Vars) - 1; i >= 0; i-- {
		e := &b.info.Vars[i]
		if e.ScopeID != scopeID {
			continue
		}
		if e.Name == name && e.ShadowSpan == nil {
			shadow := declSpan
			e.ShadowSpan = &shadow
			break
		}
	}
	b.info.Vars = append(b.info.Vars, VarEntry{
		ScopeID:  scopeID,
		DeclSpan: declSpan,
		Name:     name,
		IsMut:    isMut,
		IsConst:  isConst,
		Type:     ty,
	})
}

// Finish returns the accumulated VariableInfo.
func (b *Builder) Finish() *VariableInfo {
	return b.info
}

// IsForest reports whether every scope in info either has no parent or a
// parent appearing earlier in the Scopes slice.
func IsForest(info *VariableInfo) bool {
	for i, s := range info.Scopes {
		if s.Parent == InvalidScopeId {
			continue
		}
		if int(s.Parent) >= i {
			return false
		}
	}
	return true
}
