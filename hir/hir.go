// Package hir implements the HIR node store: a tree
// IR mirroring the AST, but with a per-node Context block that starts
// empty and is filled in by the pass sequence (resolved scope, resolved
// path, symbol reference, type handle, variable-scope id, DAG index,
// operator-reorder flag).
//
// The store uses one flat, index-addressed collection (the same shape
// ast.Store already uses) rather than a struct-of-slices per kind, since
// HIR lowering is a 1:1 structural mirror of the AST and the pass
// framework walks by Kind dispatch either way.
package hir

import (
	"github.com/xenon-lang/xenonc/dag"
	"github.com/xenon-lang/xenonc/intern"
	"github.com/xenon-lang/xenonc/scope"
	"github.com/xenon-lang/xenonc/span"
	"github.com/xenon-lang/xenonc/symtab"
	"github.com/xenon-lang/xenonc/typesys"
	"github.com/xenon-lang/xenonc/varscope"
)

// Id addresses one HIR node. InvalidId never equals any id returned by
// (*Store).Add.
type Id int32

// InvalidId is the sentinel HIR node id.
const InvalidId Id = -1

// Kind tags which Data variant a Node carries; mirrors ast.Kind.
type Kind int

const (
	KindModule Kind = iota
	KindPrecedence
	KindTrait
	KindImpl
	KindFunction
	KindOperatorUse
	KindPrecedenceUse
	KindSimplePath
	KindTypeUnit
	KindTypeNever
	KindTypePrimitive
	KindTypeStringSlice
	KindTypePath
	KindTypeTuple
	KindTypeArray
	KindTypeSlice
	KindTypePointer
	KindTypeReference
	KindTypeOptional
	KindTypeFn
	KindTypeClosure
	KindBlock
	KindLetStmt
	KindParam
	KindBinaryExpr
	KindIdent
	KindLiteralExpr
)

// Node is one entry in the flat HIR store.
type Node struct {
	Id   Id
	Kind Kind
	Span span.Span
	Data interface{}
}

// --- node payloads, mirroring ast's per-kind Data structs ---

// ModuleData is a lowered `mod name { ... }`.
type ModuleData struct {
	Name  string
	Items []Id
}

// PrecedenceData is a lowered `precedence Name { ... }`.
type PrecedenceData struct {
	Name       string
	HigherThan string
	LowerThan  string
	IsHighest  bool
	IsLowest   bool
	Assoc      int
}

// TraitData is a lowered `trait Name { ... }` / `op trait Name { ... }`.
type TraitData struct {
	Name       string
	IsOperator bool
	Bases      []Id
	Functions  []Id
}

// ImplData is a lowered `impl [Trait for] Type { ... }`.
type ImplData struct {
	TraitPath Id
	Target    Id
	Functions []Id
}

// FunctionRole mirrors ast.FunctionRole.
type FunctionRole int

const (
	RoleFreeFunction FunctionRole = iota
	RoleTraitFunction
	RoleTraitMethod
	RoleImplFunction
	RoleMethod
)

// FunctionData is a lowered function/method declaration. Fixity and
// Punctuation mirror ast.FunctionData: meaningful only inside an
// operator trait.
type FunctionData struct {
	Name        string
	Role        FunctionRole
	Params      []Id
	Body        Id
	Fixity      int
	Punctuation string
}

// ParamData is a lowered function parameter.
type ParamData struct {
	Name  string
	Label string
	Type  Id
}

// OperatorUseData is a lowered `op use <path>;` import.
type OperatorUseData struct {
	Path  Id
	Group string
}

// PrecedenceUseData is a lowered `precedence use <path>;` import.
type PrecedenceUseData struct {
	Path  Id
	Group string
}

// SimplePathData is a lowered sequence of interned names.
type SimplePathData struct {
	Names []intern.NameId
}

// TypePrimitiveData names a lowered fixed-width primitive type node.
type TypePrimitiveData struct {
	Kind typesys.PrimitiveKind
}

// TypeStringSliceData names a lowered string-slice type node.
type TypeStringSliceData struct {
	Kind typesys.StringSliceKind
}

// GenArgKind mirrors ast.GenArgKind.
type GenArgKind int

const (
	GenArgTypeNode GenArgKind = iota
	GenArgName
)

// GenArg is one generic argument on a TypePathData; Resolved is filled in
// by the full-path generator once the argument's type (or
// name-only single-segment path type) is resolved.
type GenArg struct {
	Kind     GenArgKind
	Type     Id
	Name     string
	Resolved *typesys.TypeHandle
}

// TypePathData is a lowered `path::to::Type[GenArgs]` type reference.
type TypePathData struct {
	Path    Id
	GenArgs []GenArg
}

// TypeTupleData is a lowered `(T0, T1, ...)`.
type TypeTupleData struct {
	Elements []Id
}

// TypeArrayData is a lowered `[T; size]`.
type TypeArrayData struct {
	Element  Id
	SizeExpr Id
}

// TypeSliceData is a lowered `[T]`.
type TypeSliceData struct {
	Element Id
}

// TypePointerData is a lowered `*T` or `[*]T`.
type TypePointerData struct {
	Element Id
	IsMulti bool
}

// TypeReferenceData is a lowered `&T` or `&mut T`.
type TypeReferenceData struct {
	Element Id
	IsMut   bool
}

// TypeOptionalData is a lowered `?T` (stubbed to unit per Open Question a).
type TypeOptionalData struct {
	Element Id
}

// TypeFnData is a lowered function-type signature (stubbed to unit per
// Open Question a).
type TypeFnData struct {
	Params []Id
	Return Id
}

// TypeClosureData is a lowered closure type (stubbed to unit per Open
// Question a).
type TypeClosureData struct {
	Params []Id
	Return Id
}

// BlockData is a lowered `{ stmt; stmt; ... }`.
type BlockData struct {
	Statements []Id
}

// LetStmtData is a lowered `let [mut|const] name[: Type] = ...;`.
type LetStmtData struct {
	Name    string
	IsMut   bool
	IsConst bool
	Type    Id
	Value   Id // initializer expression, InvalidId if elided
}

// BinaryExprData is a lowered infix expression, parsed without regard to
// precedence (each successive operator nested on the right child), the
// input to the operator-reorder pass.
type BinaryExprData struct {
	Operator intern.PunctuationId
	Left     Id
	Right    Id
}

// IdentData is a lowered bare identifier expression.
type IdentData struct {
	Name string
}

// LiteralExprData wraps an interned literal.
type LiteralExprData struct {
	Literal intern.LiteralId
}

// Context is the mutable per-node annotation block passes fill in:
// resolved scope, resolved path, symbol reference, type handle,
// variable-scope id, DAG index, operator-reorder flag.
type Context struct {
	Scope         scope.Scope
	Path          scope.Scope
	Symbol        *symtab.Symbol
	Ty            *typesys.TypeHandle
	VarInfoID     varscope.VarInfoId
	DagIdx        dag.Id
	NeedsReorder  bool
	TopLevel      bool
	IsHighestPrec bool
	IsLowestPrec  bool
	SourcePath    string
}

// NewContext returns a zero-valued Context with sentinel ids, so "unset"
// is always distinguishable from "resolved to id 0".
func NewContext() Context {
	return Context{VarInfoID: varscope.InvalidVarInfoId, DagIdx: dag.InvalidId}
}

// Store owns every HIR node plus its parallel Context vector.
type Store struct {
	Nodes    []Node
	Contexts []Context
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a new node (with a NewContext() Context, NeedsReorder set
// for BinaryExpr nodes) and returns its id.
func (s *Store) Add(kind Kind, sp span.Span, data interface{}) Id {
	id := Id(len(s.Nodes))
	s.Nodes = append(s.Nodes, Node{Id: id, Kind: kind, Span: sp, Data: data})
	ctx := NewContext()
	if kind == KindBinaryExpr {
		// Only BinaryExpr nodes ever need the operator-reorder pass; every
		// other kind leaves this false so the pass's "already handled"
		// check (NeedsReorder == false) is unambiguous.
		ctx.NeedsReorder = true
	}
	s.Contexts = append(s.Contexts, ctx)
	return id
}

// Get returns the node at id.
func (s *Store) Get(id Id) (Node, bool) {
	if id < 0 || int(id) >= len(s.Nodes) {
		return Node{}, false
	}
	return s.Nodes[id], true
}

// Ctx returns a pointer to id's context slot so passes can mutate it in place.
func (s *Store) Ctx(id Id) *Context {
	return &s.Contexts[id]
}

// Len reports the number of nodes in the store.
func (s *Store) Len() int { return len(s.Nodes) }
