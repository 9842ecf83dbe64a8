// Package ast implements the index-addressed AST node store: every node
// gets a sequential NodeId, and a parallel, equally-sized Context vector
// lets passes attach scope/module data without mutating the node itself.
// The AST is produced by the parser; this package only stores it and
// lets passes annotate it.
package ast

import (
	"github.com/xenon-lang/xenonc/intern"
	"github.com/xenon-lang/xenonc/scope"
	"github.com/xenon-lang/xenonc/span"
)

// NodeId addresses one AST node. InvalidNodeId never equals any id
// returned by (*Store).Add.
type NodeId int32

// InvalidNodeId is the sentinel node id.
const InvalidNodeId NodeId = -1

// Kind tags which Data variant a Node carries.
type Kind int

const (
	KindModule Kind = iota
	KindAttribute
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

// Meta is the per-node metadata the parser records alongside the node
// itself: span and first/last token indices.
type Meta struct {
	Span            span.Span
	FirstTokenIndex int
	LastTokenIndex  int
}

// Node is one entry in the flat, index-addressed store.
type Node struct {
	Id   NodeId
	Kind Kind
	Meta Meta
	Data interface{}
}

// --- node payloads ---

// ModuleData is a `mod name { ... }` declaration.
type ModuleData struct {
	Name       string
	Attributes []NodeId
	Items      []NodeId
}

// AttributeData is a `#[name(args...)]` item attribute.
type AttributeData struct {
	Name string
	Args []string
}

// PrecedenceData is a `precedence Name { ... }` declaration.
type PrecedenceData struct {
	Name       string
	HigherThan string
	LowerThan  string
	IsHighest  bool
	IsLowest   bool
	Assoc      int // precedence.Associativity, kept as int to avoid an import cycle with precedence's Dag-oriented API
}

// TraitData is a `trait Name { ... }` or `op trait Name { ... }` declaration.
type TraitData struct {
	Name       string
	IsOperator bool
	Bases      []NodeId // KindSimplePath
	Functions  []NodeId // KindFunction
}

// ImplData is an `impl [Trait for] Type { ... }` block.
type ImplData struct {
	TraitPath NodeId // KindSimplePath, InvalidNodeId if inherent impl
	Target    NodeId // type node
	Functions []NodeId
}

// FunctionRole distinguishes the five function-like positions.
type FunctionRole int

const (
	RoleFreeFunction FunctionRole = iota
	RoleTraitFunction
	RoleTraitMethod
	RoleImplFunction
	RoleMethod
)

// FunctionData is one function/method declaration. Fixity/Punctuation
// are only meaningful for functions declared inside an operator trait
// (TraitData.IsOperator): the Language spells an operator trait method
// by its punctuation directly (e.g. `op trait Addable { fn + (rhs: Self)
// -> Self; }`), so Punctuation carries that spelling and Fixity
// (optable.Fixity, kept as int to avoid an optable<->ast import cycle)
// is determined by the parser from the declaration shape.
type FunctionData struct {
	Name        string
	Role        FunctionRole
	Params      []NodeId // KindParam
	Body        NodeId   // KindBlock, InvalidNodeId for a trait function with no default body
	Fixity      int      // optable.Fixity; meaningful only when the enclosing trait IsOperator
	Punctuation string   // meaningful only when the enclosing trait IsOperator
}

// ParamData is one function parameter; Label is its value-parameter
// label used for overload disambiguation, empty for a positional/self
// parameter.
type ParamData struct {
	Name  string
	Label string
	Type  NodeId // type node, InvalidNodeId if elided
}

// OperatorUseData is an `op use <path>;` import, legal only at the
// library root.
type OperatorUseData struct {
	Path  NodeId // KindSimplePath
	Group string
}

// PrecedenceUseData is a `precedence use <path>;` import, legal only at
// the library root.
type PrecedenceUseData struct {
	Path  NodeId // KindSimplePath
	Group string
}

// SimplePathData is a sequence of interned names.
type SimplePathData struct {
	Names []intern.NameId
}

// TypePrimitiveData names a fixed-width primitive type node.
type TypePrimitiveData struct {
	Kind int // typesys.PrimitiveKind
}

// TypeStringSliceData names a string-slice type node.
type TypeStringSliceData struct {
	Kind int // typesys.StringSliceKind
}

// TypePathData is a `path::to::Type[GenArgs]` type reference.
type TypePathData struct {
	Path    NodeId // KindSimplePath
	GenArgs []GenArg
}

// GenArgKind distinguishes a type generic-argument from a name-only one.
type GenArgKind int

const (
	GenArgTypeNode GenArgKind = iota
	GenArgName
)

// GenArg is one generic argument on a TypePathData.
type GenArg struct {
	Kind GenArgKind
	Type NodeId // type node, when Kind == GenArgTypeNode
	Name string // identifier, when Kind == GenArgName
}

// TypeTupleData is `(T0, T1, ...)`.
type TypeTupleData struct {
	Elements []NodeId
}

// TypeArrayData is `[T; size]`; SizeExpr is InvalidNodeId when size is omitted.
type TypeArrayData struct {
	Element  NodeId
	SizeExpr NodeId
}

// TypeSliceData is `[T]`.
type TypeSliceData struct {
	Element NodeId
}

// TypePointerData is `*T` or `[*]T`.
type TypePointerData struct {
	Element NodeId
	IsMulti bool
}

// TypeReferenceData is `&T` or `&mut T`.
type TypeReferenceData struct {
	Element NodeId
	IsMut   bool
}

// TypeOptionalData is `?T`.
type TypeOptionalData struct {
	Element NodeId
}

// BlockData is `{ stmt; stmt; ... }`.
type BlockData struct {
	Statements []NodeId
}

// LetStmtData is `let [mut|const] name[: Type] = ...;`.
type LetStmtData struct {
	Name    string
	IsMut   bool
	IsConst bool
	Type    NodeId // InvalidNodeId if elided
	Value   NodeId // initializer expression, InvalidNodeId if elided
}

// BinaryExprData is an infix expression as parsed, without regard to
// precedence (each successive operator nested on the right child), the
// input to the operator-reorder pass.
type BinaryExprData struct {
	Operator intern.PunctuationId
	Left     NodeId
	Right    NodeId
}

// IdentData is a bare identifier expression.
type IdentData struct {
	Name string
}

// LiteralExprData wraps an interned literal.
type LiteralExprData struct {
	Literal intern.LiteralId
}

// Store owns every AST node, sequentially addressed.
type Store struct {
	Nodes []Node
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a new node and returns its id.
func (s *Store) Add(kind Kind, meta Meta, data interface{}) NodeId {
	id := NodeId(len(s.Nodes))
	s.Nodes = append(s.Nodes, Node{Id: id, Kind: kind, Meta: meta, Data: data})
	return id
}

// Get returns the node at id.
func (s *Store) Get(id NodeId) (Node, bool) {
	if id < 0 || int(id) >= len(s.Nodes) {
		return Node{}, false
	}
	return s.Nodes[id], true
}

// ModuleContextData is the module-specific annotation a ContextNode can
// carry.
type ModuleContextData struct {
	Path    string // resolved source file path
	IsValid bool
}

// ContextNode is the per-AST-node annotation slot passes write into.
type ContextNode struct {
	Scope           scope.Scope
	ModuleContext   *ModuleContextData
	IsHighestPrec   bool
	IsLowestPrec    bool
	TopLevel        bool
}

// Context is the parallel, equally-sized vector of ContextNode.
type Context struct {
	Nodes []ContextNode
}

// NewContext allocates a Context with n empty ContextNode entries, sized
// to match a Store with n nodes.
func NewContext(n int) *Context {
	return &Context{Nodes: make([]ContextNode, n)}
}

// At returns a pointer to id's context slot so passes can mutate it in
// place.
func (c *Context) At(id NodeId) *ContextNode {
	return &c.Nodes[id]
}
