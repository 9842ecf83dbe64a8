// Package symtab implements the hierarchical symbol table: a tree of
// named buckets keyed by scope, supporting overloads by parameter-label
// set, plus the per-scope use table consulted during lookup.
package symtab

import (
	"github.com/xenon-lang/xenonc/dag"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/precedence"
)

// Kind tags which variant a Symbol carries.
type Kind int

const (
	KindModule Kind = iota
	KindPrecedence
	KindTrait
	KindOpSet
	KindOperator
	// KindOpaque covers other item kinds (function, struct, ...) that the
	// semantic core stores but does not reason about.
	KindOpaque
)

// OrderKind is a precedence symbol's role in the precedence DAG.
type OrderKind int

const (
	OrderUser OrderKind = iota
	OrderHighest
	OrderLowest
)

// Symbol is a tagged union over Kind. Only the fields relevant to Kind
// are meaningful; a plain struct rather than an interface per variant,
// since every variant is small and the set is closed.
type Symbol struct {
	Kind Kind
	Name string

	// KindModule
	FilePath string
	SubTable *Table

	// KindPrecedence
	PrecedenceID dag.Id
	OrderKind    OrderKind
	Assoc        precedence.Associativity

	// KindTrait
	Path   string
	DagIdx dag.Id

	// KindOperator
	Fixity      optable.Fixity
	Punctuation string

	// KindOpaque — function, struct, enum, etc; the core never interprets
	// these beyond storing and returning them.
	OpaqueKind string
	Opaque    interface{}
}
