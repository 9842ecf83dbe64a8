// Package passes implements fixed-order pass orchestration: a shared
// Context (name/use/symbol tables, precedence/trait DAGs, operator
// table, type registry, variable-info map, error log) and a Pass
// interface with a default Process that walks the HIR selecting node
// kinds of interest via a VisitFlags bitmask.
package passes

import (
	"time"

	"github.com/xenon-lang/xenonc/diag"
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/intern"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/precedence"
	"github.com/xenon-lang/xenonc/span"
	"github.com/xenon-lang/xenonc/symtab"
	"github.com/xenon-lang/xenonc/traitdag"
	"github.com/xenon-lang/xenonc/typesys"
	"github.com/xenon-lang/xenonc/varscope"
)

// Context is the shared mutable state every pass reads from and writes
// to. The symbol table, use table, type registry and error log guard
// their own mutations; the intern tables, span registry, DAGs, operator
// table and variable-info map take no lock. This struct is just the bag
// of references a pass needs.
type Context struct {
	Names       *intern.NameTable
	Punctuation *intern.PunctuationTable
	Literals    *intern.LiteralTable
	Spans       *span.Registry

	Symbols    *symtab.RootSymbolTable
	Uses       *symtab.UseTable
	Precedence *precedence.Dag
	Traits     *traitdag.Dag
	Operators  *optable.Table
	Types      *typesys.Registry
	VarInfo    *varscope.Map
	Errors     *diag.Log
}

// NewContext builds a fresh Context with every shared table initialised
// empty, ready for the fixed pass sequence in Run.
func NewContext() *Context {
	return &Context{
		Names:       intern.NewNameTable(),
		Punctuation: intern.NewPunctuationTable(),
		Literals:    intern.NewLiteralTable(),
		Spans:       span.NewRegistry(),
		Symbols:     symtab.NewRootSymbolTable(),
		Uses:        symtab.NewUseTable(),
		Precedence:  precedence.NewDag(),
		Traits:      traitdag.NewDag(),
		Operators:   optable.New(),
		Types:       typesys.NewRegistry(),
		VarInfo:     varscope.NewMap(),
		Errors:      diag.NewLog(),
	}
}

// VisitFlags selects which hir.Kind values a Pass's Visit hook applies
// to; Process walks the HIR once and calls Visit only on matching nodes.
type VisitFlags uint32

const (
	VisitModule VisitFlags = 1 << iota
	VisitPrecedence
	VisitTrait
	VisitImpl
	VisitFunction
	VisitOperatorUse
	VisitPrecedenceUse
	VisitSimplePath
	VisitType
	VisitBlock
	VisitLetStmt
	VisitParam
	VisitBinaryExpr
	VisitIdent
	VisitLiteralExpr
)

// VisitAll matches every node kind.
const VisitAll = VisitFlags(0xFFFFFFFF)

var typeKinds = map[hir.Kind]bool{
	hir.KindTypeUnit: true, hir.KindTypeNever: true, hir.KindTypePrimitive: true,
	hir.KindTypeStringSlice: true, hir.KindTypePath: true, hir.KindTypeTuple: true,
	hir.KindTypeArray: true, hir.KindTypeSlice: true, hir.KindTypePointer: true,
	hir.KindTypeReference: true, hir.KindTypeOptional: true, hir.KindTypeFn: true,
	hir.KindTypeClosure: true,
}

// flagFor reports which VisitFlags bit a node kind belongs to.
func flagFor(k hir.Kind) VisitFlags {
	switch k {
	case hir.KindModule:
		return VisitModule
	case hir.KindPrecedence:
		return VisitPrecedence
	case hir.KindTrait:
		return VisitTrait
	case hir.KindImpl:
		return VisitImpl
	case hir.KindFunction:
		return VisitFunction
	case hir.KindOperatorUse:
		return VisitOperatorUse
	case hir.KindPrecedenceUse:
		return VisitPrecedenceUse
	case hir.KindSimplePath:
		return VisitSimplePath
	case hir.KindBlock:
		return VisitBlock
	case hir.KindLetStmt:
		return VisitLetStmt
	case hir.KindParam:
		return VisitParam
	case hir.KindBinaryExpr:
		return VisitBinaryExpr
	case hir.KindIdent:
		return VisitIdent
	case hir.KindLiteralExpr:
		return VisitLiteralExpr
	}
	if typeKinds[k] {
		return VisitType
	}
	return 0
}

// Pass is one visitor in the fixed sequence: a name (for
// diagnostics/timing), the node kinds it cares about, and a hook called
// once per matching node in store order (for lowered HIR, children
// before their parent), unless
// the pass overrides traversal via Process itself (explicit type
// generation does, to post-order its children).
type Pass interface {
	Name() string
	VisitFlags() VisitFlags
	Visit(pc *Context, h *hir.Store, id hir.Id)
	// Process runs the pass over h. The default walker (Walk) suits most
	// passes; a pass needing non-default traversal order implements its
	// own Process and may still delegate to Walk for sub-parts.
	Process(pc *Context, h *hir.Store)
}

// Walk is the default Process: iterate the HIR in store order and call
// p.Visit on every node whose kind matches p.VisitFlags(). Lowering adds
// each node after its children, so a parent is not visited before its
// children; Walk does not reorder the store.
func Walk(p Pass, pc *Context, h *hir.Store) {
	flags := p.VisitFlags()
	for i := 0; i < h.Len(); i++ {
		node := h.Nodes[i]
		if flags == VisitAll || flagFor(node.Kind)&flags != 0 {
			p.Visit(pc, h, node.Id)
		}
	}
}

// Run drives the caller-supplied pass sequence in order; the order is a
// contract at the call site, not something this function second-guesses.
func Run(pc *Context, h *hir.Store, sequence []Pass) {
	for _, p := range sequence {
		p.Process(pc, h)
	}
}

// PassTiming is one pass's wall-clock duration, for `--dump-timings`.
type PassTiming struct {
	Name     string
	Duration time.Duration
}

// RunTimed drives the same fixed sequence Run does, recording each
// pass's wall-clock duration alongside its name.
func RunTimed(pc *Context, h *hir.Store, sequence []Pass) []PassTiming {
	timings := make([]PassTiming, 0, len(sequence))
	for _, p := range sequence {
		start := time.Now()
		p.Process(pc, h)
		timings = append(timings, PassTiming{Name: p.Name(), Duration: time.Since(start)})
	}
	return timings
}
