package hirpass

import (
	"github.com/xenon-lang/xenonc/diag"
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/precedence"
	"github.com/xenon-lang/xenonc/symtab"
)

// PrecedenceSymGen creates, for each Precedence node, a DAG node and a
// symbol, recording OrderKind
// (derived from the IsHighestPrec/IsLowestPrec context flags
// astpass.ContextSetup set) and Associativity on the symbol.
type PrecedenceSymGen struct{}

func (PrecedenceSymGen) Name() string                       { return "precedence-symgen" }
func (PrecedenceSymGen) VisitFlags() passes.VisitFlags       { return passes.VisitPrecedence }
func (p PrecedenceSymGen) Process(pc *passes.Context, h *hir.Store) { passes.Walk(p, pc, h) }

func (PrecedenceSymGen) Visit(pc *passes.Context, h *hir.Store, id hir.Id) {
	node, ok := h.Get(id)
	if !ok {
		return
	}
	data := node.Data.(hir.PrecedenceData)
	ctx := h.Ctx(id)

	var dagID = pc.Precedence.Lowest
	switch {
	case ctx.IsLowestPrec:
		dagID = pc.Precedence.Lowest
	case ctx.IsHighestPrec:
		dagID = pc.Precedence.Highest
	default:
		dagID = pc.Precedence.AddPrecedence(data.Name)
	}
	ctx.DagIdx = dagID
	pc.Precedence.SetAssoc(dagID, precedence.Associativity(data.Assoc))

	orderKind := symtab.OrderUser
	if ctx.IsHighestPrec {
		orderKind = symtab.OrderHighest
	} else if ctx.IsLowestPrec {
		orderKind = symtab.OrderLowest
	}

	sym, ok := pc.Symbols.AddPrecedence(ctx.Scope, data.Name, dagID, orderKind, precedence.Associativity(data.Assoc))
	if ok {
		ctx.Symbol = sym
	}
}

// PrecedenceConnect resolves each Precedence node's
// higher_than/lower_than name references to DAG ids within its own
// scope and adds the edge; an unresolved reference is reported and the
// edge is skipped.
type PrecedenceConnect struct{}

func (PrecedenceConnect) Name() string                       { return "precedence-connect" }
func (PrecedenceConnect) VisitFlags() passes.VisitFlags       { return passes.VisitPrecedence }
func (p PrecedenceConnect) Process(pc *passes.Context, h *hir.Store) { passes.Walk(p, pc, h) }

func (PrecedenceConnect) Visit(pc *passes.Context, h *hir.Store, id hir.Id) {
	node, ok := h.Get(id)
	if !ok {
		return
	}
	data := node.Data.(hir.PrecedenceData)
	ctx := h.Ctx(id)

	// SetOrder(lower, higher) records lower as ranking below higher (the
	// same direction Complete()'s sentinel wiring uses), so "ctx is
	// HigherThan other" sets other as the lower operand.
	if data.HigherThan != "" {
		if other, ok := pc.Symbols.GetSymbol(ctx.Scope, data.HigherThan); ok && other.Kind == symtab.KindPrecedence {
			pc.Precedence.SetOrder(other.PrecedenceID, ctx.DagIdx)
		} else {
			pc.Errors.Report(diag.NewUnknownSymbol(node.Span, data.HigherThan))
		}
	}
	if data.LowerThan != "" {
		if other, ok := pc.Symbols.GetSymbol(ctx.Scope, data.LowerThan); ok && other.Kind == symtab.KindPrecedence {
			pc.Precedence.SetOrder(ctx.DagIdx, other.PrecedenceID)
		} else {
			pc.Errors.Report(diag.NewUnknownSymbol(node.Span, data.LowerThan))
		}
	}
}

// FinalizePrecedenceDag runs completion, transitive-closure precompute,
// and the cycle check once every Precedence node has been connected. It
// is not node-keyed, so it lives outside the Pass interface's per-node
// Visit hook: a single whole-graph step that runs after every edge has
// been recorded. Returns false when a cycle was found, in which case the
// DAG's order queries must not drive any further decisions.
func FinalizePrecedenceDag(pc *passes.Context) bool {
	pc.Precedence.Complete()
	pc.Precedence.CalculatePredecessors()
	if cycles := pc.Precedence.CheckCycles(); len(cycles) > 0 {
		names := make([]string, len(cycles[0]))
		for i, id := range cycles[0] {
			name, _ := pc.Precedence.Name(id)
			names[i] = name
		}
		pc.Errors.Report(diag.NewCycle("precedence", names))
		return false
	}
	return true
}
