package hirpass

import (
	"github.com/xenon-lang/xenonc/diag"
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/symtab"
)

// TraitDagGen allocates a trait DAG
// node per trait declaration (regular and operator) and records the node
// index on the trait symbol so dependent passes can query bases in O(1).
type TraitDagGen struct{}

func (TraitDagGen) Name() string                       { return "trait-dag-gen" }
func (TraitDagGen) VisitFlags() passes.VisitFlags       { return passes.VisitTrait }
func (p TraitDagGen) Process(pc *passes.Context, h *hir.Store) { passes.Walk(p, pc, h) }

func (TraitDagGen) Visit(pc *passes.Context, h *hir.Store, id hir.Id) {
	node, ok := h.Get(id)
	if !ok {
		return
	}
	data := node.Data.(hir.TraitData)
	ctx := h.Ctx(id)
	traitScope := ctx.Scope.PushName(data.Name)

	dagIdx := pc.Traits.Add(traitScope.String())
	ctx.DagIdx = dagIdx

	sym, ok := pc.Symbols.AddTrait(ctx.Scope, data.Name, traitScope.String(), dagIdx)
	if ok {
		ctx.Symbol = sym
	}
}

// TraitDagConnect resolves each trait's declared base-trait paths
// against the symbol table (through the use table) within the trait's
// enclosing scope, and sets the derived->base edge.
// Unresolved paths are reported.
type TraitDagConnect struct {
	Uses *symtab.UseTable
}

func (c TraitDagConnect) Name() string                 { return "trait-dag-connect" }
func (c TraitDagConnect) VisitFlags() passes.VisitFlags { return passes.VisitTrait }
func (c TraitDagConnect) Process(pc *passes.Context, h *hir.Store) {
	passes.Walk(c, pc, h)
}

func (c TraitDagConnect) Visit(pc *passes.Context, h *hir.Store, id hir.Id) {
	node, ok := h.Get(id)
	if !ok {
		return
	}
	data := node.Data.(hir.TraitData)
	ctx := h.Ctx(id)

	for _, baseId := range data.Bases {
		baseNode, ok := h.Get(baseId)
		if !ok {
			continue
		}
		basePath := baseNode.Data.(hir.SimplePathData)
		target := namesToScope(pc, basePath.Names)

		sym, diagErr := pc.Symbols.LookupUseAware(c.Uses, ctx.Scope, target)
		if diagErr != nil || sym == nil || sym.Kind != symtab.KindTrait {
			pc.Errors.Report(diag.NewUnknownSymbol(baseNode.Span, target.String()))
			continue
		}
		pc.Traits.SetBaseDependency(ctx.DagIdx, sym.DagIdx)
	}
}

// FinalizeTraitDag runs after all edges are set: precompute transitive
// predecessors and check cycles.
func FinalizeTraitDag(pc *passes.Context) {
	pc.Traits.CalculatePredecessors()
	if cycles := pc.Traits.CheckCycles(); len(cycles) > 0 {
		names := make([]string, len(cycles[0]))
		for i, id := range cycles[0] {
			name, _ := pc.Traits.Path(id)
			names[i] = name
		}
		pc.Errors.Report(diag.NewCycle("trait", names))
	}
}
