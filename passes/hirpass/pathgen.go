package hirpass

import (
	"github.com/xenon-lang/xenonc/diag"
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/intern"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/scope"
	"github.com/xenon-lang/xenonc/symtab"
)

// namesToScope resolves a SimplePathData's interned names into a
// scope.Scope of plain (unparameterised, non-generic) segments, the
// normalised lookup form.
func namesToScope(pc *passes.Context, names []intern.NameId) scope.Scope {
	segs := make([]scope.ScopeSegment, 0, len(names))
	for _, nid := range names {
		s, ok := pc.Names.Get(nid)
		if !ok {
			s = "<unknown>"
		}
		segs = append(segs, scope.NewSegment(s))
	}
	return scope.New(segs...)
}

// SimplePathGen translates a SimplePath HIR node (a sequence of
// NameIds) into a populated Scope in its context.
type SimplePathGen struct{}

func (SimplePathGen) Name() string                       { return "simple-path-gen" }
func (SimplePathGen) VisitFlags() passes.VisitFlags       { return passes.VisitSimplePath }
func (p SimplePathGen) Process(pc *passes.Context, h *hir.Store) { passes.Walk(p, pc, h) }

func (SimplePathGen) Visit(pc *passes.Context, h *hir.Store, id hir.Id) {
	node, ok := h.Get(id)
	if !ok {
		return
	}
	data := node.Data.(hir.SimplePathData)
	h.Ctx(id).Path = namesToScope(pc, data.Names)
}

// ResolveSimplePath is the use-aware lookup a full-path generator
// performs once SimplePathGen has populated ctx.Path: resolve it
// against the symbol table from currentScope, reporting UnknownSymbol on
// failure.
func ResolveSimplePath(pc *passes.Context, uses *symtab.UseTable, currentScope, path scope.Scope) (*symtab.Symbol, *diag.Error) {
	return pc.Symbols.LookupUseAware(uses, currentScope, path)
}
