package hirpass

import (
	"golang.org/x/sync/errgroup"

	"github.com/xenon-lang/xenonc/diag"
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/symtab"
	"github.com/xenon-lang/xenonc/typesys"
)

// ExplicitTypeGen fills the ty field on every explicit type node,
// post-order (children before parents, since composing a
// tuple/array/pointer/reference type needs its element handles already
// interned) and idempotently (a node whose ty is already set is
// skipped, so running the pass twice yields identical handle
// identities).
//
// Process fans out across the HIR's independent top-level Function/Impl
// nodes via errgroup, each goroutine only taking typesys.Registry's
// internal write lock for its own Create* calls.
type ExplicitTypeGen struct {
	Uses *symtab.UseTable
}

func (g ExplicitTypeGen) Name() string { return "explicit-type-gen" }

func (g ExplicitTypeGen) VisitFlags() passes.VisitFlags {
	return passes.VisitFunction | passes.VisitImpl
}

func (g ExplicitTypeGen) Process(pc *passes.Context, h *hir.Store) {
	// Impl methods are reachable two ways: the flat store scan below
	// (every lowered function gets its own hir.Id regardless of who
	// lowered it) and the KindImpl branch's own recursive g.Visit over
	// ImplData.Functions. Fanning out both concurrently would call
	// generateType on the same nodes from two goroutines at once, racing
	// the check-then-set on ctx.Ty and the GenArgs.Resolved write in
	// generatePathType. Skip impl-function and method nodes here so each
	// Impl's own goroutine is the sole dispatcher for its Functions.
	var items []hir.Id
	for i := 0; i < h.Len(); i++ {
		node := h.Nodes[i]
		switch node.Kind {
		case hir.KindFunction:
			fd := node.Data.(hir.FunctionData)
			if fd.Role == hir.RoleImplFunction || fd.Role == hir.RoleMethod {
				continue
			}
			items = append(items, node.Id)
		case hir.KindImpl:
			items = append(items, node.Id)
		}
	}

	var eg errgroup.Group
	for _, id := range items {
		id := id
		eg.Go(func() error {
			g.Visit(pc, h, id)
			return nil
		})
	}
	_ = eg.Wait()
}

func (g ExplicitTypeGen) Visit(pc *passes.Context, h *hir.Store, id hir.Id) {
	node, ok := h.Get(id)
	if !ok {
		return
	}
	switch node.Kind {
	case hir.KindFunction:
		data := node.Data.(hir.FunctionData)
		for _, paramId := range data.Params {
			paramNode, ok := h.Get(paramId)
			if !ok {
				continue
			}
			pd := paramNode.Data.(hir.ParamData)
			g.generateType(pc, h, pd.Type)
		}
		g.generateTypesInBlock(pc, h, data.Body)
	case hir.KindImpl:
		data := node.Data.(hir.ImplData)
		g.generateType(pc, h, data.Target)
		for _, fnId := range data.Functions {
			g.Visit(pc, h, fnId)
		}
	}
}

func (g ExplicitTypeGen) generateTypesInBlock(pc *passes.Context, h *hir.Store, blockId hir.Id) {
	node, ok := h.Get(blockId)
	if !ok {
		return
	}
	data, ok := node.Data.(hir.BlockData)
	if !ok {
		return
	}
	for _, stmtId := range data.Statements {
		stmtNode, ok := h.Get(stmtId)
		if !ok {
			continue
		}
		if let, ok := stmtNode.Data.(hir.LetStmtData); ok {
			g.generateType(pc, h, let.Type)
		}
	}
}

// generateType is the idempotent, post-order type-node visitor,
// returning the interned handle (or nil for InvalidId / unrecognised
// node).
func (g ExplicitTypeGen) generateType(pc *passes.Context, h *hir.Store, id hir.Id) *typesys.TypeHandle {
	if id == hir.InvalidId {
		return nil
	}
	ctx := h.Ctx(id)
	if ctx.Ty != nil {
		return ctx.Ty
	}
	node, ok := h.Get(id)
	if !ok {
		return nil
	}

	var ty *typesys.TypeHandle
	switch node.Kind {
	case hir.KindTypeUnit:
		ty = pc.Types.CreateUnitType()
	case hir.KindTypeNever:
		ty = pc.Types.CreateNeverType()
	case hir.KindTypePrimitive:
		data := node.Data.(hir.TypePrimitiveData)
		ty = pc.Types.CreatePrimitiveType(data.Kind)
	case hir.KindTypeStringSlice:
		data := node.Data.(hir.TypeStringSliceData)
		ty = pc.Types.CreateStringSliceType(data.Kind)
	case hir.KindTypeTuple:
		data := node.Data.(hir.TypeTupleData)
		elems := make([]*typesys.TypeHandle, len(data.Elements))
		for i, e := range data.Elements {
			elems[i] = g.generateType(pc, h, e)
		}
		ty = pc.Types.CreateTupleType(elems)
	case hir.KindTypeArray:
		data := node.Data.(hir.TypeArrayData)
		elem := g.generateType(pc, h, data.Element)
		// Size comes from the length expression; this pass interns with a
		// nil size and a later pass repoints the handle via SetResolved
		// once the length expression is evaluated.
		ty = pc.Types.CreateArrayType(elem, nil)
	case hir.KindTypeSlice:
		data := node.Data.(hir.TypeSliceData)
		elem := g.generateType(pc, h, data.Element)
		ty = pc.Types.CreateSliceType(elem)
	case hir.KindTypePointer:
		data := node.Data.(hir.TypePointerData)
		elem := g.generateType(pc, h, data.Element)
		ty = pc.Types.CreatePointerType(elem, data.IsMulti)
	case hir.KindTypeReference:
		data := node.Data.(hir.TypeReferenceData)
		elem := g.generateType(pc, h, data.Element)
		ty = pc.Types.CreateReferenceType(elem, data.IsMut)
	case hir.KindTypePath:
		ty = g.generatePathType(pc, h, id, node)
	case hir.KindTypeOptional, hir.KindTypeFn, hir.KindTypeClosure:
		// No concrete representation yet; unit stands in.
		ty = pc.Types.CreateUnitType()
	default:
		return nil
	}
	ctx.Ty = ty
	return ty
}

func (g ExplicitTypeGen) generatePathType(pc *passes.Context, h *hir.Store, id hir.Id, node hir.Node) *typesys.TypeHandle {
	data := node.Data.(hir.TypePathData)
	ctx := h.Ctx(id)

	pathNode, ok := h.Get(data.Path)
	pathCtx := h.Ctx(data.Path)
	var target string
	if ok {
		simplePathData := pathNode.Data.(hir.SimplePathData)
		if pathCtx.Path.IsEmpty() && len(simplePathData.Names) > 0 {
			pathCtx.Path = namesToScope(pc, simplePathData.Names)
		}
		target = pathCtx.Path.String()
	}

	sym, diagErr := pc.Symbols.LookupUseAware(g.Uses, ctx.Scope, pathCtx.Path)
	if diagErr != nil || sym == nil {
		pc.Errors.Report(diag.NewUnknownSymbol(node.Span, target))
		for i, ga := range data.GenArgs {
			data.GenArgs[i].Resolved = g.resolveGenArg(pc, h, ga)
		}
		return pc.Types.CreateUnitType()
	}

	for i, ga := range data.GenArgs {
		data.GenArgs[i].Resolved = g.resolveGenArg(pc, h, ga)
	}
	return pc.Types.CreatePathType(target)
}

func (g ExplicitTypeGen) resolveGenArg(pc *passes.Context, h *hir.Store, ga hir.GenArg) *typesys.TypeHandle {
	switch ga.Kind {
	case hir.GenArgTypeNode:
		return g.generateType(pc, h, ga.Type)
	case hir.GenArgName:
		return pc.Types.CreatePathType(ga.Name)
	}
	return nil
}
