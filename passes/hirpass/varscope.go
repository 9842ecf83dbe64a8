package hirpass

import (
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/varscope"
)

// VariableScopeCollection: for every function-like HIR node, seed a
// fresh varscope.Builder, walk the body
// recording a scope at the function's top level (and at each nested block,
// though this HIR's statement shape only ever nests one block per
// function body), record every let-statement as a variable declaration in
// its enclosing scope, then intern the finished VariableInfo and store its
// id on the function's own context.
type VariableScopeCollection struct{}

func (VariableScopeCollection) Name() string                 { return "variable-scope-collection" }
func (VariableScopeCollection) VisitFlags() passes.VisitFlags { return passes.VisitFunction }
func (p VariableScopeCollection) Process(pc *passes.Context, h *hir.Store) {
	passes.Walk(p, pc, h)
}

func (p VariableScopeCollection) Visit(pc *passes.Context, h *hir.Store, id hir.Id) {
	node, ok := h.Get(id)
	if !ok {
		return
	}
	data := node.Data.(hir.FunctionData)
	if data.Body == hir.InvalidId {
		return
	}

	b := varscope.NewBuilder()
	p.collectFunctionBody(pc, h, b, data.Params, data.Body)
	info := b.Finish()

	ctx := h.Ctx(id)
	ctx.VarInfoID = pc.VarInfo.Add(info)
}

// collectFunctionBody pushes the function's top-level scope, records
// every parameter as a declaration in it, then walks the body's
// statements the same way collectBlock does for nested blocks.
// Parameters are recorded before the body's
// own statements so a later let of the same name shadows the parameter,
// not the other way around.
func (p VariableScopeCollection) collectFunctionBody(pc *passes.Context, h *hir.Store, b *varscope.Builder, params []hir.Id, bodyId hir.Id) {
	node, ok := h.Get(bodyId)
	if !ok {
		return
	}
	data, ok := node.Data.(hir.BlockData)
	if !ok {
		return
	}

	scopeID := b.PushScope(node.Span)
	defer b.PopScope()

	for _, paramId := range params {
		paramNode, ok := h.Get(paramId)
		if !ok {
			continue
		}
		pd := paramNode.Data.(hir.ParamData)
		b.AddVariable(scopeID, pd.Name, paramNode.Span, false, false, h.Ctx(paramId).Ty)
	}

	p.collectStatements(pc, h, b, scopeID, data.Statements)
}

func (p VariableScopeCollection) collectBlock(pc *passes.Context, h *hir.Store, b *varscope.Builder, blockId hir.Id) {
	node, ok := h.Get(blockId)
	if !ok {
		return
	}
	data, ok := node.Data.(hir.BlockData)
	if !ok {
		return
	}

	scopeID := b.PushScope(node.Span)
	defer b.PopScope()

	p.collectStatements(pc, h, b, scopeID, data.Statements)
}

func (p VariableScopeCollection) collectStatements(pc *passes.Context, h *hir.Store, b *varscope.Builder, scopeID varscope.ScopeId, statements []hir.Id) {
	for _, stmtId := range statements {
		stmtNode, ok := h.Get(stmtId)
		if !ok {
			continue
		}
		switch d := stmtNode.Data.(type) {
		case hir.LetStmtData:
			b.AddVariable(scopeID, d.Name, stmtNode.Span, d.IsMut, d.IsConst, h.Ctx(stmtId).Ty)
		case hir.BlockData:
			_ = d
			p.collectBlock(pc, h, b, stmtId)
		}
	}
}
