// Package astpass implements the AST-side pass sequence run before HIR
// lowering: context setup, module attribute resolution, module symbol
// generation, and AST->HIR lowering itself.
//
// These operate on ast.Store/ast.Context rather than the hir.Store the
// passes.Pass interface is built around (ast and hir are different node
// stores), so this package exposes plain functions instead of
// passes.Pass implementations.
package astpass

import (
	"github.com/xenon-lang/xenonc/ast"
	"github.com/xenon-lang/xenonc/scope"
)

// ContextSetup seeds every AST node's ContextNode with its enclosing
// Scope, its TopLevel flag (false once inside any mod node), and, for
// Precedence nodes, the IsHighestPrec/IsLowestPrec flags the precedence
// pass family consumes later.
func ContextSetup(store *ast.Store, actx *ast.Context, roots []ast.NodeId) {
	walkItems(store, actx, roots, scope.Scope{}, true)
}

func walkItems(store *ast.Store, actx *ast.Context, ids []ast.NodeId, cur scope.Scope, topLevel bool) {
	for _, id := range ids {
		walkItem(store, actx, id, cur, topLevel)
	}
}

func walkItem(store *ast.Store, actx *ast.Context, id ast.NodeId, cur scope.Scope, topLevel bool) {
	if id == ast.InvalidNodeId {
		return
	}
	node, ok := store.Get(id)
	if !ok {
		return
	}
	ctx := actx.At(id)
	ctx.Scope = cur
	ctx.TopLevel = topLevel

	switch node.Kind {
	case ast.KindModule:
		data := node.Data.(ast.ModuleData)
		childScope := cur.PushName(data.Name)
		walkItems(store, actx, data.Items, childScope, false)
	case ast.KindPrecedence:
		data := node.Data.(ast.PrecedenceData)
		ctx.IsHighestPrec = data.IsHighest
		ctx.IsLowestPrec = data.IsLowest
	case ast.KindTrait:
		data := node.Data.(ast.TraitData)
		traitScope := cur.PushName(data.Name)
		for _, fn := range data.Functions {
			walkItem(store, actx, fn, traitScope, false)
		}
	case ast.KindImpl:
		data := node.Data.(ast.ImplData)
		for _, fn := range data.Functions {
			walkItem(store, actx, fn, cur, false)
		}
	case ast.KindFunction:
		data := node.Data.(ast.FunctionData)
		if data.Body != ast.InvalidNodeId {
			walkItem(store, actx, data.Body, cur, false)
		}
	}
}
