package astpass

import (
	"strings"

	"github.com/xenon-lang/xenonc/ast"
	"github.com/xenon-lang/xenonc/diag"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/precedence"
	"github.com/xenon-lang/xenonc/scope"
	"github.com/xenon-lang/xenonc/symtab"
)

// pathSegments resolves a KindSimplePath node's interned names back to
// plain strings via the shared name table.
func pathSegments(pc *passes.Context, store *ast.Store, id ast.NodeId) []string {
	node, ok := store.Get(id)
	if !ok || node.Kind != ast.KindSimplePath {
		return nil
	}
	data := node.Data.(ast.SimplePathData)
	segs := make([]string, 0, len(data.Names))
	for _, nid := range data.Names {
		s, ok := pc.Names.Get(nid)
		if !ok {
			s = "<unknown>"
		}
		segs = append(segs, s)
	}
	return segs
}

// simplePathString joins a KindSimplePath node's names with '.', the same
// separator scope.Scope.String() uses, so a joined path and a Scope's
// String() compare equal for diagnostics and map keys.
func simplePathString(pc *passes.Context, store *ast.Store, id ast.NodeId) string {
	return strings.Join(pathSegments(pc, store, id), ".")
}

// PrecedenceImportCollector: a top-level-only `precedence use <path>;`
// registers a new precedence DAG node and symbol under the imported
// name, so later higher_than/lower_than references within this package
// can name it like any locally declared precedence.
func PrecedenceImportCollector(pc *passes.Context, store *ast.Store, actx *ast.Context, roots []ast.NodeId) {
	walkUseItems(store, actx, roots, func(node ast.Node, ctx *ast.ContextNode) {
		if node.Kind != ast.KindPrecedenceUse {
			return
		}
		data := node.Data.(ast.PrecedenceUseData)
		if !ctx.TopLevel {
			pc.Errors.Report(diag.NewNotTopLevel(node.Meta.Span, simplePathString(pc, store, data.Path), "precedence use"))
			return
		}
		name := lastPathSegment(pc, store, data.Path)
		if name == "" {
			return
		}
		if _, ok := pc.Symbols.GetSymbol(scope.Scope{}, name); ok {
			return // already declared or imported locally; re-import is a no-op
		}
		dagID := pc.Precedence.AddPrecedence(name)
		pc.Symbols.AddPrecedence(scope.Scope{}, name, dagID, symtab.OrderUser, precedence.AssocNone)
	})
}

// walkUseItems visits every item reachable from roots (recursing into
// module bodies so nested op-use/precedence-use items are still found
// and flagged NotTopLevel), invoking fn on each.
func walkUseItems(store *ast.Store, actx *ast.Context, ids []ast.NodeId, fn func(ast.Node, *ast.ContextNode)) {
	for _, id := range ids {
		node, ok := store.Get(id)
		if !ok {
			continue
		}
		fn(node, actx.At(id))
		if node.Kind == ast.KindModule {
			data := node.Data.(ast.ModuleData)
			walkUseItems(store, actx, data.Items, fn)
		}
	}
}

// OperatorImportCollector: a
// top-level-only `op use <path>;` re-keys any operator-precedence side
// entry already recorded for that trait path (by OperatorSymGen having
// processed the trait's own declaration earlier in the shared Context,
// e.g. a prior compiler.Core.Analyze call over the same package) under
// the import's group-qualified LibraryPath, so code built for a group
// address can find it without knowing the trait's bare declaration path.
func OperatorImportCollector(pc *passes.Context, store *ast.Store, actx *ast.Context, roots []ast.NodeId) {
	walkUseItems(store, actx, roots, func(node ast.Node, ctx *ast.ContextNode) {
		if node.Kind != ast.KindOperatorUse {
			return
		}
		data := node.Data.(ast.OperatorUseData)
		traitPath := simplePathString(pc, store, data.Path)
		if !ctx.TopLevel {
			pc.Errors.Report(diag.NewNotTopLevel(node.Meta.Span, traitPath, "op use"))
			return
		}
		if traitPath == "" {
			return
		}
		lp := optable.LibraryPath{Group: data.Group, Library: lastPathSegment(pc, store, data.Path)}
		if existing, ok := pc.Operators.TraitPrecedences[traitPath]; ok {
			pc.Operators.AddTraitPrecedence(lp.String(), existing)
		}
	})
}

func lastPathSegment(pc *passes.Context, store *ast.Store, id ast.NodeId) string {
	segs := pathSegments(pc, store, id)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}
