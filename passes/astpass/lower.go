package astpass

import (
	"github.com/xenon-lang/xenonc/ast"
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/intern"
	"github.com/xenon-lang/xenonc/typesys"
)

// Lowering walks the AST and produces HIR nodes in topological order:
// contexts start empty here and are filled by
// the HIR pass sequence that follows. A node-id cache makes Lower
// idempotent if the same ast.NodeId is reachable from more than one
// parent (shared SimplePath nodes, for instance).
type Lowering struct {
	store *ast.Store
	actx  *ast.Context
	hir   *hir.Store
	cache map[ast.NodeId]hir.Id
}

// NewLowering returns a lowering session over store, building into a
// fresh hir.Store. actx supplies the context-setup annotations (scope,
// top-level flag, precedence sentinel flags, module path) copied onto
// each lowered node's hir.Context so later HIR passes don't need to
// re-derive them from scratch.
func NewLowering(store *ast.Store, actx *ast.Context) *Lowering {
	return &Lowering{store: store, actx: actx, hir: hir.NewStore(), cache: make(map[ast.NodeId]hir.Id)}
}

// Lower lowers every root and returns the populated HIR store plus the
// lowered root ids in the same order.
func (l *Lowering) Lower(roots []ast.NodeId) (*hir.Store, []hir.Id) {
	out := make([]hir.Id, 0, len(roots))
	for _, id := range roots {
		out = append(out, l.node(id))
	}
	return l.hir, out
}

func (l *Lowering) nodes(ids []ast.NodeId) []hir.Id {
	out := make([]hir.Id, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.node(id))
	}
	return out
}

// node lowers a single ast.NodeId, memoised, returning hir.InvalidId for
// ast.InvalidNodeId (an elided optional child).
func (l *Lowering) node(id ast.NodeId) hir.Id {
	if id == ast.InvalidNodeId {
		return hir.InvalidId
	}
	if cached, ok := l.cache[id]; ok {
		return cached
	}
	n, ok := l.store.Get(id)
	if !ok {
		return hir.InvalidId
	}

	var hid hir.Id
	switch n.Kind {
	case ast.KindModule:
		d := n.Data.(ast.ModuleData)
		items := l.nodes(d.Items)
		hid = l.hir.Add(hir.KindModule, n.Meta.Span, hir.ModuleData{Name: d.Name, Items: items})
	case ast.KindPrecedence:
		d := n.Data.(ast.PrecedenceData)
		hid = l.hir.Add(hir.KindPrecedence, n.Meta.Span, hir.PrecedenceData{
			Name: d.Name, HigherThan: d.HigherThan, LowerThan: d.LowerThan,
			IsHighest: d.IsHighest, IsLowest: d.IsLowest, Assoc: d.Assoc,
		})
	case ast.KindTrait:
		d := n.Data.(ast.TraitData)
		bases := l.nodes(d.Bases)
		fns := l.nodes(d.Functions)
		hid = l.hir.Add(hir.KindTrait, n.Meta.Span, hir.TraitData{Name: d.Name, IsOperator: d.IsOperator, Bases: bases, Functions: fns})
	case ast.KindImpl:
		d := n.Data.(ast.ImplData)
		hid = l.hir.Add(hir.KindImpl, n.Meta.Span, hir.ImplData{
			TraitPath: l.node(d.TraitPath), Target: l.node(d.Target), Functions: l.nodes(d.Functions),
		})
	case ast.KindFunction:
		d := n.Data.(ast.FunctionData)
		hid = l.hir.Add(hir.KindFunction, n.Meta.Span, hir.FunctionData{
			Name: d.Name, Role: hir.FunctionRole(d.Role), Params: l.nodes(d.Params), Body: l.node(d.Body),
			Fixity: d.Fixity, Punctuation: d.Punctuation,
		})
	case ast.KindOperatorUse:
		d := n.Data.(ast.OperatorUseData)
		hid = l.hir.Add(hir.KindOperatorUse, n.Meta.Span, hir.OperatorUseData{Path: l.node(d.Path), Group: d.Group})
	case ast.KindPrecedenceUse:
		d := n.Data.(ast.PrecedenceUseData)
		hid = l.hir.Add(hir.KindPrecedenceUse, n.Meta.Span, hir.PrecedenceUseData{Path: l.node(d.Path), Group: d.Group})
	case ast.KindSimplePath:
		d := n.Data.(ast.SimplePathData)
		hid = l.hir.Add(hir.KindSimplePath, n.Meta.Span, hir.SimplePathData{Names: append([]intern.NameId(nil), d.Names...)})
	case ast.KindTypeUnit:
		hid = l.hir.Add(hir.KindTypeUnit, n.Meta.Span, nil)
	case ast.KindTypeNever:
		hid = l.hir.Add(hir.KindTypeNever, n.Meta.Span, nil)
	case ast.KindTypePrimitive:
		d := n.Data.(ast.TypePrimitiveData)
		hid = l.hir.Add(hir.KindTypePrimitive, n.Meta.Span, hir.TypePrimitiveData{Kind: typesys.PrimitiveKind(d.Kind)})
	case ast.KindTypeStringSlice:
		d := n.Data.(ast.TypeStringSliceData)
		hid = l.hir.Add(hir.KindTypeStringSlice, n.Meta.Span, hir.TypeStringSliceData{Kind: typesys.StringSliceKind(d.Kind)})
	case ast.KindTypePath:
		d := n.Data.(ast.TypePathData)
		genArgs := make([]hir.GenArg, len(d.GenArgs))
		for i, g := range d.GenArgs {
			genArgs[i] = hir.GenArg{Kind: hir.GenArgKind(g.Kind), Type: l.node(g.Type), Name: g.Name}
		}
		hid = l.hir.Add(hir.KindTypePath, n.Meta.Span, hir.TypePathData{Path: l.node(d.Path), GenArgs: genArgs})
	case ast.KindTypeTuple:
		d := n.Data.(ast.TypeTupleData)
		hid = l.hir.Add(hir.KindTypeTuple, n.Meta.Span, hir.TypeTupleData{Elements: l.nodes(d.Elements)})
	case ast.KindTypeArray:
		d := n.Data.(ast.TypeArrayData)
		hid = l.hir.Add(hir.KindTypeArray, n.Meta.Span, hir.TypeArrayData{Element: l.node(d.Element), SizeExpr: l.node(d.SizeExpr)})
	case ast.KindTypeSlice:
		d := n.Data.(ast.TypeSliceData)
		hid = l.hir.Add(hir.KindTypeSlice, n.Meta.Span, hir.TypeSliceData{Element: l.node(d.Element)})
	case ast.KindTypePointer:
		d := n.Data.(ast.TypePointerData)
		hid = l.hir.Add(hir.KindTypePointer, n.Meta.Span, hir.TypePointerData{Element: l.node(d.Element), IsMulti: d.IsMulti})
	case ast.KindTypeReference:
		d := n.Data.(ast.TypeReferenceData)
		hid = l.hir.Add(hir.KindTypeReference, n.Meta.Span, hir.TypeReferenceData{Element: l.node(d.Element), IsMut: d.IsMut})
	case ast.KindTypeOptional:
		d := n.Data.(ast.TypeOptionalData)
		hid = l.hir.Add(hir.KindTypeOptional, n.Meta.Span, hir.TypeOptionalData{Element: l.node(d.Element)})
	case ast.KindBlock:
		d := n.Data.(ast.BlockData)
		hid = l.hir.Add(hir.KindBlock, n.Meta.Span, hir.BlockData{Statements: l.nodes(d.Statements)})
	case ast.KindLetStmt:
		d := n.Data.(ast.LetStmtData)
		hid = l.hir.Add(hir.KindLetStmt, n.Meta.Span, hir.LetStmtData{Name: d.Name, IsMut: d.IsMut, IsConst: d.IsConst, Type: l.node(d.Type), Value: l.node(d.Value)})
	case ast.KindParam:
		d := n.Data.(ast.ParamData)
		hid = l.hir.Add(hir.KindParam, n.Meta.Span, hir.ParamData{Name: d.Name, Label: d.Label, Type: l.node(d.Type)})
	case ast.KindBinaryExpr:
		d := n.Data.(ast.BinaryExprData)
		hid = l.hir.Add(hir.KindBinaryExpr, n.Meta.Span, hir.BinaryExprData{Operator: d.Operator, Left: l.node(d.Left), Right: l.node(d.Right)})
	case ast.KindIdent:
		d := n.Data.(ast.IdentData)
		hid = l.hir.Add(hir.KindIdent, n.Meta.Span, hir.IdentData{Name: d.Name})
	case ast.KindLiteralExpr:
		d := n.Data.(ast.LiteralExprData)
		hid = l.hir.Add(hir.KindLiteralExpr, n.Meta.Span, hir.LiteralExprData{Literal: d.Literal})
	default:
		hid = l.hir.Add(hir.KindIdent, n.Meta.Span, hir.IdentData{Name: "<unlowered>"})
	}
	l.cache[id] = hid
	l.copyContext(id, hid)
	return hid
}

// copyContext transfers the astpass.ContextSetup/ResolveModuleAttributes
// annotations for id onto hid's freshly-created hir.Context.
func (l *Lowering) copyContext(id ast.NodeId, hid hir.Id) {
	if l.actx == nil || int(id) >= len(l.actx.Nodes) {
		return
	}
	actxNode := l.actx.At(id)
	hctx := l.hir.Ctx(hid)
	hctx.Scope = actxNode.Scope
	hctx.TopLevel = actxNode.TopLevel
	hctx.IsHighestPrec = actxNode.IsHighestPrec
	hctx.IsLowestPrec = actxNode.IsLowestPrec
	if actxNode.ModuleContext != nil {
		hctx.SourcePath = actxNode.ModuleContext.Path
	}
}
