package hirpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/span"
	"github.com/xenon-lang/xenonc/symtab"
	"github.com/xenon-lang/xenonc/typesys"
)

// TestExplicitTypeGenPrimitive covers the base case: a primitive type
// node gains an interned type handle.
func TestExplicitTypeGenPrimitive(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()
	uses := symtab.NewUseTable()

	prim := h.Add(hir.KindTypePrimitive, span.Span{}, hir.TypePrimitiveData{Kind: typesys.I32})
	param := h.Add(hir.KindParam, span.Span{}, hir.ParamData{Name: "x", Type: prim})
	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{})
	h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Params: []hir.Id{param}, Body: block})

	(ExplicitTypeGen{Uses: uses}).Process(pc, h)

	require.NotNil(t, h.Ctx(prim).Ty)
	assert.Empty(t, pc.Errors.Errors())
}

// TestExplicitTypeGenIdempotent covers the run-twice-same-identity
// property: a node whose ty is already set must not be regenerated (the
// same *typesys.TypeHandle pointer comes back).
func TestExplicitTypeGenIdempotent(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()
	uses := symtab.NewUseTable()

	prim := h.Add(hir.KindTypePrimitive, span.Span{}, hir.TypePrimitiveData{Kind: typesys.Bool})
	param := h.Add(hir.KindParam, span.Span{}, hir.ParamData{Name: "x", Type: prim})
	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{})
	h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Params: []hir.Id{param}, Body: block})

	gen := ExplicitTypeGen{Uses: uses}
	gen.Process(pc, h)
	first := h.Ctx(prim).Ty

	gen.Process(pc, h)
	second := h.Ctx(prim).Ty

	assert.Same(t, first, second)
}

// TestExplicitTypeGenTupleComposesElements covers post-order composition:
// a tuple type's element handles must already be set by the time the
// tuple itself is interned.
func TestExplicitTypeGenTupleComposesElements(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()
	uses := symtab.NewUseTable()

	a := h.Add(hir.KindTypePrimitive, span.Span{}, hir.TypePrimitiveData{Kind: typesys.I32})
	b := h.Add(hir.KindTypePrimitive, span.Span{}, hir.TypePrimitiveData{Kind: typesys.Bool})
	tuple := h.Add(hir.KindTypeTuple, span.Span{}, hir.TypeTupleData{Elements: []hir.Id{a, b}})
	param := h.Add(hir.KindParam, span.Span{}, hir.ParamData{Name: "x", Type: tuple})
	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{})
	h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Params: []hir.Id{param}, Body: block})

	(ExplicitTypeGen{Uses: uses}).Process(pc, h)

	require.NotNil(t, h.Ctx(tuple).Ty)
	require.NotNil(t, h.Ctx(a).Ty)
	require.NotNil(t, h.Ctx(b).Ty)
}

// TestExplicitTypeGenImplMethodNotDoubleDispatched covers the
// KindImpl/KindFunction overlap: an impl method's hir.Id is reachable
// both from the flat store scan and from its owning Impl's own
// ImplData.Functions, so Process must dispatch it exactly once rather
// than fanning it out from two concurrent goroutines at once.
func TestExplicitTypeGenImplMethodNotDoubleDispatched(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()
	uses := symtab.NewUseTable()

	prim := h.Add(hir.KindTypePrimitive, span.Span{}, hir.TypePrimitiveData{Kind: typesys.I32})
	param := h.Add(hir.KindParam, span.Span{}, hir.ParamData{Name: "rhs", Type: prim})
	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{})
	method := h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{
		Name: "+", Role: hir.RoleImplFunction, Params: []hir.Id{param}, Body: block,
	})
	target := h.Add(hir.KindTypeUnit, span.Span{}, nil)
	h.Add(hir.KindImpl, span.Span{}, hir.ImplData{Target: target, Functions: []hir.Id{method}})

	(ExplicitTypeGen{Uses: uses}).Process(pc, h)

	require.NotNil(t, h.Ctx(prim).Ty, "impl method's own param type must still be generated via the Impl branch")
	require.NotNil(t, h.Ctx(target).Ty)
	assert.Empty(t, pc.Errors.Errors())
}
