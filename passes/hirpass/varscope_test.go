package hirpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/span"
	"github.com/xenon-lang/xenonc/varscope"
)

// TestVariableScopeCollectionRecordsDeclarations covers a function with
// two let-statements in its single top-level scope.
func TestVariableScopeCollectionRecordsDeclarations(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()

	letX := h.Add(hir.KindLetStmt, span.Span{}, hir.LetStmtData{Name: "x", Value: hir.InvalidId})
	letY := h.Add(hir.KindLetStmt, span.Span{}, hir.LetStmtData{Name: "y", IsMut: true, Value: hir.InvalidId})
	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{Statements: []hir.Id{letX, letY}})
	fn := h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Body: block})

	(VariableScopeCollection{}).Process(pc, h)

	id := h.Ctx(fn).VarInfoID
	require.NotEqual(t, varscope.InvalidVarInfoId, id)

	info, ok := pc.VarInfo.Get(id)
	require.True(t, ok)
	require.Len(t, info.Scopes, 1)
	require.Len(t, info.Vars, 2)
	assert.Equal(t, "x", info.Vars[0].Name)
	assert.Equal(t, "y", info.Vars[1].Name)
	assert.True(t, info.Vars[1].IsMut)
	assert.Nil(t, info.Vars[0].ShadowSpan)
}

// TestVariableScopeCollectionTracksShadowing covers the shadow-span
// requirement: a second declaration of the same name in the same scope
// sets the earlier entry's ShadowSpan rather than replacing it.
func TestVariableScopeCollectionTracksShadowing(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()

	firstSpan := span.Span{Start: 10, End: 11}
	secondSpan := span.Span{Start: 20, End: 21}

	first := h.Add(hir.KindLetStmt, firstSpan, hir.LetStmtData{Name: "x", Value: hir.InvalidId})
	second := h.Add(hir.KindLetStmt, secondSpan, hir.LetStmtData{Name: "x", Value: hir.InvalidId})
	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{Statements: []hir.Id{first, second}})
	fn := h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Body: block})

	(VariableScopeCollection{}).Process(pc, h)

	info, ok := pc.VarInfo.Get(h.Ctx(fn).VarInfoID)
	require.True(t, ok)
	require.Len(t, info.Vars, 2)
	require.NotNil(t, info.Vars[0].ShadowSpan)
	assert.Equal(t, secondSpan, *info.Vars[0].ShadowSpan)
	assert.Nil(t, info.Vars[1].ShadowSpan)
}

// TestVariableScopeCollectionRecordsParameters: a
// function's own parameters must be recorded as variable entries in its
// top-level scope, before the body's own lets.
func TestVariableScopeCollectionRecordsParameters(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()

	param := h.Add(hir.KindParam, span.Span{}, hir.ParamData{Name: "x", Type: hir.InvalidId})
	letY := h.Add(hir.KindLetStmt, span.Span{}, hir.LetStmtData{Name: "y", Value: hir.InvalidId})
	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{Statements: []hir.Id{letY}})
	fn := h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Params: []hir.Id{param}, Body: block})

	(VariableScopeCollection{}).Process(pc, h)

	info, ok := pc.VarInfo.Get(h.Ctx(fn).VarInfoID)
	require.True(t, ok)
	require.Len(t, info.Vars, 2)
	assert.Equal(t, "x", info.Vars[0].Name, "parameter recorded before the body's own lets")
	assert.Equal(t, "y", info.Vars[1].Name)
	assert.Equal(t, info.Vars[0].ScopeID, info.Vars[1].ScopeID, "parameter lives in the function's top scope")
}

// TestVariableScopeCollectionParameterShadowedByLet covers the
// shadowing direction: a let in the body that reuses a
// parameter's name shadows the parameter, since the parameter is in
// scope first.
func TestVariableScopeCollectionParameterShadowedByLet(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()

	letSpan := span.Span{Start: 5, End: 6}
	param := h.Add(hir.KindParam, span.Span{}, hir.ParamData{Name: "x", Type: hir.InvalidId})
	letX := h.Add(hir.KindLetStmt, letSpan, hir.LetStmtData{Name: "x", Value: hir.InvalidId})
	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{Statements: []hir.Id{letX}})
	fn := h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Params: []hir.Id{param}, Body: block})

	(VariableScopeCollection{}).Process(pc, h)

	info, ok := pc.VarInfo.Get(h.Ctx(fn).VarInfoID)
	require.True(t, ok)
	require.Len(t, info.Vars, 2)
	require.NotNil(t, info.Vars[0].ShadowSpan)
	assert.Equal(t, letSpan, *info.Vars[0].ShadowSpan)
	assert.Nil(t, info.Vars[1].ShadowSpan)
}

// TestVariableScopeCollectionSkipsBodylessFunction covers a trait
// function with no default body (hir.InvalidId), which must not be
// assigned a VarInfoId.
func TestVariableScopeCollectionSkipsBodylessFunction(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()

	fn := h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Body: hir.InvalidId})

	(VariableScopeCollection{}).Process(pc, h)

	assert.Equal(t, varscope.InvalidVarInfoId, h.Ctx(fn).VarInfoID)
}
