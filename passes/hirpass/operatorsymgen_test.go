package hirpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/span"
)

// TestOperatorSymGenRegistersOpSetAndOperators: an
// operator trait with one infix punctuation function must gain an OpSet
// symbol, an Operator symbol, and an entry in the operator table.
func TestOperatorSymGenRegistersOpSetAndOperators(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()

	fn := h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{
		Name: "add", Fixity: int(optable.Infix), Punctuation: "+",
	})
	trait := h.Add(hir.KindTrait, span.Span{}, hir.TraitData{
		Name: "Add", IsOperator: true, Functions: []hir.Id{fn},
	})

	(OperatorSymGen{}).Process(pc, h)

	opSet, ok := pc.Symbols.GetSymbol(h.Ctx(trait).Scope, "Add")
	require.True(t, ok)
	assert.Equal(t, "Add", opSet.Name)

	punctId := pc.Punctuation.Add("+")
	info, ok := pc.Operators.Get(optable.Infix, punctId)
	require.True(t, ok)
	assert.Equal(t, optable.Infix, info.Fixity)
	assert.Equal(t, "add", info.FunctionName)
}

// TestOperatorSymGenSkipsNonOperatorTraits covers the common case: a
// plain trait must not register an OpSet symbol.
func TestOperatorSymGenSkipsNonOperatorTraits(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()

	trait := h.Add(hir.KindTrait, span.Span{}, hir.TraitData{Name: "Display"})

	(OperatorSymGen{}).Process(pc, h)

	_, ok := pc.Symbols.GetSymbol(h.Ctx(trait).Scope, "Display")
	assert.False(t, ok)
}
