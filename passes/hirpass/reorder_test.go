package hirpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/intern"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/precedence"
	"github.com/xenon-lang/xenonc/span"
)

// wirePrecedence builds a two-tier precedence DAG (mulPrec HigherThan
// addPrec) and registers both punctuation as Infix, left-associative
// operators, constructed directly rather than through operator
// declarations.
func wirePrecedence(pc *passes.Context) (plus, star intern.PunctuationId) {
	addPrec := pc.Precedence.AddPrecedence("add")
	mulPrec := pc.Precedence.AddPrecedence("mul")
	pc.Precedence.SetAssoc(addPrec, precedence.AssocLeft)
	pc.Precedence.SetAssoc(mulPrec, precedence.AssocLeft)
	pc.Precedence.SetOrder(addPrec, mulPrec) // add ranks below mul: mul binds tighter
	pc.Precedence.Complete()
	pc.Precedence.CalculatePredecessors()

	plusId := pc.Punctuation.Add("+")
	starId := pc.Punctuation.Add("*")

	pc.Operators.Add(optable.OperatorInfo{Fixity: optable.Infix, Punctuation: plusId, PrecedenceID: addPrec})
	pc.Operators.Add(optable.OperatorInfo{Fixity: optable.Infix, Punctuation: starId, PrecedenceID: mulPrec})

	return plusId, starId
}

func ident(h *hir.Store, name string) hir.Id {
	return h.Add(hir.KindIdent, span.Span{}, hir.IdentData{Name: name})
}

func binary(h *hir.Store, op intern.PunctuationId, left, right hir.Id) hir.Id {
	return h.Add(hir.KindBinaryExpr, span.Span{}, hir.BinaryExprData{Operator: op, Left: left, Right: right})
}

// TestOperatorReorderLeavesTighterRightChild covers the `a + b * c`
// case: naive parsing produces `+(a, *(b, c))`, which is already
// correctly grouped, so the pass must leave it untouched.
func TestOperatorReorderLeavesTighterRightChild(t *testing.T) {
	pc := passes.NewContext()
	plus, star := wirePrecedence(pc)
	h := hir.NewStore()

	a, b, c := ident(h, "a"), ident(h, "b"), ident(h, "c")
	mul := binary(h, star, b, c)
	root := binary(h, plus, a, mul)

	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{Statements: []hir.Id{root}})
	fn := h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Body: block})
	_ = fn

	(OperatorReorder{}).Process(pc, h)

	blockData := h.Nodes[block].Data.(hir.BlockData)
	require.Len(t, blockData.Statements, 1)
	finalRoot := blockData.Statements[0]
	assert.Equal(t, root, finalRoot)

	finalData := h.Nodes[finalRoot].Data.(hir.BinaryExprData)
	assert.Equal(t, plus, finalData.Operator)
	assert.Equal(t, a, finalData.Left)
	assert.Equal(t, mul, finalData.Right)
}

// TestOperatorReorderRotatesLooserRightChild covers `a * b + c` (the
// mirror of scenario 6): naive parsing produces `*(a, +(b, c))`, which
// must rotate to `+(*(a,b), c)`.
func TestOperatorReorderRotatesLooserRightChild(t *testing.T) {
	pc := passes.NewContext()
	plus, star := wirePrecedence(pc)
	h := hir.NewStore()

	a, b, c := ident(h, "a"), ident(h, "b"), ident(h, "c")
	add := binary(h, plus, b, c)
	root := binary(h, star, a, add)

	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{Statements: []hir.Id{root}})
	h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Body: block})

	(OperatorReorder{}).Process(pc, h)

	blockData := h.Nodes[block].Data.(hir.BlockData)
	finalRoot := blockData.Statements[0]

	finalData := h.Nodes[finalRoot].Data.(hir.BinaryExprData)
	assert.Equal(t, plus, finalData.Operator, "rotated root should be the looser (add) operator")

	leftData := h.Nodes[finalData.Left].Data.(hir.BinaryExprData)
	assert.Equal(t, star, leftData.Operator)
	assert.Equal(t, a, leftData.Left)
	assert.Equal(t, b, leftData.Right)

	assert.Equal(t, c, finalData.Right)
}

// TestOperatorReorderLeftAssociates covers `a + b + c`: naive parsing
// produces `+(a, +(b, c))`, same precedence throughout, which must
// rotate to `+(+(a,b), c)` for left-associativity.
func TestOperatorReorderLeftAssociates(t *testing.T) {
	pc := passes.NewContext()
	plus, _ := wirePrecedence(pc)
	h := hir.NewStore()

	a, b, c := ident(h, "a"), ident(h, "b"), ident(h, "c")
	inner := binary(h, plus, b, c)
	root := binary(h, plus, a, inner)

	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{Statements: []hir.Id{root}})
	h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Body: block})

	(OperatorReorder{}).Process(pc, h)

	blockData := h.Nodes[block].Data.(hir.BlockData)
	finalRoot := blockData.Statements[0]

	finalData := h.Nodes[finalRoot].Data.(hir.BinaryExprData)
	assert.Equal(t, plus, finalData.Operator)
	assert.Equal(t, c, finalData.Right)

	leftData := h.Nodes[finalData.Left].Data.(hir.BinaryExprData)
	assert.Equal(t, plus, leftData.Operator)
	assert.Equal(t, a, leftData.Left)
	assert.Equal(t, b, leftData.Right)
}

// TestOperatorReorderIdempotent asserts a second Process call over an
// already-settled tree changes nothing, relying on NeedsReorder being
// cleared during the first pass.
func TestOperatorReorderIdempotent(t *testing.T) {
	pc := passes.NewContext()
	plus, star := wirePrecedence(pc)
	h := hir.NewStore()

	a, b, c := ident(h, "a"), ident(h, "b"), ident(h, "c")
	add := binary(h, plus, b, c)
	root := binary(h, star, a, add)

	block := h.Add(hir.KindBlock, span.Span{}, hir.BlockData{Statements: []hir.Id{root}})
	h.Add(hir.KindFunction, span.Span{}, hir.FunctionData{Name: "f", Body: block})

	(OperatorReorder{}).Process(pc, h)
	blockData := h.Nodes[block].Data.(hir.BlockData)
	firstRoot := blockData.Statements[0]
	firstData := h.Nodes[firstRoot].Data.(hir.BinaryExprData)

	(OperatorReorder{}).Process(pc, h)
	blockData = h.Nodes[block].Data.(hir.BlockData)
	secondRoot := blockData.Statements[0]
	secondData := h.Nodes[secondRoot].Data.(hir.BinaryExprData)

	assert.Equal(t, firstRoot, secondRoot)
	assert.Equal(t, firstData, secondData)
}
