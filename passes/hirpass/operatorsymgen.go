// Package hirpass implements the HIR-side pass sequence:
// operator set/symbol generation, precedence
// symbol generation/connection/completion/closure/cycle-check, trait DAG
// generation/closure/cycle-check, simple-path generation, explicit type
// generation, operator reorder, and variable scope collection.
package hirpass

import (
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/passes"
)

// OperatorSymGen: for every operator trait (TraitData.IsOperator),
// register an OpSet symbol and one Operator symbol per punctuation-named
// function, and populate the operator table so later operator-reorder
// lookups succeed.
type OperatorSymGen struct{}

func (OperatorSymGen) Name() string { return "operator-symgen" }

func (OperatorSymGen) VisitFlags() passes.VisitFlags { return passes.VisitTrait }

func (p OperatorSymGen) Process(pc *passes.Context, h *hir.Store) {
	passes.Walk(p, pc, h)
}

func (OperatorSymGen) Visit(pc *passes.Context, h *hir.Store, id hir.Id) {
	node, ok := h.Get(id)
	if !ok {
		return
	}
	data := node.Data.(hir.TraitData)
	if !data.IsOperator {
		return
	}
	ctx := h.Ctx(id)
	traitScope := ctx.Scope.PushName(data.Name)

	if _, ok := pc.Symbols.AddOpSet(ctx.Scope, data.Name); !ok {
		return
	}

	for _, fnId := range data.Functions {
		fnNode, ok := h.Get(fnId)
		if !ok {
			continue
		}
		fn := fnNode.Data.(hir.FunctionData)
		if fn.Punctuation == "" {
			continue
		}
		fixity := optable.Fixity(fn.Fixity)
		pc.Symbols.AddOperator(ctx.Scope, fn.Punctuation, fixity, fn.Punctuation)

		punctId := pc.Punctuation.Add(fn.Punctuation)
		pc.Operators.Add(optable.OperatorInfo{
			Fixity:       fixity,
			Punctuation:  punctId,
			TraitPath:    traitScope.String(),
			FunctionName: fn.Name,
		})
	}
}
