// Package compiler provides the semantic-analysis facade the fixed pass
// sequence is driven through: one call takes a parsed AST and a
// declaring file path and returns a fully analysed HIR plus every table
// the pass sequence populated. Callers never replicate the pass
// ordering themselves.
package compiler

import (
	"time"

	"github.com/xenon-lang/xenonc/ast"
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/passes/astpass"
	"github.com/xenon-lang/xenonc/passes/hirpass"
)

// Unit is the result of analysing one AST: the lowered HIR store, its
// root ids (same order as the input roots), and the shared pass context
// holding every populated table (symbols, precedence/trait DAGs, operator
// table, type registry, variable-scope map).
type Unit struct {
	Hir   *hir.Store
	Roots []hir.Id
	PC    *passes.Context
}

// Core drives the fixed semantic-analysis sequence over one or more
// ASTs sharing a single symbol table, so one package's modules share one
// hierarchical scope tree.
type Core struct {
	pc      *passes.Context
	units   []*Unit
	timings []passes.PassTiming
}

// NewCore returns a Core with a fresh, empty Context — one Core instance
// corresponds to one package-level analysis run.
func NewCore() *Core {
	return &Core{pc: passes.NewContext()}
}

// Context returns the shared pass context, so a caller (the CLI driver,
// prettyprint) can inspect the populated tables after Analyze.
func (c *Core) Context() *passes.Context { return c.pc }

// Timings returns the wall-clock duration of every stage run so far
// across all Analyze/Finalize calls against this Core, in run order,
// for `--dump-timings`.
func (c *Core) Timings() []passes.PassTiming { return c.timings }

func (c *Core) timeStage(name string, fn func()) {
	start := time.Now()
	fn()
	c.timings = append(c.timings, passes.PassTiming{Name: name, Duration: time.Since(start)})
}

// Analyze runs the pass sequence up to explicit type generation over
// one parsed AST's roots, declared in declaringFile, and returns the
// resulting Unit. Calling Analyze more than once against the same Core
// lets several modules in the same package share one symbol table and
// one precedence/trait DAG. The DAGs can only close once the whole
// package's modules have all been analysed, so the closure-dependent
// tail of the sequence runs in Finalize.
func (c *Core) Analyze(store *ast.Store, declaringFile string, roots []ast.NodeId) *Unit {
	actx := ast.NewContext(len(store.Nodes))

	c.timeStage("context-setup", func() { astpass.ContextSetup(store, actx, roots) })
	c.timeStage("resolve-module-attributes", func() {
		astpass.ResolveModuleAttributes(c.pc, store, actx, roots, declaringFile)
	})
	c.timeStage("generate-module-symbols", func() { astpass.GenerateModuleSymbols(c.pc, store, actx, roots) })
	// op/precedence imports are legal only at the library root, so they
	// run here, before lowering, alongside the rest of the AST-level
	// setup.
	c.timeStage("precedence-import-collector", func() {
		astpass.PrecedenceImportCollector(c.pc, store, actx, roots)
	})
	c.timeStage("operator-import-collector", func() {
		astpass.OperatorImportCollector(c.pc, store, actx, roots)
	})

	var h *hir.Store
	var hirRoots []hir.Id
	c.timeStage("lowering", func() {
		lowering := astpass.NewLowering(store, actx)
		h, hirRoots = lowering.Lower(roots)
	})

	uses := c.pc.Uses

	sequence := []passes.Pass{
		hirpass.OperatorSymGen{},
		hirpass.PrecedenceSymGen{},
		hirpass.PrecedenceConnect{},
		hirpass.TraitDagGen{},
		hirpass.TraitDagConnect{Uses: uses},
		hirpass.SimplePathGen{},
		hirpass.ExplicitTypeGen{Uses: uses},
	}
	c.timings = append(c.timings, passes.RunTimed(c.pc, h, sequence)...)

	unit := &Unit{Hir: h, Roots: hirRoots, PC: c.pc}
	c.units = append(c.units, unit)
	return unit
}

// Finalize runs precedence and trait DAG completion, transitive-closure
// precompute, and cycle checking, then the two passes that need the
// closed precedence DAG: operator reorder (skipped entirely when the
// precedence DAG has a cycle, since its order queries are meaningless
// then) and variable-scope collection, over every unit analysed so far.
// Call it once, after every module sharing this Core's Context has been
// analysed.
func (c *Core) Finalize() {
	ordered := false
	c.timeStage("finalize-precedence-dag", func() { ordered = hirpass.FinalizePrecedenceDag(c.pc) })
	c.timeStage("finalize-trait-dag", func() { hirpass.FinalizeTraitDag(c.pc) })

	if ordered {
		c.timeStage("operator-reorder", func() {
			for _, u := range c.units {
				hirpass.OperatorReorder{}.Process(c.pc, u.Hir)
			}
		})
	}
	c.timeStage("variable-scope-collection", func() {
		for _, u := range c.units {
			hirpass.VariableScopeCollection{}.Process(c.pc, u.Hir)
		}
	})
}
