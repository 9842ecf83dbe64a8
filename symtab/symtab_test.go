package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xenon-lang/xenonc/dag"
	"github.com/xenon-lang/xenonc/scope"
)

func TestModuleNesting(t *testing.T) {
	// mod m { mod n {} }
	r := NewRootSymbolTable()
	_, ok := r.AddModule(scope.New(scope.NewSegment("m")), "m.xn")
	assert.True(t, ok)
	_, ok = r.AddModule(scope.New(scope.NewSegment("m"), scope.NewSegment("n")), "m/n.xn")
	assert.True(t, ok)

	sym, ok := r.Lookup(scope.New(scope.NewSegment("m")))
	assert.True(t, ok)
	assert.Equal(t, KindModule, sym.Kind)

	nested, ok := r.Lookup(scope.New(scope.NewSegment("m"), scope.NewSegment("n")))
	assert.True(t, ok)
	assert.Equal(t, "n", nested.Name)
}

func TestOverloadByParamLabels(t *testing.T) {
	r := NewRootSymbolTable()
	root := scope.Scope{}
	r.AddOpaque(root, "f", []string{"x"}, "function", "f_x")
	r.AddOpaque(root, "f", []string{"y"}, "function", "f_y")

	got, ok := r.GetSymbolWithParams(root, "f", []string{"x"})
	assert.True(t, ok)
	assert.Equal(t, "f_x", got.Opaque)

	got, ok = r.GetSymbolWithParams(root, "f", []string{"y"})
	assert.True(t, ok)
	assert.Equal(t, "f_y", got.Opaque)
}

func TestUnparameterisedFallback(t *testing.T) {
	r := NewRootSymbolTable()
	root := scope.Scope{}
	r.AddOpaque(root, "f", []string{"x"}, "function", "f_x")
	r.AddOpaque(root, "f", nil, "function", "f_plain")

	got, ok := r.GetSymbolWithParams(root, "f", []string{"unknown-combo"})
	assert.True(t, ok)
	assert.Equal(t, "f_plain", got.Opaque, "falls back to the unparameterised entry when present")
}

func TestSingleEntryAlwaysReturnedRegardlessOfParams(t *testing.T) {
	r := NewRootSymbolTable()
	root := scope.Scope{}
	r.AddOpaque(root, "f", []string{"x"}, "function", "only")

	got, ok := r.GetSymbolWithParams(root, "f", []string{"irrelevant"})
	assert.True(t, ok)
	assert.Equal(t, "only", got.Opaque)
}

func TestUseAwareLookupAlias(t *testing.T) {
	// top-level `use x.y.z as w;`, nested `w.f`.
	r := NewRootSymbolTable()
	root := scope.Scope{}
	x := scope.New(scope.NewSegment("x"))
	r.AddModule(x, "x.xn")
	xy := scope.New(scope.NewSegment("x"), scope.NewSegment("y"))
	r.AddModule(xy, "x/y.xn")
	xyz := scope.New(scope.NewSegment("x"), scope.NewSegment("y"), scope.NewSegment("z"))
	r.AddModule(xyz, "x/y/z.xn")
	r.AddOpaque(xyz, "f", nil, "function", "target_f")

	uses := NewUseTable()
	uses.AddAlias(root, "w", xyz)

	nested := scope.New(scope.NewSegment("somewhere"))
	sym, diagErr := r.LookupUseAware(uses, nested, scope.New(scope.NewSegment("w"), scope.NewSegment("f")))
	assert.Nil(t, diagErr)
	assert.NotNil(t, sym)
	assert.Equal(t, "target_f", sym.Opaque)
}

func TestUseAwareLookupGlob(t *testing.T) {
	r := NewRootSymbolTable()
	root := scope.Scope{}
	lib := scope.New(scope.NewSegment("lib"))
	r.AddModule(lib, "lib.xn")
	r.AddOpaque(lib, "helper", nil, "function", "helper_impl")

	uses := NewUseTable()
	uses.AddGlob(root, lib)

	sym, diagErr := r.LookupUseAware(uses, root, scope.New(scope.NewSegment("helper")))
	assert.Nil(t, diagErr)
	assert.Equal(t, "helper_impl", sym.Opaque)
}

func TestUseTableAllCollectsAliasesAndGlobs(t *testing.T) {
	uses := NewUseTable()
	root := scope.Scope{}
	lib := scope.New(scope.NewSegment("lib"))
	uses.AddAlias(root, "w", lib)
	uses.AddGlob(root, lib)

	all := uses.All()
	assert.Len(t, all, 1)
	assert.Equal(t, "lib", all[0].Aliases["w"])
	assert.Equal(t, []string{"lib"}, all[0].Globs)
}

func TestUseAwareLookupUnknownReportsError(t *testing.T) {
	r := NewRootSymbolTable()
	uses := NewUseTable()
	_, diagErr := r.LookupUseAware(uses, scope.Scope{}, scope.New(scope.NewSegment("nope")))
	assert.NotNil(t, diagErr)
}

func TestTraitSymbolStoresDagIdx(t *testing.T) {
	r := NewRootSymbolTable()
	sym, ok := r.AddTrait(scope.Scope{}, "Drawable", "Drawable", dag.Id(3))
	assert.True(t, ok)
	assert.Equal(t, dag.Id(3), sym.DagIdx)
}
