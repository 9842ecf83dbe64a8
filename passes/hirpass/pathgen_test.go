package hirpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/intern"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/scope"
	"github.com/xenon-lang/xenonc/span"
	"github.com/xenon-lang/xenonc/symtab"
)

func scopeEmpty() scope.Scope { return scope.Scope{} }

func scopeNamed(name string) scope.Scope { return scope.New(scope.NewSegment(name)) }

// TestSimplePathGenPopulatesScope: a SimplePath node's interned names
// must resolve to a matching scope.Scope in its context.
func TestSimplePathGenPopulatesScope(t *testing.T) {
	pc := passes.NewContext()
	h := hir.NewStore()

	foo := pc.Names.Add("foo")
	bar := pc.Names.Add("bar")
	path := h.Add(hir.KindSimplePath, span.Span{}, hir.SimplePathData{Names: []intern.NameId{foo, bar}})

	(SimplePathGen{}).Process(pc, h)

	got := h.Ctx(path).Path
	assert.Equal(t, "foo.bar", got.String())
}

// TestResolveSimplePathFindsDeclaredSymbol covers the use-aware lookup a
// full-path generator performs once SimplePathGen has populated ctx.Path.
func TestResolveSimplePathFindsDeclaredSymbol(t *testing.T) {
	pc := passes.NewContext()
	uses := symtab.NewUseTable()

	_, ok := pc.Symbols.AddTrait(scopeEmpty(), "Thing", "Thing", 0)
	require.True(t, ok)

	sym, diagErr := ResolveSimplePath(pc, uses, scopeEmpty(), scopeNamed("Thing"))
	require.Nil(t, diagErr)
	require.NotNil(t, sym)
	assert.Equal(t, symtab.KindTrait, sym.Kind)
}

// TestResolveSimplePathReportsUnknown covers the failure path: an
// unresolved target must come back as a non-nil diag.Error.
func TestResolveSimplePathReportsUnknown(t *testing.T) {
	pc := passes.NewContext()
	uses := symtab.NewUseTable()

	sym, diagErr := ResolveSimplePath(pc, uses, scopeEmpty(), scopeNamed("Nope"))
	assert.Nil(t, sym)
	require.NotNil(t, diagErr)
}
