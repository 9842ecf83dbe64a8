package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/xenon-lang/xenonc/compiler"
	"github.com/xenon-lang/xenonc/prettyprint"
)

// additiveArchive bundles a fixture YAML file and the symbol names it
// must produce in one txtar archive. Keeping the input and its
// expectation in one file avoids inventing a second fixture format on
// top of the YAML one fixture.go already defines.
const additiveArchive = `
-- fixture.yaml --
declaringFile: ops.xn
modules:
  - name: ops
    precedences:
      - name: Additive
        isLowest: true
    traits:
      - name: Addable
        isOperator: true
    impls:
      - target: {kind: primitive, name: i32}
        traitPath: [Addable]
-- expect-symbols --
Additive
Addable
`

// TestFixtureArchiveDrivesAnalysis parses additiveArchive with txtar,
// decodes its fixture.yaml section through ParseFixture/BuildStore, drives
// it through compiler.Core, and checks the rendered symbol-table dump
// contains every name listed in the expect-symbols section.
func TestFixtureArchiveDrivesAnalysis(t *testing.T) {
	arc := txtar.Parse([]byte(additiveArchive))

	var fixtureData, expectData []byte
	for _, f := range arc.Files {
		switch f.Name {
		case "fixture.yaml":
			fixtureData = f.Data
		case "expect-symbols":
			expectData = f.Data
		}
	}
	require.NotNil(t, fixtureData, "fixture.yaml section missing from archive")
	require.NotNil(t, expectData, "expect-symbols section missing from archive")

	pkg, err := ParseFixture(fixtureData)
	require.NoError(t, err)

	core := compiler.NewCore()
	pc := core.Context()
	store, roots := BuildStore(pc, pkg, "")
	unit := core.Analyze(store, pkg.DeclaringFile, roots)
	core.Finalize()

	require.False(t, pc.Errors.HasErrors(), "unexpected errors: %v", pc.Errors.Render())

	dump, err := prettyprint.DumpSymbols(unit.PC)
	require.NoError(t, err)

	for _, name := range strings.Fields(string(expectData)) {
		assert.Contains(t, string(dump), name, "symbol dump missing %q", name)
	}
}
