// Command xenonc is the CLI driver: it analyses one package's fixture
// (see fixture.go) through compiler.Core and writes the requested dump
// artifacts via afs.Service, so targets can be local paths or any
// afs-supported URL without touching os directly.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/xenon-lang/xenonc/compiler"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/prettyprint"
)

// dumpFlags is the one-boolean-flag-per-artifact surface, restricted to
// the artifacts this module can produce: it has no lexer or parser, so
// there is no token-listing or parse-output dump.
type dumpFlags struct {
	hir, symbols, precedence, traits, operators bool
	types, use, varScopes, errors, timings      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xenonc:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		input, out, group, pkgName, library string
		flags                               dumpFlags
	)

	cmd := &cobra.Command{
		Use:   "xenonc",
		Short: "Analyse a xenon package fixture and dump its semantic-analysis artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), runOptions{
				input:   input,
				out:     out,
				group:   group,
				pkg:     pkgName,
				library: library,
				dumps:   flags,
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&input, "input", "", "fixture YAML file path or afs URL to analyse")
	f.StringVar(&out, "out", ".", "output directory path or afs URL for dump artifacts")
	f.StringVar(&pkgName, "package", "", "package name being analysed")
	f.StringVar(&group, "group", "", "default group for op-use/precedence-use items that omit one")
	f.StringVar(&library, "library", "", "library name for cross-library addressing")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("package")

	f.BoolVar(&flags.hir, "dump-hir", false, "dump lowered HIR nodes")
	f.BoolVar(&flags.symbols, "dump-symbols", false, "dump the symbol table")
	f.BoolVar(&flags.precedence, "dump-precedence", false, "dump the precedence DAG")
	f.BoolVar(&flags.traits, "dump-traits", false, "dump the trait DAG")
	f.BoolVar(&flags.operators, "dump-operators", false, "dump the operator table")
	f.BoolVar(&flags.types, "dump-types", false, "dump the interned type registry")
	f.BoolVar(&flags.use, "dump-use", false, "dump the use table")
	f.BoolVar(&flags.varScopes, "dump-var-scopes", false, "dump per-function variable scopes")
	f.BoolVar(&flags.errors, "dump-errors", false, "dump reported diagnostics")
	f.BoolVar(&flags.timings, "dump-timings", false, "dump per-stage wall-clock timings")

	return cmd
}

type runOptions struct {
	input, out, group, pkg, library string
	dumps                           dumpFlags
}

// run loads the fixture at opts.input, drives it through compiler.Core,
// and uploads every artifact opts.dumps selects to opts.out.
func run(ctx context.Context, opts runOptions) error {
	fs := afs.New()

	data, err := fs.DownloadWithURL(ctx, opts.input)
	if err != nil {
		return fmt.Errorf("reading fixture %s: %w", opts.input, err)
	}
	pkg, err := ParseFixture(data)
	if err != nil {
		return err
	}

	core := compiler.NewCore()
	pc := core.Context()

	libPath := optable.LibraryPath{Group: opts.group, Package: opts.pkg, Library: opts.library}
	store, roots := BuildStore(pc, pkg, opts.group)

	declaringFile := pkg.DeclaringFile
	if declaringFile == "" {
		declaringFile = opts.input
	}
	unit := core.Analyze(store, declaringFile, roots)
	core.Finalize()

	fmt.Fprintf(os.Stderr, "xenonc: analysed %s (%d hir nodes)\n", libPath.String(), unit.Hir.Len())
	if pc.Errors.HasErrors() {
		for _, line := range pc.Errors.Render() {
			fmt.Fprintln(os.Stderr, "xenonc:", line)
		}
	}

	artifacts, err := collectArtifacts(core, unit, opts.dumps)
	if err != nil {
		return err
	}
	for name, content := range artifacts {
		dest := path.Join(opts.out, name)
		if err := fs.Upload(ctx, dest, 0644, bytes.NewReader(content)); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
	}
	return nil
}

// collectArtifacts renders every dump artifact opts.dumps selects, keyed
// by output file name.
func collectArtifacts(core *compiler.Core, unit *compiler.Unit, dumps dumpFlags) (map[string][]byte, error) {
	pc := unit.PC
	out := make(map[string][]byte)

	renderers := []struct {
		enabled bool
		name    string
		render  func() ([]byte, error)
	}{
		{dumps.hir, "hir.yaml", func() ([]byte, error) { return prettyprint.DumpHir(unit.Hir) }},
		{dumps.symbols, "symbols.yaml", func() ([]byte, error) { return prettyprint.DumpSymbols(pc) }},
		{dumps.precedence, "precedence.yaml", func() ([]byte, error) { return prettyprint.DumpPrecedence(pc) }},
		{dumps.traits, "traits.yaml", func() ([]byte, error) { return prettyprint.DumpTraits(pc) }},
		{dumps.operators, "operators.yaml", func() ([]byte, error) {
			return prettyprint.DumpOperators(pc, pc.Operators.All())
		}},
		{dumps.types, "types.yaml", func() ([]byte, error) { return prettyprint.DumpTypes(pc) }},
		{dumps.use, "use.yaml", func() ([]byte, error) { return prettyprint.DumpUses(pc) }},
		{dumps.errors, "errors.yaml", func() ([]byte, error) { return prettyprint.DumpErrors(pc) }},
		{dumps.timings, "timings.yaml", func() ([]byte, error) { return prettyprint.DumpTimings(core.Timings()) }},
	}
	for _, r := range renderers {
		if !r.enabled {
			continue
		}
		content, err := r.render()
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", r.name, err)
		}
		out[r.name] = content
	}

	if dumps.varScopes {
		content, err := prettyprint.DumpVarScopes(pc, unit.Hir)
		if err != nil {
			return nil, fmt.Errorf("rendering var-scopes.yaml: %w", err)
		}
		out["var-scopes.yaml"] = content
	}
	return out, nil
}
