package prettyprint

import (
	"gopkg.in/yaml.v3"

	"github.com/xenon-lang/xenonc/dag"
	"github.com/xenon-lang/xenonc/hir"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/symtab"
	"github.com/xenon-lang/xenonc/varscope"
)

// TimingSnapshot is one stage's wall-clock duration for `--dump-timings`.
type TimingSnapshot struct {
	Name        string `yaml:"name"`
	Nanoseconds int64  `yaml:"nanoseconds"`
}

// DumpTimings renders every recorded stage timing, in run order.
func DumpTimings(timings []passes.PassTiming) ([]byte, error) {
	out := make([]TimingSnapshot, 0, len(timings))
	for _, t := range timings {
		out = append(out, TimingSnapshot{Name: t.Name, Nanoseconds: t.Duration.Nanoseconds()})
	}
	return yaml.Marshal(out)
}

// SymbolSnapshot is one symtab.Symbol rendered flat for dumping, with its
// module children (if any) nested under it.
type SymbolSnapshot struct {
	Name     string            `yaml:"name"`
	Kind     string            `yaml:"kind"`
	Children []SymbolSnapshot  `yaml:"children,omitempty"`
	Detail   map[string]string `yaml:"detail,omitempty"`
}

var symbolKindNames = map[symtab.Kind]string{
	symtab.KindModule:     "module",
	symtab.KindPrecedence: "precedence",
	symtab.KindTrait:      "trait",
	symtab.KindOpSet:      "opset",
	symtab.KindOperator:   "operator",
	symtab.KindOpaque:     "opaque",
}

func snapshotSymbol(sym *symtab.Symbol) SymbolSnapshot {
	s := SymbolSnapshot{Name: sym.Name, Kind: symbolKindNames[sym.Kind]}
	switch sym.Kind {
	case symtab.KindModule:
		s.Detail = map[string]string{"filePath": sym.FilePath}
		if sym.SubTable != nil {
			for _, child := range sym.SubTable.All() {
				s.Children = append(s.Children, snapshotSymbol(child))
			}
		}
	case symtab.KindTrait:
		s.Detail = map[string]string{"path": sym.Path}
	case symtab.KindOperator:
		s.Detail = map[string]string{"punctuation": sym.Punctuation}
	}
	return s
}

// DumpSymbols renders the `--dump-symbols` artifact: the whole
// root symbol table as nested YAML, modules recursed into via their
// sub-tables.
func DumpSymbols(pc *passes.Context) ([]byte, error) {
	var roots []SymbolSnapshot
	for _, sym := range pc.Symbols.RootTable().All() {
		roots = append(roots, snapshotSymbol(sym))
	}
	return yaml.Marshal(roots)
}

// PrecedenceNodeSnapshot is one precedence DAG node rendered for
// `--dump-precedence`.
type PrecedenceNodeSnapshot struct {
	Name  string `yaml:"name"`
	Assoc string `yaml:"assoc"`
}

var assocNames = map[int]string{0: "none", 1: "left", 2: "right"}

// DumpPrecedence renders every non-sentinel precedence node, in
// insertion order, name plus associativity.
func DumpPrecedence(pc *passes.Context) ([]byte, error) {
	var out []PrecedenceNodeSnapshot
	for i := 0; i < pc.Precedence.Len(); i++ {
		id := dag.Id(i)
		if id == pc.Precedence.Lowest || id == pc.Precedence.Highest {
			continue
		}
		name, ok := pc.Precedence.Name(id)
		if !ok {
			continue
		}
		assoc, _ := pc.Precedence.Assoc(id)
		out = append(out, PrecedenceNodeSnapshot{Name: name, Assoc: assocNames[int(assoc)]})
	}
	return yaml.Marshal(out)
}

// TraitNodeSnapshot is one trait DAG node rendered for `--dump-traits`.
type TraitNodeSnapshot struct {
	Path  string   `yaml:"path"`
	Bases []string `yaml:"bases,omitempty"`
}

// DumpTraits renders every trait DAG node and its direct base paths.
func DumpTraits(pc *passes.Context) ([]byte, error) {
	var out []TraitNodeSnapshot
	for i := 0; i < pc.Traits.Len(); i++ {
		id := dag.Id(i)
		path, ok := pc.Traits.Path(id)
		if !ok {
			continue
		}
		snap := TraitNodeSnapshot{Path: path}
		for _, baseId := range pc.Traits.GetBaseIDs(id) {
			if basePath, ok := pc.Traits.Path(baseId); ok {
				snap.Bases = append(snap.Bases, basePath)
			}
		}
		out = append(out, snap)
	}
	return yaml.Marshal(out)
}

// OperatorSnapshot is one registered operator rendered for
// `--dump-operators`.
type OperatorSnapshot struct {
	Fixity      string `yaml:"fixity"`
	TraitPath   string `yaml:"traitPath,omitempty"`
	FunctionName string `yaml:"functionName,omitempty"`
}

var fixityNames = map[optable.Fixity]string{
	optable.Prefix:  "prefix",
	optable.Postfix: "postfix",
	optable.Infix:   "infix",
	optable.Assign:  "assign",
}

// DumpOperators renders every operator table entry across all four
// fixities.
func DumpOperators(pc *passes.Context, infos []optable.OperatorInfo) ([]byte, error) {
	out := make([]OperatorSnapshot, 0, len(infos))
	for _, info := range infos {
		out = append(out, OperatorSnapshot{
			Fixity:       fixityNames[info.Fixity],
			TraitPath:    info.TraitPath,
			FunctionName: info.FunctionName,
		})
	}
	return yaml.Marshal(out)
}

// VarScopeSnapshot renders one function's varscope.VariableInfo for
// `--dump-var-scopes`.
type VarScopeSnapshot struct {
	Scopes int               `yaml:"scopes"`
	Vars   []VarEntrySnapshot `yaml:"vars"`
}

// VarEntrySnapshot is one recorded variable declaration.
type VarEntrySnapshot struct {
	Name     string `yaml:"name"`
	IsMut    bool   `yaml:"isMut,omitempty"`
	IsConst  bool   `yaml:"isConst,omitempty"`
	Shadowed bool   `yaml:"shadowed,omitempty"`
}

// DumpVarScope renders a single VariableInfo.
func DumpVarScope(info *varscope.VariableInfo) ([]byte, error) {
	snap := VarScopeSnapshot{Scopes: len(info.Scopes)}
	for _, v := range info.Vars {
		snap.Vars = append(snap.Vars, VarEntrySnapshot{
			Name: v.Name, IsMut: v.IsMut, IsConst: v.IsConst, Shadowed: v.ShadowSpan != nil,
		})
	}
	return yaml.Marshal(snap)
}

// FunctionVarScopeSnapshot names the function a VarScopeSnapshot belongs
// to, for `--dump-var-scopes` (one function can have no VarInfoID at all
// when it is a bodyless trait signature).
type FunctionVarScopeSnapshot struct {
	Function string           `yaml:"function"`
	VarScopeSnapshot `yaml:",inline"`
}

// DumpVarScopes renders the `--dump-var-scopes` artifact: every
// analysed function's VariableInfo, found by scanning the HIR store for
// Function nodes carrying a resolved VarInfoID, in store order.
func DumpVarScopes(pc *passes.Context, h *hir.Store) ([]byte, error) {
	var out []FunctionVarScopeSnapshot
	for i := 0; i < h.Len(); i++ {
		id := hir.Id(i)
		node, ok := h.Get(id)
		if !ok || node.Kind != hir.KindFunction {
			continue
		}
		ctx := h.Ctx(id)
		if ctx.VarInfoID == varscope.InvalidVarInfoId {
			continue
		}
		info, ok := pc.VarInfo.Get(ctx.VarInfoID)
		if !ok {
			continue
		}
		snap := FunctionVarScopeSnapshot{VarScopeSnapshot: VarScopeSnapshot{Scopes: len(info.Scopes)}}
		if fn, ok := node.Data.(hir.FunctionData); ok {
			snap.Function = fn.Name
		}
		for _, v := range info.Vars {
			snap.Vars = append(snap.Vars, VarEntrySnapshot{
				Name: v.Name, IsMut: v.IsMut, IsConst: v.IsConst, Shadowed: v.ShadowSpan != nil,
			})
		}
		out = append(out, snap)
	}
	return yaml.Marshal(out)
}

// HirNodeSnapshot is one lowered HIR node rendered flat for
// `--dump-hir`, in store order.
type HirNodeSnapshot struct {
	Id     int32  `yaml:"id"`
	Kind   string `yaml:"kind"`
	Path   string `yaml:"path,omitempty"`
	Symbol string `yaml:"symbol,omitempty"`
}

var hirKindNames = map[hir.Kind]string{
	hir.KindModule: "module", hir.KindPrecedence: "precedence", hir.KindTrait: "trait",
	hir.KindImpl: "impl", hir.KindFunction: "function", hir.KindOperatorUse: "operatorUse",
	hir.KindPrecedenceUse: "precedenceUse", hir.KindSimplePath: "simplePath",
	hir.KindTypeUnit: "typeUnit", hir.KindTypeNever: "typeNever", hir.KindTypePrimitive: "typePrimitive",
	hir.KindTypeStringSlice: "typeStringSlice", hir.KindTypePath: "typePath", hir.KindTypeTuple: "typeTuple",
	hir.KindTypeArray: "typeArray", hir.KindTypeSlice: "typeSlice", hir.KindTypePointer: "typePointer",
	hir.KindTypeReference: "typeReference", hir.KindTypeOptional: "typeOptional", hir.KindTypeFn: "typeFn",
	hir.KindTypeClosure: "typeClosure", hir.KindBlock: "block", hir.KindLetStmt: "letStmt",
	hir.KindParam: "param", hir.KindBinaryExpr: "binaryExpr", hir.KindIdent: "ident",
	hir.KindLiteralExpr: "literalExpr",
}

// DumpHir renders every lowered HIR node, in store order, with its
// resolved scope path and symbol name where the pass sequence has
// populated them.
func DumpHir(h *hir.Store) ([]byte, error) {
	out := make([]HirNodeSnapshot, 0, h.Len())
	for i := 0; i < h.Len(); i++ {
		id := hir.Id(i)
		node, _ := h.Get(id)
		ctx := h.Ctx(id)
		snap := HirNodeSnapshot{Id: int32(id), Kind: hirKindNames[node.Kind]}
		if !ctx.Path.IsEmpty() {
			snap.Path = ctx.Path.String()
		}
		if ctx.Symbol != nil {
			snap.Symbol = ctx.Symbol.Name
		}
		out = append(out, snap)
	}
	return yaml.Marshal(out)
}

// TypeSnapshot is one interned type rendered for `--dump-types`.
type TypeSnapshot struct {
	String string `yaml:"string"`
}

// DumpTypes renders every type the registry has interned so far.
func DumpTypes(pc *passes.Context) ([]byte, error) {
	handles := pc.Types.All()
	out := make([]TypeSnapshot, 0, len(handles))
	for _, h := range handles {
		out = append(out, TypeSnapshot{String: h.String()})
	}
	return yaml.Marshal(out)
}

// UseEntrySnapshot is one scope's use-table declarations, rendered for
// `--dump-use`.
type UseEntrySnapshot struct {
	DeclaredIn string            `yaml:"declaredIn"`
	Aliases    map[string]string `yaml:"aliases,omitempty"`
	Globs      []string          `yaml:"globs,omitempty"`
}

// DumpUses renders every scope that declared at least one alias or glob
// import.
func DumpUses(pc *passes.Context) ([]byte, error) {
	entries := pc.Uses.All()
	out := make([]UseEntrySnapshot, 0, len(entries))
	for _, e := range entries {
		out = append(out, UseEntrySnapshot{DeclaredIn: e.DeclaredIn, Aliases: e.Aliases, Globs: e.Globs})
	}
	return yaml.Marshal(out)
}

// DumpErrors renders every diagnostic the pass sequence reported, one
// rendered line per error, in the same stable order Log.Render() uses.
func DumpErrors(pc *passes.Context) ([]byte, error) {
	return yaml.Marshal(pc.Errors.Render())
}
