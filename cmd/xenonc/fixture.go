// Fixture loading for the xenonc driver: the semantic core has no
// lexer/parser of its own, so the driver's only way to get an ast.Store
// is to build one from a declarative YAML description rather than
// parsing source text.
package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/xenon-lang/xenonc/ast"
	"github.com/xenon-lang/xenonc/intern"
	"github.com/xenon-lang/xenonc/passes"
	"github.com/xenon-lang/xenonc/precedence"
	"github.com/xenon-lang/xenonc/span"
	"github.com/xenon-lang/xenonc/typesys"
)

// FixtureType names an AST type node. Kind selects the variant; Name
// carries a primitive/string-slice spelling (e.g. "i32", "str") or is
// unused; Path carries a path type's segments.
type FixtureType struct {
	Kind string   `yaml:"kind"`
	Name string   `yaml:"name,omitempty"`
	Path []string `yaml:"path,omitempty"`
}

// FixtureBinary is a two-operand operator application.
type FixtureBinary struct {
	Op    string       `yaml:"op"`
	Left  *FixtureExpr `yaml:"left"`
	Right *FixtureExpr `yaml:"right"`
}

// FixtureExpr is one of an identifier reference, a decimal literal, or a
// binary expression; exactly one field should be set.
type FixtureExpr struct {
	Ident   string         `yaml:"ident,omitempty"`
	Literal string         `yaml:"literal,omitempty"`
	Binary  *FixtureBinary `yaml:"binary,omitempty"`
}

// FixtureLet is a block's `let` statement; blocks carry no other
// statement kind in this fixture format.
type FixtureLet struct {
	Name    string       `yaml:"name"`
	IsMut   bool         `yaml:"isMut,omitempty"`
	IsConst bool         `yaml:"isConst,omitempty"`
	Type    *FixtureType `yaml:"type,omitempty"`
	Value   *FixtureExpr `yaml:"value,omitempty"`
}

// FixtureParam is one function parameter.
type FixtureParam struct {
	Name  string       `yaml:"name"`
	Label string       `yaml:"label,omitempty"`
	Type  *FixtureType `yaml:"type,omitempty"`
}

// FixtureFunction is one function/method declaration. Role selects
// ast.FunctionRole ("free", "traitFunction", "traitMethod",
// "implFunction", "method"); Fixity/Punctuation are only meaningful
// inside an operator trait's functions.
type FixtureFunction struct {
	Name        string         `yaml:"name"`
	Role        string         `yaml:"role,omitempty"`
	Fixity      string         `yaml:"fixity,omitempty"`
	Punctuation string         `yaml:"punctuation,omitempty"`
	Params      []FixtureParam `yaml:"params,omitempty"`
	Body        []FixtureLet   `yaml:"body,omitempty"`
}

// FixtureTrait is a `trait` / `op trait` declaration.
type FixtureTrait struct {
	Name       string            `yaml:"name"`
	IsOperator bool              `yaml:"isOperator,omitempty"`
	Bases      [][]string        `yaml:"bases,omitempty"`
	Functions  []FixtureFunction `yaml:"functions,omitempty"`
}

// FixtureImpl is an `impl [Trait for] Type` block.
type FixtureImpl struct {
	TraitPath []string          `yaml:"traitPath,omitempty"`
	Target    FixtureType       `yaml:"target"`
	Functions []FixtureFunction `yaml:"functions,omitempty"`
}

// FixturePrecedence is a `precedence Name { ... }` declaration.
type FixturePrecedence struct {
	Name       string `yaml:"name"`
	HigherThan string `yaml:"higherThan,omitempty"`
	LowerThan  string `yaml:"lowerThan,omitempty"`
	IsHighest  bool   `yaml:"isHighest,omitempty"`
	IsLowest   bool   `yaml:"isLowest,omitempty"`
	Assoc      string `yaml:"assoc,omitempty"`
}

// FixtureUse is an `op use` / `precedence use` import item.
type FixtureUse struct {
	Path  []string `yaml:"path"`
	Group string   `yaml:"group,omitempty"`
}

// FixtureModule is a `mod name { ... }` declaration; Path, if set,
// becomes the module's `#[path(...)]` attribute.
type FixtureModule struct {
	Name           string              `yaml:"name"`
	Path           string              `yaml:"path,omitempty"`
	Precedences    []FixturePrecedence `yaml:"precedences,omitempty"`
	Traits         []FixtureTrait      `yaml:"traits,omitempty"`
	Impls          []FixtureImpl       `yaml:"impls,omitempty"`
	PrecedenceUses []FixtureUse        `yaml:"precedenceUses,omitempty"`
	OperatorUses   []FixtureUse        `yaml:"operatorUses,omitempty"`
	Modules        []FixtureModule     `yaml:"modules,omitempty"`
}

// FixturePackage is the top-level YAML document: one package's modules,
// sharing a single declaring file for module-attribute-path resolution.
type FixturePackage struct {
	DeclaringFile string          `yaml:"declaringFile,omitempty"`
	Modules       []FixtureModule `yaml:"modules"`
}

// ParseFixture decodes a YAML-encoded FixturePackage.
func ParseFixture(data []byte) (*FixturePackage, error) {
	var pkg FixturePackage
	if err := yaml.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}
	return &pkg, nil
}

var fixityByName = map[string]int{
	"prefix":  0,
	"postfix": 1,
	"infix":   2,
	"assign":  3,
}

var roleByName = map[string]ast.FunctionRole{
	"free":          ast.RoleFreeFunction,
	"traitFunction": ast.RoleTraitFunction,
	"traitMethod":   ast.RoleTraitMethod,
	"implFunction":  ast.RoleImplFunction,
	"method":        ast.RoleMethod,
}

var assocByName = map[string]precedence.Associativity{
	"":      precedence.AssocNone,
	"none":  precedence.AssocNone,
	"left":  precedence.AssocLeft,
	"right": precedence.AssocRight,
}

// builder constructs an ast.Store from a FixturePackage, interning every
// name/punctuation/literal through the shared passes.Context so the
// resulting store and context agree on ids.
type builder struct {
	store        *ast.Store
	pc           *passes.Context
	file         string
	defaultGroup string
}

func (b *builder) meta() ast.Meta {
	return ast.Meta{Span: span.Span{File: b.file}}
}

func (b *builder) simplePath(segs []string) ast.NodeId {
	if len(segs) == 0 {
		return ast.InvalidNodeId
	}
	var data ast.SimplePathData
	for _, s := range segs {
		data.Names = append(data.Names, b.pc.Names.Add(s))
	}
	return b.store.Add(ast.KindSimplePath, b.meta(), data)
}

func (b *builder) typeNode(ft *FixtureType) ast.NodeId {
	if ft == nil {
		return ast.InvalidNodeId
	}
	switch ft.Kind {
	case "unit", "":
		return b.store.Add(ast.KindTypeUnit, b.meta(), nil)
	case "never":
		return b.store.Add(ast.KindTypeNever, b.meta(), nil)
	case "primitive":
		k, ok := typesys.ParsePrimitiveKind(ft.Name)
		if !ok {
			return b.store.Add(ast.KindTypeUnit, b.meta(), nil)
		}
		return b.store.Add(ast.KindTypePrimitive, b.meta(), ast.TypePrimitiveData{Kind: int(k)})
	case "stringslice":
		k, ok := typesys.ParseStringSliceKind(ft.Name)
		if !ok {
			return b.store.Add(ast.KindTypeUnit, b.meta(), nil)
		}
		return b.store.Add(ast.KindTypeStringSlice, b.meta(), ast.TypeStringSliceData{Kind: int(k)})
	case "path":
		return b.store.Add(ast.KindTypePath, b.meta(), ast.TypePathData{Path: b.simplePath(ft.Path)})
	default:
		return b.store.Add(ast.KindTypeUnit, b.meta(), nil)
	}
}

func (b *builder) expr(fe *FixtureExpr) ast.NodeId {
	if fe == nil {
		return ast.InvalidNodeId
	}
	switch {
	case fe.Binary != nil:
		left := b.expr(fe.Binary.Left)
		right := b.expr(fe.Binary.Right)
		op := b.pc.Punctuation.Add(fe.Binary.Op)
		return b.store.Add(ast.KindBinaryExpr, b.meta(), ast.BinaryExprData{Operator: op, Left: left, Right: right})
	case fe.Literal != "":
		lit := b.pc.Literals.Add(intern.Literal{Kind: intern.LiteralDecimal, Digits: []byte(fe.Literal)})
		return b.store.Add(ast.KindLiteralExpr, b.meta(), ast.LiteralExprData{Literal: lit})
	default:
		return b.store.Add(ast.KindIdent, b.meta(), ast.IdentData{Name: fe.Ident})
	}
}

func (b *builder) letStmt(fl FixtureLet) ast.NodeId {
	return b.store.Add(ast.KindLetStmt, b.meta(), ast.LetStmtData{
		Name: fl.Name, IsMut: fl.IsMut, IsConst: fl.IsConst,
		Type: b.typeNode(fl.Type), Value: b.expr(fl.Value),
	})
}

func (b *builder) param(fp FixtureParam) ast.NodeId {
	return b.store.Add(ast.KindParam, b.meta(), ast.ParamData{Name: fp.Name, Label: fp.Label, Type: b.typeNode(fp.Type)})
}

func (b *builder) function(ff FixtureFunction, defaultRole ast.FunctionRole) ast.NodeId {
	var params []ast.NodeId
	for _, fp := range ff.Params {
		params = append(params, b.param(fp))
	}
	body := ast.InvalidNodeId
	if len(ff.Body) > 0 {
		var stmts []ast.NodeId
		for _, fl := range ff.Body {
			stmts = append(stmts, b.letStmt(fl))
		}
		body = b.store.Add(ast.KindBlock, b.meta(), ast.BlockData{Statements: stmts})
	}
	role, ok := roleByName[ff.Role]
	if !ok {
		role = defaultRole
	}
	return b.store.Add(ast.KindFunction, b.meta(), ast.FunctionData{
		Name: ff.Name, Role: role, Params: params, Body: body,
		Fixity: fixityByName[ff.Fixity], Punctuation: ff.Punctuation,
	})
}

func (b *builder) trait(ft FixtureTrait) ast.NodeId {
	var bases []ast.NodeId
	for _, segs := range ft.Bases {
		bases = append(bases, b.simplePath(segs))
	}
	defaultRole := ast.RoleTraitFunction
	var fns []ast.NodeId
	for _, ff := range ft.Functions {
		fns = append(fns, b.function(ff, defaultRole))
	}
	return b.store.Add(ast.KindTrait, b.meta(), ast.TraitData{Name: ft.Name, IsOperator: ft.IsOperator, Bases: bases, Functions: fns})
}

func (b *builder) impl(fi FixtureImpl) ast.NodeId {
	traitPath := ast.InvalidNodeId
	if len(fi.TraitPath) > 0 {
		traitPath = b.simplePath(fi.TraitPath)
	}
	var fns []ast.NodeId
	for _, ff := range fi.Functions {
		fns = append(fns, b.function(ff, ast.RoleImplFunction))
	}
	return b.store.Add(ast.KindImpl, b.meta(), ast.ImplData{TraitPath: traitPath, Target: b.typeNode(&fi.Target), Functions: fns})
}

func (b *builder) precedenceNode(fp FixturePrecedence) ast.NodeId {
	assoc := assocByName[fp.Assoc]
	return b.store.Add(ast.KindPrecedence, b.meta(), ast.PrecedenceData{
		Name: fp.Name, HigherThan: fp.HigherThan, LowerThan: fp.LowerThan,
		IsHighest: fp.IsHighest, IsLowest: fp.IsLowest, Assoc: int(assoc),
	})
}

// group resolves a use item's group, falling back to the driver's
// --group flag when the fixture leaves it unset.
func (b *builder) group(fu FixtureUse) string {
	if fu.Group != "" {
		return fu.Group
	}
	return b.defaultGroup
}

func (b *builder) precedenceUse(fu FixtureUse) ast.NodeId {
	return b.store.Add(ast.KindPrecedenceUse, b.meta(), ast.PrecedenceUseData{Path: b.simplePath(fu.Path), Group: b.group(fu)})
}

func (b *builder) operatorUse(fu FixtureUse) ast.NodeId {
	return b.store.Add(ast.KindOperatorUse, b.meta(), ast.OperatorUseData{Path: b.simplePath(fu.Path), Group: b.group(fu)})
}

func (b *builder) module(fm FixtureModule) ast.NodeId {
	var attrs []ast.NodeId
	if fm.Path != "" {
		attrs = append(attrs, b.store.Add(ast.KindAttribute, b.meta(), ast.AttributeData{Name: "path", Args: []string{fm.Path}}))
	}
	var items []ast.NodeId
	for _, fp := range fm.Precedences {
		items = append(items, b.precedenceNode(fp))
	}
	for _, ft := range fm.Traits {
		items = append(items, b.trait(ft))
	}
	for _, fi := range fm.Impls {
		items = append(items, b.impl(fi))
	}
	for _, fu := range fm.PrecedenceUses {
		items = append(items, b.precedenceUse(fu))
	}
	for _, fu := range fm.OperatorUses {
		items = append(items, b.operatorUse(fu))
	}
	for _, sub := range fm.Modules {
		items = append(items, b.module(sub))
	}
	return b.store.Add(ast.KindModule, b.meta(), ast.ModuleData{Name: fm.Name, Attributes: attrs, Items: items})
}

// BuildStore builds an ast.Store for every top-level module in pkg,
// interning through pc, and returns the store alongside its root ids.
// defaultGroup is the CLI's --group value, used whenever a fixture's own
// op-use/precedence-use item leaves its group unset.
func BuildStore(pc *passes.Context, pkg *FixturePackage, defaultGroup string) (*ast.Store, []ast.NodeId) {
	b := &builder{store: ast.NewStore(), pc: pc, file: pkg.DeclaringFile, defaultGroup: defaultGroup}
	var roots []ast.NodeId
	for _, fm := range pkg.Modules {
		roots = append(roots, b.module(fm))
	}
	return b.store, roots
}
