package astpass

import (
	"path/filepath"

	"golang.org/x/mod/module"

	"github.com/xenon-lang/xenonc/ast"
	"github.com/xenon-lang/xenonc/diag"
	"github.com/xenon-lang/xenonc/passes"
)

// ResolveModuleAttributes sets each Module node's
// ModuleContextData.Path. Paths are stored relative to the declaring
// file, not the package root. A module lacking an explicit `path`
// attribute defaults to "<name>.xn" next to the declaring file. An
// explicit path is validated with golang.org/x/mod/module.
// CheckImportPath; an invalid path is reported as InvalidAttributeData
// rather than silently accepted.
func ResolveModuleAttributes(pc *passes.Context, store *ast.Store, actx *ast.Context, roots []ast.NodeId, declaringFile string) {
	dir := filepath.Dir(declaringFile)
	resolveModuleAttributesIn(pc, store, actx, roots, dir)
}

func resolveModuleAttributesIn(pc *passes.Context, store *ast.Store, actx *ast.Context, ids []ast.NodeId, dir string) {
	for _, id := range ids {
		node, ok := store.Get(id)
		if !ok || node.Kind != ast.KindModule {
			continue
		}
		data := node.Data.(ast.ModuleData)
		ctx := actx.At(id)

		pathAttr, found := findAttribute(store, data.Attributes, "path")
		var resolved string
		valid := true
		if found {
			if len(pathAttr.Args) != 1 {
				pc.Errors.Report(diag.NewInvalidAttributeData(node.Meta.Span, "path attribute requires exactly one argument"))
				valid = false
			} else if err := module.CheckImportPath(pathAttr.Args[0]); err != nil {
				pc.Errors.Report(diag.NewInvalidAttributeData(node.Meta.Span, "invalid path attribute: "+err.Error()))
				valid = false
				resolved = filepath.Join(dir, pathAttr.Args[0])
			} else {
				resolved = filepath.Join(dir, pathAttr.Args[0])
			}
		} else {
			resolved = filepath.Join(dir, data.Name+".xn")
		}

		ctx.ModuleContext = &ast.ModuleContextData{Path: resolved, IsValid: valid}

		// Nested modules resolve relative to their own declaring file, which
		// for an inline `mod n { ... }` is the same file as its parent.
		resolveModuleAttributesIn(pc, store, actx, data.Items, dir)
	}
}

func findAttribute(store *ast.Store, ids []ast.NodeId, name string) (ast.AttributeData, bool) {
	for _, id := range ids {
		node, ok := store.Get(id)
		if !ok || node.Kind != ast.KindAttribute {
			continue
		}
		data := node.Data.(ast.AttributeData)
		if data.Name == name {
			return data, true
		}
	}
	return ast.AttributeData{}, false
}
