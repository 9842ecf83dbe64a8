package astpass

import (
	"github.com/xenon-lang/xenonc/ast"
	"github.com/xenon-lang/xenonc/diag"
	"github.com/xenon-lang/xenonc/passes"
)

// GenerateModuleSymbols populates the root symbol
// table with a Module symbol per `mod` item, parent before children so
// each nested AddModule call finds its parent's sub-table already
// created (symtab.RootSymbolTable.descend requires it).
func GenerateModuleSymbols(pc *passes.Context, store *ast.Store, actx *ast.Context, roots []ast.NodeId) {
	generateModuleSymbolsIn(pc, store, actx, roots)
}

func generateModuleSymbolsIn(pc *passes.Context, store *ast.Store, actx *ast.Context, ids []ast.NodeId) {
	for _, id := range ids {
		node, ok := store.Get(id)
		if !ok || node.Kind != ast.KindModule {
			continue
		}
		data := node.Data.(ast.ModuleData)
		ctx := actx.At(id)

		filePath := ""
		if ctx.ModuleContext != nil {
			filePath = ctx.ModuleContext.Path
		}
		fullPath := ctx.Scope.PushName(data.Name)
		if _, ok := pc.Symbols.AddModule(fullPath, filePath); !ok {
			pc.Errors.Report(diag.NewInternal("module symbol generation: parent scope not found for " + fullPath.String()))
			continue
		}
		generateModuleSymbolsIn(pc, store, actx, data.Items)
	}
}
