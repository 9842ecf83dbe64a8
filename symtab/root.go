package symtab

import (
	"sync"

	"github.com/xenon-lang/xenonc/dag"
	"github.com/xenon-lang/xenonc/optable"
	"github.com/xenon-lang/xenonc/precedence"
	"github.com/xenon-lang/xenonc/scope"
)

// RootSymbolTable owns the top-level table and exposes typed insertion
// plus scope-aware lookup, under a reader/writer lock so future parallel
// passes can share it.
type RootSymbolTable struct {
	mu   sync.RWMutex
	root *Table
}

// NewRootSymbolTable returns an empty root table.
func NewRootSymbolTable() *RootSymbolTable {
	return &RootSymbolTable{root: NewTable()}
}

// descend walks dir's segments from the root, requiring each to resolve
// to an existing Module symbol (exact name+params match), and returns
// the table it bottoms out in.
// Caller must hold at least a read lock.
func (r *RootSymbolTable) descend(dir scope.Scope) (*Table, bool) {
	tbl := r.root
	for _, seg := range dir.Segments {
		sym, ok := tbl.Get(seg.Name, seg.Params)
		if !ok || sym.Kind != KindModule {
			return nil, false
		}
		tbl = sym.SubTable
	}
	return tbl, true
}

// AddModule creates a Module symbol at path (whose last segment is the
// module's own name) with the given source file path, creating its
// sub-table. The parent scope (path minus its last segment) must already
// exist.
func (r *RootSymbolTable) AddModule(path scope.Scope, filePath string) (*Symbol, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dir, last := path.Pop()
	tbl, ok := r.descend(dir)
	if !ok {
		return nil, false
	}
	sym := &Symbol{Kind: KindModule, Name: last.Name, FilePath: filePath, SubTable: NewTable()}
	tbl.Add(last.Name, last.Params, sym)
	return sym, true
}

// AddPrecedence creates a Precedence symbol under dir.
func (r *RootSymbolTable) AddPrecedence(dir scope.Scope, name string, id dag.Id, orderKind OrderKind, assoc precedence.Associativity) (*Symbol, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tbl, ok := r.descend(dir)
	if !ok {
		return nil, false
	}
	sym := &Symbol{Kind: KindPrecedence, Name: name, PrecedenceID: id, OrderKind: orderKind, Assoc: assoc}
	tbl.Add(name, nil, sym)
	return sym, true
}

// AddTrait creates a Trait symbol under dir.
func (r *RootSymbolTable) AddTrait(dir scope.Scope, name, path string, dagIdx dag.Id) (*Symbol, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tbl, ok := r.descend(dir)
	if !ok {
		return nil, false
	}
	sym := &Symbol{Kind: KindTrait, Name: name, Path: path, DagIdx: dagIdx}
	tbl.Add(name, nil, sym)
	return sym, true
}

// AddOpSet creates an OpSet symbol under dir.
func (r *RootSymbolTable) AddOpSet(dir scope.Scope, name string) (*Symbol, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tbl, ok := r.descend(dir)
	if !ok {
		return nil, false
	}
	sym := &Symbol{Kind: KindOpSet, Name: name}
	tbl.Add(name, nil, sym)
	return sym, true
}

// AddOperator creates an Operator symbol under dir.
func (r *RootSymbolTable) AddOperator(dir scope.Scope, name string, fixity optable.Fixity, punctuation string) (*Symbol, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tbl, ok := r.descend(dir)
	if !ok {
		return nil, false
	}
	sym := &Symbol{Kind: KindOperator, Name: name, Fixity: fixity, Punctuation: punctuation}
	tbl.Add(name, nil, sym)
	return sym, true
}

// AddOpaque creates an opaque item symbol (function, struct, …) under
// dir, with arbitrary caller-supplied params for overload resolution.
func (r *RootSymbolTable) AddOpaque(dir scope.Scope, name string, params []string, opaqueKind string, payload interface{}) (*Symbol, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tbl, ok := r.descend(dir)
	if !ok {
		return nil, false
	}
	sym := &Symbol{Kind: KindOpaque, Name: name, OpaqueKind: opaqueKind, Opaque: payload}
	tbl.Add(name, params, sym)
	return sym, true
}

// GetSymbol resolves name within dir with no parameter labels (the
// unparameterised overload).
func (r *RootSymbolTable) GetSymbol(dir scope.Scope, name string) (*Symbol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tbl, ok := r.descend(dir)
	if !ok {
		return nil, false
	}
	return tbl.Get(name, nil)
}

// GetSymbolWithParams resolves name within dir against the overload set
// matching params.
func (r *RootSymbolTable) GetSymbolWithParams(dir scope.Scope, name string, params []string) (*Symbol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tbl, ok := r.descend(dir)
	if !ok {
		return nil, false
	}
	return tbl.Get(name, params)
}

// Lookup resolves a full path (module segments plus a final name+params
// segment) directly, without consulting the use table. It's the building
// block use-aware lookup retries against each candidate scope.
func (r *RootSymbolTable) Lookup(path scope.Scope) (*Symbol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if path.IsEmpty() {
		return nil, false
	}
	dir, last := path.Pop()
	tbl, ok := r.descend(dir)
	if !ok {
		return nil, false
	}
	return tbl.Get(last.Name, last.Params)
}

// RootTable exposes the underlying root Table for direct inspection
// (dumping, testing) without taking part in the locked API.
func (r *RootSymbolTable) RootTable() *Table {
	return r.root
}
