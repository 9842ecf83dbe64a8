package symtab

import "sort"

// entry pairs a symbol with the parameter-label set it was recorded
// under, so a bucket can hold several overloads of the same name.
type entry struct {
	params []string
	symbol *Symbol
}

// Table is a map from name to a bucket of (params, Symbol). It never
// rejects a duplicate insertion; the caller is responsible for
// diagnosing collisions via the error log.
type Table struct {
	buckets map[string][]entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{buckets: make(map[string][]entry)}
}

// Add appends sym to name's bucket under params, without checking for an
// existing identical entry.
func (t *Table) Add(name string, params []string, sym *Symbol) {
	t.buckets[name] = append(t.buckets[name], entry{params: append([]string(nil), params...), symbol: sym})
}

// Get resolves an overload at name given the lookup's params: if exactly
// one bucket entry exists it is returned; otherwise the entry whose
// recorded params matches the lookup's params wins, falling back to the
// unparameterised entry when present.
func (t *Table) Get(name string, params []string) (*Symbol, bool) {
	bucket := t.buckets[name]
	if len(bucket) == 0 {
		return nil, false
	}
	if len(bucket) == 1 {
		return bucket[0].symbol, true
	}
	var unparameterised *Symbol
	for _, e := range bucket {
		if paramsEqual(e.params, params) {
			return e.symbol, true
		}
		if len(e.params) == 0 {
			unparameterised = e.symbol
		}
	}
	if unparameterised != nil {
		return unparameterised, true
	}
	return nil, false
}

// GetAll returns every overload recorded under name, in insertion order.
func (t *Table) GetAll(name string) []*Symbol {
	bucket := t.buckets[name]
	out := make([]*Symbol, len(bucket))
	for i, e := range bucket {
		out[i] = e.symbol
	}
	return out
}

// All returns every symbol in the table, sorted by name and in insertion
// order within one name, for dump
// tooling (prettyprint) that needs to enumerate a whole scope level
// rather than resolve a single name.
func (t *Table) All() []*Symbol {
	names := make([]string, 0, len(t.buckets))
	for name := range t.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	var out []*Symbol
	for _, name := range names {
		for _, e := range t.buckets[name] {
			out = append(out, e.symbol)
		}
	}
	return out
}

func paramsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
