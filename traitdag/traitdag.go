// Package traitdag specialises dag.Dag to trait base-dependency edges:
// derived trait -> base trait. Same calculate-predecessors/check-cycles
// contract as the precedence DAG.
package traitdag

import "github.com/xenon-lang/xenonc/dag"

// Info is the payload carried by a trait DAG node: the trait's scope
// path, used for diagnostics.
type Info struct {
	Path string
}

// Dag wraps dag.Dag[Info] for trait dependency tracking.
type Dag struct {
	g *dag.Dag[Info]
}

// NewDag returns an empty trait DAG. Unlike the precedence DAG this has
// no sentinel nodes — trait bases are a plain dependency graph.
func NewDag() *Dag {
	return &Dag{g: dag.New[Info]()}
}

// Add registers a trait node and returns its dag index, stored back on
// the trait symbol so dependent passes can query bases in O(1).
func (d *Dag) Add(path string) dag.Id {
	return d.g.Add(Info{Path: path})
}

// SetBaseDependency records that derived depends on base (derived -> base
// edge).
func (d *Dag) SetBaseDependency(derived, base dag.Id) {
	// predecessor->successor in dag.Dag means "lower precedes higher"; here
	// we want derived's predecessor closure to include its bases, so base
	// is the predecessor and derived the successor.
	d.g.SetOrder(base, derived)
}

// GetBaseIDs returns the direct (non-transitive) base ids of a trait.
func (d *Dag) GetBaseIDs(trait dag.Id) []dag.Id {
	return d.g.Predecessors(trait)
}

// CalculatePredecessors precomputes transitive base sets.
func (d *Dag) CalculatePredecessors() {
	d.g.CalculatePredecessors()
}

// CheckCycles returns every base-dependency cycle found; non-empty means
// a compile error.
func (d *Dag) CheckCycles() [][]dag.Id {
	return d.g.CheckCycles()
}

// GetOrder reports Same/Higher/Lower/None, where Higher means a is a
// transitive base of b.
func (d *Dag) GetOrder(a, b dag.Id) dag.Order {
	return d.g.GetOrder(a, b)
}

// Path returns the trait path stored at id.
func (d *Dag) Path(id dag.Id) (string, bool) {
	info, ok := d.g.Value(id)
	if !ok {
		return "", false
	}
	return info.Path, true
}

// Len reports the number of trait nodes.
func (d *Dag) Len() int { return d.g.Len() }
