// Package precedence specialises the generic dag.Dag to operator
// precedence ordering, with lowest/highest sentinel nodes.
//
// (PrecedenceDag, set_order, calculate_order, check_cycles, get_order).
package precedence

import "github.com/xenon-lang/xenonc/dag"

// Associativity controls how operators at the same precedence group.
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

// Info is the payload carried by a precedence DAG node.
type Info struct {
	Name  string
	Assoc Associativity
}

// Order mirrors dag.Order under precedence-specific naming.
type Order = dag.Order

const (
	Same  = dag.OrderSame
	Higher = dag.OrderHigher
	Lower  = dag.OrderLower
	None   = dag.OrderNone
)

// Dag is the precedence DAG: a dag.Dag[Info] plus the lowest/highest
// sentinel ids.
type Dag struct {
	g       *dag.Dag[Info]
	Lowest  dag.Id
	Highest dag.Id
	closed  bool
}

// NewDag creates the DAG with its lowest/highest sentinels pre-added;
// lowest has no predecessors, highest has no successors.
func NewDag() *Dag {
	g := dag.New[Info]()
	lowest := g.Add(Info{Name: "lowest"})
	highest := g.Add(Info{Name: "highest"})
	return &Dag{g: g, Lowest: lowest, Highest: highest}
}

// AddPrecedence registers a new user precedence node and returns its id.
func (d *Dag) AddPrecedence(name string) dag.Id {
	return d.g.Add(Info{Name: name})
}

// Name returns the name of the node at id.
func (d *Dag) Name(id dag.Id) (string, bool) {
	info, ok := d.g.Value(id)
	if !ok {
		return "", false
	}
	return info.Name, true
}

// SetAssoc records the associativity declared on the precedence node at id,
// consulted by the operator-reorder pass when two operators
// compare Same.
func (d *Dag) SetAssoc(id dag.Id, assoc Associativity) {
	info, ok := d.g.Value(id)
	if !ok {
		return
	}
	info.Assoc = assoc
	d.g.SetValue(id, info)
}

// Assoc returns the associativity recorded at id.
func (d *Dag) Assoc(id dag.Id) (Associativity, bool) {
	info, ok := d.g.Value(id)
	if !ok {
		return AssocNone, false
	}
	return info.Assoc, true
}

// SetOrder records that lower binds looser than higher.
func (d *Dag) SetOrder(lower, higher dag.Id) {
	d.g.SetOrder(lower, higher)
}

// Complete defaults the graph edges: every non-sentinel node lacking a
// successor gains Highest as successor; every non-sentinel lacking a
// predecessor gains Lowest as predecessor. Must run before
// CalculatePredecessors.
func (d *Dag) Complete() {
	for i := 0; i < d.g.Len(); i++ {
		id := dag.Id(i)
		if id == d.Lowest || id == d.Highest {
			continue
		}
		if len(d.g.Successors(id)) == 0 {
			d.g.SetOrder(id, d.Highest)
		}
		if len(d.g.Predecessors(id)) == 0 {
			d.g.SetOrder(d.Lowest, id)
		}
	}
}

// CalculatePredecessors precomputes transitive predecessor sets. Must
// run after Complete and before any GetOrder query.
func (d *Dag) CalculatePredecessors() {
	d.g.CalculatePredecessors()
	d.closed = true
}

// CheckCycles runs cycle detection. Any non-empty result is a compile
// error; the caller must not use GetOrder's results for ordering
// decisions if cycles are present.
func (d *Dag) CheckCycles() [][]dag.Id {
	return d.g.CheckCycles()
}

// GetOrder reports Same/Higher/Lower/None per the transitive-predecessor
// contract. Invalid ids always yield None.
func (d *Dag) GetOrder(a, b dag.Id) Order {
	return d.g.GetOrder(a, b)
}

// Len reports the number of nodes, including the two sentinels.
func (d *Dag) Len() int { return d.g.Len() }
