package precedence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xenon-lang/xenonc/dag"
)

// A, B, C with B higher than A and C higher than B: order is transitive.
func TestChainOrdering(t *testing.T) {
	d := NewDag()
	a := d.AddPrecedence("A")
	b := d.AddPrecedence("B")
	c := d.AddPrecedence("C")
	d.SetOrder(a, b) // B higher_than A => A is lower, B is higher
	d.SetOrder(b, c) // C higher_than B
	d.Complete()
	d.CalculatePredecessors()

	assert.Empty(t, d.CheckCycles())
	assert.Equal(t, Higher, d.GetOrder(a, c))
	assert.Equal(t, Lower, d.GetOrder(c, a))
}

// A higher than B and B higher than A is a cycle.
func TestCycleDetected(t *testing.T) {
	d := NewDag()
	a := d.AddPrecedence("A")
	b := d.AddPrecedence("B")
	d.SetOrder(b, a) // A higher_than B
	d.SetOrder(a, b) // B higher_than A
	d.Complete()

	cycles := d.CheckCycles()
	assert.NotEmpty(t, cycles)
}

func TestSentinelsHaveNoDanglingEdges(t *testing.T) {
	d := NewDag()
	p := d.AddPrecedence("P")
	d.Complete() // P has no explicit edges: gains Highest succ, Lowest pred
	d.CalculatePredecessors()

	assert.Equal(t, Higher, d.GetOrder(d.Lowest, p))
	assert.Equal(t, Higher, d.GetOrder(p, d.Highest))
}

func TestGetOrderSameAndInvalid(t *testing.T) {
	d := NewDag()
	p := d.AddPrecedence("P")
	d.CalculatePredecessors()
	assert.Equal(t, Same, d.GetOrder(p, p))
	assert.Equal(t, None, d.GetOrder(p, dag.InvalidId))
}
