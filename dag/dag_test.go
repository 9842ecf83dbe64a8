package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOrderAfterCalculatePredecessors(t *testing.T) {
	d := New[string]()
	a := d.Add("A")
	b := d.Add("B")
	c := d.Add("C")
	d.SetOrder(a, b) // A -> B (A lower, B higher)
	d.SetOrder(b, c) // B -> C
	d.CalculatePredecessors()

	assert.Equal(t, OrderHigher, d.GetOrder(a, c))
	assert.Equal(t, OrderLower, d.GetOrder(c, a))
	assert.Equal(t, OrderSame, d.GetOrder(a, a))
	assert.Equal(t, OrderNone, d.GetOrder(InvalidId, a))

	other := New[string]()
	x := other.Add("X")
	y := other.Add("Y")
	other.CalculatePredecessors()
	assert.Equal(t, OrderNone, other.GetOrder(x, y))

	assert.Empty(t, d.CheckCycles())
}

func TestCheckCyclesDetectsCycle(t *testing.T) {
	d := New[string]()
	a := d.Add("A")
	b := d.Add("B")
	d.SetOrder(a, b)
	d.SetOrder(b, a)

	cycles := d.CheckCycles()
	assert.NotEmpty(t, cycles)
}

func TestCalculatePredecessorsEdgeDirectionContract(t *testing.T) {
	d := New[string]()
	a := d.Add("A")
	b := d.Add("B")
	c := d.Add("C")
	d.SetOrder(a, b)
	d.SetOrder(b, c)
	d.CalculatePredecessors()
	for _, edge := range [][2]Id{{a, b}, {b, c}, {a, c}} {
		assert.Equal(t, OrderHigher, d.GetOrder(edge[0], edge[1]))
		assert.Equal(t, OrderLower, d.GetOrder(edge[1], edge[0]))
	}
}
