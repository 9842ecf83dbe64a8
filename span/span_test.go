package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryAddGet(t *testing.T) {
	r := NewRegistry()
	id := r.Add(Span{File: "a.xn", Start: 0, End: 3, Row: 1, Column: 1})
	got, ok := r.Get(id)
	assert.True(t, ok)
	assert.Equal(t, "a.xn", got.File)

	_, ok = r.Get(SpanId(99))
	assert.False(t, ok)
}

func TestCombine(t *testing.T) {
	a := Span{File: "a.xn", Start: 10, End: 15, Row: 2, Column: 3}
	b := Span{File: "a.xn", Start: 5, End: 12, Row: 2, Column: 1}
	c := Combine(a, b)
	assert.Equal(t, 5, c.Start)
	assert.Equal(t, 15, c.End)
	assert.Equal(t, 2, c.Row)
	assert.Equal(t, 1, c.Column)
}

func TestFormat(t *testing.T) {
	sp := Span{File: "main.xn", Row: 4, Column: 7}
	assert.Equal(t, "main.xn:4:7", FormatLoc(sp))
	assert.Equal(t, "main.xn:4:7: unknown symbol", Format(sp, "unknown symbol"))
}
