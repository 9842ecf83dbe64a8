package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeEquality(t *testing.T) {
	tests := []struct {
		description string
		a, b        Scope
		wantEqual   bool
	}{
		{
			description: "identical segment sequences are equal",
			a:           New(NewSegment("a"), NewSegment("b")),
			b:           New(NewSegment("a"), NewSegment("b")),
			wantEqual:   true,
		},
		{
			description: "different param labels are not equal",
			a:           New(NewSegment("f").WithParams("x")),
			b:           New(NewSegment("f").WithParams("y")),
			wantEqual:   false,
		},
		{
			description: "different lengths are not equal",
			a:           New(NewSegment("a")),
			b:           New(NewSegment("a"), NewSegment("b")),
			wantEqual:   false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.wantEqual, tc.a.Equal(tc.b))
			if tc.wantEqual {
				assert.Equal(t, tc.a.Key(), tc.b.Key())
			}
		})
	}
}

func TestScopeOperations(t *testing.T) {
	s := New(NewSegment("m"), NewSegment("n"))
	pushed := s.Push(NewSegment("o"))
	assert.Equal(t, "m.n.o", pushed.String())

	popped, last := pushed.Pop()
	assert.Equal(t, "o", last.Name)
	assert.True(t, popped.Equal(s))

	parent := pushed.Parent()
	assert.Equal(t, "m.n", parent.String())

	sub := s.SubPath()
	assert.Equal(t, "n", sub.String())

	root, ok := s.Root()
	assert.True(t, ok)
	assert.Equal(t, "m", root.Name)

	lastSeg, ok := s.Last()
	assert.True(t, ok)
	assert.Equal(t, "n", lastSeg.Name)
}

func TestScopeFormatting(t *testing.T) {
	seg := NewSegment("get").WithGenArgs(GenArg{Kind: GenArgValue, Value: "T"}).WithParams("x", "y")
	s := New(NewSegment("seg0"), seg)
	assert.Equal(t, "seg0.get[T](x,y)", s.String())
}

func TestLookupStripsGenArgs(t *testing.T) {
	seg := NewSegment("f").WithGenArgs(GenArg{Kind: GenArgValue, Value: "T"}).WithParams("x")
	s := New(seg)
	looked := s.Lookup()
	assert.Empty(t, looked.Segments[0].GenArgs)
	assert.Equal(t, []string{"x"}, looked.Segments[0].Params)
}
