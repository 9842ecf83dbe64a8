package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameTable(t *testing.T) {
	tests := []struct {
		description string
		add         []string
		lookup      string
		wantFound   bool
	}{
		{description: "repeated add is idempotent", add: []string{"foo", "foo"}, lookup: "foo", wantFound: true},
		{description: "unknown string is invalid", add: []string{"foo"}, lookup: "bar", wantFound: false},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			tbl := NewNameTable()
			var ids []NameId
			for _, s := range tc.add {
				ids = append(ids, tbl.Add(s))
			}
			for i := 1; i < len(ids); i++ {
				if tc.add[i] == tc.add[0] {
					assert.Equal(t, ids[0], ids[i], "add(s) == add(s)")
				}
			}
			got := tbl.GetIDForStr(tc.lookup)
			if tc.wantFound {
				assert.NotEqual(t, InvalidName, got)
			} else {
				assert.Equal(t, InvalidName, got)
			}
		})
	}
}

func TestLiteralTableInterning(t *testing.T) {
	tbl := NewLiteralTable()
	a := tbl.Add(Literal{Kind: LiteralDecimal, Digits: []byte("123")})
	b := tbl.Add(Literal{Kind: LiteralDecimal, Digits: []byte("123")})
	c := tbl.Add(Literal{Kind: LiteralDecimal, Digits: []byte("456")})
	assert.Equal(t, a, b, "structurally equal literals intern to the same id")
	assert.NotEqual(t, a, c)

	got, ok := tbl.Get(a)
	assert.True(t, ok)
	assert.Equal(t, LiteralDecimal, got.Kind)
}
