package optable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xenon-lang/xenonc/intern"
)

func TestInfixFallsBackToAssign(t *testing.T) {
	tbl := New()
	punct := intern.PunctuationId(1)
	tbl.Add(OperatorInfo{Fixity: Assign, Punctuation: punct, FunctionName: "add_assign"})

	got, ok := tbl.Get(Infix, punct)
	assert.True(t, ok, "infix lookup falls back to assign map on miss")
	assert.Equal(t, "add_assign", got.FunctionName)

	_, ok = tbl.Get(Prefix, punct)
	assert.False(t, ok, "prefix lookup does not fall back")
}

func TestDirectFixityTakesPriority(t *testing.T) {
	tbl := New()
	punct := intern.PunctuationId(2)
	tbl.Add(OperatorInfo{Fixity: Infix, Punctuation: punct, FunctionName: "add"})
	tbl.Add(OperatorInfo{Fixity: Assign, Punctuation: punct, FunctionName: "add_assign"})

	got, ok := tbl.Get(Infix, punct)
	assert.True(t, ok)
	assert.Equal(t, "add", got.FunctionName)
}

func TestLibraryPathString(t *testing.T) {
	p := LibraryPath{Group: "std", Package: "core", Library: "ops"}
	assert.Equal(t, "std/core:ops", p.String())
	assert.Equal(t, "ops", LibraryPath{Library: "ops"}.String())
}

func TestAllCollectsEveryFixity(t *testing.T) {
	tbl := New()
	tbl.Add(OperatorInfo{Fixity: Prefix, Punctuation: intern.PunctuationId(1), FunctionName: "neg"})
	tbl.Add(OperatorInfo{Fixity: Infix, Punctuation: intern.PunctuationId(2), FunctionName: "add"})
	tbl.Add(OperatorInfo{Fixity: Assign, Punctuation: intern.PunctuationId(3), FunctionName: "add_assign"})

	all := tbl.All()
	assert.Len(t, all, 3)
}
