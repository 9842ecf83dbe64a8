// Package optable implements the per-fixity operator table: maps from
// punctuation to operator info, with the infix-falls-back-to-assign
// lookup semantics assignment operators need.
package optable

import (
	"github.com/xenon-lang/xenonc/dag"
	"github.com/xenon-lang/xenonc/intern"
)

// Fixity is where an operator may appear relative to its operands.
type Fixity int

const (
	Prefix Fixity = iota
	Postfix
	Infix
	Assign
)

// LibraryPath addresses a symbol across library boundaries: an optional
// group, an optional package, and a library name.
type LibraryPath struct {
	Group   string
	Package string
	Library string
}

// String renders "group/package:library", omitting empty segments.
func (p LibraryPath) String() string {
	s := p.Library
	if p.Package != "" {
		s = p.Package + ":" + s
	}
	if p.Group != "" {
		s = p.Group + "/" + s
	}
	return s
}

// OperatorInfo is the payload of one registered operator.
type OperatorInfo struct {
	Fixity        Fixity
	Punctuation   intern.PunctuationId
	PrecedenceName string
	PrecedenceID  dag.Id
	LibraryPath   LibraryPath
	TraitPath     string
	FunctionName  string
}

// TraitPrecedence is the value side of the trait-path -> (precedence
// name, id) side table consulted for operator imports.
type TraitPrecedence struct {
	Name string
	ID   dag.Id
}

// Table holds the four per-fixity maps plus the trait-precedence side
// table.
type Table struct {
	byFixity        map[Fixity]map[intern.PunctuationId]OperatorInfo
	TraitPrecedences map[string]TraitPrecedence
}

// New returns an empty operator table.
func New() *Table {
	t := &Table{
		byFixity:         make(map[Fixity]map[intern.PunctuationId]OperatorInfo),
		TraitPrecedences: make(map[string]TraitPrecedence),
	}
	for _, f := range []Fixity{Prefix, Postfix, Infix, Assign} {
		t.byFixity[f] = make(map[intern.PunctuationId]OperatorInfo)
	}
	return t
}

// Add registers info under its own Fixity and Punctuation.
func (t *Table) Add(info OperatorInfo) {
	t.byFixity[info.Fixity][info.Punctuation] = info
}

// Get looks up punctuation under fixity; if fixity is Infix and no entry
// is found, it falls back to the Assign map, because assignment is infix
// with special semantics.
func (t *Table) Get(fixity Fixity, p intern.PunctuationId) (OperatorInfo, bool) {
	if info, ok := t.byFixity[fixity][p]; ok {
		return info, true
	}
	if fixity == Infix {
		if info, ok := t.byFixity[Assign][p]; ok {
			return info, true
		}
	}
	return OperatorInfo{}, false
}

// AddTraitPrecedence records the precedence a trait-derived operator
// import carries, keyed by the trait's scope path.
func (t *Table) AddTraitPrecedence(traitPath string, tp TraitPrecedence) {
	t.TraitPrecedences[traitPath] = tp
}

// All returns every registered OperatorInfo across all four fixities,
// grouped in Prefix/Postfix/Infix/Assign order, for dumping
// (`--dump-operators`). The order within one fixity is not defined.
func (t *Table) All() []OperatorInfo {
	var out []OperatorInfo
	for _, f := range []Fixity{Prefix, Postfix, Infix, Assign} {
		for _, info := range t.byFixity[f] {
			out = append(out, info)
		}
	}
	return out
}
