// Package diag implements the error taxonomy, the mutex-protected error
// log, and diagnostic rendering. github.com/pkg/errors wraps
// Internal-kind errors so invariant violations keep a stack trace.
package diag

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/xenon-lang/xenonc/span"
)

// Kind tags the taxonomy bucket an Error belongs to.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Attribute
	Scoping
	Resolution
	DAGCycle
	Internal
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Attribute:
		return "attribute"
	case Scoping:
		return "scoping"
	case Resolution:
		return "resolution"
	case DAGCycle:
		return "dag"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Code identifies the specific error within its Kind.
type Code int

const (
	CodeUnexpectedChar Code = iota
	CodeUnterminatedLiteral
	CodeNotEnoughTokens
	CodeFoundButExpected
	CodeMalformedConstruct
	CodeInvalidAttribute
	CodeInvalidAttributeData
	CodeNotTopLevel
	CodeUnknownSymbol
	CodeCycle
	CodeInvariantViolation
)

// Error is one diagnostic. Span is the zero value when the caller has
// no source location to attach; Info/Path carry the per-code payload
// (NotTopLevel{path,info}, UnknownSymbol{path}, etc).
type Error struct {
	Kind    Kind
	Code    Code
	Span    span.Span
	Message string
	Path    string
	Info    string
	Cycle   []string
	cause   error
}

// Error implements the error interface, rendering
// "<file>:<row>:<column>: <message>". DAG cycles additionally render
// the full cycle node list.
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" && msg == "" {
		msg = e.Path
	}
	if e.Code == CodeCycle && len(e.Cycle) > 0 {
		msg = fmt.Sprintf("cycle detected: %v", e.Cycle)
	}
	if e.Span.File == "" {
		return msg
	}
	return span.Format(e.Span, msg)
}

// Unwrap exposes the stack-carrying cause for Internal-kind errors.
func (e *Error) Unwrap() error { return e.cause }

// NewUnknownSymbol builds a Resolution/UnknownSymbol{path} error.
func NewUnknownSymbol(sp span.Span, path string) *Error {
	return &Error{Kind: Resolution, Code: CodeUnknownSymbol, Span: sp, Path: path, Message: "unknown symbol: " + path}
}

// NewNotTopLevel builds a Scoping/NotTopLevel{path,info} error.
func NewNotTopLevel(sp span.Span, path, info string) *Error {
	return &Error{Kind: Scoping, Code: CodeNotTopLevel, Span: sp, Path: path, Info: info, Message: fmt.Sprintf("%s must appear at the library root (%s)", path, info)}
}

// NewInvalidAttribute builds an Attribute/InvalidAttribute{info} error.
func NewInvalidAttribute(sp span.Span, info string) *Error {
	return &Error{Kind: Attribute, Code: CodeInvalidAttribute, Span: sp, Info: info, Message: "invalid attribute: " + info}
}

// NewInvalidAttributeData builds an Attribute/InvalidAttributeData{info}
// error.
func NewInvalidAttributeData(sp span.Span, info string) *Error {
	return &Error{Kind: Attribute, Code: CodeInvalidAttributeData, Span: sp, Info: info, Message: "invalid attribute data: " + info}
}

// NewCycle builds a DAG cycle error rendering the full node list.
func NewCycle(kind string, cycle []string) *Error {
	return &Error{Kind: DAGCycle, Code: CodeCycle, Cycle: cycle, Message: fmt.Sprintf("%s dependency cycle", kind)}
}

// NewInternal builds an Internal error carrying a stack trace; the
// pipeline reports the message and continues.
func NewInternal(message string) *Error {
	return &Error{Kind: Internal, Code: CodeInvariantViolation, Message: message, cause: errors.New(message)}
}

// Log is a mutex-protected, append-only error vector. Insertion is
// fire-and-forget and never blocks further processing.
type Log struct {
	mu     sync.Mutex
	errors []*Error
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Report appends err. Safe for concurrent use.
func (l *Log) Report(err *Error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, err)
}

// Errors returns a snapshot of all reported errors, stably ordered by
// file then row then column so rendering is deterministic regardless of
// which pass or goroutine reported first.
func (l *Log) Errors() []*Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := append([]*Error(nil), l.errors...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Span.File != b.Span.File {
			return a.Span.File < b.Span.File
		}
		if a.Span.Row != b.Span.Row {
			return a.Span.Row < b.Span.Row
		}
		return a.Span.Column < b.Span.Column
	})
	return out
}

// HasErrors reports whether any diagnostic was ever reported.
func (l *Log) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors) > 0
}

// Render renders every error via Error(), one per line.
func (l *Log) Render() []string {
	errs := l.Errors()
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
