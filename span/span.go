// Package span tracks source locations: a file-indexed registry of byte
// ranges plus row/column rendering for diagnostics.
package span

import "fmt"

// SpanId identifies a registered Span. InvalidSpan never equals any id
// returned by (*Registry).Add.
type SpanId int32

// InvalidSpan is the sentinel span id.
const InvalidSpan SpanId = -1

// Span is a half-open byte range [Start, End) within a file, along with
// the 1-based row/column of Start for rendering.
type Span struct {
	File   string
	Start  int
	End    int
	Row    int
	Column int
}

// Registry records spans, giving every Add call a new id (identical spans
// are not deduplicated), and dedups files by path.
type Registry struct {
	files []string
	byFile map[string]int
	spans  []Span
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byFile: make(map[string]int)}
}

func (r *Registry) internFile(file string) int {
	if idx, ok := r.byFile[file]; ok {
		return idx
	}
	idx := len(r.files)
	r.files = append(r.files, file)
	r.byFile[file] = idx
	return idx
}

// Add registers sp and returns its id.
func (r *Registry) Add(sp Span) SpanId {
	r.internFile(sp.File)
	id := SpanId(len(r.spans))
	r.spans = append(r.spans, sp)
	return id
}

// Get returns the span for id, or the zero Span and false if out of range.
func (r *Registry) Get(id SpanId) (Span, bool) {
	if id < 0 || int(id) >= len(r.spans) {
		return Span{}, false
	}
	return r.spans[id], true
}

// Combine returns the smallest span covering both a and b. Both must
// belong to the same file; if they don't, a is returned unchanged.
func Combine(a, b Span) Span {
	if a.File != b.File {
		return a
	}
	start, row, col := a.Start, a.Row, a.Column
	if b.Start < start {
		start, row, col = b.Start, b.Row, b.Column
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{File: a.File, Start: start, End: end, Row: row, Column: col}
}

// FormatLoc renders "<file>:<row>:<column>".
func FormatLoc(sp Span) string {
	return fmt.Sprintf("%s:%d:%d", sp.File, sp.Row, sp.Column)
}

// Format renders "<file>:<row>:<column>: <message>".
func Format(sp Span, message string) string {
	return fmt.Sprintf("%s: %s", FormatLoc(sp), message)
}
