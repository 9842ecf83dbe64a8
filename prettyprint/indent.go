// Package prettyprint provides the dump-rendering primitives the driver
// flags need: YAML snapshot marshalling for the dump artifacts (nested
// snapshots for the symbol table and DAGs), and an indenting writer built
// on github.com/kr/text's indent writer, which none of the dumps use.
package prettyprint

import (
	"io"

	"github.com/kr/text"
)

// IndentWriter wraps w so every line written through it is prefixed with
// depth*two spaces.
type IndentWriter struct {
	w io.Writer
}

// NewIndentWriter returns an IndentWriter that indents every write by
// depth levels (each level two spaces), per kr/text's line-prefixing
// writer.
func NewIndentWriter(w io.Writer, depth int) *IndentWriter {
	prefix := make([]byte, depth*2)
	for i := range prefix {
		prefix[i] = ' '
	}
	return &IndentWriter{w: text.NewIndentWriter(w, prefix)}
}

func (iw *IndentWriter) Write(p []byte) (int, error) {
	return iw.w.Write(p)
}
