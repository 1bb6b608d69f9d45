// Package output provides row output formatters.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/protchange/internal/annotate"
)

// FieldSeparator separates the columns of a text row.
const FieldSeparator = " "

// TextWriter writes rows as space-separated lines without a header.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a new text row writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write writes a single row.
func (tw *TextWriter) Write(r *annotate.Row) error {
	_, err := tw.w.WriteString(strings.Join(r.Fields(), FieldSeparator) + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TextWriter) Flush() error {
	return tw.w.Flush()
}
