package output

import (
	"errors"

	"github.com/inodb/protchange/internal/annotate"
)

// MultiWriter sends every row to each of its writers in order.
type MultiWriter struct {
	writers []annotate.RowWriter
}

// NewMultiWriter combines writers. With a single writer it returns that writer.
func NewMultiWriter(writers ...annotate.RowWriter) annotate.RowWriter {
	if len(writers) == 1 {
		return writers[0]
	}
	return &MultiWriter{writers: writers}
}

// Write writes r to every writer, stopping at the first failure.
func (mw *MultiWriter) Write(r *annotate.Row) error {
	for _, w := range mw.writers {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes all writers and joins their errors.
func (mw *MultiWriter) Flush() error {
	var errs []error
	for _, w := range mw.writers {
		if err := w.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
