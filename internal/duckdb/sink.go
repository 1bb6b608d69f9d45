package duckdb

import (
	"fmt"

	"github.com/inodb/protchange/internal/annotate"
)

// RowSink buffers the rows of one input file and stores them on Flush,
// replacing any rows a previous run stored for the same file.
// RowSink implements annotate.RowWriter.
type RowSink struct {
	store  *Store
	source FileFingerprint
	rows   []*annotate.Row
}

// NewRowSink creates a sink storing rows under fp.Path.
func (s *Store) NewRowSink(fp FileFingerprint) *RowSink {
	return &RowSink{store: s, source: fp}
}

// Write buffers a row.
func (rs *RowSink) Write(r *annotate.Row) error {
	rs.rows = append(rs.rows, r)
	return nil
}

// Flush stores the buffered rows and the source fingerprint.
func (rs *RowSink) Flush() error {
	if err := rs.store.ReplaceSource(rs.source, rs.rows); err != nil {
		return fmt.Errorf("store rows: %w", err)
	}
	rs.rows = rs.rows[:0]
	return nil
}
