package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/protchange/internal/annotate"
)

// ReplaceSource stores rows as the content of fp.Path, replacing what an
// earlier run stored for the same file, and records the fingerprint. The
// delete, the appends and the source update share one transaction, so a
// failure leaves the previous rows and fingerprint in place.
func (s *Store) ReplaceSource(fp FileFingerprint, rows []*annotate.Row) error {
	ctx := context.Background()
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN TRANSACTION"); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := replaceSource(ctx, conn, fp, rows); err != nil {
		conn.ExecContext(ctx, "ROLLBACK")
		return err
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func replaceSource(ctx context.Context, conn *sql.Conn, fp FileFingerprint, rows []*annotate.Row) error {
	if _, err := conn.ExecContext(ctx, "DELETE FROM resolved_rows WHERE source=?", fp.Path); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	if err := appendRows(conn, fp.Path, rows); err != nil {
		return err
	}
	_, err := conn.ExecContext(ctx, `INSERT OR REPLACE INTO sources (path, size, mod_time, row_count)
		VALUES (?, ?, ?, ?)`, fp.Path, fp.Size, fp.ModTime.UTC(), int64(len(rows)))
	if err != nil {
		return fmt.Errorf("save source: %w", err)
	}
	return nil
}

// appendRows appends rows in order using the Appender API on conn.
func appendRows(conn *sql.Conn, source string, rows []*annotate.Row) error {
	if len(rows) == 0 {
		return nil
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "resolved_rows")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}

	for i, r := range rows {
		if err := appender.AppendRow(
			source, int64(i), r.Chrom, r.Pos, r.Ref, r.Alt,
			r.GeneName, r.TranscriptID, r.HGVSp,
		); err != nil {
			appender.Close()
			return fmt.Errorf("append row: %w", err)
		}
	}

	if err := appender.Close(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	return nil
}

// ClearRows removes all stored rows and sources.
func (s *Store) ClearRows() error {
	if _, err := s.db.Exec("DELETE FROM resolved_rows"); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM sources")
	return err
}

// SearchByGene returns all stored rows for a gene.
func (s *Store) SearchByGene(geneName string) ([]*annotate.Row, error) {
	rows, err := s.db.Query(`SELECT
		chrom, pos, ref, alt, gene_name, transcript_id, hgvsp
		FROM resolved_rows
		WHERE gene_name=?
		ORDER BY source, seq`, geneName)
	if err != nil {
		return nil, fmt.Errorf("query by gene: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// SearchByProteinChange returns stored rows matching a gene and HGVS
// protein change (e.g. "p.Gly12Cys").
func (s *Store) SearchByProteinChange(geneName, hgvsp string) ([]*annotate.Row, error) {
	rows, err := s.db.Query(`SELECT
		chrom, pos, ref, alt, gene_name, transcript_id, hgvsp
		FROM resolved_rows
		WHERE gene_name=? AND hgvsp=?
		ORDER BY source, seq`, geneName, hgvsp)
	if err != nil {
		return nil, fmt.Errorf("query by protein change: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// scanRows scans result rows into annotate.Row values.
func scanRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*annotate.Row, error) {
	var results []*annotate.Row
	for rows.Next() {
		var r annotate.Row
		if err := rows.Scan(
			&r.Chrom, &r.Pos, &r.Ref, &r.Alt, &r.GeneName, &r.TranscriptID, &r.HGVSp,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return results, nil
}
