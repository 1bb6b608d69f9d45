package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
// ModTime is truncated to the microsecond precision DuckDB timestamps keep.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime().Truncate(time.Microsecond),
	}, nil
}

// SourceInfo describes the last stored run of an input file.
type SourceInfo struct {
	FileFingerprint
	RowCount int64
}

// Matches reports whether fp describes the same file content as the stored run.
func (si SourceInfo) Matches(fp FileFingerprint) bool {
	return si.Path == fp.Path && si.Size == fp.Size && si.ModTime.Equal(fp.ModTime)
}

// LookupSource returns the stored run for path. ok is false if the file was
// never stored.
func (s *Store) LookupSource(path string) (info SourceInfo, ok bool, err error) {
	row := s.db.QueryRow(`SELECT path, size, mod_time, row_count FROM sources WHERE path=?`, path)
	if err := row.Scan(&info.Path, &info.Size, &info.ModTime, &info.RowCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SourceInfo{}, false, nil
		}
		return SourceInfo{}, false, fmt.Errorf("lookup source: %w", err)
	}
	return info, true, nil
}
