package duckdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/protchange/internal/annotate"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRows() []*annotate.Row {
	return []*annotate.Row{
		{Chrom: "12", Pos: 25245351, Ref: "C", Alt: "A", GeneName: "KRAS",
			TranscriptID: "ENST00000311936.8", HGVSp: "p.Gly12Cys"},
		{Chrom: "12", Pos: 25245351, Ref: "C", Alt: "A", GeneName: "KRAS",
			TranscriptID: "ENST00000256078.10", HGVSp: "p.Gly12Cys"},
		{Chrom: "7", Pos: 55181319, Ref: "T", Alt: "TAC", GeneName: "EGFR",
			TranscriptID: "ENST00000275493.7", HGVSp: "p.Glu746fs"},
		{Chrom: "12", Pos: 25245350, Ref: "C", Alt: "T", GeneName: "KRAS",
			TranscriptID: "ENST00000311936.8", HGVSp: "p.Gly12Asp"},
	}
}

func source(path string) FileFingerprint {
	return FileFingerprint{Path: path, Size: 100, ModTime: time.Unix(1700000000, 0)}
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	rows, err := s.SearchByGene("KRAS")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rows.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestReplaceSourceAndSearch(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.ReplaceSource(source("a.vcf"), sampleRows()))

	rows, err := s.SearchByGene("KRAS")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ENST00000311936.8", rows[0].TranscriptID)
	assert.Equal(t, "ENST00000256078.10", rows[1].TranscriptID)
	assert.Equal(t, "p.Gly12Asp", rows[2].HGVSp)
	assert.Equal(t, *sampleRows()[0], *rows[0])

	rows, err = s.SearchByProteinChange("KRAS", "p.Gly12Cys")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = s.SearchByGene("BRAF")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReplaceSource_Idempotent(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.ReplaceSource(source("a.vcf"), sampleRows()))
	require.NoError(t, s.ReplaceSource(source("a.vcf"), sampleRows()))
	require.NoError(t, s.ReplaceSource(source("b.vcf"), sampleRows()[2:3]))

	rows, err := s.SearchByGene("KRAS")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = s.SearchByGene("EGFR")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, s.ReplaceSource(source("a.vcf"), nil))
	rows, err = s.SearchByGene("KRAS")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReplaceSource_FailureKeepsPreviousRows(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.ReplaceSource(source("a.vcf"), sampleRows()))

	// Fails after the delete and the appends have run.
	_, err := s.db.Exec("DROP TABLE sources")
	require.NoError(t, err)
	err = s.ReplaceSource(source("a.vcf"), sampleRows()[2:3])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save source")

	rows, err := s.SearchByGene("KRAS")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = s.SearchByGene("EGFR")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestClearRows(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.ReplaceSource(source("a.vcf"), sampleRows()))

	require.NoError(t, s.ClearRows())

	rows, err := s.SearchByGene("KRAS")
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, ok, err := s.LookupSource("a.vcf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSources(t *testing.T) {
	s := openInMemory(t)

	path := filepath.Join(t.TempDir(), "input.vcf")
	require.NoError(t, os.WriteFile(path, []byte("##fileformat=VCFv4.2\n"), 0644))
	fp, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(21), fp.Size)

	_, ok, err := s.LookupSource(path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.ReplaceSource(fp, sampleRows()))
	require.NoError(t, s.ReplaceSource(fp, sampleRows()[:3]))

	info, ok, err := s.LookupSource(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), info.RowCount)
	assert.True(t, info.Matches(fp))

	changed := fp
	changed.Size++
	assert.False(t, info.Matches(changed))
}

func TestStatFile_Missing(t *testing.T) {
	_, err := StatFile(filepath.Join(t.TempDir(), "absent.vcf"))
	assert.True(t, os.IsNotExist(err))
}

func TestRowSink(t *testing.T) {
	s := openInMemory(t)
	fp := FileFingerprint{Path: "/data/sample.vcf", Size: 100, ModTime: time.Unix(1700000000, 0)}

	sink := s.NewRowSink(fp)
	var _ annotate.RowWriter = sink
	for _, r := range sampleRows() {
		require.NoError(t, sink.Write(r))
	}

	rows, err := s.SearchByGene("KRAS")
	require.NoError(t, err)
	assert.Empty(t, rows, "rows are stored on Flush")

	require.NoError(t, sink.Flush())

	rows, err = s.SearchByGene("KRAS")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	info, ok, err := s.LookupSource(fp.Path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(4), info.RowCount)
	assert.True(t, info.Matches(fp))
}
