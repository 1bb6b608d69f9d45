package annotate

import "strconv"

// Row is one resolved (record, annotation entry) pair.
type Row struct {
	Chrom        string
	Pos          int64
	Ref          string
	Alt          string // resolved ALT allele
	GeneName     string
	TranscriptID string
	HGVSp        string
}

// Fields returns the row's columns in output order.
func (r *Row) Fields() []string {
	return []string{
		r.Chrom,
		strconv.FormatInt(r.Pos, 10),
		r.Ref,
		r.Alt,
		r.GeneName,
		r.TranscriptID,
		r.HGVSp,
	}
}

// RowWriter defines the interface for writing resolved rows.
type RowWriter interface {
	Write(r *Row) error
	Flush() error
}
