package annotate

import (
	"fmt"
	"strings"
)

// Delimiters of the ANN INFO payload.
const (
	ItemSeparator  = ","
	FieldSeparator = "|"
)

// MinEntryFields is the number of leading ANN sub-fields an item must carry.
const MinEntryFields = 11

// Entry is one per-transcript item of an ANN payload with its positional
// sub-fields bound to names.
type Entry struct {
	Allele       string // [0] allele the effect refers to
	Effect       string // [1] SO effect term(s)
	Impact       string // [2] HIGH, MODERATE, LOW, MODIFIER
	GeneName     string // [3]
	GeneID       string // [4]
	FeatureType  string // [5]
	TranscriptID string // [6] feature id
	Biotype      string // [7] transcript biotype
	Rank         string // [8] exon or intron rank
	HGVSc        string // [9] coding change, e.g. "c.34G>T"
	HGVSp        string // [10] protein change, e.g. "p.Gly12Cys"
	Raw          []string
}

// SplitPayload splits a raw ANN value into its annotation items.
func SplitPayload(payload string) []string {
	if payload == "" {
		return nil
	}
	return strings.Split(payload, ItemSeparator)
}

// ParseEntry splits one annotation item into an Entry.
func ParseEntry(item string) (*Entry, error) {
	f := strings.Split(item, FieldSeparator)
	if len(f) < MinEntryFields {
		return nil, fmt.Errorf("%w: %d sub-fields, need at least %d",
			ErrMalformedAnnotation, len(f), MinEntryFields)
	}
	return &Entry{
		Allele:       f[0],
		Effect:       f[1],
		Impact:       f[2],
		GeneName:     f[3],
		GeneID:       f[4],
		FeatureType:  f[5],
		TranscriptID: f[6],
		Biotype:      f[7],
		Rank:         f[8],
		HGVSc:        f[9],
		HGVSp:        f[10],
		Raw:          f,
	}, nil
}
