package annotate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const krasItem = "A|missense_variant|MODERATE|KRAS|ENSG00000133703|transcript|ENST00000311936.8|" +
	"protein_coding|2/5|c.34G>T|p.Gly12Cys|180/5430|34/570|12/189||"

func TestParseEntry(t *testing.T) {
	e, err := ParseEntry(krasItem)
	require.NoError(t, err)

	assert.Equal(t, "A", e.Allele)
	assert.Equal(t, "missense_variant", e.Effect)
	assert.Equal(t, "MODERATE", e.Impact)
	assert.Equal(t, "KRAS", e.GeneName)
	assert.Equal(t, "ENSG00000133703", e.GeneID)
	assert.Equal(t, "transcript", e.FeatureType)
	assert.Equal(t, "ENST00000311936.8", e.TranscriptID)
	assert.Equal(t, "protein_coding", e.Biotype)
	assert.Equal(t, "2/5", e.Rank)
	assert.Equal(t, "c.34G>T", e.HGVSc)
	assert.Equal(t, "p.Gly12Cys", e.HGVSp)
	assert.Len(t, e.Raw, 16)
}

func TestParseEntry_MinimumFields(t *testing.T) {
	e, err := ParseEntry("G|||GENE|||TX1|protein_coding||c.1A>G|p.Met1?")
	require.NoError(t, err)
	assert.Equal(t, "p.Met1?", e.HGVSp)
	assert.Len(t, e.Raw, MinEntryFields)
}

func TestParseEntry_Malformed(t *testing.T) {
	tests := []struct {
		name string
		item string
	}{
		{"empty", ""},
		{"ten fields", "A|missense_variant|MODERATE|KRAS|ENSG|transcript|ENST|protein_coding|2/5|c.34G>T"},
		{"vep csq without pipes", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEntry(tt.item)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedAnnotation))
		})
	}
}

func TestSplitPayload(t *testing.T) {
	assert.Nil(t, SplitPayload(""))
	assert.Equal(t, []string{"a|b", "c|d"}, SplitPayload("a|b,c|d"))
}

func TestIsProteinImpacting(t *testing.T) {
	tests := []struct {
		name    string
		biotype string
		hgvsp   string
		want    bool
	}{
		{"protein coding with change", "protein_coding", "p.Gly12Cys", true},
		{"protein coding without change", "protein_coding", "", false},
		{"pseudogene", "pseudogene", "p.Leu138fs", false},
		{"nonsense mediated decay", "nonsense_mediated_decay", "p.Gly12Cys", false},
		{"empty biotype", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{Biotype: tt.biotype, HGVSp: tt.hgvsp}
			assert.Equal(t, tt.want, IsProteinImpacting(e))
		})
	}
}
