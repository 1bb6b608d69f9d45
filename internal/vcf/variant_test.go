package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariant_Classification(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		alts    []string
		info    map[string]interface{}
		wantTyp VariantType
		wantSub VariantSubtype
	}{
		{"transition A>G", "A", []string{"G"}, nil, TypeSNP, SubtypeTransition},
		{"transition C>T", "C", []string{"T"}, nil, TypeSNP, SubtypeTransition},
		{"transversion C>A (KRAS G12C)", "C", []string{"A"}, nil, TypeSNP, SubtypeTransversion},
		{"multi-allelic snp", "A", []string{"C", "G"}, nil, TypeSNP, SubtypeUnknown},
		{"spanning deletion allele", "A", []string{"*"}, nil, TypeSNP, SubtypeTransversion},
		{"single insertion", "T", []string{"TAC"}, nil, TypeIndel, SubtypeInsertion},
		{"single deletion", "ATG", []string{"A"}, nil, TypeIndel, SubtypeDeletion},
		{"missing alt", "A", []string{"."}, nil, TypeIndel, SubtypeDeletion},
		{"multi-allelic deletions", "CTT", []string{"CT", "C"}, nil, TypeIndel, SubtypeUnknown},
		{"mixed ins and del", "CTT", []string{"CT", "C", "CTTT"}, nil, TypeIndel, SubtypeUnknown},
		{"multi-allelic insertions", "T", []string{"TA", "TAA"}, nil, TypeIndel, SubtypeUnknown},
		// A multi-base reference without length change is still an indel and,
		// having a single ALT, is labelled an insertion.
		{"MNV", "AT", []string{"GC"}, nil, TypeIndel, SubtypeInsertion},
		{"snp with indel allele", "A", []string{"G", "AT"}, nil, TypeIndel, SubtypeUnknown},
		{"structural variant", "N", []string{"<DEL>"}, map[string]interface{}{"SVTYPE": "DEL"}, TypeSV, VariantSubtype("DEL")},
		{"symbolic without SVTYPE", "N", []string{"<DUP>"}, nil, TypeUnknown, SubtypeUnknown},
		{"breakend", "G", []string{"G]17:198982]"}, nil, TypeUnknown, SubtypeUnknown},
		{"length change with SVTYPE", "A", []string{"ACGTACGTAC"}, map[string]interface{}{"SVTYPE": "INS"}, TypeSV, VariantSubtype("INS")},
		{"multi-base ref with SVTYPE", "CCCCTCGCA", []string{"C"}, map[string]interface{}{"SVTYPE": "DEL"}, TypeSV, VariantSubtype("DEL")},
		{"single breakend before", "A", []string{".ACGT"}, nil, TypeUnknown, SubtypeUnknown},
		{"single breakend after", "A", []string{"ACGT."}, nil, TypeUnknown, SubtypeUnknown},
		{"lowercase base", "a", []string{"g"}, nil, TypeUnknown, SubtypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Variant{Ref: tt.ref, Alts: tt.alts, Info: tt.info}
			assert.Equal(t, tt.wantTyp, v.Type(), "Type()")
			assert.Equal(t, tt.wantSub, v.Subtype(), "Subtype()")
		})
	}
}

func TestVariant_IsDeletion(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		alts []string
		want bool
	}{
		{"SNV", "A", []string{"G"}, false},
		{"deletion", "AT", []string{"A"}, true},
		{"insertion", "A", []string{"AT"}, false},
		{"larger deletion", "ATGC", []string{"A"}, true},
		{"two deletions", "ATG", []string{"A", "AT"}, false},
		{"missing alt", "A", []string{"."}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Variant{Ref: tt.ref, Alts: tt.alts}
			assert.Equal(t, tt.want, v.IsDeletion())
		})
	}
}

func TestVariant_InfoString(t *testing.T) {
	v := &Variant{Info: map[string]interface{}{
		"ANN":     "A|missense_variant",
		"SOMATIC": true,
	}}

	s, ok := v.InfoString("ANN")
	assert.True(t, ok)
	assert.Equal(t, "A|missense_variant", s)

	_, ok = v.InfoString("SOMATIC")
	assert.False(t, ok)

	_, ok = v.InfoString("CSQ")
	assert.False(t, ok)
}
