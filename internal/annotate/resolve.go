package annotate

import (
	"fmt"
	"strings"

	"github.com/inodb/protchange/internal/vcf"
)

// Resolve returns the ALT allele an annotation entry refers to, written the
// way the record's ALT column spells it.
//
// Annotators report only the inserted bases for insertions, so those get the
// anchoring reference prefixed. Deletion alleles are taken from the record's
// own ALT list. A multi-allelic indel is sorted into insertion or deletion by
// its HGVS c. descriptor; for deletions the shortest ALT is chosen, which is
// only correct when the record holds a single deletion length (see
// AmbiguousDeletion).
func Resolve(vt vcf.VariantType, st vcf.VariantSubtype, ref string, alts []string, e *Entry) (string, error) {
	switch vt {
	case vcf.TypeSNP:
		return e.Allele, nil
	case vcf.TypeIndel:
		switch st {
		case vcf.SubtypeInsertion:
			return ref + e.Allele, nil
		case vcf.SubtypeDeletion:
			if len(alts) == 0 || alts[0] == vcf.MissingAllele {
				return "", fmt.Errorf("%w: deletion without ALT alleles", ErrUnclassifiedVariant)
			}
			return alts[0], nil
		case vcf.SubtypeUnknown:
			// ins/dup is checked first, so delins resolves as an insertion.
			switch {
			case isInsertionDescriptor(e.HGVSc):
				return ref + e.Allele, nil
			case strings.Contains(e.HGVSc, "del"):
				alt, ok := shortest(alts)
				if !ok || alt == vcf.MissingAllele {
					return "", fmt.Errorf("%w: deletion without ALT alleles", ErrUnclassifiedVariant)
				}
				return alt, nil
			}
			return "", fmt.Errorf("%w: HGVSc %q is neither insertion nor deletion",
				ErrUnclassifiedVariant, e.HGVSc)
		}
		return "", fmt.Errorf("%w: indel subtype %q", ErrUnclassifiedVariant, st)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedVariantType, vt)
}

// AmbiguousDeletion reports whether a record carries two or more deletion
// alleles of different lengths. Resolve cannot tell such deletions apart.
func AmbiguousDeletion(ref string, alts []string) bool {
	first := -1
	for _, alt := range alts {
		if len(alt) >= len(ref) {
			continue
		}
		if first < 0 {
			first = len(alt)
		} else if len(alt) != first {
			return true
		}
	}
	return false
}

// isInsertionDescriptor reports whether an HGVS c. descriptor names an
// insertion or duplication.
func isInsertionDescriptor(hgvsc string) bool {
	return strings.Contains(hgvsc, "ins") || strings.Contains(hgvsc, "dup")
}

// shortest returns the first allele of minimal length.
func shortest(alts []string) (string, bool) {
	if len(alts) == 0 {
		return "", false
	}
	best := alts[0]
	for _, alt := range alts[1:] {
		if len(alt) < len(best) {
			best = alt
		}
	}
	return best, true
}
