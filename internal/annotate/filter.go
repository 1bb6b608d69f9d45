package annotate

// BiotypeProteinCoding is the transcript biotype of protein-coding features.
const BiotypeProteinCoding = "protein_coding"

// IsProteinImpacting reports whether an entry describes a protein-coding
// transcript with a protein-level change.
func IsProteinImpacting(e *Entry) bool {
	return e.Biotype == BiotypeProteinCoding && e.HGVSp != ""
}
