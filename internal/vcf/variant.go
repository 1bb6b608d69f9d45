// Package vcf provides VCF file parsing functionality.
package vcf

import "strings"

// VariantType is the record-level classification of a variant.
type VariantType string

// Variant types.
const (
	TypeSNP     VariantType = "snp"
	TypeIndel   VariantType = "indel"
	TypeSV      VariantType = "sv"
	TypeUnknown VariantType = "unknown"
)

// VariantSubtype refines a VariantType.
// SNPs are ts/tv, indels are ins/del, SVs carry their SVTYPE value.
// Records that cannot be refined are SubtypeUnknown.
type VariantSubtype string

// Variant subtypes.
const (
	SubtypeTransition   VariantSubtype = "ts"
	SubtypeTransversion VariantSubtype = "tv"
	SubtypeInsertion    VariantSubtype = "ins"
	SubtypeDeletion     VariantSubtype = "del"
	SubtypeUnknown      VariantSubtype = "unknown"
)

// MissingAllele is the VCF placeholder for an absent allele.
const MissingAllele = "."

// Variant represents a single record from a VCF file.
type Variant struct {
	Chrom  string                 // Chromosome name (e.g., "12", "chr12")
	Pos    int64                  // 1-based genomic position
	ID     string                 // Variant identifier (e.g., rs ID)
	Ref    string                 // Reference allele
	Alts   []string               // Alternate alleles in ALT column order
	Qual   float64                // Quality score
	Filter string                 // Filter status (PASS or filter name)
	Info   map[string]interface{} // INFO field key-value pairs
}

// InfoString returns the raw string value of an INFO key.
// Flag keys and absent keys report ok == false.
func (v *Variant) InfoString(key string) (string, bool) {
	val, ok := v.Info[key]
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// IsSV returns true if the record declares a structural variant type.
func (v *Variant) IsSV() bool {
	_, ok := v.Info["SVTYPE"]
	return ok
}

// IsSNP returns true if the reference is at most one base and every
// alternate allele is a single base.
func (v *Variant) IsSNP() bool {
	if len(v.Ref) > 1 || len(v.Alts) == 0 {
		return false
	}
	for _, alt := range v.Alts {
		switch alt {
		case "A", "C", "G", "T", "N", "*":
		default:
			return false
		}
	}
	return true
}

// IsIndel returns true if any alternate allele changes the length of the
// reference. A multi-base reference counts as an indel unless the record is
// a structural variant, and a length change in an SVTYPE record is an SV.
func (v *Variant) IsIndel() bool {
	sv := v.IsSV()
	if len(v.Ref) > 1 && !sv {
		return true
	}
	for _, alt := range v.Alts {
		if alt == MissingAllele {
			return true
		}
		if isSymbolic(alt) {
			return false
		}
		if len(alt) != len(v.Ref) {
			return !sv
		}
	}
	return false
}

// IsDeletion returns true for a single-allele indel whose alternate is
// missing or shorter than the reference.
func (v *Variant) IsDeletion() bool {
	if len(v.Alts) != 1 || !v.IsIndel() {
		return false
	}
	alt := v.Alts[0]
	return alt == MissingAllele || len(v.Ref) > len(alt)
}

// IsTransition returns true for a single-allele purine<->purine or
// pyrimidine<->pyrimidine substitution.
func (v *Variant) IsTransition() bool {
	if len(v.Alts) != 1 || !v.IsSNP() {
		return false
	}
	switch v.Ref + v.Alts[0] {
	case "AG", "GA", "CT", "TC":
		return true
	}
	return false
}

// Type classifies the record as snp, indel, sv or unknown, in that order.
func (v *Variant) Type() VariantType {
	switch {
	case v.IsSNP():
		return TypeSNP
	case v.IsIndel():
		return TypeIndel
	case v.IsSV():
		return TypeSV
	}
	return TypeUnknown
}

// Subtype refines Type. Multi-allelic indels that are not a single deletion
// or insertion report SubtypeUnknown.
func (v *Variant) Subtype() VariantSubtype {
	switch {
	case v.IsSNP():
		if v.IsTransition() {
			return SubtypeTransition
		}
		if len(v.Alts) == 1 {
			return SubtypeTransversion
		}
		return SubtypeUnknown
	case v.IsIndel():
		if v.IsDeletion() {
			return SubtypeDeletion
		}
		if len(v.Alts) == 1 {
			return SubtypeInsertion
		}
		return SubtypeUnknown
	case v.IsSV():
		if s, ok := v.InfoString("SVTYPE"); ok && s != "" {
			return VariantSubtype(s)
		}
	}
	return SubtypeUnknown
}

// isSymbolic reports whether an allele is a symbolic allele, a breakend
// (t[p[, ]p]t) or a single breakend (.t, t.).
func isSymbolic(alt string) bool {
	if strings.HasPrefix(alt, "<") || strings.ContainsAny(alt, "[]") {
		return true
	}
	return len(alt) > 1 && (strings.HasPrefix(alt, ".") || strings.HasSuffix(alt, "."))
}
