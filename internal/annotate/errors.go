package annotate

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the record processor. Callers match them with
// errors.Is through any wrapping.
var (
	// ErrMalformedAnnotation is returned for an annotation item with fewer
	// sub-fields than the ANN layout requires.
	ErrMalformedAnnotation = errors.New("malformed annotation")

	// ErrUnclassifiedVariant is returned when an indel annotation cannot be
	// assigned an insertion or deletion allele.
	ErrUnclassifiedVariant = errors.New("unclassified variant")

	// ErrUnsupportedVariantType is returned for records that are neither
	// snp nor indel.
	ErrUnsupportedVariantType = errors.New("unsupported variant type")

	// ErrAmbiguousDeletion is returned in strict mode for records carrying
	// several deletions of different lengths.
	ErrAmbiguousDeletion = errors.New("ambiguous multi-deletion record")

	// ErrSourceRead wraps failures of the record source.
	ErrSourceRead = errors.New("read record")
)

// RecordError tags a processing failure with the record that caused it.
type RecordError struct {
	Chrom string
	Pos   int64
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s:%d: %v", e.Chrom, e.Pos, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
