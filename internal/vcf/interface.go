// Package vcf provides VCF file parsing functionality.
package vcf

// RecordSource is the interface for readers that yield variant records in
// file order.
type RecordSource interface {
	// Next reads the next variant.
	// Returns nil, nil when there are no more variants.
	Next() (*Variant, error)

	// Close closes the source and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}
