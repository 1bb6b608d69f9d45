// Package annotate resolves protein-level changes from ANN-annotated VCF
// records.
package annotate

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/protchange/internal/vcf"
)

// DefaultInfoKey is the INFO key holding the annotation payload.
const DefaultInfoKey = "ANN"

// Stats counts what a Processor has seen.
type Stats struct {
	Records     int // records read from the source
	Unannotated int // records without an annotation payload
	Items       int // annotation items parsed
	Filtered    int // items dropped by IsProteinImpacting
	Rows        int // rows emitted
}

// Processor turns variant records into resolved rows.
type Processor struct {
	infoKey         string
	strictDeletions bool
	logger          *zap.Logger
	stats           Stats
}

// NewProcessor creates a processor reading the ANN INFO key.
func NewProcessor() *Processor {
	return &Processor{
		infoKey: DefaultInfoKey,
		logger:  zap.NewNop(),
	}
}

// SetInfoKey sets the INFO key holding the annotation payload.
func (p *Processor) SetInfoKey(key string) {
	p.infoKey = key
}

// SetStrictDeletions configures whether records with several deletion
// lengths fail with ErrAmbiguousDeletion instead of being logged.
func (p *Processor) SetStrictDeletions(strict bool) {
	p.strictDeletions = strict
}

// SetLogger sets the logger for warning and info messages.
func (p *Processor) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Stats returns the counters accumulated so far.
func (p *Processor) Stats() Stats {
	return p.stats
}

// Process resolves every protein-impacting annotation of v and passes the
// rows to emit in annotation order. Failures are returned as *RecordError.
func (p *Processor) Process(v *vcf.Variant, emit func(*Row) error) error {
	chrom, pos, ref, alts := v.Chrom, v.Pos, v.Ref, v.Alts

	payload, ok := v.InfoString(p.infoKey)
	if !ok {
		p.stats.Unannotated++
		p.logger.Debug("record has no annotation payload",
			zap.String("chrom", chrom),
			zap.Int64("pos", pos),
			zap.String("key", p.infoKey))
		return nil
	}

	vt, st := v.Type(), v.Subtype()
	flagged := false

	for i, item := range SplitPayload(payload) {
		p.stats.Items++
		e, err := ParseEntry(item)
		if err != nil {
			return &RecordError{Chrom: chrom, Pos: pos,
				Err: fmt.Errorf("annotation item %d: %w", i+1, err)}
		}
		if !IsProteinImpacting(e) {
			p.stats.Filtered++
			continue
		}

		alt, err := Resolve(vt, st, ref, alts, e)
		if err != nil {
			return &RecordError{Chrom: chrom, Pos: pos, Err: err}
		}

		if !flagged && vt == vcf.TypeIndel && st == vcf.SubtypeUnknown &&
			!isInsertionDescriptor(e.HGVSc) && AmbiguousDeletion(ref, alts) {
			if p.strictDeletions {
				return &RecordError{Chrom: chrom, Pos: pos,
					Err: fmt.Errorf("%w: ALT %v", ErrAmbiguousDeletion, alts)}
			}
			p.logger.Warn("several deletion lengths in one record, reporting the shortest ALT",
				zap.String("chrom", chrom),
				zap.Int64("pos", pos),
				zap.Strings("alts", alts),
				zap.String("alt", alt))
			flagged = true
		}

		row := &Row{
			Chrom:        chrom,
			Pos:          pos,
			Ref:          ref,
			Alt:          alt,
			GeneName:     e.GeneName,
			TranscriptID: e.TranscriptID,
			HGVSp:        e.HGVSp,
		}
		if err := emit(row); err != nil {
			return err
		}
		p.stats.Rows++
	}

	return nil
}

// ProcessAll reads every record from src and writes the resolved rows to w.
// It stops at the first error.
func (p *Processor) ProcessAll(src vcf.RecordSource, w RowWriter) error {
	for {
		v, err := src.Next()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSourceRead, err)
		}
		if v == nil {
			break
		}
		p.stats.Records++

		if err := p.Process(v, func(r *Row) error {
			if err := w.Write(r); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
			return nil
		}); err != nil {
			var re *RecordError
			if errors.As(err, &re) {
				p.logger.Error("failed to resolve record",
					zap.String("chrom", re.Chrom),
					zap.Int64("pos", re.Pos),
					zap.Int("line", src.LineNumber()),
					zap.Error(re.Err))
			}
			return err
		}
	}

	p.logger.Info("records processed",
		zap.Int("records", p.stats.Records),
		zap.Int("unannotated", p.stats.Unannotated),
		zap.Int("items", p.stats.Items),
		zap.Int("filtered", p.stats.Filtered),
		zap.Int("rows", p.stats.Rows))

	return w.Flush()
}
