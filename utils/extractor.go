package utils

import (
	"strings"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

// FieldExtractor adds type-specific fields to a record. Missing fields are simply not set.
type FieldExtractor func(text string, lines []string, rec *dto.FieldRecord)

// Extractor classifies OCR lines and dispatches to the matching field extractor.
// It holds no per-document state and is safe for concurrent use.
type Extractor struct {
	detectors  []Detector
	extractors map[dto.DocumentType]FieldExtractor
}

type Option func(*Extractor)

// WithDetectors replaces the classification rules
func WithDetectors(d []Detector) Option {
	return func(e *Extractor) { e.detectors = d }
}

// WithSimilarityThreshold rebuilds the label-matching extractors with a different threshold
func WithSimilarityThreshold(threshold float64) Option {
	return func(e *Extractor) {
		m := NewMatcher(threshold)
		e.extractors[dto.DocTypePAN] = ExtractPANFields(m)
		e.extractors[dto.DocTypeMarksheet] = ExtractMarksheetFields(m)
	}
}

// WithFieldExtractor overrides the extractor for one document type
func WithFieldExtractor(dt dto.DocumentType, fe FieldExtractor) Option {
	return func(e *Extractor) { e.extractors[dt] = fe }
}

func NewExtractor(opts ...Option) *Extractor {
	m := NewMatcher(DefaultSimilarityThreshold)
	e := &Extractor{
		detectors: DefaultDetectors(),
		extractors: map[dto.DocumentType]FieldExtractor{
			dto.DocTypeAadhaar:   ExtractAadhaarFields,
			dto.DocTypePAN:       ExtractPANFields(m),
			dto.DocTypeMarksheet: ExtractMarksheetFields(m),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds the field record for one document
func (e *Extractor) Extract(lines []string) dto.FieldRecord {
	rec, _ := e.ExtractWithTrace(lines)
	return rec
}

// ExtractWithTrace also returns the name of the detector that classified the document
func (e *Extractor) ExtractWithTrace(lines []string) (dto.FieldRecord, string) {
	text := strings.Join(lines, "\n")
	docType, detector := ClassifyWith(e.detectors, text)

	rec := dto.NewFieldRecord(text, docType)
	if fe, ok := e.extractors[docType]; ok && docType != dto.DocTypeUnknown {
		fe(text, lines, &rec)
	}
	return rec, detector
}

var defaultExtractor = NewExtractor()

// ExtractFields runs the default extractor
func ExtractFields(lines []string) dto.FieldRecord {
	return defaultExtractor.Extract(lines)
}
