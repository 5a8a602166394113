package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"time"
	"unicode"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/Aashish23092/ocr-document-verifier/config"
	"github.com/Aashish23092/ocr-document-verifier/dto"
	"github.com/Aashish23092/ocr-document-verifier/utils"
)

var (
	ErrEmptyFile       = errors.New("empty file")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrNoImageInPDF    = errors.New("no images found in PDF")
	ErrPDFDecrypt      = errors.New("failed to decrypt PDF")
)

const (
	sourceTextLayer = "text_layer"
	sourceOCR       = "ocr"
)

// LineRecognizer turns an encoded image into OCR lines in reading order
type LineRecognizer interface {
	ExtractLines(ctx context.Context, img []byte) ([]string, error)
}

// DocumentService turns an uploaded file into a classified field record
type DocumentService struct {
	recognizer   LineRecognizer
	fallback     LineRecognizer
	pdfProcessor PDFProcessor
	extractor    *utils.Extractor
	metrics      *Metrics
	tracer       trace.Tracer

	preprocess        bool
	qrFallback        bool
	minTextLayerChars int
	debug             bool
}

// NewDocumentService wires the OCR engines and the extraction core.
// fallback may be nil; it is tried when recognizer fails.
func NewDocumentService(cfg *config.Config, recognizer, fallback LineRecognizer, pdfProcessor PDFProcessor, metrics *Metrics) *DocumentService {
	return &DocumentService{
		recognizer:   recognizer,
		fallback:     fallback,
		pdfProcessor: pdfProcessor,
		extractor:    utils.NewExtractor(utils.WithSimilarityThreshold(cfg.SimilarityThreshold)),
		metrics:      metrics,
		tracer:       otel.Tracer("github.com/Aashish23092/ocr-document-verifier/service"),

		preprocess:        cfg.PreprocessEnabled,
		qrFallback:        cfg.QRFallbackEnabled,
		minTextLayerChars: cfg.MinTextLayerChars,
		debug:             cfg.DebugOCR,
	}
}

// ExtractFromFile extracts a field record from a PDF or image file.
// password is only used for encrypted PDFs.
func (s *DocumentService) ExtractFromFile(ctx context.Context, data []byte, filename, password string) (*dto.FieldRecord, error) {
	start := time.Now()

	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	mt := mimetype.Detect(data)
	log.Printf("Processing %s (%s, %d bytes)", filename, mt.String(), len(data))

	var (
		lines  []string
		img    image.Image
		source = sourceOCR
		err    error
	)

	switch {
	case mt.Is("application/pdf"):
		lines, img, err = s.readPDF(ctx, data, password)
		if err != nil {
			return nil, err
		}
		if img == nil {
			source = sourceTextLayer
		}
	case isSupportedImage(mt):
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		lines, err = s.recognize(ctx, img)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, mt.String())
	}

	rec := s.extract(ctx, lines)

	if img != nil && s.qrFallback && rec.DocumentType() == dto.DocTypeAadhaar {
		if qr, err := decodeAadhaarQR(img); err != nil {
			log.Printf("QR enrichment skipped: %v", err)
		} else if filled := enrichFromQR(&rec, qr); len(filled) > 0 {
			log.Printf("QR filled missing fields: %s", strings.Join(filled, ", "))
		}
	}

	if err := dto.ValidateRecord(rec); err != nil {
		log.Printf("Warning: record failed schema validation: %v", err)
	}

	s.metrics.observe(rec.DocumentType(), source, time.Since(start).Seconds())
	return &rec, nil
}

// readPDF prefers the page 1 text layer and falls back to OCR on the
// largest embedded page 1 image. img is nil when the text layer was used.
func (s *DocumentService) readPDF(ctx context.Context, data []byte, password string) ([]string, image.Image, error) {
	if s.minTextLayerChars > 0 {
		lines, err := s.pdfProcessor.ExtractText(data, password)
		switch {
		case err != nil:
			log.Printf("PDF text layer unavailable: %v", err)
		case countNonSpace(lines) >= s.minTextLayerChars:
			log.Printf("Using PDF text layer (%d lines)", len(lines))
			return lines, nil, nil
		default:
			log.Println("PDF text layer too sparse, falling back to OCR")
		}
	}

	img, err := s.pdfProcessor.ExtractFirstPageImage(data, password)
	if err != nil {
		if errors.Is(err, ErrPDFDecrypt) || errors.Is(err, ErrNoImageInPDF) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to extract image from PDF: %w", err)
	}

	lines, err := s.recognize(ctx, img)
	if err != nil {
		return nil, nil, err
	}
	return lines, img, nil
}

// recognize prepares the image and runs OCR, trying the fallback engine on failure
func (s *DocumentService) recognize(ctx context.Context, img image.Image) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "ocr")
	defer span.End()

	prepared := img
	if s.preprocess {
		prepared = preprocessImage(img)
	}
	buf, err := encodePNG(prepared)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	lines, err := s.recognizer.ExtractLines(ctx, buf)
	if err != nil && s.fallback != nil {
		log.Printf("Primary OCR engine failed: %v. Falling back...", err)
		lines, err = s.fallback.ExtractLines(ctx, buf)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("OCR extraction failed: %w", err)
	}

	span.SetAttributes(attribute.Int("ocr.lines", len(lines)))
	log.Printf("OCR returned %d lines", len(lines))
	return lines, nil
}

func (s *DocumentService) extract(ctx context.Context, lines []string) dto.FieldRecord {
	_, span := s.tracer.Start(ctx, "extract")
	defer span.End()

	rec, detector := s.extractor.ExtractWithTrace(lines)
	span.SetAttributes(
		attribute.String("document.type", string(rec.DocumentType())),
		attribute.String("document.detector", detector),
		attribute.Int("document.fields", rec.Len()-2),
	)

	log.Printf("Detected document type: %s (detector: %q)", rec.DocumentType(), detector)
	if s.debug {
		log.Printf("OCR text: %s", preview(rec.RawText(), 200))
	}
	return rec
}

func isSupportedImage(mt *mimetype.MIME) bool {
	for _, t := range []string{"image/png", "image/jpeg", "image/gif", "image/bmp", "image/webp"} {
		if mt.Is(t) {
			return true
		}
	}
	return false
}

func countNonSpace(lines []string) int {
	n := 0
	for _, line := range lines {
		for _, r := range line {
			if !unicode.IsSpace(r) {
				n++
			}
		}
	}
	return n
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
