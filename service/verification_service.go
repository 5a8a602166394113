package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aashish23092/ocr-document-verifier/dto"
	"github.com/Aashish23092/ocr-document-verifier/repository"
)

// IdentityLookup is the registry contract used for verification.
// A missing entry is reported as repository.ErrIdentityNotFound.
type IdentityLookup interface {
	FindByAadhaar(ctx context.Context, number string) (*dto.Identity, error)
	FindByPAN(ctx context.Context, pan string) (*dto.Identity, error)
}

const (
	verifiedConfidence  = 0.95
	marksheetConfidence = 0.8
	nameMatchThreshold  = 0.7
)

var (
	reAadhaarFormat = regexp.MustCompile(`^[0-9]{4} [0-9]{4} [0-9]{4}$`)
	rePANFormat     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	reNonDigit      = regexp.MustCompile(`[^0-9]`)
)

// VerificationService checks extracted records against the identity registry
type VerificationService struct {
	registry IdentityLookup
	metrics  *Metrics
	tracer   trace.Tracer
}

func NewVerificationService(registry IdentityLookup, metrics *Metrics) *VerificationService {
	return &VerificationService{
		registry: registry,
		metrics:  metrics,
		tracer:   otel.Tracer("github.com/Aashish23092/ocr-document-verifier/service"),
	}
}

// Verify validates number formats, looks the number up and cross-checks the
// personal fields. Only registry failures are returned as errors; every
// other outcome is described by the result.
func (s *VerificationService) Verify(ctx context.Context, rec *dto.FieldRecord) (*dto.VerificationResult, error) {
	ctx, span := s.tracer.Start(ctx, "verify")
	defer span.End()

	docType := rec.DocumentType()
	span.SetAttributes(attribute.String("document.type", string(docType)))

	var (
		res *dto.VerificationResult
		err error
	)
	switch docType {
	case dto.DocTypeAadhaar:
		res, err = s.verifyAadhaar(ctx, rec)
	case dto.DocTypePAN:
		res, err = s.verifyPAN(ctx, rec)
	case dto.DocTypeMarksheet:
		res = verifyMarksheet(rec)
	default:
		res = suspicious("Unknown document type", "Document type could not be determined from OCR")
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if res.SuspiciousActivity {
		log.Printf("Suspicious %s document: %s", docType, res.Reason)
	} else {
		log.Printf("%s document verified (confidence %.2f)", docType, res.Confidence)
	}
	s.metrics.observeVerification(docType, res.Valid)
	return res, nil
}

func (s *VerificationService) verifyAadhaar(ctx context.Context, rec *dto.FieldRecord) (*dto.VerificationResult, error) {
	number, ok := rec.Get(dto.KeyAadhaarNumber)
	if !ok || number == "" {
		return suspicious("No Aadhaar number found in document",
			"No Aadhaar number found in document during OCR processing"), nil
	}
	if !reAadhaarFormat.MatchString(number) {
		return suspicious("Invalid Aadhaar number format",
			fmt.Sprintf("Invalid Aadhaar format: %q (expected: XXXX XXXX XXXX)", number)), nil
	}

	entry, err := s.registry.FindByAadhaar(ctx, number)
	if errors.Is(err, repository.ErrIdentityNotFound) {
		return suspicious("Aadhaar number not found in database",
			fmt.Sprintf("Aadhaar number %q is not registered; it may be misread by OCR or the document may be tampered", number)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("aadhaar lookup failed: %w", err)
	}

	var issues []string
	issues = appendNameMismatch(issues, "Name", rec, dto.KeyName, entry.Name)
	issues = appendDOBMismatch(issues, rec, entry.DOB)
	if g, ok := rec.Get(dto.KeyGender); ok && g != "" && entry.Gender != "" && !strings.EqualFold(g, entry.Gender) {
		issues = append(issues, fmt.Sprintf("Gender mismatch: Document shows %q, Database has %q", g, entry.Gender))
	}

	return crossCheckResult("Aadhaar", issues, entry), nil
}

func (s *VerificationService) verifyPAN(ctx context.Context, rec *dto.FieldRecord) (*dto.VerificationResult, error) {
	pan, ok := rec.Get(dto.KeyPANNumber)
	if !ok || pan == "" {
		return suspicious("No PAN number found in document",
			"No PAN number found in document during OCR processing"), nil
	}
	if !rePANFormat.MatchString(pan) {
		return suspicious("Invalid PAN number format",
			fmt.Sprintf("Invalid PAN format: %q (expected: ABCDE1234F format)", pan)), nil
	}

	entry, err := s.registry.FindByPAN(ctx, pan)
	if errors.Is(err, repository.ErrIdentityNotFound) {
		return suspicious("PAN number not found in database",
			fmt.Sprintf("PAN number %q is not registered; it may be misread by OCR or the document may be tampered", pan)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("pan lookup failed: %w", err)
	}

	var issues []string
	issues = appendNameMismatch(issues, "Name", rec, dto.KeyName, entry.Name)
	issues = appendNameMismatch(issues, "Father's name", rec, dto.KeyFatherName, entry.FatherName)
	issues = appendDOBMismatch(issues, rec, entry.DOB)

	return crossCheckResult("PAN", issues, entry), nil
}

// verifyMarksheet has no registry to consult: it only scores completeness
func verifyMarksheet(rec *dto.FieldRecord) *dto.VerificationResult {
	if !rec.Has(dto.KeyRollNumber) {
		return suspicious("No roll number found in document", "Missing roll number")
	}

	res := &dto.VerificationResult{
		Valid:      true,
		Message:    "Marksheet document processed successfully",
		Confidence: marksheetConfidence,
	}
	var reasons []string
	if !rec.Has(dto.KeyName) {
		res.Confidence -= 0.2
		reasons = append(reasons, "Name not clearly extracted from marksheet")
	}
	if !rec.Has(dto.KeyTotalMarks) {
		res.Confidence -= 0.1
		reasons = append(reasons, "Total marks not found")
	}
	res.Confidence = roundConfidence(res.Confidence)
	res.Reason = strings.Join(reasons, "; ")
	return res
}

func suspicious(message, reason string) *dto.VerificationResult {
	return &dto.VerificationResult{
		Message:            message,
		Reason:             reason,
		SuspiciousActivity: true,
	}
}

func crossCheckResult(kind string, issues []string, entry *dto.Identity) *dto.VerificationResult {
	if len(issues) > 0 {
		return &dto.VerificationResult{
			Message:            kind + " document verification failed due to data inconsistencies",
			Reason:             "Data inconsistencies found: " + strings.Join(issues, "; "),
			SuspiciousActivity: true,
			Confidence:         roundConfidence(math.Max(0, 0.5-0.2*float64(len(issues)))),
			Inconsistencies:    issues,
		}
	}
	return &dto.VerificationResult{
		Valid:      true,
		Message:    kind + " document verified successfully",
		Confidence: verifiedConfidence,
		Verified:   entry,
	}
}

func appendNameMismatch(issues []string, label string, rec *dto.FieldRecord, key, registered string) []string {
	got, ok := rec.Get(key)
	if !ok || got == "" || registered == "" {
		return issues
	}
	if sim := nameSimilarity(got, registered); sim < nameMatchThreshold {
		return append(issues, fmt.Sprintf("%s mismatch: Document shows %q, Database has %q (similarity: %d%%)",
			label, got, registered, int(math.Round(sim*100))))
	}
	return issues
}

func appendDOBMismatch(issues []string, rec *dto.FieldRecord, registered string) []string {
	got, ok := rec.Get(dto.KeyDOB)
	if !ok || got == "" || registered == "" {
		return issues
	}
	if normalizeDate(got) != normalizeDate(registered) {
		return append(issues, fmt.Sprintf("DOB mismatch: Document shows %q, Database has %q", got, registered))
	}
	return issues
}

// nameSimilarity compares names letter by letter at the same position after
// lower-casing and dropping everything but a-z. Equal names score 1.
func nameSimilarity(a, b string) float64 {
	a, b = lettersOnly(a), lettersOnly(b)
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	matches := 0
	for i := 0; i < min(len(a), len(b)); i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / float64(longest)
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeDate maps any 8-digit date (15-08-1990, 15.08.1990) to dd/mm/yyyy
func normalizeDate(s string) string {
	digits := reNonDigit.ReplaceAllString(s, "")
	if len(digits) == 8 {
		return digits[0:2] + "/" + digits[2:4] + "/" + digits[4:8]
	}
	return s
}

func roundConfidence(c float64) float64 {
	return math.Round(c*100) / 100
}
