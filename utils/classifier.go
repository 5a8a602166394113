package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

// Detector is one classification rule. Detectors are evaluated in order and the
// first match decides the document type.
type Detector struct {
	Name  string
	Type  dto.DocumentType
	Match func(rawText string) bool
}

var (
	reDigitRun         = regexp.MustCompile(`[0-9]{12}`)
	reConfusableGroups = regexp.MustCompile(`[0-9Oo]{4}[0-9Oo]{4}[0-9Oo]{4}`)
	reLooseGroups      = regexp.MustCompile(`[0-9]{4}.*[0-9]{4}.*[0-9]{4}`)
	rePANNumber        = regexp.MustCompile(`[A-Z]{5}[0-9]{4}[A-Z]`)
	reMarksheetKeyword = regexp.MustCompile(`(?i)Roll\s*No|Total\s*Marks`)

	aadhaarKeywords = []string{"Government of India", "GOVERNMENT OF INDIA", "Unique Identification", "UIDAI"}
)

// stripWhitespace removes all whitespace, line breaks included, so digit
// groups split over several OCR lines still form one run.
func stripWhitespace(text string) string {
	return strings.Join(strings.Fields(text), "")
}

// DefaultDetectors returns the classification rules in priority order
func DefaultDetectors() []Detector {
	return []Detector{
		{
			Name: "aadhaar-digit-run",
			Type: dto.DocTypeAadhaar,
			Match: func(raw string) bool {
				return reDigitRun.MatchString(stripWhitespace(raw))
			},
		},
		{
			Name: "aadhaar-confusable-groups",
			Type: dto.DocTypeAadhaar,
			Match: func(raw string) bool {
				return reConfusableGroups.MatchString(stripWhitespace(raw))
			},
		},
		{
			Name: "aadhaar-keyword-digits",
			Type: dto.DocTypeAadhaar,
			Match: func(raw string) bool {
				for _, kw := range aadhaarKeywords {
					if strings.Contains(raw, kw) {
						return reLooseGroups.MatchString(raw)
					}
				}
				return false
			},
		},
		{
			Name:  "pan-number",
			Type:  dto.DocTypePAN,
			Match: rePANNumber.MatchString,
		},
		{
			Name: "pan-keyword",
			Type: dto.DocTypePAN,
			Match: func(raw string) bool {
				return strings.Contains(raw, "Income Tax Department")
			},
		},
		{
			Name:  "marksheet-keyword",
			Type:  dto.DocTypeMarksheet,
			Match: reMarksheetKeyword.MatchString,
		},
	}
}

// ClassifyWith runs detectors in order and returns the type and the name of the
// detector that matched. No match gives DocTypeUnknown and an empty name.
func ClassifyWith(detectors []Detector, rawText string) (dto.DocumentType, string) {
	for _, d := range detectors {
		if d.Match(rawText) {
			return d.Type, d.Name
		}
	}
	return dto.DocTypeUnknown, ""
}

// Classify assigns exactly one document type to the OCR text
func Classify(rawText string) dto.DocumentType {
	dt, _ := ClassifyWith(DefaultDetectors(), rawText)
	return dt
}
