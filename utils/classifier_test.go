package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     dto.DocumentType
		detector string
	}{
		{"grouped aadhaar number", "Ravi\n1234 5678 9012", dto.DocTypeAadhaar, "aadhaar-digit-run"},
		{"plain 12 digits", "123456789012", dto.DocTypeAadhaar, "aadhaar-digit-run"},
		{"13 digits still aadhaar", "1234567890123", dto.DocTypeAadhaar, "aadhaar-digit-run"},
		{"O misread as letter", "1234 O678 9012", dto.DocTypeAadhaar, "aadhaar-confusable-groups"},
		{"keyword with loose digits", "GOVERNMENT OF INDIA\nRef 1234/5678/9012", dto.DocTypeAadhaar, "aadhaar-keyword-digits"},
		{"keyword with 11 digits", "Government of India\n1234 5678 901", dto.DocTypeUnknown, ""},
		{"keyword without digits", "UIDAI", dto.DocTypeUnknown, ""},
		{"groups split across lines", "1234\n5678\n9012", dto.DocTypeAadhaar, "aadhaar-digit-run"},
		{"name then split number", "Ravi Kumar\n1234 5678\n9012", dto.DocTypeAadhaar, "aadhaar-digit-run"},
		{"O misread across lines", "1234 O678\n9012", dto.DocTypeAadhaar, "aadhaar-confusable-groups"},
		{"pan number", "Permanent Account Number\nABCDE1234F", dto.DocTypePAN, "pan-number"},
		{"pan keyword", "Income Tax Department\nNamo", dto.DocTypePAN, "pan-keyword"},
		{"aadhaar wins over pan", "ABCDE1234F\n1234 5678 9012", dto.DocTypeAadhaar, "aadhaar-digit-run"},
		{"roll no", "ROLL   NO 12", dto.DocTypeMarksheet, "marksheet-keyword"},
		{"total marks", "total marks 400", dto.DocTypeMarksheet, "marksheet-keyword"},
		{"pan wins over marksheet", "Roll No 4\nABCDE1234F", dto.DocTypePAN, "pan-number"},
		{"unrelated", "random unrelated text", dto.DocTypeUnknown, ""},
		{"empty", "", dto.DocTypeUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, detector := ClassifyWith(DefaultDetectors(), tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.detector, detector)
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyWithCustomDetectors(t *testing.T) {
	detectors := []Detector{
		{Name: "always-marksheet", Type: dto.DocTypeMarksheet, Match: func(string) bool { return true }},
	}
	got, name := ClassifyWith(detectors, "1234 5678 9012")
	assert.Equal(t, dto.DocTypeMarksheet, got)
	assert.Equal(t, "always-marksheet", name)

	got, name = ClassifyWith(nil, "1234 5678 9012")
	assert.Equal(t, dto.DocTypeUnknown, got)
	assert.Empty(t, name)
}
