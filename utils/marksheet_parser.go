package utils

import (
	"regexp"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

var (
	reRollNumber = regexp.MustCompile(`(?i)Roll\s*No\.?\s*[:\-]?\s*(\w+)`)
	reTotalMarks = regexp.MustCompile(`(?i)Total\s*Marks\s*[:\-]?\s*(\d+)`)
)

// ExtractMarksheetFields parses roll number, total marks and the student name.
// Unlike PAN, any non-empty line after the name label is taken.
func ExtractMarksheetFields(m Matcher) func(text string, lines []string, rec *dto.FieldRecord) {
	return func(text string, lines []string, rec *dto.FieldRecord) {
		if mm := reRollNumber.FindStringSubmatch(text); len(mm) > 1 {
			rec.Set(dto.KeyRollNumber, mm[1])
		}
		if mm := reTotalMarks.FindStringSubmatch(text); len(mm) > 1 {
			rec.Set(dto.KeyTotalMarks, mm[1])
		}
		if name, ok := ValueAfterLabel(lines, m.Label(MarksheetNameLabels...), NonEmpty); ok {
			rec.Set(dto.KeyName, name)
		}
	}
}
