package utils

import (
	"regexp"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

var rePANValueStop = regexp.MustCompile(`(?i)PAN|DOB|Date`)

// panValue accepts the first non-empty line that is not another label
var panValue = All(NonEmpty, Not(MatchesRegexp(rePANValueStop)))

// ExtractPANFields parses PAN number, name, father's name and DOB.
// Each label search starts again from the first line.
func ExtractPANFields(m Matcher) func(text string, lines []string, rec *dto.FieldRecord) {
	return func(text string, lines []string, rec *dto.FieldRecord) {
		if pan := rePANNumber.FindString(text); pan != "" {
			rec.Set(dto.KeyPANNumber, pan)
		}

		if name, ok := ValueAfterLabel(lines, m.Label(PANNameLabels...), panValue); ok {
			rec.Set(dto.KeyName, name)
		}

		if father, ok := ValueAfterLabel(lines, m.Label(FatherNameLabels...), panValue); ok {
			rec.Set(dto.KeyFatherName, father)
		}

		if dobLine, ok := ValueAfterLabel(lines, m.Label(DOBLabels...), MatchesRegexp(reDate)); ok {
			rec.Set(dto.KeyDOB, reDate.FindString(dobLine))
		}
	}
}
