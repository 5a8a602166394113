package utils

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

var (
	// OCR often reads 0 as O/o. The lookarounds keep 13+ digit runs from matching.
	reAadhaarNumber = regexp2.MustCompile(`(?<![0-9])([0-9Oo]{4}[ \t]*[0-9Oo]{4}[ \t]*[0-9Oo]{4})(?![0-9])`, regexp2.None)

	reDate             = regexp.MustCompile(`\b\d{2}[/-]\d{2}[/-]\d{4}\b`)
	reDOBArtifact      = regexp.MustCompile(`(?i)DOB|IDOB|Date|^\d+$|^[A-Z]$|^[0-9A-Z]{1,2}$`)
	reNameFallbackStop = regexp.MustCompile(`(?i)\d{4}\s*\d{4}\s*\d{4}|DOB|Date|Government|India|MALE|FEMALE`)
	reGender           = regexp.MustCompile(`(?i)\b(FEMALE|MALE)\b`)
)

// ExtractAadhaarFields parses Aadhaar number, DOB, name and gender from OCR output
func ExtractAadhaarFields(text string, lines []string, rec *dto.FieldRecord) {
	if num := extractAadhaarNumber(text); num != "" {
		rec.Set(dto.KeyAadhaarNumber, num)
	}

	dob, name := extractDOBAndName(lines)
	if dob != "" {
		rec.Set(dto.KeyDOB, dob)
	}
	if len(name) <= 2 {
		name = extractNameFallback(lines)
	}
	if name != "" {
		rec.Set(dto.KeyName, name)
	}

	if gender := extractGender(text); gender != "" {
		rec.Set(dto.KeyGender, gender)
	}
}

// ---------------- Aadhaar number ----------------

func extractAadhaarNumber(text string) string {
	m, err := reAadhaarNumber.FindStringMatch(text)
	if err != nil || m == nil {
		return ""
	}
	return NormalizeAadhaarNumber(m.GroupByNumber(1).String())
}

// NormalizeAadhaarNumber maps O/o to 0, drops whitespace and regroups as "dddd dddd dddd".
// Inputs that do not reduce to 12 characters are returned without regrouping.
func NormalizeAadhaarNumber(s string) string {
	s = strings.NewReplacer("O", "0", "o", "0").Replace(s)
	s = strings.Join(strings.Fields(s), "")
	if len(s) != 12 {
		return s
	}
	return s[:4] + " " + s[4:8] + " " + s[8:]
}

// ---------------- DOB + Name ----------------

func isNameCandidate(line string) bool {
	return len(line) > 2 && !reDOBArtifact.MatchString(line) && HasLetter(line)
}

// extractDOBAndName takes the first line carrying a date as DOB and the closest
// plausible line above it as the name. Only the first date line is used.
func extractDOBAndName(lines []string) (dob, name string) {
	_, idx, ok := ScanForward(lines, 0, MatchesRegexp(reDate))
	if !ok {
		return "", ""
	}
	dob = reDate.FindString(lines[idx])
	name, _, _ = ScanBackward(lines, idx-1, isNameCandidate)
	return dob, name
}

// extractNameFallback picks the first multi-word line that is not an obvious label
func extractNameFallback(lines []string) string {
	name, _, _ := ScanForward(lines, 0, All(
		LongerThan(5),
		HasLetter,
		func(l string) bool { return len(strings.Fields(l)) >= 2 },
		Not(MatchesRegexp(reNameFallbackStop)),
	))
	return name
}

// ---------------- Gender ----------------

func extractGender(text string) string {
	m := reGender.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	g := strings.ToLower(m[1])
	return strings.ToUpper(g[:1]) + g[1:]
}
