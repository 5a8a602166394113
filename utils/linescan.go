package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// LinePredicate decides whether an OCR line qualifies for a scan
type LinePredicate func(line string) bool

// ScanForward returns the first trimmed line at index >= start accepted by accept
func ScanForward(lines []string, start int, accept LinePredicate) (string, int, bool) {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if accept(l) {
			return l, i, true
		}
	}
	return "", -1, false
}

// ScanBackward returns the first trimmed line at index <= start, moving toward 0, accepted by accept
func ScanBackward(lines []string, start int, accept LinePredicate) (string, int, bool) {
	if start >= len(lines) {
		start = len(lines) - 1
	}
	for i := start; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if accept(l) {
			return l, i, true
		}
	}
	return "", -1, false
}

// FindLabel returns the index of the first raw line that matches
func FindLabel(lines []string, match LinePredicate) (int, bool) {
	for i, l := range lines {
		if match(l) {
			return i, true
		}
	}
	return -1, false
}

// ValueAfterLabel finds the first label line and returns the first accepted line after it.
// Later label occurrences are ignored even if the first one has no value.
func ValueAfterLabel(lines []string, label, accept LinePredicate) (string, bool) {
	idx, ok := FindLabel(lines, label)
	if !ok {
		return "", false
	}
	v, _, ok := ScanForward(lines, idx+1, accept)
	return v, ok
}

func NonEmpty(line string) bool {
	return line != ""
}

func Not(p LinePredicate) LinePredicate {
	return func(line string) bool { return !p(line) }
}

// All combines predicates with logical AND
func All(preds ...LinePredicate) LinePredicate {
	return func(line string) bool {
		for _, p := range preds {
			if !p(line) {
				return false
			}
		}
		return true
	}
}

func MatchesRegexp(re *regexp.Regexp) LinePredicate {
	return func(line string) bool { return re.MatchString(line) }
}

// LongerThan counts characters, not bytes
func LongerThan(n int) LinePredicate {
	return func(line string) bool { return utf8.RuneCountInString(line) > n }
}

var reHasLetter = regexp.MustCompile(`[a-zA-Z]`)

func HasLetter(line string) bool {
	return reHasLetter.MatchString(line)
}
