package utils

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultSimilarityThreshold is the ratio a line must exceed to count as a label match
const DefaultSimilarityThreshold = 0.6

// Label variants, including common OCR misreads seen on scanned cards.
var (
	PANNameLabels       = []string{"Name", "Iamo"}
	FatherNameLabels    = []string{"Father's Name", "Fathcr's Namo"}
	DOBLabels           = []string{"Date of Birth", "Datc ol Dlnth", "DOB"}
	MarksheetNameLabels = []string{"Name", "Naam"}
)

// SimilarityRatio returns 2*M/T for the lower-cased strings, where M is the number
// of characters in matching blocks and T the combined length.
func SimilarityRatio(a, b string) float64 {
	ra := strings.Split(strings.ToLower(a), "")
	rb := strings.Split(strings.ToLower(b), "")
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	return difflib.NewMatcher(ra, rb).Ratio()
}

// SimilarWithThreshold reports whether candidate and expected are strictly more similar than threshold
func SimilarWithThreshold(candidate, expected string, threshold float64) bool {
	return SimilarityRatio(candidate, expected) > threshold
}

// Similar uses DefaultSimilarityThreshold
func Similar(candidate, expected string) bool {
	return SimilarWithThreshold(candidate, expected, DefaultSimilarityThreshold)
}

// Matcher compares OCR lines against expected labels
type Matcher struct {
	Threshold float64
}

func NewMatcher(threshold float64) Matcher {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultSimilarityThreshold
	}
	return Matcher{Threshold: threshold}
}

// Matches is true when line is similar to any of the labels
func (m Matcher) Matches(line string, labels ...string) bool {
	for _, l := range labels {
		if SimilarWithThreshold(line, l, m.Threshold) {
			return true
		}
	}
	return false
}

// Label returns a predicate for use with the line scanners
func (m Matcher) Label(labels ...string) LinePredicate {
	return func(line string) bool {
		return m.Matches(line, labels...)
	}
}
