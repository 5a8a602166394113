package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, SimilarityRatio("Name", "Name"))
	assert.Equal(t, 1.0, SimilarityRatio("NAME", "name"))
	assert.Equal(t, 1.0, SimilarityRatio("", ""))
	assert.Equal(t, 0.0, SimilarityRatio("xyz", "name"))
	assert.InDelta(t, 0.75, SimilarityRatio("Namo", "Name"), 1e-9)
	assert.InDelta(t, 0.5, SimilarityRatio("Iamo", "Name"), 1e-9)
	assert.InDelta(t, 22.0/26.0, SimilarityRatio("Fathcr's Namo", "Father's Name"), 1e-9)
}

func TestSimilarIsStrict(t *testing.T) {
	// 2*3/10 == 0.6 exactly
	assert.InDelta(t, 0.6, SimilarityRatio("abcde", "abcxy"), 1e-9)
	assert.False(t, Similar("abcde", "abcxy"))
	assert.True(t, SimilarWithThreshold("abcde", "abcxy", 0.59))
}

func TestSimilarOCRMisreads(t *testing.T) {
	assert.True(t, Similar("Namo", "Name"))
	assert.False(t, Similar("Iamo", "Name"))
	assert.True(t, Similar("Fathcr's Namo", "Father's Name"))
	assert.False(t, Similar("Name", "Father's Name"))
}

func TestMatcher(t *testing.T) {
	m := NewMatcher(DefaultSimilarityThreshold)
	assert.True(t, m.Matches("Iamo", PANNameLabels...))
	assert.True(t, m.Matches("NAAM", MarksheetNameLabels...))
	assert.False(t, m.Matches("Ravi Kumar", PANNameLabels...))
	assert.False(t, m.Matches("anything"))

	strict := NewMatcher(0.9)
	assert.False(t, strict.Matches("Namo", "Name"))

	// out of range thresholds fall back to the default
	assert.Equal(t, DefaultSimilarityThreshold, NewMatcher(0).Threshold)
	assert.Equal(t, DefaultSimilarityThreshold, NewMatcher(1.5).Threshold)
}
