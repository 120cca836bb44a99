package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractConfidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"explicit label", "Analysis complete.\nConfidence: 91", 91},
		{"score label", "Confidence Score: 64", 64},
		{"prose form", "This analysis has a confidence score of 82 based on patterns.", 82},
		{"confident is not confidence", "I am 88% confident in this assessment.", DefaultConfidence},
		{"percent confidence", "Roughly 88% confidence here.", 88},
		{"percent certain", "I am 70% certain about the delay.", 70},
		{"case insensitive", "CONFIDENCE: 55", 55},
		{"no score", "No numbers to see here.", DefaultConfidence},
		{"empty", "", DefaultConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractConfidence(tt.text))
		})
	}
}

func TestExtractConfidencePatternPrecedence(t *testing.T) {
	// The explicit label outranks the loose percent phrasing regardless of
	// where each appears in the text.
	text := "Early estimate was 85% confidence.\nFinal verdict -> Confidence: 90"
	assert.Equal(t, 90, ExtractConfidence(text))
}

func TestExtractConfidenceClamp(t *testing.T) {
	assert.Equal(t, 100, ExtractConfidence("150% confidence after review"))
	assert.Equal(t, 100, ExtractConfidence("Confidence: 999"))
	// Negative values never match the digit-only pattern and fall to default.
	assert.Equal(t, DefaultConfidence, ExtractConfidence("Confidence: -5"))
}
