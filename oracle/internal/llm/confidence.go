package llm

import (
	"regexp"
	"strconv"
)

// DefaultConfidence is used when no pattern matches the model output.
// A missing score is a policy default, not an error.
const DefaultConfidence = 75

// Ordered: explicit "Confidence:" style patterns win over looser
// "NN% confidence" phrasings. The first match is taken.
var confidencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)confidence\s*score\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?i)confidence\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?i)confidence score of (\d+)`),
	regexp.MustCompile(`(?i)score\s*:?\s*(\d+)\s*%`),
	regexp.MustCompile(`(?i)(\d+)\s*%\s*confidence`),
	regexp.MustCompile(`(?i)(\d+)\s*%\s*certain`),
}

// ExtractConfidence scans model output for a self-reported confidence score.
// The parsed value is clamped to [0,100]; if nothing matches it returns
// DefaultConfidence.
func ExtractConfidence(text string) int {
	for _, pattern := range confidencePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		score, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return clampConfidence(score)
	}
	return DefaultConfidence
}

func clampConfidence(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
