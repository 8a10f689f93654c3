package ocr

import (
	"regexp"
	"strings"
)

var (
	reDateish     = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b(19|20)\d{2}\b`)
	reCurrencyish = regexp.MustCompile(`\$\s?\d`)
	reAreaish     = regexp.MustCompile(`(?i)\b(sq\.?\s*ft|sf|units?|acres?)\b`)
)

// heuristicConfidence scores decoded text by how much it looks like a real
// property document: dates, currency amounts, and area/unit vocabulary each
// add to a low base score.
func heuristicConfidence(txt string) float32 {
	low := strings.ToLower(txt)
	score := float32(0.2)
	if reDateish.MatchString(low) {
		score += 0.2
	}
	if reCurrencyish.MatchString(low) {
		score += 0.15
	}
	if reAreaish.MatchString(low) {
		score += 0.15
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
