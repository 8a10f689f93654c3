package llm

import (
	"strings"
)

// BuildChunkPrompt wraps one chunk of cleaned document text in the fixed
// extraction instruction. The same template is used for every chunk so
// responses stay mergeable: flat JSON, snake_case keys, no nesting.
func BuildChunkPrompt(docType, chunk string) string {
	dt := strings.TrimSpace(docType)
	if dt == "" {
		dt = "property document"
	}

	parts := []string{
		"You are a commercial real estate document parser. Return ONLY a JSON object.",
		"The text below is an excerpt from a " + dt + ".",
		"Extract every concrete fact as a key/value pair: property name, address, unit counts, square footage, rents, prices, cap rates, occupancy, year built, amenities.",
		"Use snake_case keys. Values must be scalars or arrays of scalars; never nest objects.",
		"Numbers must be bare (no $ signs, no commas). Percentages as decimals (12.5% -> 0.125).",
		"Never output null. If a fact is not present in the excerpt, omit the key.",
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n\nExcerpt:\n")
	b.WriteString(chunk)
	return b.String()
}
