// Package textclean strips extraction artifacts out of raw document text
// while keeping the structural markers (page numbers, checkboxes) that the
// segmenter relies on later.
package textclean

import (
	"regexp"
	"strings"
)

var (
	// Embedded binary/object markers produced by the text extraction layer.
	reEmbedMarker = regexp.MustCompile(`(?is)\[(?:EMBED|BINARY)\](.*?)\[/(?:EMBED|BINARY)\]`)

	reCopyrightLine = regexp.MustCompile(`(?i)(©|\(c\)\s|copyright\s)`)

	// "3/14/2021 10:23 AM" style header/footer stamps; keep the date.
	reTimestampStamp = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})\s+\d{1,2}:\d{2}(?::\d{2})?\s*(?:[AP]M)?`)

	// "Page 4" -> "[PAGE 4]". The leading group keeps the rewrite from
	// re-matching its own output.
	rePageNumber = regexp.MustCompile(`(?i)(^|[^[])page\s+(\d+)\b`)

	// Filesystem fragments with an extension; dates like 3/14/2021 have no
	// extension segment and are left alone.
	rePathFragment = regexp.MustCompile(`(?:[A-Za-z]:)?(?:[\\/][\w .\-]+)*[\\/]([\w\-]+\.\w{2,4})\b`)

	reBlankRun = regexp.MustCompile(`\n{5,}`)
)

// checkboxGlyphs are the variants we canonicalize to checkedBox.
var checkboxGlyphs = []string{"☑", "☒", "✓", "✔", "✗", "■", "▣"}

const checkedBox = "[x]"

// Sanitize cleans raw extracted text. It is deterministic, total, and
// idempotent; each cleanup below is independent and order-significant.
func Sanitize(text string) string {
	// 1) strip NUL and control bytes outside tab/newline
	text = stripControl(text)

	// 2) unwrap embed/binary markers, keeping inner text
	text = reEmbedMarker.ReplaceAllString(text, "$1")

	// 3) collapse runs of repeated copyright lines
	text = collapseCopyright(text)

	// 4) header/footer timestamps down to the date portion
	text = reTimestampStamp.ReplaceAllString(text, "$1")

	// 5) page numbers to bracketed markers for the segmenter
	text = rePageNumber.ReplaceAllString(text, "$1[PAGE $2]")

	// 6) checkbox glyphs to one canonical checked glyph
	for _, g := range checkboxGlyphs {
		text = strings.ReplaceAll(text, g, checkedBox)
	}

	// 7) filesystem fragments to a bracketed basename
	text = rePathFragment.ReplaceAllStringFunc(text, func(m string) string {
		sub := rePathFragment.FindStringSubmatch(m)
		return "[" + sub[1] + "]"
	})

	// 8) 4+ consecutive blank lines down to at most 2
	text = reBlankRun.ReplaceAllString(text, "\n\n\n")

	// 9) anything still outside printable ASCII becomes a space
	text = asciiOnly(text)

	// 10) outer whitespace
	return strings.TrimSpace(text)
}

// SanitizeLines applies Sanitize line by line, preserving the line structure.
// Used where intra-line spacing must survive (table regions are excluded by
// the caller, not here).
func SanitizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = strings.TrimRight(sanitizeInline(ln), " \t")
	}
	return out
}

// sanitizeInline runs the per-character and marker rewrites without the
// whole-text trims, so callers keep leading indentation.
func sanitizeInline(line string) string {
	line = stripControl(line)
	line = reTimestampStamp.ReplaceAllString(line, "$1")
	line = rePageNumber.ReplaceAllString(line, "$1[PAGE $2]")
	for _, g := range checkboxGlyphs {
		line = strings.ReplaceAll(line, g, checkedBox)
	}
	return asciiOnly(line)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r > 0x7e {
			return ' '
		}
		return r
	}, s)
}

func collapseCopyright(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	var prev string
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if reCopyrightLine.MatchString(trimmed) && trimmed == prev {
			continue
		}
		prev = trimmed
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}
