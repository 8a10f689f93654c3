package textclean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeControlBytes(t *testing.T) {
	in := "hello\x00world\x01\ttab\nline"
	got := Sanitize(in)
	assert.Equal(t, "helloworld\ttab\nline", got)
}

func TestSanitizeEmbedMarkers(t *testing.T) {
	in := "before [EMBED]inner text[/EMBED] after"
	assert.Equal(t, "before inner text after", Sanitize(in))

	in = "[BINARY]kept[/BINARY]"
	assert.Equal(t, "kept", Sanitize(in))
}

func TestSanitizeCopyrightCollapse(t *testing.T) {
	in := strings.Repeat("Copyright 2021 Acme Corp\n", 4) + "body"
	got := Sanitize(in)
	assert.Equal(t, 1, strings.Count(got, "Copyright 2021 Acme Corp"))
	assert.Contains(t, got, "body")
}

func TestSanitizeTimestampStamp(t *testing.T) {
	in := "3/14/2021 10:23 AM  Quarterly Report"
	got := Sanitize(in)
	assert.Contains(t, got, "3/14/2021")
	assert.NotContains(t, got, "10:23")
}

func TestSanitizePageMarkers(t *testing.T) {
	got := Sanitize("intro\nPage 4\nmore")
	assert.Contains(t, got, "[PAGE 4]")
	assert.NotContains(t, got, "[[PAGE")
}

func TestSanitizeCheckboxes(t *testing.T) {
	got := Sanitize("Pool ☑  Gym ✓  Spa ☒")
	assert.Equal(t, 3, strings.Count(got, "[x]"))
}

func TestSanitizePathFragments(t *testing.T) {
	got := Sanitize("see /usr/share/docs/report.pdf for details")
	assert.Contains(t, got, "[report.pdf]")
	assert.NotContains(t, got, "/usr/share")

	// date-like fragments are not paths
	assert.Contains(t, Sanitize("dated 3/14/2021 header"), "3/14/2021")
}

func TestSanitizeBlankLineCollapse(t *testing.T) {
	in := "a" + strings.Repeat("\n", 7) + "b"
	got := Sanitize(in)
	assert.Equal(t, "a\n\n\nb", got)
}

func TestSanitizeNonASCII(t *testing.T) {
	got := Sanitize("café résumé")
	assert.Equal(t, "caf  r sum", got)
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"Page 4\n\n\n\n\n\nPage 5",
		"☑ checked /tmp/files/scan.png",
		"3/14/2021 10:23 AM footer\x00",
		strings.Repeat("© 2021 Acme\n", 3) + "[EMBED]x[/EMBED]",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitizeLinesKeepsIndentation(t *testing.T) {
	lines := []string{"  Name      Rent", "  A101     $950\x00"}
	got := SanitizeLines(lines)
	assert.Equal(t, "  Name      Rent", got[0])
	assert.Equal(t, "  A101     $950", got[1])
}
