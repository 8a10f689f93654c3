package pipeline

import (
	"log/slog"
	"regexp"
	"strings"
)

var reParagraphBreak = regexp.MustCompile(`\n\s*\n`)

// Chunker groups paragraph-delimited text into oracle-sized chunks.
// A chunk that still exceeds MaxChars after grouping is dropped whole and
// logged; it is not subdivided further.
type Chunker struct {
	Paragraphs int // paragraphs grouped per chunk
	MaxChars   int // hard character ceiling per chunk
	logger     *slog.Logger
}

func NewChunker(paragraphs, maxChars int, logger *slog.Logger) *Chunker {
	if paragraphs <= 0 {
		paragraphs = 3
	}
	if maxChars <= 0 {
		maxChars = 4000
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Chunker{Paragraphs: paragraphs, MaxChars: maxChars, logger: logger}
}

// Chunks splits cleaned text on blank-line boundaries and returns groups of
// up to c.Paragraphs paragraphs, in source order, minus any oversized groups.
func (c *Chunker) Chunks(text string) []string {
	var paras []string
	for _, p := range reParagraphBreak.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	if len(paras) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(paras); i += c.Paragraphs {
		end := i + c.Paragraphs
		if end > len(paras) {
			end = len(paras)
		}
		chunk := strings.Join(paras[i:end], "\n\n")
		if len(chunk) > c.MaxChars {
			c.logger.Warn("extract.chunk.skip",
				"reason", "oversized",
				"chunk_chars", len(chunk),
				"max_chars", c.MaxChars,
				"paragraphs", end-i)
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
