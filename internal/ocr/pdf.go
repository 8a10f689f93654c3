package ocr

import (
	"context"
	"regexp"
	"strings"

	"github.com/propdoc/propdoc/constants"
)

// 2+ consecutive blank lines, the fallback page break.
var reBlankPageBreak = regexp.MustCompile(`\n{3,}`)

func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	// -layout keeps the original column spacing, which table detection
	// depends on downstream.
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return Result{SourceType: constants.PDF, Warnings: []string{string(errb)}}, err
	}
	text := string(out)

	// A form-feed \f is the page separator.
	pages := 1 + strings.Count(text, "\f")
	return Result{
		Text:       text,
		Pages:      pages,
		SourceType: constants.PDF,
		Method:     "pdf-text",
	}, nil
}

// SplitPages splits raw PDF text into pages on form-feed, falling back to
// runs of 2+ blank lines when the extractor emitted no form feeds.
func SplitPages(text string) []string {
	if strings.Contains(text, "\f") {
		return strings.Split(text, "\f")
	}
	return reBlankPageBreak.Split(text, -1)
}
