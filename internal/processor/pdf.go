package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/ocr"
	"github.com/propdoc/propdoc/internal/pipeline"
	"github.com/propdoc/propdoc/internal/tables"
	"github.com/propdoc/propdoc/internal/textclean"
)

func (p *Processor) processPDF(ctx context.Context, path string) *pipeline.StructuredResult {
	raw, err := p.ocr.Extract(ctx, path)
	if err != nil {
		return pipeline.NewErrorResult("pdf", fmt.Sprintf("%v: %v", common.ErrIO, err))
	}

	pages := ocr.SplitPages(raw.Text)
	p.textAcquired(constants.PDF, "pages", len(pages), "bytes", len(raw.Text))
	var (
		cleanedPages []string
		tableCount   int
	)
	for i, page := range pages {
		cleaned, detected := p.cleanPage(page)
		tableCount += len(detected)
		if len(detected) > 0 {
			p.logger.Debug("process.pdf.tables", "page", i+1, "tables", len(detected))
		}
		cleanedPages = append(cleanedPages, cleaned)
	}
	cleanedText := strings.Join(cleanedPages, "\n\n")

	sections := p.segmenter.Segment(cleanedText)
	p.logger.Info("process.pdf.structured",
		"pages", len(pages),
		"sections", len(sections),
		"tables", tableCount)

	res := p.orch.Extract(ctx, cleanedText, "pdf")
	res.Metadata.Page = len(pages)
	res.Metadata.Section = sectionLabel(sections)
	return res
}

// cleanPage detects tables on the uncleaned page first (detection needs the
// original spacing), then sanitizes every line that falls outside a detected
// table's line range.
func (p *Processor) cleanPage(page string) (string, []tables.Table) {
	lines := strings.Split(page, "\n")
	detected := p.detector.Detect(lines)

	inTable := make([]bool, len(lines))
	for _, t := range detected {
		for i := t.StartLine; i <= t.EndLine && i < len(lines); i++ {
			inTable[i] = true
		}
	}

	cleaned := textclean.SanitizeLines(lines)
	for i := range cleaned {
		if inTable[i] {
			cleaned[i] = lines[i]
		}
	}
	return strings.Join(cleaned, "\n"), detected
}
