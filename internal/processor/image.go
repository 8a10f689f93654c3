package processor

import (
	"context"
	"fmt"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/ocr"
	"github.com/propdoc/propdoc/internal/pipeline"
	"github.com/propdoc/propdoc/internal/textclean"
)

func (p *Processor) processImage(ctx context.Context, path string) *pipeline.StructuredResult {
	raw, err := p.ocr.Extract(ctx, path)
	if err != nil {
		return pipeline.NewErrorResult("image", fmt.Sprintf("%v: %v", common.ErrIO, err))
	}

	p.textAcquired(constants.IMAGE, "method", raw.Method, "bytes", len(raw.Text))

	// OCR output is sanitized as one block; images have no page structure
	cleaned := textclean.Sanitize(raw.Text)
	sections := p.segmenter.Segment(cleaned)

	p.logger.Info("process.image.structured",
		"sections", len(sections),
		"ocr_confidence", raw.Confidence,
		"warnings", len(raw.Warnings))

	res := p.orch.Extract(ctx, cleaned, "image")
	res.Metadata.Section = sectionLabel(sections)
	res.Metadata.Image = imageMetaMap(raw.Image, raw.Warnings)
	return res
}

// imageMetaMap shapes image metadata for the artifact. When metadata could
// not be read the map degrades to format "unknown" plus the warning text
// instead of failing the run.
func imageMetaMap(meta *ocr.ImageMeta, warnings []string) map[string]any {
	if meta == nil {
		return nil
	}
	m := map[string]any{"format": meta.Format}
	if meta.Format == "unknown" {
		if len(warnings) > 0 {
			m["error"] = warnings[len(warnings)-1]
		}
		return m
	}
	m["width"] = meta.Width
	m["height"] = meta.Height
	m["mode"] = meta.Mode
	return m
}
