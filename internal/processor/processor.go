package processor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/ocr"
	"github.com/propdoc/propdoc/internal/pipeline"
	"github.com/propdoc/propdoc/internal/segment"
	"github.com/propdoc/propdoc/internal/tables"
)

// Processor dispatches a file to its format handler and carries the shared
// collaborators every handler needs: text acquisition, structure detection,
// and the extraction orchestrator.
type Processor struct {
	ocr       *ocr.Extractor
	segmenter *segment.Segmenter
	detector  *tables.Detector
	orch      *pipeline.Orchestrator
	logger    *slog.Logger
}

func New(extractor *ocr.Extractor, orch *pipeline.Orchestrator, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		ocr:       extractor,
		segmenter: segment.New(logger),
		detector:  tables.NewDetector(logger),
		orch:      orch,
		logger:    logger,
	}
}

// Process runs one file through its format handler and returns the final
// artifact. It never returns an error: every failure becomes an error-status
// StructuredResult so batch callers can keep going.
func (p *Processor) Process(ctx context.Context, path string) *pipeline.StructuredResult {
	reqID := uuid.New().String()
	start := time.Now()
	format := constants.MapExtToFormat(filepath.Ext(path))

	p.logger.Info("process.start",
		"req_id", reqID,
		"path", filepath.Base(path),
		"format", string(format))

	var res *pipeline.StructuredResult
	switch format {
	case constants.PDF:
		res = p.processPDF(ctx, path)
	case constants.IMAGE:
		res = p.processImage(ctx, path)
	case constants.CSV:
		res = p.processCSV(ctx, path)
	case constants.SPREADSHEET:
		res = p.processSpreadsheet(ctx, path)
	default:
		res = pipeline.NewErrorResult("unknown",
			fmt.Sprintf("%v: %s (supported: %v)",
				common.ErrUnsupportedFormat, filepath.Ext(path), constants.FileFormats))
	}

	res.Metadata.OriginalFilename = filepath.Base(path)

	p.logger.Info("process.done",
		"req_id", reqID,
		"path", filepath.Base(path),
		"status", string(res.ProcessingStatus),
		"elapsed_ms", time.Since(start).Milliseconds())
	return res
}

// textAcquired marks stage 1 of a processing job: raw text or rows are in
// hand and structuring can begin.
func (p *Processor) textAcquired(format constants.FileFormat, detail ...any) {
	attrs := append([]any{
		"job_status", string(constants.JobStatusTextOK),
		"format", string(format),
	}, detail...)
	p.logger.Debug("process.stage", attrs...)
}

// sectionLabel picks the metadata section label: the first main section's
// type, falling back to the first section of any kind.
func sectionLabel(sections []*segment.Section) string {
	for _, s := range sections {
		if s.IsMain {
			return string(s.Type)
		}
	}
	if len(sections) > 0 {
		return string(sections[0].Type)
	}
	return ""
}
