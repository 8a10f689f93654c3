// Package export renders batch processing summaries as XLSX workbooks.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/propdoc/propdoc/internal/pipeline"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// SummaryXLSX returns a workbook with one row per processed file: provenance,
// outcome, and how many fields the oracle produced.
func (s *Service) SummaryXLSX(results []*pipeline.StructuredResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Extractions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIndex, _ := f.GetSheetIndex("Sheet1"); defIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Original File",
		"Output File",
		"File Type",
		"Status",
		"Fields",
		"Section",
		"Pages",
		"Processed At",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Metadata.OriginalFilename)
		write(2, r.Metadata.OutputFilename)
		write(3, r.Metadata.FileType)
		write(4, string(r.ProcessingStatus))
		write(5, len(r.StructuredData))
		write(6, r.Metadata.Section)
		if r.Metadata.Page > 0 {
			write(7, r.Metadata.Page)
		}
		write(8, r.Metadata.Timestamp)
		write(9, truncate(r.ErrorMessage, 140))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "B", 32)
	_ = f.SetColWidth(sheet, "C", "E", 10)
	_ = f.SetColWidth(sheet, "F", "F", 20)
	_ = f.SetColWidth(sheet, "H", "H", 22)
	_ = f.SetColWidth(sheet, "I", "I", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "..."
}
