package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/pipeline"
)

func (p *Processor) processSpreadsheet(ctx context.Context, path string) *pipeline.StructuredResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return pipeline.NewErrorResult("spreadsheet", fmt.Sprintf("%v: %v", common.ErrIO, err))
	}
	defer f.Close()

	p.textAcquired(constants.SPREADSHEET, "sheets", len(f.GetSheetList()))

	var (
		parts   []string
		reports []pipeline.ColumnReport
	)
	for _, sheet := range f.GetSheetList() {
		cells, err := f.GetRows(sheet)
		if err != nil {
			return pipeline.NewErrorResult("spreadsheet",
				fmt.Sprintf("%v: sheet %q: %v", common.ErrIO, sheet, err))
		}
		headers, rows := sheetRows(cells)
		if len(headers) == 0 {
			continue
		}

		records := Categorize(headers, rows)
		p.logger.Info("process.sheet.structured",
			"sheet", sheet,
			"columns", len(headers),
			"rows", len(rows))

		parts = append(parts, "Sheet: "+sheet+"\n\n"+renderRecords(records))
		for _, r := range columnReports(headers, rows) {
			r.Name = sheet + "." + r.Name
			reports = append(reports, r)
		}
	}

	res := p.orch.Extract(ctx, strings.Join(parts, "\n\n"), "spreadsheet")
	res.Metadata.Columns = reports
	return res
}

// sheetRows converts excelize's cell grid into the header/row-map shape the
// tabular path shares with CSV.
func sheetRows(cells [][]string) (headers []string, rows []map[string]string) {
	if len(cells) == 0 {
		return nil, nil
	}
	for _, h := range cells[0] {
		headers = append(headers, strings.TrimSpace(h))
	}
	for _, record := range cells[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows
}
