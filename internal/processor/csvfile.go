package processor

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/common"
	"github.com/propdoc/propdoc/internal/pipeline"
)

func (p *Processor) processCSV(ctx context.Context, path string) *pipeline.StructuredResult {
	headers, rows, err := readCSV(path)
	if err != nil {
		return pipeline.NewErrorResult("csv", fmt.Sprintf("%v: %v", common.ErrIO, err))
	}

	p.textAcquired(constants.CSV, "columns", len(headers), "rows", len(rows))

	records := Categorize(headers, rows)
	p.logger.Info("process.csv.structured",
		"columns", len(headers),
		"rows", len(rows))

	res := p.orch.Extract(ctx, renderRecords(records), "csv")
	res.Metadata.Columns = columnReports(headers, rows)
	return res
}

// readCSV reads the file into a header slice plus one field-map per row.
// Short rows leave trailing columns absent rather than empty.
func readCSV(path string) (headers []string, rows []map[string]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // real exports have ragged rows

	headers, err = r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty csv: %s", path)
	}
	if err != nil {
		return nil, nil, err
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
