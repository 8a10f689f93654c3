package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/propdoc/propdoc/internal/pipeline"
)

func TestSummaryXLSX(t *testing.T) {
	ok := pipeline.NewSuccessResult(map[string]any{"unit_count": 48, "asking_price": 27450000.0}, "pdf")
	ok.Metadata.OriginalFilename = "offering.pdf"
	ok.Metadata.OutputFilename = "e_offering.json"
	ok.Metadata.Page = 2

	bad := pipeline.NewErrorResult("csv", "source unreadable: open missing.csv")
	bad.Metadata.OriginalFilename = "missing.csv"

	data, err := NewService(nil).SummaryXLSX([]*pipeline.StructuredResult{ok, bad})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Extractions")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Original File", rows[0][0])
	assert.Equal(t, "offering.pdf", rows[1][0])
	assert.Equal(t, "e_offering.json", rows[1][1])
	assert.Equal(t, "success", rows[1][3])
	assert.Equal(t, "2", rows[1][4])
	assert.Equal(t, "missing.csv", rows[2][0])
	assert.Equal(t, "error", rows[2][3])
}
