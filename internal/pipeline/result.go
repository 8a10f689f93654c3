package pipeline

import (
	"time"

	"github.com/propdoc/propdoc/constants"
)

// Metadata carries provenance for a processed file. The persistence layer
// reads OriginalFilename/OutputFilename verbatim; the processors fill
// Section/Page/Image/Columns where the format provides them.
type Metadata struct {
	FileType         string         `json:"file_type"`
	Section          string         `json:"section,omitempty"`
	Page             int            `json:"page,omitempty"`
	Timestamp        string         `json:"timestamp"`
	OriginalFilename string         `json:"original_filename,omitempty"`
	OutputFilename   string         `json:"output_filename,omitempty"`
	Image            map[string]any `json:"image,omitempty"`
	Columns          []ColumnReport `json:"columns,omitempty"`
}

// ColumnReport is the per-column quality summary for tabular input. Numeric
// stats are nil for non-numeric columns.
type ColumnReport struct {
	Name     string   `json:"name"`
	Bucket   string   `json:"bucket"`
	Dtype    string   `json:"dtype"`
	Nulls    int      `json:"nulls"`
	Distinct int      `json:"distinct"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Mean     *float64 `json:"mean,omitempty"`
	Median   *float64 `json:"median,omitempty"`
}

// StructuredResult is the final per-file artifact: merged extracted fields
// under StructuredData, provenance metadata, and a terminal status. Created
// once per processed file and never mutated after creation.
type StructuredResult struct {
	StructuredData   map[string]any             `json:"structured_data,omitempty"`
	Metadata         Metadata                   `json:"metadata"`
	ProcessingStatus constants.ProcessingStatus `json:"processing_status"`
	ErrorMessage     string                     `json:"error_message,omitempty"`
}

// NewSuccessResult builds a success artifact around merged data. An empty
// (non-nil) data map is a legitimate success: the oracle answered but had
// nothing extractable.
func NewSuccessResult(data map[string]any, fileType string) *StructuredResult {
	if data == nil {
		data = map[string]any{}
	}
	return &StructuredResult{
		StructuredData:   data,
		Metadata:         newMetadata(fileType),
		ProcessingStatus: constants.StatusSuccess,
	}
}

// NewErrorResult builds a failed artifact. No StructuredData field is
// emitted for failures.
func NewErrorResult(fileType, message string) *StructuredResult {
	return &StructuredResult{
		Metadata:         newMetadata(fileType),
		ProcessingStatus: constants.StatusError,
		ErrorMessage:     message,
	}
}

func newMetadata(fileType string) Metadata {
	return Metadata{
		FileType:  fileType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
