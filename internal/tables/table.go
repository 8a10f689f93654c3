// Package tables finds column-aligned table regions in plain extracted text
// and parses them into typed rows with column metadata.
package tables

// TableType tags what kind of grid a detected table is.
type TableType string

const (
	// UnitBreakdown is a rent-roll style table whose rows match the strict
	// twelve-field unit grammar.
	UnitBreakdown TableType = "unit_breakdown"
	// Metrics is a loose label/value grid of 2+ space-delimited fields.
	Metrics TableType = "metrics"
	// Generic is anything table-shaped that fits neither grammar.
	Generic TableType = "generic"
)

// ColumnType is the inferred data type of a column's values.
type ColumnType string

const (
	ColNumeric    ColumnType = "numeric"
	ColCurrency   ColumnType = "currency"
	ColPercentage ColumnType = "percentage"
	ColText       ColumnType = "text"
)

// Alignment is the inferred visual alignment of a column.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignRight  Alignment = "right"
	AlignCenter Alignment = "center"
)

// Column describes one detected column.
type Column struct {
	Header    string     `json:"header"`
	Type      ColumnType `json:"type"`
	Alignment Alignment  `json:"alignment"`
}

// Row is one parsed table row keyed by column header (or positional key when
// the header row is narrower than the data).
type Row map[string]any

// Summary carries running aggregates for unit-breakdown tables.
type Summary struct {
	TotalRows      int     `json:"total_rows"`
	TotalUnits     float64 `json:"total_units"`
	TotalAvailable float64 `json:"total_available"`
	AvgUnitSize    float64 `json:"avg_unit_size"`
	AvgAskingRent  float64 `json:"avg_asking_rent"`
}

// Table is a detected grid with provenance into the scanned line range.
// StartLine <= EndLine always holds; both are indexes into the line slice
// handed to Detect.
type Table struct {
	Type      TableType `json:"type"`
	StartLine int       `json:"start_line"`
	EndLine   int       `json:"end_line"`
	Headers   []string  `json:"headers"`
	Rows      []Row     `json:"rows"`
	Columns   []Column  `json:"columns"`
	Summary   *Summary  `json:"summary,omitempty"`
}
