package tables

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/propdoc/propdoc/internal/normalize"
)

// unitRowFields names the twelve fields of the strict unit-breakdown grammar,
// in match order.
var unitRowFields = [12]string{
	"beds", "baths", "units", "available",
	"avg_sf", "min_sf", "max_sf",
	"market_rent", "asking_rent", "rent_per_sf",
	"occupancy", "deposit",
}

// reUnitRow matches one rent-roll row: beds baths units available avg/min/max
// square footage, three currency amounts, an occupancy percentage, and a
// deposit. Anything looser is handled by the metrics grammar instead.
var reUnitRow = regexp.MustCompile(
	`^\s*(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\s+(\d+)\s+(\d+)\s+` +
		`([\d,]+)\s+([\d,]+)\s+([\d,]+)\s+` +
		`(\$[\d,]+(?:\.\d+)?)\s+(\$[\d,]+(?:\.\d+)?)\s+(\$[\d,.]+)\s+` +
		`([\d.]+%)\s+(\$[\d,]+(?:\.\d+)?)\s*$`)

var reFieldSplit = regexp.MustCompile(`\s{2,}|\t`)

// parseUnitRow parses a line against the unit-breakdown grammar. The second
// return is false when the line is not a unit row.
func parseUnitRow(line string) (Row, bool) {
	m := reUnitRow.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	row := make(Row, len(unitRowFields))
	for i, name := range unitRowFields {
		row[name] = normalize.Value(m[i+1])
	}
	return row, true
}

// parseMetricsRow splits a line on runs of 2+ spaces or tabs and normalizes
// each field. Returns nil when the line has fewer than two fields.
func parseMetricsRow(line string, headers []string) Row {
	fields := splitFields(line)
	if len(fields) < 2 {
		return nil
	}
	row := make(Row, len(fields))
	for i, f := range fields {
		row[keyFor(headers, i)] = normalize.Value(f)
	}
	return row
}

func splitFields(line string) []string {
	parts := reFieldSplit.Split(strings.TrimSpace(line), -1)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func keyFor(headers []string, i int) string {
	if i < len(headers) && headers[i] != "" {
		return headers[i]
	}
	return "col_" + strconv.Itoa(i+1)
}

// aggregator accumulates unit-breakdown summary stats with explicit running
// sums rather than recomputing from the previous average, which compounds
// floating-point error over long tables.
type aggregator struct {
	rows      int
	units     float64
	available float64
	sizeSum   float64
	sizeCount int
	rentSum   float64
	rentCount int
}

func (a *aggregator) add(row Row) {
	a.rows++
	if v, ok := row["units"].(float64); ok {
		a.units += v
	}
	if v, ok := row["available"].(float64); ok {
		a.available += v
	}
	if v, ok := row["avg_sf"].(float64); ok {
		a.sizeSum += v
		a.sizeCount++
	}
	if v, ok := row["asking_rent"].(float64); ok {
		a.rentSum += v
		a.rentCount++
	}
}

func (a *aggregator) summary() *Summary {
	s := &Summary{
		TotalRows:      a.rows,
		TotalUnits:     a.units,
		TotalAvailable: a.available,
	}
	if a.sizeCount > 0 {
		s.AvgUnitSize = a.sizeSum / float64(a.sizeCount)
	}
	if a.rentCount > 0 {
		s.AvgAskingRent = a.rentSum / float64(a.rentCount)
	}
	return s
}
