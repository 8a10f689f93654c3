package processor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/normalize"
)

// CategorizedRecord files one row's fields under the six semantic buckets,
// values already passed through the normalizer.
type CategorizedRecord map[constants.Bucket]map[string]any

// Categorize buckets every field of every row by its column name.
func Categorize(headers []string, rows []map[string]string) []CategorizedRecord {
	records := make([]CategorizedRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(CategorizedRecord)
		for _, h := range headers {
			raw, ok := row[h]
			if !ok {
				continue
			}
			bucket := constants.BucketForColumn(h)
			if rec[bucket] == nil {
				rec[bucket] = make(map[string]any)
			}
			rec[bucket][h] = normalize.Value(raw)
		}
		records = append(records, rec)
	}
	return records
}

// renderRecords writes categorized rows back out as paragraph-per-row text
// for the extraction oracle. Buckets in canonical order, fields sorted, so
// the rendering is deterministic.
func renderRecords(records []CategorizedRecord) string {
	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fmt.Sprintf("Record %d:\n", i+1))
		for _, bucket := range constants.AsBucketSlice() {
			fields := rec[bucket]
			if len(fields) == 0 {
				continue
			}
			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			sort.Strings(names)

			b.WriteString(string(bucket))
			b.WriteString(": ")
			for j, name := range names {
				if j > 0 {
					b.WriteString("; ")
				}
				b.WriteString(name)
				b.WriteString("=")
				b.WriteString(renderValue(fields[name]))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderValue(v any) string {
	if v == nil {
		return "n/a"
	}
	if f, ok := v.(float64); ok {
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", f), "0"), ".")
	}
	return fmt.Sprintf("%v", v)
}
