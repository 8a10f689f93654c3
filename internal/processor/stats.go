package processor

import (
	"sort"
	"strings"

	"github.com/propdoc/propdoc/constants"
	"github.com/propdoc/propdoc/internal/normalize"
	"github.com/propdoc/propdoc/internal/pipeline"
)

// columnReports computes the per-column quality summary: inferred dtype,
// null and distinct counts, and min/max/mean/median for numeric columns.
func columnReports(headers []string, rows []map[string]string) []pipeline.ColumnReport {
	reports := make([]pipeline.ColumnReport, 0, len(headers))
	for _, h := range headers {
		var (
			values   []float64
			nulls    int
			distinct = make(map[string]struct{})
			numeric  = true
		)
		for _, row := range rows {
			raw := strings.TrimSpace(row[h])
			if normalize.Value(raw) == nil {
				nulls++
				continue
			}
			distinct[raw] = struct{}{}
			if f, ok := normalize.Number(raw); ok {
				values = append(values, f)
			} else {
				numeric = false
			}
		}

		r := pipeline.ColumnReport{
			Name:     h,
			Bucket:   string(constants.BucketForColumn(h)),
			Nulls:    nulls,
			Distinct: len(distinct),
		}
		switch {
		case len(distinct) == 0:
			r.Dtype = "empty"
		case numeric:
			r.Dtype = "number"
			r.Min, r.Max, r.Mean, r.Median = numericStats(values)
		default:
			r.Dtype = "text"
		}
		reports = append(reports, r)
	}
	return reports
}

func numericStats(values []float64) (min, max, mean, median *float64) {
	if len(values) == 0 {
		return nil, nil, nil, nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	lo, hi := sorted[0], sorted[len(sorted)-1]
	avg := sum / float64(len(sorted))

	var med float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		med = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		med = sorted[mid]
	}
	return &lo, &hi, &avg, &med
}
