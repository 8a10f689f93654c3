package tables

import (
	"log/slog"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// closeAfterMisses is how many consecutive non-table lines end an open table.
const closeAfterMisses = 3

// minTableRows is the evidence threshold: anything shorter is plain text.
const minTableRows = 3

// terminatorKind names why a table was force-closed, kept as data so the
// decision is inspectable rather than buried in control flow.
type terminatorKind string

const (
	termMajorHeader   terminatorKind = "major_header"
	termSeparatorRule terminatorKind = "separator_rule"
	termUpdatedStamp  terminatorKind = "updated_stamp"
	termCopyright     terminatorKind = "copyright"
)

var terminators = []struct {
	kind terminatorKind
	re   *regexp.Regexp
}{
	{termMajorHeader, regexp.MustCompile(`^\s*[A-Z][A-Z &/-]{3,40}:?\s*$`)},
	{termSeparatorRule, regexp.MustCompile(`^\s*[-=_]{4,}\s*$`)},
	{termUpdatedStamp, regexp.MustCompile(`(?i)^\s*updated\b`)},
	{termCopyright, regexp.MustCompile(`©|\(c\)\s*\d{4}`)},
}

func terminator(line string) (terminatorKind, bool) {
	for _, t := range terminators {
		if t.re.MatchString(line) {
			return t.kind, true
		}
	}
	return "", false
}

// Two numeric/currency/percentage tokens separated by a 2+-space gap.
var reValuePair = regexp.MustCompile(`\$?[\d,]+(?:\.\d+)?%?\s{2,}\$?[\d,]+(?:\.\d+)?%?`)

var reWideGap = regexp.MustCompile(`\s{3,}\S`)

// Detector scans text lines for column-aligned runs.
type Detector struct {
	logger *slog.Logger
}

func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{logger: logger}
}

// builder accumulates one open table span.
type builder struct {
	start  int
	end    int
	raw    []string
	bounds []float64 // running-average column start positions
	misses int
}

// Detect scans the given lines (one physical page or line range) and returns
// every table found, in order. Line indexes in the result are relative to the
// input slice.
func (d *Detector) Detect(lines []string) []Table {
	var out []Table
	var b *builder

	flush := func() {
		if b == nil {
			return
		}
		if t, ok := d.build(b); ok {
			out = append(out, t)
		} else {
			d.logger.Debug("tables.detect.discarded",
				"start_line", b.start, "rows", len(b.raw))
		}
		b = nil
	}

	for i, line := range lines {
		if b != nil {
			if _, hit := terminator(line); hit {
				flush()
				continue
			}
		}
		if d.isTableLike(line, b) {
			if b == nil {
				b = &builder{start: i}
			}
			b.raw = append(b.raw, line)
			b.end = i
			b.misses = 0
			b.refine(boundaries(line))
			continue
		}
		if b != nil {
			b.misses++
			if b.misses >= closeAfterMisses {
				flush()
			}
		}
	}
	flush() // page end closes any open table
	return out
}

// isTableLike applies the layered row heuristics. The open builder, when
// present, adds the column-aligned check against its running boundaries.
func (d *Detector) isTableLike(line string, b *builder) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if strings.Contains(line, "\t") {
		return true
	}
	bounds := boundaries(line)
	if len(bounds) >= 2 && reWideGap.MatchString(line) {
		return true
	}
	if reValuePair.MatchString(line) {
		return true
	}
	if capitalHeaderShape(line) {
		return true
	}
	if b != nil && alignedWith(b.bounds, bounds) {
		return true
	}
	return false
}

// boundaries returns the start positions of columns after ≥2-space gaps: a
// space followed by another space followed by a non-space opens a column.
func boundaries(line string) []int {
	var out []int
	runes := []rune(line)
	for i := 2; i < len(runes); i++ {
		if runes[i] != ' ' && runes[i-1] == ' ' && runes[i-2] == ' ' {
			out = append(out, i)
		}
	}
	return out
}

// refine folds a row's boundaries into the running estimates with a weighted
// average that favors stability over the most recent row.
func (b *builder) refine(bounds []int) {
	for _, x := range bounds {
		matched := false
		for i, old := range b.bounds {
			if math.Abs(old-float64(x)) <= 2 {
				b.bounds[i] = (2*old + float64(x)) / 3
				matched = true
				break
			}
		}
		if !matched {
			b.bounds = append(b.bounds, float64(x))
		}
	}
}

// alignedWith reports whether a row's boundaries line up with the open
// table's, within a one-character tolerance.
func alignedWith(open []float64, bounds []int) bool {
	if len(open) == 0 || len(bounds) == 0 {
		return false
	}
	matches := 0
	for _, x := range bounds {
		for _, o := range open {
			if math.Abs(o-float64(x)) <= 1 {
				matches++
				break
			}
		}
	}
	return matches >= 2 || matches == len(bounds)
}

// capitalHeaderShape matches rows like "Unit Type    Avg SF    Asking Rent":
// three or more gap-separated fields, each starting with a capital letter.
func capitalHeaderShape(line string) bool {
	if !strings.Contains(line, "  ") && !strings.Contains(line, "\t") {
		return false
	}
	fields := splitFields(line)
	if len(fields) < 3 {
		return false
	}
	for _, f := range fields {
		if !unicode.IsUpper([]rune(f)[0]) {
			return false
		}
	}
	return true
}

// build turns an accumulated span into a Table, or reports false when the
// span is below the row-evidence threshold.
func (d *Detector) build(b *builder) (Table, bool) {
	if len(b.raw) < minTableRows {
		return Table{}, false
	}

	var headers []string
	body := b.raw
	if fields := splitFields(b.raw[0]); looksLikeHeader(fields) {
		headers = fields
		body = b.raw[1:]
	}

	var (
		rows     []Row
		agg      aggregator
		unitRows int
	)
	for _, line := range body {
		if row, ok := parseUnitRow(line); ok {
			rows = append(rows, row)
			agg.add(row)
			unitRows++
			continue
		}
		if row := parseMetricsRow(line, headers); row != nil {
			rows = append(rows, row)
		}
	}

	t := Table{
		Type:      Generic,
		StartLine: b.start,
		EndLine:   b.end,
		Headers:   headers,
		Rows:      rows,
		Columns:   classifyColumns(headers, sliceCells(body, b.bounds)),
	}
	switch {
	case unitRows > 0:
		t.Type = UnitBreakdown
		t.Summary = agg.summary()
	case len(rows) > 0:
		t.Type = Metrics
	}

	d.logger.Debug("tables.detect.table",
		"type", string(t.Type),
		"start_line", t.StartLine,
		"end_line", t.EndLine,
		"rows", len(t.Rows),
		"columns", len(t.Columns),
	)
	return t, true
}

// looksLikeHeader is satisfied when most fields lead with a letter rather
// than a digit or currency symbol.
func looksLikeHeader(fields []string) bool {
	if len(fields) < 2 {
		return false
	}
	letters := 0
	for _, f := range fields {
		if r := []rune(f)[0]; unicode.IsLetter(r) {
			letters++
		}
	}
	return letters*2 > len(fields)
}

// sliceCells cuts each body line at the settled column positions, keeping the
// padding so alignment stays recoverable. Tab rows split on tabs instead.
func sliceCells(body []string, bounds []float64) [][]string {
	starts := []int{0}
	for _, b := range bounds {
		starts = append(starts, int(math.Round(b)))
	}
	cells := make([][]string, 0, len(body))
	for _, line := range body {
		if strings.Contains(line, "\t") {
			cells = append(cells, strings.Split(line, "\t"))
			continue
		}
		runes := []rune(line)
		var row []string
		for i, s := range starts {
			if s >= len(runes) {
				break
			}
			e := len(runes)
			if i+1 < len(starts) && starts[i+1] < e {
				e = starts[i+1]
			}
			row = append(row, string(runes[s:e]))
		}
		cells = append(cells, row)
	}
	return cells
}
