package tables

import (
	"regexp"
	"strings"
)

var (
	reSignedDecimal = regexp.MustCompile(`^-?[\d,]+(?:\.\d+)?$`)
	reDollarValue   = regexp.MustCompile(`^\$\s*[\d,]+(?:\.\d+)?$`)
)

// classifyColumns derives per-column type and alignment from a completed
// table's header row plus the raw cell slices of its body rows. cells is
// indexed [row][col] and holds the unpadded text exactly as it sat in the
// source line.
func classifyColumns(headers []string, cells [][]string) []Column {
	n := len(headers)
	for _, r := range cells {
		if len(r) > n {
			n = len(r)
		}
	}
	cols := make([]Column, n)
	for i := 0; i < n; i++ {
		var header string
		if i < len(headers) {
			header = headers[i]
		}
		var raw []string
		for _, r := range cells {
			if i < len(r) {
				raw = append(raw, r[i])
			}
		}
		cols[i] = Column{
			Header:    header,
			Type:      columnType(raw),
			Alignment: columnAlignment(raw),
		}
	}
	return cols
}

// columnType infers a column's data type from its non-empty values: numeric
// when every value is a signed decimal, currency when every value carries a
// leading dollar sign, percentage when every value ends in "%", else text.
func columnType(raw []string) ColumnType {
	var values []string
	for _, c := range raw {
		if v := strings.TrimSpace(c); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return ColText
	}

	all := func(pred func(string) bool) bool {
		for _, v := range values {
			if !pred(v) {
				return false
			}
		}
		return true
	}
	switch {
	case all(reSignedDecimal.MatchString):
		return ColNumeric
	case all(reDollarValue.MatchString):
		return ColCurrency
	case all(func(v string) bool { return strings.HasSuffix(v, "%") }):
		return ColPercentage
	default:
		return ColText
	}
}

// columnAlignment looks at the padding of the raw cell slices: right when
// every non-empty cell has leading padding, center when both sides are
// padded, left otherwise.
func columnAlignment(raw []string) Alignment {
	leading, trailing, seen := true, true, false
	for _, c := range raw {
		if strings.TrimSpace(c) == "" {
			continue
		}
		seen = true
		if !strings.HasPrefix(c, " ") {
			leading = false
		}
		if !strings.HasSuffix(c, " ") {
			trailing = false
		}
	}
	if !seen || !leading {
		return AlignLeft
	}
	if trailing {
		return AlignCenter
	}
	return AlignRight
}
