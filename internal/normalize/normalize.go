// Package normalize converts raw scalar strings pulled out of documents
// (currency amounts, percentages, unit counts, month-year dates, "n/a")
// into typed values every downstream consumer can rely on.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reUnitNumber = regexp.MustCompile(`(?i)^(\d[\d,]*(?:\.\d+)?)\s*(units?|sf|spaces?)?$`)
	reCurrency   = regexp.MustCompile(`\$\s*(\d[\d,]*(?:\.\d+)?)`)
	rePercent    = regexp.MustCompile(`^(\d[\d,]*(?:\.\d+)?)\s*%$`)
	reMonthYear  = regexp.MustCompile(`(?i)^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{4})$`)
)

// monthIndex resolves a three-letter month prefix regardless of case.
var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Value normalizes a raw scalar string into a float64, a string, or nil.
//
// Matching precedence is fixed: unit-suffixed number, then currency, then
// percentage, then month-year, then the trimmed original string. Currency
// strings can degenerate into "number + unit" shapes, so the order is not
// reorderable.
func Value(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" || strings.EqualFold(s, "n/a") {
		return nil
	}

	if m := reUnitNumber.FindStringSubmatch(s); m != nil {
		if f, err := parseNumber(m[1]); err == nil {
			return f
		}
	}

	if strings.Contains(s, "$") {
		if m := reCurrency.FindStringSubmatch(s); m != nil {
			if f, err := parseNumber(m[1]); err == nil {
				return f
			}
		}
	}

	if m := rePercent.FindStringSubmatch(s); m != nil {
		if f, err := parseNumber(m[1]); err == nil {
			return f / 100
		}
	}

	if m := reMonthYear.FindStringSubmatch(s); m != nil {
		month := monthIndex[strings.ToLower(m[1])]
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}

	return s
}

// Number is like Value but only reports numeric results.
func Number(raw string) (float64, bool) {
	f, ok := Value(raw).(float64)
	return f, ok
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
