package segment

import (
	"log/slog"
	"strings"

	"github.com/propdoc/propdoc/internal/normalize"
	"github.com/propdoc/propdoc/internal/tables"
)

// tableExitAfter is how many consecutive non-table lines end table-like
// state inside the scanner.
const tableExitAfter = 2

// Segmenter turns sanitized text into an ordered section tree. It is fully
// heuristic: malformed input degrades to a single generic section and never
// returns an error.
type Segmenter struct {
	detector *tables.Detector
	logger   *slog.Logger
}

func New(logger *slog.Logger) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Segmenter{
		detector: tables.NewDetector(logger),
		logger:   logger,
	}
}

// Segment scans text line by line, opening a section per detected header and
// accumulating everything else into the current one. Non-main sections are
// grouped under the nearest preceding main section afterwards.
func (g *Segmenter) Segment(text string) []*Section {
	lines := strings.Split(text, "\n")

	var (
		flat        []*Section
		current     *Section
		inTable     bool
		tableMisses int
		skipNext    bool
	)

	closeCurrent := func() {
		if current == nil {
			return
		}
		current.Tables = g.detector.Detect(current.ContentLines)
		flat = append(flat, current)
		current = nil
	}

	ensure := func() *Section {
		if current == nil {
			current = &Section{Type: GenericSection, IsMain: true, KeyValues: map[string]any{}}
		}
		return current
	}

	for _, line := range lines {
		if skipNext {
			skipNext = false
			continue
		}
		trimmed := strings.TrimSpace(line)

		// page-break duplication artifact: an orphaned "NN Units" line and
		// its follower are both noise
		if reOrphanUnits.MatchString(trimmed) {
			skipNext = true
			continue
		}

		// a page marker is a soft boundary: table-like state does not
		// survive a page break, so a header on the next page is seen. The
		// marker itself is structural metadata, not content.
		if rePageMarker.MatchString(trimmed) {
			inTable = false
			tableMisses = 0
			continue
		}

		if tableLikeLine(line) {
			inTable = true
			tableMisses = 0
			sec := ensure()
			sec.ContentLines = append(sec.ContentLines, line)
			continue
		}
		if inTable {
			tableMisses++
			if trimmed == "" || tableMisses >= tableExitAfter {
				inTable = false
			}
		}

		// header detection is suppressed while table-like state is open
		if !inTable && isHeaderLine(trimmed) {
			closeCurrent()
			typ, main := classifyHeader(trimmed)
			current = &Section{
				Type:      typ,
				IsMain:    main,
				Header:    trimmed,
				KeyValues: map[string]any{},
			}
			continue
		}

		if trimmed == "" && current == nil {
			continue
		}
		sec := ensure()
		sec.ContentLines = append(sec.ContentLines, line)

		if m := reBullet.FindStringSubmatch(line); m != nil {
			sec.ListItems = append(sec.ListItems, strings.TrimSpace(m[1]))
			continue
		}
		if k, v, ok := splitKeyValue(trimmed); ok {
			sec.KeyValues[k] = normalize.Value(v)
		}
	}
	closeCurrent()

	roots := groupSubsections(flat)
	for _, s := range roots {
		s.annotate()
	}

	g.logger.Debug("segment.done",
		"sections", len(roots),
		"flat_sections", len(flat),
	)
	return roots
}

// tableLikeLine mirrors the coarse in-scanner judgement: two or more internal
// 2+-space runs, a border rule of dashes/pluses/pipes, or a leading number
// followed by a currency token.
func tableLikeLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if reBorderLine.MatchString(trimmed) {
		return true
	}
	if reNumberCurrency.MatchString(line) {
		return true
	}
	return len(reInnerGapSplit.Split(trimmed, -1)) >= 3
}

// isHeaderLine decides whether a (trimmed) line opens a new section.
func isHeaderLine(t string) bool {
	if t == "" || len(t) > 80 {
		return false
	}
	if reAllCapsHeader.MatchString(t) {
		return true
	}
	if reNumberedHeader.MatchString(t) {
		return true
	}
	if reSectionMarker.MatchString(t) {
		return true
	}
	// domain vocabulary counts only for title-shaped lines: short, few
	// words, no inline value after a colon
	if reDomainWord.MatchString(t) && len(t) <= 60 && len(strings.Fields(t)) <= 6 {
		if i := strings.Index(t, ":"); i >= 0 && i < len(t)-1 {
			return false
		}
		return true
	}
	return false
}

func splitKeyValue(t string) (string, string, bool) {
	i := strings.Index(t, ":")
	if i <= 0 || i == len(t)-1 {
		return "", "", false
	}
	k := strings.TrimSpace(t[:i])
	v := strings.TrimSpace(t[i+1:])
	if k == "" || v == "" {
		return "", "", false
	}
	return k, v, true
}
