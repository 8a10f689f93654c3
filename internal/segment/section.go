// Package segment splits sanitized document text into an ordered tree of
// classified sections, with key/value pairs, list items, and embedded tables
// pulled out along the way.
package segment

import (
	"strings"

	"github.com/propdoc/propdoc/internal/tables"
)

// SectionType is the pattern family a section header matched, or generic.
type SectionType string

const (
	PropertySummary  SectionType = "property_summary"
	LocationMarket   SectionType = "location_market"
	SalesData        SectionType = "sales_data"
	PropertyFeatures SectionType = "property_features"
	Financial        SectionType = "financial"
	GenericSection   SectionType = "generic"
)

// Stats carries the summary counts annotated on every finished section.
type Stats struct {
	LineCount       int `json:"line_count"`
	KeyValueCount   int `json:"key_value_count"`
	TableCount      int `json:"table_count"`
	ListItemCount   int `json:"list_item_count"`
	SubsectionCount int `json:"subsection_count"`
}

// Section is a classified span of document text. A section either stands
// alone or is owned by exactly one parent's Subsections list; there are no
// shared or backward references in the tree.
type Section struct {
	Type         SectionType    `json:"type"`
	IsMain       bool           `json:"is_main"`
	Header       string         `json:"header"`
	ContentLines []string       `json:"content_lines"`
	KeyValues    map[string]any `json:"key_value_pairs"`
	ListItems    []string       `json:"list_items"`
	Tables       []tables.Table `json:"tables"`
	Subsections  []*Section     `json:"subsections"`
	Stats        Stats          `json:"stats"`
}

// Render writes a section back into normalized textual form: header, content
// lines, then subsections, each block separated by a blank line.
func (s *Section) Render() string {
	var b strings.Builder
	if s.Header != "" {
		b.WriteString(s.Header)
		b.WriteString("\n")
	}
	for _, ln := range s.ContentLines {
		b.WriteString(ln)
		b.WriteString("\n")
	}
	for _, sub := range s.Subsections {
		b.WriteString("\n")
		b.WriteString(sub.Render())
	}
	return b.String()
}

// annotate fills in the summary counts, recursing into subsections.
func (s *Section) annotate() {
	s.Stats = Stats{
		LineCount:       len(s.ContentLines),
		KeyValueCount:   len(s.KeyValues),
		TableCount:      len(s.Tables),
		ListItemCount:   len(s.ListItems),
		SubsectionCount: len(s.Subsections),
	}
	for _, sub := range s.Subsections {
		sub.annotate()
	}
}

// groupSubsections attaches every non-main section to the nearest preceding
// main section; sections with no preceding main stay top-level.
func groupSubsections(flat []*Section) []*Section {
	var out []*Section
	var lastMain *Section
	for _, s := range flat {
		if s.IsMain {
			lastMain = s
			out = append(out, s)
			continue
		}
		if lastMain != nil {
			lastMain.Subsections = append(lastMain.Subsections, s)
		} else {
			out = append(out, s)
		}
	}
	return out
}
