package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentNoHeadersSingleGeneric(t *testing.T) {
	g := New(nil)

	text := "just a plain paragraph.\nanother line of prose.\nand a third."
	got := g.Segment(text)
	require.Len(t, got, 1)
	assert.Equal(t, GenericSection, got[0].Type)
	assert.Equal(t, "", got[0].Header)
	assert.Len(t, got[0].ContentLines, 3)
}

func TestSegmentHeaderFamilies(t *testing.T) {
	g := New(nil)

	text := strings.Join([]string{
		"PROPERTY OVERVIEW",
		"Year Built: 1998",
		"",
		"DEMOGRAPHICS",
		"Population: 48,000",
		"",
		"FINANCIAL SUMMARY",
		"Asking Price: $27,450,000",
	}, "\n")

	got := g.Segment(text)
	require.Len(t, got, 2)

	assert.Equal(t, PropertySummary, got[0].Type)
	assert.True(t, got[0].IsMain)
	assert.Equal(t, float64(1998), got[0].KeyValues["Year Built"])

	// DEMOGRAPHICS is a sub header and should hang off the preceding main
	require.Len(t, got[0].Subsections, 1)
	sub := got[0].Subsections[0]
	assert.Equal(t, LocationMarket, sub.Type)
	assert.False(t, sub.IsMain)
	assert.Equal(t, float64(48000), sub.KeyValues["Population"])

	assert.Equal(t, Financial, got[1].Type)
	assert.Equal(t, float64(27450000), got[1].KeyValues["Asking Price"])
}

func TestSegmentSubWithoutMainStaysTopLevel(t *testing.T) {
	flat := []*Section{
		{Type: LocationMarket, IsMain: false, Header: "DEMOGRAPHICS"},
		{Type: PropertySummary, IsMain: true, Header: "PROPERTY OVERVIEW"},
		{Type: Financial, IsMain: false, Header: "TAXES"},
	}
	roots := groupSubsections(flat)
	require.Len(t, roots, 2)
	assert.Equal(t, "DEMOGRAPHICS", roots[0].Header)
	assert.Equal(t, "PROPERTY OVERVIEW", roots[1].Header)
	require.Len(t, roots[1].Subsections, 1)
	assert.Equal(t, "TAXES", roots[1].Subsections[0].Header)
}

func TestSegmentListItems(t *testing.T) {
	g := New(nil)

	text := strings.Join([]string{
		"AMENITIES",
		"- swimming pool",
		"- fitness center",
		"* covered parking",
	}, "\n")
	got := g.Segment(text)
	require.Len(t, got, 1)
	assert.Equal(t, PropertyFeatures, got[0].Type)
	assert.Equal(t, []string{"swimming pool", "fitness center", "covered parking"}, got[0].ListItems)
}

func TestSegmentOrphanUnitCountDropped(t *testing.T) {
	g := New(nil)

	text := strings.Join([]string{
		"some prose before",
		"128 Units",
		"duplicated artifact line",
		"some prose after",
	}, "\n")
	got := g.Segment(text)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"some prose before", "some prose after"}, got[0].ContentLines)
}

func TestSegmentEmbeddedTableAttached(t *testing.T) {
	g := New(nil)

	text := strings.Join([]string{
		"RENT ROLL",
		"Unit Type      Avg SF     Asking Rent",
		"Studio         520        $1,150",
		"One Bedroom    710        $1,480",
		"Two Bedroom    980        $1,910",
	}, "\n")
	got := g.Segment(text)
	require.Len(t, got, 1)
	assert.Equal(t, Financial, got[0].Type)
	require.Len(t, got[0].Tables, 1)
	assert.Len(t, got[0].Tables[0].Rows, 3)
	assert.Equal(t, 1, got[0].Stats.TableCount)
}

func TestSegmentHeaderSuppressedInsideTable(t *testing.T) {
	g := New(nil)

	text := strings.Join([]string{
		"OPERATING STATEMENT",
		"Line Item      Year 1     Year 2",
		"Income         $100       $110",
		"TOTALS",
		"Expenses       $40        $44",
	}, "\n")
	got := g.Segment(text)
	// TOTALS sits between aligned rows and must not open a section
	require.Len(t, got, 1)
	assert.Equal(t, "OPERATING STATEMENT", got[0].Header)
}

func TestSegmentPageMarkerEndsTableState(t *testing.T) {
	g := New(nil)

	// the table runs to the bottom of the page; the header that opens the
	// next page must still be recognized
	text := strings.Join([]string{
		"RENT ROLL",
		"Unit     Type     Rent",
		"101      1BR      $1,200",
		"102      2BR      $1,450",
		"[PAGE 2]",
		"DEMOGRAPHICS",
		"Population: 48,000",
	}, "\n")
	got := g.Segment(text)
	require.Len(t, got, 1)
	assert.Equal(t, "RENT ROLL", got[0].Header)
	require.Len(t, got[0].Subsections, 1)
	assert.Equal(t, "DEMOGRAPHICS", got[0].Subsections[0].Header)

	// the marker is consumed, not carried as section content
	for _, s := range append([]*Section{got[0]}, got[0].Subsections...) {
		for _, line := range s.ContentLines {
			assert.NotContains(t, line, "[PAGE")
		}
	}
}

func TestSectionRenderAndStats(t *testing.T) {
	s := &Section{
		Type:         PropertySummary,
		IsMain:       true,
		Header:       "PROPERTY OVERVIEW",
		ContentLines: []string{"Year Built: 1998"},
		KeyValues:    map[string]any{"Year Built": float64(1998)},
		Subsections:  []*Section{{Type: GenericSection, Header: "NOTES"}},
	}
	s.annotate()
	assert.Equal(t, 1, s.Stats.LineCount)
	assert.Equal(t, 1, s.Stats.KeyValueCount)
	assert.Equal(t, 1, s.Stats.SubsectionCount)

	out := s.Render()
	assert.True(t, strings.HasPrefix(out, "PROPERTY OVERVIEW\n"))
	assert.Contains(t, out, "Year Built: 1998")
	assert.Contains(t, out, "NOTES")
}
