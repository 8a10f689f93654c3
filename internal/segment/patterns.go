package segment

import "regexp"

// family binds a section type to its main and sub header patterns. Keeping
// the vocabulary as data preserves which family matched instead of burying
// the answer in a conditional chain.
type family struct {
	Type SectionType
	Main *regexp.Regexp
	Subs []*regexp.Regexp
}

var headerFamilies = []family{
	{
		Type: PropertySummary,
		Main: regexp.MustCompile(`(?i)^(executive\s+summary|property\s+(summary|overview|description)|investment\s+(summary|overview|highlights))\b`),
		Subs: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(general\s+information|property\s+details|building\s+information|site\s+(description|information)|parcel)\b`),
		},
	},
	{
		Type: LocationMarket,
		Main: regexp.MustCompile(`(?i)^(location\s+(overview|analysis|summary)|market\s+(overview|analysis|summary)|area\s+overview)\b`),
		Subs: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(demographics|neighborhood|transportation|access|schools|employers)\b`),
		},
	},
	{
		Type: SalesData,
		Main: regexp.MustCompile(`(?i)^(sales?\s+(comparables?|data|history)|comparable\s+sales?|transaction\s+(summary|history))\b`),
		Subs: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(recent\s+sales?|closings?|price\s+history|comp\s+set)\b`),
		},
	},
	{
		Type: PropertyFeatures,
		Main: regexp.MustCompile(`(?i)^(property\s+features|amenities|features\s+(and|&)\s+amenities|construction|improvements)\b`),
		Subs: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(unit\s+(features|amenities)|community\s+amenities|interior|exterior|mechanical|parking)\b`),
		},
	},
	{
		Type: Financial,
		Main: regexp.MustCompile(`(?i)^(financial\s+(summary|analysis|overview)|operating\s+(statement|summary)|income\s+(and|&)\s+expenses?|rent\s+roll|pro\s*forma)\b`),
		Subs: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(income|expenses?|noi|net\s+operating|cash\s+flow|taxes|insurance|utilities)\b`),
		},
	},
}

// classifyHeader resolves a header line to its family type and whether it hit
// the family's main pattern. Headers outside every family come back generic
// and main.
func classifyHeader(header string) (SectionType, bool) {
	for _, f := range headerFamilies {
		if f.Main.MatchString(header) {
			return f.Type, true
		}
	}
	for _, f := range headerFamilies {
		for _, sub := range f.Subs {
			if sub.MatchString(header) {
				return f.Type, false
			}
		}
	}
	return GenericSection, true
}

var (
	reAllCapsHeader  = regexp.MustCompile(`^[A-Z][A-Z0-9 &/,'-]{2,59}:?$`)
	reNumberedHeader = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s+\S`)
	reSectionMarker  = regexp.MustCompile(`(?i)^(section|part|chapter)\s+[\dIVXA-Z]+\b`)
	reDomainWord     = regexp.MustCompile(`(?i)\b(summary|overview|amenities|demographics|rent\s+roll|comparables?|financials?|highlights)\b`)

	reOrphanUnits = regexp.MustCompile(`(?i)^\s*\d+\s+Units\s*$`)

	// standalone page marker emitted by the sanitizer
	rePageMarker = regexp.MustCompile(`^\[PAGE \d+\]$`)

	reBorderLine     = regexp.MustCompile(`^[\s]*[-+|=]{2,}[\s\-+|=]*$`)
	reNumberCurrency = regexp.MustCompile(`^\s*\d+\s+\$`)
	reInnerGapSplit  = regexp.MustCompile(`\s{2,}`)

	reBullet = regexp.MustCompile(`^\s*[-*•·]\s+(.+)$`)
)
