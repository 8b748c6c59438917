package search

import (
	"regexp"
	"strings"

	"examprep/internal/catalog"
)

// ParsedName holds the fields the search parser extracts from a catalog
// filename. All fields are empty when no shape matches; callers treat such
// records as ungroupable rather than erroring.
type ParsedName struct {
	SessionCode string // s, m, w, j or sp
	DocType     string // qp, ms, in, er, gt
	PaperUnit   string // 1-2 digits; 2 digits = paper+variant
	FullYear    string // 4 digits when known
}

var (
	// Edexcel unit layout: 4ea1-01-que-20210606.pdf
	edexcelRe = regexp.MustCompile(`(?i)^([0-9][a-z]{2}[0-9])-([0-9]{2})-([a-z]{3})-([0-9]{8})`)

	// Specimen papers carry a literal marker plus a 4-digit year.
	specimenMarkerRe = regexp.MustCompile(`(?i)(?:specimen|(?:^|_)sp(?:_|\b))`)
	fullYearRe       = regexp.MustCompile(`(19|20)\d{2}`)
	specimenDocRe    = regexp.MustCompile(`(?i)_(qp|ms|in|er|gt)_`)
	specimenPaperRe  = regexp.MustCompile(`(?i)_(qp|ms|in|er|gt)_(\d{1,2})`)

	// Generic CIE layout: 0500_s21_qp_12.pdf
	genericRe = regexp.MustCompile(`(?i)^(\d{4})_(s|m|w|j)(\d{2})_([a-z]{2,3})_(\d{1,2})`)
)

var edexcelDocTypes = map[string]string{
	"que": "qp",
	"msc": "ms",
	"pef": "er",
	"rms": "ms",
}

var edexcelMonthSessions = map[string]string{
	"01": "j",
	"02": "j",
	"05": "s",
	"06": "s",
	"10": "w",
	"11": "w",
}

// ParseFileName is the strict parser the search index is built from. It
// recognizes three mutually exclusive shapes, tried in order: the Edexcel
// unit-code layout, the specimen layout, and the generic session layout.
func ParseFileName(fileName string, family catalog.Family) ParsedName {
	name := strings.ToLower(strings.TrimSpace(fileName))
	if name == "" {
		return ParsedName{}
	}

	if family == catalog.FamilyEdexcel {
		if m := edexcelRe.FindStringSubmatch(name); m != nil {
			unit := strings.TrimPrefix(m[2], "0")
			if unit == "" {
				unit = "0"
			}
			date := m[4]
			return ParsedName{
				SessionCode: edexcelMonthSessions[date[4:6]],
				DocType:     edexcelDocTypes[m[3]],
				PaperUnit:   unit,
				FullYear:    date[:4],
			}
		}
	}

	if specimenMarkerRe.MatchString(name) {
		if year := fullYearRe.FindString(name); year != "" {
			p := ParsedName{SessionCode: "sp", FullYear: year}
			if m := specimenDocRe.FindStringSubmatch(name); m != nil {
				p.DocType = m[1]
			}
			if m := specimenPaperRe.FindStringSubmatch(name); m != nil {
				p.PaperUnit = strings.TrimPrefix(m[2], "0")
			}
			return p
		}
	}

	if m := genericRe.FindStringSubmatch(name); m != nil {
		return ParsedName{
			SessionCode: m[2],
			DocType:     m[4],
			PaperUnit:   m[5],
			FullYear:    deriveFullYear(m[3]),
		}
	}

	return ParsedName{}
}

// PaperNumber splits the parsed paper/unit digits: two digits mean
// paper+variant, one digit means the variant defaults to 1.
func (p ParsedName) PaperNumber() (paper, variant string) {
	switch len(p.PaperUnit) {
	case 2:
		return p.PaperUnit[:1], p.PaperUnit[1:]
	case 1:
		return p.PaperUnit, "1"
	default:
		return "", ""
	}
}

// Lenient grouping patterns, tried in priority order. Intentionally more
// permissive than ParseFileName and allowed to disagree with it; the two
// parsers are kept separate so grouping keeps its historical behavior.
var groupingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)_(?:qp|ms|in|er|gt)_(\d)(\d)?(?:[_.]|$)`),
	regexp.MustCompile(`(?i)[_-]0?(\d)(\d)?(?:[_.-]|$)`),
	regexp.MustCompile(`(?i)(?:paper|unit|p)[\s_-]?(\d)`),
}

// ParsePaperVariant extracts just (paperNumber, variantDigit) for grouping.
// Empty strings mean unparseable; callers fall back to paper "1",
// "Variant 1".
func ParsePaperVariant(fileName string) (paper, variant string) {
	name := strings.ToLower(strings.TrimSpace(fileName))
	if name == "" {
		return "", ""
	}
	for _, re := range groupingPatterns {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		paper = m[1]
		variant = "1"
		if len(m) > 2 && m[2] != "" {
			variant = m[2]
		}
		return paper, variant
	}
	return "", ""
}
