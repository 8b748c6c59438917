package search

import (
	"strconv"
	"strings"

	"examprep/internal/catalog"
)

// Fixed lookup tables mapping parsed filename tokens to the phrases users
// actually type. Module-level constants, never mutated.
var sessionTerms = map[string][]string{
	"s":  {"june", "jun", "summer", "may june"},
	"m":  {"march", "mar", "feb march", "february"},
	"w":  {"november", "nov", "winter", "october november"},
	"j":  {"january", "jan"},
	"sp": {"specimen", "sample paper"},
}

var docTypeTerms = map[string][]string{
	"qp": {"question paper", "question", "qp"},
	"ms": {"mark scheme", "marking scheme", "ms", "answers"},
	"in": {"insert", "reading booklet"},
	"er": {"examiner report", "report"},
	"gt": {"grade thresholds", "thresholds", "grade boundaries"},
}

var numberWords = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
}

// deriveFullYear expands a 2-digit year code using a fixed pivot: codes
// above 50 belong to the 1900s. The source exam series is bounded to
// 1950-2050 so the ambiguity window never bites.
func deriveFullYear(code string) string {
	n, err := strconv.Atoi(code)
	if err != nil {
		return ""
	}
	if n > 50 {
		return strconv.Itoa(1900 + n)
	}
	return strconv.Itoa(2000 + n)
}

// BuildSearchTerms produces the deduplicated lowercase phrase set a user
// might type for one record: session names, doc-type names, year forms,
// paper/variant phrasings, their pairwise combinations, and the verbatim
// title and type.
func BuildSearchTerms(rec catalog.Record, family catalog.Family) []string {
	parsed := ParseFileName(rec.FileName, family)

	sessions := sessionTerms[parsed.SessionCode]
	docTypes := docTypeTerms[parsed.DocType]

	var years []string
	if parsed.FullYear != "" {
		years = append(years, parsed.FullYear)
		if len(parsed.FullYear) == 4 {
			years = append(years, parsed.FullYear[2:])
		}
	}

	var numbers []string
	paper, variant := parsed.PaperNumber()
	if paper != "" {
		if family == catalog.FamilyEdexcel {
			// Edexcel numbers by unit, not paper
			numbers = append(numbers, "unit "+paper, "u"+paper, "unit"+paper)
		} else {
			numbers = append(numbers, "paper "+paper, "p"+paper, "paper"+paper)
			if variant != "" {
				numbers = append(numbers, "variant "+variant, "v"+variant)
			}
		}
	}

	set := newTermSet()
	set.addAll(sessions)
	set.addAll(docTypes)
	set.addAll(years)
	set.addAll(numbers)

	// Pairwise phrases for multi-word queries like "june 2021 mark scheme"
	set.addPairs(sessions, years)
	set.addPairs(sessions, docTypes)
	set.addPairs(docTypes, years)

	set.add(strings.ToLower(rec.Title))
	set.add(strings.ToLower(string(rec.Type)))

	return set.terms
}

type termSet struct {
	seen  map[string]struct{}
	terms []string
}

func newTermSet() *termSet {
	return &termSet{seen: make(map[string]struct{})}
}

func (s *termSet) add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	if _, dup := s.seen[term]; dup {
		return
	}
	s.seen[term] = struct{}{}
	s.terms = append(s.terms, term)
}

func (s *termSet) addAll(terms []string) {
	for _, t := range terms {
		s.add(t)
	}
}

func (s *termSet) addPairs(left, right []string) {
	for _, a := range left {
		for _, b := range right {
			s.add(a + " " + b)
		}
	}
}
