package search

import (
	"regexp"
	"sort"
	"strings"
)

// Scored is one evaluation result. Created fresh per search, never
// persisted.
type Scored struct {
	Entry        Entry
	Score        int
	MatchedTerms []string
	HasConflict  bool
}

// Records with a final score at or below this are excluded from results.
const minScore = 5

const (
	exactTitleBonus     = 1000
	titleSubstringBonus = 500
	treeSubstringBonus  = 200
	normalizedBonus     = 300
	consecTitleBonus    = 150
	consecCategoryBonus = 75
	consecSectionBonus  = 50
	allTermsBonus       = 100
	allTermsPenalty     = 100
	conflictPenalty     = 200
	numberMatchBonus    = 50
	orderStepBonus      = 10
	orderStepPenalty    = 20
	synonymBonus        = 20
)

var digitRunRe = regexp.MustCompile(`\d+`)

// Search scores every entry against the query and returns the surviving
// records ranked. Deterministic: same inputs, same output, no I/O.
func Search(query string, entries []Entry) []Scored {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	queryTerms := strings.Fields(query)
	queryNumbers := extractNumbers(query)

	var results []Scored
	for _, e := range entries {
		s := scoreEntry(query, queryTerms, queryNumbers, e)
		if s.Score > minScore {
			results = append(results, s)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.HasConflict != b.HasConflict {
			return !a.HasConflict
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		aExact := strings.ToLower(a.Entry.Record.Title) == query
		bExact := strings.ToLower(b.Entry.Record.Title) == query
		if aExact != bExact {
			return aExact
		}
		if len(a.Entry.Record.Title) != len(b.Entry.Record.Title) {
			return len(a.Entry.Record.Title) < len(b.Entry.Record.Title)
		}
		return a.Entry.Record.Title < b.Entry.Record.Title
	})
	return results
}

func scoreEntry(query string, queryTerms []string, queryNumbers map[string]struct{}, e Entry) Scored {
	title := strings.ToLower(e.Record.Title)
	category := strings.ToLower(e.CategoryTitle)
	section := strings.ToLower(e.SectionTitle)
	combined := title + " " + category + " " + section

	score := 0
	penalty := 0
	var matched []string
	conflict := false

	// Numeric conflict: a result number the query never asked for is a
	// strong signal the record is the wrong paper/variant.
	if len(queryNumbers) > 0 {
		resultNumbers := extractNumbers(combined)
		mismatch := false
		for n := range resultNumbers {
			if _, ok := queryNumbers[n]; ok {
				score += numberMatchBonus
			} else {
				mismatch = true
			}
		}
		if mismatch {
			penalty += conflictPenalty
			conflict = true
		}
	}

	score += scorePhraseTiers(query, title, category, section)

	// Consecutive multi-term phrase, best location only
	if len(queryTerms) > 1 {
		re := consecutiveRegexp(queryTerms)
		switch {
		case re.MatchString(title):
			score += consecTitleBonus
		case re.MatchString(category):
			score += consecCategoryBonus
		case re.MatchString(section):
			score += consecSectionBonus
		}
	}

	// All-terms gate: every term must appear as a whole word somewhere
	allPresent := true
	for _, term := range queryTerms {
		if !containsWord(combined, term) {
			allPresent = false
			break
		}
	}

	if allPresent {
		score += allTermsBonus
		for _, term := range queryTerms {
			if containsWord(title, term) {
				if wordAtStart(title, term) {
					score += 40
				} else {
					score += 25
				}
				matched = append(matched, term)
			}
			if containsWord(category, term) {
				score += 15
			}
			if containsWord(section, term) {
				score += 10
			}
		}
	} else {
		penalty += allTermsPenalty
	}

	// Synonym bonus for expanded terms the user did not literally type
	querySet := make(map[string]struct{}, len(queryTerms))
	for _, t := range queryTerms {
		querySet[t] = struct{}{}
	}
	for _, st := range e.SearchTerms {
		if _, typed := querySet[st]; typed {
			continue
		}
		if containsWord(title, st) {
			score += synonymBonus
			matched = append(matched, st)
		}
	}

	// Order bonus: reward query terms appearing in title order
	if allPresent && len(queryTerms) > 1 {
		words := titleWords(title)
		pointer := -1
		for _, term := range queryTerms {
			idx := indexOfWordAfter(words, term, pointer)
			if idx >= 0 {
				score += orderStepBonus
				pointer = idx
			} else {
				penalty += orderStepPenalty
			}
		}
	}

	score += contextBonus(query, title)

	final := score - penalty
	if final < 0 {
		final = 0
	}
	return Scored{Entry: e, Score: final, MatchedTerms: matched, HasConflict: conflict}
}

// scorePhraseTiers awards only the highest applicable tier, checked
// top-down. The category/section substring tier sits between the title
// substring and normalized tiers.
func scorePhraseTiers(query, title, category, section string) int {
	switch {
	case title == query:
		return exactTitleBonus
	case strings.Contains(title, query):
		return titleSubstringBonus
	case strings.Contains(category, query) || strings.Contains(section, query):
		return treeSubstringBonus
	}
	if normalized := expandAbbreviations(query); normalized != query && strings.Contains(title, normalized) {
		return normalizedBonus
	}
	return 0
}

var abbrevRes = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\bp(\d+)\b`), "paper $1"},
	{regexp.MustCompile(`\bq(\d+)\b`), "question $1"},
	{regexp.MustCompile(`\bv(\d+)\b`), "variant $1"},
	{regexp.MustCompile(`\bu(\d+)\b`), "unit $1"},
}

func expandAbbreviations(query string) string {
	for _, a := range abbrevRes {
		query = a.re.ReplaceAllString(query, a.repl)
	}
	return query
}

var contextBonuses = []struct {
	words []string
	bonus int
}{
	{[]string{"paper"}, 25},
	{[]string{"writing", "composition"}, 20},
	{[]string{"example", "sample"}, 20},
	{[]string{"guide", "notes"}, 15},
}

// contextBonus adds flat bonuses when the query mentions a context keyword
// the title also carries. Each row is checked independently.
func contextBonus(query, title string) int {
	total := 0
	for _, cb := range contextBonuses {
		queryHas := false
		titleHas := false
		for _, w := range cb.words {
			if strings.Contains(query, w) {
				queryHas = true
			}
			if strings.Contains(title, w) {
				titleHas = true
			}
		}
		if queryHas && titleHas {
			total += cb.bonus
		}
	}
	return total
}

// extractNumbers collects digit runs and number words (one..ten) from text.
func extractNumbers(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, run := range digitRunRe.FindAllString(text, -1) {
		out[strings.TrimLeft(run, "0")] = struct{}{}
	}
	for _, word := range strings.Fields(text) {
		if d, ok := numberWords[strings.Trim(word, ".,;:!?")]; ok {
			out[d] = struct{}{}
		}
	}
	delete(out, "")
	return out
}

func consecutiveRegexp(terms []string) *regexp.Regexp {
	escaped := make([]string, len(terms))
	for i, t := range terms {
		escaped[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`\b` + strings.Join(escaped, `\s+`) + `\b`)
}

func containsWord(text, term string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	return re.MatchString(text)
}

func wordAtStart(text, term string) bool {
	if !strings.HasPrefix(text, term) {
		return false
	}
	return len(text) == len(term) || !isWordChar(text[len(term)])
}

func isWordChar(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

func titleWords(title string) []string {
	words := strings.Fields(title)
	for i, w := range words {
		words[i] = strings.Trim(w, ".,;:()[]!?\"'")
	}
	return words
}

func indexOfWordAfter(words []string, term string, after int) int {
	for i := after + 1; i < len(words); i++ {
		if words[i] == term {
			return i
		}
	}
	return -1
}
