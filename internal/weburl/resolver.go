package weburl

import (
	"strings"

	"examprep/internal/catalog"
)

// Hand-maintained bidirectional tables between internal keys and public
// URL segments. Any segment not in these tables is unresolvable and fails
// closed.
var levelSegments = map[string]string{
	"igcse":   "igcse-english",
	"alevel":  "a-level-english",
	"egp":     "english-general-paper",
	"edexcel": "edexcel-igcse",
	"ib":      "ib-english",
}

var categorySegments = map[string]string{
	"past-papers":  "past-papers",
	"writing":      "writing-skills",
	"essays":       "essay-writing",
	"study-guides": "study-guides",
}

var sectionSegments = map[string]string{
	"papers": "question-papers",
	"guides": "guides",
}

var (
	levelKeysBySegment    = reverse(levelSegments)
	categoryKeysBySegment = reverse(categorySegments)
	sectionKeysBySegment  = reverse(sectionSegments)
)

func reverse(m map[string]string) map[string]string {
	r := make(map[string]string, len(m))
	for key, segment := range m {
		r[segment] = key
	}
	return r
}

// LevelSegment returns the public URL segment for an internal level key.
func LevelSegment(key string) (string, bool) {
	s, ok := levelSegments[key]
	return s, ok
}

// Resolution is a successful slug lookup plus the canonical 4-segment path
// the caller can redirect to. Re-resolving CanonicalPath yields the same
// record.
type Resolution struct {
	Record        catalog.Record
	LevelKey      string
	CategoryKey   string
	SectionKey    string
	CanonicalPath string
}

// Resolve maps public URL segments plus a slug to a catalog record.
// sectionSeg may be empty (legacy 3-segment links); all sections of the
// category are then scanned and the canonical 4-segment path is computed
// for redirect. Lookups are linear scans over the in-scope subtree;
// collisions resolve to the first match.
func Resolve(levelSeg, categorySeg, sectionSeg, slug string) (Resolution, bool) {
	levelKey, ok := levelKeysBySegment[levelSeg]
	if !ok {
		return Resolution{}, false
	}
	level, ok := catalog.LevelByKey(levelKey)
	if !ok {
		return Resolution{}, false
	}
	categoryKey, ok := categoryKeysBySegment[categorySeg]
	if !ok {
		return Resolution{}, false
	}
	cat, ok := level.Category(categoryKey)
	if !ok {
		return Resolution{}, false
	}

	sectionKeys := cat.SectionOrder
	if sectionSeg != "" {
		sk, ok := sectionKeysBySegment[sectionSeg]
		if !ok {
			return Resolution{}, false
		}
		if _, ok := cat.Section(sk); !ok {
			return Resolution{}, false
		}
		sectionKeys = []string{sk}
	}

	for _, sk := range sectionKeys {
		sec := cat.Sections[sk]
		for _, rec := range sec.Resources {
			if Slugify(rec.Title) != slug {
				continue
			}
			return Resolution{
				Record:        rec,
				LevelKey:      levelKey,
				CategoryKey:   categoryKey,
				SectionKey:    sk,
				CanonicalPath: canonicalPath(levelSeg, categorySeg, sk, slug),
			}, true
		}
	}
	return Resolution{}, false
}

func canonicalPath(levelSeg, categorySeg, sectionKey, slug string) string {
	return "/" + strings.Join([]string{levelSeg, categorySeg, sectionSegments[sectionKey], slug}, "/")
}
