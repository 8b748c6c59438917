package search

import (
	"examprep/internal/catalog"
)

// Entry is one searchable record: the catalog record plus its tree context
// and the expanded term set. Entries are rebuilt from the immutable catalog,
// never mutated.
type Entry struct {
	Record        catalog.Record
	CategoryTitle string
	SectionTitle  string
	SearchTerms   []string
}

// BuildIndex flattens a level's tree into searchable entries with
// precomputed term sets.
func BuildIndex(level *catalog.Level) []Entry {
	var entries []Entry
	for _, ck := range level.CategoryOrder {
		cat := level.Categories[ck]
		for _, sk := range cat.SectionOrder {
			sec := cat.Sections[sk]
			for _, rec := range sec.Resources {
				entries = append(entries, Entry{
					Record:        rec,
					CategoryTitle: cat.Title,
					SectionTitle:  sec.Title,
					SearchTerms:   BuildSearchTerms(rec, level.Family),
				})
			}
		}
	}
	return entries
}
