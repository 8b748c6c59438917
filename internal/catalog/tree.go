package catalog

import (
	"fmt"
)

// Section groups resources under a category (e.g. "Question Papers",
// "Revision Notes").
type Section struct {
	Key       string   `json:"key"`
	Title     string   `json:"title"`
	Resources []Record `json:"resources"`
}

// Category groups sections under an exam level (e.g. "Past Papers",
// "Vocabulary").
type Category struct {
	Key          string              `json:"key"`
	Title        string              `json:"title"`
	Sections     map[string]*Section `json:"sections"`
	SectionOrder []string            `json:"sectionOrder"`
}

// Level is one exam family's full content tree.
type Level struct {
	Key           string               `json:"key"`
	Title         string               `json:"title"`
	Family        Family               `json:"family"`
	ExamCode      string               `json:"examCode"`
	Categories    map[string]*Category `json:"categories"`
	CategoryOrder []string             `json:"categoryOrder"`
}

// Section looks up a section by key; missing keys fail closed.
func (c *Category) Section(key string) (*Section, bool) {
	s, ok := c.Sections[key]
	return s, ok
}

// Category looks up a category by key; missing keys fail closed.
func (l *Level) Category(key string) (*Category, bool) {
	c, ok := l.Categories[key]
	return c, ok
}

// Validate checks the tree invariants once at load time so that all later
// lookups can trust the shape: order slices match the maps, keys and titles
// are non-empty, record IDs are unique within the level.
func (l *Level) Validate() error {
	if l.Key == "" || l.Title == "" {
		return fmt.Errorf("level %q: key and title required", l.Key)
	}
	if len(l.CategoryOrder) != len(l.Categories) {
		return fmt.Errorf("level %q: category order/map mismatch", l.Key)
	}
	seenIDs := make(map[string]struct{})
	for _, ck := range l.CategoryOrder {
		cat, ok := l.Categories[ck]
		if !ok {
			return fmt.Errorf("level %q: ordered category %q missing from map", l.Key, ck)
		}
		if cat.Key != ck {
			return fmt.Errorf("level %q: category key %q stored under %q", l.Key, cat.Key, ck)
		}
		if cat.Title == "" {
			return fmt.Errorf("level %q: category %q has no title", l.Key, ck)
		}
		if len(cat.SectionOrder) != len(cat.Sections) {
			return fmt.Errorf("level %q: category %q section order/map mismatch", l.Key, ck)
		}
		for _, sk := range cat.SectionOrder {
			sec, ok := cat.Sections[sk]
			if !ok {
				return fmt.Errorf("level %q: ordered section %q missing from category %q", l.Key, sk, ck)
			}
			if sec.Key != sk || sec.Title == "" {
				return fmt.Errorf("level %q: section %q malformed", l.Key, sk)
			}
			for _, r := range sec.Resources {
				if r.ID == "" || r.Title == "" {
					return fmt.Errorf("level %q: resource without id/title in section %q", l.Key, sk)
				}
				if _, dup := seenIDs[r.ID]; dup {
					return fmt.Errorf("level %q: duplicate resource id %q", l.Key, r.ID)
				}
				seenIDs[r.ID] = struct{}{}
			}
		}
	}
	return nil
}

// Records flattens all records across the whole level, in tree order.
func (l *Level) Records() []Record {
	var out []Record
	for _, ck := range l.CategoryOrder {
		cat := l.Categories[ck]
		for _, sk := range cat.SectionOrder {
			out = append(out, cat.Sections[sk].Resources...)
		}
	}
	return out
}
