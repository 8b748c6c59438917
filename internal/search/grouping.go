package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"examprep/internal/catalog"
)

// VariantBucket holds the records for one (group, paper, variant) cell.
// Up to one record per document type is meaningful; duplicates are kept
// and resolved first-match-wins by FindByType.
type VariantBucket struct {
	Label   string           `json:"label"` // "Variant N"
	Records []catalog.Record `json:"records"`
}

type PaperBucket struct {
	Number   string          `json:"number"`
	Variants []VariantBucket `json:"variants"`
}

type Group struct {
	Key    string        `json:"key"` // session, or "session year" in search mode
	Papers []PaperBucket `json:"papers"`

	year int
}

// Grouped is the two-level ordered result of bucketing records.
type Grouped struct {
	Groups []Group `json:"groups"`
}

// Loose year/session extraction for search-mode group keys. Deliberately
// looser than ParseFileName: any session-letter+2-digit token or any
// 4-digit year counts.
var (
	looseSessionYearRe = regexp.MustCompile(`(?i)(?:^|_)(s|m|w|j)(\d{2})(?:_|\b)`)
	looseFullYearRe    = regexp.MustCompile(`(19|20)\d{2}`)
)

func extractLooseYear(fileName string) (int, bool) {
	name := strings.ToLower(fileName)
	if m := looseSessionYearRe.FindStringSubmatch(name); m != nil {
		if y, err := strconv.Atoi(deriveFullYear(m[2])); err == nil {
			return y, true
		}
	}
	if m := looseFullYearRe.FindString(name); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			return y, true
		}
	}
	return 0, false
}

// GroupRecords buckets records as session → paper → variant. In search
// mode the group key is qualified with the extracted year when one can be
// found, so identical sessions in different years split apart; in browse
// mode they collapse under the declared session field and groups keep
// first-seen order (the upstream catalog is already sorted).
func GroupRecords(records []catalog.Record, searchMode bool) *Grouped {
	type variantKey struct {
		group   string
		paper   string
		variant string
	}
	buckets := make(map[variantKey][]catalog.Record)
	groupYears := make(map[string]int)
	var groupOrder []string
	seenGroups := make(map[string]struct{})

	for _, rec := range records {
		groupKey := rec.Session
		if searchMode {
			if year, ok := extractLooseYear(rec.FileName); ok {
				groupKey = rec.Session + " " + strconv.Itoa(year)
				groupYears[groupKey] = year
			}
		}
		if _, seen := seenGroups[groupKey]; !seen {
			seenGroups[groupKey] = struct{}{}
			groupOrder = append(groupOrder, groupKey)
		}

		paper, variant := ParsePaperVariant(rec.FileName)
		if paper == "" {
			paper = "1"
		}
		if variant == "" {
			variant = "1"
		}
		k := variantKey{group: groupKey, paper: paper, variant: "Variant " + variant}
		buckets[k] = append(buckets[k], rec)
	}

	if searchMode {
		sort.SliceStable(groupOrder, func(i, j int) bool {
			yi, yj := groupYears[groupOrder[i]], groupYears[groupOrder[j]]
			if yi != yj {
				return yi > yj
			}
			return groupOrder[i] < groupOrder[j]
		})
	}

	out := &Grouped{}
	for _, gk := range groupOrder {
		group := Group{Key: gk, year: groupYears[gk]}

		paperSet := make(map[string]map[string][]catalog.Record)
		for k, recs := range buckets {
			if k.group != gk {
				continue
			}
			if paperSet[k.paper] == nil {
				paperSet[k.paper] = make(map[string][]catalog.Record)
			}
			paperSet[k.paper][k.variant] = recs
		}

		paperNumbers := make([]string, 0, len(paperSet))
		for p := range paperSet {
			paperNumbers = append(paperNumbers, p)
		}
		sort.Slice(paperNumbers, func(i, j int) bool {
			return paperNum(paperNumbers[i]) < paperNum(paperNumbers[j])
		})

		for _, p := range paperNumbers {
			bucket := PaperBucket{Number: p}
			labels := make([]string, 0, len(paperSet[p]))
			for label := range paperSet[p] {
				labels = append(labels, label)
			}
			sort.Slice(labels, func(i, j int) bool {
				return variantNum(labels[i]) < variantNum(labels[j])
			})
			for _, label := range labels {
				bucket.Variants = append(bucket.Variants, VariantBucket{Label: label, Records: paperSet[p][label]})
			}
			group.Papers = append(group.Papers, bucket)
		}
		out.Groups = append(out.Groups, group)
	}
	return out
}

func paperNum(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// variantNum sorts "Variant N" labels by the trailing digit.
func variantNum(label string) int {
	parts := strings.Fields(label)
	if len(parts) == 0 {
		return 0
	}
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return n
}

// FindByType returns the first record of the given document type in a
// bucket. The ok result is false when the type is absent; callers disable
// the matching action instead of navigating to a missing URL.
func (v VariantBucket) FindByType(t catalog.ResourceType) (catalog.Record, bool) {
	for _, rec := range v.Records {
		if rec.Type == t {
			return rec, true
		}
	}
	return catalog.Record{}, false
}

// Total counts every record across all buckets; grouping never drops
// records.
func (g *Grouped) Total() int {
	n := 0
	for _, group := range g.Groups {
		for _, paper := range group.Papers {
			for _, v := range paper.Variants {
				n += len(v.Records)
			}
		}
	}
	return n
}
