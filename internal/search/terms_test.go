package search

import (
	"testing"

	"examprep/internal/catalog"
)

func hasTerm(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}

func TestBuildSearchTerms_SessionAndType(t *testing.T) {
	rec := catalog.Record{
		Title:    "First Language English Mark Scheme Paper 1 Variant 2 June 2021",
		FileName: "0500_s21_ms_12.pdf",
		Type:     catalog.TypeMarkScheme,
	}
	terms := BuildSearchTerms(rec, catalog.FamilyCIE)
	for _, want := range []string{"june", "summer", "mark scheme", "ms", "2021", "21", "paper 1", "p1", "variant 2", "june 2021", "june mark scheme", "mark scheme 2021"} {
		if !hasTerm(terms, want) {
			t.Errorf("expected term %q in expansion", want)
		}
	}
	if !hasTerm(terms, "first language english mark scheme paper 1 variant 2 june 2021") {
		t.Errorf("expected lowercased title as a term")
	}
}

func TestBuildSearchTerms_EdexcelUsesUnits(t *testing.T) {
	rec := catalog.Record{
		Title:    "International GCSE English Language A Unit 1 June 2021",
		FileName: "4ea1-01-que-20210606.pdf",
		Type:     catalog.TypeQuestionPaper,
	}
	terms := BuildSearchTerms(rec, catalog.FamilyEdexcel)
	if !hasTerm(terms, "unit 1") || !hasTerm(terms, "u1") {
		t.Errorf("expected unit forms for Edexcel")
	}
	if hasTerm(terms, "paper 1") {
		t.Errorf("Edexcel expansion should not emit paper forms")
	}
}

func TestBuildSearchTerms_Deduplicated(t *testing.T) {
	rec := catalog.Record{
		Title:    "Mark Scheme",
		FileName: "0500_s21_ms_12.pdf",
		Type:     catalog.TypeMarkScheme,
	}
	terms := BuildSearchTerms(rec, catalog.FamilyCIE)
	seen := make(map[string]int)
	for _, term := range terms {
		seen[term]++
	}
	for term, n := range seen {
		if n > 1 {
			t.Errorf("term %q appears %d times, expansion should deduplicate", term, n)
		}
	}
}

func TestDeriveFullYear_Pivot(t *testing.T) {
	cases := map[string]string{
		"21": "2021",
		"99": "1999",
		"50": "2050",
		"51": "1951",
		"05": "2005",
	}
	for code, want := range cases {
		if got := deriveFullYear(code); got != want {
			t.Errorf("deriveFullYear(%q) = %q, want %q", code, got, want)
		}
	}
}
