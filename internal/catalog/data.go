package catalog

import (
	"fmt"
	"sync"
)

var (
	loadOnce  sync.Once
	levels    map[string]*Level
	levelKeys []string
	loadErr   error
)

// Load validates and returns the static catalog. The data is compiled in;
// validation runs once so lookups downstream can fail closed without
// re-checking shape.
func Load() (map[string]*Level, error) {
	loadOnce.Do(func() {
		all := []*Level{igcseLevel(), aLevelLevel(), egpLevel(), edexcelLevel(), ibLevel()}
		m := make(map[string]*Level, len(all))
		keys := make([]string, 0, len(all))
		for _, l := range all {
			if err := l.Validate(); err != nil {
				loadErr = fmt.Errorf("catalog validation: %w", err)
				return
			}
			if _, dup := m[l.Key]; dup {
				loadErr = fmt.Errorf("catalog validation: duplicate level key %q", l.Key)
				return
			}
			m[l.Key] = l
			keys = append(keys, l.Key)
		}
		levels = m
		levelKeys = keys
	})
	return levels, loadErr
}

// LevelKeys returns the level keys in catalog order. Load must have
// succeeded first.
func LevelKeys() []string {
	return levelKeys
}

// LevelByKey fails closed on unknown keys.
func LevelByKey(key string) (*Level, bool) {
	if levels == nil {
		return nil, false
	}
	l, ok := levels[key]
	return l, ok
}

func paperSection(key, title string, resources []Record) *Section {
	return &Section{Key: key, Title: title, Resources: resources}
}

func igcseLevel() *Level {
	papers := []Record{
		{ID: "igcse-qp-s21-12", Title: "First Language English Paper 1 Variant 2 June 2021", FileName: "0500_s21_qp_12.pdf", URL: "https://papers.example.org/igcse/0500_s21_qp_12.pdf", Type: TypeQuestionPaper, Session: "June"},
		{ID: "igcse-ms-s21-12", Title: "First Language English Mark Scheme Paper 1 Variant 2 June 2021", FileName: "0500_s21_ms_12.pdf", URL: "https://papers.example.org/igcse/0500_s21_ms_12.pdf", Type: TypeMarkScheme, Session: "June"},
		{ID: "igcse-in-s21-12", Title: "First Language English Insert Paper 1 Variant 2 June 2021", FileName: "0500_s21_in_12.pdf", URL: "https://papers.example.org/igcse/0500_s21_in_12.pdf", Type: TypeInsert, Session: "June"},
		{ID: "igcse-qp-s21-21", Title: "First Language English Paper 2 Variant 1 June 2021", FileName: "0500_s21_qp_21.pdf", URL: "https://papers.example.org/igcse/0500_s21_qp_21.pdf", Type: TypeQuestionPaper, Session: "June"},
		{ID: "igcse-ms-s21-21", Title: "First Language English Mark Scheme Paper 2 Variant 1 June 2021", FileName: "0500_s21_ms_21.pdf", URL: "https://papers.example.org/igcse/0500_s21_ms_21.pdf", Type: TypeMarkScheme, Session: "June"},
		{ID: "igcse-qp-w21-12", Title: "First Language English Paper 1 Variant 2 November 2021", FileName: "0500_w21_qp_12.pdf", URL: "https://papers.example.org/igcse/0500_w21_qp_12.pdf", Type: TypeQuestionPaper, Session: "November"},
		{ID: "igcse-ms-w21-12", Title: "First Language English Mark Scheme Paper 1 Variant 2 November 2021", FileName: "0500_w21_ms_12.pdf", URL: "https://papers.example.org/igcse/0500_w21_ms_12.pdf", Type: TypeMarkScheme, Session: "November"},
		{ID: "igcse-qp-m21-12", Title: "First Language English Paper 1 Variant 2 March 2021", FileName: "0500_m21_qp_12.pdf", URL: "https://papers.example.org/igcse/0500_m21_qp_12.pdf", Type: TypeQuestionPaper, Session: "March"},
		{ID: "igcse-qp-s19-12", Title: "First Language English Paper 1 Variant 2 June 2019", FileName: "0500_s19_qp_12.pdf", URL: "https://papers.example.org/igcse/0500_s19_qp_12.pdf", Type: TypeQuestionPaper, Session: "June"},
		{ID: "igcse-ms-s19-12", Title: "First Language English Mark Scheme Paper 1 Variant 2 June 2019", FileName: "0500_s19_ms_12.pdf", URL: "https://papers.example.org/igcse/0500_s19_ms_12.pdf", Type: TypeMarkScheme, Session: "June"},
		{ID: "igcse-qp-sp-2020", Title: "First Language English Specimen Paper 1 2020", FileName: "0500_sp_qp_01_2020.pdf", URL: "https://papers.example.org/igcse/0500_sp_qp_01_2020.pdf", Type: TypeQuestionPaper, Session: "Specimen"},
		{ID: "igcse-gt-s21", Title: "First Language English Grade Thresholds June 2021", FileName: "0500_s21_gt.pdf", URL: "https://papers.example.org/igcse/0500_s21_gt.pdf", Type: TypeGradeThresholds, Session: "June"},
		{ID: "igcse-er-s21", Title: "First Language English Examiner Report June 2021", FileName: "0500_s21_er.pdf", URL: "https://papers.example.org/igcse/0500_s21_er.pdf", Type: TypeExaminerReport, Session: "June"},
	}
	guides := []Record{
		{ID: "igcse-guide-summary", Title: "Summary Writing Guide", FileName: "summary_writing_guide.pdf", URL: "https://papers.example.org/igcse/guides/summary_writing_guide.pdf", Type: TypeQuestionPaper, Session: ""},
		{ID: "igcse-guide-composition", Title: "Descriptive Composition Notes", FileName: "descriptive_composition_notes.pdf", URL: "https://papers.example.org/igcse/guides/descriptive_composition_notes.pdf", Type: TypeQuestionPaper, Session: ""},
		{ID: "igcse-guide-directed", Title: "Directed Writing Sample Answers", FileName: "directed_writing_samples.pdf", URL: "https://papers.example.org/igcse/guides/directed_writing_samples.pdf", Type: TypeQuestionPaper, Session: ""},
	}
	return &Level{
		Key: "igcse", Title: "IGCSE First Language English", Family: FamilyCIE, ExamCode: "0500",
		Categories: map[string]*Category{
			"past-papers": {
				Key: "past-papers", Title: "Past Papers",
				Sections:     map[string]*Section{"papers": paperSection("papers", "Question Papers and Mark Schemes", papers)},
				SectionOrder: []string{"papers"},
			},
			"writing": {
				Key: "writing", Title: "Writing Skills",
				Sections:     map[string]*Section{"guides": paperSection("guides", "Guides and Sample Answers", guides)},
				SectionOrder: []string{"guides"},
			},
		},
		CategoryOrder: []string{"past-papers", "writing"},
	}
}

func aLevelLevel() *Level {
	papers := []Record{
		{ID: "alevel-qp-s21-12", Title: "English Language Paper 1 Variant 2 June 2021", FileName: "9093_s21_qp_12.pdf", URL: "https://papers.example.org/alevel/9093_s21_qp_12.pdf", Type: TypeQuestionPaper, Session: "June"},
		{ID: "alevel-ms-s21-12", Title: "English Language Mark Scheme Paper 1 Variant 2 June 2021", FileName: "9093_s21_ms_12.pdf", URL: "https://papers.example.org/alevel/9093_s21_ms_12.pdf", Type: TypeMarkScheme, Session: "June"},
		{ID: "alevel-qp-w20-22", Title: "English Language Paper 2 Variant 2 November 2020", FileName: "9093_w20_qp_22.pdf", URL: "https://papers.example.org/alevel/9093_w20_qp_22.pdf", Type: TypeQuestionPaper, Session: "November"},
		{ID: "alevel-ms-w20-22", Title: "English Language Mark Scheme Paper 2 Variant 2 November 2020", FileName: "9093_w20_ms_22.pdf", URL: "https://papers.example.org/alevel/9093_w20_ms_22.pdf", Type: TypeMarkScheme, Session: "November"},
	}
	essays := []Record{
		{ID: "alevel-guide-analysis", Title: "Text Analysis Example Essays", FileName: "text_analysis_examples.pdf", URL: "https://papers.example.org/alevel/guides/text_analysis_examples.pdf", Type: TypeQuestionPaper, Session: ""},
	}
	return &Level{
		Key: "alevel", Title: "A-Level English Language", Family: FamilyCIE, ExamCode: "9093",
		Categories: map[string]*Category{
			"past-papers": {
				Key: "past-papers", Title: "Past Papers",
				Sections:     map[string]*Section{"papers": paperSection("papers", "Question Papers and Mark Schemes", papers)},
				SectionOrder: []string{"papers"},
			},
			"essays": {
				Key: "essays", Title: "Essay Writing",
				Sections:     map[string]*Section{"guides": paperSection("guides", "Example Essays", essays)},
				SectionOrder: []string{"guides"},
			},
		},
		CategoryOrder: []string{"past-papers", "essays"},
	}
}

func egpLevel() *Level {
	papers := []Record{
		{ID: "egp-qp-s21-11", Title: "English General Paper 1 Variant 1 June 2021", FileName: "8021_s21_qp_11.pdf", URL: "https://papers.example.org/egp/8021_s21_qp_11.pdf", Type: TypeQuestionPaper, Session: "June"},
		{ID: "egp-ms-s21-11", Title: "English General Paper Mark Scheme 1 Variant 1 June 2021", FileName: "8021_s21_ms_11.pdf", URL: "https://papers.example.org/egp/8021_s21_ms_11.pdf", Type: TypeMarkScheme, Session: "June"},
	}
	return &Level{
		Key: "egp", Title: "English General Paper", Family: FamilyCIE, ExamCode: "8021",
		Categories: map[string]*Category{
			"past-papers": {
				Key: "past-papers", Title: "Past Papers",
				Sections:     map[string]*Section{"papers": paperSection("papers", "Question Papers and Mark Schemes", papers)},
				SectionOrder: []string{"papers"},
			},
		},
		CategoryOrder: []string{"past-papers"},
	}
}

func edexcelLevel() *Level {
	papers := []Record{
		{ID: "edexcel-qp-u1-s21", Title: "International GCSE English Language A Unit 1 June 2021", FileName: "4ea1-01-que-20210606.pdf", URL: "https://papers.example.org/edexcel/4ea1-01-que-20210606.pdf", Type: TypeQuestionPaper, Session: "June"},
		{ID: "edexcel-ms-u1-s21", Title: "International GCSE English Language A Unit 1 Mark Scheme June 2021", FileName: "4ea1-01-msc-20210815.pdf", URL: "https://papers.example.org/edexcel/4ea1-01-msc-20210815.pdf", Type: TypeMarkScheme, Session: "June"},
		{ID: "edexcel-qp-u2-j20", Title: "International GCSE English Language A Unit 2 January 2020", FileName: "4ea1-02-que-20200113.pdf", URL: "https://papers.example.org/edexcel/4ea1-02-que-20200113.pdf", Type: TypeQuestionPaper, Session: "January"},
	}
	return &Level{
		Key: "edexcel", Title: "Edexcel International GCSE English", Family: FamilyEdexcel, ExamCode: "4EA1",
		Categories: map[string]*Category{
			"past-papers": {
				Key: "past-papers", Title: "Past Papers",
				Sections:     map[string]*Section{"papers": paperSection("papers", "Question Papers and Mark Schemes", papers)},
				SectionOrder: []string{"papers"},
			},
		},
		CategoryOrder: []string{"past-papers"},
	}
}

func ibLevel() *Level {
	guides := []Record{
		{ID: "ib-guide-paper1", Title: "Paper 1 Guided Textual Analysis Notes", FileName: "ib_paper1_analysis_notes.pdf", URL: "https://papers.example.org/ib/ib_paper1_analysis_notes.pdf", Type: TypeQuestionPaper, Session: ""},
		{ID: "ib-guide-orals", Title: "Individual Oral Sample Responses", FileName: "ib_oral_samples.pdf", URL: "https://papers.example.org/ib/ib_oral_samples.pdf", Type: TypeQuestionPaper, Session: ""},
	}
	return &Level{
		Key: "ib", Title: "IB English Language and Literature", Family: FamilyCIE, ExamCode: "",
		Categories: map[string]*Category{
			"study-guides": {
				Key: "study-guides", Title: "Study Guides",
				Sections:     map[string]*Section{"guides": paperSection("guides", "Analysis and Oral Preparation", guides)},
				SectionOrder: []string{"guides"},
			},
		},
		CategoryOrder: []string{"study-guides"},
	}
}
