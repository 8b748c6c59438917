package catalog

// ResourceType is the closed set of document types a record can carry.
type ResourceType string

const (
	TypeQuestionPaper   ResourceType = "Question Paper"
	TypeMarkScheme      ResourceType = "Mark Scheme"
	TypeInsert          ResourceType = "Insert"
	TypeExaminerReport  ResourceType = "Examiner Report"
	TypeGradeThresholds ResourceType = "Grade Thresholds"
)

// Family selects the filename layout an exam level uses.
// Edexcel encodes unit codes with dash delimiters and a full date;
// everyone else uses the underscore session/doctype layout.
type Family string

const (
	FamilyCIE     Family = "cie"
	FamilyEdexcel Family = "edexcel"
)

// Record is one catalog entry. FileName is the source of truth for
// derived session/year/paper/variant; the Session and Type fields are
// denormalized hints and may disagree with the filename.
type Record struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	FileName string       `json:"fileName"`
	URL      string       `json:"url"`
	Type     ResourceType `json:"type"`
	Session  string       `json:"session"`
}
