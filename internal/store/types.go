package store

import "time"

// Document categories. Global documents are company-wide supporting material
// visible to every tender.
const (
	CategoryProject    = "project"
	CategorySupporting = "supporting"
	CategoryCompany    = "company"
	CategoryGlobal     = "global"
)

// Document is an uploaded procurement document plus the annotations the
// analysis engine writes back onto it.
type Document struct {
	ID             string    `db:"id" json:"id"`
	Filename       string    `db:"filename" json:"filename"`
	Content        string    `db:"content" json:"content"`
	DocType        string    `db:"doc_type" json:"doc_type"`
	Category       string    `db:"category" json:"category"`
	TenderID       string    `db:"tender_id" json:"tender_id,omitempty"`
	AutoTags       string    `db:"auto_tags" json:"auto_tags,omitempty"`
	AutoAnalysis   string    `db:"auto_analysis" json:"auto_analysis,omitempty"`
	AutoValidation string    `db:"auto_validation" json:"auto_validation,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Tender is the mutable target for auto-extracted metadata and generated
// insights. The engine never creates or deletes tenders.
type Tender struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Budget          string    `db:"budget" json:"budget,omitempty"`
	Deadline        string    `db:"deadline" json:"deadline,omitempty"`
	Status          string    `db:"status" json:"status"`
	Value           float64   `db:"value" json:"value,omitempty"`
	TechnicalScore  float64   `db:"technical_score" json:"technical_score,omitempty"`
	CommercialScore float64   `db:"commercial_score" json:"commercial_score,omitempty"`
	ComplianceScore float64   `db:"compliance_score" json:"compliance_score,omitempty"`
	RiskScore       float64   `db:"risk_score" json:"risk_score,omitempty"`
	AutoTitle       string    `db:"auto_title" json:"auto_title,omitempty"`
	AutoBudget      string    `db:"auto_budget" json:"auto_budget,omitempty"`
	AutoLocation    string    `db:"auto_location" json:"auto_location,omitempty"`
	AutoDeadline    string    `db:"auto_deadline" json:"auto_deadline,omitempty"`
	AutoInsights    string    `db:"auto_insights" json:"auto_insights,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// DocumentFilter narrows FindDocuments. Zero-value fields are ignored. The
// store never evaluates anything richer than scope/category filters ordered
// by recency.
type DocumentFilter struct {
	TenderID   string
	Category   string
	Categories []string
	Limit      int
}

// DocumentPatch carries the derived fields the engine writes back onto a
// document. Nil pointers leave the column untouched.
type DocumentPatch struct {
	AutoTags       *string
	AutoAnalysis   *string
	AutoValidation *string
}

// TenderPatch carries auto-extracted metadata and insights written back onto
// a tender. Nil pointers leave the column untouched.
type TenderPatch struct {
	AutoTitle    *string
	AutoBudget   *string
	AutoLocation *string
	AutoDeadline *string
	AutoInsights *string
}

// StringPtr adapts a value for use in a patch.
func StringPtr(s string) *string { return &s }
