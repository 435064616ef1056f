package analysis

// ChatTurn is one caller-supplied message of a conversation. The engine only
// reads the latest user turn for retrieval and grounding.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Citation names a document that was actually included in the prompt
// context. Citations are never fabricated for documents the model did not
// see.
type Citation struct {
	DocID    string `json:"doc_id"`
	Filename string `json:"filename"`
}

// ChatResult is a grounded (or degraded) chat reply.
type ChatResult struct {
	Reply     string     `json:"reply"`
	Citations []Citation `json:"citations"`
	Fallback  bool       `json:"fallback,omitempty"`
}

// AnalysisResult is the structured outcome of a full document analysis. The
// list fields come from the deterministic pattern rules; the summary comes
// from the model.
type AnalysisResult struct {
	Requirements []string `json:"requirements"`
	Compliance   []string `json:"compliance"`
	Risks        []string `json:"risks"`
	Deadlines    []string `json:"deadlines"`
	Summary      string   `json:"summary"`
	Fallback     bool     `json:"fallback,omitempty"`
}

// ExtractionRecord holds explicitly-stated tender metadata. Absent fields
// mean "not stated in the source text", never "unknown, guessed".
// SubmissionMatched reports whether the submission deadline was identified
// by submission-flavored phrasing or fell back to the first deadline entry;
// the heuristic is best-effort, not guaranteed.
type ExtractionRecord struct {
	Title              string   `json:"title,omitempty"`
	Budget             string   `json:"budget,omitempty"`
	Location           string   `json:"location,omitempty"`
	Deadlines          []string `json:"deadlines,omitempty"`
	Requirements       []string `json:"requirements,omitempty"`
	SubmissionDeadline string   `json:"submission_deadline,omitempty"`
	SubmissionMatched  bool     `json:"submission_matched,omitempty"`
}

// CapabilityAssessment compares tender requirements against company
// documents. Scores are advisory single-shot judgments clamped to [0,100];
// they carry no calibration against historical outcomes.
type CapabilityAssessment struct {
	WinningProbability  float64  `json:"winning_probability"`
	CapabilityScore     float64  `json:"capability_score"`
	MatchedRequirements int      `json:"matched_requirements"`
	TotalRequirements   int      `json:"total_requirements"`
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	Recommendations     []string `json:"recommendations"`
	Fallback            bool     `json:"fallback,omitempty"`
}

// InsightReport is a tender-level synthesis over all its documents.
type InsightReport struct {
	Strengths          []string `json:"strengths"`
	Risks              []string `json:"risks"`
	RecommendedActions []string `json:"recommended_actions"`
	SuccessProbability float64  `json:"success_probability"`
	Priority           string   `json:"priority"`
	Fallback           bool     `json:"fallback,omitempty"`
}

// TagSet classifies a single document for filtering and dashboards.
// Relevance and Confidence live in [0,1].
type TagSet struct {
	Categories []string `json:"categories"`
	Keywords   []string `json:"keywords"`
	Themes     []string `json:"themes"`
	Industries []string `json:"industries"`
	Priority   string   `json:"priority"`
	Complexity string   `json:"complexity"`
	Relevance  float64  `json:"relevance"`
	Confidence float64  `json:"confidence"`
}

// ValidationResult scores document quality per dimension in [0,1] plus an
// overall grade.
type ValidationResult struct {
	Completeness float64  `json:"completeness"`
	Accuracy     float64  `json:"accuracy"`
	Clarity      float64  `json:"clarity"`
	Structure    float64  `json:"structure"`
	Compliance   float64  `json:"compliance"`
	Overall      float64  `json:"overall"`
	Grade        string   `json:"grade"`
	Issues       []string `json:"issues,omitempty"`
}
