package model

// Snapshot is a timestamped full copy of the document, used to detect
// rewrite churn. Snapshot order is the caller's chronological input order
// and is never re-sorted.
type Snapshot struct {
	TS   string `json:"ts"`
	Text string `json:"text"`
}

type AnalysisMode string

const (
	ModeScientific AnalysisMode = "scientific"
	ModeJournalist AnalysisMode = "journalist"
	ModeGrandma    AnalysisMode = "grandma"
)

type ScopeType string

const (
	ScopeDocument  ScopeType = "document"
	ScopeSelection ScopeType = "selection"
)

// AnalysisScope governs which text the rule engine and the critic see.
type AnalysisScope struct {
	Type          ScopeType `json:"type"`
	Paragraphs    []int     `json:"paragraphs,omitempty"`
	SelectionText string    `json:"selection_text,omitempty"`
}

// SourcesInput is the caller-supplied citation material. User sources are
// referenced by synthesized ids U1..Un in input order.
type SourcesInput struct {
	User       []string `json:"user,omitempty"`
	LibraryIDs []string `json:"library_ids,omitempty"`
}

// LibrarySource is a static curated citation from the source catalog.
type LibrarySource struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SourceUsed is the resolved projection of a cited source, limited to ids
// actually referenced by at least one observation.
type SourceUsed struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Meta describes one analysis run.
type Meta struct {
	ParagraphCount int    `json:"paragraph_count"`
	LatencyMS      int64  `json:"latency_ms"`
	UsedLLM        bool   `json:"used_llm"`
	Warning        string `json:"warning,omitempty"`
}
