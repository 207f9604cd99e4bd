package model

type ObservationType string

const (
	ObservationMissingEvidence ObservationType = "missing_evidence"
	ObservationUnclearClaim    ObservationType = "unclear_claim"
	ObservationLogicGap        ObservationType = "logic_gap"
	ObservationStructure       ObservationType = "structure"
	ObservationInstability     ObservationType = "instability"
	ObservationTone            ObservationType = "tone"
	ObservationPrecision       ObservationType = "precision"
	ObservationCitationNeeded  ObservationType = "citation_needed"
)

// ParseObservationType maps an untrusted type string to a known
// ObservationType. Unknown values coerce to unclear_claim rather than
// failing, since the string may come from model output.
func ParseObservationType(s string) ObservationType {
	switch ObservationType(s) {
	case ObservationMissingEvidence, ObservationUnclearClaim, ObservationLogicGap,
		ObservationStructure, ObservationInstability, ObservationTone,
		ObservationPrecision, ObservationCitationNeeded:
		return ObservationType(s)
	default:
		return ObservationUnclearClaim
	}
}

// Observation is one flagged issue surfaced to the writer, anchored to a
// zero-based paragraph index. Observations are immutable once created.
type Observation struct {
	ID         string          `json:"id"`
	Type       ObservationType `json:"type"`
	Severity   int             `json:"severity"`
	Paragraph  int             `json:"paragraph"`
	AnchorText string          `json:"anchor_text,omitempty"`
	Title      string          `json:"title"`
	Note       string          `json:"note"`
	Question   string          `json:"question"`
	SourceIDs  []string        `json:"source_ids,omitempty"`
}

// UnstableParagraph marks a paragraph position that has been rewritten
// repeatedly across snapshots.
type UnstableParagraph struct {
	Paragraph    int    `json:"paragraph"`
	RewriteCount int    `json:"rewrite_count"`
	Note         string `json:"note"`
}
