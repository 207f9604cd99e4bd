package dto

import (
	"github.com/magnusgp/fermatter/internal/analysis"
	"github.com/magnusgp/fermatter/internal/model"
)

type AnalyzeRequest struct {
	Text      string          `json:"text" binding:"required"`
	Snapshots []SnapshotInput `json:"snapshots,omitempty"`
	Goal      string          `json:"goal,omitempty"`
	Mode      string          `json:"mode,omitempty"`
	Sources   *SourcesInput   `json:"sources,omitempty"`
	Scope     *ScopeInput     `json:"scope,omitempty"`
}

type SnapshotInput struct {
	TS   string `json:"ts"`
	Text string `json:"text"`
}

type SourcesInput struct {
	User       []string `json:"user,omitempty"`
	LibraryIDs []string `json:"library_ids,omitempty"`
}

type ScopeInput struct {
	Type          string `json:"type,omitempty"`
	Paragraphs    []int  `json:"paragraphs,omitempty"`
	SelectionText string `json:"selection_text,omitempty"`
}

func ToAnalysisRequest(req AnalyzeRequest) analysis.Request {
	out := analysis.Request{
		Text: req.Text,
		Goal: req.Goal,
		Mode: model.AnalysisMode(req.Mode),
	}

	for _, s := range req.Snapshots {
		out.Snapshots = append(out.Snapshots, model.Snapshot{TS: s.TS, Text: s.Text})
	}

	if req.Sources != nil {
		out.Sources = model.SourcesInput{
			User:       req.Sources.User,
			LibraryIDs: req.Sources.LibraryIDs,
		}
	}

	if req.Scope != nil {
		out.Scope = &model.AnalysisScope{
			Type:          model.ScopeType(req.Scope.Type),
			Paragraphs:    req.Scope.Paragraphs,
			SelectionText: req.Scope.SelectionText,
		}
	}

	return out
}

type AnalyzeResponse struct {
	Observations []model.Observation       `json:"observations"`
	Unstable     []model.UnstableParagraph `json:"unstable"`
	SourcesUsed  []model.SourceUsed        `json:"sources_used"`
	Meta         model.Meta                `json:"meta"`
}

func ToAnalyzeResponse(result *analysis.Result) AnalyzeResponse {
	resp := AnalyzeResponse{
		Observations: result.Observations,
		Unstable:     result.Unstable,
		SourcesUsed:  result.SourcesUsed,
		Meta:         result.Meta,
	}
	// Empty lists serialize as [], not null.
	if resp.Observations == nil {
		resp.Observations = []model.Observation{}
	}
	if resp.Unstable == nil {
		resp.Unstable = []model.UnstableParagraph{}
	}
	if resp.SourcesUsed == nil {
		resp.SourcesUsed = []model.SourceUsed{}
	}
	return resp
}

type SourcesLibraryResponse struct {
	Sources []model.LibrarySource `json:"sources"`
}
